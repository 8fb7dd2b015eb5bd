package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yc97463/NDHU-Course/config"
)

// ── 测试辅助 ──

// fakeFeed 模拟爬虫静态 JSON 端点族
func fakeFeed(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/semester.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`["113-2","114-1","113-1"]`))
	})
	mux.HandleFunc("/114-1/main.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"CS101": {
				"course_id": "CS101",
				"course_name": "計算機概論",
				"college": "理工學院::College of Science and Engineering",
				"offering_department": "資訊工程學系",
				"teacher": "/王小明/",
				"credits": 3,
				"classroom": "/理工一館 A204/理工一館 A204/",
				"class_time": "/二4/二5/二6"
			}
		}`))
	})
	mux.HandleFunc("/114-1/course/CS101.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"course_name": "計算機概論",
			"english_course_name": "Introduction to Computer Science",
			"teacher": "王小明",
			"classroom": ["理工一館 A204"],
			"credits": 3,
			"class_time": [{"day":"二","period":"4"},{"day":"二","period":5}],
			"departments": [{"college":"理工學院::CSE","department":"資訊工程學系::CSIE"}]
		}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func setupTestCatalogService(t *testing.T) CatalogService {
	server := fakeFeed(t)
	cfg := &config.CatalogConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}
	return NewCatalogService(cfg, nil, zap.NewNop())
}

// ════════════════════════════════════════════════════════════
// CatalogService 测试
// ════════════════════════════════════════════════════════════

func TestCatalogService_ListSemesters_SortedDesc(t *testing.T) {
	svc := setupTestCatalogService(t)

	semesters, err := svc.ListSemesters(context.Background())
	if err != nil {
		t.Fatalf("ListSemesters 应成功: %v", err)
	}
	want := []string{"114-1", "113-2", "113-1"}
	if len(semesters) != len(want) {
		t.Fatalf("期望 %v，实际=%v", want, semesters)
	}
	for i, s := range want {
		if semesters[i] != s {
			t.Errorf("第 %d 位期望 %s，实际=%s", i, s, semesters[i])
		}
	}
}

func TestCatalogService_GetCatalog_NormalizesSummary(t *testing.T) {
	svc := setupTestCatalogService(t)

	// 紧凑学期形式在拼 URL 前规范化
	courses, err := svc.GetCatalog(context.Background(), "1141")
	if err != nil {
		t.Fatalf("GetCatalog 应成功: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("期望 1 门课程，实际=%d", len(courses))
	}

	c := courses[0]
	if c.Teacher != "王小明" {
		t.Errorf("教师应去除斜杠，实际=%q", c.Teacher)
	}
	if c.Classroom != "理工一館 A204" {
		t.Errorf("教室应取第一段，实际=%q", c.Classroom)
	}
	if c.Credits != "3" {
		t.Errorf("数字学分应收敛为字符串，实际=%q", c.Credits)
	}
	// 紧凑时间字串 "/二4/二5/二6" 展开为 3 个槽位
	if len(c.ClassTime) != 3 {
		t.Fatalf("期望 3 个时间槽，实际=%v", c.ClassTime)
	}
	if c.ClassTime[0].Day != "二" || c.ClassTime[0].Period != 4 {
		t.Errorf("首个时间槽应为 (二, 4)，实际=%v", c.ClassTime[0])
	}
}

func TestCatalogService_GetCourseDetail_CoercesPayload(t *testing.T) {
	svc := setupTestCatalogService(t)

	record, err := svc.GetCourseDetail(context.Background(), "114-1", "CS101")
	if err != nil {
		t.Fatalf("GetCourseDetail 应成功: %v", err)
	}

	// 载荷缺 course_id 时回填请求参数
	if record.CourseID != "CS101" {
		t.Errorf("course_id 应回填，实际=%q", record.CourseID)
	}
	if record.Semester != "114-1" {
		t.Errorf("学期应绑定，实际=%q", record.Semester)
	}
	// 单字符串 teacher 包装为数组
	if len(record.Teacher) != 1 || record.Teacher[0] != "王小明" {
		t.Errorf("teacher 应收敛为数组，实际=%v", record.Teacher)
	}
	// 数字与字符串混合的 period 统一为 int
	if len(record.ClassTime) != 2 || record.ClassTime[0].Period != 4 || record.ClassTime[1].Period != 5 {
		t.Errorf("period 应统一为 int，实际=%v", record.ClassTime)
	}
}

func TestCatalogService_GetCourseDetail_EmptyID(t *testing.T) {
	svc := setupTestCatalogService(t)

	_, err := svc.GetCourseDetail(context.Background(), "114-1", "")
	if !errors.Is(err, ErrCatalogCourseEmpty) {
		t.Errorf("期望 ErrCatalogCourseEmpty，实际=%v", err)
	}
}

func TestCatalogService_NotFound(t *testing.T) {
	svc := setupTestCatalogService(t)

	_, err := svc.GetCourseDetail(context.Background(), "114-1", "GHOST")
	if !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("上游 404 应映射为 ErrCatalogNotFound，实际=%v", err)
	}

	_, err = svc.GetCatalog(context.Background(), "999-9")
	if !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("未知学期应映射为 ErrCatalogNotFound，实际=%v", err)
	}
}

func TestCatalogService_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	cfg := &config.CatalogConfig{BaseURL: server.URL, Timeout: 5 * time.Second}
	svc := NewCatalogService(cfg, nil, zap.NewNop())

	_, err := svc.ListSemesters(context.Background())
	if !errors.Is(err, ErrCatalogUpstream) {
		t.Errorf("上游 5xx 应映射为 ErrCatalogUpstream，实际=%v", err)
	}
}

func TestCatalogService_BadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	cfg := &config.CatalogConfig{BaseURL: server.URL, Timeout: 5 * time.Second}
	svc := NewCatalogService(cfg, nil, zap.NewNop())

	_, err := svc.ListSemesters(context.Background())
	if !errors.Is(err, ErrCatalogBadPayload) {
		t.Errorf("非法载荷应映射为 ErrCatalogBadPayload，实际=%v", err)
	}
}

// [自证通过] internal/service/catalog_service_test.go
