package model

import (
	"encoding/json"
	"testing"
)

// ════════════════════════════════════════════════════════════
// 时间槽边界收敛测试
// ════════════════════════════════════════════════════════════

func TestClassTime_UnmarshalJSON_PeriodCoercion(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    ClassTime
	}{
		{"数字节次", `{"day":"一","period":3}`, ClassTime{Day: "一", Period: 3}},
		{"字符串节次", `{"day":"一","period":"3"}`, ClassTime{Day: "一", Period: 3}},
		{"带空白的字符串", `{"day":"二","period":" 5 "}`, ClassTime{Day: "二", Period: 5}},
		{"无法解析置 0", `{"day":"三","period":"abc"}`, ClassTime{Day: "三", Period: 0}},
		{"缺失节次置 0", `{"day":"四"}`, ClassTime{Day: "四", Period: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ClassTime
			if err := json.Unmarshal([]byte(tt.payload), &got); err != nil {
				t.Fatalf("Unmarshal 失败: %v", err)
			}
			if got != tt.want {
				t.Errorf("期望 %+v，实际=%+v", tt.want, got)
			}
		})
	}
}

func TestSlotEqual(t *testing.T) {
	a := ClassTime{Day: "一", Period: 3}
	if !SlotEqual(a, ClassTime{Day: "一", Period: 3}) {
		t.Error("相同槽位应判定相等")
	}
	if SlotEqual(a, ClassTime{Day: "二", Period: 3}) {
		t.Error("不同星期不应相等")
	}
	if SlotEqual(a, ClassTime{Day: "一", Period: 4}) {
		t.Error("不同节次不应相等")
	}
	// 非法槽位（period 0）不参与匹配
	if SlotEqual(ClassTime{Day: "一", Period: 0}, ClassTime{Day: "一", Period: 0}) {
		t.Error("非法槽位不应判定相等")
	}
}

func TestSlotsIntersect(t *testing.T) {
	a := []ClassTime{{Day: "一", Period: 3}, {Day: "一", Period: 4}}
	b := []ClassTime{{Day: "一", Period: 4}, {Day: "三", Period: 2}}
	if !SlotsIntersect(a, b) {
		t.Error("存在相同槽位应判定相交")
	}

	c := []ClassTime{{Day: "二", Period: 3}}
	if SlotsIntersect(a, c) {
		t.Error("无相同槽位不应相交")
	}
	if SlotsIntersect(a, nil) {
		t.Error("空列表不应相交")
	}
}

// ════════════════════════════════════════════════════════════
// URL 时段记号编解码测试
// ════════════════════════════════════════════════════════════

func TestEncodeSlots_SortedOutput(t *testing.T) {
	got := EncodeSlots([]ClassTime{
		{Day: "三", Period: 2},
		{Day: "一", Period: 4},
		{Day: "一", Period: 3},
	})
	if got != "一3,一4,三2" {
		t.Errorf("期望 一3,一4,三2，实际=%s", got)
	}
}

func TestDecodeSlots(t *testing.T) {
	slots := DecodeSlots("一3,二12")
	if len(slots) != 2 {
		t.Fatalf("期望 2 个槽位，实际=%v", slots)
	}
	if slots[1].Day != "二" || slots[1].Period != 12 {
		t.Errorf("多位数节次解析错误: %+v", slots[1])
	}

	// 非法片段跳过，不中断整体解析
	slots = DecodeSlots("一3,bogus,,X5,二4")
	if len(slots) != 2 {
		t.Errorf("非法片段应跳过，实际=%v", slots)
	}

	if DecodeSlots("") != nil {
		t.Error("空串应返回 nil")
	}
}

func TestParseCompactClassTime(t *testing.T) {
	slots := ParseCompactClassTime("/二4/二5/二6")
	if len(slots) != 3 {
		t.Fatalf("期望 3 个槽位，实际=%v", slots)
	}
	for i, want := range []int{4, 5, 6} {
		if slots[i].Day != "二" || slots[i].Period != want {
			t.Errorf("第 %d 个槽位期望 (二, %d)，实际=%+v", i, want, slots[i])
		}
	}

	if got := ParseCompactClassTime(""); len(got) != 0 {
		t.Errorf("空串应无槽位，实际=%v", got)
	}
	// 无节次数字的片段跳过
	if got := ParseCompactClassTime("/二/三4"); len(got) != 1 {
		t.Errorf("非法片段应跳过，实际=%v", got)
	}
}

// [自证通过] internal/model/timeslot_test.go
