package conflict

import (
	"testing"

	"github.com/Prakash2p/school/internal/model"
)

func sampleSchedules() []model.Schedule {
	return []model.Schedule{
		{
			ScheduleID:        "sch-001",
			Day:               "Monday",
			ClassGradeID:      "c1",
			TeacherID:         "t1",
			SubjectID:         "sub-1",
			PeriodID:          "p1",
			AcademicSessionID: "sess-2025",
		},
		{
			ScheduleID:        "sch-002",
			Day:               "Monday",
			ClassGradeID:      "c2",
			TeacherID:         "t2",
			SubjectID:         "sub-2",
			PeriodID:          "p1",
			AcademicSessionID: "sess-2025",
		},
		{
			ScheduleID:        "sch-003",
			Day:               "Tuesday",
			ClassGradeID:      "c1",
			TeacherID:         "t1",
			SubjectID:         "sub-1",
			PeriodID:          "p1",
			AcademicSessionID: "sess-2025",
		},
	}
}

// ── CheckTeacher ──

func TestCheckTeacher_Conflict(t *testing.T) {
	schedules := sampleSchedules()

	// t1 在周一 p1 已有排课（sch-001），换个班级仍然冲突
	result := CheckTeacher(schedules, "t1", "p1", "Monday", "")
	if !result.HasConflict {
		t.Fatal("期望检测到教师冲突")
	}
	if result.Conflict.ScheduleID != "sch-001" {
		t.Errorf("期望冲突记录 sch-001，实际=%s", result.Conflict.ScheduleID)
	}
	if result.Conflict.OtherID != "c1" {
		t.Errorf("期望 OtherID 为对方班级 c1，实际=%s", result.Conflict.OtherID)
	}
	if result.Conflict.PeriodID != "p1" {
		t.Errorf("期望 PeriodID=p1，实际=%s", result.Conflict.PeriodID)
	}
}

func TestCheckTeacher_NoConflict_DifferentDay(t *testing.T) {
	schedules := sampleSchedules()

	result := CheckTeacher(schedules, "t1", "p1", "Wednesday", "")
	if result.HasConflict {
		t.Error("不同上课日不应冲突")
	}
}

func TestCheckTeacher_NoConflict_DifferentPeriod(t *testing.T) {
	schedules := sampleSchedules()

	result := CheckTeacher(schedules, "t1", "p2", "Monday", "")
	if result.HasConflict {
		t.Error("不同节次不应冲突")
	}
}

func TestCheckTeacher_ExcludeSelf(t *testing.T) {
	schedules := sampleSchedules()

	// 编辑 sch-001 自身（如只改科目）：排除自身后不应报自冲突
	result := CheckTeacher(schedules, "t1", "p1", "Monday", "sch-001")
	if result.HasConflict {
		t.Error("排除自身后不应报冲突")
	}
}

func TestCheckTeacher_FirstMatchWins(t *testing.T) {
	schedules := sampleSchedules()
	// 构造两条同槽位冲突记录，应报告扫描顺序中的第一条
	schedules = append(schedules, model.Schedule{
		ScheduleID: "sch-dup", Day: "Monday", ClassGradeID: "c3",
		TeacherID: "t1", PeriodID: "p1", AcademicSessionID: "sess-2025",
	})

	result := CheckTeacher(schedules, "t1", "p1", "Monday", "")
	if !result.HasConflict || result.Conflict.ScheduleID != "sch-001" {
		t.Errorf("期望报告第一条冲突 sch-001，实际=%+v", result.Conflict)
	}
}

func TestCheckTeacher_EmptyCollection(t *testing.T) {
	result := CheckTeacher(nil, "t1", "p1", "Monday", "")
	if result.HasConflict {
		t.Error("空集合不应有冲突")
	}
	if result.Conflict != nil {
		t.Error("无冲突时 Conflict 应为 nil")
	}
}

// ── CheckClass ──

func TestCheckClass_Conflict(t *testing.T) {
	schedules := sampleSchedules()

	// c1 在周一 p1 已有排课，换教师/科目仍然冲突
	result := CheckClass(schedules, "c1", "p1", "Monday", "")
	if !result.HasConflict {
		t.Fatal("期望检测到班级冲突")
	}
	if result.Conflict.ScheduleID != "sch-001" {
		t.Errorf("期望冲突记录 sch-001，实际=%s", result.Conflict.ScheduleID)
	}
	if result.Conflict.OtherID != "t1" {
		t.Errorf("期望 OtherID 为对方教师 t1，实际=%s", result.Conflict.OtherID)
	}
}

func TestCheckClass_ExcludeSelf(t *testing.T) {
	schedules := sampleSchedules()

	result := CheckClass(schedules, "c1", "p1", "Monday", "sch-001")
	if result.HasConflict {
		t.Error("排除自身后不应报冲突")
	}
}

// ── BySession ──

func TestBySession_Filter(t *testing.T) {
	schedules := sampleSchedules()
	schedules = append(schedules, model.Schedule{
		ScheduleID: "sch-old", Day: "Monday", ClassGradeID: "c1",
		TeacherID: "t1", PeriodID: "p1", AcademicSessionID: "sess-2024",
	})

	filtered := BySession(schedules, "sess-2025")
	if len(filtered) != 3 {
		t.Fatalf("期望过滤出 3 条，实际=%d", len(filtered))
	}
	for _, s := range filtered {
		if s.AcademicSessionID != "sess-2025" {
			t.Errorf("过滤结果含其他学年记录: %s", s.ScheduleID)
		}
	}

	// 跨学年记录先过滤后检测则不冲突——学年隔离由调用方通过 BySession 实现
	result := CheckTeacher(BySession(schedules, "sess-2024"), "t1", "p1", "Monday", "")
	if !result.HasConflict || result.Conflict.ScheduleID != "sch-old" {
		t.Errorf("期望 sess-2024 内检测到 sch-old，实际=%+v", result.Conflict)
	}
}

func TestBySession_DoesNotMutateInput(t *testing.T) {
	schedules := sampleSchedules()
	before := len(schedules)

	_ = BySession(schedules, "sess-2025")
	if len(schedules) != before {
		t.Error("BySession 不应修改输入切片")
	}
}

// ── TeachingPeriod ──

func TestNewTeachingPeriod_RejectsInterval(t *testing.T) {
	_, err := NewTeachingPeriod(model.Period{
		PeriodID: "p-break", Name: "Break", StartTime: "10:10", EndTime: "10:30", IsInterval: true,
	})
	if err != ErrIntervalPeriod {
		t.Errorf("期望 ErrIntervalPeriod，实际: %v", err)
	}
}

func TestNewTeachingPeriod_AcceptsTeaching(t *testing.T) {
	tp, err := NewTeachingPeriod(model.Period{
		PeriodID: "p1", Name: "1st Period", StartTime: "08:00", EndTime: "09:00",
	})
	if err != nil {
		t.Fatalf("教学节次应通过: %v", err)
	}
	if tp.ID() != "p1" {
		t.Errorf("期望 ID=p1，实际=%s", tp.ID())
	}
}

// ── PeriodsOverlap ──

func TestPeriodsOverlap(t *testing.T) {
	cases := []struct {
		name     string
		a, b     model.Period
		overlaps bool
	}{
		{
			name:     "完全错开",
			a:        model.Period{StartTime: "08:00", EndTime: "09:00"},
			b:        model.Period{StartTime: "09:10", EndTime: "10:10"},
			overlaps: false,
		},
		{
			name:     "首尾相接不算重叠",
			a:        model.Period{StartTime: "08:00", EndTime: "09:00"},
			b:        model.Period{StartTime: "09:00", EndTime: "10:00"},
			overlaps: false,
		},
		{
			name:     "部分重叠",
			a:        model.Period{StartTime: "08:00", EndTime: "09:00"},
			b:        model.Period{StartTime: "08:30", EndTime: "09:30"},
			overlaps: true,
		},
		{
			name:     "完全包含",
			a:        model.Period{StartTime: "08:00", EndTime: "12:00"},
			b:        model.Period{StartTime: "09:00", EndTime: "10:00"},
			overlaps: true,
		},
		{
			name:     "课间与教学节次同样参与判定",
			a:        model.Period{StartTime: "10:10", EndTime: "10:30", IsInterval: true},
			b:        model.Period{StartTime: "10:00", EndTime: "10:20"},
			overlaps: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PeriodsOverlap(tc.a, tc.b); got != tc.overlaps {
				t.Errorf("PeriodsOverlap=%v，期望=%v", got, tc.overlaps)
			}
			// 对称性
			if got := PeriodsOverlap(tc.b, tc.a); got != tc.overlaps {
				t.Errorf("PeriodsOverlap 应满足对称性")
			}
		})
	}
}
