package dto

// ── 排课模块 DTO ──

// CreateScheduleRequest 创建排课请求
// AcademicSessionID 省略时默认归入当前激活学年
type CreateScheduleRequest struct {
	Day               string  `json:"day"                 binding:"required"`
	ClassGradeID      string  `json:"class_grade_id"      binding:"required,uuid"`
	TeacherID         string  `json:"teacher_id"          binding:"required,uuid"`
	SubjectID         string  `json:"subject_id"          binding:"required,uuid"`
	PeriodID          string  `json:"period_id"           binding:"required,uuid"`
	AcademicSessionID *string `json:"academic_session_id" binding:"omitempty,uuid"`
}

// UpdateScheduleRequest 更新排课请求（全量替换，按 ID 定位）
type UpdateScheduleRequest struct {
	Day               string  `json:"day"                 binding:"required"`
	ClassGradeID      string  `json:"class_grade_id"      binding:"required,uuid"`
	TeacherID         string  `json:"teacher_id"          binding:"required,uuid"`
	SubjectID         string  `json:"subject_id"          binding:"required,uuid"`
	PeriodID          string  `json:"period_id"           binding:"required,uuid"`
	AcademicSessionID *string `json:"academic_session_id" binding:"omitempty,uuid"`
}

// ScheduleListRequest 排课列表查询参数
type ScheduleListRequest struct {
	SessionID    string `form:"session_id"     binding:"omitempty,uuid"`
	Day          string `form:"day"`
	ClassGradeID string `form:"class_grade_id" binding:"omitempty,uuid"`
	TeacherID    string `form:"teacher_id"     binding:"omitempty,uuid"`
}

// CheckConflictRequest 冲突预检请求（供前端在提交前实时校验）
type CheckConflictRequest struct {
	Day               string  `json:"day"                 binding:"required"`
	PeriodID          string  `json:"period_id"           binding:"required,uuid"`
	TeacherID         string  `json:"teacher_id"          binding:"omitempty,uuid"`
	ClassGradeID      string  `json:"class_grade_id"      binding:"omitempty,uuid"`
	AcademicSessionID *string `json:"academic_session_id" binding:"omitempty,uuid"`
	ExcludeScheduleID string  `json:"exclude_schedule_id" binding:"omitempty,uuid"`
}

// ConflictDetail 冲突详情
type ConflictDetail struct {
	ScheduleID string `json:"schedule_id"`
	OtherID    string `json:"other_id"`
	PeriodID   string `json:"period_id"`
}

// CheckConflictResponse 冲突预检响应
type CheckConflictResponse struct {
	TeacherConflict bool            `json:"teacher_conflict"`
	ClassConflict   bool            `json:"class_conflict"`
	Teacher         *ConflictDetail `json:"teacher_detail,omitempty"`
	Class           *ConflictDetail `json:"class_detail,omitempty"`
}

// ScheduleResponse 排课记录响应
type ScheduleResponse struct {
	ID              string                `json:"id"`
	Day             string                `json:"day"`
	ClassGrade      *ClassGradeBrief      `json:"class_grade,omitempty"`
	Teacher         *TeacherBrief         `json:"teacher,omitempty"`
	Subject         *SubjectBrief         `json:"subject,omitempty"`
	Period          *PeriodBrief          `json:"period,omitempty"`
	AcademicSession *AcademicSessionBrief `json:"academic_session,omitempty"`
	CreatedAt       string                `json:"created_at"`
	UpdatedAt       string                `json:"updated_at"`
}
