package dto

// ── 统计模块 DTO ──
// 所有统计均为排课集合上的即时归约，不做缓存

// StatsRequest 统计查询参数
// SessionID 省略时默认统计当前激活学年
type StatsRequest struct {
	SessionID string `form:"session_id" binding:"omitempty,uuid"`
}

// TeacherWorkloadResponse 教师工作量（已排节次数）
type TeacherWorkloadResponse struct {
	TeacherID string `json:"teacher_id"`
	Name      string `json:"name"`
	Workload  int    `json:"workload"`
}

// SubjectDistributionItem 科目分布
type SubjectDistributionItem struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

// DayDistributionItem 按上课日分布
type DayDistributionItem struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// ClassDensityItem 班级课表密度
type ClassDensityItem struct {
	ClassGradeID string `json:"class_grade_id"`
	Name         string `json:"name"`
	Count        int    `json:"count"`
}

// OverviewResponse 课表总览统计
type OverviewResponse struct {
	TotalSchedules      int                       `json:"total_schedules"`
	TotalSlots          int                       `json:"total_slots"`          // 班级数 × 教学节次数 × 上课日数
	CompletionPercent   float64                   `json:"completion_percent"`   // 已排 / 总槽位
	TeacherWorkloads    []TeacherWorkloadResponse `json:"teacher_workloads"`    // 按工作量降序
	SubjectDistribution []SubjectDistributionItem `json:"subject_distribution"`
	DayDistribution     []DayDistributionItem     `json:"day_distribution"`     // 按上课日顺序
	ClassDensity        []ClassDensityItem        `json:"class_density"`
}
