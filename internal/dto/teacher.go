package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	Name  string  `json:"name"  binding:"required,min=2,max=100"`
	Photo *string `json:"photo" binding:"omitempty,url,max=500"`
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Photo *string `json:"photo" binding:"omitempty,url,max=500"`
}

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Photo     *string `json:"photo,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// TeacherBrief 教师简要信息（嵌入排课响应）
type TeacherBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
