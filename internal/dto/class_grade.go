package dto

// ── 班级模块 DTO ──

// CreateClassGradeRequest 创建班级请求
type CreateClassGradeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateClassGradeRequest 更新班级请求
type UpdateClassGradeRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

// ClassGradeResponse 班级信息响应
type ClassGradeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ClassGradeBrief 班级简要信息（嵌入排课响应）
type ClassGradeBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
