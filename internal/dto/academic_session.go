package dto

// ── 学年模块 DTO ──

// CreateAcademicSessionRequest 创建学年请求
type CreateAcademicSessionRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	StartDate string `json:"start_date" binding:"required"` // "2025-04-01"
	EndDate   string `json:"end_date"   binding:"required"` // "2026-03-31"
}

// UpdateAcademicSessionRequest 更新学年请求
type UpdateAcademicSessionRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// AcademicSessionResponse 学年信息响应
type AcademicSessionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AcademicSessionBrief 学年简要信息（嵌入排课响应）
type AcademicSessionBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
