package dto

// ── 节次模块 DTO ──

// CreatePeriodRequest 创建节次请求
type CreatePeriodRequest struct {
	Name       string `json:"name"        binding:"required,min=1,max=50"`
	StartTime  string `json:"start_time"  binding:"required"` // "08:00"
	EndTime    string `json:"end_time"    binding:"required"` // "09:00"
	IsInterval bool   `json:"is_interval"`
}

// UpdatePeriodRequest 更新节次请求
type UpdatePeriodRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=1,max=50"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	IsInterval *bool   `json:"is_interval"`
}

// PeriodResponse 节次信息响应
type PeriodResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	IsInterval bool   `json:"is_interval"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// PeriodBrief 节次简要信息（嵌入排课响应）
type PeriodBrief struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
