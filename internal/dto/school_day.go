package dto

// ── 上课日模块 DTO ──

// UpdateSchoolDayRequest 切换上课日启用状态请求
type UpdateSchoolDayRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SchoolDayResponse 上课日信息响应
type SchoolDayResponse struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
