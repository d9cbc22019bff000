package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/service"
	"github.com/Prakash2p/school/pkg/response"
)

// SchoolDayHandler 上课日模块 HTTP 处理器
// 七个固定星期日名在建库时播种，仅允许切换启用状态
type SchoolDayHandler struct {
	schoolDaySvc service.SchoolDayService
}

// NewSchoolDayHandler 创建 SchoolDayHandler
func NewSchoolDayHandler(schoolDaySvc service.SchoolDayService) *SchoolDayHandler {
	return &SchoolDayHandler{schoolDaySvc: schoolDaySvc}
}

// ListSchoolDays 获取全部上课日（含停用）
// GET /api/v1/school-days
func (h *SchoolDayHandler) ListSchoolDays(c *gin.Context) {
	days, err := h.schoolDaySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": days})
}

// ListActiveSchoolDays 获取启用的上课日
// GET /api/v1/school-days/active
func (h *SchoolDayHandler) ListActiveSchoolDays(c *gin.Context) {
	days, err := h.schoolDaySvc.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": days})
}

// UpdateSchoolDay 切换上课日启用状态
// PUT /api/v1/school-days/:name
func (h *SchoolDayHandler) UpdateSchoolDay(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "上课日名称不能为空")
		return
	}

	var req dto.UpdateSchoolDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	day, err := h.schoolDaySvc.Update(c.Request.Context(), name, &req, callerID)
	if err != nil {
		h.handleSchoolDayError(c, err)
		return
	}

	response.OK(c, day)
}

// handleSchoolDayError 统一处理上课日模块业务错误
func (h *SchoolDayHandler) handleSchoolDayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSchoolDayNotFound):
		response.NotFound(c, 15001, "上课日不存在")
	case errors.Is(err, service.ErrLastActiveSchoolDay):
		response.BadRequest(c, 15002, "至少保留一个启用的上课日")
	default:
		response.InternalError(c)
	}
}
