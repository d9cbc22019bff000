package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/service"
	"github.com/Prakash2p/school/pkg/response"
)

// StatsHandler 统计模块 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// GetOverview 获取排课总览统计
// GET /api/v1/stats/overview?session_id=xxx
func (h *StatsHandler) GetOverview(c *gin.Context) {
	var req dto.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.statsSvc.Overview(c.Request.Context(), &req)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	response.OK(c, result)
}

// GetTeacherWorkloads 获取教师工作量统计（按课时数降序，含零课时教师）
// GET /api/v1/stats/teacher-workloads?session_id=xxx
func (h *StatsHandler) GetTeacherWorkloads(c *gin.Context) {
	var req dto.StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.statsSvc.TeacherWorkloads(c.Request.Context(), &req)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// GetTeacherWorkload 获取单个教师的全量工作量（跨学年，不过滤上课日）
// GET /api/v1/teachers/:id/workload
func (h *StatsHandler) GetTeacherWorkload(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	result, err := h.statsSvc.TeacherWorkload(c.Request.Context(), id)
	if err != nil {
		h.handleStatsError(c, err)
		return
	}

	response.OK(c, result)
}

// handleStatsError 统一处理统计模块业务错误
func (h *StatsHandler) handleStatsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 11001, "教师不存在")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 16001, "学年不存在")
	case errors.Is(err, service.ErrNoActiveSession):
		response.NotFound(c, 16004, "当前没有激活的学年")
	default:
		response.InternalError(c)
	}
}
