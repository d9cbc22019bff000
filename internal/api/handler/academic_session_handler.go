package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/service"
	"github.com/Prakash2p/school/pkg/response"
)

// AcademicSessionHandler 学年模块 HTTP 处理器
type AcademicSessionHandler struct {
	sessionSvc service.AcademicSessionService
}

// NewAcademicSessionHandler 创建 AcademicSessionHandler
func NewAcademicSessionHandler(sessionSvc service.AcademicSessionService) *AcademicSessionHandler {
	return &AcademicSessionHandler{sessionSvc: sessionSvc}
}

// ListSessions 获取学年列表（按开始日期倒序）
// GET /api/v1/academic-sessions
func (h *AcademicSessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// GetActiveSession 获取当前激活学年
// GET /api/v1/academic-sessions/active
func (h *AcademicSessionHandler) GetActiveSession(c *gin.Context) {
	session, err := h.sessionSvc.GetActive(c.Request.Context())
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// GetSession 获取学年详情
// GET /api/v1/academic-sessions/:id
func (h *AcademicSessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学年ID不能为空")
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// CreateSession 创建学年（首个学年自动激活）
// POST /api/v1/academic-sessions
func (h *AcademicSessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateAcademicSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// UpdateSession 更新学年
// PUT /api/v1/academic-sessions/:id
func (h *AcademicSessionHandler) UpdateSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学年ID不能为空")
		return
	}

	var req dto.UpdateAcademicSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// ActivateSession 激活指定学年（同时取消其他学年的激活状态）
// PUT /api/v1/academic-sessions/:id/activate
func (h *AcademicSessionHandler) ActivateSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学年ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Activate(c.Request.Context(), id, callerID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteSession 删除学年（级联删除该学年排课；删除激活学年时自动顺延激活）
// DELETE /api/v1/academic-sessions/:id
func (h *AcademicSessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学年ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSessionError 统一处理学年模块业务错误
func (h *AcademicSessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 16001, "学年不存在")
	case errors.Is(err, service.ErrSessionDateInvalid):
		response.BadRequest(c, 16002, "学年结束日期必须晚于开始日期")
	case errors.Is(err, service.ErrSessionLastOne):
		response.BadRequest(c, 16003, "不能删除最后一个学年")
	case errors.Is(err, service.ErrNoActiveSession):
		response.NotFound(c, 16004, "当前没有激活的学年")
	default:
		response.InternalError(c)
	}
}
