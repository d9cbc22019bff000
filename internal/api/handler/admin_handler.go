package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/service"
	"github.com/Prakash2p/school/pkg/response"
)

// AdminHandler 管理员账号模块 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// GetMe 获取当前登录管理员信息
// GET /api/v1/auth/me
func (h *AdminHandler) GetMe(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	admin, err := h.adminSvc.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, admin)
}

// ListAdmins 获取管理员列表
// GET /api/v1/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": admins})
}

// GetAdmin 获取管理员详情
// GET /api/v1/admins/:id
func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "管理员ID不能为空")
		return
	}

	admin, err := h.adminSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, admin)
}

// CreateAdmin 创建管理员账号
// POST /api/v1/admins
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	admin, err := h.adminSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.Created(c, admin)
}

// UpdateAdmin 更新管理员账号
// PUT /api/v1/admins/:id
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "管理员ID不能为空")
		return
	}

	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	admin, err := h.adminSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, admin)
}

// DeleteAdmin 删除管理员账号
// DELETE /api/v1/admins/:id
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "管理员ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.adminSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAdminError 统一处理管理员模块业务错误
func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdminNotFound):
		response.NotFound(c, 19101, "管理员不存在")
	case errors.Is(err, service.ErrUsernameTaken):
		response.BadRequest(c, 19102, "用户名已被占用")
	case errors.Is(err, service.ErrCannotDeleteSelf):
		response.BadRequest(c, 19103, "不能删除当前登录的管理员")
	case errors.Is(err, service.ErrCannotDemoteLastSup):
		response.BadRequest(c, 19104, "必须保留至少一名超级管理员")
	default:
		response.InternalError(c)
	}
}
