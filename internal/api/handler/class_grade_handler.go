package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/service"
	"github.com/Prakash2p/school/pkg/response"
)

// ClassGradeHandler 班级模块 HTTP 处理器
type ClassGradeHandler struct {
	classSvc service.ClassGradeService
}

// NewClassGradeHandler 创建 ClassGradeHandler
func NewClassGradeHandler(classSvc service.ClassGradeService) *ClassGradeHandler {
	return &ClassGradeHandler{classSvc: classSvc}
}

// ListClassGrades 获取班级列表
// GET /api/v1/class-grades
func (h *ClassGradeHandler) ListClassGrades(c *gin.Context) {
	classes, err := h.classSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": classes})
}

// GetClassGrade 获取班级详情
// GET /api/v1/class-grades/:id
func (h *ClassGradeHandler) GetClassGrade(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	class, err := h.classSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassGradeError(c, err)
		return
	}

	response.OK(c, class)
}

// CreateClassGrade 创建班级
// POST /api/v1/class-grades
func (h *ClassGradeHandler) CreateClassGrade(c *gin.Context) {
	var req dto.CreateClassGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleClassGradeError(c, err)
		return
	}

	response.Created(c, class)
}

// UpdateClassGrade 更新班级
// PUT /api/v1/class-grades/:id
func (h *ClassGradeHandler) UpdateClassGrade(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	var req dto.UpdateClassGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleClassGradeError(c, err)
		return
	}

	response.OK(c, class)
}

// DeleteClassGrade 删除班级（级联删除其全部排课）
// DELETE /api/v1/class-grades/:id
func (h *ClassGradeHandler) DeleteClassGrade(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleClassGradeError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleClassGradeError 统一处理班级模块业务错误
func (h *ClassGradeHandler) handleClassGradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassGradeNotFound):
		response.NotFound(c, 13001, "班级不存在")
	default:
		response.InternalError(c)
	}
}
