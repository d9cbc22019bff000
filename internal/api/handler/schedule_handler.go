package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Prakash2p/school/internal/conflict"
	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/service"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
	"github.com/Prakash2p/school/pkg/response"
)

// ScheduleHandler 排课模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListSchedules 获取排课列表（支持按学年/星期/班级/教师过滤）
// GET /api/v1/schedules
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedules, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// GetSchedule 获取排课详情
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排课ID不能为空")
		return
	}

	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// CreateSchedule 创建排课（冲突时返回 409 及冲突详情）
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, schedule)
}

// UpdateSchedule 更新排课（目标不存在时按新记录写入）
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	// upsert 语义会把路径中的 ID 直接写库，入口处先校验格式
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, 10001, "排课ID必须为合法 UUID")
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// DeleteSchedule 删除排课（幂等：记录不存在也返回成功）
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排课ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// CheckConflicts 冲突预检（只读，不写库）
// POST /api/v1/schedules/check-conflicts
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var req dto.CheckConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.CheckConflicts(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// handleScheduleError 统一处理排课模块业务错误
// 冲突错误携带已占用记录的 ID，供前端定位并展示冲突课程
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var conflictErr *pkgerrors.ConflictError
	if errors.As(err, &conflictErr) {
		details := gin.H{
			"kind":        string(conflictErr.Kind),
			"schedule_id": conflictErr.ScheduleID,
			"other_id":    conflictErr.OtherID,
			"period_id":   conflictErr.PeriodID,
		}
		if conflictErr.Kind == pkgerrors.ConflictTeacher {
			response.Conflict(c, 17002, "教师在该时段已有排课", details)
		} else {
			response.Conflict(c, 17003, "班级在该时段已有排课", details)
		}
		return
	}

	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 17001, "排课记录不存在")
	case errors.Is(err, conflict.ErrIntervalPeriod):
		response.BadRequest(c, 17004, "课间时段不可排课")
	case errors.Is(err, service.ErrDayInactive):
		response.BadRequest(c, 17005, "该上课日未启用，不可排课")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 11001, "教师不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 12001, "科目不存在")
	case errors.Is(err, service.ErrClassGradeNotFound):
		response.NotFound(c, 13001, "班级不存在")
	case errors.Is(err, service.ErrPeriodNotFound):
		response.NotFound(c, 14001, "节次不存在")
	case errors.Is(err, service.ErrSchoolDayNotFound):
		response.NotFound(c, 15001, "上课日不存在")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 16001, "学年不存在")
	case errors.Is(err, service.ErrNoActiveSession):
		response.NotFound(c, 16004, "当前没有激活的学年")
	default:
		// 未逐一映射的业务错误按错误类别兜底，避免校验类错误落到 500
		var validationErr *pkgerrors.ValidationError
		var notFoundErr *pkgerrors.NotFoundError
		switch {
		case errors.As(err, &validationErr):
			response.BadRequest(c, 10001, validationErr.Error())
		case errors.As(err, &notFoundErr):
			response.NotFound(c, 10001, notFoundErr.Error())
		default:
			response.InternalError(c)
		}
	}
}
