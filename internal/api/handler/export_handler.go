package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Prakash2p/school/internal/service"
	"github.com/Prakash2p/school/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportClassTimetable 导出班级课表 Excel
// GET /api/v1/export/class-timetable?class_grade_id=xxx&session_id=xxx
func (h *ExportHandler) ExportClassTimetable(c *gin.Context) {
	classGradeID := c.Query("class_grade_id")
	if classGradeID == "" {
		response.BadRequest(c, 10001, "class_grade_id 不能为空")
		return
	}
	sessionID := c.Query("session_id")

	buf, filename, err := h.exportSvc.ClassTimetableExcel(c.Request.Context(), classGradeID, sessionID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", contentTypeXLSX)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportTeacherCalendar 导出教师个人课表 iCalendar
// GET /api/v1/export/teacher-calendar?teacher_id=xxx&session_id=xxx
func (h *ExportHandler) ExportTeacherCalendar(c *gin.Context) {
	teacherID := c.Query("teacher_id")
	if teacherID == "" {
		response.BadRequest(c, 10001, "teacher_id 不能为空")
		return
	}
	sessionID := c.Query("session_id")

	content, filename, err := h.exportSvc.TeacherCalendar(c.Request.Context(), teacherID, sessionID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentTypeICS, []byte(content))
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoSchedules):
		response.NotFound(c, 18001, "该学年暂无排课记录")
	case errors.Is(err, service.ErrClassGradeNotFound):
		response.NotFound(c, 13001, "班级不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 11001, "教师不存在")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 16001, "学年不存在")
	case errors.Is(err, service.ErrNoActiveSession):
		response.NotFound(c, 16004, "当前没有激活的学年")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
