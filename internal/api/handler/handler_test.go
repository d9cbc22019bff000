package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/service"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
	"github.com/Prakash2p/school/pkg/jwt"
	"github.com/Prakash2p/school/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	createResult *dto.ScheduleResponse
	createErr    error
	getResult    *dto.ScheduleResponse
	getErr       error
	listResult   []dto.ScheduleResponse
	listErr      error
	updateResult *dto.ScheduleResponse
	updateErr    error
	deleteErr    error
	checkResult  *dto.CheckConflictResponse
	checkErr     error
}

func (m *mockScheduleService) Create(_ context.Context, _ *dto.CreateScheduleRequest, _ string) (*dto.ScheduleResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockScheduleService) GetByID(_ context.Context, _ string) (*dto.ScheduleResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockScheduleService) List(_ context.Context, _ *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockScheduleService) Update(_ context.Context, _ string, _ *dto.UpdateScheduleRequest, _ string) (*dto.ScheduleResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockScheduleService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}
func (m *mockScheduleService) CheckConflicts(_ context.Context, _ *dto.CheckConflictRequest) (*dto.CheckConflictResponse, error) {
	return m.checkResult, m.checkErr
}

// ── Mock ExportService ──

type mockExportService struct {
	excelBuf      *bytes.Buffer
	excelFilename string
	excelErr      error
	icsContent    string
	icsFilename   string
	icsErr        error
}

func (m *mockExportService) ClassTimetableExcel(_ context.Context, _, _ string) (*bytes.Buffer, string, error) {
	return m.excelBuf, m.excelFilename, m.excelErr
}
func (m *mockExportService) TeacherCalendar(_ context.Context, _, _ string) (string, string, error) {
	return m.icsContent, m.icsFilename, m.icsErr
}

// ── Mock SchoolDayService ──

type mockSchoolDayService struct {
	listResult   []dto.SchoolDayResponse
	listErr      error
	activeResult []dto.SchoolDayResponse
	activeErr    error
	updateResult *dto.SchoolDayResponse
	updateErr    error
}

func (m *mockSchoolDayService) List(_ context.Context) ([]dto.SchoolDayResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockSchoolDayService) ListActive(_ context.Context) ([]dto.SchoolDayResponse, error) {
	return m.activeResult, m.activeErr
}
func (m *mockSchoolDayService) Update(_ context.Context, _ string, _ *dto.UpdateSchoolDayRequest, _ string) (*dto.SchoolDayResponse, error) {
	return m.updateResult, m.updateErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-admin-id")
	c.Set("role", "SuperAdmin")
	c.Set("claims", &jwt.Claims{UserID: "test-admin-id", Role: "SuperAdmin", TokenType: "access"})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

const (
	testTeacherID  = "11111111-1111-1111-1111-111111111111"
	testSubjectID  = "22222222-2222-2222-2222-222222222222"
	testClassID    = "33333333-3333-3333-3333-333333333333"
	testPeriodID   = "44444444-4444-4444-4444-444444444444"
	testScheduleID = "55555555-5555-5555-5555-555555555555"
)

func validCreateScheduleBody() io.Reader {
	return jsonBody(dto.CreateScheduleRequest{
		Day:          "Sunday",
		ClassGradeID: testClassID,
		TeacherID:    testTeacherID,
		SubjectID:    testSubjectID,
		PeriodID:     testPeriodID,
	})
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "principal",
		Password: "Secret1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "principal",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 19001 {
		t.Errorf("expected error code 19001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_WrongType(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidTokenType})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "some-access-token",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 19002 {
		t.Errorf("expected error code 19002, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_WrongOld(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "NewPassword1",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 19004 {
		t.Errorf("expected error code 19004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_Create_Success(t *testing.T) {
	mock := &mockScheduleService{
		createResult: &dto.ScheduleResponse{ID: "sched-1", Day: "Sunday"},
	}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/schedules", validCreateScheduleBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", func(c *gin.Context) {
		setAuth(c)
		h.CreateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestScheduleHandler_Create_BadJSON(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/schedules", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", func(c *gin.Context) {
		setAuth(c)
		h.CreateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScheduleHandler_Create_TeacherConflict(t *testing.T) {
	mock := &mockScheduleService{
		createErr: &pkgerrors.ConflictError{
			Kind:       pkgerrors.ConflictTeacher,
			ScheduleID: "sched-existing",
			OtherID:    testClassID,
			PeriodID:   testPeriodID,
		},
	}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/schedules", validCreateScheduleBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", func(c *gin.Context) {
		setAuth(c)
		h.CreateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17002 {
		t.Errorf("expected error code 17002, got %d", resp.Code)
	}
	// 冲突详情应携带已占用记录的 ID
	details, ok := resp.Details.(map[string]interface{})
	if !ok {
		t.Fatal("expected conflict details object")
	}
	if details["schedule_id"] != "sched-existing" {
		t.Errorf("expected schedule_id=sched-existing, got %v", details["schedule_id"])
	}
	if details["kind"] != "teacher" {
		t.Errorf("expected kind=teacher, got %v", details["kind"])
	}
}

func TestScheduleHandler_Create_ClassConflict(t *testing.T) {
	mock := &mockScheduleService{
		createErr: &pkgerrors.ConflictError{
			Kind:       pkgerrors.ConflictClass,
			ScheduleID: "sched-existing",
			OtherID:    testTeacherID,
			PeriodID:   testPeriodID,
		},
	}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/schedules", validCreateScheduleBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules", func(c *gin.Context) {
		setAuth(c)
		h.CreateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17003 {
		t.Errorf("expected error code 17003, got %d", resp.Code)
	}
}

func TestScheduleHandler_Delete_Success(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})

	w := setupRecorder()
	req := httptest.NewRequest("DELETE", "/schedules/sched-1", nil)

	r := gin.New()
	r.DELETE("/schedules/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduleHandler_CheckConflicts_Success(t *testing.T) {
	mock := &mockScheduleService{
		checkResult: &dto.CheckConflictResponse{
			TeacherConflict: true,
			Teacher: &dto.ConflictDetail{
				ScheduleID: "sched-existing",
				OtherID:    testClassID,
				PeriodID:   testPeriodID,
			},
		},
	}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/schedules/check-conflicts", jsonBody(dto.CheckConflictRequest{
		Day:       "Sunday",
		PeriodID:  testPeriodID,
		TeacherID: testTeacherID,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/schedules/check-conflicts", h.CheckConflicts)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestScheduleHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrScheduleNotFound, 404, 17001},
		{"DayInactive", service.ErrDayInactive, 400, 17005},
		{"TeacherNotFound", service.ErrTeacherNotFound, 404, 11001},
		{"SubjectNotFound", service.ErrSubjectNotFound, 404, 12001},
		{"ClassNotFound", service.ErrClassGradeNotFound, 404, 13001},
		{"PeriodNotFound", service.ErrPeriodNotFound, 404, 14001},
		{"SessionNotFound", service.ErrSessionNotFound, 404, 16001},
		{"NoActiveSession", service.ErrNoActiveSession, 404, 16004},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewScheduleHandler(&mockScheduleService{getErr: tt.err})

			w := setupRecorder()
			req := httptest.NewRequest("GET", "/schedules/sched-1", nil)

			r := gin.New()
			r.GET("/schedules/:id", h.GetSchedule)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// 未逐一映射的包装错误按分类兜底，校验类 400、不存在类 404
func TestScheduleHandler_ErrorFallbackByKind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"WrappedValidation", pkgerrors.NewValidation("day", "不可排课", errors.New("某业务校验失败")), 400},
		{"WrappedNotFound", pkgerrors.NewNotFound("teacher", "t-x", errors.New("某实体不存在")), 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewScheduleHandler(&mockScheduleService{getErr: tt.err})

			w := setupRecorder()
			req := httptest.NewRequest("GET", "/schedules/sched-1", nil)

			r := gin.New()
			r.GET("/schedules/:id", h.GetSchedule)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestScheduleHandler_Update_InvalidID(t *testing.T) {
	mock := &mockScheduleService{
		updateResult: &dto.ScheduleResponse{ID: "should-not-reach"},
	}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	// upsert 语义下非法 ID 会被直接写库，必须在入口被拦下
	req := httptest.NewRequest("PUT", "/schedules/not-a-uuid", validCreateScheduleBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/schedules/:id", func(c *gin.Context) {
		setAuth(c)
		h.UpdateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected code 10001, got %d", resp.Code)
	}
}

func TestScheduleHandler_Update_ValidID(t *testing.T) {
	mock := &mockScheduleService{
		updateResult: &dto.ScheduleResponse{ID: testScheduleID, Day: "Sunday"},
	}
	h := NewScheduleHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/schedules/"+testScheduleID, jsonBody(dto.UpdateScheduleRequest{
		Day:          "Sunday",
		ClassGradeID: testClassID,
		TeacherID:    testTeacherID,
		SubjectID:    testSubjectID,
		PeriodID:     testPeriodID,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/schedules/:id", func(c *gin.Context) {
		setAuth(c)
		h.UpdateSchedule(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SchoolDayHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSchoolDayHandler_Update_LastActiveRejected(t *testing.T) {
	h := NewSchoolDayHandler(&mockSchoolDayService{updateErr: service.ErrLastActiveSchoolDay})

	active := false
	w := setupRecorder()
	req := httptest.NewRequest("PUT", "/school-days/Sunday", jsonBody(dto.UpdateSchoolDayRequest{
		Active: &active,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/school-days/:name", func(c *gin.Context) {
		setAuth(c)
		h.UpdateSchoolDay(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15002 {
		t.Errorf("expected error code 15002, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ClassTimetable_Success(t *testing.T) {
	mock := &mockExportService{
		excelBuf:      bytes.NewBufferString("excel content"),
		excelFilename: "timetable_G1_2082.xlsx",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/class-timetable?class_grade_id="+testClassID, nil)

	r := gin.New()
	r.GET("/export/class-timetable", h.ExportClassTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != contentTypeXLSX {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_ClassTimetable_MissingClassID(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/class-timetable", nil)

	r := gin.New()
	r.GET("/export/class-timetable", h.ExportClassTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ClassTimetable_NoSchedules(t *testing.T) {
	h := NewExportHandler(&mockExportService{excelErr: service.ErrExportNoSchedules})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/class-timetable?class_grade_id="+testClassID, nil)

	r := gin.New()
	r.GET("/export/class-timetable", h.ExportClassTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18001 {
		t.Errorf("expected error code 18001, got %d", resp.Code)
	}
}

func TestExportHandler_TeacherCalendar_Success(t *testing.T) {
	mock := &mockExportService{
		icsContent:  "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
		icsFilename: "timetable_Ram_2082.ics",
	}
	h := NewExportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/export/teacher-calendar?teacher_id="+testTeacherID, nil)

	r := gin.New()
	r.GET("/export/teacher-calendar", h.ExportTeacherCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("BEGIN:VCALENDAR")) {
		t.Error("expected iCalendar body")
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}
