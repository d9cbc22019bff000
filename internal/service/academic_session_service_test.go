package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/model"
	"github.com/Prakash2p/school/internal/repository"
)

// ── 测试辅助 ──

func setupSessionService() (AcademicSessionService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewAcademicSessionService(repo, zap.NewNop())
	return svc, repo
}

func seedSession(t *testing.T, repo *repository.Repository, name string, start time.Time, active bool) {
	t.Helper()
	if err := repo.AcademicSession.Create(context.Background(), &model.AcademicSession{
		Name:      name,
		StartDate: start,
		EndDate:   start.AddDate(1, 0, -1),
		IsActive:  active,
	}); err != nil {
		t.Fatalf("种子学年失败: %v", err)
	}
}

// ── Create 测试 ──

func TestSessionService_Create_FirstAutoActivates(t *testing.T) {
	svc, _ := setupSessionService()

	result, err := svc.Create(context.Background(), &dto.CreateAcademicSessionRequest{
		Name:      "2082",
		StartDate: "2025-04-14",
		EndDate:   "2026-04-13",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !result.IsActive {
		t.Error("系统中首个学年应自动激活")
	}
}

func TestSessionService_Create_SecondStaysInactive(t *testing.T) {
	svc, repo := setupSessionService()
	seedSession(t, repo, "2082", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), true)

	result, err := svc.Create(context.Background(), &dto.CreateAcademicSessionRequest{
		Name:      "2083",
		StartDate: "2026-04-14",
		EndDate:   "2027-04-13",
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.IsActive {
		t.Error("已有学年时新学年不应自动激活")
	}
}

func TestSessionService_Create_InvalidDates(t *testing.T) {
	svc, _ := setupSessionService()

	_, err := svc.Create(context.Background(), &dto.CreateAcademicSessionRequest{
		Name:      "bad",
		StartDate: "2026-04-14",
		EndDate:   "2025-04-13",
	}, "admin-001")
	if !errors.Is(err, ErrSessionDateInvalid) {
		t.Errorf("期望 ErrSessionDateInvalid，实际: %v", err)
	}

	_, err = svc.Create(context.Background(), &dto.CreateAcademicSessionRequest{
		Name:      "bad",
		StartDate: "not-a-date",
		EndDate:   "2026-04-13",
	}, "admin-001")
	if !errors.Is(err, ErrSessionDateInvalid) {
		t.Errorf("期望 ErrSessionDateInvalid，实际: %v", err)
	}
}

// ── Activate 测试 ──

func TestSessionService_Activate_SwitchesActive(t *testing.T) {
	svc, repo := setupSessionService()
	seedSession(t, repo, "2082", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), true)
	seedSession(t, repo, "2083", time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), false)

	if err := svc.Activate(context.Background(), "as-2083", "admin-001"); err != nil {
		t.Fatalf("Activate 应成功: %v", err)
	}

	active, err := repo.AcademicSession.GetActive(context.Background())
	if err != nil {
		t.Fatalf("查询激活学年失败: %v", err)
	}
	if active.AcademicSessionID != "as-2083" {
		t.Errorf("激活学年应为 as-2083，实际=%s", active.AcademicSessionID)
	}

	old, _ := repo.AcademicSession.GetByID(context.Background(), "as-2082")
	if old.IsActive {
		t.Error("原激活学年应被取消激活")
	}
}

func TestSessionService_Activate_NotFound(t *testing.T) {
	svc, _ := setupSessionService()

	err := svc.Activate(context.Background(), "nonexistent", "admin-001")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 ErrSessionNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestSessionService_Delete_LastOneRejected(t *testing.T) {
	svc, repo := setupSessionService()
	seedSession(t, repo, "2082", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), true)

	err := svc.Delete(context.Background(), "as-2082", "admin-001")
	if !errors.Is(err, ErrSessionLastOne) {
		t.Errorf("期望 ErrSessionLastOne，实际: %v", err)
	}
}

func TestSessionService_Delete_ActivePromotesLatest(t *testing.T) {
	svc, repo := setupSessionService()
	seedSession(t, repo, "2081", time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC), false)
	seedSession(t, repo, "2082", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), true)
	seedSession(t, repo, "2083", time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), false)

	if err := svc.Delete(context.Background(), "as-2082", "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	// 开始日期最晚的剩余学年接任激活
	active, err := repo.AcademicSession.GetActive(context.Background())
	if err != nil {
		t.Fatalf("删除激活学年后应有接任者: %v", err)
	}
	if active.AcademicSessionID != "as-2083" {
		t.Errorf("接任学年应为 as-2083，实际=%s", active.AcademicSessionID)
	}
}

func TestSessionService_Delete_CascadesSchedules(t *testing.T) {
	svc, repo := setupSessionService()
	seedSession(t, repo, "2082", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), true)
	seedSession(t, repo, "2083", time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), false)

	ctx := context.Background()
	if err := repo.Schedule.Create(ctx, &model.Schedule{
		Day: "Sunday", ClassGradeID: "cg-1", TeacherID: "t-1",
		SubjectID: "sub-1", PeriodID: "p-1", AcademicSessionID: "as-2083",
	}); err != nil {
		t.Fatalf("种子排课失败: %v", err)
	}

	if err := svc.Delete(ctx, "as-2083", "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	remaining, _ := repo.Schedule.ListBySession(ctx, "as-2083")
	if len(remaining) != 0 {
		t.Errorf("学年删除后其排课应被级联清理，剩余 %d 条", len(remaining))
	}
}

func TestSessionService_Delete_InactiveKeepsActive(t *testing.T) {
	svc, repo := setupSessionService()
	seedSession(t, repo, "2082", time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), true)
	seedSession(t, repo, "2083", time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), false)

	if err := svc.Delete(context.Background(), "as-2083", "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	active, err := repo.AcademicSession.GetActive(context.Background())
	if err != nil {
		t.Fatalf("查询激活学年失败: %v", err)
	}
	if active.AcademicSessionID != "as-2082" {
		t.Errorf("删除非激活学年不应改变激活学年，实际=%s", active.AcademicSessionID)
	}
}

// ── GetActive 测试 ──

func TestSessionService_GetActive_None(t *testing.T) {
	svc, _ := setupSessionService()

	_, err := svc.GetActive(context.Background())
	if !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("期望 ErrNoActiveSession，实际: %v", err)
	}
}
