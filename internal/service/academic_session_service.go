package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/model"
	"github.com/Prakash2p/school/internal/repository"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
)

// ── 学年模块业务错误 ──

var (
	ErrSessionNotFound    = errors.New("学年不存在")
	ErrSessionDateInvalid = errors.New("学年结束日期必须晚于开始日期")
	ErrSessionLastOne     = errors.New("不能删除最后一个学年")
	ErrNoActiveSession    = errors.New("当前没有激活的学年")
)

// AcademicSessionService 学年业务接口
type AcademicSessionService interface {
	Create(ctx context.Context, req *dto.CreateAcademicSessionRequest, callerID string) (*dto.AcademicSessionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AcademicSessionResponse, error)
	GetActive(ctx context.Context) (*dto.AcademicSessionResponse, error)
	List(ctx context.Context) ([]dto.AcademicSessionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAcademicSessionRequest, callerID string) (*dto.AcademicSessionResponse, error)
	Activate(ctx context.Context, id string, callerID string) error
	Delete(ctx context.Context, id string, callerID string) error
}

type academicSessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAcademicSessionService 创建 AcademicSessionService 实例
func NewAcademicSessionService(repo *repository.Repository, logger *zap.Logger) AcademicSessionService {
	return &academicSessionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 创建学年。系统中第一个学年自动激活，保证"有学年即有激活学年"
func (s *academicSessionService) Create(ctx context.Context, req *dto.CreateAcademicSessionRequest, callerID string) (*dto.AcademicSessionResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, pkgerrors.NewValidation("start_date", "日期格式必须为 YYYY-MM-DD", ErrSessionDateInvalid)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, pkgerrors.NewValidation("end_date", "日期格式必须为 YYYY-MM-DD", ErrSessionDateInvalid)
	}
	if !endDate.After(startDate) {
		return nil, pkgerrors.NewValidation("end_date", "结束日期必须晚于开始日期", ErrSessionDateInvalid)
	}

	total, err := s.repo.AcademicSession.Count(ctx)
	if err != nil {
		s.logger.Error("统计学年失败", zap.Error(err))
		return nil, err
	}

	session := &model.AcademicSession{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  total == 0, // 首个学年自动激活
	}
	session.CreatedBy = &callerID
	session.UpdatedBy = &callerID

	if err := s.repo.AcademicSession.Create(ctx, session); err != nil {
		s.logger.Error("创建学年失败", zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

// ────────────────────── GetByID / GetActive / List ──────────────────────

func (s *academicSessionService) GetByID(ctx context.Context, id string) (*dto.AcademicSessionResponse, error) {
	session, err := s.repo.AcademicSession.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("session", id, ErrSessionNotFound)
		}
		s.logger.Error("查询学年失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

func (s *academicSessionService) GetActive(ctx context.Context) (*dto.AcademicSessionResponse, error) {
	session, err := s.repo.AcademicSession.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSession
		}
		s.logger.Error("查询激活学年失败", zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

func (s *academicSessionService) List(ctx context.Context) ([]dto.AcademicSessionResponse, error) {
	sessions, err := s.repo.AcademicSession.List(ctx)
	if err != nil {
		s.logger.Error("列出学年失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AcademicSessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *s.toSessionResponse(&sessions[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *academicSessionService) Update(ctx context.Context, id string, req *dto.UpdateAcademicSessionRequest, callerID string) (*dto.AcademicSessionResponse, error) {
	session, err := s.repo.AcademicSession.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("session", id, ErrSessionNotFound)
		}
		s.logger.Error("查询学年失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		session.Name = *req.Name
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, pkgerrors.NewValidation("start_date", "日期格式必须为 YYYY-MM-DD", ErrSessionDateInvalid)
		}
		session.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, pkgerrors.NewValidation("end_date", "日期格式必须为 YYYY-MM-DD", ErrSessionDateInvalid)
		}
		session.EndDate = endDate
	}
	if !session.EndDate.After(session.StartDate) {
		return nil, pkgerrors.NewValidation("end_date", "结束日期必须晚于开始日期", ErrSessionDateInvalid)
	}
	session.UpdatedBy = &callerID

	if err := s.repo.AcademicSession.Update(ctx, session); err != nil {
		s.logger.Error("更新学年失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSessionResponse(session), nil
}

// ────────────────────── Activate ──────────────────────

// Activate 激活指定学年。ClearActive + Update 在同一事务内完成，
// 保证"有且仅有一个激活学年"不变量
func (s *academicSessionService) Activate(ctx context.Context, id string, callerID string) error {
	session, err := s.repo.AcademicSession.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("session", id, ErrSessionNotFound)
		}
		s.logger.Error("查询学年失败", zap.String("id", id), zap.Error(err))
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.AcademicSession.ClearActive(ctx); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("清除激活学年失败", zap.Error(err))
		return err
	}

	session.IsActive = true
	session.UpdatedBy = &callerID

	if err := txRepo.AcademicSession.Update(ctx, session); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("激活学年失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除学年及其全部排课记录。最后一个学年不可删除；
// 删除的是激活学年时，开始日期最晚的剩余学年在同一事务内接任激活
func (s *academicSessionService) Delete(ctx context.Context, id string, callerID string) error {
	session, err := s.repo.AcademicSession.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("session", id, ErrSessionNotFound)
		}
		s.logger.Error("查询学年失败", zap.String("id", id), zap.Error(err))
		return err
	}

	total, err := s.repo.AcademicSession.Count(ctx)
	if err != nil {
		s.logger.Error("统计学年失败", zap.Error(err))
		return err
	}
	if total <= 1 {
		return pkgerrors.NewValidation("", "不能删除最后一个学年", ErrSessionLastOne)
	}

	// 激活学年被删除时确定接任者
	var successor *model.AcademicSession
	if session.IsActive {
		successor, err = s.repo.AcademicSession.GetLatestExcept(ctx, id)
		if err != nil {
			s.logger.Error("查询接任学年失败", zap.Error(err))
			return err
		}
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Schedule.DeleteBySession(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("级联删除学年排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := txRepo.AcademicSession.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除学年失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if successor != nil {
		successor.IsActive = true
		successor.UpdatedBy = &callerID
		if err := txRepo.AcademicSession.Update(ctx, successor); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("接任激活学年失败", zap.String("id", successor.AcademicSessionID), zap.Error(err))
			return err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("学年已删除", zap.String("id", id), zap.String("caller", callerID))
	return nil
}

// ── 内部辅助方法 ──

func (s *academicSessionService) toSessionResponse(session *model.AcademicSession) *dto.AcademicSessionResponse {
	return &dto.AcademicSessionResponse{
		ID:        session.AcademicSessionID,
		Name:      session.Name,
		StartDate: session.StartDate.Format("2006-01-02"),
		EndDate:   session.EndDate.Format("2006-01-02"),
		IsActive:  session.IsActive,
		CreatedAt: session.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: session.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
