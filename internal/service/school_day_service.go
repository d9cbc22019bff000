package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/repository"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
)

// ── 上课日模块业务错误 ──

var (
	ErrSchoolDayNotFound   = errors.New("上课日不存在")
	ErrLastActiveSchoolDay = errors.New("至少保留一个启用的上课日")
)

// SchoolDayService 上课日业务接口
// 七天固定行由迁移种子写入，只支持查询与启用状态切换
type SchoolDayService interface {
	List(ctx context.Context) ([]dto.SchoolDayResponse, error)
	ListActive(ctx context.Context) ([]dto.SchoolDayResponse, error)
	Update(ctx context.Context, name string, req *dto.UpdateSchoolDayRequest, callerID string) (*dto.SchoolDayResponse, error)
}

type schoolDayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolDayService 创建 SchoolDayService 实例
func NewSchoolDayService(repo *repository.Repository, logger *zap.Logger) SchoolDayService {
	return &schoolDayService{repo: repo, logger: logger}
}

func (s *schoolDayService) List(ctx context.Context) ([]dto.SchoolDayResponse, error) {
	days, err := s.repo.SchoolDay.List(ctx)
	if err != nil {
		s.logger.Error("列出上课日失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolDayResponse, 0, len(days))
	for i := range days {
		result = append(result, dto.SchoolDayResponse{Name: days[i].Name, Active: days[i].Active})
	}

	return result, nil
}

func (s *schoolDayService) ListActive(ctx context.Context) ([]dto.SchoolDayResponse, error) {
	days, err := s.repo.SchoolDay.ListActive(ctx)
	if err != nil {
		s.logger.Error("列出启用上课日失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolDayResponse, 0, len(days))
	for i := range days {
		result = append(result, dto.SchoolDayResponse{Name: days[i].Name, Active: days[i].Active})
	}

	return result, nil
}

// Update 切换上课日启用状态。停用最后一个启用的上课日会被拒绝。
// 停用不删除该日已有排课记录：记录保留，重新启用后原样可见。
func (s *schoolDayService) Update(ctx context.Context, name string, req *dto.UpdateSchoolDayRequest, callerID string) (*dto.SchoolDayResponse, error) {
	day, err := s.repo.SchoolDay.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("school_day", name, ErrSchoolDayNotFound)
		}
		s.logger.Error("查询上课日失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	if day.Active && !*req.Active {
		active, err := s.repo.SchoolDay.CountActive(ctx)
		if err != nil {
			s.logger.Error("统计启用上课日失败", zap.Error(err))
			return nil, err
		}
		if active <= 1 {
			return nil, pkgerrors.NewValidation("active", "至少保留一个启用的上课日", ErrLastActiveSchoolDay)
		}
	}

	day.Active = *req.Active
	day.UpdatedBy = &callerID

	if err := s.repo.SchoolDay.Update(ctx, day); err != nil {
		s.logger.Error("更新上课日失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	return &dto.SchoolDayResponse{Name: day.Name, Active: day.Active}, nil
}
