package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/conflict"
	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/model"
	"github.com/Prakash2p/school/internal/repository"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
)

// ── 节次模块业务错误 ──

var (
	ErrPeriodNotFound     = errors.New("节次不存在")
	ErrPeriodTimeInvalid  = errors.New("节次时间格式必须为 HH:MM 且结束时间晚于开始时间")
	ErrPeriodOverlap      = errors.New("节次时间区间与已有节次重叠")
	ErrPeriodHasSchedules = errors.New("节次上已有排课记录，不能改为课间")
)

// PeriodService 节次业务接口
type PeriodService interface {
	Create(ctx context.Context, req *dto.CreatePeriodRequest, callerID string) (*dto.PeriodResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PeriodResponse, error)
	List(ctx context.Context) ([]dto.PeriodResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdatePeriodRequest, callerID string) (*dto.PeriodResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type periodService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPeriodService 创建 PeriodService 实例
func NewPeriodService(repo *repository.Repository, logger *zap.Logger) PeriodService {
	return &periodService{repo: repo, logger: logger}
}

// validateClock 校验 "HH:MM" 24 小时制格式
func validateClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// checkOverlap 校验候选节次与现存节次的区间互斥；excludeID 用于更新时排除自身
func (s *periodService) checkOverlap(ctx context.Context, candidate model.Period, excludeID string) error {
	periods, err := s.repo.Period.List(ctx)
	if err != nil {
		s.logger.Error("列出节次失败", zap.Error(err))
		return err
	}
	for i := range periods {
		if excludeID != "" && periods[i].PeriodID == excludeID {
			continue
		}
		if conflict.PeriodsOverlap(candidate, periods[i]) {
			return pkgerrors.NewValidation("time", "时间区间与已有节次重叠", ErrPeriodOverlap)
		}
	}
	return nil
}

func (s *periodService) Create(ctx context.Context, req *dto.CreatePeriodRequest, callerID string) (*dto.PeriodResponse, error) {
	if !validateClock(req.StartTime) || !validateClock(req.EndTime) || req.StartTime >= req.EndTime {
		return nil, pkgerrors.NewValidation("time", "时间格式必须为 HH:MM 且结束时间晚于开始时间", ErrPeriodTimeInvalid)
	}

	period := &model.Period{
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsInterval: req.IsInterval,
	}
	period.CreatedBy = &callerID
	period.UpdatedBy = &callerID

	if err := s.checkOverlap(ctx, *period, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Period.Create(ctx, period); err != nil {
		s.logger.Error("创建节次失败", zap.Error(err))
		return nil, err
	}

	return s.toPeriodResponse(period), nil
}

func (s *periodService) GetByID(ctx context.Context, id string) (*dto.PeriodResponse, error) {
	period, err := s.repo.Period.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("period", id, ErrPeriodNotFound)
		}
		s.logger.Error("查询节次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toPeriodResponse(period), nil
}

func (s *periodService) List(ctx context.Context) ([]dto.PeriodResponse, error) {
	periods, err := s.repo.Period.List(ctx)
	if err != nil {
		s.logger.Error("列出节次失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PeriodResponse, 0, len(periods))
	for i := range periods {
		result = append(result, *s.toPeriodResponse(&periods[i]))
	}

	return result, nil
}

func (s *periodService) Update(ctx context.Context, id string, req *dto.UpdatePeriodRequest, callerID string) (*dto.PeriodResponse, error) {
	period, err := s.repo.Period.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("period", id, ErrPeriodNotFound)
		}
		s.logger.Error("查询节次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		period.Name = *req.Name
	}
	if req.StartTime != nil {
		if !validateClock(*req.StartTime) {
			return nil, pkgerrors.NewValidation("start_time", "时间格式必须为 HH:MM", ErrPeriodTimeInvalid)
		}
		period.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if !validateClock(*req.EndTime) {
			return nil, pkgerrors.NewValidation("end_time", "时间格式必须为 HH:MM", ErrPeriodTimeInvalid)
		}
		period.EndTime = *req.EndTime
	}
	if period.StartTime >= period.EndTime {
		return nil, pkgerrors.NewValidation("time", "结束时间必须晚于开始时间", ErrPeriodTimeInvalid)
	}
	if req.IsInterval != nil {
		// 教学节次改为课间前必须确认其上没有排课，否则会留下引用课间节次的
		// 排课记录，破坏"课间不可排课"约束
		if *req.IsInterval && !period.IsInterval {
			count, err := s.repo.Schedule.CountByPeriod(ctx, id)
			if err != nil {
				s.logger.Error("统计节次排课失败", zap.String("id", id), zap.Error(err))
				return nil, err
			}
			if count > 0 {
				return nil, pkgerrors.NewValidation("is_interval", "节次上已有排课记录，不能改为课间", ErrPeriodHasSchedules)
			}
		}
		period.IsInterval = *req.IsInterval
	}
	period.UpdatedBy = &callerID

	if err := s.checkOverlap(ctx, *period, id); err != nil {
		return nil, err
	}

	if err := s.repo.Period.Update(ctx, period); err != nil {
		s.logger.Error("更新节次失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toPeriodResponse(period), nil
}

// Delete 删除节次并级联清理该节次上的全部排课记录，同一事务内完成
func (s *periodService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Period.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("period", id, ErrPeriodNotFound)
		}
		s.logger.Error("查询节次失败", zap.String("id", id), zap.Error(err))
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

	if err := txRepo.Schedule.DeleteByPeriod(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("级联删除节次排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := txRepo.Period.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除节次失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("节次已删除", zap.String("id", id), zap.String("caller", callerID))
	return nil
}

// ── 内部辅助方法 ──

func (s *periodService) toPeriodResponse(period *model.Period) *dto.PeriodResponse {
	return &dto.PeriodResponse{
		ID:         period.PeriodID,
		Name:       period.Name,
		StartTime:  period.StartTime,
		EndTime:    period.EndTime,
		IsInterval: period.IsInterval,
		CreatedAt:  period.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  period.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
