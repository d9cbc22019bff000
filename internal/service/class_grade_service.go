package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/model"
	"github.com/Prakash2p/school/internal/repository"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
)

// ── 班级模块业务错误 ──

var ErrClassGradeNotFound = errors.New("班级不存在")

// ClassGradeService 班级业务接口
type ClassGradeService interface {
	Create(ctx context.Context, req *dto.CreateClassGradeRequest, callerID string) (*dto.ClassGradeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassGradeResponse, error)
	List(ctx context.Context) ([]dto.ClassGradeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassGradeRequest, callerID string) (*dto.ClassGradeResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type classGradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassGradeService 创建 ClassGradeService 实例
func NewClassGradeService(repo *repository.Repository, logger *zap.Logger) ClassGradeService {
	return &classGradeService{repo: repo, logger: logger}
}

func (s *classGradeService) Create(ctx context.Context, req *dto.CreateClassGradeRequest, callerID string) (*dto.ClassGradeResponse, error) {
	class := &model.ClassGrade{Name: req.Name}
	class.CreatedBy = &callerID
	class.UpdatedBy = &callerID

	if err := s.repo.ClassGrade.Create(ctx, class); err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, err
	}

	return s.toClassGradeResponse(class), nil
}

func (s *classGradeService) GetByID(ctx context.Context, id string) (*dto.ClassGradeResponse, error) {
	class, err := s.repo.ClassGrade.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("class", id, ErrClassGradeNotFound)
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toClassGradeResponse(class), nil
}

func (s *classGradeService) List(ctx context.Context) ([]dto.ClassGradeResponse, error) {
	classes, err := s.repo.ClassGrade.List(ctx)
	if err != nil {
		s.logger.Error("列出班级失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassGradeResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *s.toClassGradeResponse(&classes[i]))
	}

	return result, nil
}

func (s *classGradeService) Update(ctx context.Context, id string, req *dto.UpdateClassGradeRequest, callerID string) (*dto.ClassGradeResponse, error) {
	class, err := s.repo.ClassGrade.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("class", id, ErrClassGradeNotFound)
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	class.UpdatedBy = &callerID

	if err := s.repo.ClassGrade.Update(ctx, class); err != nil {
		s.logger.Error("更新班级失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toClassGradeResponse(class), nil
}

// Delete 删除班级并级联清理其全部排课记录，同一事务内完成
func (s *classGradeService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.ClassGrade.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("class", id, ErrClassGradeNotFound)
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
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

	if err := txRepo.Schedule.DeleteByClassGrade(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("级联删除班级排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := txRepo.ClassGrade.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除班级失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("班级已删除", zap.String("id", id), zap.String("caller", callerID))
	return nil
}

// ── 内部辅助方法 ──

func (s *classGradeService) toClassGradeResponse(class *model.ClassGrade) *dto.ClassGradeResponse {
	return &dto.ClassGradeResponse{
		ID:        class.ClassGradeID,
		Name:      class.Name,
		CreatedAt: class.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: class.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
