package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/model"
	"github.com/Prakash2p/school/internal/repository"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
)

// ── 管理员模块业务错误 ──

var (
	ErrAdminNotFound       = errors.New("管理员不存在")
	ErrUsernameTaken       = errors.New("用户名已被占用")
	ErrCannotDeleteSelf    = errors.New("不能删除当前登录的管理员")
	ErrCannotDemoteLastSup = errors.New("必须保留至少一名超级管理员")
)

// AdminService 管理员账号管理接口（仅 SuperAdmin 可用，由路由层限制）
type AdminService interface {
	Create(ctx context.Context, req *dto.CreateAdminRequest, callerID string) (*dto.AdminUserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AdminUserResponse, error)
	List(ctx context.Context) ([]dto.AdminUserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAdminRequest, callerID string) (*dto.AdminUserResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

func (s *adminService) Create(ctx context.Context, req *dto.CreateAdminRequest, callerID string) (*dto.AdminUserResponse, error) {
	if _, err := s.repo.AdminUser.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询管理员失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码散列失败", zap.Error(err))
		return nil, err
	}

	user := &model.AdminUser{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		Name:         req.Name,
		Email:        req.Email,
	}
	user.CreatedBy = &callerID
	user.UpdatedBy = &callerID

	if err := s.repo.AdminUser.Create(ctx, user); err != nil {
		s.logger.Error("创建管理员失败", zap.Error(err))
		return nil, err
	}

	return toAdminUserResponse(user), nil
}

func (s *adminService) GetByID(ctx context.Context, id string) (*dto.AdminUserResponse, error) {
	user, err := s.repo.AdminUser.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("admin", id, ErrAdminNotFound)
		}
		s.logger.Error("查询管理员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAdminUserResponse(user), nil
}

func (s *adminService) List(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.repo.AdminUser.List(ctx)
	if err != nil {
		s.logger.Error("列出管理员失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toAdminUserResponse(&users[i]))
	}

	return result, nil
}

func (s *adminService) Update(ctx context.Context, id string, req *dto.UpdateAdminRequest, callerID string) (*dto.AdminUserResponse, error) {
	user, err := s.repo.AdminUser.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("admin", id, ErrAdminNotFound)
		}
		s.logger.Error("查询管理员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Role != nil && user.Role == "SuperAdmin" && *req.Role != "SuperAdmin" {
		last, err := s.isLastSuperAdmin(ctx, id)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, ErrCannotDemoteLastSup
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	user.UpdatedBy = &callerID

	if err := s.repo.AdminUser.Update(ctx, user); err != nil {
		s.logger.Error("更新管理员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAdminUserResponse(user), nil
}

func (s *adminService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrCannotDeleteSelf
	}

	user, err := s.repo.AdminUser.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("admin", id, ErrAdminNotFound)
		}
		s.logger.Error("查询管理员失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if user.Role == "SuperAdmin" {
		last, err := s.isLastSuperAdmin(ctx, id)
		if err != nil {
			return err
		}
		if last {
			return ErrCannotDemoteLastSup
		}
	}

	if err := s.repo.AdminUser.Delete(ctx, id); err != nil {
		s.logger.Error("删除管理员失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("管理员已删除", zap.String("id", id), zap.String("caller", callerID))
	return nil
}

// ── 内部辅助方法 ──

// isLastSuperAdmin 判断 id 是否为仅存的 SuperAdmin
func (s *adminService) isLastSuperAdmin(ctx context.Context, id string) (bool, error) {
	users, err := s.repo.AdminUser.List(ctx)
	if err != nil {
		s.logger.Error("列出管理员失败", zap.Error(err))
		return false, err
	}
	for i := range users {
		if users[i].Role == "SuperAdmin" && users[i].AdminUserID != id {
			return false, nil
		}
	}
	return true, nil
}

func toAdminUserResponse(user *model.AdminUser) *dto.AdminUserResponse {
	resp := &dto.AdminUserResponse{
		ID:        user.AdminUserID,
		Username:  user.Username,
		Role:      user.Role,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if user.LastLogin != nil {
		resp.LastLogin = user.LastLogin.Format("2006-01-02T15:04:05Z")
	}
	return resp
}
