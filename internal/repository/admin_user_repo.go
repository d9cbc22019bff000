package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/model"
)

// AdminUserRepository 管理员数据访问接口
type AdminUserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	GetByID(ctx context.Context, id string) (*model.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	List(ctx context.Context) ([]model.AdminUser, error)
	Update(ctx context.Context, user *model.AdminUser) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type adminUserRepo struct {
	db *gorm.DB
}

// NewAdminUserRepo 创建 AdminUserRepository 实例
func NewAdminUserRepo(db *gorm.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) Create(ctx context.Context, user *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *adminUserRepo) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.WithContext(ctx).
		Where("admin_user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepo) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepo) List(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *adminUserRepo) Update(ctx context.Context, user *model.AdminUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *adminUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("admin_user_id = ?", id).
		Update("last_login", at).Error
}

func (r *adminUserRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("admin_user_id = ?", id).
		Delete(&model.AdminUser{}).Error
}
