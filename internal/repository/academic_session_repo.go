package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/model"
)

// AcademicSessionRepository 学年数据访问接口
type AcademicSessionRepository interface {
	Create(ctx context.Context, session *model.AcademicSession) error
	GetByID(ctx context.Context, id string) (*model.AcademicSession, error)
	GetActive(ctx context.Context) (*model.AcademicSession, error)
	GetLatestExcept(ctx context.Context, excludeID string) (*model.AcademicSession, error)
	List(ctx context.Context) ([]model.AcademicSession, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, session *model.AcademicSession) error
	Delete(ctx context.Context, id string) error
	ClearActive(ctx context.Context) error
}

type academicSessionRepo struct {
	db *gorm.DB
}

// NewAcademicSessionRepo 创建 AcademicSessionRepository 实例
func NewAcademicSessionRepo(db *gorm.DB) AcademicSessionRepository {
	return &academicSessionRepo{db: db}
}

func (r *academicSessionRepo) Create(ctx context.Context, session *model.AcademicSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *academicSessionRepo) GetByID(ctx context.Context, id string) (*model.AcademicSession, error) {
	var session model.AcademicSession
	err := r.db.WithContext(ctx).
		Where("academic_session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *academicSessionRepo) GetActive(ctx context.Context) (*model.AcademicSession, error) {
	var session model.AcademicSession
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetLatestExcept 取排除指定学年后开始日期最晚的学年
// 删除当前激活学年时，用它确定接任者
func (r *academicSessionRepo) GetLatestExcept(ctx context.Context, excludeID string) (*model.AcademicSession, error) {
	var session model.AcademicSession
	err := r.db.WithContext(ctx).
		Where("academic_session_id != ?", excludeID).
		Order("start_date DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *academicSessionRepo) List(ctx context.Context) ([]model.AcademicSession, error) {
	var sessions []model.AcademicSession
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *academicSessionRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.AcademicSession{}).
		Count(&total).Error
	return total, err
}

func (r *academicSessionRepo) Update(ctx context.Context, session *model.AcademicSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *academicSessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("academic_session_id = ?", id).
		Delete(&model.AcademicSession{}).Error
}

// ClearActive 将所有学年的 is_active 置为 false
func (r *academicSessionRepo) ClearActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&model.AcademicSession{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}
