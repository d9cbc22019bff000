package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/model"
)

// PeriodRepository 节次数据访问接口
type PeriodRepository interface {
	Create(ctx context.Context, period *model.Period) error
	GetByID(ctx context.Context, id string) (*model.Period, error)
	List(ctx context.Context) ([]model.Period, error)
	ListTeaching(ctx context.Context) ([]model.Period, error)
	Update(ctx context.Context, period *model.Period) error
	Delete(ctx context.Context, id string) error
}

type periodRepo struct {
	db *gorm.DB
}

// NewPeriodRepo 创建 PeriodRepository 实例
func NewPeriodRepo(db *gorm.DB) PeriodRepository {
	return &periodRepo{db: db}
}

func (r *periodRepo) Create(ctx context.Context, period *model.Period) error {
	return r.db.WithContext(ctx).Create(period).Error
}

func (r *periodRepo) GetByID(ctx context.Context, id string) (*model.Period, error) {
	var period model.Period
	err := r.db.WithContext(ctx).
		Where("period_id = ?", id).
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// List 按开始时间升序列出全部节次（含课间等非教学时段）
// StartTime 为 "HH:MM" 定宽格式，字典序即时间序
func (r *periodRepo) List(ctx context.Context) ([]model.Period, error) {
	var periods []model.Period
	err := r.db.WithContext(ctx).
		Order("start_time ASC").
		Find(&periods).Error
	return periods, err
}

// ListTeaching 仅列出可排课的教学节次
func (r *periodRepo) ListTeaching(ctx context.Context) ([]model.Period, error) {
	var periods []model.Period
	err := r.db.WithContext(ctx).
		Where("is_interval = ?", false).
		Order("start_time ASC").
		Find(&periods).Error
	return periods, err
}

func (r *periodRepo) Update(ctx context.Context, period *model.Period) error {
	return r.db.WithContext(ctx).Save(period).Error
}

func (r *periodRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("period_id = ?", id).
		Delete(&model.Period{}).Error
}
