package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/model"
)

// SchoolDayRepository 上课日数据访问接口
// 七行固定数据由迁移种子写入，只支持查询与启用状态切换
type SchoolDayRepository interface {
	GetByName(ctx context.Context, name string) (*model.SchoolDay, error)
	List(ctx context.Context) ([]model.SchoolDay, error)
	ListActive(ctx context.Context) ([]model.SchoolDay, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, day *model.SchoolDay) error
}

type schoolDayRepo struct {
	db *gorm.DB
}

// NewSchoolDayRepo 创建 SchoolDayRepository 实例
func NewSchoolDayRepo(db *gorm.DB) SchoolDayRepository {
	return &schoolDayRepo{db: db}
}

func (r *schoolDayRepo) GetByName(ctx context.Context, name string) (*model.SchoolDay, error) {
	var day model.SchoolDay
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *schoolDayRepo) List(ctx context.Context) ([]model.SchoolDay, error) {
	var days []model.SchoolDay
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&days).Error
	return days, err
}

func (r *schoolDayRepo) ListActive(ctx context.Context) ([]model.SchoolDay, error) {
	var days []model.SchoolDay
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Find(&days).Error
	return days, err
}

func (r *schoolDayRepo) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.SchoolDay{}).
		Where("active = ?", true).
		Count(&total).Error
	return total, err
}

func (r *schoolDayRepo) Update(ctx context.Context, day *model.SchoolDay) error {
	return r.db.WithContext(ctx).Save(day).Error
}
