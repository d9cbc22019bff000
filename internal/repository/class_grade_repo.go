package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/model"
)

// ClassGradeRepository 班级数据访问接口
type ClassGradeRepository interface {
	Create(ctx context.Context, classGrade *model.ClassGrade) error
	GetByID(ctx context.Context, id string) (*model.ClassGrade, error)
	List(ctx context.Context) ([]model.ClassGrade, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, classGrade *model.ClassGrade) error
	Delete(ctx context.Context, id string) error
}

type classGradeRepo struct {
	db *gorm.DB
}

// NewClassGradeRepo 创建 ClassGradeRepository 实例
func NewClassGradeRepo(db *gorm.DB) ClassGradeRepository {
	return &classGradeRepo{db: db}
}

func (r *classGradeRepo) Create(ctx context.Context, classGrade *model.ClassGrade) error {
	return r.db.WithContext(ctx).Create(classGrade).Error
}

func (r *classGradeRepo) GetByID(ctx context.Context, id string) (*model.ClassGrade, error) {
	var classGrade model.ClassGrade
	err := r.db.WithContext(ctx).
		Where("class_grade_id = ?", id).
		First(&classGrade).Error
	if err != nil {
		return nil, err
	}
	return &classGrade, nil
}

func (r *classGradeRepo) List(ctx context.Context) ([]model.ClassGrade, error) {
	var classGrades []model.ClassGrade
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&classGrades).Error
	return classGrades, err
}

func (r *classGradeRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassGrade{}).
		Count(&total).Error
	return total, err
}

func (r *classGradeRepo) Update(ctx context.Context, classGrade *model.ClassGrade) error {
	return r.db.WithContext(ctx).Save(classGrade).Error
}

func (r *classGradeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("class_grade_id = ?", id).
		Delete(&model.ClassGrade{}).Error
}
