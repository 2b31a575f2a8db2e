package repository

import (
	"context"

	"gorm.io/gorm"

	"studyhub/internal/domain"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return mapDuplicate(err)
	}
	return nil
}

func (r *CourseRepository) GetByIdx(ctx context.Context, idx, groupKey string) (*domain.Course, error) {
	var c domain.Course
	tx := r.db.WithContext(ctx).
		Where("idx = ? AND group_key = ?", idx, groupKey).
		First(&c)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

// GetAny looks a course up by idx alone; used by the public binary stream
// endpoints, which carry no group context.
func (r *CourseRepository) GetAny(ctx context.Context, idx string) (*domain.Course, error) {
	var c domain.Course
	tx := r.db.WithContext(ctx).Where("idx = ?", idx).First(&c)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *CourseRepository) ListByGroup(ctx context.Context, groupKey string) ([]domain.Course, error) {
	var courses []domain.Course
	tx := r.db.WithContext(ctx).
		Where("group_key = ?", groupKey).
		Order("id DESC").
		Find(&courses)
	return courses, tx.Error
}

// ListVisible returns only active courses; used for the student view, which
// additionally filters by roster membership in the service.
func (r *CourseRepository) ListVisible(ctx context.Context, groupKey string) ([]domain.Course, error) {
	var courses []domain.Course
	tx := r.db.WithContext(ctx).
		Where("group_key = ? AND active = ?", groupKey, true).
		Order("id DESC").
		Find(&courses)
	return courses, tx.Error
}

func (r *CourseRepository) CountByGroup(ctx context.Context, groupKey string) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Course{}).
		Where("group_key = ?", groupKey).
		Count(&n)
	return n, tx.Error
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CourseRepository) Delete(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Delete(c).Error
}
