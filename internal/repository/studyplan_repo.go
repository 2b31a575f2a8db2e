package repository

import (
	"context"

	"gorm.io/gorm"

	"studyhub/internal/domain"
)

type StudyPlanRepository struct {
	db *gorm.DB
}

func NewStudyPlanRepository(db *gorm.DB) *StudyPlanRepository {
	return &StudyPlanRepository{db: db}
}

func (r *StudyPlanRepository) Create(ctx context.Context, p *domain.StudyPlan) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return mapDuplicate(err)
	}
	return nil
}

func (r *StudyPlanRepository) GetByIdx(ctx context.Context, idx, groupKey string) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	tx := r.db.WithContext(ctx).
		Where("idx = ? AND group_key = ?", idx, groupKey).
		First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// ListByGroup returns the group's plans, newest first.
func (r *StudyPlanRepository) ListByGroup(ctx context.Context, groupKey string) ([]domain.StudyPlan, error) {
	var plans []domain.StudyPlan
	tx := r.db.WithContext(ctx).
		Where("group_key = ?", groupKey).
		Order("id DESC").
		Find(&plans)
	return plans, tx.Error
}

// ListBetween returns the group's plans dated within [from, to], both
// inclusive 2006-01-02 days.
func (r *StudyPlanRepository) ListBetween(ctx context.Context, groupKey, from, to string) ([]domain.StudyPlan, error) {
	var plans []domain.StudyPlan
	tx := r.db.WithContext(ctx).
		Where("group_key = ? AND date >= ? AND date <= ?", groupKey, from, to).
		Order("date ASC").
		Find(&plans)
	return plans, tx.Error
}

func (r *StudyPlanRepository) Update(ctx context.Context, p *domain.StudyPlan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *StudyPlanRepository) Delete(ctx context.Context, p *domain.StudyPlan) error {
	return r.db.WithContext(ctx).Delete(p).Error
}
