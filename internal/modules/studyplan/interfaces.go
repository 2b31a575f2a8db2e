package studyplan

import (
	"context"

	"studyhub/internal/domain"
)

// PlanRepository defines the interface for study plan persistence
type PlanRepository interface {
	Create(ctx context.Context, p *domain.StudyPlan) error
	GetByIdx(ctx context.Context, idx, groupKey string) (*domain.StudyPlan, error)
	ListByGroup(ctx context.Context, groupKey string) ([]domain.StudyPlan, error)
	ListBetween(ctx context.Context, groupKey, from, to string) ([]domain.StudyPlan, error)
	Update(ctx context.Context, p *domain.StudyPlan) error
	Delete(ctx context.Context, p *domain.StudyPlan) error
}
