package paper

import (
	"context"

	"studyhub/internal/domain"
)

// PaperRepository defines the interface for exam paper record persistence
type PaperRepository interface {
	Create(ctx context.Context, p *domain.PaperRecord) error
	GetByIdx(ctx context.Context, idx, groupKey string) (*domain.PaperRecord, error)
	ListByGroup(ctx context.Context, groupKey string) ([]domain.PaperRecord, error)
	Delete(ctx context.Context, p *domain.PaperRecord) error
}
