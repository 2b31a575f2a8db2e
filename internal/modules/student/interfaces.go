package student

import (
	"context"

	"studyhub/internal/domain"
)

// UserRepository defines the interface for student account persistence
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	ListStudents(ctx context.Context, groupKey string) ([]domain.User, error)
	Delete(ctx context.Context, idx, groupKey string) (*domain.User, error)
	ToggleActive(ctx context.Context, idx, groupKey string) (*domain.User, error)
}

// GroupRepository resolves the tenant record and its storage root
type GroupRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.Group, error)
}

// QuotaChecker is the shared quota policy evaluator
type QuotaChecker interface {
	CheckStudentCount(ctx context.Context, groupKey string) error
}
