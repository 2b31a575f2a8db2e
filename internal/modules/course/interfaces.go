package course

import (
	"context"

	"studyhub/internal/domain"
)

// CourseRepository defines the interface for course persistence
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByIdx(ctx context.Context, idx, groupKey string) (*domain.Course, error)
	GetAny(ctx context.Context, idx string) (*domain.Course, error)
	ListByGroup(ctx context.Context, groupKey string) ([]domain.Course, error)
	ListVisible(ctx context.Context, groupKey string) ([]domain.Course, error)
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, c *domain.Course) error
}

// GroupRepository resolves the tenant record and its storage root
type GroupRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.Group, error)
}

// QuotaChecker is the shared quota policy evaluator
type QuotaChecker interface {
	CheckStorage(ctx context.Context, groupKey string, incomingBytes int64) error
	CheckCourseCount(ctx context.Context, groupKey string) error
}
