package material

import (
	"context"

	"studyhub/internal/domain"
)

// CourseRepository is the slice of course persistence the material service
// needs: materials live inside the course record.
type CourseRepository interface {
	GetByIdx(ctx context.Context, idx, groupKey string) (*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) error
}

// QuotaChecker is the shared quota policy evaluator
type QuotaChecker interface {
	CheckStorage(ctx context.Context, groupKey string, incomingBytes int64) error
}
