package userinfo

import (
	"context"

	"studyhub/internal/domain"
)

// UserRepository defines the interface for profile persistence
type UserRepository interface {
	GetByIdx(ctx context.Context, idx, groupKey string) (*domain.User, error)
	GetAny(ctx context.Context, idx string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// GroupRepository resolves the tenant record and its storage root
type GroupRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.Group, error)
}

// QuotaChecker is the shared quota policy evaluator
type QuotaChecker interface {
	CheckStorage(ctx context.Context, groupKey string, incomingBytes int64) error
}
