package post

import (
	"context"

	"studyhub/internal/domain"
)

// PostRepository defines the interface for post persistence
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	GetByIdx(ctx context.Context, idx, groupKey string) (*domain.Post, error)
	GetAny(ctx context.Context, idx string) (*domain.Post, error)
	ListPage(ctx context.Context, groupKey string, visibleOnly bool, page, pageSize int) ([]domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, p *domain.Post) error
}

// GroupRepository resolves the tenant record and its storage root
type GroupRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.Group, error)
}

// QuotaChecker is the shared quota policy evaluator
type QuotaChecker interface {
	CheckStorage(ctx context.Context, groupKey string, incomingBytes int64) error
}
