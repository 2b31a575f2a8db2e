package auth

import (
	"context"

	"studyhub/internal/domain"
)

// UserRepository defines the user lookups the auth service needs
type UserRepository interface {
	GetByAccount(ctx context.Context, account string) (*domain.User, error)
	TouchLogin(ctx context.Context, idx, ip string) error
}
