package auth

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studyhub/internal/domain"
)

type jwtService interface {
	GenerateToken(userIdx, role, group string) (string, error)
}

// Service contains all business logic for authentication
type Service struct {
	users UserRepository
	jwt   jwtService
}

func NewService(users UserRepository, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

// Login verifies the account+password pair and issues a bearer token
// carrying the user's idx, role and group.
func (s *Service) Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResponse, error) {
	user, err := s.users.GetByAccount(ctx, req.Account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.Idx, string(user.Role), user.GroupKey)
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchLogin(ctx, user.Idx, clientIP); err != nil {
		log.Printf("auth: failed to record login for %s: %v", user.Idx, err)
	}

	return &LoginResponse{
		Token: token,
		User:  PublicUser(user),
	}, nil
}

func PublicUser(u *domain.User) UserPublic {
	return UserPublic{
		Idx:       u.Idx,
		Name:      u.Name,
		Role:      string(u.Role),
		Group:     u.GroupKey,
		AvatarURL: u.AvatarURL,
	}
}
