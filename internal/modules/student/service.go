package student

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studyhub/internal/domain"
	"studyhub/internal/repository"
	"studyhub/internal/storage"
)

type Service struct {
	users  UserRepository
	groups GroupRepository
	quota  QuotaChecker
}

func NewService(users UserRepository, groups GroupRepository, quota QuotaChecker) *Service {
	return &Service{users: users, groups: groups, quota: quota}
}

// Create registers a new student account. Creation touches only the
// database; the student's storage folders appear lazily on first upload.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateStudentRequest) (*domain.User, error) {
	if err := s.quota.CheckStudentCount(ctx, actor.Group); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Idx:          uuid.New().String(),
		GroupKey:     actor.Group,
		Account:      req.Account,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         domain.RoleStudent,
		Active:       true,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

// List returns the group's student accounts.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]StudentView, error) {
	students, err := s.users.ListStudents(ctx, actor.Group)
	if err != nil {
		return nil, err
	}
	out := make([]StudentView, 0, len(students))
	for _, u := range students {
		out = append(out, StudentView{
			Idx:        u.Idx,
			Account:    u.Account,
			Name:       u.Name,
			Active:     u.Active,
			LastOnline: u.LastOnline,
			CreatedAt:  u.CreatedAt,
		})
	}
	return out, nil
}

// Delete removes the account record, then best-effort removes the student's
// avatar and profile folders. Leftover folders are logged, never fatal.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, idx string) (*domain.User, error) {
	if !domain.ValidIdx(idx) {
		return nil, ErrInvalidIdx
	}

	deleted, err := s.users.Delete(ctx, idx, actor.Group)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	group, err := s.groups.GetByKey(ctx, actor.Group)
	if err != nil || group == nil {
		log.Printf("student: group lookup failed after deleting %s: %v", idx, err)
		return deleted, nil
	}
	for _, kind := range []string{storage.KindUserIcon, storage.KindUserInfo} {
		folder, err := storage.Join(group.StorageRoot, kind, idx)
		if err != nil {
			continue
		}
		if err := storage.RemoveEntityFolder(folder); err != nil {
			log.Printf("student: failed to remove %s folder for %s: %v", kind, idx, err)
		}
	}

	return deleted, nil
}

// ToggleActive flips the student's login access.
func (s *Service) ToggleActive(ctx context.Context, actor domain.Actor, idx string) (*domain.User, error) {
	if !domain.ValidIdx(idx) {
		return nil, ErrInvalidIdx
	}
	u, err := s.users.ToggleActive(ctx, idx, actor.Group)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
