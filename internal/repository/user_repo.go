package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"studyhub/internal/domain"
)

// ErrDuplicate is returned when a unique constraint rejects a create.
var ErrDuplicate = errors.New("record already exists")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Account = strings.TrimSpace(u.Account)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return mapDuplicate(err)
	}
	return nil
}

func (r *UserRepository) GetByAccount(ctx context.Context, account string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).
		Where("account = ? AND active = ?", strings.TrimSpace(account), true).
		First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) GetByIdx(ctx context.Context, idx, groupKey string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).
		Where("idx = ? AND group_key = ?", idx, groupKey).
		First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

// GetAny looks a user up by idx alone; used by the public binary stream
// endpoints, which carry no group context.
func (r *UserRepository) GetAny(ctx context.Context, idx string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).Where("idx = ?", idx).First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) ListStudents(ctx context.Context, groupKey string) ([]domain.User, error) {
	var users []domain.User
	tx := r.db.WithContext(ctx).
		Where("role = ? AND group_key = ?", domain.RoleStudent, groupKey).
		Order("id").
		Find(&users)
	return users, tx.Error
}

func (r *UserRepository) CountStudents(ctx context.Context, groupKey string) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("role = ? AND group_key = ?", domain.RoleStudent, groupKey).
		Count(&n)
	return n, tx.Error
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, idx, groupKey string) (*domain.User, error) {
	u, err := r.GetByIdx(ctx, idx, groupKey)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) ToggleActive(ctx context.Context, idx, groupKey string) (*domain.User, error) {
	u, err := r.GetByIdx(ctx, idx, groupKey)
	if err != nil {
		return nil, err
	}
	u.Active = !u.Active
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// TouchLogin records last-online and login IP; callers treat failures as
// best-effort.
func (r *UserRepository) TouchLogin(ctx context.Context, idx, ip string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("idx = ?", idx).
		Updates(map[string]any{"last_online": now, "login_ip": ip}).Error
}

func mapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	// sqlite unique violations surface as plain errors with this text
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}
