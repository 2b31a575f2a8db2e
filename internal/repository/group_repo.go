package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"studyhub/internal/domain"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, g *domain.Group) error {
	g.Key = strings.TrimSpace(g.Key)
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GroupRepository) GetByKey(ctx context.Context, key string) (*domain.Group, error) {
	var g domain.Group
	tx := r.db.WithContext(ctx).
		Where("group_key = ? AND active = ?", strings.TrimSpace(key), true).
		First(&g)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &g, nil
}

func (r *GroupRepository) UpdateLimits(ctx context.Context, key string, limits domain.Limits) error {
	return r.db.WithContext(ctx).
		Model(&domain.Group{}).
		Where("group_key = ?", key).
		Updates(map[string]any{
			"limit_storage_mb": limits.StorageMB,
			"limit_courses":    limits.Courses,
			"limit_students":   limits.Students,
		}).Error
}
