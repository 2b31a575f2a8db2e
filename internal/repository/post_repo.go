package repository

import (
	"context"

	"gorm.io/gorm"

	"studyhub/internal/domain"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return mapDuplicate(err)
	}
	return nil
}

func (r *PostRepository) GetByIdx(ctx context.Context, idx, groupKey string) (*domain.Post, error) {
	var p domain.Post
	tx := r.db.WithContext(ctx).
		Where("idx = ? AND group_key = ?", idx, groupKey).
		First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// GetAny looks a post up by idx alone; used by the public binary stream
// endpoints, which carry no group context.
func (r *PostRepository) GetAny(ctx context.Context, idx string) (*domain.Post, error) {
	var p domain.Post
	tx := r.db.WithContext(ctx).Where("idx = ?", idx).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// ListPage returns one feed page, newest first. When visibleOnly is set,
// inactive posts are filtered out (the student view).
func (r *PostRepository) ListPage(ctx context.Context, groupKey string, visibleOnly bool, page, pageSize int) ([]domain.Post, error) {
	if page < 1 {
		page = 1
	}
	q := r.db.WithContext(ctx).Where("group_key = ?", groupKey)
	if visibleOnly {
		q = q.Where("active = ?", true)
	}

	var posts []domain.Post
	tx := q.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts)
	return posts, tx.Error
}

func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PostRepository) Delete(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Delete(p).Error
}
