package repository

import (
	"context"

	"gorm.io/gorm"

	"studyhub/internal/domain"
)

type PaperRecordRepository struct {
	db *gorm.DB
}

func NewPaperRecordRepository(db *gorm.DB) *PaperRecordRepository {
	return &PaperRecordRepository{db: db}
}

func (r *PaperRecordRepository) Create(ctx context.Context, p *domain.PaperRecord) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return mapDuplicate(err)
	}
	return nil
}

func (r *PaperRecordRepository) GetByIdx(ctx context.Context, idx, groupKey string) (*domain.PaperRecord, error) {
	var p domain.PaperRecord
	tx := r.db.WithContext(ctx).
		Where("idx = ? AND group_key = ?", idx, groupKey).
		First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// ListByGroup returns the group's records, newest first.
func (r *PaperRecordRepository) ListByGroup(ctx context.Context, groupKey string) ([]domain.PaperRecord, error) {
	var records []domain.PaperRecord
	tx := r.db.WithContext(ctx).
		Where("group_key = ?", groupKey).
		Order("id DESC").
		Find(&records)
	return records, tx.Error
}

func (r *PaperRecordRepository) Delete(ctx context.Context, p *domain.PaperRecord) error {
	return r.db.WithContext(ctx).Delete(p).Error
}
