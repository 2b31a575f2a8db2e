package domain

import "time"

// PaperRecord is one exam paper a teacher has logged as worked through
// with the group.
type PaperRecord struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Idx        string `json:"idx" gorm:"uniqueIndex;size:36"`
	GroupKey   string `json:"group" gorm:"index"`
	CreatorIdx string `json:"creator_idx" gorm:"size:36;index"`
	Name       string `json:"name"`

	CreatedAt time.Time `json:"created_at"`
}

func (PaperRecord) TableName() string { return "paper_records" }
