package domain

import "time"

// Group is an isolated tenant: one customer account with its own storage
// subtree under StorageRoot and its own resource limits. StorageRoot is
// unique across groups; two groups sharing a subtree would break quota
// isolation.
type Group struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"column:group_key;uniqueIndex"`
	StorageRoot string    `json:"-" gorm:"uniqueIndex"`
	Limits      Limits    `json:"limits" gorm:"embedded;embeddedPrefix:limit_"`
	Active      bool      `json:"active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Group) TableName() string { return "groups" }

// Limits holds the per-group quota dimensions. Defaults match the free tier.
type Limits struct {
	StorageMB float64 `json:"storage_mb" gorm:"default:512"`
	Courses   int     `json:"courses" gorm:"default:1"`
	Students  int     `json:"students" gorm:"default:1"`
}
