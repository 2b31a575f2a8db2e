package domain

import "time"

type Post struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Idx        string `json:"idx" gorm:"uniqueIndex;size:36"`
	GroupKey   string `json:"group" gorm:"index"`
	CreatorIdx string `json:"creator_idx" gorm:"size:36;index"`
	Content    string `json:"content"`

	FolderPath string `json:"-"`
	Active     bool   `json:"active" gorm:"default:true"`

	// Attachments empty while the post folder holds files means a legacy
	// record whose images were never catalogued; the first read migrates it
	// by scanning the folder and persisting explicit records.
	Attachments []Attachment `json:"attachments" gorm:"serializer:json"`
	Likes       []string     `json:"-" gorm:"serializer:json"`
	Comments    []Comment    `json:"comments" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

type Comment struct {
	UserIdx     string    `json:"user_idx"`
	Fingerprint string    `json:"-"`
	Body        string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// LikedBy reports whether the user idx has liked the post.
func (p *Post) LikedBy(idx string) bool {
	for _, l := range p.Likes {
		if l == idx {
			return true
		}
	}
	return false
}
