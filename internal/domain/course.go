package domain

import "time"

const DefaultCourseType = "general"

type Course struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Idx      string `json:"idx" gorm:"uniqueIndex;size:36"`
	GroupKey string `json:"group" gorm:"index"`

	Code     string `json:"course_id"`
	Name     string `json:"course_name"`
	Type     string `json:"course_type"`
	Lecturer string `json:"lecturer"`

	// FolderPath is the course's exclusive on-disk subtree under the group
	// storage root; the whole subtree is removed when the course is deleted.
	FolderPath string `json:"-"`
	Active     bool   `json:"active" gorm:"default:true"`

	Students  []string     `json:"student_list" gorm:"serializer:json"`
	Materials []Attachment `json:"materials" gorm:"serializer:json"`
	Banner    []Attachment `json:"banner" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string { return "courses" }

// HasStudent reports whether the user idx is on the course roster.
func (c *Course) HasStudent(idx string) bool {
	for _, s := range c.Students {
		if s == idx {
			return true
		}
	}
	return false
}

// MaterialByID returns the material record with the given id, or nil.
func (c *Course) MaterialByID(id string) *Attachment {
	for i := range c.Materials {
		if c.Materials[i].ID == id {
			return &c.Materials[i]
		}
	}
	return nil
}
