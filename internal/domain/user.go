package domain

import "time"

type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// VisitorAccount is a shared read-only demo login; it may never mutate its
// own profile or avatar.
const VisitorAccount = "Visitor"

type User struct {
	ID           int64    `json:"id" gorm:"primaryKey"`
	Idx          string   `json:"idx" gorm:"uniqueIndex;size:36"`
	GroupKey     string   `json:"group" gorm:"index"`
	Account      string   `json:"account" gorm:"uniqueIndex"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	Active       bool     `json:"active" gorm:"default:true"`

	// Avatar and photo sticker are single-attachment slots: URL is the
	// public API path, Path the on-disk original inside the group subtree.
	AvatarURL   string `json:"avatar_url,omitempty"`
	AvatarPath  string `json:"-"`
	StickerURL  string `json:"sticker_url,omitempty"`
	StickerPath string `json:"-"`

	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	MailAddress string `json:"mail_address,omitempty"`

	LastOnline *time.Time `json:"last_online,omitempty"`
	LoginIP    string     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsVisitor() bool { return u.Account == VisitorAccount }
