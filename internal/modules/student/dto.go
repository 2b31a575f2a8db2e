package student

import "time"

type CreateStudentRequest struct {
	Account  string `json:"account" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required"`
}

// StudentView is the roster-management listing entry.
type StudentView struct {
	Idx        string     `json:"idx"`
	Account    string     `json:"account"`
	Name       string     `json:"name"`
	Active     bool       `json:"active"`
	LastOnline *time.Time `json:"last_online,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
