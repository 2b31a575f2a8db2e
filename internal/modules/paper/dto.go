package paper

import "time"

type AddPaperRequest struct {
	Name string `json:"name" binding:"required"`
}

type PaperView struct {
	Idx       string    `json:"idx"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
