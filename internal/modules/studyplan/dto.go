package studyplan

import (
	"time"

	"studyhub/internal/domain"
)

type CreatePlanRequest struct {
	Date    string `json:"date" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdatePlanRequest struct {
	Date    string `json:"date" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// RecordSessionRequest books one timed stretch onto a plan. Finish marks
// the plan done instead of returning it to the pending pool.
type RecordSessionRequest struct {
	Start  time.Time `json:"start_time" binding:"required"`
	Stop   time.Time `json:"stop_time" binding:"required"`
	Finish bool      `json:"finish"`
}

type PlanView struct {
	Idx          string                `json:"idx"`
	Date         string                `json:"date"`
	Content      string                `json:"content"`
	Status       domain.PlanStatus     `json:"status"`
	TotalSeconds float64               `json:"total_seconds"`
	Sessions     []domain.StudySession `json:"sessions"`
	CreatedAt    time.Time             `json:"created_at"`
}

// StatisticsView is the seven day study time chart, oldest day first.
// Dates are 01/02 labels; totals are minutes.
type StatisticsView struct {
	Dates        []string  `json:"dates"`
	TotalMinutes []float64 `json:"total_minutes"`
}
