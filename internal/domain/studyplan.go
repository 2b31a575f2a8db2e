package domain

import "time"

type PlanStatus string

const (
	PlanPending    PlanStatus = "pending"
	PlanInProgress PlanStatus = "in_progress"
	PlanDone       PlanStatus = "done"
)

// StudySession is one timed stretch of work booked onto a plan.
type StudySession struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StudyPlan is a group's scheduled study item with its accumulated timer
// records. Date is the calendar day the plan belongs to, stored as
// 2006-01-02 so range queries stay plain string comparisons.
type StudyPlan struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	Idx        string     `json:"idx" gorm:"uniqueIndex;size:36"`
	GroupKey   string     `json:"group" gorm:"index"`
	CreatorIdx string     `json:"creator_idx" gorm:"size:36"`
	Date       string     `json:"date" gorm:"size:10;index"`
	Content    string     `json:"content"`
	Status     PlanStatus `json:"status" gorm:"size:16;default:pending"`

	// TotalSeconds is kept alongside Sessions so daily statistics need no
	// per-session arithmetic at read time.
	TotalSeconds float64        `json:"total_seconds"`
	Sessions     []StudySession `json:"sessions" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudyPlan) TableName() string { return "study_plans" }
