package studyplan

import "errors"

var (
	ErrInvalidIdx   = errors.New("invalid plan id")
	ErrNotFound     = errors.New("plan not found")
	ErrEmptyPlan    = errors.New("plan date and content are required")
	ErrInvalidDate  = errors.New("invalid plan date")
	ErrPlanFinished = errors.New("plan already finished")
)
