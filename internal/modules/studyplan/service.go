package studyplan

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhub/internal/domain"
)

const (
	dayFormat      = "2006-01-02"
	labelFormat    = "01/02"
	statisticsDays = 7
)

type Service struct {
	plans PlanRepository
}

func NewService(plans PlanRepository) *Service {
	return &Service{plans: plans}
}

// parseDay normalizes a plan date to its calendar day. Clients send either
// a bare day or a full timestamp.
func parseDay(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dayFormat, raw); err == nil {
		return t.Format(dayFormat), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(dayFormat), nil
	}
	return "", ErrInvalidDate
}

// Create registers a new plan in the pending state.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreatePlanRequest) (*PlanView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || strings.TrimSpace(req.Date) == "" {
		return nil, ErrEmptyPlan
	}
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	p := &domain.StudyPlan{
		Idx:        uuid.New().String(),
		GroupKey:   actor.Group,
		CreatorIdx: actor.Idx,
		Date:       day,
		Content:    content,
		Status:     domain.PlanPending,
	}
	if err := s.plans.Create(ctx, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// List returns the group's plans, newest first.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]PlanView, error) {
	plans, err := s.plans.ListByGroup(ctx, actor.Group)
	if err != nil {
		return nil, err
	}
	out := make([]PlanView, 0, len(plans))
	for i := range plans {
		out = append(out, *view(&plans[i]))
	}
	return out, nil
}

// Statistics sums recorded study time into one bucket per calendar day for
// the last seven days including today, oldest first. Days without records
// report zero.
func (s *Service) Statistics(ctx context.Context, actor domain.Actor) (*StatisticsView, error) {
	today := time.Now()
	first := today.AddDate(0, 0, -(statisticsDays - 1))

	plans, err := s.plans.ListBetween(ctx, actor.Group, first.Format(dayFormat), today.Format(dayFormat))
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(plans))
	for i := range plans {
		totals[plans[i].Date] += plans[i].TotalSeconds
	}

	stats := &StatisticsView{
		Dates:        make([]string, 0, statisticsDays),
		TotalMinutes: make([]float64, 0, statisticsDays),
	}
	for i := 0; i < statisticsDays; i++ {
		d := first.AddDate(0, 0, i)
		stats.Dates = append(stats.Dates, d.Format(labelFormat))
		stats.TotalMinutes = append(stats.TotalMinutes, totals[d.Format(dayFormat)]/60)
	}
	return stats, nil
}

// Update rewrites the plan's date and content.
func (s *Service) Update(ctx context.Context, actor domain.Actor, idx string, req UpdatePlanRequest) (*PlanView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || strings.TrimSpace(req.Date) == "" {
		return nil, ErrEmptyPlan
	}
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	p, err := s.lookup(ctx, idx, actor.Group)
	if err != nil {
		return nil, err
	}
	p.Date = day
	p.Content = content
	if err := s.plans.Update(ctx, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// Delete removes the plan and its recorded sessions.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, idx string) error {
	p, err := s.lookup(ctx, idx, actor.Group)
	if err != nil {
		return err
	}
	return s.plans.Delete(ctx, p)
}

// RecordSession books the interval onto the plan and accumulates its
// duration. Finished plans accept no further sessions. A negative interval
// counts as zero.
func (s *Service) RecordSession(ctx context.Context, actor domain.Actor, idx string, req RecordSessionRequest) (*PlanView, error) {
	p, err := s.lookup(ctx, idx, actor.Group)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.PlanDone {
		return nil, ErrPlanFinished
	}

	diff := req.Stop.Sub(req.Start).Seconds()
	if diff < 0 {
		diff = 0
	}
	p.TotalSeconds += diff
	p.Sessions = append(p.Sessions, domain.StudySession{Start: req.Start, End: req.Stop})
	if req.Finish {
		p.Status = domain.PlanDone
	} else {
		p.Status = domain.PlanPending
	}

	if err := s.plans.Update(ctx, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

// Start marks the plan as the one currently being worked on.
func (s *Service) Start(ctx context.Context, actor domain.Actor, idx string) (*PlanView, error) {
	p, err := s.lookup(ctx, idx, actor.Group)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PlanInProgress
	if err := s.plans.Update(ctx, p); err != nil {
		return nil, err
	}
	return view(p), nil
}

func (s *Service) lookup(ctx context.Context, idx, groupKey string) (*domain.StudyPlan, error) {
	if !domain.ValidIdx(idx) {
		return nil, ErrInvalidIdx
	}
	p, err := s.plans.GetByIdx(ctx, idx, groupKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func view(p *domain.StudyPlan) *PlanView {
	return &PlanView{
		Idx:          p.Idx,
		Date:         p.Date,
		Content:      p.Content,
		Status:       p.Status,
		TotalSeconds: p.TotalSeconds,
		Sessions:     p.Sessions,
		CreatedAt:    p.CreatedAt,
	}
}
