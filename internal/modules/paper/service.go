package paper

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhub/internal/domain"
)

type Service struct {
	papers PaperRepository
}

func NewService(papers PaperRepository) *Service {
	return &Service{papers: papers}
}

// List returns the group's records, newest first.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]PaperView, error) {
	records, err := s.papers.ListByGroup(ctx, actor.Group)
	if err != nil {
		return nil, err
	}
	out := make([]PaperView, 0, len(records))
	for _, r := range records {
		out = append(out, PaperView{Idx: r.Idx, Name: r.Name, CreatedAt: r.CreatedAt})
	}
	return out, nil
}

// Add logs one worked-through paper under the caller's name.
func (s *Service) Add(ctx context.Context, actor domain.Actor, req AddPaperRequest) (*PaperView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	p := &domain.PaperRecord{
		Idx:        uuid.New().String(),
		GroupKey:   actor.Group,
		CreatorIdx: actor.Idx,
		Name:       name,
	}
	if err := s.papers.Create(ctx, p); err != nil {
		return nil, err
	}
	return &PaperView{Idx: p.Idx, Name: p.Name, CreatedAt: p.CreatedAt}, nil
}

// Delete removes a record; only its creator may do so.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, idx string) error {
	if !domain.ValidIdx(idx) {
		return ErrInvalidIdx
	}
	p, err := s.papers.GetByIdx(ctx, idx, actor.Group)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if p.CreatorIdx != actor.Idx {
		return ErrNotCreator
	}
	return s.papers.Delete(ctx, p)
}
