package material

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"studyhub/internal/domain"
	"studyhub/internal/storage"
)

type Service struct {
	courses CourseRepository
	quota   QuotaChecker
}

func NewService(courses CourseRepository, quota QuotaChecker) *Service {
	return &Service{courses: courses, quota: quota}
}

// URL is the canonical API path a client fetches a material from. The
// material id, not the stored filename, is the public identifier.
func URL(courseIdx, materialID string) string {
	return fmt.Sprintf("/api/v1/courses/%s/materials/%s", courseIdx, materialID)
}

func (s *Service) course(ctx context.Context, courseIdx, groupKey string) (*domain.Course, error) {
	if !domain.ValidIdx(courseIdx) {
		return nil, ErrInvalidIdx
	}
	c, err := s.courses.GetByIdx(ctx, courseIdx, groupKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

// Create commits a staged document into the course folder and appends its
// record to the course's material list (record update after a successful
// commit; a failed update leaves one orphaned file, never a broken record).
func (s *Service) Create(ctx context.Context, actor domain.Actor, courseIdx, title string, staged *storage.StagedFile) (*domain.Attachment, error) {
	if staged == nil {
		return nil, ErrNoFile
	}
	c, err := s.course(ctx, courseIdx, actor.Group)
	if err != nil {
		return nil, err
	}
	if err := s.quota.CheckStorage(ctx, actor.Group, staged.Size); err != nil {
		return nil, err
	}

	committed, err := storage.Commit(staged, c.FolderPath)
	if err != nil {
		return nil, fmt.Errorf("commit material: %w", err)
	}

	att := domain.Attachment{
		ID:          committed.ID,
		Filename:    committed.Filename,
		DisplayName: title,
		URL:         URL(courseIdx, committed.ID),
		Original:    committed.Path,
	}
	c.Materials = append(c.Materials, att)

	if err := s.courses.Update(ctx, c); err != nil {
		log.Printf("material: record update failed for course %s, orphaned file %s: %v", courseIdx, committed.Path, err)
		return nil, err
	}
	return &att, nil
}

// Replace swaps a material's backing file and optionally renames it. The new
// file is committed first and the old one is deleted only after the record
// update lands, so a failure orphans the new file instead of dangling the
// record.
func (s *Service) Replace(ctx context.Context, actor domain.Actor, courseIdx, materialID, title string, staged *storage.StagedFile) (*domain.Attachment, error) {
	if !domain.ValidIdx(materialID) {
		return nil, ErrInvalidIdx
	}
	c, err := s.course(ctx, courseIdx, actor.Group)
	if err != nil {
		return nil, err
	}
	m := c.MaterialByID(materialID)
	if m == nil {
		return nil, ErrNotFound
	}

	if title != "" {
		m.DisplayName = title
	}

	var oldPath string
	if staged != nil {
		if err := s.quota.CheckStorage(ctx, actor.Group, staged.Size); err != nil {
			return nil, err
		}
		committed, err := storage.Commit(staged, c.FolderPath)
		if err != nil {
			return nil, fmt.Errorf("commit material: %w", err)
		}
		oldPath = m.Original
		m.Filename = committed.Filename
		m.Original = committed.Path
	}

	if err := s.courses.Update(ctx, c); err != nil {
		if oldPath != "" {
			log.Printf("material: record update failed for course %s, orphaned file %s: %v", courseIdx, m.Original, err)
		}
		return nil, err
	}
	if oldPath != "" {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			log.Printf("material: failed to delete replaced file %s: %v", oldPath, err)
		}
	}
	return m, nil
}

// Delete removes the backing file, then the record.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, courseIdx, materialID string) error {
	if !domain.ValidIdx(materialID) {
		return ErrInvalidIdx
	}
	c, err := s.course(ctx, courseIdx, actor.Group)
	if err != nil {
		return err
	}
	m := c.MaterialByID(materialID)
	if m == nil {
		return ErrNotFound
	}

	if err := os.Remove(m.Original); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete material file: %w", err)
	}

	kept := c.Materials[:0]
	for _, att := range c.Materials {
		if att.ID != materialID {
			kept = append(kept, att)
		}
	}
	c.Materials = kept
	return s.courses.Update(ctx, c)
}

// List returns the course's material records.
func (s *Service) List(ctx context.Context, actor domain.Actor, courseIdx string) ([]domain.Attachment, error) {
	c, err := s.course(ctx, courseIdx, actor.Group)
	if err != nil {
		return nil, err
	}
	return c.Materials, nil
}

// FilePath resolves a material to its on-disk path for streaming, applying
// role visibility: students only reach active courses they are enrolled in.
func (s *Service) FilePath(ctx context.Context, actor domain.Actor, courseIdx, materialID string) (string, error) {
	if !domain.ValidIdx(materialID) {
		return "", ErrInvalidIdx
	}
	c, err := s.course(ctx, courseIdx, actor.Group)
	if err != nil {
		return "", err
	}

	switch actor.Role {
	case domain.RoleTeacher:
		if !c.Active {
			return "", ErrCourseNotFound
		}
	case domain.RoleStudent:
		if !c.Active || !c.HasStudent(actor.Idx) {
			return "", ErrCourseNotFound
		}
	default:
		return "", ErrCourseNotFound
	}

	m := c.MaterialByID(materialID)
	if m == nil {
		return "", ErrNotFound
	}
	if _, err := os.Stat(m.Original); err != nil {
		return "", ErrNotFound
	}
	return m.Original, nil
}
