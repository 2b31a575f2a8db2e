package course

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studyhub/internal/domain"
	"studyhub/internal/storage"
)

// DefaultBanner is served for courses that have no banner upload.
const DefaultBanner = "img/default_course_banner.jpg"

type Service struct {
	courses CourseRepository
	groups  GroupRepository
	quota   QuotaChecker
}

func NewService(courses CourseRepository, groups GroupRepository, quota QuotaChecker) *Service {
	return &Service{courses: courses, groups: groups, quota: quota}
}

// BannerURL is the canonical API path for a stored banner file.
func BannerURL(courseIdx, filename string) string {
	return fmt.Sprintf("/api/v1/courses/%s/banner/%s", courseIdx, filename)
}

// Create runs the full write pipeline for a new course: course-count quota,
// storage quota for the banner bytes, database record first, then banner
// commit, then a best-effort metadata update. A failed metadata update
// leaves the banner files recoverable by the legacy folder scan on read.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateCourseRequest, banners []*storage.StagedFile) (*domain.Course, error) {
	if err := s.quota.CheckCourseCount(ctx, actor.Group); err != nil {
		return nil, err
	}
	var incoming int64
	for _, f := range banners {
		incoming += f.Size
	}
	if err := s.quota.CheckStorage(ctx, actor.Group, incoming); err != nil {
		return nil, err
	}

	group, err := s.groups.GetByKey(ctx, actor.Group)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	idx := uuid.New().String()
	folder, err := storage.EntityFolder(group.StorageRoot, storage.KindCourse, idx)
	if err != nil {
		return nil, err
	}

	courseType := strings.TrimSpace(req.Type)
	if courseType == "" {
		courseType = domain.DefaultCourseType
	}

	c := &domain.Course{
		Idx:        idx,
		GroupKey:   actor.Group,
		Code:       req.Code,
		Name:       req.Name,
		Type:       courseType,
		Lecturer:   req.Lecturer,
		FolderPath: folder,
		Active:     true,
		Students:   []string{},
	}

	if err := s.courses.Create(ctx, c); err != nil {
		return nil, err
	}

	if len(banners) == 0 {
		return c, nil
	}

	bannerDir, err := storage.EntityFolder(group.StorageRoot, storage.KindCourse, idx, "banner")
	if err != nil {
		return nil, err
	}
	for _, staged := range banners {
		committed, err := storage.Commit(staged, bannerDir)
		if err != nil {
			return nil, fmt.Errorf("commit banner: %w", err)
		}
		c.Banner = append(c.Banner, domain.Attachment{
			ID:          committed.ID,
			Filename:    committed.Filename,
			DisplayName: staged.OriginalName,
			URL:         BannerURL(idx, committed.Filename),
			Original:    committed.Path,
		})
	}

	if err := s.courses.Update(ctx, c); err != nil {
		// Orphaned banner files: the folder scan on first read recovers them.
		log.Printf("course: banner metadata update failed for %s: %v", idx, err)
	}

	return c, nil
}

// ListInfo returns the roster-management listing, newest first.
func (s *Service) ListInfo(ctx context.Context, actor domain.Actor) ([]CourseInfo, error) {
	courses, err := s.courses.ListByGroup(ctx, actor.Group)
	if err != nil {
		return nil, err
	}
	out := make([]CourseInfo, 0, len(courses))
	for _, c := range courses {
		out = append(out, CourseInfo{
			Idx:       c.Idx,
			CreatedAt: c.CreatedAt.Format(time.DateTime),
			Code:      c.Code,
			Name:      c.Name,
			Type:      c.Type,
			Lecturer:  c.Lecturer,
			Active:    c.Active,
			Students:  c.Students,
		})
	}
	return out, nil
}

// ListCards returns the learner view: teachers see every course of the
// group, students only active courses they are enrolled in. Banner urls are
// resolved from attachment records, migrating legacy folder listings once.
func (s *Service) ListCards(ctx context.Context, actor domain.Actor) ([]CourseCard, error) {
	var (
		courses []domain.Course
		err     error
	)
	if actor.Role == domain.RoleTeacher {
		courses, err = s.courses.ListByGroup(ctx, actor.Group)
	} else {
		courses, err = s.courses.ListVisible(ctx, actor.Group)
	}
	if err != nil {
		return nil, err
	}

	out := make([]CourseCard, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		if actor.Role == domain.RoleStudent && !c.HasStudent(actor.Idx) {
			continue
		}

		banner := s.resolveBanner(ctx, c)
		images := make([]BannerImage, 0, len(banner))
		for _, b := range banner {
			images = append(images, BannerImage{Name: b.DisplayName, URL: b.URL})
		}
		if len(images) == 0 {
			images = append(images, BannerImage{Name: "default_course_banner", URL: DefaultBanner})
		}

		out = append(out, CourseCard{
			Idx:       c.Idx,
			CreatedAt: c.CreatedAt.Format(time.DateTime),
			Code:      c.Code,
			Name:      c.Name,
			Lecturer:  c.Lecturer,
			Active:    c.Active,
			Banner:    images,
		})
	}
	return out, nil
}

func (s *Service) resolveBanner(ctx context.Context, c *domain.Course) []domain.Attachment {
	bannerDir, err := storage.Join(c.FolderPath, "banner")
	if err != nil {
		return c.Banner
	}
	records, migrated, err := storage.ResolveAttachments(c.Banner, bannerDir, func(filename string) string {
		return BannerURL(c.Idx, filename)
	})
	if err != nil {
		log.Printf("course: banner scan failed for %s: %v", c.Idx, err)
		return c.Banner
	}
	if migrated {
		c.Banner = records
		if err := s.courses.Update(ctx, c); err != nil {
			log.Printf("course: banner migration persist failed for %s: %v", c.Idx, err)
		}
	}
	return records
}

// Get returns one course of the actor's group.
func (s *Service) Get(ctx context.Context, actor domain.Actor, idx string) (*domain.Course, error) {
	if !domain.ValidIdx(idx) {
		return nil, ErrInvalidIdx
	}
	c, err := s.courses.GetByIdx(ctx, idx, actor.Group)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the course folder subtree first, then the record.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, idx string) (*domain.Course, error) {
	c, err := s.Get(ctx, actor, idx)
	if err != nil {
		return nil, err
	}

	if err := storage.RemoveEntityFolder(c.FolderPath); err != nil {
		return nil, fmt.Errorf("remove course folder: %w", err)
	}
	if err := s.courses.Delete(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ToggleActive flips the course's visibility to students.
func (s *Service) ToggleActive(ctx context.Context, actor domain.Actor, idx string) (*domain.Course, error) {
	c, err := s.Get(ctx, actor, idx)
	if err != nil {
		return nil, err
	}
	c.Active = !c.Active
	if err := s.courses.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the course's descriptive fields and roster.
func (s *Service) Update(ctx context.Context, actor domain.Actor, idx string, req UpdateCourseRequest) (*domain.Course, error) {
	c, err := s.Get(ctx, actor, idx)
	if err != nil {
		return nil, err
	}
	c.Code = req.Code
	c.Name = req.Name
	if t := strings.TrimSpace(req.Type); t != "" {
		c.Type = t
	}
	c.Lecturer = req.Lecturer
	if req.Students != nil {
		c.Students = req.Students
	}
	if err := s.courses.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Roster returns the course's student list.
func (s *Service) Roster(ctx context.Context, actor domain.Actor, idx string) ([]string, error) {
	c, err := s.Get(ctx, actor, idx)
	if err != nil {
		return nil, err
	}
	return c.Students, nil
}

// BannerPath resolves a banner filename to its on-disk path for streaming.
// The join rejects any filename escaping the banner folder.
func (s *Service) BannerPath(ctx context.Context, idx, filename string) (string, error) {
	if !domain.ValidIdx(idx) {
		return "", ErrInvalidIdx
	}
	c, err := s.courses.GetAny(ctx, idx)
	if err != nil {
		return "", ErrNotFound
	}
	// Anchor the containment check at the banner folder itself so a crafted
	// filename cannot climb back into the course folder.
	bannerDir := filepath.Join(c.FolderPath, "banner")
	return storage.Join(bannerDir, filename)
}
