package quota

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"studyhub/internal/domain"
	"studyhub/internal/storage"
)

type Dimension string

const (
	DimStorage  Dimension = "storage"
	DimCourses  Dimension = "courses"
	DimStudents Dimension = "students"
)

// ErrGroupNotFound means the tenant record is missing. This is always a hard
// rejection, never unlimited quota.
var ErrGroupNotFound = errors.New("group not found")

// ExceededError carries the numeric limit so callers can render an
// actionable message.
type ExceededError struct {
	Dimension Dimension
	Limit     float64
}

func (e *ExceededError) Error() string {
	switch e.Dimension {
	case DimStorage:
		return fmt.Sprintf("storage usage would exceed the %g MB limit", e.Limit)
	case DimCourses:
		return fmt.Sprintf("course count has reached the limit of %d", int(e.Limit))
	case DimStudents:
		return fmt.Sprintf("student count has reached the limit of %d", int(e.Limit))
	}
	return "quota exceeded"
}

// IsExceeded unwraps a quota rejection from err, if any.
func IsExceeded(err error) (*ExceededError, bool) {
	var qe *ExceededError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}

type GroupSource interface {
	GetByKey(ctx context.Context, key string) (*domain.Group, error)
}

type CourseCounter interface {
	CountByGroup(ctx context.Context, groupKey string) (int64, error)
}

type StudentCounter interface {
	CountStudents(ctx context.Context, groupKey string) (int64, error)
}

// Service is the single shared quota policy evaluator injected into every
// write path; each endpoint checks only the dimensions relevant to it.
//
// Checks are not transactionally isolated: two concurrent uploads can both
// pass against a stale usage snapshot and jointly overshoot the limit. That
// race is accepted; neither request may corrupt the other's data.
type Service struct {
	groups   GroupSource
	courses  CourseCounter
	students StudentCounter
}

func NewService(groups GroupSource, courses CourseCounter, students StudentCounter) *Service {
	return &Service{groups: groups, courses: courses, students: students}
}

const bytesPerMB = 1024 * 1024

// CheckStorage admits an upload of incomingBytes iff current usage plus the
// upload stays within the group's storage limit: used + incoming > limit
// rejects, used + incoming == limit still admits.
func (s *Service) CheckStorage(ctx context.Context, groupKey string, incomingBytes int64) error {
	group, err := s.group(ctx, groupKey)
	if err != nil {
		return err
	}

	var usedBytes int64
	if _, err := os.Stat(group.StorageRoot); err == nil {
		usedBytes, err = storage.FolderSize(group.StorageRoot)
		if err != nil {
			return fmt.Errorf("account storage of group %s: %w", groupKey, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat storage root of group %s: %w", groupKey, err)
	} else {
		// Root not created yet: nothing stored.
		log.Printf("quota: storage root %s does not exist, counting zero usage", group.StorageRoot)
	}

	usedMB := float64(usedBytes) / bytesPerMB
	incomingMB := float64(incomingBytes) / bytesPerMB
	if usedMB+incomingMB > group.Limits.StorageMB {
		return &ExceededError{Dimension: DimStorage, Limit: group.Limits.StorageMB}
	}
	return nil
}

// CheckCourseCount rejects once the group already holds as many courses as
// its limit allows.
func (s *Service) CheckCourseCount(ctx context.Context, groupKey string) error {
	group, err := s.group(ctx, groupKey)
	if err != nil {
		return err
	}
	n, err := s.courses.CountByGroup(ctx, groupKey)
	if err != nil {
		return err
	}
	if n >= int64(group.Limits.Courses) {
		return &ExceededError{Dimension: DimCourses, Limit: float64(group.Limits.Courses)}
	}
	return nil
}

// CheckStudentCount rejects once the group's roster is full.
func (s *Service) CheckStudentCount(ctx context.Context, groupKey string) error {
	group, err := s.group(ctx, groupKey)
	if err != nil {
		return err
	}
	n, err := s.students.CountStudents(ctx, groupKey)
	if err != nil {
		return err
	}
	if n >= int64(group.Limits.Students) {
		return &ExceededError{Dimension: DimStudents, Limit: float64(group.Limits.Students)}
	}
	return nil
}

func (s *Service) group(ctx context.Context, key string) (*domain.Group, error) {
	group, err := s.groups.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load group %s: %w", key, err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}
