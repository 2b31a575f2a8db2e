package quota

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studyhub/internal/domain"
	"studyhub/internal/storage"
)

type MockGroupSource struct {
	mock.Mock
}

func (m *MockGroupSource) GetByKey(ctx context.Context, key string) (*domain.Group, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

type MockCourseCounter struct {
	mock.Mock
}

func (m *MockCourseCounter) CountByGroup(ctx context.Context, groupKey string) (int64, error) {
	args := m.Called(ctx, groupKey)
	return args.Get(0).(int64), args.Error(1)
}

type MockStudentCounter struct {
	mock.Mock
}

func (m *MockStudentCounter) CountStudents(ctx context.Context, groupKey string) (int64, error) {
	args := m.Called(ctx, groupKey)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(group *domain.Group) (*Service, *MockCourseCounter, *MockStudentCounter) {
	groups := new(MockGroupSource)
	if group == nil {
		groups.On("GetByKey", mock.Anything, mock.Anything).Return(nil, nil)
	} else {
		groups.On("GetByKey", mock.Anything, group.Key).Return(group, nil)
	}
	courses := new(MockCourseCounter)
	students := new(MockStudentCounter)
	return NewService(groups, courses, students), courses, students
}

func groupWithRoot(t *testing.T, storageMB float64, usedBytes int) *domain.Group {
	t.Helper()
	root := t.TempDir()
	if usedBytes > 0 {
		require.NoError(t, os.WriteFile(filepath.Join(root, "used.bin"), make([]byte, usedBytes), 0o644))
	}
	return &domain.Group{
		Key:         "g1",
		StorageRoot: root,
		Limits:      domain.Limits{StorageMB: storageMB, Courses: 2, Students: 2},
		Active:      true,
	}
}

func TestCheckStorage_AdmitsAtExactLimit(t *testing.T) {
	// 1 MB limit, 512 KiB used, 512 KiB incoming: used+incoming == limit.
	svc, _, _ := newTestService(groupWithRoot(t, 1, 512*1024))

	err := svc.CheckStorage(context.Background(), "g1", 512*1024)
	assert.NoError(t, err)
}

func TestCheckStorage_RejectsOverLimit(t *testing.T) {
	svc, _, _ := newTestService(groupWithRoot(t, 1, 512*1024))

	err := svc.CheckStorage(context.Background(), "g1", 512*1024+1)
	qe, ok := IsExceeded(err)
	require.True(t, ok)
	assert.Equal(t, DimStorage, qe.Dimension)
	assert.Equal(t, float64(1), qe.Limit)
}

func TestCheckStorage_MissingRootCountsZero(t *testing.T) {
	g := groupWithRoot(t, 1, 0)
	g.StorageRoot = filepath.Join(g.StorageRoot, "not-created-yet")
	svc, _, _ := newTestService(g)

	assert.NoError(t, svc.CheckStorage(context.Background(), "g1", 1024*1024))
}

func TestCheckStorage_UnknownGroupRejected(t *testing.T) {
	// A missing tenant is a hard rejection, never unlimited quota.
	svc, _, _ := newTestService(nil)

	err := svc.CheckStorage(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestCheckStorage_ConcurrentChecksCanOvershoot(t *testing.T) {
	// Checks are not transactionally isolated. Two uploads that are each
	// admissible in isolation can both pass against the same usage snapshot
	// and jointly exceed the limit; neither upload is lost or corrupted.
	g := groupWithRoot(t, 1, 0)
	svc, _, _ := newTestService(g)

	const size = 600 * 1024
	checked := make(chan error, 2)
	commit := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			checked <- svc.CheckStorage(context.Background(), "g1", size)
			<-commit
			path := filepath.Join(g.StorageRoot, fmt.Sprintf("upload-%d.bin", n))
			assert.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
		}(i)
	}

	// Both checks pass before either upload lands.
	require.NoError(t, <-checked)
	require.NoError(t, <-checked)
	close(commit)
	wg.Wait()

	for i := 0; i < 2; i++ {
		info, err := os.Stat(filepath.Join(g.StorageRoot, fmt.Sprintf("upload-%d.bin", i)))
		require.NoError(t, err)
		assert.Equal(t, int64(size), info.Size())
	}
	used, err := storage.FolderSize(g.StorageRoot)
	require.NoError(t, err)
	assert.Greater(t, float64(used)/(1024*1024), g.Limits.StorageMB)
}

func TestCheckStorage_GroupLookupErrorSurfaces(t *testing.T) {
	// A transient repository failure is not the same as a missing tenant.
	groups := new(MockGroupSource)
	groups.On("GetByKey", mock.Anything, "g1").Return(nil, assert.AnError)
	svc := NewService(groups, new(MockCourseCounter), new(MockStudentCounter))

	err := svc.CheckStorage(context.Background(), "g1", 1)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrGroupNotFound)
}

func TestCheckCourseCount_BelowLimitAdmits(t *testing.T) {
	svc, courses, _ := newTestService(groupWithRoot(t, 1, 0))
	courses.On("CountByGroup", mock.Anything, "g1").Return(int64(1), nil)

	assert.NoError(t, svc.CheckCourseCount(context.Background(), "g1"))
}

func TestCheckCourseCount_AtLimitRejects(t *testing.T) {
	svc, courses, _ := newTestService(groupWithRoot(t, 1, 0))
	courses.On("CountByGroup", mock.Anything, "g1").Return(int64(2), nil)

	err := svc.CheckCourseCount(context.Background(), "g1")
	qe, ok := IsExceeded(err)
	require.True(t, ok)
	assert.Equal(t, DimCourses, qe.Dimension)
}

func TestCheckStudentCount_AtLimitRejects(t *testing.T) {
	svc, _, students := newTestService(groupWithRoot(t, 1, 0))
	students.On("CountStudents", mock.Anything, "g1").Return(int64(2), nil)

	err := svc.CheckStudentCount(context.Background(), "g1")
	qe, ok := IsExceeded(err)
	require.True(t, ok)
	assert.Equal(t, DimStudents, qe.Dimension)
}

func TestIsExceeded_OtherErrors(t *testing.T) {
	_, ok := IsExceeded(errors.New("boom"))
	assert.False(t, ok)
	_, ok = IsExceeded(nil)
	assert.False(t, ok)
}
