package studyplan

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studyhub/internal/domain"
)

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, p *domain.StudyPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) GetByIdx(ctx context.Context, idx, groupKey string) (*domain.StudyPlan, error) {
	args := m.Called(ctx, idx, groupKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyPlan), args.Error(1)
}

func (m *MockPlanRepository) ListByGroup(ctx context.Context, groupKey string) ([]domain.StudyPlan, error) {
	args := m.Called(ctx, groupKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudyPlan), args.Error(1)
}

func (m *MockPlanRepository) ListBetween(ctx context.Context, groupKey, from, to string) ([]domain.StudyPlan, error) {
	args := m.Called(ctx, groupKey, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudyPlan), args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, p *domain.StudyPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) Delete(ctx context.Context, p *domain.StudyPlan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func teacherActor() domain.Actor {
	return domain.Actor{Idx: uuid.New().String(), Role: domain.RoleTeacher, Group: "g1"}
}

func TestService_Create_NormalizesTimestampToDay(t *testing.T) {
	plans := new(MockPlanRepository)
	plans.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.StudyPlan) bool {
		return domain.ValidIdx(p.Idx) &&
			p.Date == "2026-03-14" &&
			p.Content == "Chapter review" &&
			p.Status == domain.PlanPending
	})).Return(nil)

	service := NewService(plans)

	created, err := service.Create(context.Background(), teacherActor(), CreatePlanRequest{
		Date:    "2026-03-14T09:30:00Z",
		Content: "  Chapter review  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", created.Date)
	plans.AssertExpectations(t)
}

func TestService_Create_EmptyContent(t *testing.T) {
	service := NewService(new(MockPlanRepository))

	_, err := service.Create(context.Background(), teacherActor(), CreatePlanRequest{Date: "2026-03-14", Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyPlan)
}

func TestService_Create_BadDate(t *testing.T) {
	service := NewService(new(MockPlanRepository))

	_, err := service.Create(context.Background(), teacherActor(), CreatePlanRequest{Date: "next tuesday", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_RecordSession_AccumulatesTotal(t *testing.T) {
	plans := new(MockPlanRepository)
	idx := uuid.New().String()
	plan := &domain.StudyPlan{Idx: idx, GroupKey: "g1", TotalSeconds: 30, Status: domain.PlanInProgress}

	plans.On("GetByIdx", mock.Anything, idx, "g1").Return(plan, nil)
	plans.On("Update", mock.Anything, plan).Return(nil)

	service := NewService(plans)
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	updated, err := service.RecordSession(context.Background(), teacherActor(), idx, RecordSessionRequest{
		Start: start, Stop: start.Add(90 * time.Second),
	})
	require.NoError(t, err)

	assert.Equal(t, float64(120), updated.TotalSeconds)
	assert.Equal(t, domain.PlanPending, updated.Status)
	require.Len(t, updated.Sessions, 1)
	plans.AssertExpectations(t)
}

func TestService_RecordSession_FinishMarksDone(t *testing.T) {
	plans := new(MockPlanRepository)
	idx := uuid.New().String()
	plan := &domain.StudyPlan{Idx: idx, GroupKey: "g1", Status: domain.PlanInProgress}

	plans.On("GetByIdx", mock.Anything, idx, "g1").Return(plan, nil)
	plans.On("Update", mock.Anything, plan).Return(nil)

	service := NewService(plans)
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	updated, err := service.RecordSession(context.Background(), teacherActor(), idx, RecordSessionRequest{
		Start: start, Stop: start.Add(time.Minute), Finish: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlanDone, updated.Status)
}

func TestService_RecordSession_FinishedPlanRejected(t *testing.T) {
	plans := new(MockPlanRepository)
	idx := uuid.New().String()
	plan := &domain.StudyPlan{Idx: idx, GroupKey: "g1", Status: domain.PlanDone}

	plans.On("GetByIdx", mock.Anything, idx, "g1").Return(plan, nil)

	service := NewService(plans)

	_, err := service.RecordSession(context.Background(), teacherActor(), idx, RecordSessionRequest{
		Start: time.Now(), Stop: time.Now(),
	})
	assert.ErrorIs(t, err, ErrPlanFinished)
	plans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_RecordSession_NegativeIntervalCountsZero(t *testing.T) {
	plans := new(MockPlanRepository)
	idx := uuid.New().String()
	plan := &domain.StudyPlan{Idx: idx, GroupKey: "g1", TotalSeconds: 45}

	plans.On("GetByIdx", mock.Anything, idx, "g1").Return(plan, nil)
	plans.On("Update", mock.Anything, plan).Return(nil)

	service := NewService(plans)
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	updated, err := service.RecordSession(context.Background(), teacherActor(), idx, RecordSessionRequest{
		Start: start, Stop: start.Add(-time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(45), updated.TotalSeconds)
}

func TestService_Statistics_SevenDayBuckets(t *testing.T) {
	plans := new(MockPlanRepository)
	today := time.Now()
	first := today.AddDate(0, 0, -6)

	data := []domain.StudyPlan{
		{GroupKey: "g1", Date: today.AddDate(0, 0, -3).Format("2006-01-02"), TotalSeconds: 60},
		{GroupKey: "g1", Date: today.Format("2006-01-02"), TotalSeconds: 90},
		{GroupKey: "g1", Date: today.Format("2006-01-02"), TotalSeconds: 30},
	}
	plans.On("ListBetween", mock.Anything, "g1", first.Format("2006-01-02"), today.Format("2006-01-02")).
		Return(data, nil)

	service := NewService(plans)

	stats, err := service.Statistics(context.Background(), teacherActor())
	require.NoError(t, err)

	require.Len(t, stats.Dates, 7)
	require.Len(t, stats.TotalMinutes, 7)
	assert.Equal(t, first.Format("01/02"), stats.Dates[0])
	assert.Equal(t, today.Format("01/02"), stats.Dates[6])

	// Two plans dated today sum into one bucket, reported in minutes.
	assert.Equal(t, float64(2), stats.TotalMinutes[6])
	assert.Equal(t, float64(1), stats.TotalMinutes[3])
	assert.Equal(t, float64(0), stats.TotalMinutes[0])
	plans.AssertExpectations(t)
}

func TestService_Update_RewritesDateAndContent(t *testing.T) {
	plans := new(MockPlanRepository)
	idx := uuid.New().String()
	plan := &domain.StudyPlan{Idx: idx, GroupKey: "g1", Date: "2026-03-01", Content: "Old"}

	plans.On("GetByIdx", mock.Anything, idx, "g1").Return(plan, nil)
	plans.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.StudyPlan) bool {
		return p.Date == "2026-03-15" && p.Content == "New"
	})).Return(nil)

	service := NewService(plans)

	updated, err := service.Update(context.Background(), teacherActor(), idx, UpdatePlanRequest{
		Date: "2026-03-15", Content: "New",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Content)
	plans.AssertExpectations(t)
}

func TestService_Delete_RemovesPlan(t *testing.T) {
	plans := new(MockPlanRepository)
	idx := uuid.New().String()
	plan := &domain.StudyPlan{Idx: idx, GroupKey: "g1"}

	plans.On("GetByIdx", mock.Anything, idx, "g1").Return(plan, nil)
	plans.On("Delete", mock.Anything, plan).Return(nil)

	service := NewService(plans)

	require.NoError(t, service.Delete(context.Background(), teacherActor(), idx))
	plans.AssertExpectations(t)
}

func TestService_Start_MarksInProgress(t *testing.T) {
	plans := new(MockPlanRepository)
	idx := uuid.New().String()
	plan := &domain.StudyPlan{Idx: idx, GroupKey: "g1", Status: domain.PlanPending}

	plans.On("GetByIdx", mock.Anything, idx, "g1").Return(plan, nil)
	plans.On("Update", mock.Anything, plan).Return(nil)

	service := NewService(plans)

	updated, err := service.Start(context.Background(), teacherActor(), idx)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanInProgress, updated.Status)
}

func TestService_Lookup_NotFound(t *testing.T) {
	plans := new(MockPlanRepository)
	idx := uuid.New().String()
	plans.On("GetByIdx", mock.Anything, idx, "g1").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(plans)

	err := service.Delete(context.Background(), teacherActor(), idx)
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.Delete(context.Background(), teacherActor(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidIdx)
}
