package paper

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

type MockPaperRepository struct {
	mock.Mock
}

func (m *MockPaperRepository) Create(ctx context.Context, p *domain.PaperRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaperRepository) GetByIdx(ctx context.Context, idx, groupKey string) (*domain.PaperRecord, error) {
	args := m.Called(ctx, idx, groupKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaperRecord), args.Error(1)
}

func (m *MockPaperRepository) ListByGroup(ctx context.Context, groupKey string) ([]domain.PaperRecord, error) {
	args := m.Called(ctx, groupKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaperRecord), args.Error(1)
}

func (m *MockPaperRepository) Delete(ctx context.Context, p *domain.PaperRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func teacherActor() domain.Actor {
	return domain.Actor{Idx: uuid.New().String(), Role: domain.RoleTeacher, Group: "g1"}
}

func TestService_Add_CreatesRecord(t *testing.T) {
	papers := new(MockPaperRepository)
	actor := teacherActor()

	papers.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.PaperRecord) bool {
		return domain.ValidIdx(p.Idx) &&
			p.GroupKey == "g1" &&
			p.CreatorIdx == actor.Idx &&
			p.Name == "2025 mock exam"
	})).Return(nil)

	service := NewService(papers)

	created, err := service.Add(context.Background(), actor, AddPaperRequest{Name: "  2025 mock exam  "})
	require.NoError(t, err)
	assert.Equal(t, "2025 mock exam", created.Name)
	papers.AssertExpectations(t)
}

func TestService_Add_BlankName(t *testing.T) {
	service := NewService(new(MockPaperRepository))

	_, err := service.Add(context.Background(), teacherActor(), AddPaperRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestService_List_MapsViews(t *testing.T) {
	papers := new(MockPaperRepository)
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	papers.On("ListByGroup", mock.Anything, "g1").Return([]domain.PaperRecord{
		{Idx: uuid.New().String(), GroupKey: "g1", Name: "Paper B", CreatedAt: created},
		{Idx: uuid.New().String(), GroupKey: "g1", Name: "Paper A", CreatedAt: created},
	}, nil)

	service := NewService(papers)

	records, err := service.List(context.Background(), teacherActor())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Paper B", records[0].Name)
	assert.Equal(t, created, records[0].CreatedAt)
}

func TestService_Delete_CreatorOnly(t *testing.T) {
	papers := new(MockPaperRepository)
	creator := teacherActor()
	idx := uuid.New().String()
	record := &domain.PaperRecord{Idx: idx, GroupKey: "g1", CreatorIdx: creator.Idx, Name: "P"}

	papers.On("GetByIdx", mock.Anything, idx, "g1").Return(record, nil)
	papers.On("Delete", mock.Anything, record).Return(nil)

	service := NewService(papers)

	err := service.Delete(context.Background(), teacherActor(), idx)
	assert.ErrorIs(t, err, ErrNotCreator)
	papers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	require.NoError(t, service.Delete(context.Background(), creator, idx))
	papers.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	papers := new(MockPaperRepository)
	idx := uuid.New().String()
	papers.On("GetByIdx", mock.Anything, idx, "g1").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(papers)

	err := service.Delete(context.Background(), teacherActor(), idx)
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.Delete(context.Background(), teacherActor(), "nope")
	assert.ErrorIs(t, err, ErrInvalidIdx)
}
