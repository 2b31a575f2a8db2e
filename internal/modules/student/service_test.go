package student

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studyhub/internal/domain"
	"studyhub/internal/quota"
	"studyhub/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) ListStudents(ctx context.Context, groupKey string) ([]domain.User, error) {
	args := m.Called(ctx, groupKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, idx, groupKey string) (*domain.User, error) {
	args := m.Called(ctx, idx, groupKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ToggleActive(ctx context.Context, idx, groupKey string) (*domain.User, error) {
	args := m.Called(ctx, idx, groupKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetByKey(ctx context.Context, key string) (*domain.Group, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

type MockQuotaChecker struct {
	mock.Mock
}

func (m *MockQuotaChecker) CheckStudentCount(ctx context.Context, groupKey string) error {
	args := m.Called(ctx, groupKey)
	return args.Error(0)
}

func teacherActor() domain.Actor {
	return domain.Actor{Idx: uuid.New().String(), Role: domain.RoleTeacher, Group: "g1"}
}

func TestService_Create_HashesPasswordAndAssignsIdx(t *testing.T) {
	users := new(MockUserRepository)
	quotas := new(MockQuotaChecker)

	quotas.On("CheckStudentCount", mock.Anything, "g1").Return(nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(users, new(MockGroupRepository), quotas)

	created, err := service.Create(context.Background(), teacherActor(), CreateStudentRequest{
		Account: "alice", Password: "password1", Name: "Alice",
	})
	require.NoError(t, err)

	assert.True(t, domain.ValidIdx(created.Idx))
	assert.Equal(t, domain.RoleStudent, created.Role)
	assert.Equal(t, "g1", created.GroupKey)
	assert.NotEqual(t, "password1", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password1")))
}

func TestService_Create_QuotaFull(t *testing.T) {
	users := new(MockUserRepository)
	quotas := new(MockQuotaChecker)

	quotas.On("CheckStudentCount", mock.Anything, "g1").
		Return(&quota.ExceededError{Dimension: quota.DimStudents, Limit: 1})

	service := NewService(users, new(MockGroupRepository), quotas)

	_, err := service.Create(context.Background(), teacherActor(), CreateStudentRequest{
		Account: "bob", Password: "password1", Name: "Bob",
	})
	_, ok := quota.IsExceeded(err)
	assert.True(t, ok)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateAccount(t *testing.T) {
	users := new(MockUserRepository)
	quotas := new(MockQuotaChecker)

	quotas.On("CheckStudentCount", mock.Anything, "g1").Return(nil)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	service := NewService(users, new(MockGroupRepository), quotas)

	_, err := service.Create(context.Background(), teacherActor(), CreateStudentRequest{
		Account: "alice", Password: "password1", Name: "Alice",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestService_Delete_RemovesProfileFolders(t *testing.T) {
	users := new(MockUserRepository)
	groups := new(MockGroupRepository)

	root := t.TempDir()
	idx := uuid.New().String()
	iconDir := filepath.Join(root, "userIcon", idx)
	infoDir := filepath.Join(root, "userInfo", idx)
	require.NoError(t, os.MkdirAll(iconDir, 0o755))
	require.NoError(t, os.MkdirAll(infoDir, 0o755))

	users.On("Delete", mock.Anything, idx, "g1").
		Return(&domain.User{Idx: idx, Account: "alice"}, nil)
	groups.On("GetByKey", mock.Anything, "g1").
		Return(&domain.Group{Key: "g1", StorageRoot: root, Active: true}, nil)

	service := NewService(users, groups, new(MockQuotaChecker))

	deleted, err := service.Delete(context.Background(), teacherActor(), idx)
	require.NoError(t, err)
	assert.Equal(t, "alice", deleted.Account)

	_, err = os.Stat(iconDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(infoDir)
	assert.True(t, os.IsNotExist(err))
}

func TestService_Delete_MissingFoldersNotFatal(t *testing.T) {
	users := new(MockUserRepository)
	groups := new(MockGroupRepository)

	idx := uuid.New().String()
	users.On("Delete", mock.Anything, idx, "g1").
		Return(&domain.User{Idx: idx}, nil)
	groups.On("GetByKey", mock.Anything, "g1").
		Return(&domain.Group{Key: "g1", StorageRoot: t.TempDir(), Active: true}, nil)

	service := NewService(users, groups, new(MockQuotaChecker))

	_, err := service.Delete(context.Background(), teacherActor(), idx)
	assert.NoError(t, err)
}

func TestService_Delete_InvalidIdx(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockGroupRepository), new(MockQuotaChecker))

	_, err := service.Delete(context.Background(), teacherActor(), "123")
	assert.ErrorIs(t, err, ErrInvalidIdx)
}
