package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bizdocs/internal/domain"
	"bizdocs/internal/service"
	"bizdocs/mocks"
)

func newTestUserService(repo *mocks.MockUserRepo) service.UserService {
	return service.NewUserServiceWithCost(repo, bcrypt.MinCost)
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := newTestUserService(repo)
	tenantID := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), tenantID, service.CreateUserInput{
		Email:    "clerk@acme.test",
		Password: "password123",
		FullName: "Clerk",
		Role:     domain.RoleViewer,
	})

	require.NoError(t, err)
	assert.Equal(t, tenantID, user.TenantID)
	assert.Equal(t, domain.RoleViewer, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	repo.AssertExpectations(t)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := newTestUserService(repo)

	user, err := svc.Create(context.Background(), uuid.New(), service.CreateUserInput{
		Email:    "x@acme.test",
		Password: "password123",
		FullName: "X",
		Role:     domain.UserRole("owner"),
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := newTestUserService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail)

	_, err := svc.Create(context.Background(), uuid.New(), service.CreateUserInput{
		Email:    "dup@acme.test",
		Password: "password123",
		FullName: "Dup",
		Role:     domain.RoleMember,
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_List(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := newTestUserService(repo)
	tenantID := uuid.New()

	users := []domain.User{{ID: uuid.New(), TenantID: tenantID}}
	repo.On("ListByTenant", mock.Anything, tenantID, 20, 20).Return(users, 21, nil)

	result, total, err := svc.List(context.Background(), tenantID, 20, 20)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 21, total)
}

func TestUserService_Update_ChangesPasswordAndRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := newTestUserService(repo)
	tenantID, userID := uuid.New(), uuid.New()

	existing := &domain.User{ID: userID, TenantID: tenantID, PasswordHash: "old", Role: domain.RoleMember, IsActive: true}
	repo.On("GetByID", mock.Anything, tenantID, userID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	password := "new-password"
	role := domain.RoleAdmin
	user, err := svc.Update(context.Background(), tenantID, userID, service.UpdateUserInput{
		Password: &password,
		Role:     &role,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")))
	repo.AssertExpectations(t)
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := newTestUserService(repo)
	tenantID, userID := uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, tenantID, userID).Return(nil, domain.ErrNotFound)

	_, err := svc.Update(context.Background(), tenantID, userID, service.UpdateUserInput{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := newTestUserService(repo)
	tenantID, userID := uuid.New(), uuid.New()

	repo.On("Delete", mock.Anything, tenantID, userID).Return(domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), tenantID, userID), domain.ErrNotFound)
}
