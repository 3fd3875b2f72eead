package auth

import (
	"context"
	"testing"

	"salonpos/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) GenerateToken(userID int64, role string, branchID *int64) (string, error) {
	return "token", nil
}

func hashOf(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)

	user := &domain.User{ID: 1, Email: "aida@salon.kz", PasswordHash: hashOf(t, "secret123"), Role: domain.RoleStaff, Active: true}
	repo.On("GetByEmail", ctx, "aida@salon.kz").Return(user, nil)

	svc := NewService(repo, stubIssuer{})
	result, err := svc.Login(ctx, LoginRequest{Email: " Aida@Salon.kz ", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "token", result.Token)
	assert.Empty(t, result.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)

	user := &domain.User{ID: 1, Email: "aida@salon.kz", PasswordHash: hashOf(t, "secret123"), Active: true}
	repo.On("GetByEmail", ctx, "aida@salon.kz").Return(user, nil)

	svc := NewService(repo, stubIssuer{})
	_, err := svc.Login(ctx, LoginRequest{Email: "aida@salon.kz", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailHidesExistence(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("GetByEmail", ctx, "ghost@salon.kz").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(repo, stubIssuer{})
	_, err := svc.Login(ctx, LoginRequest{Email: "ghost@salon.kz", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)

	user := &domain.User{ID: 1, Email: "aida@salon.kz", PasswordHash: hashOf(t, "secret123"), Active: true}
	repo.On("GetByEmail", ctx, "aida@salon.kz").Return(user, nil)

	svc := NewService(repo, stubIssuer{})
	for i := 0; i < maxFailedLoginAttempts-1; i++ {
		_, err := svc.Login(ctx, LoginRequest{Email: "aida@salon.kz", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := svc.Login(ctx, LoginRequest{Email: "aida@salon.kz", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAccountLocked)

	// even the right password is rejected while locked
	_, err = svc.Login(ctx, LoginRequest{Email: "aida@salon.kz", Password: "secret123"})
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestLogin_DisabledAccount(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)

	user := &domain.User{ID: 1, Email: "aida@salon.kz", PasswordHash: hashOf(t, "secret123"), Active: false}
	repo.On("GetByEmail", ctx, "aida@salon.kz").Return(user, nil)

	svc := NewService(repo, stubIssuer{})
	_, err := svc.Login(ctx, LoginRequest{Email: "aida@salon.kz", Password: "secret123"})

	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRegisterStaff_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)

	existing := &domain.User{ID: 1, Email: "aida@salon.kz"}
	repo.On("GetByEmail", ctx, "aida@salon.kz").Return(existing, nil)

	svc := NewService(repo, stubIssuer{})
	_, err := svc.RegisterStaff(ctx, RegisterStaffRequest{
		Email:    "aida@salon.kz",
		Password: "secret123",
		Name:     "Aida",
		Role:     domain.RoleStaff,
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterStaff_HashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)

	repo.On("GetByEmail", ctx, "marat@salon.kz").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "marat@salon.kz" &&
			u.PasswordHash != "" && u.PasswordHash != "secret123" &&
			u.Active
	})).Return(nil)

	svc := NewService(repo, stubIssuer{})
	user, err := svc.RegisterStaff(ctx, RegisterStaffRequest{
		Email:        "Marat@Salon.kz",
		Password:     "secret123",
		Name:         "Marat",
		Role:         domain.RoleStaff,
		EmployeeRole: "barber",
	})

	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	repo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)

	user := &domain.User{ID: 1, PasswordHash: hashOf(t, "old-secret")}
	repo.On("GetByID", ctx, int64(1)).Return(user, nil)

	svc := NewService(repo, stubIssuer{})
	err := svc.ChangePassword(ctx, 1, ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-secret"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
