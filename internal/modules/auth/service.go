package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"salonpos/internal/domain"
	"salonpos/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

// Service handles staff authentication. Failed logins are counted and the
// account locks for a cooldown after too many in a row.
type Service struct {
	users UserRepository
	jwt   TokenIssuer

	mu     sync.Mutex
	failed map[int64]int
	locked map[int64]time.Time
}

func NewService(users UserRepository, jwt TokenIssuer) *Service {
	return &Service{
		users:  users,
		jwt:    jwt,
		failed: map[int64]int{},
		locked: map[int64]time.Time{},
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	if s.isLocked(user.ID) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if s.recordFailure(user.ID) {
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}
	s.clearFailures(user.ID)

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), user.BranchID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, Token: token}, nil
}

func (s *Service) RegisterStaff(ctx context.Context, req RegisterStaffRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%s: %w", email, ErrEmailAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		EmployeeRole: req.EmployeeRole,
		BranchID:     req.BranchID,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%s: %w", email, ErrEmailAlreadyExists)
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

func (s *Service) ListStaff(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *Service) isLocked(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.locked[userID]
	if !ok {
		return false
	}
	if until.After(time.Now()) {
		return true
	}
	delete(s.locked, userID)
	delete(s.failed, userID)
	return false
}

// recordFailure bumps the counter and reports whether the account just
// locked.
func (s *Service) recordFailure(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failed[userID]++
	if s.failed[userID] >= maxFailedLoginAttempts {
		s.locked[userID] = time.Now().Add(lockoutDuration)
		return true
	}
	return false
}

func (s *Service) clearFailures(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failed, userID)
	delete(s.locked, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
