package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/citylibrary/lending-system/internal/core/domain"
	"github.com/citylibrary/lending-system/internal/core/ports"
)

const minPasswordLength = 8

// ActiveLoanCounter is the slice of the ledger the directory needs: account
// deletion is gated on the member holding zero active loans.
type ActiveLoanCounter interface {
	CountActiveByUser(ctx context.Context, userID string) (int, error)
}

// DirectoryService implements ports.DirectoryService: member registration,
// sessions, and account deletion. The session flag on the user record is
// authoritative; the SessionStore is a cache consulted by the transport
// layer, and writes to it are non-fatal.
type DirectoryService struct {
	repo      ports.UserRepository
	loans     ActiveLoanCounter
	hasher    ports.PasswordHasher
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewDirectoryService(
	repo ports.UserRepository,
	loans ActiveLoanCounter,
	hasher ports.PasswordHasher,
	sessions ports.SessionStore,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *DirectoryService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &DirectoryService{
		repo:      repo,
		loans:     loans,
		hasher:    hasher,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Register validates and creates a new member. The checks run in a fixed
// order and the first failure short-circuits — callers depend on which
// message they get for multiply-invalid input.
func (s *DirectoryService) Register(ctx context.Context, email, fullName, password string) (*domain.User, error) {
	normalized := domain.NormalizeEmail(email)
	s.logger.Info().Str("email", normalized).Msg("registration attempt")

	if isBlank(normalized) || isBlank(fullName) || isBlank(password) {
		s.logger.Warn().Str("email", normalized).Msg("registration failed, empty required field")
		return nil, fmt.Errorf("%w: user email, full name and password cannot be empty", domain.ErrValidation)
	}
	if !strings.Contains(normalized, "@") {
		s.logger.Warn().Str("email", normalized).Msg("registration failed, invalid email format")
		return nil, fmt.Errorf("%w: email address must contain @", domain.ErrValidation)
	}
	if !strings.Contains(strings.TrimSpace(fullName), " ") {
		s.logger.Warn().Str("email", normalized).Str("full_name", fullName).Msg("registration failed, invalid full name")
		return nil, fmt.Errorf("%w: full name must contain whitespace between name and surname", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		s.logger.Warn().Str("email", normalized).Msg("registration failed, password too short")
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	if _, err := s.repo.FindByEmail(ctx, normalized); err == nil {
		s.logger.Warn().Str("email", normalized).Msg("registration failed, email taken")
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        normalized,
		PasswordHash: hash,
		LoggedIn:     false,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		s.logger.Error().Err(err).Str("email", normalized).Msg("failed to create user")
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", normalized).Msg("user registered")
	return user, nil
}

// Login verifies credentials and opens a session. Logging in on an already
// open session is an explicit failure, not a no-op.
func (s *DirectoryService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	normalized := domain.NormalizeEmail(email)
	s.logger.Info().Str("email", normalized).Msg("login attempt")

	user, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("email", normalized).Msg("login failed, unknown user")
			return "", nil, domain.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Warn().Str("email", normalized).Msg("login failed, invalid password")
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.LoggedIn {
		s.logger.Warn().Str("email", normalized).Msg("login failed, session already open")
		return "", nil, domain.ErrAlreadyLoggedIn
	}

	if err := s.repo.SetLoggedIn(ctx, user.ID, true); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	user.LoggedIn = true

	if s.sessions != nil {
		if err := s.sessions.Mark(ctx, user.ID, s.tokenTTL); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to cache session")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", normalized).Msg("user logged in")
	return token, user, nil
}

// Logout closes an open session; logging out twice is a failure.
func (s *DirectoryService) Logout(ctx context.Context, email string) error {
	normalized := domain.NormalizeEmail(email)
	s.logger.Info().Str("email", normalized).Msg("logout attempt")

	user, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("logout: %w", err)
	}

	if !user.LoggedIn {
		s.logger.Warn().Str("email", normalized).Msg("logout failed, no open session")
		return domain.ErrNotLoggedIn
	}

	if err := s.repo.SetLoggedIn(ctx, user.ID, false); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if s.sessions != nil {
		if err := s.sessions.Clear(ctx, user.ID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to clear cached session")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", normalized).Msg("user logged out")
	return nil
}

// Delete removes an account. The member must be logged in and hold no
// active loans; otherwise nothing is mutated.
func (s *DirectoryService) Delete(ctx context.Context, email string) error {
	normalized := domain.NormalizeEmail(email)
	s.logger.Info().Str("email", normalized).Msg("account deletion attempt")

	user, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	if !user.LoggedIn {
		s.logger.Warn().Str("email", normalized).Msg("deletion refused, no open session")
		return domain.ErrNotLoggedIn
	}

	count, err := s.loans.CountActiveByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("delete user: count active loans: %w", err)
	}
	if count > 0 {
		s.logger.Warn().Str("email", normalized).Int("active_loans", count).Msg("deletion refused, active loans remain")
		return fmt.Errorf("%w: %d books must be returned first", domain.ErrUserHasActiveLoans, count)
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if s.sessions != nil {
		if err := s.sessions.Clear(ctx, user.ID); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to clear cached session")
		}
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", normalized).Msg("account deleted")
	return nil
}

func (s *DirectoryService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *DirectoryService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
