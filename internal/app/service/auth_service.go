package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const (
	MinPasswordLength = 6
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordLength = 72
)

type AuthService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	tokens         ports.TokenManager
	now            func() time.Time
	dummyHash      string
}

func NewAuthService(userRepository ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager) (*AuthService, error) {
	// Compared against on unknown emails so both login failures cost the same.
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		now:            time.Now,
		dummyHash:      dummyHash,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := domain.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return domain.AuthResult{}, domain.ErrInvalidUserPayload
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.AuthResult{}, domain.ErrInvalidEmail
	}
	if len(input.Password) < MinPasswordLength {
		return domain.AuthResult{}, domain.ErrWeakPassword
	}
	if len(input.Password) > MaxPasswordLength {
		return domain.AuthResult{}, domain.ErrPasswordTooLong
	}

	_, err := s.userRepository.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.AuthResult{}, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.AuthResult{}, fmt.Errorf("failed to check email existence: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	// The unique index still catches a concurrent registration with the same email.
	if err := s.userRepository.Create(ctx, user); err != nil {
		return domain.AuthResult{}, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, input domain.LoginInput) (domain.AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return domain.AuthResult{}, domain.ErrInvalidUserPayload
	}

	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(input.Password, s.dummyHash)
			return domain.AuthResult{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResult{}, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return domain.AuthResult{}, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, err
	}
	return user, nil
}

// Authenticate resolves the owner of a bearer token. Tokens of users that no
// longer exist are rejected like any other invalid token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrUnauthorized
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	return s.Profile(ctx, userID)
}

func (s *AuthService) issue(user domain.User) (domain.AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return domain.AuthResult{Token: token, User: user}, nil
}

var _ ports.AuthService = (*AuthService)(nil)
