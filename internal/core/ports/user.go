package ports

import (
	"context"

	"taskmanager/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenManager issues and verifies bearer tokens carrying a user id.
type TokenManager interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.AuthResult, error)
	Login(ctx context.Context, input domain.LoginInput) (domain.AuthResult, error)
	Profile(ctx context.Context, userID string) (domain.User, error)
	Authenticate(ctx context.Context, token string) (domain.User, error)
}
