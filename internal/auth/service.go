package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskhub/taskhub/internal/models"
	"github.com/taskhub/taskhub/internal/repo"
	"github.com/taskhub/taskhub/internal/sanitize"
)

// CredentialStore is the narrow persistence surface the auth service needs.
// *repo.UserRepo satisfies it; tests use in-memory fakes.
type CredentialStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service orchestrates registration, login, and per-request identity
// resolution over a credential store, a password hasher, and a token issuer.
type Service struct {
	store  CredentialStore
	hasher *PasswordHasher
	issuer *TokenIssuer
}

func NewService(store CredentialStore, hasher *PasswordHasher, issuer *TokenIssuer) *Service {
	return &Service{store: store, hasher: hasher, issuer: issuer}
}

// Register hashes the password and persists the username/hash pair. The
// username is stripped of markup first. Returns ErrDuplicateUser when the
// username is already taken.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = sanitize.Clean(username)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues a bearer token with the username
// as subject. A missing user and a failed password check both come back as
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = sanitize.Clean(username)

	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ResolveIdentity validates the token and loads the user it asserts. Any
// token defect, and a subject that no longer exists in the store, resolve to
// ErrUnauthenticated: a deleted user holding a time-valid token is not
// authenticated.
func (s *Service) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.issuer.Validate(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.store.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("lookup subject: %w", err)
	}
	return user, nil
}
