package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/spendwise/spendwise/internal/shared"
)

// bcryptCost is the work factor applied to every stored password hash.
const bcryptCost = 10

// Service wraps registration and authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenManager
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account with a freshly minted id and a bcrypt hash
// of the raw password, then issues a token for it. The raw password is
// never persisted.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Authenticate validates email/password credentials and issues a token.
// An unknown email and a wrong password fail with distinct errors; the
// handlers surface both as 400 with their message text.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", shared.ErrUserNotFound
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// VerifyToken checks a bearer token and returns the embedded user id.
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

// ResolveUser loads the account a verified token refers to.
func (s *Service) ResolveUser(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
