package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hadetan/expense-tracking/internal/user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

//go:generate mockgen -source=service.go -destination=users_mock.go -package=auth
type Users interface {
	Create(ctx context.Context, params user.CreateParams) (*user.User, error)
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

type Service struct {
	users  Users
	tokens *Tokens
}

func NewService(users Users, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

// Session is the result of a successful login.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *user.User
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: token, ExpiresAt: expiresAt, User: u}, nil
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *Service) Authenticate(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	u, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}

		return nil, fmt.Errorf("loading user: %w", err)
	}

	return u, nil
}

type RegisterParams struct {
	Email    string
	Name     string
	Password string
	IsAdmin  bool
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*user.User, error) {
	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, user.CreateParams{
		Email:        params.Email,
		Name:         params.Name,
		PasswordHash: hash,
		IsAdmin:      params.IsAdmin,
	})
}
