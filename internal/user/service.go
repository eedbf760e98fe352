package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Email        string
	Name         string
	PasswordHash string
	IsAdmin      bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	u := &User{
		Email:        NormalizeEmail(params.Email),
		PasswordHash: params.PasswordHash,
		IsAdmin:      params.IsAdmin,
	}

	if name := strings.TrimSpace(params.Name); name != "" {
		u.Name = &name
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetUserByEmail(ctx, NormalizeEmail(email))
}
