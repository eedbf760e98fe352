package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id, ownerID uuid.UUID) (*Category, error)
	// FindByName matches the trimmed name case-insensitively within the owner's categories.
	FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*Category, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*Category, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a category for the owner. It returns ErrDuplicate when the owner already has a
// category with the same name ignoring case.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	_, err := s.repo.FindByName(ctx, ownerID, name)
	switch {
	case err == nil:
		return nil, ErrDuplicate
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("looking up category: %w", err)
	}

	c := &Category{
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id, ownerID uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id, ownerID)
}

func (s *Service) FindByName(ctx context.Context, ownerID uuid.UUID, name string) (*Category, error) {
	return s.repo.FindByName(ctx, ownerID, strings.TrimSpace(name))
}

// List returns the owner's categories sorted by name.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Category, error) {
	return s.repo.ListCategories(ctx, ownerID)
}
