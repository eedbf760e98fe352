package category

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("category not found")
	ErrDuplicate    = errors.New("category already exists")
	ErrNameRequired = errors.New("category name is required")
)

// Category groups expenses. Names are unique per owner, compared case-insensitively after trimming.
type Category struct {
	ID        uuid.UUID
	Name      string
	OwnerID   uuid.UUID
	CreatedAt time.Time
}

// Key is the form under which a category name is compared for uniqueness.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
