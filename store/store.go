// Package store persists email templates. The canonical implementation
// keeps templates in a local SQLite database; Remote speaks to another
// instance's HTTP API, which is what the CLI uses against a running server.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Template is a stored email template. Source is the author's module text,
// exactly as last saved; identifier tagging happens at render time and is
// never written back here.
type Template struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound  = errors.New("template not found")
	ErrEmptyName = errors.New("template name is empty")
)

// Store is the template persistence contract. List returns templates in
// natural name order (name2 before name10).
type Store interface {
	Create(ctx context.Context, name, source string) (*Template, error)
	Get(ctx context.Context, id uuid.UUID) (*Template, error)
	GetBySlug(ctx context.Context, slug string) (*Template, error)
	List(ctx context.Context) ([]*Template, error)
	UpdateSource(ctx context.Context, id uuid.UUID, source string) (*Template, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}
