package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	source     TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// SQLite keeps templates in a local database file (or in memory, for
// ":memory:" paths).
type SQLite struct {
	pool *sqlitex.Pool
	log  *zap.Logger
}

var _ Store = (*SQLite)(nil)

func OpenSQLite(path string, log *zap.Logger) (*SQLite, error) {
	if log == nil {
		log = zap.NewNop()
	}

	opts := sqlitex.PoolOptions{PoolSize: 4}
	if strings.Contains(path, ":memory:") {
		// a memory database exists per connection
		opts.PoolSize = 1
	}
	pool, err := sqlitex.NewPool(path, opts)
	if err != nil {
		return nil, fmt.Errorf("unable to open template database '%s': %w", path, err)
	}

	s := &SQLite{pool: pool, log: log.Named("store")}
	conn, err := pool.Take(context.Background())
	if err != nil {
		_ = pool.Close()
		return nil, err
	}
	defer pool.Put(conn)
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("unable to initialize template database: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error {
	return s.pool.Close()
}

func (s *SQLite) Create(ctx context.Context, name, source string) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	now := time.Now().UTC().Truncate(time.Second)
	t := &Template{
		ID:        uuid.New(),
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.Slug, err = s.uniqueSlug(conn, slug.Make(name))
	if err != nil {
		return nil, err
	}

	err = sqlitex.Execute(conn,
		`INSERT INTO templates (id, name, slug, source, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?);`,
		&sqlitex.ExecOptions{
			Args: []any{t.ID.String(), t.Name, t.Slug, t.Source, t.CreatedAt.Unix(), t.UpdatedAt.Unix()},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to create template '%s': %w", name, err)
	}
	s.log.Debug("Created template", zap.Stringer("id", t.ID), zap.String("slug", t.Slug))
	return t, nil
}

// uniqueSlug appends a numeric suffix until the slug is free.
func (s *SQLite) uniqueSlug(conn *sqlite.Conn, base string) (string, error) {
	if base == "" {
		base = "template"
	}
	candidate := base
	for i := 2; ; i++ {
		var taken bool
		err := sqlitex.Execute(conn, `SELECT 1 FROM templates WHERE slug = ?;`, &sqlitex.ExecOptions{
			Args: []any{candidate},
			ResultFunc: func(*sqlite.Stmt) error {
				taken = true
				return nil
			},
		})
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *SQLite) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	return s.getWhere(ctx, "id = ?", id.String())
}

func (s *SQLite) GetBySlug(ctx context.Context, sl string) (*Template, error) {
	return s.getWhere(ctx, "slug = ?", sl)
}

func (s *SQLite) getWhere(ctx context.Context, cond string, arg any) (*Template, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var t *Template
	err = sqlitex.Execute(conn,
		`SELECT id, name, slug, source, created_at, updated_at FROM templates WHERE `+cond+`;`,
		&sqlitex.ExecOptions{
			Args: []any{arg},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rec, err := scanTemplate(stmt)
				if err == nil {
					t = rec
				}
				return err
			},
		})
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *SQLite) List(ctx context.Context) ([]*Template, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var out []*Template
	err = sqlitex.Execute(conn,
		`SELECT id, name, slug, source, created_at, updated_at FROM templates;`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				t, err := scanTemplate(stmt)
				if err == nil {
					out = append(out, t)
				}
				return err
			},
		})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return natural.Less(out[i].Name, out[j].Name)
	})
	return out, nil
}

func (s *SQLite) UpdateSource(ctx context.Context, id uuid.UUID, source string) (*Template, error) {
	return s.update(ctx, id, `UPDATE templates SET source = ?, updated_at = ? WHERE id = ?;`, source)
}

func (s *SQLite) Rename(ctx context.Context, id uuid.UUID, name string) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return s.update(ctx, id, `UPDATE templates SET name = ?, updated_at = ? WHERE id = ?;`, name)
}

func (s *SQLite) update(ctx context.Context, id uuid.UUID, query, value string) (*Template, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{value, time.Now().UTC().Unix(), id.String()},
	})
	if err != nil {
		return nil, err
	}
	if conn.Changes() == 0 {
		return nil, ErrNotFound
	}
	return s.getWhere(ctx, "id = ?", id.String())
}

func (s *SQLite) Delete(ctx context.Context, id uuid.UUID) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM templates WHERE id = ?;`, &sqlitex.ExecOptions{
		Args: []any{id.String()},
	})
	if err != nil {
		return err
	}
	if conn.Changes() == 0 {
		return ErrNotFound
	}
	s.log.Debug("Deleted template", zap.Stringer("id", id))
	return nil
}

func scanTemplate(stmt *sqlite.Stmt) (*Template, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("corrupt template id: %w", err)
	}
	return &Template{
		ID:        id,
		Name:      stmt.ColumnText(1),
		Slug:      stmt.ColumnText(2),
		Source:    stmt.ColumnText(3),
		CreatedAt: time.Unix(stmt.ColumnInt64(4), 0).UTC(),
		UpdatedAt: time.Unix(stmt.ColumnInt64(5), 0).UTC(),
	}, nil
}
