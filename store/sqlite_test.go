package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"mailedit/store"
)

func openTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	s, err := store.OpenSQLite(":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Welcome Email", "export default () => null;")
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if created.Slug != "welcome-email" {
		t.Errorf("unexpected slug %q", created.Slug)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got.Name != created.Name || got.Source != created.Source || got.Slug != created.Slug {
		t.Errorf("roundtrip mismatch: %+v vs %+v", got, created)
	}

	bySlug, err := s.GetBySlug(ctx, "welcome-email")
	if err != nil {
		t.Fatalf("failed to get by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Errorf("slug lookup returned wrong template")
	}
}

func TestCreateEmptyName(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Create(context.Background(), "  ", "x"); !errors.Is(err, store.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestSlugCollision(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, "Promo", "a")
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	second, err := s.Create(ctx, "Promo", "b")
	if err != nil {
		t.Fatalf("failed to create duplicate name: %v", err)
	}
	if first.Slug != "promo" || second.Slug != "promo-2" {
		t.Errorf("unexpected slugs %q, %q", first.Slug, second.Slug)
	}
}

func TestListNaturalOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Newsletter 10", "Newsletter 2", "Alert"} {
		if _, err := s.Create(ctx, name, ""); err != nil {
			t.Fatalf("failed to create %q: %v", name, err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	want := []string{"Alert", "Newsletter 2", "Newsletter 10"}
	if len(list) != len(want) {
		t.Fatalf("expected %d templates, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, list[i].Name)
		}
	}
}

func TestUpdateSourceAndRename(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Promo", "old")
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}

	updated, err := s.UpdateSource(ctx, created.ID, "new")
	if err != nil {
		t.Fatalf("failed to update source: %v", err)
	}
	if updated.Source != "new" {
		t.Errorf("source not updated: %q", updated.Source)
	}

	renamed, err := s.Rename(ctx, created.ID, "Summer Promo")
	if err != nil {
		t.Fatalf("failed to rename: %v", err)
	}
	if renamed.Name != "Summer Promo" {
		t.Errorf("name not updated: %q", renamed.Name)
	}
	// the slug stays stable across renames
	if renamed.Slug != created.Slug {
		t.Errorf("rename must not change the slug: %q vs %q", renamed.Slug, created.Slug)
	}
}

func TestNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id := uuid.New()

	if _, err := s.Get(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateSource(ctx, id, "x"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateSource: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Promo", "")
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
