// Package bundle moves sets of templates in and out of the store as zip
// archives, for backup and for carrying work between instances.
package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"mailedit/archive"
	"mailedit/store"
)

const (
	manifestName = "manifest.json"
	templatesDir = "templates/"

	// manifestVersion is bumped when the bundle layout changes.
	manifestVersion = 1
)

type manifest struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Templates  []manifestEntry `json:"templates"`
}

type manifestEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
	File string    `json:"file"`
}

// Export writes every stored template into a zip bundle: one source file
// per template under templates/, plus a manifest carrying the metadata.
func Export(ctx context.Context, s store.Store, w io.Writer, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("bundle")

	templates, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list templates: %w", err)
	}

	zw := fixzip.NewWriter(w)
	m := manifest{Version: manifestVersion, ExportedAt: time.Now().UTC()}

	for _, t := range templates {
		entry := manifestEntry{ID: t.ID, Name: t.Name, Slug: t.Slug, File: templatesDir + t.Slug + ".tsx"}
		f, err := zw.Create(entry.File)
		if err != nil {
			return fmt.Errorf("unable to create bundle entry '%s': %w", entry.File, err)
		}
		if _, err := f.Write([]byte(t.Source)); err != nil {
			return fmt.Errorf("unable to write bundle entry '%s': %w", entry.File, err)
		}
		m.Templates = append(m.Templates, entry)
	}

	mf, err := zw.Create(manifestName)
	if err != nil {
		return fmt.Errorf("unable to create bundle manifest: %w", err)
	}
	enc := json.NewEncoder(mf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("unable to write bundle manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to finalize bundle: %w", err)
	}

	log.Info("Exported templates", zap.Int("count", len(m.Templates)))
	return nil
}

// ImportFile reads a bundle from disk and creates its templates in the
// store. Imported templates always get fresh identifiers; name collisions
// are resolved by the store's slug handling.
func ImportFile(ctx context.Context, s store.Store, path string, log *zap.Logger) ([]*store.Template, error) {
	walk := func(pattern string, fn archive.WalkFunc) error {
		return archive.Walk(path, pattern, fn)
	}
	return importWith(ctx, s, walk, log)
}

// ImportReader is ImportFile for a bundle already held in memory.
func ImportReader(ctx context.Context, s store.Store, ra io.ReaderAt, size int64, log *zap.Logger) ([]*store.Template, error) {
	walk := func(pattern string, fn archive.WalkFunc) error {
		return archive.WalkReader("bundle", ra, size, pattern, fn)
	}
	return importWith(ctx, s, walk, log)
}

func importWith(ctx context.Context, s store.Store, walk func(string, archive.WalkFunc) error, log *zap.Logger) ([]*store.Template, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("bundle")

	var m *manifest
	sources := make(map[string]string)

	err := walk("", func(name string, f *fixzip.File) error {
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open bundle entry '%s': %w", f.Name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("unable to read bundle entry '%s': %w", f.Name, err)
		}
		if f.Name == manifestName {
			m = &manifest{}
			if err := json.Unmarshal(data, m); err != nil {
				return fmt.Errorf("corrupt bundle manifest: %w", err)
			}
			return nil
		}
		sources[f.Name] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("bundle has no %s", manifestName)
	}
	if m.Version != manifestVersion {
		return nil, fmt.Errorf("unsupported bundle version %d", m.Version)
	}

	var imported []*store.Template
	for _, entry := range m.Templates {
		src, ok := sources[entry.File]
		if !ok {
			return nil, fmt.Errorf("bundle manifest references missing file '%s'", entry.File)
		}
		t, err := s.Create(ctx, entry.Name, src)
		if err != nil {
			return nil, fmt.Errorf("unable to import template '%s': %w", entry.Name, err)
		}
		imported = append(imported, t)
	}

	log.Info("Imported templates", zap.Int("count", len(imported)))
	return imported, nil
}
