// Package archive builds a Walk abstraction on top of zip reading. Template
// bundles are zip files; everything that consumes them goes through Walk so
// unsafe entry paths are rejected in exactly one place.
package archive

import (
	"fmt"
	"io"
	"path"
	"strings"

	fixzip "github.com/hidez8891/zip"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains the name passed to Walk,
// the file argument is the zip.File structure for a file which satisfies
// the match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *fixzip.File) error

// Walk walks all files in the archive whose names start with pattern,
// calling walkFn for each item. Entries with path traversal components
// ("..") or absolute paths fail the walk to prevent Zip Slip attacks.
func Walk(archive, pattern string, walkFn WalkFunc) error {

	r, err := fixzip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	return walk(archive, r.File, pattern, walkFn)
}

// WalkReader is Walk over an already-open archive, for callers holding the
// bundle in memory (an upload) rather than on disk.
func WalkReader(name string, ra io.ReaderAt, size int64, pattern string, walkFn WalkFunc) error {

	r, err := fixzip.NewReader(ra, size)
	if err != nil {
		return err
	}
	return walk(name, r.File, pattern, walkFn)
}

func walk(archive string, files []*fixzip.File, pattern string, walkFn WalkFunc) error {
	for _, f := range files {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, pattern) {
			if err := walkFn(archive, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
