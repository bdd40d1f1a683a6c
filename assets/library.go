// Package assets manages the image library templates reference: uploads are
// type-sniffed, stored on disk and get a thumbnail for the editor's asset
// picker. SVG uploads are rasterized for the thumbnail since email clients
// cannot be relied on to render vector images.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"mailedit/jpegquality"
)

const (
	thumbDir    = ".thumbs"
	thumbWidth  = 320
	thumbHeight = 240
)

var (
	ErrNotFound    = errors.New("asset not found")
	ErrUnsupported = errors.New("unsupported asset type")
	ErrBadName     = errors.New("invalid asset name")
)

// Asset describes one stored image.
type Asset struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Size int64  `json:"size"`
}

// Library is a directory of image assets with generated thumbnails.
type Library struct {
	dir string
	log *zap.Logger
}

func NewLibrary(dir string, log *zap.Logger) (*Library, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Join(dir, thumbDir), 0o755); err != nil {
		return nil, fmt.Errorf("unable to create asset directory '%s': %w", dir, err)
	}
	return &Library{dir: dir, log: log.Named("assets")}, nil
}

// Put stores an upload under the given name and generates its thumbnail.
// Only image types are accepted.
func (l *Library) Put(name string, data []byte) (*Asset, error) {
	if !safeName(name) {
		return nil, ErrBadName
	}

	mime, img, err := decodeUpload(data)
	if err != nil {
		return nil, err
	}
	if mime == "image/jpeg" {
		// heavily compressed uploads look bad in emails, worth surfacing
		if jr, err := jpegquality.NewWithBytes(data); err == nil {
			if q := jr.Quality(); q < 75 {
				l.log.Warn("Low quality JPEG upload", zap.String("name", name), zap.Int("quality", q))
			} else {
				l.log.Debug("JPEG upload quality", zap.String("name", name), zap.Int("quality", q))
			}
		}
	}

	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("unable to store asset '%s': %w", name, err)
	}

	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	if err := imaging.Save(thumb, l.thumbPath(name)); err != nil {
		return nil, fmt.Errorf("unable to save thumbnail for '%s': %w", name, err)
	}

	l.log.Debug("Stored asset", zap.String("name", name), zap.String("mime", mime), zap.Int("size", len(data)))
	return &Asset{Name: name, MIME: mime, Size: int64(len(data))}, nil
}

// List returns stored assets in natural name order.
func (l *Library) List() ([]*Asset, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}

	var out []*Asset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, &Asset{Name: e.Name(), MIME: mimeForName(e.Name()), Size: info.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return natural.Less(out[i].Name, out[j].Name)
	})
	return out, nil
}

// Open returns the asset content and its MIME type.
func (l *Library) Open(name string) (io.ReadCloser, string, error) {
	if !safeName(name) {
		return nil, "", ErrBadName
	}
	f, err := os.Open(filepath.Join(l.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return f, mimeForName(name), nil
}

// Thumbnail returns the PNG thumbnail generated at upload time.
func (l *Library) Thumbnail(name string) (io.ReadCloser, error) {
	if !safeName(name) {
		return nil, ErrBadName
	}
	f, err := os.Open(l.thumbPath(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (l *Library) Delete(name string) error {
	if !safeName(name) {
		return ErrBadName
	}
	err := os.Remove(filepath.Join(l.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_ = os.Remove(l.thumbPath(name))
	return nil
}

func (l *Library) thumbPath(name string) string {
	return filepath.Join(l.dir, thumbDir, name+".png")
}

// decodeUpload sniffs the content type and decodes the image for
// thumbnailing. SVG is detected by inspection since it is plain text.
func decodeUpload(data []byte) (string, image.Image, error) {
	if looksLikeSVG(data) {
		img, err := rasterizeSVG(data, thumbWidth, thumbHeight)
		if err != nil {
			return "", nil, fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return "image/svg+xml", img, nil
	}

	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return "", nil, ErrUnsupported
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("unable to decode %s image: %w", kind.Extension, err)
	}
	return kind.MIME.Value, img, nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	s := strings.TrimSpace(string(head))
	return strings.HasPrefix(s, "<svg") || (strings.HasPrefix(s, "<?xml") && strings.Contains(s, "<svg"))
}

func mimeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// safeName rejects names that could escape the library directory.
func safeName(name string) bool {
	return name != "" && name == filepath.Base(name) && name != "." && name != ".." && !strings.HasPrefix(name, ".")
}
