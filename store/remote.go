package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mailedit/config"
)

// Remote implements Store against a running server's HTTP API. It is what
// CLI commands use when pointed at a server instead of a local database.
type Remote struct {
	base   string
	token  config.SecretString
	client *http.Client
	log    *zap.Logger
}

var _ Store = (*Remote)(nil)

func NewRemote(base string, token config.SecretString, log *zap.Logger) *Remote {
	if log == nil {
		log = zap.NewNop()
	}
	return &Remote{
		base:   strings.TrimRight(base, "/"),
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log.Named("store"),
	}
}

func (r *Remote) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

func (r *Remote) Create(ctx context.Context, name, source string) (*Template, error) {
	var t Template
	in := map[string]string{"name": name, "source": source}
	if err := r.do(ctx, http.MethodPost, "/api/templates", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Remote) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	var t Template
	if err := r.do(ctx, http.MethodGet, "/api/templates/"+id.String(), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Remote) GetBySlug(ctx context.Context, sl string) (*Template, error) {
	var t Template
	if err := r.do(ctx, http.MethodGet, "/api/templates/slug/"+url.PathEscape(sl), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Remote) List(ctx context.Context) ([]*Template, error) {
	var out []*Template
	if err := r.do(ctx, http.MethodGet, "/api/templates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Remote) UpdateSource(ctx context.Context, id uuid.UUID, source string) (*Template, error) {
	var t Template
	in := map[string]string{"source": source}
	if err := r.do(ctx, http.MethodPut, "/api/templates/"+id.String()+"/source", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Remote) Rename(ctx context.Context, id uuid.UUID, name string) (*Template, error) {
	var t Template
	in := map[string]string{"name": name}
	if err := r.do(ctx, http.MethodPut, "/api/templates/"+id.String()+"/name", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Remote) Delete(ctx context.Context, id uuid.UUID) error {
	return r.do(ctx, http.MethodDelete, "/api/templates/"+id.String(), nil, nil)
}

func (r *Remote) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+string(r.token))
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to reach server at '%s': %w", r.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
