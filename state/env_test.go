package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mailedit/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	if ctx == nil {
		t.Fatal("ContextWithEnv() returned nil")
	}

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}

	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Brands == nil {
		t.Error("Brand kit provider not set")
	}
}

func TestEnvFromContext(t *testing.T) {
	t.Run("valid context", func(t *testing.T) {
		ctx := ContextWithEnv(context.Background())
		if EnvFromContext(ctx) == nil {
			t.Error("Expected non-nil environment")
		}
	})

	t.Run("panic on missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic when env not in context")
			}
		}()

		// Use plain context without env
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestOpenStores(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	if err := env.OpenStores(); err == nil {
		t.Error("OpenStores() must fail without configuration")
	}

	tmpDir := t.TempDir()
	env.Cfg = &config.Config{}
	env.Cfg.Storage.DatabasePath = filepath.Join(tmpDir, "templates.db")
	env.Cfg.Storage.AssetsDir = filepath.Join(tmpDir, "assets")

	if err := env.OpenStores(); err != nil {
		t.Fatalf("OpenStores() error = %v", err)
	}
	if env.Store == nil || env.Assets == nil {
		t.Error("OpenStores() left storage unwired")
	}
	if err := env.CloseStores(); err != nil {
		t.Errorf("CloseStores() error = %v", err)
	}
	if env.Store != nil {
		t.Error("CloseStores() must clear the store")
	}
}

func TestOpenStoresRemote(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	tmpDir := t.TempDir()
	env.Cfg = &config.Config{}
	env.Cfg.Remote.BaseURL = "http://localhost:9999"
	env.Cfg.Storage.AssetsDir = filepath.Join(tmpDir, "assets")

	if err := env.OpenStores(); err != nil {
		t.Fatalf("OpenStores() error = %v", err)
	}
	defer func() { _ = env.CloseStores() }()
	if env.Store == nil {
		t.Error("remote store not wired")
	}
}
