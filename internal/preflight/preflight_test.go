package preflight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"doorops/internal/config"
	"doorops/internal/services"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, true)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), false)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, false)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRequireAssetRoot(t *testing.T) {
	if err := RequireAssetRoot(t.TempDir()); err != nil {
		t.Fatalf("expected readable root to pass, got %v", err)
	}
	err := RequireAssetRoot(filepath.Join(t.TempDir(), "unmounted"))
	if !errors.Is(err, services.ErrPreconditionFailed) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}

func TestCheckStorefront(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if result := CheckStorefront(context.Background(), srv.URL); !result.Passed {
		t.Fatalf("expected 404 to count as reachable, got: %s", result.Detail)
	}
}

func TestCheckStorefront_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if result := CheckStorefront(context.Background(), srv.URL); result.Passed {
		t.Fatal("expected failure for 502")
	}
}

func TestCheckDatabase(t *testing.T) {
	if result := CheckDatabase(context.Background(), "sqlite", fakePinger{}); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if result := CheckDatabase(context.Background(), "sqlite", fakePinger{err: errors.New("locked")}); result.Passed {
		t.Fatal("expected failure for ping error")
	}
	if result := CheckDatabase(context.Background(), "sqlite", nil); result.Passed {
		t.Fatal("expected failure for unopened store")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.AssetRoot = t.TempDir()
	cfg.Storefront.BaseURL = ""

	results := RunAll(context.Background(), &cfg, fakePinger{})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if err := Failed(results); err != nil {
		t.Fatalf("unexpected failures: %v", err)
	}
}

func TestFailed(t *testing.T) {
	err := Failed([]Result{{Name: "a", Passed: true}, {Name: "b", Detail: "down"}})
	if !errors.Is(err, services.ErrPreconditionFailed) {
		t.Fatalf("expected precondition error, got %v", err)
	}
}
