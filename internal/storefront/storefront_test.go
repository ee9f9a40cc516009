package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"doorops/internal/config"
	"doorops/internal/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.Storefront{
		BaseURL:        srv.URL + "/",
		ProductsPath:   "/api/catalog/doors/complete-data",
		CacheClearPath: "/api/catalog/doors/complete-data/clear-cache",
		TimeoutSeconds: 5,
	})
}

const listingBody = `{
  "data": {
    "models": [
      {"model": "DomeoDoors_Base_1", "sizes": [1, 2], "coatings": ["White", "Oak"], "products": [{}, {}, {}]},
      {"model": "DomeoDoors_Base_2", "sizes": [1], "coatings": null, "products": []},
      {"name": "Legacy", "sizes": [1], "coatings": [1], "products": [1]}
    ],
    "styles": ["modern", "classic"],
    "totalModels": 3
  }
}`

func TestVerifyProducts(t *testing.T) {
	var gotQuery url.Values
	var gotAgent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/catalog/doors/complete-data" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listingBody))
	})

	report, err := client.VerifyProducts(context.Background(), url.Values{"style": {"modern"}})
	if err != nil {
		t.Fatalf("VerifyProducts: %v", err)
	}
	if gotQuery.Get("style") != "modern" || gotAgent != userAgent {
		t.Fatalf("unexpected request: query=%v agent=%q", gotQuery, gotAgent)
	}
	want := ListingReport{
		URL:         report.URL,
		Models:      3,
		Styles:      2,
		TotalModels: 3,
		Sizes:       4,
		Coatings:    3,
		Products:    4,
		Incomplete:  []Incomplete{{Model: "DomeoDoors_Base_2", Missing: []string{"coatings"}}},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if report.Consistent() {
		t.Fatal("expected incomplete model to make the listing inconsistent")
	}
}

func TestVerifyProductsStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.VerifyProducts(context.Background(), nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError || statusErr.Body != "boom" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
	if !errors.Is(err, services.ErrExternalAPI) {
		t.Fatalf("expected external api marker, got %v", err)
	}
}

func TestVerifyProductsRejectsMissingEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models": []}`))
	})
	if _, err := client.VerifyProducts(context.Background(), nil); !errors.Is(err, services.ErrExternalAPI) {
		t.Fatalf("expected external api error, got %v", err)
	}
}

func TestClearCacheJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/catalog/doors/complete-data/clear-cache" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"success": true, "message": "Cache cleared"}`))
	})

	report, err := client.ClearCache(context.Background())
	if err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	if report.Message != "Cache cleared" || report.Body["success"] != true {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestClearCachePlainText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})

	report, err := client.ClearCache(context.Background())
	if err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	if report.Text != "ok" || report.Body != nil {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestClearCacheStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	_, err := client.ClearCache(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 StatusError, got %v", err)
	}
}
