package chart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCaptureSavesArtifact(t *testing.T) {
	body := []byte("png-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pair"); got != "EURUSD_otc" {
			t.Errorf("unexpected pair query: %q", got)
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := New(srv.URL, t.TempDir())
	path, err := c.Capture(context.Background(), "EURUSD_otc")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !strings.HasSuffix(path, ".png") || !strings.Contains(path, "EURUSD_otc_") {
		t.Fatalf("unexpected artifact path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != string(body) {
		t.Fatalf("artifact content mismatch")
	}
}

func TestCaptureBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, t.TempDir())
	if _, err := c.Capture(context.Background(), "EURUSD_otc"); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}
}

func TestCaptureWithoutURL(t *testing.T) {
	c := New("", t.TempDir())
	if _, err := c.Capture(context.Background(), "EURUSD_otc"); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}
}
