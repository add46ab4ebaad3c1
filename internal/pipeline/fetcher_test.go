package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rgolubev/patentlens/internal/model"
)

func fetcherConfig(maxBytes int64) model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "Mozilla/5.0",
		MaxBodyBytes: maxBytes,
	}
}

func TestFetch_BrowserHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html><body>patent page</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(4_000_000), model.PolitenessConfig{})

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(body, "patent page") {
		t.Errorf("Body = %q", body)
	}
	if gotUA != "Mozilla/5.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(4_000_000), model.PolitenessConfig{})

	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for 403")
	}
}

func TestFetch_BodyCappedAtMaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(100), model.PolitenessConfig{})

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(body) != 100 {
		t.Errorf("Body length = %d, want 100", len(body))
	}
}

func TestFetch_RedirectLimit(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(4_000_000), model.PolitenessConfig{})

	if _, err := f.Fetch(context.Background(), server.URL+"/a"); err == nil {
		t.Fatal("Expected error for endless redirects")
	}
}

func TestFetch_RobotsDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /patent/\n"))
			return
		}
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(4_000_000), model.PolitenessConfig{RespectRobots: true})

	_, err := f.Fetch(context.Background(), server.URL+"/patent/US1")
	if err == nil {
		t.Fatal("Expected robots.txt to block the fetch")
	}
	if !strings.Contains(err.Error(), "robots.txt") {
		t.Errorf("Error = %v", err)
	}
}

func TestFetch_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	f := NewFetcher(fetcherConfig(4_000_000), model.PolitenessConfig{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := f.Fetch(ctx, server.URL); err == nil {
		t.Fatal("Expected error after context cancellation")
	}
}
