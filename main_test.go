package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/folio/internal/blog"
	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/repository"
	"github.com/debemdeboas/folio/internal/web"
)

func TestEmbeddedAssets(t *testing.T) {
	setLoggers(zerolog.Nop())

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	store := blog.NewPostStore(repository.NewMemoryStateRepository())
	if _, err := store.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	srv, err := web.NewServer(cfg, store, content)
	if err != nil {
		t.Fatalf("Expected embedded templates to parse, got %v", err)
	}
	handler := srv.Handler()

	for _, path := range []string{"/", "/blog", "/blog/posts/1", "/static/app.js", "/static/style.css"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestServeIndex(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Site.Owner = "Test Owner"

	store := blog.NewPostStore(repository.NewMemoryStateRepository())
	if _, err := store.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	srv, err := web.NewServer(cfg, store, content)
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 OK, got %d", res.StatusCode)
	}
	if !strings.Contains(rec.Body.String(), "Test Owner") {
		t.Errorf("Expected body to contain the owner")
	}
}
