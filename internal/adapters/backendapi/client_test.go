package backendapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "classwatch/internal/platform/errors"
)

func TestPost(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, AuthToken: "tok"})
	if err := c.Post(context.Background(), "/report", map[string]string{"subject": "alice"}); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("auth header %q", gotAuth)
	}
	if gotBody["subject"] != "alice" {
		t.Fatalf("body %+v", gotBody)
	}
}

func TestPostNoTokenOmitsHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if err := c.Post(context.Background(), "/env", map[string]int{"temp": 30}); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}

func TestPostNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if err := c.Post(context.Background(), "/report", nil); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}
