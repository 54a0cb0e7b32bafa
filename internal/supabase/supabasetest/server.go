// Package supabasetest runs a fake backend for repository tests.
package supabasetest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"marmita-storefront/internal/supabase"

	"golang.org/x/time/rate"
)

const (
	APIKey    = "anon-key"
	UserToken = "user-token"
)

type tokens string

func (t tokens) Token() string { return string(t) }

// NewClient starts h behind an httptest server and returns a client for it
// whose session carries UserToken. signedIn=false leaves the session empty.
func NewClient(t *testing.T, signedIn bool, h http.HandlerFunc) *supabase.Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tok := tokens("")
	if signedIn {
		tok = UserToken
	}

	return supabase.New(supabase.Options{
		BaseURL:    srv.URL,
		APIKey:     APIKey,
		HTTPClient: srv.Client(),
		Tokens:     tok,
		RateLimit:  rate.Inf,
	})
}

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
