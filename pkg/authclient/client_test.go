package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetSessionResolvesUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("better-auth.session_token")
		if err != nil || cookie.Value != "live-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user": {"id": "0b9af3a2-1111-2222-3333-444455556666", "email": "admin@example.com", "name": "Admin"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "better-auth.session_token")
	session, err := client.GetSession(context.Background(), "live-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session == nil {
		t.Fatal("expected a session")
	}
	if session.Email != "admin@example.com" || session.Name != "Admin" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestGetSessionAnonymous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// better-auth responds with a JSON null body for anonymous callers.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "better-auth.session_token")
	session, err := client.GetSession(context.Background(), "stale-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session != nil {
		t.Fatalf("expected no session, got %+v", session)
	}
}

func TestGetSessionEmptyToken(t *testing.T) {
	client := NewClient("http://auth.invalid", "better-auth.session_token")
	session, err := client.GetSession(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session != nil {
		t.Fatal("empty token must resolve to no session without a network call")
	}
}
