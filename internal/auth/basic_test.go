package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAddUserValidation(t *testing.T) {
	s := NewInMemoryUserStore()
	if err := s.AddUserPlain("", "pw"); err == nil {
		t.Fatalf("expected error for empty username")
	}
	if err := s.AddUserPlain("bob", ""); err == nil {
		t.Fatalf("expected error for empty password")
	}
	if err := s.AddUserHash("bob", []byte("not-a-hash")); err == nil {
		t.Fatalf("expected error for invalid bcrypt hash")
	}
	if s.Len() != 0 {
		t.Fatalf("no user should have been added")
	}
}

func TestCheckPassword(t *testing.T) {
	s := NewInMemoryUserStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddUserHash("alice", hash); err != nil {
		t.Fatal(err)
	}
	if !s.CheckPassword("alice", "secret") {
		t.Fatalf("expected password to match")
	}
	if s.CheckPassword("alice", "wrong") || s.CheckPassword("nobody", "secret") {
		t.Fatalf("unexpected match")
	}
}

func TestBasicAuthMiddleware(t *testing.T) {
	s := NewInMemoryUserStore()
	if err := s.AddUserPlain("alice", "secret"); err != nil {
		t.Fatal(err)
	}
	var seen string
	h := BasicAuthMiddleware(s, "todo", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UsernameFromRequest(r)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") != `Basic realm="todo"` {
		t.Fatalf("unexpected challenge %q", rr.Header().Get("WWW-Authenticate"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("alice", "secret")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || seen != "alice" {
		t.Fatalf("expected pass-through for alice, code=%d user=%q", rr.Code, seen)
	}
}
