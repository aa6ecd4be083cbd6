package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	w.Header().Set("X-User", id.UserID)
	w.WriteHeader(http.StatusOK)
})

func mustDirectory(t *testing.T, raw string) *TokenDirectory {
	t.Helper()
	dir, err := ParseTokenDirectory(raw)
	if err != nil {
		t.Fatalf("ParseTokenDirectory: %v", err)
	}
	return dir
}

func TestParseTokenDirectory(t *testing.T) {
	dir := mustDirectory(t, "tok-a:alice, tok-b:bob:admin,")
	if dir.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", dir.Len())
	}
	if id, ok := dir.Lookup("tok-a"); !ok || id.UserID != "alice" || id.Role != "student" {
		t.Fatalf("unexpected identity for tok-a: %+v %v", id, ok)
	}
	if id, ok := dir.Lookup("tok-b"); !ok || id.Role != RoleAdmin {
		t.Fatalf("unexpected identity for tok-b: %+v %v", id, ok)
	}
	if _, ok := dir.Lookup("tok"); ok {
		t.Fatalf("partial token must not match")
	}

	for _, bad := range []string{"justatoken", ":user", "tok:", "a:b:c:d"} {
		if _, err := ParseTokenDirectory(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	dir := mustDirectory(t, "tok-a:alice")
	h := Authenticate(dir)(RequireAuth("Authentication Required", "Please log in to book an appointment.")(okHandler))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer tok-a", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"basic", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
		if rec.Code == http.StatusUnauthorized {
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("%s: decode body: %v", tt.name, err)
			}
			if body["error"] != "Authentication Required" || body["message"] != "Please log in to book an appointment." {
				t.Fatalf("%s: unexpected body %v", tt.name, body)
			}
		}
	}
}

func TestRequireRole(t *testing.T) {
	dir := mustDirectory(t, "tok-s:sam,tok-x:ops:admin")
	h := Authenticate(dir)(RequireRole(RoleAdmin)(okHandler))

	for header, want := range map[string]int{
		"":             http.StatusUnauthorized,
		"Bearer tok-s": http.StatusForbidden,
		"Bearer tok-x": http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("%q: status = %d, want %d", header, rec.Code, want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(okHandler)
	req := httptest.NewRequest(http.MethodOptions, "/api/appointments", http.NoBody)
	req.Header.Set("Origin", "https://campus.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://campus.example" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}
