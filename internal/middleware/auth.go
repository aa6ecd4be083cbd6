package middleware

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/zhouzirui/mindwell/backend/pkg/utils"
)

// RoleAdmin may read analytics and manage appointments.
const RoleAdmin = "admin"

// Identity is the authenticated caller.
type Identity struct {
	UserID string
	Role   string
}

type identityKey struct{}

// IdentityFrom returns the identity attached by Authenticate, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity attaches id to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

type tokenEntry struct {
	token []byte
	id    Identity
}

// TokenDirectory maps static bearer tokens to identities. It stands in for
// the external identity provider.
type TokenDirectory struct {
	entries []tokenEntry
}

// ParseTokenDirectory reads "token:userID[:role],..." entries. The role
// defaults to "student".
func ParseTokenDirectory(raw string) (*TokenDirectory, error) {
	dir := &TokenDirectory{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid auth token entry %q (want token:userID[:role])", entry)
		}
		role := "student"
		if len(parts) == 3 && parts[2] != "" {
			role = parts[2]
		}
		dir.entries = append(dir.entries, tokenEntry{
			token: []byte(parts[0]),
			id:    Identity{UserID: parts[1], Role: role},
		})
	}
	return dir, nil
}

// Len reports the number of configured tokens.
func (d *TokenDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Lookup resolves a token using constant-time comparison against every entry.
func (d *TokenDirectory) Lookup(token string) (Identity, bool) {
	if d == nil || token == "" {
		return Identity{}, false
	}
	got := []byte(token)
	var (
		found Identity
		ok    bool
	)
	for _, e := range d.entries {
		if subtle.ConstantTimeCompare(got, e.token) == 1 {
			found, ok = e.id, true
		}
	}
	return found, ok
}

// Authenticate attaches the caller's identity when a known bearer token is
// presented. Anonymous requests pass through untouched.
func Authenticate(dir *TokenDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if token, found := strings.CutPrefix(auth, "Bearer "); found {
				if id, ok := dir.Lookup(token); ok {
					r = r.WithContext(WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(title, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFrom(r.Context()); !ok {
				utils.RespondNotice(w, http.StatusUnauthorized, title, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects anonymous requests with 401 and other roles with 403.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, "Authentication Required")
				return
			}
			if id.Role != role {
				utils.RespondError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
