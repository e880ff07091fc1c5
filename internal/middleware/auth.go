package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"six-cities-api/internal/model"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Identity, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

type AuthMiddleware struct {
	auth authenticator
}

func NewAuthMiddleware(auth authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Authenticate is the passthrough gate: a request without an Authorization
// header continues with no identity attached — forcing authentication is the
// per-route guard's job. A present header must verify (signature, expiry)
// and survive the revocation check, otherwise the request is rejected here.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			// Only a bad credential is the client's fault; a failing
			// revocation lookup must not masquerade as one.
			if errors.Is(err, model.ErrTokenInvalid) || errors.Is(err, model.ErrTokenRevoked) {
				writeEnvelope(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or revoked token")
				return
			}
			slog.Error("authentication lookup failed", "error", err)
			writeEnvelope(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireIdentity rejects requests that reached a guarded route without an
// identity attached by Authenticate.
func (m *AuthMiddleware) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			writeEnvelope(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}

// BearerToken is the single parsing point for the Authorization header.
// Canonical form is "Bearer <token>"; a bare token without a scheme is
// accepted for legacy clients.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}

	if scheme, rest, found := strings.Cut(header, " "); found {
		if !strings.EqualFold(scheme, "bearer") {
			return "", false
		}
		token := strings.TrimSpace(rest)
		return token, token != ""
	}

	return header, true
}
