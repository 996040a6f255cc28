/**
 * @description
 * This file contains custom middleware for the HTTP router. Session
 * resolution happens here, once per request: protected handlers receive an
 * already-resolved actor from the request context instead of reading
 * headers themselves.
 */
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Viikudev/netflix-crm/internal/domain"
	"github.com/Viikudev/netflix-crm/pkg/authclient"
)

// actorContextKey is a custom type for the context key to avoid collisions.
type actorContextKey string

const actorKey actorContextKey = "actor"

// SessionResolver resolves a session cookie token to the authenticated user.
// It is implemented by the auth service client.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionToken string) (*authclient.Session, error)
}

// AuthConfig configures the session middleware.
type AuthConfig struct {
	// Sessions resolves cookie tokens. May be nil when only bearer tokens
	// are accepted.
	Sessions SessionResolver
	// CookieName is the session cookie issued by the auth service.
	CookieName string
	// TokenSecret verifies HS256 bearer tokens used for service-to-service
	// calls. Empty disables the bearer path.
	TokenSecret string
}

// RequireSession creates a middleware that authenticates the request via the
// session cookie or, failing that, an HS256 bearer token, and injects the
// resolved actor into the request context.
func RequireSession(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Sessions != nil {
				if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
					session, err := cfg.Sessions.GetSession(r.Context(), cookie.Value)
					if err != nil {
						// A failing auth service is a collaborator fault, not
						// an invalid session.
						http.Error(w, "Internal Server Error", http.StatusInternalServerError)
						return
					}
					if session != nil {
						actor, err := actorFromSession(session)
						if err != nil {
							http.Error(w, "Unauthorized", http.StatusUnauthorized)
							return
						}
						ctx := context.WithValue(r.Context(), actorKey, actor)
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			if cfg.TokenSecret != "" {
				if actor, ok := actorFromBearer(r, cfg.TokenSecret); ok {
					ctx := context.WithValue(r.Context(), actorKey, actor)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}

func actorFromSession(session *authclient.Session) (domain.Actor, error) {
	id, err := uuid.Parse(session.UserID)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("invalid user id in session: %w", err)
	}
	return domain.Actor{ID: id, Email: session.Email, Name: session.Name}, nil
}

// actorFromBearer validates an HS256 service token from the Authorization
// header. The subject claim carries the actor id.
func actorFromBearer(r *http.Request, secret string) (domain.Actor, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return domain.Actor{}, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return domain.Actor{}, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return domain.Actor{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Actor{}, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return domain.Actor{}, false
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return domain.Actor{}, false
	}

	actor := domain.Actor{ID: id}
	if email, ok := claims["email"].(string); ok {
		actor.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		actor.Name = name
	}
	return actor, true
}

// ActorFromContext retrieves the authenticated actor from the request
// context. Handlers behind RequireSession should use this.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
