package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/jwt"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	ActorKey   contextKey = "actor"
	TokenIDKey contextKey = "token_id"
)

// Actor is the authenticated identity attached to the request context.
// Capabilities are derived from the role on demand, never stored.
type Actor struct {
	UserID      uuid.UUID
	Username    string
	Role        entity.Role
	IsSuperuser bool
}

// Capabilities resolves the actor's permission set.
func (a *Actor) Capabilities() entity.Capabilities {
	return entity.CapabilitiesFor(a.Role, a.IsSuperuser)
}

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

// Authenticate requires a valid, unrevoked access token and attaches the
// actor to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, tokenID, ok := m.resolve(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), ActorKey, actor)
		ctx = context.WithValue(ctx, TokenIDKey, tokenID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateOptional attaches the actor when a valid token is present but
// lets anonymous requests through. Used by the open external-intake endpoint.
func (m *AuthMiddleware) AuthenticateOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		actor, tokenID, ok := m.resolve(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), ActorKey, actor)
		ctx = context.WithValue(ctx, TokenIDKey, tokenID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) resolve(w http.ResponseWriter, r *http.Request) (*Actor, string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		response.Unauthorized(w, "Authorization header is required")
		return nil, "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(w, "Invalid authorization header format")
		return nil, "", false
	}

	claims, err := m.jwtService.ValidateToken(parts[1])
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token")
		return nil, "", false
	}

	if claims.TokenType != jwt.AccessToken {
		response.Unauthorized(w, "Invalid token type")
		return nil, "", false
	}

	// Check if token exists in Redis (not revoked)
	tokenKey := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := m.redisClient.Exists(r.Context(), tokenKey).Result()
	if err != nil {
		response.InternalServerError(w, "Failed to validate token")
		return nil, "", false
	}
	if exists == 0 {
		response.Unauthorized(w, "Token has been revoked")
		return nil, "", false
	}

	actor := &Actor{
		UserID:      claims.UserID,
		Username:    claims.Username,
		Role:        entity.Role(claims.Role),
		IsSuperuser: claims.IsSuperuser,
	}
	return actor, claims.TokenID, true
}

// GetActorFromContext extracts the authenticated actor from context
func GetActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(*Actor)
	return actor, ok
}

// GetTokenIDFromContext extracts the access token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// WithActor returns a context carrying the given actor. Used by tests and
// internal callers that bypass the HTTP middleware.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}
