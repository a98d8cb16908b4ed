package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Selvaprakash-V/SIH2K25/models"
	"github.com/Selvaprakash-V/SIH2K25/workflow"
)

type contextKey string

const (
	actorKey  contextKey = "actor"
	claimsKey contextKey = "claims"
	userIDKey contextKey = "user_id"
)

// Claims is the JWT payload: identity plus the role/scope fields the
// workflow and dashboards need.
type Claims struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	State    string `json:"state,omitempty"`
	District string `json:"district,omitempty"`
	jwt.RegisteredClaims
}

// NewToken issues an HS256 token for a user.
func NewToken(secret string, ttl time.Duration, u models.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Name:     u.Name,
		Role:     u.Role,
		State:    u.State,
		District: u.District,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates a token string and returns its claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Auth rejects requests without a valid Bearer token and stashes the actor
// identity in the request context.
func Auth(secret string, log *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, "Missing or malformed Authorization header")
				return
			}

			claims, err := ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Debugw("rejected token", "path", r.URL.Path, "error", err)
				writeAuthError(w, "Invalid or expired token")
				return
			}

			actor := workflow.Actor{
				Name:     claims.Name,
				Role:     workflow.Role(claims.Role),
				District: claims.District,
			}
			ctx := context.WithValue(r.Context(), actorKey, actor)
			ctx = context.WithValue(ctx, claimsKey, claims)
			ctx = context.WithValue(ctx, userIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFrom extracts the authenticated actor placed by Auth.
func ActorFrom(ctx context.Context) (workflow.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(workflow.Actor)
	return actor, ok
}

// ClaimsFrom extracts the full token claims placed by Auth.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// UserIDFrom extracts the authenticated user id placed by Auth.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "` + msg + `", "code": 401}`))
}
