package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/httputil"
	"github.com/williamsgomess/seubarriga-api/internal/logger"
)

type contextKey string

const callerContextKey contextKey = "caller"

// Authenticated resolves the caller from a bearer JWT signed with secret and
// stores it in the request context.
func Authenticated(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			tokenStr := parts[1]

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				logger.Log.Error("jwt subject missing or wrong type")
				httputil.WriteError(w, http.StatusUnauthorized, "invalid token payload")
				return
			}

			ctx := WithCaller(r.Context(), access.Caller{UserID: uint64(sub)})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithCaller(ctx context.Context, c access.Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, c)
}

func CallerFrom(ctx context.Context) (access.Caller, bool) {
	c, ok := ctx.Value(callerContextKey).(access.Caller)
	return c, ok
}
