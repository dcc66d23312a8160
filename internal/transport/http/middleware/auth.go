package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/madmenmarketingindia/mad-rating/internal/auth"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// UserContext is the resolved session identity carried on the request
// context; core logic receives it explicitly instead of reading ambient
// session state.
type UserContext struct {
	UserID     string
	EmployeeID string
	Role       string
	Name       string
}

// Auth resolves a bearer credential into a UserContext. Requests without a
// credential pass through untouched; route guards decide whether identity is
// required. An expired token is answered immediately so the client can tell
// forced re-authentication apart from a plain authorization failure.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					api.Fail(w, http.StatusUnauthorized, "auth_expired", "session expired, sign in again", GetRequestID(r.Context()))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, UserContext{
				UserID:     claims.UserID,
				EmployeeID: claims.EmployeeID,
				Role:       claims.Role,
				Name:       claims.Name,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(UserContext)
	return user, ok
}
