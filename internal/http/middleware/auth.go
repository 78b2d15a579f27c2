package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the already-authenticated caller extracted from a bearer
// token. Token issuance and identity live outside this service.
type Principal struct {
	UserID int64
	Role   string
}

// Roles allowed to mutate registry state and read management reports.
var managerRoles = map[string]bool{
	"park_manager": true,
	"admin":        true,
}

// Authenticate parses an optional bearer token and stores the principal in
// the request context. Requests without a token pass through anonymously;
// role checks happen per route.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenInvalidClaims
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "invalid token claims", http.StatusUnauthorized)
				return
			}

			principal := Principal{}
			if id, ok := claims["user_id"].(float64); ok {
				principal.UserID = int64(id)
			}
			if role, ok := claims["role"].(string); ok {
				principal.Role = role
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireManager guards handlers that mutate registry state. 401 without a
// principal, 403 with an insufficient role.
func RequireManager(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !managerRoles[principal.Role] {
			http.Error(w, "manager role required", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	val := ctx.Value(principalKey)
	if val == nil {
		return Principal{}, false
	}
	principal, ok := val.(Principal)
	return principal, ok
}
