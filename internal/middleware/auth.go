package middleware

import (
	"net/http"
	"strings"

	"github.com/jessebautista/wpnew-sub000/internal/auth"
	"github.com/jessebautista/wpnew-sub000/internal/user"
)

// Authenticate resolves a Bearer token into the user id and role on the
// request context. Requests without a token pass through anonymous; it is
// up to RequireRole to reject them where authentication is mandatory.
func Authenticate(jwt *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := jwt.ValidateToken(token)
			if err != nil {
				SetErrorCode(r.Context(), "auth_failed")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":{"code":"auth_failed","message":"invalid or expired token"}}`))
				return
			}

			ctx := SetUserID(r.Context(), claims.Subject)
			ctx = SetUserRole(ctx, string(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose authenticated role is below the
// minimum. Anonymous requests get 401, insufficient roles get 403.
func RequireRole(minimum user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleStr := GetUserRole(r.Context())
			if roleStr == "" {
				SetErrorCode(r.Context(), "auth_failed")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":{"code":"auth_failed","message":"authentication required"}}`))
				return
			}

			role, err := user.ParseRole(roleStr)
			if err != nil || !role.AtLeast(minimum) {
				SetErrorCode(r.Context(), "forbidden")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":{"code":"forbidden","message":"insufficient permissions"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
