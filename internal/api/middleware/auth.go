package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
)

// Identity headers set by the API gateway. The service trusts them as
// given; authenticating the caller is the gateway's job.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Roles recognized by the service.
const (
	RoleDriver = "DRIVER"
	RoleOwner  = "OWNER"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "userRole"
)

// Logger is the application logging contract.
type Logger interface {
	Warn(format string, v ...interface{})
}

// Identity extracts the caller's ID and role from the gateway headers and
// stores them in the request context. Requests without a valid user ID are
// rejected.
func Identity(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(HeaderUserID)
			userID, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil || userID <= 0 {
				log.Warn("%s %s - missing or invalid %s header: %q", r.Method, r.URL.Path, HeaderUserID, rawID)
				handlers.RespondError(w, http.StatusUnauthorized, "missing or invalid user identity")
				return
			}

			role := r.Header.Get(HeaderUserRole)
			if role != RoleDriver && role != RoleOwner {
				log.Warn("%s %s - missing or invalid %s header: %q", r.Method, r.URL.Path, HeaderUserRole, role)
				handlers.RespondError(w, http.StatusUnauthorized, "missing or invalid user role")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose caller does not carry the given role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Role(r.Context()) != role {
				handlers.RespondForbidden(w, "operation requires role "+role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserID returns the caller's ID from the context, or 0 when absent.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// Role returns the caller's role from the context, or "" when absent.
func Role(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}
