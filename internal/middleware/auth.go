// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/carterperez-dev/gym-membership/internal/core"
)

const (
	RoleAdmin     = "admin"
	RoleStaff     = "staff"
	RoleFrontDesk = "front_desk"
)

const (
	StaffIDKey   contextKey = "staff_id"
	StaffRoleKey contextKey = "staff_role"
	ClaimsKey    contextKey = "jwt_claims"
)

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*StaffClaims, error)
}

// StaffClaims are the verified claims of a gym employee's access token.
type StaffClaims struct {
	StaffID string
	Name    string
	Role    string
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("missing authorization token"),
				)
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithStaff(r.Context(), claims)))
		})
	}
}

// WithStaff stores verified claims on ctx.
func WithStaff(ctx context.Context, claims *StaffClaims) context.Context {
	ctx = context.WithValue(ctx, StaffIDKey, claims.StaffID)
	ctx = context.WithValue(ctx, StaffRoleKey, claims.Role)
	return context.WithValue(ctx, ClaimsKey, claims)
}

func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetStaffRole(r.Context())

			if role == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("authentication required"),
				)
				return
			}

			if _, ok := roleSet[role]; !ok {
				core.JSONError(
					w,
					core.ForbiddenError("insufficient permissions"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin)(next)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrForbidden):
		core.JSONError(w, core.ForbiddenError("role not permitted"))
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetStaffID(ctx context.Context) string {
	if id, ok := ctx.Value(StaffIDKey).(string); ok {
		return id
	}
	return ""
}

func GetStaffRole(ctx context.Context) string {
	if role, ok := ctx.Value(StaffRoleKey).(string); ok {
		return role
	}
	return ""
}

func GetClaims(ctx context.Context) *StaffClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*StaffClaims); ok {
		return claims
	}
	return nil
}
