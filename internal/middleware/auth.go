// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

const claimsKey contextKey = "access_claims"

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*AccessTokenClaims, error)
}

// AccessTokenClaims is what a verified bearer token says about its holder.
// CompanyID is nil for users not attached to a management company.
type AccessTokenClaims struct {
	TokenID   string
	UserID    int64
	Role      user.Role
	CompanyID *int64
	ExpiresAt time.Time
}

// Authenticator rejects requests without a valid bearer token and puts the
// verified claims on the request context.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.JSONError(w, core.UnauthorizedError("missing authorization token"))
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				core.JSONError(w, tokenError(err))
				return
			}

			trace.SpanFromContext(r.Context()).SetAttributes(
				attribute.Int64("enduser.id", claims.UserID),
				attribute.String("enduser.role", claims.Role.String()),
			)

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func tokenError(err error) error {
	var appErr *core.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, core.ErrTokenExpired):
		return core.TokenExpiredError()
	case errors.Is(err, core.ErrTokenRevoked):
		return core.TokenRevokedError()
	default:
		return core.TokenInvalidError()
	}
}

func WithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// RequireRole admits only the listed roles. It must run after
// Authenticator; a request without claims gets 401, a wrong role 403.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			switch {
			case claims == nil:
				core.JSONError(w, core.UnauthorizedError("authentication required"))
			case !slices.Contains(roles, claims.Role):
				core.JSONError(w, core.ForbiddenError("insufficient permissions"))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin)(next)
}

// RequireManager admits the roles allowed to change occupancy and payment
// status.
func RequireManager(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin, user.RoleOwner, user.RolePropertyManager)(next)
}

// ExtractToken returns the bearer token from the Authorization header, or
// "" when there is none.
func ExtractToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	claims, _ := ctx.Value(claimsKey).(*AccessTokenClaims)
	return claims
}

func GetUserID(ctx context.Context) (int64, bool) {
	if claims := GetClaims(ctx); claims != nil {
		return claims.UserID, true
	}
	return 0, false
}

func GetUserRole(ctx context.Context) (user.Role, bool) {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Role, true
	}
	return 0, false
}
