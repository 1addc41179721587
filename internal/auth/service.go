// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/middleware"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", core.ErrUnauthorized)

type UserProvider interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

type TokenManager interface {
	CreateAccessToken(u *user.User) (*IssuedToken, error)
	VerifyAccessToken(ctx context.Context, token string) (*middleware.AccessTokenClaims, error)
}

type Service struct {
	users      UserProvider
	tokens     TokenManager
	redis      *core.Redis
	iterations int
	now        func() time.Time
}

// NewService wires credential checks and token issue. A nil redis disables
// access token revocation.
func NewService(
	users UserProvider,
	tokens TokenManager,
	redis *core.Redis,
	iterations int,
) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		redis:      redis,
		iterations: iterations,
		now:        time.Now,
	}
}

// Validate checks username and password and issues an access token. Unknown
// users, users without credentials and wrong passwords all fail with
// ErrInvalidCredentials after comparable work.
func (s *Service) Validate(ctx context.Context, req ValidateRequest) (*ValidateResponse, error) {
	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyDummy(req.Password, s.iterations)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("validate: %w", err)
	}

	if !u.HasCredentials() {
		core.VerifyDummy(req.Password, s.iterations)
		return nil, ErrInvalidCredentials
	}

	ok, err := core.Verify(u.PasswordHash, u.PasswordSalt, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("validate: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	issued, err := s.tokens.CreateAccessToken(u)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return &ValidateResponse{
		User: user.ToUserResponse(u),
		Token: TokenResponse{
			AccessToken: issued.Token,
			TokenType:   "Bearer",
			ExpiresIn:   int(issued.ExpiresAt.Sub(s.now()).Seconds()),
			ExpiresAt:   issued.ExpiresAt,
		},
	}, nil
}

// VerifyAccessToken verifies the signature and claims, then rejects tokens
// revoked by Logout. A revocation store outage does not block requests.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.redis == nil || claims.TokenID == "" {
		return claims, nil
	}

	n, err := s.redis.Client.Exists(ctx, s.revokedKey(claims.TokenID)).Result()
	if err != nil {
		slog.WarnContext(ctx, "token revocation check failed", "error", err)
		return claims, nil
	}
	if n > 0 {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

// Logout revokes the presented access token until it would have expired.
func (s *Service) Logout(ctx context.Context, claims *middleware.AccessTokenClaims) error {
	if s.redis == nil || claims == nil || claims.TokenID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Client.Set(ctx, s.revokedKey(claims.TokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w: %w", core.ErrStorage, err)
	}

	return nil
}

func (s *Service) CurrentUser(ctx context.Context, id int64) (*user.User, error) {
	return s.users.GetUser(ctx, id)
}

func (s *Service) revokedKey(jti string) string {
	return s.redis.Key("revoked", jti)
}
