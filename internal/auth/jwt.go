// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/amontalvo1020/rentalspro/internal/config"
	"github.com/amontalvo1020/rentalspro/internal/core"
	"github.com/amontalvo1020/rentalspro/internal/middleware"
	"github.com/amontalvo1020/rentalspro/internal/user"
)

const (
	claimRole      = "role"
	claimCompanyID = "company_id"
	claimType      = "type"
	accessType     = "access"
)

// JWTManager issues and verifies ES256 access tokens for the mobile app.
type JWTManager struct {
	keys   *signingKeys
	config config.JWTConfig
	now    func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	privatePEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	return NewJWTManagerFromPEM(privatePEM, cfg)
}

func NewJWTManagerFromPEM(privatePEM []byte, cfg config.JWTConfig) (*JWTManager, error) {
	keys, err := loadSigningKeys(privatePEM)
	if err != nil {
		return nil, err
	}
	return &JWTManager{keys: keys, config: cfg, now: time.Now}, nil
}

// IssuedToken is a signed access token with its identifying claims.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// CreateAccessToken signs a token whose subject is the user id and whose
// role and company claims drive authorization.
func (m *JWTManager) CreateAccessToken(u *user.User) (*IssuedToken, error) {
	now := m.now()
	issued := &IssuedToken{
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(m.config.AccessTokenExpire),
	}

	b := jwt.NewBuilder().
		JwtID(issued.TokenID).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(strconv.FormatInt(u.ID, 10)).
		IssuedAt(now).
		NotBefore(now).
		Expiration(issued.ExpiresAt).
		Claim(claimType, accessType).
		Claim(claimRole, int(u.Role))
	if u.CompanyID != nil {
		b = b.Claim(claimCompanyID, *u.CompanyID)
	}

	token, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.keys.private))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	issued.Token = string(signed)
	return issued, nil
}

// VerifyAccessToken checks signature, issuer, audience and lifetime. An
// expired token fails with ErrTokenExpired, anything else wrong with
// ErrTokenInvalid.
func (m *JWTManager) VerifyAccessToken(
	_ context.Context,
	raw string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.ES256(), m.keys.public),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		if expired(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	claims, reason := accessClaims(token)
	if reason != "" {
		return nil, fmt.Errorf("verify token: %s: %w", reason, core.ErrTokenInvalid)
	}
	return claims, nil
}

// accessClaims returns a non-empty reason when a structurally valid token
// is not one of ours.
func accessClaims(token jwt.Token) (*middleware.AccessTokenClaims, string) {
	var typ string
	if err := token.Get(claimType, &typ); err != nil || typ != accessType {
		return nil, "not an access token"
	}

	sub, _ := token.Subject()
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID < 1 {
		return nil, "malformed subject"
	}

	var roleNum float64
	if err := token.Get(claimRole, &roleNum); err != nil {
		return nil, "missing role"
	}
	role := user.Role(int(roleNum))
	if !role.Valid() {
		return nil, "unknown role"
	}

	claims := &middleware.AccessTokenClaims{UserID: userID, Role: role}
	claims.TokenID, _ = token.JwtID()
	claims.ExpiresAt, _ = token.Expiration()

	var companyNum float64
	if err := token.Get(claimCompanyID, &companyNum); err == nil {
		companyID := int64(companyNum)
		claims.CompanyID = &companyID
	}

	return claims, ""
}

func expired(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "exp") && strings.Contains(msg, "not satisfied")
}

// GetJWKSHandler publishes the verification key for clients that check
// tokens themselves.
func (m *JWTManager) GetJWKSHandler() http.HandlerFunc {
	body, err := json.Marshal(m.keys.set)
	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(body) //nolint:errcheck // best-effort response
	}
}

func (m *JWTManager) GetKeyID() string {
	return m.keys.kid
}
