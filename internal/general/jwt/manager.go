package jwt

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"charide/internal/domain/user"
	"charide/internal/general/errs"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Manager handles JWT creation and validation. Tokens are issued at login
// and validated on every request.
type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

// NewManager creates a token manager.
func NewManager(secret string, accessTTL time.Duration) *Manager {
	s := strings.TrimSpace(secret)
	if s == "" {
		panic("jwt: empty secret key")
	}
	return &Manager{
		secret:    []byte(s),
		accessTTL: accessTTL,
	}
}

// IssueUserToken returns a signed access token for a user.
func (m *Manager) IssueUserToken(userID string, role user.Role) (string, *Claims, error) {
	if !role.Valid() {
		return "", nil, errs.Validationf("unknown role %q", role)
	}

	claims := NewUserClaims(userID, role, m.accessTTL)
	tkn := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := tkn.SignedString(m.secret)

	return signed, claims, err
}

// FromAuthorization reads "Authorization: Bearer <token>". WebSocket clients
// may pass the token via the `token` query parameter instead, since browsers
// cannot set headers on WS upgrades.
func FromAuthorization(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	if tok := strings.TrimSpace(r.URL.Query().Get("token")); tok != "" {
		return strings.TrimPrefix(tok, "Bearer "), nil
	}

	return "", errs.ErrAuthentication
}

// ParseAndValidate verifies signature and standard claims.
func (m *Manager) ParseAndValidate(tokenString string) (*Claims, error) {
	parser := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		if t.Method != jwtlib.SigningMethodHS256 {
			return nil, errs.ErrAuthentication
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.ErrAuthentication
	}

	return claims, nil
}

// RoleAllowed asserts the claims' role is one of the allowed.
func RoleAllowed(cl *Claims, allowed ...user.Role) error {
	if slices.Contains(allowed, cl.Role) {
		return nil
	}
	return errs.ErrAuthorization
}

// Context wiring (used by middleware)
type ctxKey string

const claimsCtxKey ctxKey = "jwtClaims"

// InjectClaims adds JWT claims to the context.
func InjectClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, c)
}

// FromContext extracts JWT claims from the context.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsCtxKey).(*Claims)
	return c, ok
}
