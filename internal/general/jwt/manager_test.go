package jwt

import (
	"net/http/httptest"
	"testing"
	"time"

	"charide/internal/domain/user"
	"charide/internal/general/errs"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestIssueAndParseRoundTrip(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)

	token, claims, err := mgr.IssueUserToken("user-42", user.RoleDriver)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, user.RoleDriver, claims.Role)

	parsed, err := mgr.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", parsed.Subject)
	assert.Equal(t, user.RoleDriver, parsed.Role)
}

func TestIssueUserTokenRejectsUnknownRole(t *testing.T) {
	mgr := NewManager(testSecret, time.Hour)
	_, _, err := mgr.IssueUserToken("user-42", user.Role("superuser"))
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestParseAndValidateWrongSecret(t *testing.T) {
	token, _, err := NewManager(testSecret, time.Hour).IssueUserToken("u", user.RolePassenger)
	require.NoError(t, err)

	_, err = NewManager("another-secret", time.Hour).ParseAndValidate(token)
	assert.ErrorIs(t, err, errs.ErrAuthentication)
}

func TestParseAndValidateExpired(t *testing.T) {
	mgr := NewManager(testSecret, -time.Minute)
	token, _, err := mgr.IssueUserToken("u", user.RolePassenger)
	require.NoError(t, err)

	_, err = mgr.ParseAndValidate(token)
	assert.ErrorIs(t, err, errs.ErrAuthentication)
}

func TestParseAndValidateRejectsUnsignedAlg(t *testing.T) {
	claims := NewUserClaims("u", user.RoleAdmin, time.Hour)
	tkn := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims)
	raw, err := tkn.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager(testSecret, time.Hour).ParseAndValidate(raw)
	assert.ErrorIs(t, err, errs.ErrAuthentication)
}

func TestParseAndValidateGarbage(t *testing.T) {
	_, err := NewManager(testSecret, time.Hour).ParseAndValidate("not.a.token")
	assert.ErrorIs(t, err, errs.ErrAuthentication)
}

func TestNewManagerPanicsOnEmptySecret(t *testing.T) {
	assert.Panics(t, func() { NewManager("  ", time.Hour) })
}

func TestFromAuthorization(t *testing.T) {
	r := httptest.NewRequest("GET", "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	tok, err := FromAuthorization(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	// websocket clients pass the token as a query parameter
	r = httptest.NewRequest("GET", "/ws/passenger?token=abc.def.ghi", nil)
	tok, err = FromAuthorization(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	r = httptest.NewRequest("GET", "/auth/me", nil)
	_, err = FromAuthorization(r)
	assert.ErrorIs(t, err, errs.ErrAuthentication)

	r = httptest.NewRequest("GET", "/auth/me", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	_, err = FromAuthorization(r)
	assert.ErrorIs(t, err, errs.ErrAuthentication)
}

func TestRoleAllowed(t *testing.T) {
	cl := NewUserClaims("u", user.RoleDriver, time.Hour)
	assert.NoError(t, RoleAllowed(cl, user.RoleDriver))
	assert.NoError(t, RoleAllowed(cl, user.RoleAdmin, user.RoleDriver))
	assert.ErrorIs(t, RoleAllowed(cl, user.RolePassenger), errs.ErrAuthorization)
}
