// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athloshq/athlos/internal/platform/sec"
)

const testSecret = "test-secret-key-for-hs256"

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "athlos.app", 30*time.Minute)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_EmptySecret verifies construction fails without a secret.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "athlos.app", time.Minute)
	assert.Error(t, err)
}

/*
TestTokenService_RoundTrip verifies a generated token verifies back to the
same identity and permission snapshot.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	permissions := []sec.Permission{
		{Resource: "users", Actions: []string{"read", "write"}},
		{Resource: "analytics", Actions: []string{"read"}},
	}

	tokenString, err := service.GenerateAccessToken("admin@athlos.app", 42, "admin", permissions, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := service.VerifyToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "admin@athlos.app", claims.Email())
	assert.Equal(t, int64(42), claims.AdminID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, sec.PermissionClaim(permissions), claims.Permissions)
	assert.Equal(t, "athlos.app", claims.Issuer)
}

/*
TestTokenService_Expired verifies an expired token is rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	tokenString, err := service.GenerateAccessToken("admin@athlos.app", 42, "admin", nil, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(tokenString)
	assert.Error(t, err)
}

/*
TestTokenService_Tampered verifies a token signed with a different secret is
rejected.
*/
func TestTokenService_Tampered(t *testing.T) {
	service := newTestTokenService(t)

	other, err := sec.NewTokenService("a-completely-different-secret", "athlos.app", time.Minute)
	require.NoError(t, err)

	tokenString, err := other.GenerateAccessToken("admin@athlos.app", 42, "admin", nil, time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(tokenString)
	assert.Error(t, err)
}

/*
TestTokenService_WrongAlgorithm verifies tokens signed with a non-HMAC
algorithm header are rejected even before signature checks.
*/
func TestTokenService_WrongAlgorithm(t *testing.T) {
	service := newTestTokenService(t)

	// alg=none with an empty signature.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@athlos.app",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		AdminID: 42,
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.VerifyToken(tokenString)
	assert.Error(t, err)
}

/*
TestTokenService_MissingIdentity verifies tokens without a subject or account
id are rejected even when validly signed.
*/
func TestTokenService_MissingIdentity(t *testing.T) {
	service := newTestTokenService(t)

	testCases := []struct {
		name    string
		subject string
		adminID int64
	}{
		{"missing subject", "", 42},
		{"missing admin id", "admin@athlos.app", 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, sec.AuthClaims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   testCase.subject,
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
				},
				AdminID: testCase.adminID,
			})
			tokenString, err := token.SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = service.VerifyToken(tokenString)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_Malformed verifies garbage strings never verify.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTestTokenService(t)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.VerifyToken(tokenString)
		assert.Error(t, err)
	}
}

/*
TestTokenService_DuplicatePermissionsCollapse verifies duplicate resource
entries inside a valid token collapse on verification.
*/
func TestTokenService_DuplicatePermissionsCollapse(t *testing.T) {
	service := newTestTokenService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@athlos.app",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		AdminID: 42,
		Role:    "admin",
		Permissions: []sec.Permission{
			{Resource: "users", Actions: []string{"read"}},
			{Resource: "users", Actions: []string{"read", "write"}},
		},
	})
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	claims, err := service.VerifyToken(tokenString)
	require.NoError(t, err)

	assert.Len(t, claims.Permissions, 1)
	assert.Equal(t, []string{"read", "write"}, claims.Permissions[0].Actions)
}

/*
TestTokenService_MalformedPermissionEntriesDropped verifies that entries in
the permission snapshot that are not {resource, actions} records are dropped
without failing verification of an otherwise valid token.
*/
func TestTokenService_MalformedPermissionEntriesDropped(t *testing.T) {
	service := newTestTokenService(t)

	sign := func(t *testing.T, claims jwt.MapClaims) string {
		t.Helper()
		tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return tokenString
	}

	base := jwt.MapClaims{
		"sub": "admin@athlos.app",
		"uid": 42,
		"exp": time.Now().Add(time.Minute).Unix(),
	}

	// 1. A bad entry among good ones is dropped, the rest survive.
	base["prm"] = []any{
		map[string]any{"resource": "users", "actions": []string{"read"}},
		"not-an-object",
	}
	claims, err := service.VerifyToken(sign(t, base))
	require.NoError(t, err)
	require.Len(t, claims.Permissions, 1)
	assert.Equal(t, "users", claims.Permissions[0].Resource)

	// 2. A snapshot that is not an array at all yields an empty set.
	base["prm"] = "garbage"
	claims, err = service.VerifyToken(sign(t, base))
	require.NoError(t, err)
	assert.Empty(t, claims.Permissions)
}
