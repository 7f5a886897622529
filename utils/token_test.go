package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "token-test-secret-that-is-32-bytes!"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	_, err := NewTokenIssuer("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret)
	require.NoError(t, err)

	token, expiresAt, err := issuer.Issue("65f0c0ffee0000000000abcd", "owner")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiresAt, 5*time.Second)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "65f0c0ffee0000000000abcd", claims.Subject)
	assert.Equal(t, "owner", claims.Username)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenIssuer_ExpiresAfterTTL(t *testing.T) {
	base, err := NewTokenIssuer(testSecret)
	require.NoError(t, err)
	issuedAt := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	token, _, err := base.WithClock(fixedClock(issuedAt)).Issue("admin-id", "owner")
	require.NoError(t, err)

	_, err = base.WithClock(fixedClock(issuedAt.Add(TokenTTL - time.Second))).Verify(token)
	assert.NoError(t, err)

	_, err = base.WithClock(fixedClock(issuedAt.Add(TokenTTL + time.Second))).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenIssuer_RejectsForeignTokens(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret)
	require.NoError(t, err)

	other, err := NewTokenIssuer("some-other-secret-also-32-bytes-long")
	require.NoError(t, err)
	foreign, _, err := other.Issue("admin-id", "owner")
	require.NoError(t, err)

	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "admin-id", ExpiresAt: exp}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "admin-id", ExpiresAt: exp}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: exp}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin-id"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"malformed", "header.payload.signature"},
		{"wrong secret", foreign},
		{"other algorithm", hs512},
		{"alg none", unsigned},
		{"missing subject", noSub},
		{"missing expiry", noExp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
