package oidc

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://idp.example.com"
	testClientID = "glovebox-mobile"
)

func signIDToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func newTestVerifier(t *testing.T) (*Verifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keys := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}
	return NewStaticVerifier(testIssuer, testClientID, keys), key
}

func TestVerifier_AcceptsProviderToken(t *testing.T) {
	v, key := newTestVerifier(t)
	raw := signIDToken(t, key, jwt.MapClaims{
		"iss":   testIssuer,
		"aud":   testClientID,
		"sub":   "fed-user-1",
		"email": "fed@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})

	tok, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	assert.Equal(t, "fed-user-1", claims["sub"])
	assert.Equal(t, testIssuer, claims["iss"])
}

func TestVerifier_RejectsWrongAudience(t *testing.T) {
	v, key := newTestVerifier(t)
	raw := signIDToken(t, key, jwt.MapClaims{
		"iss": testIssuer,
		"aud": "someone-else",
		"sub": "fed-user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := v.Verify(context.Background(), raw)
	assert.Error(t, err)
}

func TestVerifier_RejectsForeignKey(t *testing.T) {
	v, _ := newTestVerifier(t)
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	raw := signIDToken(t, other, jwt.MapClaims{
		"iss": testIssuer,
		"aud": testClientID,
		"sub": "fed-user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err = v.Verify(context.Background(), raw)
	assert.Error(t, err)
}
