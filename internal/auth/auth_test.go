package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/models/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	secret = []byte("test-secret")
	caller = governance.MustParseAddress("0x00000000000000000000000000000000000000aa")
)

func TestIssueAndParseToken(t *testing.T) {
	raw, err := IssueToken(secret, caller, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, caller, claims.Address())
	assert.Equal(t, constants.RequestSourceJWT, claims.Source())
	assert.NotEmpty(t, claims.TokenID)
}

func TestParseToken_Rejects(t *testing.T) {
	expired, err := IssueToken(secret, caller, -time.Minute)
	require.NoError(t, err)

	otherKey, err := IssueToken([]byte("other"), caller, time.Minute)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "not-an-address",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(secret)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  tokenIssuer,
		Subject: caller.String(),
	}).SignedString(secret)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":     expired,
		"wrong key":   otherKey,
		"bad subject": badSubject,
		"no expiry":   noExpiry,
		"garbage":     "abc.def.ghi",
		"empty":       "",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(secret, raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseToken_EmptySecretDisablesTokens(t *testing.T) {
	_, err := ParseToken(nil, "whatever")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = IssueToken(nil, caller, time.Minute)
	assert.Error(t, err)
}

type stubLookup struct {
	rec *entities.ApiKey
	err error
}

func (s stubLookup) GetStatus(context.Context, string) (*entities.ApiKey, error) {
	return s.rec, s.err
}

func TestMakeClaimsFromApiKey(t *testing.T) {
	ctx := context.Background()

	claims, err := MakeClaimsFromApiKey(ctx, stubLookup{rec: &entities.ApiKey{
		ApiKey:        "k",
		CallerAddress: strings.ToUpper(caller.String()[2:]),
		Status:        true,
	}}, "k")
	require.Error(t, err, "address without 0x prefix is rejected")
	assert.Nil(t, claims)

	claims, err = MakeClaimsFromApiKey(ctx, stubLookup{rec: &entities.ApiKey{
		ApiKey: "k", CallerAddress: caller.String(), Status: true,
	}}, "k")
	require.NoError(t, err)
	assert.Equal(t, caller, claims.Address())
	assert.Equal(t, constants.RequestSourceAPIKey, claims.Source())

	_, err = MakeClaimsFromApiKey(ctx, stubLookup{rec: &entities.ApiKey{
		ApiKey: "k", CallerAddress: caller.String(), Status: false,
	}}, "k")
	assert.ErrorIs(t, err, ErrInactiveApiKey)

	lookupErr := errors.New("not found")
	_, err = MakeClaimsFromApiKey(ctx, stubLookup{err: lookupErr}, "k")
	assert.ErrorIs(t, err, lookupErr)
}

func TestCallerClaimsContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetCallerClaims(ctx))

	ctx = SetCallerClaims(ctx, &APIKeyClaims{CallerAddress: caller})
	got := GetCallerClaims(ctx)
	require.NotNil(t, got)
	assert.Equal(t, caller, got.Address())
}
