package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/teletela/storefront/internal/model"
	"github.com/teletela/storefront/internal/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	kv, err := storage.New(t.TempDir())
	require.NoError(t, err)
	return New(kv, zap.NewNop())
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestStore_NoToken(t *testing.T) {
	s := newStore(t)

	assert.Empty(t, s.Token())
	assert.True(t, s.IsExpired())
	assert.False(t, s.HasRole(model.RoleAdmin))
	assert.Nil(t, s.Claims())
}

func TestStore_MalformedToken(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetToken("not.a.jwt"))

	assert.True(t, s.IsExpired())
	assert.False(t, s.HasRole(model.RoleAdmin))
	assert.Nil(t, s.Claims())
}

func TestStore_ValidToken(t *testing.T) {
	s := newStore(t)
	tok := signedToken(t, jwt.MapClaims{
		"sub":   "5",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"roles": []string{"adm", "cliente"},
	})
	require.NoError(t, s.SetToken(tok))

	assert.False(t, s.IsExpired())
	assert.True(t, s.HasRole(model.RoleAdmin))
	assert.True(t, s.HasRole(model.RoleCustomer))
	assert.False(t, s.HasRole(model.Role("other")))

	claims := s.Claims()
	require.NotNil(t, claims)
	assert.Equal(t, "5", claims.Subject)
}

func TestStore_ExpiredToken(t *testing.T) {
	s := newStore(t)
	tok := signedToken(t, jwt.MapClaims{
		"sub":   "5",
		"exp":   time.Now().Add(-time.Minute).Unix(),
		"roles": []string{"adm"},
	})
	require.NoError(t, s.SetToken(tok))

	assert.True(t, s.IsExpired())
	// role extraction still works, authorization is the guards' concern
	assert.True(t, s.HasRole(model.RoleAdmin))
}

func TestStore_TokenWithoutExpiry(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetToken(signedToken(t, jwt.MapClaims{"sub": "5"})))

	assert.True(t, s.IsExpired())
}

func TestStore_RoleClaimShapes(t *testing.T) {
	s := newStore(t)

	// single string under an alternate claim name
	require.NoError(t, s.SetToken(signedToken(t, jwt.MapClaims{
		"exp":  time.Now().Add(time.Hour).Unix(),
		"role": "adm",
	})))
	assert.True(t, s.HasRole(model.RoleAdmin))

	// odd shape fails closed
	require.NoError(t, s.SetToken(signedToken(t, jwt.MapClaims{
		"exp":   time.Now().Add(time.Hour).Unix(),
		"roles": []any{42},
	})))
	assert.False(t, s.HasRole(model.RoleAdmin))
}

func TestStore_ProfileRoundTripAndClear(t *testing.T) {
	s := newStore(t)
	require.Nil(t, s.Profile())

	p := &model.Profile{ID: 7, Username: "carla", Role: model.RoleCustomer, CPF: "12345678901"}
	require.NoError(t, s.SetProfile(p))
	require.NoError(t, s.SetToken("tok"))

	got := s.Profile()
	require.NotNil(t, got)
	assert.Equal(t, *p, *got)

	s.Clear()
	assert.Nil(t, s.Profile())
	assert.Empty(t, s.Token())
}
