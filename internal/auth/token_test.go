package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hongminglow/employee-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "test", time.Hour)
	tok, err := tm.Generate(models.Account{ID: "user-123", Username: "ada"})
	require.NoError(t, err)

	id, ok := tm.Parse(tok)
	require.True(t, ok)
	assert.Equal(t, Identity{UserID: "user-123", Username: "ada"}, id)
}

func TestGenerate_RequiresAccountID(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", "test", time.Hour).Generate(models.Account{Username: "ada"})
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", "test", time.Hour)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := tm.Generate(models.Account{ID: "u1"})
	require.NoError(t, err)

	tm.now = time.Now
	_, ok := tm.Parse(tok)
	assert.False(t, ok)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right-secret", "test", time.Hour).Generate(models.Account{ID: "u2"})
	require.NoError(t, err)

	_, ok := NewTokenManager("wrong-secret", "test", time.Hour).Parse(tok)
	assert.False(t, ok)
}

func TestParse_MalformedAndEmpty(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("k", "test", time.Hour)
	for _, raw := range []string{"", "not.a.jwt", "garbage"} {
		_, ok := tm.Parse(raw)
		assert.False(t, ok, raw)
	}
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := Claims{
		UserID: "u3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, ok := NewTokenManager("k", "test", time.Hour).Parse(tok)
	assert.False(t, ok)
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("k", "test", 0)
	assert.Equal(t, DefaultTTL, tm.ttl)
}
