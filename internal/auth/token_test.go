package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/campuscare/complaint-service/internal/domain"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	tokenString, expiresAt, err := tm.GenerateToken(42, domain.RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	if assert.NotNil(t, expiresAt) {
		assert.WithinDuration(t, time.Now().Add(time.Hour), *expiresAt, 5*time.Second)
	}

	claims, err := tm.ParseToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestTokenManager_NoExpiry(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	tokenString, expiresAt, err := tm.GenerateToken(7, domain.RoleAdmin)
	assert.NoError(t, err)
	assert.Nil(t, expiresAt)

	claims, err := tm.ParseToken(tokenString)
	assert.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenManager_InvalidToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	_, err := tm.ParseToken("invalid.token.string")
	assert.Error(t, err)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm1 := NewTokenManager("secret1", 60)
	tm2 := NewTokenManager("secret2", 60)

	tokenString, _, _ := tm1.GenerateToken(1, domain.RoleUser)

	_, err := tm2.ParseToken(tokenString)
	assert.Error(t, err)
}

func TestTokenManager_UnexpectedSigningMethod(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	claims := &Claims{
		UserID: 1,
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := tm.ParseToken(tokenString)
	assert.Error(t, err)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	claims := &Claims{
		UserID: 1,
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte("secret"))

	_, err := tm.ParseToken(tokenString)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
