package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateAccessToken(t *testing.T) {
	userID, companyID := uuid.New(), uuid.New()
	token := sign(t, "s3cret", JWTClaims{
		UserID:      userID,
		CompanyID:   companyID,
		Permissions: []string{"manage-bills"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mandi-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := NewTokenVerifier("s3cret", "mandi-auth").ValidateAccessToken(token)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, companyID, claims.CompanyID)
	assert.Equal(t, []string{"manage-bills"}, claims.Permissions)
}

func TestValidateAccessTokenRejects(t *testing.T) {
	valid := JWTClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mandi-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noUser := valid
	noUser.UserID = uuid.Nil

	cases := map[string]string{
		"wrong secret":  sign(t, "other", valid),
		"expired":       sign(t, "s3cret", expired),
		"missing user":  sign(t, "s3cret", noUser),
		"not a token":   "abc.def.ghi",
		"wrong issuer":  sign(t, "s3cret", JWTClaims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{Issuer: "elsewhere"}}),
	}

	verifier := NewTokenVerifier("s3cret", "mandi-auth")
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.ValidateAccessToken(token)
			assert.Error(t, err)
		})
	}
}
