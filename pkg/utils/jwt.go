package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTClaims are the claims the identity service puts in access tokens
type JWTClaims struct {
	UserID      uuid.UUID `json:"user_id"`
	CompanyID   uuid.UUID `json:"company_id"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenVerifier validates HMAC-signed access tokens. Tokens are issued by
// the external identity service; this side only verifies them.
type TokenVerifier struct {
	secretKey []byte
	issuer    string
}

// NewTokenVerifier creates a verifier for tokens signed with secret. An
// empty issuer accepts any issuer.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secretKey: []byte(secret), issuer: issuer}
}

// ValidateAccessToken validates an access token and returns the claims
func (v *TokenVerifier) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.New("token has no user")
	}

	return claims, nil
}
