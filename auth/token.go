package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "hive-signal"

// Claims is the payload of an account session token.
type Claims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies account session tokens with a server secret.
type TokenIssuer struct {
	secret   []byte
	duration time.Duration
}

func NewTokenIssuer(secret string, duration time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty")
	}
	return &TokenIssuer{secret: []byte(secret), duration: duration}, nil
}

func (i *TokenIssuer) Duration() time.Duration {
	return i.duration
}

// GenerateToken creates an HS256 token for the account, valid for the issuer's duration.
func (i *TokenIssuer) GenerateToken(accountID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// ValidateToken checks signature, algorithm, issuer and expiry.
func (i *TokenIssuer) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.AccountID != "" {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
