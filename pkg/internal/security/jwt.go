package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type TokenClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func secretKey() ([]byte, error) {
	secret := viper.GetString("security.jwt_secret")
	if len(secret) == 0 {
		return nil, errors.New("security.jwt_secret is not configured")
	}
	return []byte(secret), nil
}

// IssueToken signs an access token for the given user id, valid for
// security.token_ttl (defaults to a week).
func IssueToken(userID uint) (string, error) {
	secret, err := secretKey()
	if err != nil {
		return "", err
	}

	ttl := viper.GetDuration("security.token_ttl")
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseToken(tokenString string) (*TokenClaims, error) {
	secret, err := secretKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
