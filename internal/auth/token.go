package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, expired, or mis-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload carried by access and refresh tokens. Ver is the
// user's token version; bumping it on logout invalidates everything issued
// before.
type Claims struct {
	Phone string `json:"phone,omitempty"`
	Ver   int    `json:"ver"`
	jwt.RegisteredClaims
}

func sign(claims Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parse(token string, secret []byte) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func newClaims(userID, phone string, version int, now time.Time, ttl time.Duration) Claims {
	return Claims{
		Phone: phone,
		Ver:   version,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
