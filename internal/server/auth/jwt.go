// Package auth signs and verifies the session cookie token. The token only
// names a server-side session; whether that session is still alive is decided
// by the session store.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken returns an HS256 token carrying sessionID as its jti and
// expiring at expires.
func GenerateToken(sessionID string, secretKey []byte, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSessionIDFromToken verifies tokenString and returns the session id it
// names. A correctly signed but expired token yields common.ErrTokenExpired
// together with its session id, so the caller can drop the session. Anything
// else that fails verification yields common.ErrInvalidToken.
func GetSessionIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}
	methods := jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})

	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc, methods, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && claims.ID != "" {
			// expiry is reported regardless of the signature, check it separately
			if _, verr := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, keyFunc, methods, jwt.WithoutClaimsValidation()); verr == nil {
				return claims.ID, common.ErrTokenExpired
			}
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.ID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.ID, nil
}
