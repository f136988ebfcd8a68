// Package auth holds the server's credential primitives: slow salted hashing
// for passwords and second factors, and the signed session token.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session id the token stands for. The session table is
// the source of truth; the signature only keeps forged ids out.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	UserName  string `json:"usr"`
}

func GenerateToken(sessionID, userName string, secretKey []byte, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionID: sessionID,
		UserName:  userName,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and expiry of tokenString.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.SessionID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
