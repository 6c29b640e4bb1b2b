// Package auth mints and validates the HS256 session tokens handed out at
// registration and login. Tokens are self-contained: there is no server-side
// session table and no revocation.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/speechauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the account email and name.
// On the wire: {"email", "name", "sub", "iat", "exp"}.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

func GenerateToken(email, name string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return GenerateTokenAt(email, name, secretKey, time.Now(), validityDuration)
}

// GenerateTokenAt is GenerateToken with an explicit issuance time.
func GenerateTokenAt(email, name string, secretKey []byte, issuedAt time.Time, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
		Email: email,
		Name:  name,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry. It returns common.ErrTokenExpired
// for a correctly signed token past its exp and common.ErrInvalidToken for
// everything else.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Email == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// GetEmailFromToken is a shortcut for callers that only need the identity.
func GetEmailFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}
