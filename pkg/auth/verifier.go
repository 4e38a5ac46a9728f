package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrAuthInvalid = errors.New("device token is invalid")

// Verifier checks the HMAC-signed token a wearable attaches to every event
// and extracts the monitored person it acts for.
type Verifier struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

type deviceClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
}

// NewVerifier accepts HS256, HS384 or HS512.
func NewVerifier(secret string, algorithm string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: empty secret")
	}
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("auth: unsupported algorithm %q", algorithm)
	}
	return &Verifier{secret: []byte(secret), method: method}, nil
}

// Verify returns the person id carried in the userId claim, or in sub when
// userId is absent.
func (v *Verifier) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", fmt.Errorf("%w: token is empty", ErrAuthInvalid)
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&deviceClaims{},
		func(token *jwt.Token) (any, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{v.method.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthInvalid, err)
	}

	claims, ok := token.Claims.(*deviceClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: invalid token claims", ErrAuthInvalid)
	}

	personID := strings.TrimSpace(claims.UserID)
	if personID == "" {
		personID = strings.TrimSpace(claims.Subject)
	}
	if personID == "" {
		return "", fmt.Errorf("%w: missing userId claim", ErrAuthInvalid)
	}
	return personID, nil
}

// Sign issues a device token for personID. A zero ttl means no expiry, a
// negative ttl yields a token that is already expired.
func (v *Verifier) Sign(personID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := deviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: personID,
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(v.method, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}
