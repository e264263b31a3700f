package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum accepted HMAC secret size. Anything
// shorter than the HS256 output size weakens the MAC.
const MinSecretLength = 32

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs compact JWTs with a symmetric HMAC-SHA256 key.
// The key is shared between signer and verifier and loaded once at startup.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer from the shared secret.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, errors.New("jwtx: hs256 secret must be at least 32 bytes")
	}

	// Copy so a caller mutating its slice can't rotate the key out from
	// under in-flight requests.
	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256Signer{secret: key}, nil
}

func (s *HS256Signer) Alg() string { return "HS256" }

// Sign produces the compact serialized token: base64url(header) "." base64url(claims) "." base64url(mac).
func (s *HS256Signer) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}
