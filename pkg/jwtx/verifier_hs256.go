package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a session token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Verifier verifies compact HS256 JWTs against the shared secret.
//
// Verification errors stay distinct so callers can tell "expired, please
// re-authenticate" apart from "tampered, reject outright": ErrMalformed,
// ErrInvalidSig, ErrExpired, ErrInvalidClaim.
type HS256Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration

	now func() time.Time // test seam
}

// NewVerifierHS256 creates a verifier for tokens minted by the matching
// HS256 signer. Empty issuer means issuer is not enforced.
func NewVerifierHS256(secret []byte, issuer string) *HS256Verifier {
	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256Verifier{
		secret: key,
		issuer: issuer,
		leeway: DefaultLeeway,
		now:    time.Now,
	}
}

// WithLeeway overrides the clock-skew tolerance. Mostly for boundary tests.
func (v *HS256Verifier) WithLeeway(d time.Duration) *HS256Verifier {
	v.leeway = d
	return v
}

// WithClock overrides the time source. Test seam.
func (v *HS256Verifier) WithClock(now func() time.Time) *HS256Verifier {
	v.now = now
	return v
}

func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		// Expiry is validated below with configurable leeway so the error
		// kind stays ours.
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	if err := claims.ValidateExpiryWithLeeway(v.now().UTC(), v.leeway); err != nil {
		return Claims{}, err
	}

	// Required claim presence. The subject is the only join key downstream.
	if claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}
