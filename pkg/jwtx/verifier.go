package jwtx

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows small clock skew when validating exp/nbf.
	// Because time sync is never perfect.
	Leeway time.Duration
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrNoKey      = errors.New("jwtx: no verification key")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// RS256Verifier validates JWTs signed using RS256 against a single public
// key, typically taken from an application's certificate.
type RS256Verifier struct {
	key  *rsa.PublicKey
	opts VerifyOptions
}

// NewVerifierRS256 creates a verifier for the given public key.
func NewVerifierRS256(key *rsa.PublicKey, opts VerifyOptions) *RS256Verifier {
	return &RS256Verifier{key: key, opts: opts}
}

// NewVerifierFromPEM builds a verifier from a PEM certificate or public key.
func NewVerifierFromPEM(pemBytes []byte, opts VerifyOptions) (*RS256Verifier, error) {
	key, err := ParseRSAPublicKey(pemBytes)
	if err != nil {
		return nil, err
	}
	return NewVerifierRS256(key, opts), nil
}

// Verify validates the JWT string and returns its registered claims.
func (v *RS256Verifier) Verify(tokenStr string) (*Claims, error) {
	var c Claims
	if err := v.VerifyInto(tokenStr, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// VerifyInto validates the JWT string and decodes its payload into claims.
func (v *RS256Verifier) VerifyInto(tokenStr string, claims ClaimSet) error {
	if v == nil || v.key == nil {
		return ErrNoKey
	}

	// exp/nbf are checked below with our own leeway and sentinel errors.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return fmt.Errorf("%w: %v", ErrInvalidSig, err)
		default:
			return fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}
	if !token.Valid {
		return ErrInvalidClaim
	}

	std := claims.Standard()
	if err := std.ValidateIssuer(v.opts.Issuer); err != nil {
		return err
	}
	if err := std.ValidateAudience(v.opts.Audience); err != nil {
		return err
	}
	return std.ValidateExpiryWithLeeway(v.opts.Leeway)
}
