package jwtx

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// RS256Signer signs tokens with an RSA private key. The SDK only verifies
// tokens; the signer exists for the fake service and for tests.
type RS256Signer struct {
	kid string
	key *rsa.PrivateKey
}

// NewSignerRS256 creates an RS256 signer from PEM bytes.
func NewSignerRS256(kid string, pemKey []byte) (*RS256Signer, error) {
	key, err := ParseRSAPrivateKey(pemKey)
	if err != nil {
		return nil, err
	}
	return &RS256Signer{kid: kid, key: key}, nil
}

func (s *RS256Signer) Alg() string { return jwt.SigningMethodRS256.Alg() }
func (s *RS256Signer) KID() string { return s.kid }

// PublicKey returns the verification half of the key pair.
func (s *RS256Signer) PublicKey() *rsa.PublicKey { return &s.key.PublicKey }

// Sign takes your claims and turns them into a signed JWT string.
func (s *RS256Signer) Sign(claims jwt.Claims) (string, error) {
	if s == nil || s.key == nil {
		return "", errors.New("jwtx: nil RSA key")
	}
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if s.kid != "" {
		t.Header["kid"] = s.kid
	}
	return t.SignedString(s.key)
}
