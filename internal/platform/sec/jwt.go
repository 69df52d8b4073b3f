// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec holds credential handling for the API: RS256 access tokens, the
opaque refresh tokens stored by digest, bcrypt passwords, and the role ladder.
*/
package sec

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Access Tokens

// AuthClaims is the access token payload. It carries enough to authorize a
// request without a store lookup.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// ErrInvalidToken wraps every verification failure.
var ErrInvalidToken = errors.New("invalid_token")

// TokenService signs and verifies access tokens with one RSA key pair.
type TokenService struct {
	signing *rsa.PrivateKey
	issuer  string
}

/*
NewTokenService loads a PEM key pair from disk.

The public key must belong to the private key; a mismatched pair would sign
tokens this service then refuses.
*/
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	private, err := readPEM(privateKeyPath, jwt.ParseRSAPrivateKeyFromPEM)
	if err != nil {
		return nil, err
	}
	public, err := readPEM(publicKeyPath, jwt.ParseRSAPublicKeyFromPEM)
	if err != nil {
		return nil, err
	}
	if !private.PublicKey.Equal(public) {
		return nil, fmt.Errorf("jwt_key_mismatch: %s does not match %s", publicKeyPath, privateKeyPath)
	}

	return &TokenService{signing: private, issuer: issuer}, nil
}

// NewEphemeralTokenService generates a 2048-bit key pair in memory. Tokens
// die with the process.
func NewEphemeralTokenService(issuer string) (*TokenService, error) {
	private, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("jwt_keygen_failed: %w", err)
	}
	return &TokenService{signing: private, issuer: issuer}, nil
}

func readPEM[K any](path string, parse func([]byte) (K, error)) (K, error) {
	var zero K

	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("jwt_key_read_failed: %w", err)
	}
	key, err := parse(raw)
	if err != nil {
		return zero, fmt.Errorf("jwt_key_parse_failed: %s: %w", path, err)
	}
	return key, nil
}

// GenerateAccessToken signs a token for the account valid for ttl. Each
// token gets a random jti, so two minted in the same second differ.
func (service *TokenService) GenerateAccessToken(userID, username, role string, ttl time.Duration) (string, error) {
	issued := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        rand.Text(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	})

	signed, err := token.SignedString(service.signing)
	if err != nil {
		return "", fmt.Errorf("jwt_sign_failed: %w", err)
	}
	return signed, nil
}

// VerifyToken accepts only RS256 tokens from this issuer that have not
// expired.
func (service *TokenService) VerifyToken(raw string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return &service.signing.PublicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
