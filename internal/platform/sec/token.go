// Copyright (c) 2026 Athlos. All rights reserved.
// Author: engineering@athlos.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, the
// permission codec) from the domain logic. It acts as an Infrastructure
// service injected into the Application layer via small interfaces.
package sec

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Snapshot Semantics
//
// The permission set is a snapshot taken at issuance time. It is immutable
// for the life of the token; permission changes take effect only on reissue.
// The authorization guard deliberately re-fetches live account state instead
// of trusting this snapshot, so the snapshot serves diagnostics and clients
// rendering their own capabilities.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	AdminID     int64           `json:"uid"`
	Role        string          `json:"rol"`
	Permissions PermissionClaim `json:"prm,omitempty"`
}

// PermissionClaim is the permission snapshot as carried inside a token.
//
// It decodes leniently: entries that are not valid {resource, actions} records
// are dropped rather than failing verification of the whole token, and a claim
// that is not an array at all yields an empty snapshot.
type PermissionClaim []Permission

func (claim *PermissionClaim) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		*claim = nil
		return nil
	}

	result := make([]Permission, 0, len(entries))
	for _, entry := range entries {
		var permission Permission
		if err := json.Unmarshal(entry, &permission); err != nil {
			continue
		}
		result = append(result, permission)
	}

	*claim = result
	return nil
}

// Email returns the subject email the token was issued for.
func (c *AuthClaims) Email() string {
	return c.Subject
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing key is a server-held shared secret; there is no server-side
// revocation list — a token remains valid until its embedded expiry passes.
type TokenService struct {
	secret     []byte
	issuer     string
	defaultTTL time.Duration
}

// NewTokenService creates a new TokenService around the shared HMAC secret.
func NewTokenService(secret, issuer string, defaultTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		defaultTTL: defaultTTL,
	}, nil
}

// GenerateAccessToken creates a new signed JWT access token for an admin.
//
// The token embeds the subject email, account id, role, and a snapshot of the
// permission set. The expiry is now + timeToLive; a non-positive timeToLive
// falls back to the service default (30 minutes).
func (service *TokenService) GenerateAccessToken(email string, adminID int64, role string, permissions []Permission, timeToLive time.Duration) (string, error) {
	if timeToLive <= 0 {
		timeToLive = service.defaultTTL
	}

	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		AdminID:     adminID,
		Role:        role,
		Permissions: permissions,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// It fails when the signature does not validate, the token is malformed, the
// expiry has passed, or the required identity claims (subject email, account
// id) are absent. Malformed permission entries inside an otherwise valid
// token are dropped silently, not treated as an error.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	if claims.Subject == "" || claims.AdminID == 0 {
		return nil, errors.New("sec: token is missing identity claims")
	}

	claims.Permissions = dedupePermissions(claims.Permissions)

	return claims, nil
}
