// Copyright 2026 The ComplyCore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token issues and verifies the three token kinds the API uses:
// short-lived access tokens, long-lived refresh tokens, and invite tokens.
// Tokens are self-contained; validity is signature plus expiry, with no
// server-side revocation list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers signature mismatch, malformed tokens, and expiry.
// Callers distinguish causes only for logging; all map to HTTP 401.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload carried by access and refresh tokens.
// The JSON keys are a wire contract other systems rely on.
type Claims struct {
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// InviteClaims is the payload carried by invite and email verification
// tokens. Both identify a single user and a type discriminator.
type InviteClaims struct {
	UserID string `json:"userId"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// Type discriminators for single-purpose tokens.
const (
	TypeInvite      = "invite"
	TypeVerifyEmail = "verify_email"
)

// Manager signs and verifies tokens. Access and refresh tokens use distinct
// secrets so a leaked refresh secret cannot mint access tokens and vice
// versa. Invite tokens share the access secret.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	inviteTTL     time.Duration
	issuer        string
}

// NewManager creates a token manager. Both secrets must be non-empty; the
// config layer treats absence as a fatal startup condition before this is
// ever reached.
func NewManager(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL, inviteTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		inviteTTL:     inviteTTL,
		issuer:        issuer,
	}
}

// IssueAccessToken signs a short-lived access token for the given identity.
func (m *Manager) IssueAccessToken(userID, tenantID, email, role string) (string, error) {
	return m.issue(userID, tenantID, email, role, m.accessTTL, m.accessSecret)
}

// IssueRefreshToken signs a long-lived refresh token for the given identity.
func (m *Manager) IssueRefreshToken(userID, tenantID, email, role string) (string, error) {
	return m.issue(userID, tenantID, email, role, m.refreshTTL, m.refreshSecret)
}

func (m *Manager) issue(userID, tenantID, email, role string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// IssueInviteToken signs an invite token for a pending user.
func (m *Manager) IssueInviteToken(userID string) (string, error) {
	return m.issueTyped(userID, TypeInvite)
}

// IssueEmailVerificationToken signs a token a fresh account uses to confirm
// its address. Shares the invite TTL.
func (m *Manager) IssueEmailVerificationToken(userID string) (string, error) {
	return m.issueTyped(userID, TypeVerifyEmail)
}

func (m *Manager) issueTyped(userID, typ string) (string, error) {
	now := time.Now()
	claims := InviteClaims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.inviteTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessSecret)
}

// VerifyAccess validates an access token and returns its claims.
func (m *Manager) VerifyAccess(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (m *Manager) VerifyRefresh(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.refreshSecret)
}

func (m *Manager) verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	// Invite tokens share the access secret but carry neither tenant nor
	// role; they must never pass as access or refresh tokens.
	if claims.TenantID == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyInvite validates an invite token and returns the pending user ID.
// Tokens without the invite type discriminator are rejected even when the
// signature is valid; an access token must never redeem an invitation.
func (m *Manager) VerifyInvite(tokenString string) (string, error) {
	return m.verifyTyped(tokenString, TypeInvite)
}

// VerifyEmailToken validates an email verification token and returns the
// user ID whose address it confirms.
func (m *Manager) VerifyEmailToken(tokenString string) (string, error) {
	return m.verifyTyped(tokenString, TypeVerifyEmail)
}

func (m *Manager) verifyTyped(tokenString, typ string) (string, error) {
	claims := &InviteClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.accessSecret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	if claims.Type != typ {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
