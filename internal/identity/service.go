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

package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/auditlog"
	"github.com/complycore/complycore/internal/id"
	"github.com/complycore/complycore/internal/rbac"
)

// Service provides user account business logic
type Service struct {
	repo        UserRepository
	hasher      *PasswordHasher
	auditLogger auditlog.Logger
}

// NewService creates a new identity service
func NewService(repo UserRepository, hasher *PasswordHasher, auditLogger auditlog.Logger) *Service {
	return &Service{
		repo:        repo,
		hasher:      hasher,
		auditLogger: auditLogger,
	}
}

// CreateAdmin creates the founding tenant_admin account during registration.
func (s *Service) CreateAdmin(ctx context.Context, tenantID, email, fullName, password string) (*User, error) {
	return s.create(ctx, tenantID, email, fullName, rbac.RoleTenantAdmin, password, false)
}

// CreateUser creates an active user directly, used by admins who set the
// initial password themselves rather than going through the invite flow.
func (s *Service) CreateUser(ctx context.Context, tenantID, email, fullName, role, password string) (*User, error) {
	if err := validateAssignableRole(role); err != nil {
		return nil, err
	}
	return s.create(ctx, tenantID, email, fullName, role, password, true)
}

func (s *Service) create(ctx context.Context, tenantID, email, fullName, role, password string, verified bool) (*User, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return nil, apperr.Validation("invalid email address")
	}
	if !isStrongPassword(password) {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	if err := s.checkEmailAvailable(ctx, tenantID, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:            id.NewUUIDv7(),
		TenantID:      tenantID,
		Email:         email,
		FullName:      fullName,
		Role:          role,
		IsActive:      true,
		EmailVerified: verified,
		PasswordHash:  hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeUserRegistered,
		TenantID: tenantID,
		ActorID:  user.ID,
		Resource: "user",
		Metadata: map[string]any{"email": user.Email, "role": user.Role},
	})

	return user, nil
}

// Invite creates a pending account for an email address. The pending user
// has no usable password until the invite token is redeemed.
func (s *Service) Invite(ctx context.Context, invitedBy *User, email, fullName, role string) (*User, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return nil, apperr.Validation("invalid email address")
	}
	if err := validateAssignableRole(role); err != nil {
		return nil, err
	}

	if err := s.checkEmailAvailable(ctx, invitedBy.TenantID, email); err != nil {
		return nil, err
	}

	user := &User{
		ID:            id.NewUUIDv7(),
		TenantID:      invitedBy.TenantID,
		Email:         email,
		FullName:      fullName,
		Role:          role,
		IsActive:      true,
		EmailVerified: false,
		// No usable hash until redemption; Verify rejects the empty
		// string, so a pending account cannot log in.
		PasswordHash: "",
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeUserInvited,
		TenantID: invitedBy.TenantID,
		ActorID:  invitedBy.ID,
		Resource: "user",
		Metadata: map[string]any{"email": email, "role": role},
	})

	return user, nil
}

// checkEmailAvailable enforces global email uniqueness. The two conflict
// messages are part of the API contract and differ on whether the existing
// account sits inside or outside the caller's tenant.
func (s *Service) checkEmailAvailable(ctx context.Context, tenantID, email string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return apperr.Internal(err)
	}
	if existing.TenantID == tenantID {
		return apperr.Conflict("User already exists in this organization")
	}
	return apperr.Conflict("User already belongs to another organization")
}

// RedeemInvite activates a pending account: sets the password and marks the
// email verified. The user ID comes from a verified invite token.
func (s *Service) RedeemInvite(ctx context.Context, userID, password string) (*User, error) {
	if !isStrongPassword(password) {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	if !user.IsActive {
		return nil, apperr.Forbidden("Account is deactivated")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, apperr.Internal(err)
	}

	user.EmailVerified = true
	user.PasswordHash = hash
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeInviteRedeemed,
		TenantID: user.TenantID,
		ActorID:  user.ID,
		Resource: "user",
	})

	return user, nil
}

// VerifyEmail marks the account's address as confirmed. The user ID comes
// from a verified email verification token; repeating the call is harmless.
func (s *Service) VerifyEmail(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	if user.EmailVerified {
		return user, nil
	}

	user.EmailVerified = true
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeEmailVerified,
		TenantID: user.TenantID,
		ActorID:  user.ID,
		Resource: "user",
	})

	return user, nil
}

// Authenticate verifies an email/password pair. A deactivated account fails
// with Forbidden even when the password matches, so the response
// distinguishes "wrong credentials" from "account disabled".
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, apperr.Internal(err)
		}
		s.auditLogger.Log(ctx, auditlog.Event{
			Type:     auditlog.TypeLoginFailed,
			Resource: email,
			Metadata: map[string]any{"reason": "user_not_found"},
		})
		return nil, apperr.Unauthenticated("Invalid email or password")
	}

	valid, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !valid {
		s.auditLogger.Log(ctx, auditlog.Event{
			Type:     auditlog.TypeLoginFailed,
			TenantID: user.TenantID,
			ActorID:  user.ID,
			Resource: "login",
			Metadata: map[string]any{"reason": "invalid_password"},
		})
		return nil, apperr.Unauthenticated("Invalid email or password")
	}

	if !user.IsActive {
		s.auditLogger.Log(ctx, auditlog.Event{
			Type:     auditlog.TypeLoginFailed,
			TenantID: user.TenantID,
			ActorID:  user.ID,
			Resource: "login",
			Metadata: map[string]any{"reason": "deactivated"},
		})
		return nil, apperr.Forbidden("Account is deactivated")
	}

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeLoginSuccess,
		TenantID: user.TenantID,
		ActorID:  user.ID,
		Resource: "login",
	})

	return user, nil
}

// CheckLiveness re-reads the user backing a verified token. Deactivation
// takes effect on the very next request even though the token itself stays
// cryptographically valid until expiry.
func (s *Service) CheckLiveness(ctx context.Context, userID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperr.Unauthenticated("account no longer active")
		}
		return apperr.Internal(err)
	}
	if !user.IsActive {
		return apperr.Unauthenticated("account no longer active")
	}
	return nil
}

// GetUser retrieves a user within the caller's tenant. A user that exists
// under another tenant is reported as not found, never as forbidden.
func (s *Service) GetUser(ctx context.Context, callerTenantID, userID string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	if user.TenantID != callerTenantID {
		// Masked as not found; the log keeps the real cause.
		s.auditLogger.Log(ctx, auditlog.Event{
			Type:     auditlog.TypeCrossTenantDenied,
			TenantID: callerTenantID,
			Resource: "user",
			Metadata: map[string]any{"target_user_id": userID},
		})
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// GetByID retrieves a user without tenant scoping. Reserved for the
// super-admin surface and internal flows that derive scope themselves.
func (s *Service) GetByID(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// ListUsers lists all users in a tenant.
func (s *Service) ListUsers(ctx context.Context, tenantID string) ([]*User, error) {
	users, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// UpdateUser updates mutable fields of a user in the caller's tenant.
func (s *Service) UpdateUser(ctx context.Context, callerTenantID, userID, fullName, role string) (*User, error) {
	user, err := s.GetUser(ctx, callerTenantID, userID)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if role != "" {
		if err := validateAssignableRole(role); err != nil {
			return nil, err
		}
		// Trust-on-verify: the new role takes effect when the user's
		// tokens are reissued, bounded by the access token TTL.
		user.Role = role
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// Deactivate soft-deletes a user. Deletion is always soft.
func (s *Service) Deactivate(ctx context.Context, actor *User, userID string) error {
	user, err := s.GetUser(ctx, actor.TenantID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.SetActive(ctx, user.ID, false); err != nil {
		return apperr.Internal(err)
	}

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypeUserDeactivated,
		TenantID: actor.TenantID,
		ActorID:  actor.ID,
		Resource: "user",
		Metadata: map[string]any{"user_id": userID},
	})

	return nil
}

// ChangePassword changes the caller's own password after verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}

	valid, err := s.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil || !valid {
		return apperr.Unauthenticated("invalid old password")
	}

	if !isStrongPassword(newPassword) {
		return apperr.Validation("password must be at least 8 characters")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return apperr.Internal(err)
	}

	s.auditLogger.Log(ctx, auditlog.Event{
		Type:     auditlog.TypePasswordChanged,
		TenantID: user.TenantID,
		ActorID:  user.ID,
		Resource: "user_credentials",
	})

	return nil
}

// validateAssignableRole accepts tenant-level roles only. super_admin is
// assigned exclusively through seeding.
func validateAssignableRole(role string) error {
	if !rbac.IsValid(role) || role == rbac.RoleSuperAdmin {
		return apperr.Validation("invalid role: " + role)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && len(email) < 255
}

func isStrongPassword(password string) bool {
	return len(password) >= 8
}
