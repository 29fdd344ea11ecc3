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
	"testing"

	"github.com/complycore/complycore/internal/apperr"
	"github.com/complycore/complycore/internal/auditlog"
	"github.com/complycore/complycore/internal/rbac"
)

// MockUserRepository is a simple in-memory implementation of UserRepository
type MockUserRepository struct {
	users    map[string]*User
	failWith error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepository) ListByTenant(ctx context.Context, tenantID string) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *User) error {
	if _, ok := m.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *MockUserRepository) SetActive(ctx context.Context, userID string, active bool) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

// testHasher uses deliberately small Argon2 parameters to keep tests fast.
func testHasher() *PasswordHasher {
	return NewPasswordHasher(1024, 1, 1, 16, 32)
}

func newTestService() (*Service, *MockUserRepository) {
	repo := NewMockUserRepository()
	return NewService(repo, testHasher(), auditlog.NewSlogLogger()), repo
}

// TestPurpose: Validates the login flow: success for correct credentials, failure for wrong ones, and that a deactivated account is rejected even with the correct password.
// Scope: Unit Test
// Security: Authentication mechanisms and deactivation enforcement
// Expected: Successful login returns the user; a wrong password is Unauthenticated; a deactivated account is Forbidden with a distinct message.
// Test Case ID: IDN-01
func TestIdentity_Service_Authenticate(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	user, err := s.CreateAdmin(ctx, "tenant-1", "admin@example.com", "Admin User", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	if user.Role != rbac.RoleTenantAdmin {
		t.Errorf("expected role %s, got %s", rbac.RoleTenantAdmin, user.Role)
	}

	got, err := s.Authenticate(ctx, "Admin@Example.com", "SecurePassword123")
	if err != nil {
		t.Fatalf("expected success, got err: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID, got.ID)
	}

	_, err = s.Authenticate(ctx, "admin@example.com", "WrongPassword")
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("expected Unauthenticated for wrong password, got %v", err)
	}

	_, err = s.Authenticate(ctx, "nobody@example.com", "SecurePassword123")
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("expected Unauthenticated for unknown email, got %v", err)
	}

	// Deactivated accounts fail with Forbidden even on the right password,
	// so the client can tell "disabled" from "wrong credentials".
	repo.users[user.ID].IsActive = false
	_, err = s.Authenticate(ctx, "admin@example.com", "SecurePassword123")
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("expected Forbidden for deactivated account, got %v", err)
	}
	if apperr.MessageOf(err) != "Account is deactivated" {
		t.Errorf("unexpected message: %q", apperr.MessageOf(err))
	}
}

// TestPurpose: Validates global email uniqueness and the two distinct conflict messages depending on whether the existing account is inside or outside the caller's tenant.
// Scope: Unit Test
// Security: Data Integrity and cross-tenant information boundary
// Expected: Same-tenant duplicate reports "User already exists in this organization"; cross-tenant duplicate reports "User already belongs to another organization".
// Test Case ID: IDN-02
func TestIdentity_Service_EmailConflictMessages(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	admin, err := s.CreateAdmin(ctx, "tenant-1", "taken@example.com", "First", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	_, err = s.Invite(ctx, admin, "taken@example.com", "Dup", rbac.RoleMember)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if apperr.MessageOf(err) != "User already exists in this organization" {
		t.Errorf("unexpected same-tenant message: %q", apperr.MessageOf(err))
	}

	otherAdmin := &User{ID: "admin-2", TenantID: "tenant-2", Role: rbac.RoleTenantAdmin}
	_, err = s.Invite(ctx, otherAdmin, "taken@example.com", "Dup", rbac.RoleMember)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if apperr.MessageOf(err) != "User already belongs to another organization" {
		t.Errorf("unexpected cross-tenant message: %q", apperr.MessageOf(err))
	}
}

// TestPurpose: Validates the invite lifecycle: a pending account cannot authenticate until the invite is redeemed with a password.
// Scope: Unit Test
// Security: Pending accounts have no usable credential
// Expected: Login fails before redemption; after RedeemInvite the password works and the email is marked verified.
// Test Case ID: IDN-03
func TestIdentity_Service_InviteAndRedeem(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	admin, err := s.CreateAdmin(ctx, "tenant-1", "admin@example.com", "Admin", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	invited, err := s.Invite(ctx, admin, "new@example.com", "New Member", rbac.RoleMember)
	if err != nil {
		t.Fatalf("failed to invite: %v", err)
	}
	if invited.EmailVerified {
		t.Error("invited user should not be email-verified yet")
	}

	_, err = s.Authenticate(ctx, "new@example.com", "")
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("pending account must not authenticate, got %v", err)
	}

	redeemed, err := s.RedeemInvite(ctx, invited.ID, "ChosenPassword456")
	if err != nil {
		t.Fatalf("failed to redeem invite: %v", err)
	}
	if !redeemed.EmailVerified {
		t.Error("redeemed user should be email-verified")
	}

	if _, err := s.Authenticate(ctx, "new@example.com", "ChosenPassword456"); err != nil {
		t.Errorf("expected login after redemption, got %v", err)
	}
}

// TestPurpose: Validates that super_admin can never be assigned through invite, create, or role update.
// Scope: Unit Test
// Security: Privilege escalation prevention
// Expected: Validation error for super_admin and for unknown role strings.
// Test Case ID: IDN-04
func TestIdentity_Service_SuperAdminNotAssignable(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	admin, err := s.CreateAdmin(ctx, "tenant-1", "admin@example.com", "Admin", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	_, err = s.Invite(ctx, admin, "evil@example.com", "Evil", rbac.RoleSuperAdmin)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for super_admin invite, got %v", err)
	}

	_, err = s.CreateUser(ctx, "tenant-1", "direct@example.com", "Direct", rbac.RoleSuperAdmin, "SecurePassword123")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for super_admin create, got %v", err)
	}

	_, err = s.UpdateUser(ctx, "tenant-1", admin.ID, "", rbac.RoleSuperAdmin)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for super_admin role update, got %v", err)
	}

	_, err = s.UpdateUser(ctx, "tenant-1", admin.ID, "", "owner")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for unknown role, got %v", err)
	}
}

// TestPurpose: Validates that liveness re-checks catch deactivation immediately, independent of token validity.
// Scope: Unit Test
// Security: Immediate revocation on soft delete
// Expected: CheckLiveness succeeds for an active user and fails Unauthenticated once the user is deactivated or gone.
// Test Case ID: IDN-05
func TestIdentity_Service_CheckLiveness(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	admin, err := s.CreateAdmin(ctx, "tenant-1", "admin@example.com", "Admin", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	member, err := s.CreateUser(ctx, "tenant-1", "member@example.com", "Member", rbac.RoleMember, "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	if err := s.CheckLiveness(ctx, member.ID); err != nil {
		t.Fatalf("expected live, got %v", err)
	}

	if err := s.Deactivate(ctx, admin, member.ID); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	if err := s.CheckLiveness(ctx, member.ID); apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("expected Unauthenticated after deactivation, got %v", err)
	}

	if err := s.CheckLiveness(ctx, "missing-id"); apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("expected Unauthenticated for unknown user, got %v", err)
	}
}

// recordingAuditLogger captures events for assertions.
type recordingAuditLogger struct {
	events []auditlog.Event
}

func (l *recordingAuditLogger) Log(ctx context.Context, event auditlog.Event) {
	l.events = append(l.events, event)
}

// TestPurpose: Validates that user lookup is tenant-scoped and a cross-tenant hit is reported as not found, never forbidden.
// Scope: Unit Test
// Security: Tenant isolation (existence masking)
// Expected: GetUser returns NotFound for a user that belongs to a different tenant, and the denial lands in the security event log.
// Test Case ID: IDN-06
func TestIdentity_Service_GetUser_CrossTenant(t *testing.T) {
	repo := NewMockUserRepository()
	recorder := &recordingAuditLogger{}
	s := NewService(repo, testHasher(), recorder)
	ctx := context.Background()

	other, err := s.CreateAdmin(ctx, "tenant-2", "other@example.com", "Other", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	_, err = s.GetUser(ctx, "tenant-1", other.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound for cross-tenant lookup, got %v", err)
	}
	if apperr.MessageOf(err) != "user not found" {
		t.Errorf("cross-tenant lookup must not reveal existence, got %q", apperr.MessageOf(err))
	}

	denied := false
	for _, e := range recorder.events {
		if e.Type == auditlog.TypeCrossTenantDenied && e.TenantID == "tenant-1" {
			denied = true
		}
	}
	if !denied {
		t.Error("expected a cross_tenant_denied event to be logged")
	}
}

// TestPurpose: Validates password change requires the current password and enforces the minimum length on the new one.
// Scope: Unit Test
// Security: Credential update protection
// Expected: Wrong old password is Unauthenticated; short new password is Validation; correct flow allows login with the new password only.
// Test Case ID: IDN-07
func TestIdentity_Service_ChangePassword(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	user, err := s.CreateAdmin(ctx, "tenant-1", "admin@example.com", "Admin", "OldPassword123")
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	err = s.ChangePassword(ctx, user.ID, "WrongOld", "NewPassword456")
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("expected Unauthenticated for wrong old password, got %v", err)
	}

	err = s.ChangePassword(ctx, user.ID, "OldPassword123", "short")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected Validation for short password, got %v", err)
	}

	if err := s.ChangePassword(ctx, user.ID, "OldPassword123", "NewPassword456"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if _, err := s.Authenticate(ctx, "admin@example.com", "OldPassword123"); err == nil {
		t.Error("old password must stop working")
	}
	if _, err := s.Authenticate(ctx, "admin@example.com", "NewPassword456"); err != nil {
		t.Errorf("new password must work, got %v", err)
	}
}

// TestPurpose: Validates that a failing store surfaces as an internal error rather than an authentication verdict.
// Scope: Unit Test
// Security: A database outage must not report "wrong credentials" or silently pass the liveness check.
// Expected: Authenticate, CheckLiveness and GetUser map store failures to Internal; absence keeps its existing mapping.
// Test Case ID: IDN-08
func TestIdentity_Service_StoreFailure(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	hash, _ := testHasher().Hash("correct-horse-battery")
	repo.users["user-1"] = &User{
		ID:            "user-1",
		TenantID:      "tenant-1",
		Email:         "admin@example.com",
		PasswordHash:  hash,
		Role:          rbac.RoleTenantAdmin,
		IsActive:      true,
		EmailVerified: true,
	}

	repo.failWith = errors.New("write tcp 10.0.0.5:5432: i/o timeout")

	if _, err := s.Authenticate(ctx, "admin@example.com", "correct-horse-battery"); apperr.KindOf(err) != apperr.KindInternal {
		t.Errorf("expected Internal for store failure during authenticate, got %v", err)
	}
	if err := s.CheckLiveness(ctx, "user-1"); apperr.KindOf(err) != apperr.KindInternal {
		t.Errorf("expected Internal for store failure during liveness check, got %v", err)
	}
	if _, err := s.GetUser(ctx, "tenant-1", "user-1"); apperr.KindOf(err) != apperr.KindInternal {
		t.Errorf("expected Internal for store failure during lookup, got %v", err)
	}

	repo.failWith = nil
	if err := s.CheckLiveness(ctx, "user-1"); err != nil {
		t.Errorf("expected liveness to pass once the store recovers, got %v", err)
	}
	if _, err := s.GetUser(ctx, "tenant-1", "missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound for absent user, got %v", err)
	}
}

// TestPurpose: Validates the email confirmation flow for self-registered admins.
// Scope: Unit Test
// Expected: VerifyEmail flips emailVerified once, is idempotent, and reports an unknown user as NotFound.
// Test Case ID: IDN-09
func TestIdentity_Service_VerifyEmail(t *testing.T) {
	s, repo := newTestService()
	ctx := context.Background()

	admin, err := s.CreateAdmin(ctx, "tenant-1", "founder@acme.com", "Founder", "SecurePassword123")
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	if admin.EmailVerified {
		t.Fatal("self-registered admin must start unverified")
	}

	verified, err := s.VerifyEmail(ctx, admin.ID)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !verified.EmailVerified {
		t.Error("expected emailVerified to be set")
	}
	if !repo.users[admin.ID].EmailVerified {
		t.Error("expected the change to be persisted")
	}

	if _, err := s.VerifyEmail(ctx, admin.ID); err != nil {
		t.Errorf("expected repeated verification to succeed, got %v", err)
	}

	if _, err := s.VerifyEmail(ctx, "missing"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected NotFound for unknown user, got %v", err)
	}
}
