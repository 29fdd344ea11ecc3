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

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complycore/complycore/internal/audit"
	"github.com/complycore/complycore/internal/auditlog"
	"github.com/complycore/complycore/internal/category"
	"github.com/complycore/complycore/internal/document"
	"github.com/complycore/complycore/internal/id"
	"github.com/complycore/complycore/internal/identity"
	"github.com/complycore/complycore/internal/kpi"
	"github.com/complycore/complycore/internal/mail"
	"github.com/complycore/complycore/internal/nonconformity"
	"github.com/complycore/complycore/internal/observability/metrics"
	"github.com/complycore/complycore/internal/rbac"
	"github.com/complycore/complycore/internal/risk"
	"github.com/complycore/complycore/internal/sysconfig"
	"github.com/complycore/complycore/internal/tenant"
	"github.com/complycore/complycore/internal/token"
)

// In-memory repositories backing a full router for request-level tests.

type memUserRepo struct {
	users map[string]*identity.User
}

func (m *memUserRepo) Create(ctx context.Context, u *identity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*identity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (m *memUserRepo) ListByTenant(ctx context.Context, tenantID string) ([]*identity.User, error) {
	var out []*identity.User
	for _, u := range m.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) Update(ctx context.Context, u *identity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, userID, hash string) error {
	u, ok := m.users[userID]
	if !ok {
		return identity.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUserRepo) SetActive(ctx context.Context, userID string, active bool) error {
	u, ok := m.users[userID]
	if !ok {
		return identity.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

type memTenantRepo struct {
	tenants map[string]*tenant.Tenant
}

func (m *memTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	m.tenants[t.ID] = t
	return nil
}

func (m *memTenantRepo) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (m *memTenantRepo) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.Subdomain == subdomain {
			return t, nil
		}
	}
	return nil, tenant.ErrTenantNotFound
}

func (m *memTenantRepo) List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error) {
	out := make([]*tenant.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTenantRepo) Update(ctx context.Context, t *tenant.Tenant) error {
	m.tenants[t.ID] = t
	return nil
}

func (m *memTenantRepo) Delete(ctx context.Context, id string) error {
	delete(m.tenants, id)
	return nil
}

type memAuditRepo struct {
	audits    map[string]*audit.Audit
	checklist map[string][]*audit.ChecklistItem
}

func (m *memAuditRepo) CreateWithChecklist(ctx context.Context, a *audit.Audit, items []*audit.ChecklistItem) error {
	m.audits[a.ID] = a
	m.checklist[a.ID] = items
	return nil
}

func (m *memAuditRepo) GetByID(ctx context.Context, tenantID, auditID string) (*audit.Audit, error) {
	a, ok := m.audits[auditID]
	if !ok || a.TenantID != tenantID {
		return nil, audit.ErrAuditNotFound
	}
	return a, nil
}

func (m *memAuditRepo) ListByTenant(ctx context.Context, tenantID string) ([]*audit.Audit, error) {
	var out []*audit.Audit
	for _, a := range m.audits {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAuditRepo) Update(ctx context.Context, a *audit.Audit) error {
	m.audits[a.ID] = a
	return nil
}

func (m *memAuditRepo) ListChecklist(ctx context.Context, tenantID, auditID string) ([]*audit.ChecklistItem, error) {
	return m.checklist[auditID], nil
}

func (m *memAuditRepo) UpdateChecklistItem(ctx context.Context, tenantID, auditID string, item *audit.ChecklistItem) error {
	for i, existing := range m.checklist[auditID] {
		if existing.ID == item.ID {
			m.checklist[auditID][i].Result = item.Result
			m.checklist[auditID][i].Notes = item.Notes
			return nil
		}
	}
	return audit.ErrChecklistNotFound
}

type memConfigRepo struct {
	entries map[string]*sysconfig.Entry
}

func (m *memConfigRepo) Get(ctx context.Context, key string) (*sysconfig.Entry, error) {
	e, ok := m.entries[key]
	if !ok {
		return nil, sysconfig.ErrNotFound
	}
	return e, nil
}

func (m *memConfigRepo) List(ctx context.Context) ([]*sysconfig.Entry, error) {
	out := make([]*sysconfig.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *memConfigRepo) Upsert(ctx context.Context, e *sysconfig.Entry) error {
	m.entries[e.Key] = e
	return nil
}

func (m *memConfigRepo) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

type testEnv struct {
	router  http.Handler
	users   *memUserRepo
	tenants *memTenantRepo
	tokens  *token.Manager
	hasher  *identity.PasswordHasher
}

func newTestEnv() *testEnv {
	userRepo := &memUserRepo{users: make(map[string]*identity.User)}
	tenantRepo := &memTenantRepo{tenants: make(map[string]*tenant.Tenant)}
	auditRepo := &memAuditRepo{
		audits:    make(map[string]*audit.Audit),
		checklist: make(map[string][]*audit.ChecklistItem),
	}
	configRepo := &memConfigRepo{entries: make(map[string]*sysconfig.Entry)}

	auditLogger := auditlog.NewSlogLogger()
	hasher := identity.NewPasswordHasher(1024, 1, 1, 16, 32)
	identitySvc := identity.NewService(userRepo, hasher, auditLogger)
	tenantSvc := tenant.NewService(tenantRepo, auditLogger)
	auditSvc := audit.NewService(auditRepo)
	configSvc := sysconfig.NewService(configRepo, time.Minute, time.Minute, auditLogger)
	tm := token.NewManager("test-access-secret", "test-refresh-secret", "complycore-test",
		15*time.Minute, time.Hour, time.Hour)
	meter, err := metrics.New(context.Background(), metrics.Config{}, "complycore-test")
	if err != nil {
		panic(err)
	}

	h := NewHandler(
		identitySvc,
		tenantSvc,
		auditSvc,
		document.NewService(nil),
		nonconformity.NewService(nil),
		kpi.NewService(nil),
		risk.NewService(nil),
		category.NewService(nil),
		configSvc,
		tm,
		auditLogger,
		mail.LogSender{},
		meter,
	)

	return &testEnv{
		router:  NewRouter(h, NewRateLimiter(1000, 1000)),
		users:   userRepo,
		tenants: tenantRepo,
		tokens:  tm,
		hasher:  hasher,
	}
}

// seedUser puts an active user straight into the repository. This is the
// only way tests mint a super_admin, mirroring the seed binary.
func (e *testEnv) seedUser(t *testing.T, tenantID, email, role string) *identity.User {
	t.Helper()
	hash, err := e.hasher.Hash("SecurePassword123")
	require.NoError(t, err)
	u := &identity.User{
		ID:            id.NewUUIDv7(),
		TenantID:      tenantID,
		Email:         email,
		FullName:      "Test " + role,
		Role:          role,
		IsActive:      true,
		EmailVerified: true,
		PasswordHash:  hash,
	}
	e.users.users[u.ID] = u
	return u
}

func (e *testEnv) accessToken(t *testing.T, u *identity.User) string {
	t.Helper()
	tok, err := e.tokens.IssueAccessToken(u.ID, u.TenantID, u.Email, u.Role)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// TestPurpose: Validates that every protected route rejects requests without a valid Bearer token.
// Scope: Integration Test (router + middleware)
// Security: Authentication enforcement
// Expected: 401 with the error envelope for a missing token and for a garbage token.
// Test Case ID: SEC-01
func TestHTTP_Authentication_Required(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/audits/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "authentication required", body["message"])

	rec = env.do(t, http.MethodGet, "/api/v1/audits/", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeBody(t, rec)["message"])
}

// TestPurpose: Validates that deactivating a user revokes access immediately, while the signed token is still within its TTL.
// Scope: Integration Test (router + middleware)
// Security: Immediate revocation on soft delete
// Expected: The same token that worked before deactivation answers 401 afterwards.
// Test Case ID: SEC-02
func TestHTTP_DeactivatedUser_RejectedImmediately(t *testing.T) {
	env := newTestEnv()
	u := env.seedUser(t, "tenant-1", "member@example.com", rbac.RoleMember)
	tok := env.accessToken(t, u)

	rec := env.do(t, http.MethodGet, "/api/v1/audits/", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env.users.users[u.ID].IsActive = false

	rec = env.do(t, http.MethodGet, "/api/v1/audits/", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestPurpose: Validates that a record owned by another tenant is indistinguishable from a nonexistent one.
// Scope: Integration Test (router + services)
// Security: Tenant isolation (existence masking)
// Expected: Owner reads the audit with 200; a foreign tenant gets 404 with the same message as a random ID.
// Test Case ID: SEC-03
func TestHTTP_TenantIsolation_NotFound(t *testing.T) {
	env := newTestEnv()
	owner := env.seedUser(t, "tenant-1", "owner@example.com", rbac.RoleTenantAdmin)
	outsider := env.seedUser(t, "tenant-2", "outsider@example.com", rbac.RoleTenantAdmin)

	rec := env.do(t, http.MethodPost, "/api/v1/audits/", env.accessToken(t, owner), map[string]any{
		"title": "Internal Q3",
		"type":  "internal",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	auditID := decodeBody(t, rec)["data"].(map[string]any)["audit"].(map[string]any)["id"].(string)

	rec = env.do(t, http.MethodGet, "/api/v1/audits/"+auditID, env.accessToken(t, owner), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/audits/"+auditID, env.accessToken(t, outsider), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	crossTenant := decodeBody(t, rec)["message"]

	rec = env.do(t, http.MethodGet, "/api/v1/audits/does-not-exist", env.accessToken(t, outsider), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, decodeBody(t, rec)["message"], crossTenant,
		"cross-tenant and nonexistent must be indistinguishable")
}

// TestPurpose: Validates role gating on write routes and that reads stay open to every tenant member.
// Scope: Integration Test (router + middleware)
// Security: RBAC enforcement
// Permissions: audits:write requires tenant_admin or auditor
// Expected: member create is 403 "insufficient permissions"; auditor create is 201; member read is 200.
// Test Case ID: SEC-04
func TestHTTP_RoleGate_AuditWrites(t *testing.T) {
	env := newTestEnv()
	member := env.seedUser(t, "tenant-1", "member@example.com", rbac.RoleMember)
	auditor := env.seedUser(t, "tenant-1", "auditor@example.com", rbac.RoleAuditor)

	payload := map[string]any{"title": "Internal Q3", "type": "internal"}

	rec := env.do(t, http.MethodPost, "/api/v1/audits/", env.accessToken(t, member), payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "insufficient permissions", decodeBody(t, rec)["message"])

	rec = env.do(t, http.MethodPost, "/api/v1/audits/", env.accessToken(t, auditor), payload)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/audits/", env.accessToken(t, member), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestPurpose: Validates the platform administration surface: tenant admins are rejected and super_admin passes every gate.
// Scope: Integration Test (router + middleware)
// Security: RBAC enforcement (platform scope)
// Permissions: platform routes admit super_admin only
// Expected: tenant_admin gets 403 on /tenants and /config; super_admin gets 200.
// Test Case ID: SEC-05
func TestHTTP_SuperAdmin_PlatformRoutes(t *testing.T) {
	env := newTestEnv()
	admin := env.seedUser(t, "tenant-1", "admin@example.com", rbac.RoleTenantAdmin)
	super := env.seedUser(t, "tenant-sys", "root@example.com", rbac.RoleSuperAdmin)

	rec := env.do(t, http.MethodGet, "/api/v1/tenants/", env.accessToken(t, admin), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/tenants/", env.accessToken(t, super), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/config/", env.accessToken(t, admin), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// super_admin also bypasses tenant-level gates.
	rec = env.do(t, http.MethodGet, "/api/v1/users/", env.accessToken(t, super), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestPurpose: Validates secret config values never leave the API unmasked.
// Scope: Integration Test (router + config service)
// Security: Secret exposure prevention
// Expected: Writing a secret returns the mask; reading it back returns the mask, never the stored value.
// Test Case ID: SEC-06
func TestHTTP_Config_SecretsMasked(t *testing.T) {
	env := newTestEnv()
	super := env.seedUser(t, "tenant-sys", "root@example.com", rbac.RoleSuperAdmin)
	tok := env.accessToken(t, super)

	rec := env.do(t, http.MethodPut, "/api/v1/config/smtp.password", tok, map[string]any{
		"value":    "hunter2",
		"category": "mail",
		"isSecret": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	entry := decodeBody(t, rec)["data"].(map[string]any)["config"].(map[string]any)
	assert.Equal(t, sysconfig.MaskValue, entry["value"])

	rec = env.do(t, http.MethodGet, "/api/v1/config/smtp.password", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entry = decodeBody(t, rec)["data"].(map[string]any)["config"].(map[string]any)
	assert.Equal(t, sysconfig.MaskValue, entry["value"])
}

// TestPurpose: Validates the registration flow end to end: envelope shape, token issuance, login, and duplicate-email conflict with tenant cleanup.
// Scope: Integration Test (router + services)
// Expected: 201 with tenant/user/tokens; login 200; duplicate email 409; the subdomain of the failed registration is not burned.
// Test Case ID: SEC-07
func TestHTTP_Register_Login_Flow(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"companyName": "Acme Inc",
		"email":       "founder@acme.example",
		"password":    "SecurePassword123",
		"fullName":    "Founder",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "acme-inc", data["tenant"].(map[string]any)["subdomain"])
	assert.Equal(t, rbac.RoleTenantAdmin, data["user"].(map[string]any)["role"])
	assert.NotEmpty(t, data["tokens"].(map[string]any)["accessToken"])
	assert.NotEmpty(t, data["tokens"].(map[string]any)["refreshToken"])

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "founder@acme.example",
		"password": "SecurePassword123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Same email under a new company: the user conflict aborts the
	// registration and the freshly created tenant is rolled back.
	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"companyName": "Beta LLC",
		"email":       "founder@acme.example",
		"password":    "SecurePassword123",
		"fullName":    "Founder",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	for _, tn := range env.tenants.tenants {
		assert.NotEqual(t, "beta-llc", tn.Subdomain, "orphaned tenant must be cleaned up")
	}
}

// TestPurpose: Validates the list envelope carries a results count alongside the data array.
// Scope: Integration Test (router + services)
// Expected: {"status":"success","results":2,"data":{...}} for a two-audit tenant.
// Test Case ID: SEC-08
func TestHTTP_ListEnvelope_Results(t *testing.T) {
	env := newTestEnv()
	admin := env.seedUser(t, "tenant-1", "admin@example.com", rbac.RoleTenantAdmin)
	tok := env.accessToken(t, admin)

	for _, title := range []string{"Internal Q3", "Supplier review"} {
		rec := env.do(t, http.MethodPost, "/api/v1/audits/", tok, map[string]any{
			"title": title,
			"type":  "internal",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/audits/", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(2), body["results"])
}

// TestPurpose: Validates malformed and invalid request bodies are rejected before reaching any service.
// Scope: Integration Test (router + validation)
// Expected: 400 for syntactically broken JSON and for a payload failing declared validation rules.
// Test Case ID: SEC-09
func TestHTTP_RequestValidation(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"companyName": "Acme Inc",
		"email":       "founder@acme.example",
		"password":    "short",
		"fullName":    "Founder",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", decodeBody(t, rec)["status"])
}

// TestPurpose: Validates the refresh flow and that token classes are not interchangeable at the API surface.
// Scope: Integration Test (router + middleware)
// Security: Token class separation
// Expected: A refresh token yields a fresh pair; an invite token is rejected both as a Bearer credential and at the refresh endpoint.
// Test Case ID: SEC-10
func TestHTTP_Refresh_And_TokenClasses(t *testing.T) {
	env := newTestEnv()
	u := env.seedUser(t, "tenant-1", "admin@acme.com", rbac.RoleTenantAdmin)

	refresh, err := env.tokens.IssueRefreshToken(u.ID, u.TenantID, u.Email, u.Role)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": refresh})
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	assert.NotEmpty(t, tokens["accessToken"])
	assert.NotEmpty(t, tokens["refreshToken"])

	invite, err := env.tokens.IssueInviteToken(u.ID)
	require.NoError(t, err)

	rec = env.do(t, http.MethodGet, "/api/v1/audits/", invite, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeBody(t, rec)["message"])

	rec = env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": invite})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestPurpose: Validates the email verification endpoint for self-registered admins.
// Scope: Integration Test (router + middleware)
// Security: Token class separation on the verification endpoint
// Expected: A registered admin starts unverified, becomes verified through the mailed token class, and an invite token is rejected.
// Test Case ID: SEC-11
func TestHTTP_VerifyEmail(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"companyName": "Acme Inc",
		"email":       "founder@acme.com",
		"password":    "SecurePassword123",
		"fullName":    "Founder",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeBody(t, rec)["data"].(map[string]any)["user"].(map[string]any)
	require.Equal(t, false, user["emailVerified"])
	userID := user["id"].(string)

	invite, err := env.tokens.IssueInviteToken(userID)
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/api/v1/auth/verify-email", "", map[string]string{"token": invite})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	verify, err := env.tokens.IssueEmailVerificationToken(userID)
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/api/v1/auth/verify-email", "", map[string]string{"token": verify})
	assert.Equal(t, http.StatusOK, rec.Code)
	verified := decodeBody(t, rec)["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, true, verified["emailVerified"])
}
