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

// Package rbac holds the closed role set and the allow-list check used by
// the HTTP authorization middleware.
package rbac

// Canonical role names stored on users and carried in token claims.
const (
	// RoleSuperAdmin bypasses every route-level allow-list and operates
	// across tenants. Assigned only via seeding, never via the API.
	RoleSuperAdmin = "super_admin"

	// RoleTenantAdmin administers users and settings within one tenant.
	RoleTenantAdmin = "tenant_admin"

	// RoleAuditor runs audits and manages findings within one tenant.
	RoleAuditor = "auditor"

	// RoleMember has read/write access to business records within one
	// tenant but no administrative surface.
	RoleMember = "member"
)

// IsValid reports whether role is one of the defined roles.
func IsValid(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleTenantAdmin, RoleAuditor, RoleMember:
		return true
	}
	return false
}

// Allowed reports whether role may perform an operation gated by the given
// allow-list. RoleSuperAdmin passes unconditionally.
func Allowed(role string, allowList ...string) bool {
	if role == RoleSuperAdmin {
		return true
	}
	for _, allowed := range allowList {
		if role == allowed {
			return true
		}
	}
	return false
}
