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
	"time"
)

// Domain errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// User represents a user account. Every user belongs to exactly one tenant;
// email uniqueness is global across tenants, so one address maps to one
// account in one organization.
type User struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenantId"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"isActive"`
	EmailVerified bool      `json:"emailVerified"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID regardless of tenant
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email across all tenants
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ListByTenant retrieves all users in a tenant
	ListByTenant(ctx context.Context, tenantID string) ([]*User, error)

	// Update persists mutable user fields
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// SetActive toggles the soft-delete flag
	SetActive(ctx context.Context, userID string, active bool) error
}
