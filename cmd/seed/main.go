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

// Command seed creates the protected system tenant and the initial
// super_admin account. super_admin is never assignable through the API;
// this is the only path that mints one.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/complycore/complycore/internal/config"
	"github.com/complycore/complycore/internal/id"
	"github.com/complycore/complycore/internal/identity"
	"github.com/complycore/complycore/internal/rbac"
	"github.com/complycore/complycore/internal/store/postgres"
	"github.com/complycore/complycore/internal/tenant"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	tenantRepo := postgres.NewTenantRepository(db)
	userRepo := postgres.NewUserRepository(db)
	hasher := identity.NewPasswordHasher(
		cfg.Security.Argon2Memory,
		cfg.Security.Argon2Iterations,
		cfg.Security.Argon2Parallelism,
		cfg.Security.Argon2SaltLength,
		cfg.Security.Argon2KeyLength,
	)

	// System tenant: create once, reuse thereafter.
	sys, err := tenantRepo.GetBySubdomain(ctx, tenant.SystemSubdomain)
	if err != nil {
		if !errors.Is(err, tenant.ErrTenantNotFound) {
			log.Fatalf("Failed to look up system tenant: %v", err)
		}
		sys = &tenant.Tenant{
			ID:          id.NewUUIDv7(),
			CompanyName: "System",
			Subdomain:   tenant.SystemSubdomain,
			PlanType:    tenant.PlanEnterprise,
			Status:      tenant.StatusActive,
		}
		if err := tenantRepo.Create(ctx, sys); err != nil {
			log.Fatalf("Failed to create system tenant: %v", err)
		}
		fmt.Println("Created system tenant")
	} else {
		fmt.Println("System tenant already exists")
	}

	if existing, err := userRepo.GetByEmail(ctx, adminEmail); err == nil && existing != nil {
		fmt.Println("Super admin already exists")
		return
	}

	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &identity.User{
		ID:            id.NewUUIDv7(),
		TenantID:      sys.ID,
		Email:         adminEmail,
		FullName:      "Platform Administrator",
		Role:          rbac.RoleSuperAdmin,
		IsActive:      true,
		EmailVerified: true,
		PasswordHash:  hash,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create super admin: %v", err)
	}

	fmt.Printf("Created super admin %s\n", adminEmail)
}
