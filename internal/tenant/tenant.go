package tenant

import (
	"context"
	"errors"
	"time"
)

// Domain errors
var (
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrSubdomainTaken  = errors.New("subdomain already taken")
	ErrSystemProtected = errors.New("the system tenant cannot be deleted")
)

// Tenant represents an isolated customer organization. All business data is
// partitioned by tenant.
type Tenant struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"companyName"`
	Subdomain   string    `json:"subdomain"`
	PlanType    string    `json:"planType"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SystemSubdomain marks the reserved tenant that can never be deleted,
// regardless of caller role.
const SystemSubdomain = "system"

// Status constants
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// Plan constants
const (
	PlanFree       = "free"
	PlanStandard   = "standard"
	PlanEnterprise = "enterprise"
)

// Repository defines the interface for tenant persistence
type Repository interface {
	// Create inserts a new tenant
	Create(ctx context.Context, tenant *Tenant) error

	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id string) (*Tenant, error)

	// GetBySubdomain retrieves a tenant by its globally unique subdomain
	GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)

	// List retrieves tenants with pagination
	List(ctx context.Context, limit, offset int) ([]*Tenant, error)

	// Update persists mutable tenant fields
	Update(ctx context.Context, tenant *Tenant) error

	// Delete hard-deletes a tenant. Dependent rows (users, audits,
	// documents, non-conformities, KPIs, risks, categories) cascade at
	// the schema level.
	Delete(ctx context.Context, id string) error
}
