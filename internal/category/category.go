package category

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("category not found")

// Category groups documents, risks, and non-conformities inside a tenant.
// Categories are cascade-deleted with their tenant.
type Category struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository defines the interface for category persistence
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, tenantID, categoryID string) (*Category, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, tenantID, categoryID string) error
}
