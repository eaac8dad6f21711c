package ports

import (
	"context"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// ProductInput carries the data to create or update a product.
type ProductInput struct {
	Code        string
	Name        string
	Description string
	SalePrice   float64
	MinStock    int
}

// ProductService covers catalogue operations.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// MovementInput carries the data to apply a stock movement.
type MovementInput struct {
	ProductID string
	Type      domain.MovementType
	Quantity  int
	Notes     string
	// UserID is the acting caller, taken from the request identity context.
	UserID string
}

// InventoryService covers stock levels and movements.
type InventoryService interface {
	Levels(ctx context.Context) ([]domain.Inventory, error)
	ApplyMovement(ctx context.Context, input MovementInput) (*domain.Movement, error)
	Movements(ctx context.Context, productID string) ([]domain.Movement, error)
}
