package ports

import (
	"context"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// ProductRepository defines the persistence contract for catalogue items.
// Soft-deleted products are excluded from FindByID and List.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByCode(ctx context.Context, code string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	SoftDelete(ctx context.Context, id string) error
}

// InventoryRepository defines the persistence contract for stock levels and
// movement history.
type InventoryRepository interface {
	FindByProduct(ctx context.Context, productID string) (*domain.Inventory, error)
	List(ctx context.Context) ([]domain.Inventory, error)
	InitStock(ctx context.Context, productID string, quantity int) error
	// AdjustStock applies delta to the product's quantity and fails with
	// domain.ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, productID string, delta int) (*domain.Inventory, error)
	RecordMovement(ctx context.Context, movement *domain.Movement) (*domain.Movement, error)
	ListMovements(ctx context.Context, productID string) ([]domain.Movement, error)
}
