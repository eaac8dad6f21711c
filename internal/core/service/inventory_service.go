package service

import (
	"context"
	"time"

	"github.com/kardexlab/inventory-api/internal/core/domain"
	"github.com/kardexlab/inventory-api/internal/core/ports"
)

// InventoryService implements stock levels and movement application.
type InventoryService struct {
	products  ports.ProductRepository
	inventory ports.InventoryRepository
}

func NewInventoryService(products ports.ProductRepository, inventory ports.InventoryRepository) *InventoryService {
	return &InventoryService{products: products, inventory: inventory}
}

func (s *InventoryService) Levels(ctx context.Context) ([]domain.Inventory, error) {
	return s.inventory.List(ctx)
}

// ApplyMovement adjusts stock and records the movement. An "out" movement
// that would drive the quantity negative fails without any write.
func (s *InventoryService) ApplyMovement(ctx context.Context, input ports.MovementInput) (*domain.Movement, error) {
	if !input.Type.Valid() || input.Quantity <= 0 {
		return nil, domain.ErrInvalidMovement
	}

	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	delta := input.Quantity
	if input.Type == domain.MovementOut {
		delta = -input.Quantity
	}

	if _, err := s.inventory.AdjustStock(ctx, input.ProductID, delta); err != nil {
		return nil, err
	}

	return s.inventory.RecordMovement(ctx, &domain.Movement{
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Notes:     input.Notes,
		UserID:    input.UserID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *InventoryService) Movements(ctx context.Context, productID string) ([]domain.Movement, error) {
	return s.inventory.ListMovements(ctx, productID)
}
