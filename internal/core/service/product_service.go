package service

import (
	"context"
	"errors"
	"time"

	"github.com/kardexlab/inventory-api/internal/core/domain"
	"github.com/kardexlab/inventory-api/internal/core/ports"
)

// ProductService implements catalogue CRUD. Deletion is always soft so that
// movement history stays intact.
type ProductService struct {
	products  ports.ProductRepository
	inventory ports.InventoryRepository
}

func NewProductService(products ports.ProductRepository, inventory ports.InventoryRepository) *ProductService {
	return &ProductService{products: products, inventory: inventory}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Create registers a product and its zero-quantity inventory row.
func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if _, err := s.products.FindByCode(ctx, input.Code); err == nil {
		return nil, domain.ErrProductExists
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.products.Create(ctx, &domain.Product{
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		SalePrice:   input.SalePrice,
		MinStock:    input.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.inventory.InitStock(ctx, created.ID, 0); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != product.Code {
		if _, err := s.products.FindByCode(ctx, input.Code); err == nil {
			return nil, domain.ErrProductExists
		} else if !errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
	}

	product.Code = input.Code
	product.Name = input.Name
	product.Description = input.Description
	product.SalePrice = input.SalePrice
	product.MinStock = input.MinStock
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.SoftDelete(ctx, id)
}
