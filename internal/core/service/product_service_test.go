package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kardexlab/inventory-api/internal/core/domain"
	"github.com/kardexlab/inventory-api/internal/core/ports"
)

func newProductFixture() (*ProductService, *stubProductRepo, *stubInventoryRepo) {
	products := newStubProductRepo()
	inventory := newStubInventoryRepo()
	return NewProductService(products, inventory), products, inventory
}

func TestProductService_Create_InitialisesStock(t *testing.T) {
	svc, _, inventory := newProductFixture()

	product, err := svc.Create(context.Background(), ports.ProductInput{
		Code:      "PRD-001",
		Name:      "Laptop",
		SalePrice: 999.99,
		MinStock:  2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}

	level, err := inventory.FindByProduct(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("expected inventory row: %v", err)
	}
	if level.Quantity != 0 {
		t.Fatalf("expected zero initial stock, got %d", level.Quantity)
	}
}

func TestProductService_Create_DuplicateCode(t *testing.T) {
	svc, _, _ := newProductFixture()

	if _, err := svc.Create(context.Background(), ports.ProductInput{Code: "PRD-001", Name: "Laptop"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.ProductInput{Code: "PRD-001", Name: "Other"}); !errors.Is(err, domain.ErrProductExists) {
		t.Fatalf("expected ErrProductExists, got %v", err)
	}
}

func TestProductService_Update_CodeCollision(t *testing.T) {
	svc, _, _ := newProductFixture()

	first, err := svc.Create(context.Background(), ports.ProductInput{Code: "PRD-001", Name: "Laptop"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.ProductInput{Code: "PRD-002", Name: "Mouse"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Moving to an occupied code is rejected; keeping the own code is not.
	if _, err := svc.Update(context.Background(), first.ID, ports.ProductInput{Code: "PRD-002", Name: "Laptop"}); !errors.Is(err, domain.ErrProductExists) {
		t.Fatalf("expected ErrProductExists, got %v", err)
	}
	updated, err := svc.Update(context.Background(), first.ID, ports.ProductInput{Code: "PRD-001", Name: "Laptop Pro", SalePrice: 1299})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Laptop Pro" || updated.SalePrice != 1299 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestProductService_Delete_IsSoft(t *testing.T) {
	svc, products, _ := newProductFixture()

	product, err := svc.Create(context.Background(), ports.ProductInput{Code: "PRD-001", Name: "Laptop"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("deleted product should be hidden, got %v", err)
	}

	// The document survives for movement history.
	stored, ok := products.products[product.ID]
	if !ok {
		t.Fatalf("expected the document to survive a soft delete")
	}
	if !stored.Deleted {
		t.Fatalf("expected the deleted flag to be set")
	}

	if err := svc.Delete(context.Background(), product.ID); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("deleting twice should report not found, got %v", err)
	}
}

func TestProductService_List_ExcludesDeleted(t *testing.T) {
	svc, _, _ := newProductFixture()

	first, _ := svc.Create(context.Background(), ports.ProductInput{Code: "PRD-001", Name: "Laptop"})
	_, _ = svc.Create(context.Background(), ports.ProductInput{Code: "PRD-002", Name: "Mouse"})
	_ = svc.Delete(context.Background(), first.ID)

	products, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].Code != "PRD-002" {
		t.Fatalf("unexpected survivor: %+v", products[0])
	}
}
