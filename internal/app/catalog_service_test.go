package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/validation"
	"github.com/example/feira/internal/ports/primary"
)

func newTestCatalogService() (*CatalogServiceImpl, *mockProductRepository, *mockProducerRepository) {
	products := newMockProductRepository()
	producers := newMockProducerRepository()
	return NewCatalogService(products, producers), products, producers
}

func TestCatalogService_CreateProduct(t *testing.T) {
	service, products, _ := newTestCatalogService()
	ctx := context.Background()

	p, err := service.CreateProduct(ctx, primary.CreateProductRequest{
		Name: "Alface", DefaultUnit: "kg", Category: "verdura",
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if _, ok := products.products[p.ID()]; !ok {
		t.Error("product was not saved")
	}

	_, err = service.CreateProduct(ctx, primary.CreateProductRequest{Name: " ", DefaultUnit: "kg"})
	if !errors.Is(err, validation.ErrInvalid) {
		t.Errorf("error = %v, want validation error", err)
	}
	if len(products.products) != 1 {
		t.Errorf("products = %d, want 1", len(products.products))
	}
}

func TestCatalogService_GetNotFound(t *testing.T) {
	service, _, _ := newTestCatalogService()
	ctx := context.Background()

	if _, err := service.GetProduct(ctx, "x"); !errors.Is(err, collection.ErrProductNotFound) {
		t.Errorf("GetProduct error = %v, want ErrProductNotFound", err)
	}
	if _, err := service.GetProducer(ctx, "x"); !errors.Is(err, collection.ErrProducerNotFound) {
		t.Errorf("GetProducer error = %v, want ErrProducerNotFound", err)
	}
}

func TestCatalogService_ListProducts(t *testing.T) {
	service, products, _ := newTestCatalogService()
	ctx := context.Background()
	products.add("1", "Tomate")
	products.add("2", "Alface")

	all, err := service.ListProducts(ctx, "")
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(all) != 2 || all[0].Name() != "Alface" {
		t.Errorf("ListProducts = %v, want [Alface Tomate]", all)
	}

	none, err := service.ListProducts(ctx, "fruta")
	if err != nil {
		t.Fatalf("ListProducts(fruta) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListProducts(fruta) = %d items, want 0", len(none))
	}
}

func TestCatalogService_Producers(t *testing.T) {
	service, products, producers := newTestCatalogService()
	ctx := context.Background()
	products.add("1", "Alface")
	producers.add("101", "João Silva")
	producers.links["1"] = []string{"101"}

	created, err := service.CreateProducer(ctx, primary.CreateProducerRequest{Name: "Maria Santos", Phone: "(11) 98888-8888"})
	if err != nil {
		t.Fatalf("CreateProducer failed: %v", err)
	}
	if created.DisplayContact() != "(11) 98888-8888" {
		t.Errorf("DisplayContact = %q", created.DisplayContact())
	}

	byProduct, err := service.ListProducersByProduct(ctx, "1")
	if err != nil {
		t.Fatalf("ListProducersByProduct failed: %v", err)
	}
	if len(byProduct) != 1 || byProduct[0].ID() != "101" {
		t.Errorf("ListProducersByProduct = %v, want [101]", byProduct)
	}

	if _, err := service.ListProducersByProduct(ctx, "missing"); !errors.Is(err, collection.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}

	if err := service.UpdateProducerContact(ctx, "101", "(11) 90000-0000"); err != nil {
		t.Fatalf("UpdateProducerContact failed: %v", err)
	}
	if got := producers.producers["101"].Phone(); got != "(11) 90000-0000" {
		t.Errorf("Phone = %q, want %q", got, "(11) 90000-0000")
	}

	found, err := service.SearchProducers(ctx, "Maria Santos")
	if err != nil {
		t.Fatalf("SearchProducers failed: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("SearchProducers = %d, want 1", len(found))
	}
}
