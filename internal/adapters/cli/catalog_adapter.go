package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/ports/primary"
)

// CatalogAdapter is a thin adapter that translates CLI operations to
// CatalogService calls.
type CatalogAdapter struct {
	service primary.CatalogService
	out     io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter with the given service.
func NewCatalogAdapter(service primary.CatalogService, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{
		service: service,
		out:     out,
	}
}

// CreateProduct registers a product.
func (a *CatalogAdapter) CreateProduct(ctx context.Context, req primary.CreateProductRequest) (*product.Product, error) {
	p, err := a.service.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Product created: %s %s\n", p.ID(), p.DisplayText())
	return p, nil
}

// ListProducts prints products, optionally of one category.
func (a *CatalogAdapter) ListProducts(ctx context.Context, category string) ([]*product.Product, error) {
	products, err := a.service.ListProducts(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, a.productTable(products)
}

// SearchProducts prints products whose name contains query.
func (a *CatalogAdapter) SearchProducts(ctx context.Context, query string) ([]*product.Product, error) {
	products, err := a.service.SearchProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, a.productTable(products)
}

// ShowProduct prints one product and the producers that supply it.
func (a *CatalogAdapter) ShowProduct(ctx context.Context, id string) (*product.Product, error) {
	p, err := a.service.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	v := ToProductView(p)

	fmt.Fprintf(a.out, "\nProduct: %s\n", v.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", v.Name)
	fmt.Fprintf(a.out, "Unit:     %s\n", v.DefaultUnit)
	if v.Description != "" {
		fmt.Fprintf(a.out, "About:    %s\n", v.Description)
	}
	if v.Category != "" {
		fmt.Fprintf(a.out, "Category: %s\n", v.Category)
	}
	fmt.Fprintf(a.out, "Sync:     %s\n", StatusLabel(v.SyncStatus))

	producers, err := a.service.ListProducersByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list producers: %w", err)
	}
	if len(producers) > 0 {
		fmt.Fprintln(a.out, "Producers:")
		for _, pr := range producers {
			fmt.Fprintf(a.out, "  - %s %s\n", pr.ID(), pr.Name())
		}
	}
	fmt.Fprintln(a.out)

	return p, nil
}

// CreateProducer registers a producer.
func (a *CatalogAdapter) CreateProducer(ctx context.Context, req primary.CreateProducerRequest) (*producer.Producer, error) {
	p, err := a.service.CreateProducer(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Producer created: %s %s\n", p.ID(), p.Name())
	return p, nil
}

// ListProducers prints every producer, or those supplying productID when set.
func (a *CatalogAdapter) ListProducers(ctx context.Context, productID string) ([]*producer.Producer, error) {
	var (
		producers []*producer.Producer
		err       error
	)
	if productID != "" {
		producers, err = a.service.ListProducersByProduct(ctx, productID)
	} else {
		producers, err = a.service.ListProducers(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list producers: %w", err)
	}
	return producers, a.producerTable(producers)
}

// SearchProducers prints producers whose name contains query.
func (a *CatalogAdapter) SearchProducers(ctx context.Context, query string) ([]*producer.Producer, error) {
	producers, err := a.service.SearchProducers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search producers: %w", err)
	}
	return producers, a.producerTable(producers)
}

// ShowProducer prints one producer.
func (a *CatalogAdapter) ShowProducer(ctx context.Context, id string) (*producer.Producer, error) {
	p, err := a.service.GetProducer(ctx, id)
	if err != nil {
		return nil, err
	}
	v := ToProducerView(p)

	fmt.Fprintf(a.out, "\nProducer: %s\n", v.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", v.Name)
	if v.TaxID != "" {
		fmt.Fprintf(a.out, "CPF/CNPJ: %s\n", v.TaxID)
	}
	fmt.Fprintf(a.out, "Contact: %s\n", v.DisplayContact)
	if v.Address != "" {
		fmt.Fprintf(a.out, "Address: %s\n", v.Address)
	}
	fmt.Fprintf(a.out, "Sync:    %s\n", StatusLabel(v.SyncStatus))
	fmt.Fprintln(a.out)

	return p, nil
}

// UpdateContact changes the phone of a producer.
func (a *CatalogAdapter) UpdateContact(ctx context.Context, id, phone string) error {
	if err := a.service.UpdateProducerContact(ctx, id, phone); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Producer %s contact updated\n", id)
	return nil
}

func (a *CatalogAdapter) productTable(products []*product.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUNIT\tCATEGORY\tSYNC")
	fmt.Fprintln(w, "--\t----\t----\t--------\t----")
	for _, p := range products {
		v := ToProductView(p)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.DefaultUnit, v.Category, StatusLabel(v.SyncStatus))
	}
	return w.Flush()
}

func (a *CatalogAdapter) producerTable(producers []*producer.Producer) error {
	if len(producers) == 0 {
		fmt.Fprintln(a.out, "No producers found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCONTACT\tSYNC")
	fmt.Fprintln(w, "--\t----\t-------\t----")
	for _, p := range producers {
		v := ToProducerView(p)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.DisplayContact, StatusLabel(v.SyncStatus))
	}
	return w.Flush()
}
