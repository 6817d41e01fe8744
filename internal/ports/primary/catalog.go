package primary

import (
	"context"

	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/core/product"
)

// CatalogService defines the primary port for product and producer operations.
type CatalogService interface {
	// CreateProduct registers a new product.
	CreateProduct(ctx context.Context, req CreateProductRequest) (*product.Product, error)

	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, id string) (*product.Product, error)

	// ListProducts retrieves products, optionally restricted to a category.
	ListProducts(ctx context.Context, category string) ([]*product.Product, error)

	// SearchProducts retrieves products whose name contains query.
	SearchProducts(ctx context.Context, query string) ([]*product.Product, error)

	// CreateProducer registers a new producer.
	CreateProducer(ctx context.Context, req CreateProducerRequest) (*producer.Producer, error)

	// GetProducer retrieves a producer by ID.
	GetProducer(ctx context.Context, id string) (*producer.Producer, error)

	// ListProducers retrieves every producer.
	ListProducers(ctx context.Context) ([]*producer.Producer, error)

	// SearchProducers retrieves producers whose name contains query.
	SearchProducers(ctx context.Context, query string) ([]*producer.Producer, error)

	// ListProducersByProduct retrieves the producers that supply a product.
	ListProducersByProduct(ctx context.Context, productID string) ([]*producer.Producer, error)

	// UpdateProducerContact changes the phone of a producer.
	UpdateProducerContact(ctx context.Context, id, phone string) error
}

// CreateProductRequest contains parameters for creating a product.
type CreateProductRequest struct {
	Name        string
	DefaultUnit string
	Description string
	Category    string
}

// CreateProducerRequest contains parameters for creating a producer.
type CreateProducerRequest struct {
	Name    string
	TaxID   string
	Phone   string
	Address string
}
