package app

import (
	"context"
	"fmt"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/ports/primary"
	"github.com/example/feira/internal/ports/secondary"
)

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	productRepo  secondary.ProductRepository
	producerRepo secondary.ProducerRepository
}

// NewCatalogService creates a new CatalogService with injected dependencies.
func NewCatalogService(productRepo secondary.ProductRepository, producerRepo secondary.ProducerRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		productRepo:  productRepo,
		producerRepo: producerRepo,
	}
}

// CreateProduct registers a new product.
func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, req primary.CreateProductRequest) (*product.Product, error) {
	p, err := product.New(product.Params{
		Name:        req.Name,
		DefaultUnit: req.DefaultUnit,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct retrieves a product by ID.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", collection.ErrProductNotFound, id)
	}
	return p, nil
}

// ListProducts retrieves every product, or those of category when given.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context, category string) ([]*product.Product, error) {
	if category != "" {
		return s.productRepo.FindByCategory(ctx, category)
	}
	return s.productRepo.FindAll(ctx)
}

// SearchProducts retrieves products whose name contains query.
func (s *CatalogServiceImpl) SearchProducts(ctx context.Context, query string) ([]*product.Product, error) {
	return s.productRepo.FindByName(ctx, query)
}

// CreateProducer registers a new producer.
func (s *CatalogServiceImpl) CreateProducer(ctx context.Context, req primary.CreateProducerRequest) (*producer.Producer, error) {
	p, err := producer.New(producer.Params{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return nil, err
	}
	if err := s.producerRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProducer retrieves a producer by ID.
func (s *CatalogServiceImpl) GetProducer(ctx context.Context, id string) (*producer.Producer, error) {
	p, err := s.producerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", collection.ErrProducerNotFound, id)
	}
	return p, nil
}

// ListProducers retrieves every producer.
func (s *CatalogServiceImpl) ListProducers(ctx context.Context) ([]*producer.Producer, error) {
	return s.producerRepo.FindAll(ctx)
}

// SearchProducers retrieves producers whose name contains query.
func (s *CatalogServiceImpl) SearchProducers(ctx context.Context, query string) ([]*producer.Producer, error) {
	return s.producerRepo.FindByName(ctx, query)
}

// ListProducersByProduct retrieves the producers that supply a product.
func (s *CatalogServiceImpl) ListProducersByProduct(ctx context.Context, productID string) ([]*producer.Producer, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.producerRepo.FindByProduct(ctx, productID)
}

// UpdateProducerContact changes the phone of a producer.
func (s *CatalogServiceImpl) UpdateProducerContact(ctx context.Context, id, phone string) error {
	p, err := s.GetProducer(ctx, id)
	if err != nil {
		return err
	}
	p.UpdateContact(phone)
	return s.producerRepo.Update(ctx, p)
}

var _ primary.CatalogService = (*CatalogServiceImpl)(nil)
