// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/core/syncstatus"
)

// CollectionRepository defines the secondary port for collection persistence.
//
// Finders return nil, nil for an absent id. Update and Delete on an absent id
// are silent no-ops.
type CollectionRepository interface {
	// Save inserts the collection or overwrites the stored one with the same id.
	Save(ctx context.Context, c *collection.Collection) error

	// FindByID retrieves a collection by its ID.
	FindByID(ctx context.Context, id string) (*collection.Collection, error)

	// FindAll retrieves every collection, newest collection time first.
	FindAll(ctx context.Context) ([]*collection.Collection, error)

	// FindByDate retrieves the collections of the local calendar day of day.
	FindByDate(ctx context.Context, day time.Time) ([]*collection.Collection, error)

	// FindByPeriod retrieves collections from the start of start's day to the
	// end of end's day.
	FindByPeriod(ctx context.Context, start, end time.Time) ([]*collection.Collection, error)

	// FindPendingSync retrieves collections awaiting sync, oldest first.
	FindPendingSync(ctx context.Context) ([]*collection.Collection, error)

	// FindBySyncStatus retrieves collections in the given status, most recently created first.
	FindBySyncStatus(ctx context.Context, status syncstatus.Status) ([]*collection.Collection, error)

	// FindByProduct retrieves collections of a product.
	FindByProduct(ctx context.Context, productID string) ([]*collection.Collection, error)

	// FindByProducer retrieves collections from a producer.
	FindByProducer(ctx context.Context, producerID string) ([]*collection.Collection, error)

	// FindRecent retrieves the limit newest collections.
	FindRecent(ctx context.Context, limit int) ([]*collection.Collection, error)

	// Update overwrites every mutable column of an existing collection.
	Update(ctx context.Context, c *collection.Collection) error

	// UpdateSyncStatus sets only the sync status of a collection.
	UpdateSyncStatus(ctx context.Context, id string, status syncstatus.Status) error

	// Delete removes a collection.
	Delete(ctx context.Context, id string) error

	// CountAll returns the number of stored collections.
	CountAll(ctx context.Context) (int, error)

	// CountPendingSync returns the number of collections awaiting sync.
	CountPendingSync(ctx context.Context) (int, error)

	// CountByDate returns the number of collections of day, or 0 if the
	// store cannot answer.
	CountByDate(ctx context.Context, day time.Time) int

	// SumQuantityByDate returns the total quantity collected on day, or 0 if
	// the store cannot answer.
	SumQuantityByDate(ctx context.Context, day time.Time) float64
}

// ProductRepository defines the secondary port for product persistence.
type ProductRepository interface {
	// Save inserts the product or overwrites the stored one with the same id.
	Save(ctx context.Context, p *product.Product) error

	// FindByID retrieves a product by its ID.
	FindByID(ctx context.Context, id string) (*product.Product, error)

	// FindAll retrieves every product ordered by name.
	FindAll(ctx context.Context) ([]*product.Product, error)

	// FindByName retrieves products whose name contains name, ignoring case.
	FindByName(ctx context.Context, name string) ([]*product.Product, error)

	// FindByCategory retrieves products of a category.
	FindByCategory(ctx context.Context, category string) ([]*product.Product, error)

	// Update overwrites an existing product.
	Update(ctx context.Context, p *product.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}

// ProducerRepository defines the secondary port for producer persistence.
type ProducerRepository interface {
	// Save inserts the producer or overwrites the stored one with the same id.
	Save(ctx context.Context, p *producer.Producer) error

	// FindByID retrieves a producer by its ID.
	FindByID(ctx context.Context, id string) (*producer.Producer, error)

	// FindAll retrieves every producer ordered by name.
	FindAll(ctx context.Context) ([]*producer.Producer, error)

	// FindByName retrieves producers whose name contains name, ignoring case.
	FindByName(ctx context.Context, name string) ([]*producer.Producer, error)

	// FindByProduct retrieves the producers associated with a product.
	FindByProduct(ctx context.Context, productID string) ([]*producer.Producer, error)

	// Update overwrites an existing producer.
	Update(ctx context.Context, p *producer.Producer) error

	// Delete removes a producer.
	Delete(ctx context.Context, id string) error
}
