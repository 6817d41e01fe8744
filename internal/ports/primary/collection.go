package primary

import (
	"context"
	"time"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/syncstatus"
)

// CollectionService defines the primary port for collection operations.
type CollectionService interface {
	// CreateCollection records a new collection of an existing product from an
	// existing producer.
	CreateCollection(ctx context.Context, req CreateCollectionRequest) (*collection.Collection, error)

	// GetCollection retrieves a collection by ID.
	GetCollection(ctx context.Context, id string) (*collection.Collection, error)

	// ListCollections retrieves collections matching the given filters.
	ListCollections(ctx context.Context, filters CollectionFilters) ([]*collection.Collection, error)

	// ListPendingSync retrieves collections awaiting sync, oldest first.
	ListPendingSync(ctx context.Context) ([]*collection.Collection, error)

	// MarkSynced marks a collection as synchronized.
	MarkSynced(ctx context.Context, id string) error

	// MarkError marks a collection as failed to synchronize.
	MarkError(ctx context.Context, id string) error

	// UpdateQuantity changes the quantity of a collection.
	UpdateQuantity(ctx context.Context, id string, quantity float64) error

	// UpdateNotes replaces the notes of a collection.
	UpdateNotes(ctx context.Context, id, notes string) error

	// DeleteCollection removes a collection.
	DeleteCollection(ctx context.Context, id string) error

	// DailySummary aggregates the collections of a day.
	DailySummary(ctx context.Context, day time.Time) (*DailySummary, error)
}

// CreateCollectionRequest contains parameters for creating a collection.
type CreateCollectionRequest struct {
	ProductID    string
	ProducerID   string
	Quantity     float64
	Unit         string
	TechnicianID string
	Notes        string
}

// CollectionFilters contains filter options for listing collections.
// At most one of Date, From/To, ProductID, ProducerID and Status is applied,
// in that order of precedence. Limit caps the result when positive.
type CollectionFilters struct {
	Date       *time.Time
	From       *time.Time
	To         *time.Time
	ProductID  string
	ProducerID string
	Status     syncstatus.Status
	Limit      int
}

// DailySummary contains the aggregates of one day.
type DailySummary struct {
	Day           time.Time
	Count         int
	TotalQuantity float64
	Pending       int
}
