package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/syncstatus"
	"github.com/example/feira/internal/ports/primary"
	"github.com/example/feira/internal/ports/secondary"
)

// CollectionServiceImpl implements the CollectionService interface.
type CollectionServiceImpl struct {
	collectionRepo secondary.CollectionRepository
	create         *CreateCollectionUseCase
}

// NewCollectionService creates a new CollectionService with injected dependencies.
func NewCollectionService(collectionRepo secondary.CollectionRepository, create *CreateCollectionUseCase) *CollectionServiceImpl {
	return &CollectionServiceImpl{
		collectionRepo: collectionRepo,
		create:         create,
	}
}

// CreateCollection records a new collection.
func (s *CollectionServiceImpl) CreateCollection(ctx context.Context, req primary.CreateCollectionRequest) (*collection.Collection, error) {
	return s.create.Execute(ctx, CreateCollectionCommand{
		ProductID:    req.ProductID,
		ProducerID:   req.ProducerID,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		TechnicianID: req.TechnicianID,
		Notes:        req.Notes,
	})
}

// GetCollection retrieves a collection by ID.
func (s *CollectionServiceImpl) GetCollection(ctx context.Context, id string) (*collection.Collection, error) {
	c, err := s.collectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", collection.ErrCollectionNotFound, id)
	}
	return c, nil
}

// ListCollections retrieves collections matching the given filters.
func (s *CollectionServiceImpl) ListCollections(ctx context.Context, filters primary.CollectionFilters) ([]*collection.Collection, error) {
	var (
		items []*collection.Collection
		err   error
	)

	switch {
	case filters.Date != nil:
		items, err = s.collectionRepo.FindByDate(ctx, *filters.Date)
	case filters.From != nil || filters.To != nil:
		from, to := periodOf(filters.From, filters.To)
		items, err = s.collectionRepo.FindByPeriod(ctx, from, to)
	case filters.ProductID != "":
		items, err = s.collectionRepo.FindByProduct(ctx, filters.ProductID)
	case filters.ProducerID != "":
		items, err = s.collectionRepo.FindByProducer(ctx, filters.ProducerID)
	case filters.Status != "":
		status, perr := syncstatus.Parse(filters.Status.String())
		if perr != nil {
			return nil, perr
		}
		items, err = s.collectionRepo.FindBySyncStatus(ctx, status)
	case filters.Limit > 0:
		return s.collectionRepo.FindRecent(ctx, filters.Limit)
	default:
		items, err = s.collectionRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if filters.Limit > 0 && len(items) > filters.Limit {
		items = items[:filters.Limit]
	}
	return items, nil
}

// periodOf fills an open end of a period with the other end.
func periodOf(from, to *time.Time) (time.Time, time.Time) {
	switch {
	case from == nil:
		return *to, *to
	case to == nil:
		return *from, *from
	default:
		return *from, *to
	}
}

// ListPendingSync retrieves collections awaiting sync, oldest first.
func (s *CollectionServiceImpl) ListPendingSync(ctx context.Context) ([]*collection.Collection, error) {
	return s.collectionRepo.FindPendingSync(ctx)
}

// MarkSynced marks a collection as synchronized.
func (s *CollectionServiceImpl) MarkSynced(ctx context.Context, id string) error {
	c, err := s.GetCollection(ctx, id)
	if err != nil {
		return err
	}
	c.MarkAsSynced()
	return s.collectionRepo.UpdateSyncStatus(ctx, id, c.SyncStatus())
}

// MarkError marks a collection as failed to synchronize.
func (s *CollectionServiceImpl) MarkError(ctx context.Context, id string) error {
	c, err := s.GetCollection(ctx, id)
	if err != nil {
		return err
	}
	c.MarkAsError()
	return s.collectionRepo.UpdateSyncStatus(ctx, id, c.SyncStatus())
}

// UpdateQuantity changes the quantity of a collection.
func (s *CollectionServiceImpl) UpdateQuantity(ctx context.Context, id string, quantity float64) error {
	c, err := s.GetCollection(ctx, id)
	if err != nil {
		return err
	}
	if err := c.UpdateQuantity(quantity); err != nil {
		return err
	}
	return s.collectionRepo.Update(ctx, c)
}

// UpdateNotes replaces the notes of a collection.
func (s *CollectionServiceImpl) UpdateNotes(ctx context.Context, id, notes string) error {
	c, err := s.GetCollection(ctx, id)
	if err != nil {
		return err
	}
	c.UpdateNotes(notes)
	return s.collectionRepo.Update(ctx, c)
}

// DeleteCollection removes a collection.
func (s *CollectionServiceImpl) DeleteCollection(ctx context.Context, id string) error {
	if _, err := s.GetCollection(ctx, id); err != nil {
		return err
	}
	return s.collectionRepo.Delete(ctx, id)
}

// DailySummary aggregates the collections of day.
func (s *CollectionServiceImpl) DailySummary(ctx context.Context, day time.Time) (*primary.DailySummary, error) {
	items, err := s.collectionRepo.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	pending := 0
	for _, c := range items {
		if c.SyncStatus() == syncstatus.Pending {
			pending++
		}
	}

	return &primary.DailySummary{
		Day:           day,
		Count:         s.collectionRepo.CountByDate(ctx, day),
		TotalQuantity: s.collectionRepo.SumQuantityByDate(ctx, day),
		Pending:       pending,
	}, nil
}

var _ primary.CollectionService = (*CollectionServiceImpl)(nil)
