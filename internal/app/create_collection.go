package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/logging"
	"github.com/example/feira/internal/ports/secondary"
)

// CreateCollectionCommand carries the input of CreateCollectionUseCase.
type CreateCollectionCommand struct {
	ProductID    string
	ProducerID   string
	Quantity     float64
	Unit         string
	TechnicianID string
	Notes        string
}

// CreateCollectionUseCase records a collection after checking that the
// referenced product and producer exist.
type CreateCollectionUseCase struct {
	collections secondary.CollectionRepository
	products    secondary.ProductRepository
	producers   secondary.ProducerRepository
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewCreateCollectionUseCase creates the use case with injected dependencies.
func NewCreateCollectionUseCase(
	collections secondary.CollectionRepository,
	products secondary.ProductRepository,
	producers secondary.ProducerRepository,
	log logrus.FieldLogger,
) *CreateCollectionUseCase {
	if log == nil {
		log = logging.Discard()
	}
	return &CreateCollectionUseCase{
		collections: collections,
		products:    products,
		producers:   producers,
		log:         log,
		now:         time.Now,
	}
}

// Execute runs the use case. A missing product or producer fails with
// collection.ErrProductNotFound / collection.ErrProducerNotFound and nothing
// is written.
func (u *CreateCollectionUseCase) Execute(ctx context.Context, cmd CreateCollectionCommand) (*collection.Collection, error) {
	guardCtx := collection.CreateContext{
		ProductID:  cmd.ProductID,
		ProducerID: cmd.ProducerID,
	}

	product, err := u.products.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	guardCtx.ProductExists = product != nil

	if guardCtx.ProductExists {
		producer, err := u.producers.FindByID(ctx, cmd.ProducerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load producer: %w", err)
		}
		guardCtx.ProducerExists = producer != nil
	}

	if err := collection.CanCreate(guardCtx).Error(); err != nil {
		u.log.WithFields(logrus.Fields{
			"product_id":  cmd.ProductID,
			"producer_id": cmd.ProducerID,
		}).WithError(err).Warn("collection rejected")
		return nil, err
	}

	c, err := collection.Create(collection.Params{
		ProductID:    cmd.ProductID,
		ProducerID:   cmd.ProducerID,
		Quantity:     cmd.Quantity,
		Unit:         cmd.Unit,
		TechnicianID: cmd.TechnicianID,
		Notes:        cmd.Notes,
	}, u.now())
	if err != nil {
		return nil, err
	}

	if err := u.collections.Save(ctx, c); err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"collection_id": c.ID(),
		"product_id":    c.ProductID(),
		"producer_id":   c.ProducerID(),
	}).Info("collection created")
	return c, nil
}
