package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/feira/internal/adapters/remote"
	"github.com/example/feira/internal/adapters/sqlite"
	"github.com/example/feira/internal/app"
	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/db"
	"github.com/example/feira/internal/logging"
	"github.com/example/feira/internal/ports/primary"
)

type adapters struct {
	out         *bytes.Buffer
	collections *CollectionAdapter
	catalog     *CatalogAdapter
}

// newAdapters wires both adapters over a seeded in-memory store.
func newAdapters(t *testing.T) *adapters {
	t.Helper()
	ctx := context.Background()

	database := db.New(db.MemoryPath, logging.Discard())
	require.NoError(t, database.Open(ctx))
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.SeedInitialData(ctx, database))

	collectionRepo := sqlite.NewCollectionRepository(database, logging.Discard())
	productRepo := sqlite.NewProductRepository(database)
	producerRepo := sqlite.NewProducerRepository(database)

	create := app.NewCreateCollectionUseCase(collectionRepo, productRepo, producerRepo, logging.Discard())
	collectionService := app.NewCollectionService(collectionRepo, create)
	catalogService := app.NewCatalogService(productRepo, producerRepo)

	out := &bytes.Buffer{}
	return &adapters{
		out:         out,
		collections: NewCollectionAdapter(collectionService, catalogService, out),
		catalog:     NewCatalogAdapter(catalogService, out),
	}
}

func TestCollectionAdapter_CreateListShow(t *testing.T) {
	a := newAdapters(t)
	ctx := context.Background()

	c, err := a.collections.Create(ctx, primary.CreateCollectionRequest{
		ProductID: "1", ProducerID: "101", Quantity: 10, Unit: "kg", Notes: "caixa 3",
	})
	require.NoError(t, err)
	assert.Contains(t, a.out.String(), "Collection recorded: "+c.ID())
	assert.Contains(t, a.out.String(), "Alface from João Silva: 10 kg")

	a.out.Reset()
	items, err := a.collections.List(ctx, primary.CollectionFilters{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	output := a.out.String()
	assert.Contains(t, output, "PRODUCT")
	assert.Contains(t, output, "Alface")
	assert.Contains(t, output, "PENDING")

	a.out.Reset()
	_, err = a.collections.Show(ctx, c.ID())
	require.NoError(t, err)
	assert.Contains(t, a.out.String(), "Notes:      caixa 3")
	assert.Contains(t, a.out.String(), "(clock)")
}

func TestCollectionAdapter_CreateMissingProducer(t *testing.T) {
	a := newAdapters(t)

	_, err := a.collections.Create(context.Background(), primary.CreateCollectionRequest{
		ProductID: "1", ProducerID: "999", Quantity: 1, Unit: "kg",
	})
	assert.True(t, errors.Is(err, collection.ErrProducerNotFound))
	assert.Empty(t, a.out.String())
}

// unavailableCatalog fails every product listing.
type unavailableCatalog struct {
	primary.CatalogService
}

func (unavailableCatalog) ListProducts(context.Context, string) ([]*product.Product, error) {
	return nil, errors.New("catalog offline")
}

func TestCollectionAdapter_CreateSurvivesNameLookupFailure(t *testing.T) {
	a := newAdapters(t)
	ctx := context.Background()
	adapter := NewCollectionAdapter(a.collections.service, unavailableCatalog{a.collections.catalog}, a.out)

	c, err := adapter.Create(ctx, primary.CreateCollectionRequest{
		ProductID: "1", ProducerID: "101", Quantity: 3, Unit: "kg",
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	output := a.out.String()
	assert.Contains(t, output, "Collection recorded: "+c.ID())
	assert.Contains(t, output, UnknownProductName+" from "+UnknownProducerName+": 3 kg")
	assert.Contains(t, output, "catalog offline")

	stored, err := a.collections.service.GetCollection(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, c.ID(), stored.ID())
}

func TestCollectionAdapter_EmptyList(t *testing.T) {
	a := newAdapters(t)

	items, err := a.collections.List(context.Background(), primary.CollectionFilters{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Contains(t, a.out.String(), "No collections found.")
}

func TestCollectionAdapter_PendingAndMark(t *testing.T) {
	a := newAdapters(t)
	ctx := context.Background()

	c, err := a.collections.Create(ctx, primary.CreateCollectionRequest{
		ProductID: "2", ProducerID: "101", Quantity: 4, Unit: "kg",
	})
	require.NoError(t, err)

	a.out.Reset()
	pending, err := a.collections.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Contains(t, a.out.String(), "1 collection(s) awaiting sync")

	require.NoError(t, a.collections.MarkSynced(ctx, c.ID()))

	a.out.Reset()
	pending, err = a.collections.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Contains(t, a.out.String(), "Nothing to sync.")

	require.NoError(t, a.collections.SetQuantity(ctx, c.ID(), 4.5))
	require.NoError(t, a.collections.Note(ctx, c.ID(), "revisado"))
	require.NoError(t, a.collections.MarkError(ctx, c.ID()))
	assert.Contains(t, a.out.String(), "quantity set to 4.5")

	require.NoError(t, a.collections.Delete(ctx, c.ID()))
	err = a.collections.Delete(ctx, c.ID())
	assert.True(t, errors.Is(err, collection.ErrCollectionNotFound))
}

func TestCollectionAdapter_StatsAndExport(t *testing.T) {
	a := newAdapters(t)
	ctx := context.Background()

	for _, q := range []float64{2, 3.5} {
		_, err := a.collections.Create(ctx, primary.CreateCollectionRequest{
			ProductID: "3", ProducerID: "102", Quantity: q, Unit: "kg",
		})
		require.NoError(t, err)
	}

	a.out.Reset()
	summary, err := a.collections.Stats(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 5.5, summary.TotalQuantity)
	assert.Equal(t, 2, summary.Pending)
	assert.Contains(t, a.out.String(), "Total:       5.5")

	a.out.Reset()
	n, err := a.collections.Export(ctx, primary.CollectionFilters{}, true, "tablet-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	batch, err := remote.DecodeBatch(strings.NewReader(a.out.String()))
	require.NoError(t, err)
	assert.Equal(t, "tablet-1", batch.DeviceID)
	require.Len(t, batch.Collections, 2)
	assert.Equal(t, "102", batch.Collections[0].ProducerID)
}

func TestCatalogAdapter(t *testing.T) {
	a := newAdapters(t)
	ctx := context.Background()

	products, err := a.catalog.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, products, 8)
	assert.Contains(t, a.out.String(), "Abóbora")

	a.out.Reset()
	_, err = a.catalog.ShowProduct(ctx, "1")
	require.NoError(t, err)
	assert.Contains(t, a.out.String(), "Alface crespa")
	assert.Contains(t, a.out.String(), "101 João Silva")

	a.out.Reset()
	found, err := a.catalog.SearchProducers(ctx, "maria")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Contains(t, a.out.String(), "(11) 98888-8888")

	p, err := a.catalog.CreateProduct(ctx, primary.CreateProductRequest{Name: "Pepino", DefaultUnit: "kg", Category: "legume"})
	require.NoError(t, err)
	assert.Contains(t, a.out.String(), "Pepino (kg)")

	a.out.Reset()
	none, err := a.catalog.ListProducers(ctx, p.ID())
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Contains(t, a.out.String(), "No producers found.")

	pr, err := a.catalog.CreateProducer(ctx, primary.CreateProducerRequest{Name: "Ana Costa"})
	require.NoError(t, err)
	require.NoError(t, a.catalog.UpdateContact(ctx, pr.ID(), "(21) 95555-5555"))

	a.out.Reset()
	_, err = a.catalog.ShowProducer(ctx, pr.ID())
	require.NoError(t, err)
	assert.Contains(t, a.out.String(), "Contact: (21) 95555-5555")

	_, err = a.catalog.ShowProducer(ctx, "missing")
	assert.True(t, errors.Is(err, collection.ErrProducerNotFound))
}
