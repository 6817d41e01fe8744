package app

import (
	"context"
	"sort"
	"time"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/core/syncstatus"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockCollectionRepository implements secondary.CollectionRepository for testing.
type mockCollectionRepository struct {
	collections map[string]*collection.Collection
	saveErr     error
	findErr     error

	saveCalls   int
	lastQuery   string
	countByDate int
	sumByDate   float64
}

func newMockCollectionRepository() *mockCollectionRepository {
	return &mockCollectionRepository{collections: make(map[string]*collection.Collection)}
}

func (m *mockCollectionRepository) Save(ctx context.Context, c *collection.Collection) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.collections[c.ID()] = c
	return nil
}

func (m *mockCollectionRepository) FindByID(ctx context.Context, id string) (*collection.Collection, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.collections[id], nil
}

func (m *mockCollectionRepository) sorted(keep func(*collection.Collection) bool) []*collection.Collection {
	var out []*collection.Collection
	for _, c := range m.collections {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CollectedAt().After(out[j].CollectedAt()) })
	return out
}

func (m *mockCollectionRepository) FindAll(ctx context.Context) ([]*collection.Collection, error) {
	m.lastQuery = "all"
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.sorted(func(*collection.Collection) bool { return true }), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *mockCollectionRepository) FindByDate(ctx context.Context, day time.Time) ([]*collection.Collection, error) {
	m.lastQuery = "date"
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.sorted(func(c *collection.Collection) bool { return sameDay(c.CollectedAt(), day) }), nil
}

func (m *mockCollectionRepository) FindByPeriod(ctx context.Context, start, end time.Time) ([]*collection.Collection, error) {
	m.lastQuery = "period"
	return m.sorted(func(c *collection.Collection) bool {
		at := c.CollectedAt()
		return (sameDay(at, start) || at.After(start)) && (sameDay(at, end) || at.Before(end))
	}), nil
}

func (m *mockCollectionRepository) FindPendingSync(ctx context.Context) ([]*collection.Collection, error) {
	m.lastQuery = "pending"
	return m.sorted(func(c *collection.Collection) bool { return c.SyncStatus() == syncstatus.Pending }), nil
}

func (m *mockCollectionRepository) FindBySyncStatus(ctx context.Context, status syncstatus.Status) ([]*collection.Collection, error) {
	m.lastQuery = "status"
	return m.sorted(func(c *collection.Collection) bool { return c.SyncStatus() == status }), nil
}

func (m *mockCollectionRepository) FindByProduct(ctx context.Context, productID string) ([]*collection.Collection, error) {
	m.lastQuery = "product"
	return m.sorted(func(c *collection.Collection) bool { return c.ProductID() == productID }), nil
}

func (m *mockCollectionRepository) FindByProducer(ctx context.Context, producerID string) ([]*collection.Collection, error) {
	m.lastQuery = "producer"
	return m.sorted(func(c *collection.Collection) bool { return c.ProducerID() == producerID }), nil
}

func (m *mockCollectionRepository) FindRecent(ctx context.Context, limit int) ([]*collection.Collection, error) {
	m.lastQuery = "recent"
	all := m.sorted(func(*collection.Collection) bool { return true })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockCollectionRepository) Update(ctx context.Context, c *collection.Collection) error {
	if _, ok := m.collections[c.ID()]; ok {
		m.collections[c.ID()] = c
	}
	return nil
}

func (m *mockCollectionRepository) UpdateSyncStatus(ctx context.Context, id string, status syncstatus.Status) error {
	c, ok := m.collections[id]
	if !ok {
		return nil
	}
	switch status {
	case syncstatus.Synced:
		c.MarkAsSynced()
	case syncstatus.Error:
		c.MarkAsError()
	}
	return nil
}

func (m *mockCollectionRepository) Delete(ctx context.Context, id string) error {
	delete(m.collections, id)
	return nil
}

func (m *mockCollectionRepository) CountAll(ctx context.Context) (int, error) {
	return len(m.collections), nil
}

func (m *mockCollectionRepository) CountPendingSync(ctx context.Context) (int, error) {
	pending, _ := m.FindPendingSync(ctx)
	return len(pending), nil
}

func (m *mockCollectionRepository) CountByDate(ctx context.Context, day time.Time) int {
	return m.countByDate
}

func (m *mockCollectionRepository) SumQuantityByDate(ctx context.Context, day time.Time) float64 {
	return m.sumByDate
}

// mockProductRepository implements secondary.ProductRepository for testing.
type mockProductRepository struct {
	products map[string]*product.Product
	findErr  error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[string]*product.Product)}
}

func (m *mockProductRepository) add(id, name string) {
	p, _ := product.New(product.Params{ID: id, Name: name, DefaultUnit: "kg"})
	m.products[id] = p
}

func (m *mockProductRepository) Save(ctx context.Context, p *product.Product) error {
	m.products[p.ID()] = p
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.products[id], nil
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (m *mockProductRepository) FindByName(ctx context.Context, name string) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range m.products {
		if p.Name() == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) FindByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	var out []*product.Product
	for _, p := range m.products {
		if p.Category() == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *product.Product) error {
	m.products[p.ID()] = p
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	delete(m.products, id)
	return nil
}

// mockProducerRepository implements secondary.ProducerRepository for testing.
type mockProducerRepository struct {
	producers map[string]*producer.Producer
	links     map[string][]string // productID -> producerIDs
	findCalls int
}

func newMockProducerRepository() *mockProducerRepository {
	return &mockProducerRepository{
		producers: make(map[string]*producer.Producer),
		links:     make(map[string][]string),
	}
}

func (m *mockProducerRepository) add(id, name string) {
	p, _ := producer.New(producer.Params{ID: id, Name: name})
	m.producers[id] = p
}

func (m *mockProducerRepository) Save(ctx context.Context, p *producer.Producer) error {
	m.producers[p.ID()] = p
	return nil
}

func (m *mockProducerRepository) FindByID(ctx context.Context, id string) (*producer.Producer, error) {
	m.findCalls++
	return m.producers[id], nil
}

func (m *mockProducerRepository) FindAll(ctx context.Context) ([]*producer.Producer, error) {
	var out []*producer.Producer
	for _, p := range m.producers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (m *mockProducerRepository) FindByName(ctx context.Context, name string) ([]*producer.Producer, error) {
	var out []*producer.Producer
	for _, p := range m.producers {
		if p.Name() == name {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProducerRepository) FindByProduct(ctx context.Context, productID string) ([]*producer.Producer, error) {
	var out []*producer.Producer
	for _, id := range m.links[productID] {
		if p, ok := m.producers[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProducerRepository) Update(ctx context.Context, p *producer.Producer) error {
	if _, ok := m.producers[p.ID()]; ok {
		m.producers[p.ID()] = p
	}
	return nil
}

func (m *mockProducerRepository) Delete(ctx context.Context, id string) error {
	delete(m.producers, id)
	return nil
}
