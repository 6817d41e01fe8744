package sqlite

import (
	"fmt"
	"time"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/core/syncstatus"
)

// Mappers are stateless. ToRow never fails and leaves CreatedAt/UpdatedAt
// zero for the repository to stamp. ToDomain re-runs entity validation, so a
// row that no longer satisfies the entity rules is reported, not loaded.

// CollectionMapper maps between CollectionRow and collection.Collection.
type CollectionMapper struct{}

// ToRow converts a collection to its stored shape.
func (CollectionMapper) ToRow(c *collection.Collection) CollectionRow {
	return CollectionRow{
		ID:           c.ID(),
		ProductID:    c.ProductID(),
		ProducerID:   c.ProducerID(),
		Quantity:     c.Quantity(),
		Unit:         c.Unit(),
		CollectedAt:  c.CollectedAt().UnixMilli(),
		TechnicianID: nullString(c.TechnicianID()),
		Notes:        nullString(c.Notes()),
		SyncStatus:   c.SyncStatus().String(),
	}
}

// ToDomain converts a stored row to a collection.
func (CollectionMapper) ToDomain(row CollectionRow) (*collection.Collection, error) {
	status, err := syncstatus.Parse(row.SyncStatus)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", row.ID, err)
	}

	c, err := collection.New(collection.Params{
		ID:           row.ID,
		ProductID:    row.ProductID,
		ProducerID:   row.ProducerID,
		Quantity:     row.Quantity,
		Unit:         row.Unit,
		CollectedAt:  time.UnixMilli(row.CollectedAt),
		TechnicianID: row.TechnicianID.String,
		Notes:        row.Notes.String,
		SyncStatus:   status,
	})
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", row.ID, err)
	}
	return c, nil
}

// ToDomainList converts rows in order, stopping at the first invalid row.
func (m CollectionMapper) ToDomainList(rows []CollectionRow) ([]*collection.Collection, error) {
	out := make([]*collection.Collection, 0, len(rows))
	for _, row := range rows {
		c, err := m.ToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ProductMapper maps between ProductRow and product.Product.
type ProductMapper struct{}

// ToRow converts a product to its stored shape.
func (ProductMapper) ToRow(p *product.Product) ProductRow {
	return ProductRow{
		ID:          p.ID(),
		Name:        p.Name(),
		DefaultUnit: p.DefaultUnit(),
		Description: nullString(p.Description()),
		Category:    nullString(p.Category()),
		SyncStatus:  p.SyncStatus().String(),
	}
}

// ToDomain converts a stored row to a product.
func (ProductMapper) ToDomain(row ProductRow) (*product.Product, error) {
	status, err := syncstatus.Parse(row.SyncStatus)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", row.ID, err)
	}

	p, err := product.New(product.Params{
		ID:          row.ID,
		Name:        row.Name,
		DefaultUnit: row.DefaultUnit,
		Description: row.Description.String,
		Category:    row.Category.String,
		SyncStatus:  status,
	})
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", row.ID, err)
	}
	return p, nil
}

// ToDomainList converts rows in order, stopping at the first invalid row.
func (m ProductMapper) ToDomainList(rows []ProductRow) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(rows))
	for _, row := range rows {
		p, err := m.ToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ProducerMapper maps between ProducerRow and producer.Producer.
type ProducerMapper struct{}

// ToRow converts a producer to its stored shape.
func (ProducerMapper) ToRow(p *producer.Producer) ProducerRow {
	return ProducerRow{
		ID:         p.ID(),
		Name:       p.Name(),
		TaxID:      nullString(p.TaxID()),
		Phone:      nullString(p.Phone()),
		Address:    nullString(p.Address()),
		SyncStatus: p.SyncStatus().String(),
	}
}

// ToDomain converts a stored row to a producer.
func (ProducerMapper) ToDomain(row ProducerRow) (*producer.Producer, error) {
	status, err := syncstatus.Parse(row.SyncStatus)
	if err != nil {
		return nil, fmt.Errorf("producer %s: %w", row.ID, err)
	}

	p, err := producer.New(producer.Params{
		ID:         row.ID,
		Name:       row.Name,
		TaxID:      row.TaxID.String,
		Phone:      row.Phone.String,
		Address:    row.Address.String,
		SyncStatus: status,
	})
	if err != nil {
		return nil, fmt.Errorf("producer %s: %w", row.ID, err)
	}
	return p, nil
}

// ToDomainList converts rows in order, stopping at the first invalid row.
func (m ProducerMapper) ToDomainList(rows []ProducerRow) ([]*producer.Producer, error) {
	out := make([]*producer.Producer, 0, len(rows))
	for _, row := range rows {
		p, err := m.ToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
