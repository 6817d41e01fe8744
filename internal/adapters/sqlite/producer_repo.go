package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/db"
	"github.com/example/feira/internal/ports/secondary"
)

// ProducerRepository implements secondary.ProducerRepository with SQLite.
type ProducerRepository struct {
	db     *db.Database
	mapper ProducerMapper
	now    func() time.Time
}

// NewProducerRepository creates a new SQLite producer repository.
func NewProducerRepository(database *db.Database) *ProducerRepository {
	return &ProducerRepository{db: database, now: time.Now}
}

// Save inserts the producer, or overwrites the stored one while keeping its
// created_at.
func (r *ProducerRepository) Save(ctx context.Context, p *producer.Producer) error {
	row := r.mapper.ToRow(p)
	stamp := r.now().UnixMilli()

	_, err := r.db.Execute(ctx,
		`INSERT INTO producers (`+producerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			nome = excluded.nome,
			cpf_cnpj = excluded.cpf_cnpj,
			telefone = excluded.telefone,
			endereco = excluded.endereco,
			sync_status = excluded.sync_status,
			updated_at = excluded.updated_at`,
		row.ID, row.Name, row.TaxID, row.Phone, row.Address, row.SyncStatus, stamp, stamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save producer: %w", err)
	}
	return nil
}

// FindByID retrieves a producer by its ID. It returns nil, nil when absent.
func (r *ProducerRepository) FindByID(ctx context.Context, id string) (*producer.Producer, error) {
	var row ProducerRow
	found, err := r.db.QuerySingle(ctx, &row,
		"SELECT "+producerColumns+" FROM producers WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to find producer: %w", err)
	}
	if !found {
		return nil, nil
	}

	p, err := r.mapper.ToDomain(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find producer: %w", err)
	}
	return p, nil
}

// FindAll retrieves every producer ordered by name.
func (r *ProducerRepository) FindAll(ctx context.Context) ([]*producer.Producer, error) {
	return r.list(ctx, "find producers",
		"SELECT "+producerColumns+" FROM producers ORDER BY nome ASC")
}

// FindByName retrieves producers whose name contains name.
func (r *ProducerRepository) FindByName(ctx context.Context, name string) ([]*producer.Producer, error) {
	return r.list(ctx, "find producers by name",
		"SELECT "+producerColumns+` FROM producers WHERE nome LIKE ? ESCAPE '\' ORDER BY nome ASC`,
		containsPattern(name))
}

// FindByProduct retrieves the producers linked to a product ordered by name.
func (r *ProducerRepository) FindByProduct(ctx context.Context, productID string) ([]*producer.Producer, error) {
	return r.list(ctx, "find producers by product",
		`SELECT p.id, p.nome, p.cpf_cnpj, p.telefone, p.endereco, p.sync_status, p.created_at, p.updated_at
		 FROM producers p
		 INNER JOIN product_producer pp ON pp.producer_id = p.id
		 WHERE pp.product_id = ?
		 ORDER BY p.nome ASC`,
		productID)
}

// Update overwrites an existing producer. An unknown id changes nothing.
func (r *ProducerRepository) Update(ctx context.Context, p *producer.Producer) error {
	row := r.mapper.ToRow(p)

	_, err := r.db.Execute(ctx,
		`UPDATE producers SET
			nome = ?, cpf_cnpj = ?, telefone = ?, endereco = ?, sync_status = ?, updated_at = ?
		 WHERE id = ?`,
		row.Name, row.TaxID, row.Phone, row.Address, row.SyncStatus, r.now().UnixMilli(),
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update producer: %w", err)
	}
	return nil
}

// Delete removes a producer and, through the cascade, its product links.
func (r *ProducerRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Execute(ctx, "DELETE FROM producers WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete producer: %w", err)
	}
	return nil
}

func (r *ProducerRepository) list(ctx context.Context, op, query string, args ...any) ([]*producer.Producer, error) {
	var rows []ProducerRow
	if err := r.db.Query(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	out, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return out, nil
}

var _ secondary.ProducerRepository = (*ProducerRepository)(nil)
