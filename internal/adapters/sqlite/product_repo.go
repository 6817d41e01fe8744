package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/db"
	"github.com/example/feira/internal/ports/secondary"
)

// ProductRepository implements secondary.ProductRepository with SQLite.
type ProductRepository struct {
	db     *db.Database
	mapper ProductMapper
	now    func() time.Time
}

// NewProductRepository creates a new SQLite product repository.
func NewProductRepository(database *db.Database) *ProductRepository {
	return &ProductRepository{db: database, now: time.Now}
}

// Save inserts the product, or overwrites the stored one while keeping its
// created_at.
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	row := r.mapper.ToRow(p)
	stamp := r.now().UnixMilli()

	_, err := r.db.Execute(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			nome = excluded.nome,
			unidade_padrao = excluded.unidade_padrao,
			descricao = excluded.descricao,
			categoria = excluded.categoria,
			sync_status = excluded.sync_status,
			updated_at = excluded.updated_at`,
		row.ID, row.Name, row.DefaultUnit, row.Description, row.Category, row.SyncStatus, stamp, stamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID. It returns nil, nil when absent.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var row ProductRow
	found, err := r.db.QuerySingle(ctx, &row,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if !found {
		return nil, nil
	}

	p, err := r.mapper.ToDomain(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

// FindAll retrieves every product ordered by name.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	return r.list(ctx, "find products",
		"SELECT "+productColumns+" FROM products ORDER BY nome ASC")
}

// FindByName retrieves products whose name contains name.
func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]*product.Product, error) {
	return r.list(ctx, "find products by name",
		"SELECT "+productColumns+` FROM products WHERE nome LIKE ? ESCAPE '\' ORDER BY nome ASC`,
		containsPattern(name))
}

// FindByCategory retrieves products of a category ordered by name.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]*product.Product, error) {
	return r.list(ctx, "find products by category",
		"SELECT "+productColumns+" FROM products WHERE categoria = ? ORDER BY nome ASC",
		category)
}

// Update overwrites an existing product. An unknown id changes nothing.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	row := r.mapper.ToRow(p)

	_, err := r.db.Execute(ctx,
		`UPDATE products SET
			nome = ?, unidade_padrao = ?, descricao = ?, categoria = ?, sync_status = ?, updated_at = ?
		 WHERE id = ?`,
		row.Name, row.DefaultUnit, row.Description, row.Category, row.SyncStatus, r.now().UnixMilli(),
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product and, through the cascade, its producer links.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Execute(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *ProductRepository) list(ctx context.Context, op, query string, args ...any) ([]*product.Product, error) {
	var rows []ProductRow
	if err := r.db.Query(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	out, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return out, nil
}

// containsPattern builds a LIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

var _ secondary.ProductRepository = (*ProductRepository)(nil)
