package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/syncstatus"
	"github.com/example/feira/internal/db"
	"github.com/example/feira/internal/logging"
	"github.com/example/feira/internal/ports/secondary"
)

// DefaultRecentLimit is used by FindRecent when no positive limit is given.
const DefaultRecentLimit = 10

// CollectionRepository implements secondary.CollectionRepository with SQLite.
type CollectionRepository struct {
	db     *db.Database
	log    logrus.FieldLogger
	mapper CollectionMapper
	now    func() time.Time
}

// NewCollectionRepository creates a new SQLite collection repository.
func NewCollectionRepository(database *db.Database, log logrus.FieldLogger) *CollectionRepository {
	if log == nil {
		log = logging.Discard()
	}
	return &CollectionRepository{
		db:  database,
		log: log.WithField("repository", "collection"),
		now: time.Now,
	}
}

// WithClock replaces the clock used to stamp created_at/updated_at.
func (r *CollectionRepository) WithClock(now func() time.Time) *CollectionRepository {
	r.now = now
	return r
}

// Save inserts the collection, or overwrites the stored one while keeping its
// created_at.
func (r *CollectionRepository) Save(ctx context.Context, c *collection.Collection) error {
	row := r.mapper.ToRow(c)
	stamp := r.now().UnixMilli()

	_, err := r.db.Execute(ctx,
		`INSERT INTO collections (`+collectionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			product_id = excluded.product_id,
			producer_id = excluded.producer_id,
			quantidade = excluded.quantidade,
			unidade = excluded.unidade,
			data_coleta = excluded.data_coleta,
			tecnico_id = excluded.tecnico_id,
			observacoes = excluded.observacoes,
			sync_status = excluded.sync_status,
			updated_at = excluded.updated_at`,
		row.ID, row.ProductID, row.ProducerID, row.Quantity, row.Unit, row.CollectedAt,
		row.TechnicianID, row.Notes, row.SyncStatus, stamp, stamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// FindByID retrieves a collection by its ID. It returns nil, nil when absent.
func (r *CollectionRepository) FindByID(ctx context.Context, id string) (*collection.Collection, error) {
	var row CollectionRow
	found, err := r.db.QuerySingle(ctx, &row,
		"SELECT "+collectionColumns+" FROM collections WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to find collection: %w", err)
	}
	if !found {
		return nil, nil
	}

	c, err := r.mapper.ToDomain(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find collection: %w", err)
	}
	return c, nil
}

// FindAll retrieves every collection, newest first.
func (r *CollectionRepository) FindAll(ctx context.Context) ([]*collection.Collection, error) {
	return r.list(ctx, "find collections",
		"SELECT "+collectionColumns+" FROM collections ORDER BY data_coleta DESC")
}

// FindByDate retrieves the collections of day's local calendar day, newest first.
func (r *CollectionRepository) FindByDate(ctx context.Context, day time.Time) ([]*collection.Collection, error) {
	start, end := dayBounds(day, day)
	return r.list(ctx, "find collections by date",
		"SELECT "+collectionColumns+" FROM collections WHERE data_coleta BETWEEN ? AND ? ORDER BY data_coleta DESC",
		start, end)
}

// FindByPeriod retrieves collections from the start of start's day to the end
// of end's day, newest first.
func (r *CollectionRepository) FindByPeriod(ctx context.Context, start, end time.Time) ([]*collection.Collection, error) {
	from, to := dayBounds(start, end)
	return r.list(ctx, "find collections by period",
		"SELECT "+collectionColumns+" FROM collections WHERE data_coleta BETWEEN ? AND ? ORDER BY data_coleta DESC",
		from, to)
}

// FindPendingSync retrieves collections awaiting sync, oldest created first.
func (r *CollectionRepository) FindPendingSync(ctx context.Context) ([]*collection.Collection, error) {
	return r.list(ctx, "find pending collections",
		"SELECT "+collectionColumns+" FROM collections WHERE sync_status = ? ORDER BY created_at ASC, data_coleta ASC",
		syncstatus.Pending.String())
}

// FindBySyncStatus retrieves collections in status, most recently created first.
func (r *CollectionRepository) FindBySyncStatus(ctx context.Context, status syncstatus.Status) ([]*collection.Collection, error) {
	return r.list(ctx, "find collections by status",
		"SELECT "+collectionColumns+" FROM collections WHERE sync_status = ? ORDER BY created_at DESC, data_coleta DESC",
		status.String())
}

// FindByProduct retrieves collections of a product, newest first.
func (r *CollectionRepository) FindByProduct(ctx context.Context, productID string) ([]*collection.Collection, error) {
	return r.list(ctx, "find collections by product",
		"SELECT "+collectionColumns+" FROM collections WHERE product_id = ? ORDER BY data_coleta DESC",
		productID)
}

// FindByProducer retrieves collections from a producer, newest first.
func (r *CollectionRepository) FindByProducer(ctx context.Context, producerID string) ([]*collection.Collection, error) {
	return r.list(ctx, "find collections by producer",
		"SELECT "+collectionColumns+" FROM collections WHERE producer_id = ? ORDER BY data_coleta DESC",
		producerID)
}

// FindRecent retrieves the newest limit collections.
func (r *CollectionRepository) FindRecent(ctx context.Context, limit int) ([]*collection.Collection, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return r.list(ctx, "find recent collections",
		"SELECT "+collectionColumns+" FROM collections ORDER BY data_coleta DESC LIMIT ?",
		limit)
}

// Update overwrites an existing collection. An unknown id changes nothing.
func (r *CollectionRepository) Update(ctx context.Context, c *collection.Collection) error {
	row := r.mapper.ToRow(c)

	_, err := r.db.Execute(ctx,
		`UPDATE collections SET
			product_id = ?, producer_id = ?, quantidade = ?, unidade = ?, data_coleta = ?,
			tecnico_id = ?, observacoes = ?, sync_status = ?, updated_at = ?
		 WHERE id = ?`,
		row.ProductID, row.ProducerID, row.Quantity, row.Unit, row.CollectedAt,
		row.TechnicianID, row.Notes, row.SyncStatus, r.now().UnixMilli(),
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	return nil
}

// UpdateSyncStatus sets the sync status of a collection.
func (r *CollectionRepository) UpdateSyncStatus(ctx context.Context, id string, status syncstatus.Status) error {
	_, err := r.db.Execute(ctx,
		"UPDATE collections SET sync_status = ?, updated_at = ? WHERE id = ?",
		status.String(), r.now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update collection sync status: %w", err)
	}
	return nil
}

// Delete removes a collection. An unknown id changes nothing.
func (r *CollectionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Execute(ctx, "DELETE FROM collections WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

// CountAll returns the number of stored collections.
func (r *CollectionRepository) CountAll(ctx context.Context) (int, error) {
	n, err := r.db.Count(ctx, "collections", "")
	if err != nil {
		return 0, fmt.Errorf("failed to count collections: %w", err)
	}
	return n, nil
}

// CountPendingSync returns the number of collections awaiting sync.
func (r *CollectionRepository) CountPendingSync(ctx context.Context) (int, error) {
	n, err := r.db.Count(ctx, "collections", "sync_status = ?", syncstatus.Pending.String())
	if err != nil {
		return 0, fmt.Errorf("failed to count pending collections: %w", err)
	}
	return n, nil
}

// CountByDate returns the number of collections on day. Storage failures are
// logged and reported as 0.
func (r *CollectionRepository) CountByDate(ctx context.Context, day time.Time) int {
	start, end := dayBounds(day, day)
	n, err := r.db.Count(ctx, "collections", "data_coleta BETWEEN ? AND ?", start, end)
	if err != nil {
		r.log.WithError(err).WithField("day", day.Format(time.DateOnly)).Warn("failed to count collections by date")
		return 0
	}
	return n
}

// SumQuantityByDate returns the total quantity collected on day. Storage
// failures are logged and reported as 0.
func (r *CollectionRepository) SumQuantityByDate(ctx context.Context, day time.Time) float64 {
	start, end := dayBounds(day, day)

	var total float64
	_, err := r.db.QuerySingle(ctx, &total,
		"SELECT COALESCE(SUM(quantidade), 0.0) FROM collections WHERE data_coleta BETWEEN ? AND ?",
		start, end)
	if err != nil {
		r.log.WithError(err).WithField("day", day.Format(time.DateOnly)).Warn("failed to sum collection quantity by date")
		return 0
	}
	return total
}

func (r *CollectionRepository) list(ctx context.Context, op, query string, args ...any) ([]*collection.Collection, error) {
	var rows []CollectionRow
	if err := r.db.Query(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	out, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return out, nil
}

// dayBounds returns epoch-ms bounds from the first local millisecond of
// start's day to the last local millisecond of end's day.
func dayBounds(start, end time.Time) (int64, int64) {
	s := start.In(time.Local)
	e := end.In(time.Local)

	from := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.Local)
	to := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1).Add(-time.Millisecond)
	return from.UnixMilli(), to.UnixMilli()
}

var _ secondary.CollectionRepository = (*CollectionRepository)(nil)
