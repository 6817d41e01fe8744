package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/example/feira/internal/adapters/remote"
	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/ports/primary"
)

// CollectionAdapter is a thin adapter that translates CLI operations to
// CollectionService calls. Product and producer names are resolved through
// the CatalogService.
type CollectionAdapter struct {
	service primary.CollectionService
	catalog primary.CatalogService
	out     io.Writer
}

// NewCollectionAdapter creates a new CollectionAdapter with the given services.
func NewCollectionAdapter(service primary.CollectionService, catalog primary.CatalogService, out io.Writer) *CollectionAdapter {
	return &CollectionAdapter{
		service: service,
		catalog: catalog,
		out:     out,
	}
}

// Create records a collection and prints its summary.
func (a *CollectionAdapter) Create(ctx context.Context, req primary.CreateCollectionRequest) (*collection.Collection, error) {
	c, err := a.service.CreateCollection(ctx, req)
	if err != nil {
		return nil, err
	}

	// The row is already stored; a failed name lookup only degrades the summary.
	views, lookupErr := a.views(ctx, []*collection.Collection{c})
	v := ToCollectionView(c, "", "")
	if lookupErr == nil {
		v = views[0]
	}
	fmt.Fprintf(a.out, "%s Collection recorded: %s\n", TerminalColor(c.SyncStatus()).Sprint("✓"), v.ID)
	fmt.Fprintf(a.out, "  %s from %s: %s\n", v.ProductName, v.ProducerName, v.DisplayQuantity)
	if lookupErr != nil {
		fmt.Fprintf(a.out, "  (names unavailable: %v)\n", lookupErr)
	}
	return c, nil
}

// List prints collections matching filters as a table.
func (a *CollectionAdapter) List(ctx context.Context, filters primary.CollectionFilters) ([]*collection.Collection, error) {
	items, err := a.service.ListCollections(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No collections found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Record one with:")
		fmt.Fprintln(a.out, "  feira collection create --product 1 --producer 101 --quantity 10")
		return items, nil
	}

	return items, a.table(ctx, items)
}

// Pending prints the collections awaiting sync, oldest first.
func (a *CollectionAdapter) Pending(ctx context.Context) ([]*collection.Collection, error) {
	items, err := a.service.ListPendingSync(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending collections: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing to sync.")
		return items, nil
	}

	fmt.Fprintf(a.out, "%d collection(s) awaiting sync:\n\n", len(items))
	return items, a.table(ctx, items)
}

// Show prints the details of one collection.
func (a *CollectionAdapter) Show(ctx context.Context, id string) (*collection.Collection, error) {
	c, err := a.service.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := a.views(ctx, []*collection.Collection{c})
	if err != nil {
		return nil, err
	}
	v := views[0]

	fmt.Fprintf(a.out, "\nCollection: %s\n", v.ID)
	fmt.Fprintf(a.out, "Product:    %s (%s)\n", v.ProductName, v.ProductID)
	fmt.Fprintf(a.out, "Producer:   %s (%s)\n", v.ProducerName, v.ProducerID)
	fmt.Fprintf(a.out, "Quantity:   %s\n", v.DisplayQuantity)
	fmt.Fprintf(a.out, "Date:       %s %s\n", v.DisplayDate, v.DisplayTime)
	if v.TechnicianID != "" {
		fmt.Fprintf(a.out, "Technician: %s\n", v.TechnicianID)
	}
	if v.Notes != "" {
		fmt.Fprintf(a.out, "Notes:      %s\n", v.Notes)
	}
	fmt.Fprintf(a.out, "Sync:       %s (%s)\n", StatusLabel(v.SyncStatus), v.SyncIcon)
	fmt.Fprintln(a.out)

	return c, nil
}

// MarkSynced marks a collection as synchronized.
func (a *CollectionAdapter) MarkSynced(ctx context.Context, id string) error {
	if err := a.service.MarkSynced(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Collection %s marked as synced\n", id)
	return nil
}

// MarkError marks a collection as failed to synchronize.
func (a *CollectionAdapter) MarkError(ctx context.Context, id string) error {
	if err := a.service.MarkError(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Collection %s marked as sync error\n", id)
	return nil
}

// SetQuantity changes the quantity of a collection.
func (a *CollectionAdapter) SetQuantity(ctx context.Context, id string, quantity float64) error {
	if err := a.service.UpdateQuantity(ctx, id, quantity); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Collection %s quantity set to %s\n", id, strconv.FormatFloat(quantity, 'f', -1, 64))
	return nil
}

// Note replaces the notes of a collection.
func (a *CollectionAdapter) Note(ctx context.Context, id, notes string) error {
	if err := a.service.UpdateNotes(ctx, id, notes); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Collection %s notes updated\n", id)
	return nil
}

// Delete removes a collection.
func (a *CollectionAdapter) Delete(ctx context.Context, id string) error {
	if err := a.service.DeleteCollection(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Collection %s deleted\n", id)
	return nil
}

// Stats prints the summary of one day.
func (a *CollectionAdapter) Stats(ctx context.Context, day time.Time) (*primary.DailySummary, error) {
	summary, err := a.service.DailySummary(ctx, day)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nDay:         %s\n", day.Format(DateLayout))
	fmt.Fprintf(a.out, "Collections: %d\n", summary.Count)
	fmt.Fprintf(a.out, "Total:       %s\n", strconv.FormatFloat(summary.TotalQuantity, 'f', -1, 64))
	fmt.Fprintf(a.out, "Pending:     %d\n", summary.Pending)
	fmt.Fprintln(a.out)
	return summary, nil
}

// Export writes collections matching filters as a JSON batch for the server.
// With pendingOnly, filters are ignored and the pending queue is exported.
func (a *CollectionAdapter) Export(ctx context.Context, filters primary.CollectionFilters, pendingOnly bool, deviceID string, now time.Time) (int, error) {
	var (
		items []*collection.Collection
		err   error
	)
	if pendingOnly {
		items, err = a.service.ListPendingSync(ctx)
	} else {
		items, err = a.service.ListCollections(ctx, filters)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load collections: %w", err)
	}

	if err := remote.EncodeBatch(a.out, deviceID, remote.ToRemoteList(items, deviceID), now); err != nil {
		return 0, err
	}
	return len(items), nil
}

func (a *CollectionAdapter) table(ctx context.Context, items []*collection.Collection) error {
	views, err := a.views(ctx, items)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTIME\tPRODUCT\tPRODUCER\tQUANTITY\tSYNC")
	fmt.Fprintln(w, "--\t----\t----\t-------\t--------\t--------\t----")
	for _, v := range views {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID,
			v.DisplayDate,
			v.DisplayTime,
			v.ProductName,
			v.ProducerName,
			v.DisplayQuantity,
			StatusLabel(v.SyncStatus),
		)
	}
	return w.Flush()
}

// views resolves product and producer names for items.
func (a *CollectionAdapter) views(ctx context.Context, items []*collection.Collection) ([]CollectionView, error) {
	products, err := a.catalog.ListProducts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	producers, err := a.catalog.ListProducers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load producers: %w", err)
	}

	productNames := make(map[string]string, len(products))
	for _, p := range products {
		productNames[p.ID()] = p.Name()
	}
	producerNames := make(map[string]string, len(producers))
	for _, p := range producers {
		producerNames[p.ID()] = p.Name()
	}

	views := make([]CollectionView, len(items))
	for i, c := range items {
		views[i] = ToCollectionView(c, productNames[c.ProductID()], producerNames[c.ProducerID()])
	}
	return views, nil
}
