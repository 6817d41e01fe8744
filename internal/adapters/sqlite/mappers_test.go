package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/feira/internal/adapters/sqlite"
	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/core/syncstatus"
	"github.com/example/feira/internal/core/validation"
)

func TestCollectionMapper_RoundTrip(t *testing.T) {
	var m sqlite.CollectionMapper

	c, err := collection.New(collection.Params{
		ID:           "c1",
		ProductID:    "1",
		ProducerID:   "101",
		Quantity:     12.75,
		Unit:         "kg",
		CollectedAt:  time.Date(2024, 3, 10, 14, 30, 15, 123456789, time.UTC),
		TechnicianID: "tec-9",
		Notes:        "chuva",
		SyncStatus:   syncstatus.Error,
	})
	require.NoError(t, err)

	row := m.ToRow(c)
	assert.Equal(t, "c1", row.ID)
	assert.Equal(t, c.CollectedAt().UnixMilli(), row.CollectedAt)
	assert.Equal(t, sql.NullString{String: "tec-9", Valid: true}, row.TechnicianID)
	assert.Equal(t, "ERROR", row.SyncStatus)
	assert.Zero(t, row.CreatedAt, "timestamps are stamped by the repository")

	back, err := m.ToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, c.ID(), back.ID())
	assert.Equal(t, c.ProductID(), back.ProductID())
	assert.Equal(t, c.ProducerID(), back.ProducerID())
	assert.Equal(t, c.Quantity(), back.Quantity())
	assert.Equal(t, c.Unit(), back.Unit())
	assert.True(t, c.CollectedAt().Equal(back.CollectedAt()))
	assert.Equal(t, c.TechnicianID(), back.TechnicianID())
	assert.Equal(t, c.Notes(), back.Notes())
	assert.Equal(t, c.SyncStatus(), back.SyncStatus())
}

func TestCollectionMapper_OptionalColumnsAreNull(t *testing.T) {
	var m sqlite.CollectionMapper

	c, err := collection.New(collection.Params{
		ProductID: "1", ProducerID: "101", Quantity: 1, Unit: "un", CollectedAt: time.Now(),
	})
	require.NoError(t, err)

	row := m.ToRow(c)
	assert.False(t, row.TechnicianID.Valid)
	assert.False(t, row.Notes.Valid)
}

func TestCollectionMapper_ToDomainRejectsInvalidRows(t *testing.T) {
	var m sqlite.CollectionMapper
	valid := sqlite.CollectionRow{
		ID: "c1", ProductID: "1", ProducerID: "101", Quantity: 1, Unit: "kg",
		CollectedAt: time.Now().UnixMilli(), SyncStatus: "PENDING",
	}

	tests := []struct {
		name   string
		mutate func(r *sqlite.CollectionRow)
		field  string
	}{
		{"unknown status", func(r *sqlite.CollectionRow) { r.SyncStatus = "LOST" }, "syncStatus"},
		{"zero quantity", func(r *sqlite.CollectionRow) { r.Quantity = 0 }, "quantidade"},
		{"blank unit", func(r *sqlite.CollectionRow) { r.Unit = "  " }, "unidade"},
		{"missing product", func(r *sqlite.CollectionRow) { r.ProductID = "" }, "produtoId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := valid
			tt.mutate(&row)
			_, err := m.ToDomain(row)
			require.Error(t, err)
			assert.ErrorIs(t, err, validation.ErrInvalid)
			assert.Equal(t, tt.field, validation.FieldOf(err))
		})
	}

	// Empty status in storage reads as the initial status.
	row := valid
	row.SyncStatus = ""
	c, err := m.ToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, syncstatus.Pending, c.SyncStatus())
}

func TestProductMapper_RoundTrip(t *testing.T) {
	var m sqlite.ProductMapper

	p, err := product.New(product.Params{
		ID: "1", Name: "Alface", DefaultUnit: "kg", Description: "Alface crespa",
		SyncStatus: syncstatus.Synced,
	})
	require.NoError(t, err)

	row := m.ToRow(p)
	assert.False(t, row.Category.Valid)

	back, err := m.ToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, p.ID(), back.ID())
	assert.Equal(t, p.Name(), back.Name())
	assert.Equal(t, p.DefaultUnit(), back.DefaultUnit())
	assert.Equal(t, p.Description(), back.Description())
	assert.Equal(t, p.Category(), back.Category())
	assert.Equal(t, p.SyncStatus(), back.SyncStatus())

	row.Name = ""
	_, err = m.ToDomain(row)
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestProducerMapper_RoundTrip(t *testing.T) {
	var m sqlite.ProducerMapper

	p, err := producer.New(producer.Params{
		ID: "101", Name: "João Silva", Phone: "(11) 99999-9999",
	})
	require.NoError(t, err)

	row := m.ToRow(p)
	assert.False(t, row.TaxID.Valid)
	assert.True(t, row.Phone.Valid)

	back, err := m.ToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, p.ID(), back.ID())
	assert.Equal(t, p.Name(), back.Name())
	assert.Equal(t, p.Phone(), back.Phone())
	assert.Equal(t, p.TaxID(), back.TaxID())
	assert.Equal(t, p.Address(), back.Address())
	assert.Equal(t, p.SyncStatus(), back.SyncStatus())
}
