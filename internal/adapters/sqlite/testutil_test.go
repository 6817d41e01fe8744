// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database is opened for tests.
// db.Database.Open applies db.GetSchemaSQL(), so tests always run against the
// authoritative schema. Do not declare CREATE TABLE statements in test files;
// use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/db"
)

// setupTestDB opens a private in-memory database with the schema applied.
func setupTestDB(t *testing.T) *db.Database {
	t.Helper()

	database := db.New(db.MemoryPath, nil)
	if err := database.Open(context.Background()); err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

// seedProduct inserts a product row and returns its ID.
func seedProduct(t *testing.T, database *db.Database, id, name string) string {
	t.Helper()
	_, err := database.Execute(context.Background(),
		"INSERT INTO products (id, nome, unidade_padrao) VALUES (?, ?, 'kg')", id, name)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return id
}

// seedProducer inserts a producer row and returns its ID.
func seedProducer(t *testing.T, database *db.Database, id, name string) string {
	t.Helper()
	_, err := database.Execute(context.Background(),
		"INSERT INTO producers (id, nome) VALUES (?, ?)", id, name)
	if err != nil {
		t.Fatalf("failed to seed producer: %v", err)
	}
	return id
}

// linkProducer associates a producer with a product.
func linkProducer(t *testing.T, database *db.Database, productID, producerID string) {
	t.Helper()
	_, err := database.Execute(context.Background(),
		"INSERT INTO product_producer (product_id, producer_id) VALUES (?, ?)", productID, producerID)
	if err != nil {
		t.Fatalf("failed to link producer: %v", err)
	}
}

// newCollection builds a valid collection of quantity kg at the given time.
func newCollection(t *testing.T, id string, quantity float64, at time.Time) *collection.Collection {
	t.Helper()
	c, err := collection.New(collection.Params{
		ID:          id,
		ProductID:   "1",
		ProducerID:  "101",
		Quantity:    quantity,
		Unit:        "kg",
		CollectedAt: at,
	})
	if err != nil {
		t.Fatalf("failed to build collection: %v", err)
	}
	return c
}

// day returns a local time on 2024-03-<d> at hour:00.
func day(d, hour int) time.Time {
	return time.Date(2024, time.March, d, hour, 0, 0, 0, time.Local)
}

// fixedClock returns a clock that advances one second per call, starting at start.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
}

func ids(items []*collection.Collection) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.ID()
	}
	return out
}
