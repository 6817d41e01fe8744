package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type seedProduct struct {
	id, name, unit, description, category string
}

type seedProducer struct {
	id, name, phone string
}

// Reference data shipped with every install. Ids are fixed so that repeated
// seeding stays a no-op.
var (
	seedProducts = []seedProduct{
		{"1", "Alface", "kg", "Alface crespa", "verdura"},
		{"2", "Tomate", "kg", "Tomate vermelho", "legume"},
		{"3", "Cenoura", "kg", "Cenoura orgânica", "legume"},
		{"4", "Batata", "kg", "Batata inglesa", "legume"},
		{"5", "Cebola", "kg", "Cebola roxa", "legume"},
		{"6", "Couve", "maço", "Couve manteiga", "verdura"},
		{"7", "Abóbora", "un", "Abóbora moranga", "legume"},
		{"8", "Limão", "kg", "Limão tahiti", "fruta"},
	}

	seedProducers = []seedProducer{
		{"101", "João Silva", "(11) 99999-9999"},
		{"102", "Maria Santos", "(11) 98888-8888"},
		{"103", "José Oliveira", "(11) 97777-7777"},
	}

	// product id -> producer id
	seedAssociations = [][2]string{
		{"1", "101"},
		{"2", "101"},
		{"3", "102"},
		{"4", "102"},
		{"5", "103"},
	}
)

// SeedInitialData inserts the default products, producers and their
// associations in one transaction. Existing rows are left untouched, so the
// routine can run on every start.
func SeedInitialData(ctx context.Context, database *Database) error {
	now := time.Now().UnixMilli()

	err := database.Transaction(ctx, func(ctx context.Context, tx *Tx) error {
		for _, p := range seedProducts {
			if _, err := tx.Execute(ctx,
				`INSERT OR IGNORE INTO products
				 (id, nome, unidade_padrao, descricao, categoria, sync_status, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, 'SYNCED', ?, ?)`,
				p.id, p.name, p.unit, p.description, p.category, now, now,
			); err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
		}

		for _, p := range seedProducers {
			if _, err := tx.Execute(ctx,
				`INSERT OR IGNORE INTO producers
				 (id, nome, telefone, sync_status, created_at, updated_at)
				 VALUES (?, ?, ?, 'SYNCED', ?, ?)`,
				p.id, p.name, p.phone, now, now,
			); err != nil {
				return fmt.Errorf("seed producers: %w", err)
			}
		}

		for _, a := range seedAssociations {
			if _, err := tx.Execute(ctx,
				"INSERT OR IGNORE INTO product_producer (product_id, producer_id) VALUES (?, ?)",
				a[0], a[1],
			); err != nil {
				return fmt.Errorf("seed product_producer: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		database.log.WithError(err).Error("failed to seed initial data")
		return err
	}

	database.log.WithFields(logrus.Fields{
		"products":  len(seedProducts),
		"producers": len(seedProducers),
	}).Info("initial data seeded")
	return nil
}

// NeedsSeed reports whether the catalog is empty, i.e. this is a first run.
func NeedsSeed(ctx context.Context, database *Database) (bool, error) {
	n, err := database.Count(ctx, "products", "")
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
