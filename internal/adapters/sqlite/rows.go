// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import "database/sql"

// ProductRow is a products row as stored.
type ProductRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"nome"`
	DefaultUnit string         `db:"unidade_padrao"`
	Description sql.NullString `db:"descricao"`
	Category    sql.NullString `db:"categoria"`
	SyncStatus  string         `db:"sync_status"`
	CreatedAt   int64          `db:"created_at"`
	UpdatedAt   int64          `db:"updated_at"`
}

// ProducerRow is a producers row as stored.
type ProducerRow struct {
	ID         string         `db:"id"`
	Name       string         `db:"nome"`
	TaxID      sql.NullString `db:"cpf_cnpj"`
	Phone      sql.NullString `db:"telefone"`
	Address    sql.NullString `db:"endereco"`
	SyncStatus string         `db:"sync_status"`
	CreatedAt  int64          `db:"created_at"`
	UpdatedAt  int64          `db:"updated_at"`
}

// CollectionRow is a collections row as stored. CollectedAt is epoch
// milliseconds.
type CollectionRow struct {
	ID           string         `db:"id"`
	ProductID    string         `db:"product_id"`
	ProducerID   string         `db:"producer_id"`
	Quantity     float64        `db:"quantidade"`
	Unit         string         `db:"unidade"`
	CollectedAt  int64          `db:"data_coleta"`
	TechnicianID sql.NullString `db:"tecnico_id"`
	Notes        sql.NullString `db:"observacoes"`
	SyncStatus   string         `db:"sync_status"`
	CreatedAt    int64          `db:"created_at"`
	UpdatedAt    int64          `db:"updated_at"`
}

const (
	productColumns    = "id, nome, unidade_padrao, descricao, categoria, sync_status, created_at, updated_at"
	producerColumns   = "id, nome, cpf_cnpj, telefone, endereco, sync_status, created_at, updated_at"
	collectionColumns = "id, product_id, producer_id, quantidade, unidade, data_coleta, tecnico_id, observacoes, sync_status, created_at, updated_at"
)

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
