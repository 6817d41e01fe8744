package db

// SchemaSQL is the complete schema of the collection store.
//
// Every statement is CREATE ... IF NOT EXISTS, so running it against an
// existing database is a no-op. Open runs it once per handle and tests load
// it through GetSchemaSQL() instead of declaring their own tables.
//
// collections.product_id / producer_id are logical references only: the
// create-collection use case checks that they exist, the store does not.
// product_producer cascades on delete of either parent (requires
// PRAGMA foreign_keys = ON, which Open enables).
const SchemaSQL = `
-- Products (catalog items)
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY NOT NULL,
	nome TEXT NOT NULL,
	unidade_padrao TEXT NOT NULL,
	descricao TEXT,
	categoria TEXT,
	sync_status TEXT NOT NULL DEFAULT 'PENDING',
	created_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER) * 1000),
	updated_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER) * 1000)
);

-- Producers (suppliers / growers)
CREATE TABLE IF NOT EXISTS producers (
	id TEXT PRIMARY KEY NOT NULL,
	nome TEXT NOT NULL,
	cpf_cnpj TEXT,
	telefone TEXT,
	endereco TEXT,
	sync_status TEXT NOT NULL DEFAULT 'PENDING',
	created_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER) * 1000),
	updated_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER) * 1000)
);

-- Product <-> producer association (seed-only)
CREATE TABLE IF NOT EXISTS product_producer (
	product_id TEXT NOT NULL,
	producer_id TEXT NOT NULL,
	PRIMARY KEY (product_id, producer_id),
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
	FOREIGN KEY (producer_id) REFERENCES producers(id) ON DELETE CASCADE
);

-- Collections (coletas)
CREATE TABLE IF NOT EXISTS collections (
	id TEXT PRIMARY KEY NOT NULL,
	product_id TEXT NOT NULL,
	producer_id TEXT NOT NULL,
	quantidade REAL NOT NULL,
	unidade TEXT NOT NULL,
	data_coleta INTEGER NOT NULL,
	tecnico_id TEXT,
	observacoes TEXT,
	sync_status TEXT NOT NULL DEFAULT 'PENDING',
	created_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER) * 1000),
	updated_at INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER) * 1000)
);

CREATE INDEX IF NOT EXISTS idx_coletas_data ON collections(data_coleta);
CREATE INDEX IF NOT EXISTS idx_coletas_sync ON collections(sync_status);
CREATE INDEX IF NOT EXISTS idx_produto_nome ON products(nome);
`

// Tables lists the tables created by SchemaSQL, parents first.
var Tables = []string{"products", "producers", "product_producer", "collections"}

// Indexes lists the indexes created by SchemaSQL.
var Indexes = []string{"idx_coletas_data", "idx_coletas_sync", "idx_produto_nome"}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

func isKnownTable(name string) bool {
	for _, t := range Tables {
		if t == name {
			return true
		}
	}
	return false
}
