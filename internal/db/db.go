// Package db owns the embedded SQLite store: one handle per process, opened
// lazily, with the schema applied on open.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/example/feira/internal/logging"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var (
	// ErrStorageUnavailable is returned when the store cannot be opened.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnknownTable is returned by the table helpers for names outside the schema.
	ErrUnknownTable = errors.New("unknown table")

	// ErrNestedTransaction is returned when a Transaction body calls back into
	// the Database with the context it was handed.
	ErrNestedTransaction = errors.New("nested transaction not supported")
)

// txKey marks a context handed to a Transaction body.
type txKey struct{}

func inTransaction(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// QueryError wraps a failed statement.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Result summarizes a write statement.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Statement is one entry of ExecuteBatch.
type Statement struct {
	SQL  string
	Args []any
}

// runner is satisfied by both *sqlx.DB and *sqlx.Tx.
type runner interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// Database is the connection wrapper. The zero value is not usable; call New.
//
// The pool is pinned to a single connection, so every statement is funneled
// through one handle. A Transaction body must use the *Tx and the context it
// is given; Database calls made with that context fail with
// ErrNestedTransaction instead of waiting for the connection the transaction
// holds.
type Database struct {
	path string
	log  logrus.FieldLogger

	mu   sync.Mutex
	conn *sqlx.DB
}

// New returns a wrapper for the database at path. Nothing is opened until the
// first call to Open or any other operation.
func New(path string, log logrus.FieldLogger) *Database {
	if log == nil {
		log = logging.Discard()
	}
	return &Database{
		path: path,
		log:  log.WithField("component", "db"),
	}
}

// Path returns the database location.
func (d *Database) Path() string {
	return d.path
}

// Open opens the store and applies the schema. It is idempotent: once open,
// further calls return immediately without touching the schema.
func (d *Database) Open(ctx context.Context) error {
	_, err := d.handle(ctx)
	return err
}

func (d *Database) handle(ctx context.Context) (*sqlx.DB, error) {
	if inTransaction(ctx) {
		return nil, ErrNestedTransaction
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil {
		return d.conn, nil
	}

	if d.path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create data directory: %w", ErrStorageUnavailable, err)
		}
	}

	conn, err := sqlx.Open("sqlite3", d.path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}
	// One connection: ":memory:" databases live and die with their
	// connection, and SQLite serializes writers anyway.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}

	if _, err := conn.ExecContext(ctx, SchemaSQL); err != nil {
		conn.Close()
		d.log.WithError(err).Error("failed to create tables")
		return nil, fmt.Errorf("%w: failed to initialize schema: %w", ErrStorageUnavailable, err)
	}

	d.conn = conn
	d.log.WithField("path", d.path).Info("database opened")
	return conn, nil
}

// IsOpen reports whether the handle is currently open.
func (d *Database) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn != nil
}

// Close releases the handle. The next operation re-opens it.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	d.log.Info("database closed")
	return nil
}

// Query runs a read statement and scans every row into dest, which must be a
// pointer to a slice of structs (db tags) or scalars.
func (d *Database) Query(ctx context.Context, dest any, query string, args ...any) error {
	conn, err := d.handle(ctx)
	if err != nil {
		return err
	}
	return selectRows(ctx, conn, d.log, dest, query, args)
}

// QuerySingle scans the first row into dest. It returns false, nil when the
// statement yields no rows.
func (d *Database) QuerySingle(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	conn, err := d.handle(ctx)
	if err != nil {
		return false, err
	}
	return getRow(ctx, conn, d.log, dest, query, args)
}

// Execute runs a write statement.
func (d *Database) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	conn, err := d.handle(ctx)
	if err != nil {
		return Result{}, err
	}
	return execute(ctx, conn, d.log, query, args)
}

// Transaction runs fn so that its writes commit together or not at all.
// An error returned by fn rolls the transaction back and is returned as is.
// fn receives a context marking the transaction; nesting Transaction or any
// other Database call under it returns ErrNestedTransaction.
func (d *Database) Transaction(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	conn, err := d.handle(ctx)
	if err != nil {
		return err
	}

	sqlTx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Tx{tx: sqlTx, log: d.log}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx), tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			d.log.WithError(rbErr).Warn("rollback failed")
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ExecuteBatch runs every statement inside one transaction.
func (d *Database) ExecuteBatch(ctx context.Context, statements []Statement) error {
	return d.Transaction(ctx, func(ctx context.Context, tx *Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Execute(ctx, stmt.SQL, stmt.Args...); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of rows in table, optionally filtered by a WHERE
// clause using placeholders.
func (d *Database) Count(ctx context.Context, table, where string, args ...any) (int, error) {
	if !isKnownTable(table) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	var count int
	if _, err := d.QuerySingle(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// TableExists reports whether name exists in the store.
func (d *Database) TableExists(ctx context.Context, name string) (bool, error) {
	var found string
	ok, err := d.QuerySingle(ctx, &found,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ClearTable deletes every row of table.
func (d *Database) ClearTable(ctx context.Context, table string) error {
	if !isKnownTable(table) {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if _, err := d.Execute(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	d.log.WithField("table", table).Info("table cleared")
	return nil
}

// SQLiteVersion returns the engine version, or "unknown" when it cannot be read.
func (d *Database) SQLiteVersion(ctx context.Context) string {
	var version string
	ok, err := d.QuerySingle(ctx, &version, "SELECT sqlite_version()")
	if err != nil || !ok {
		return "unknown"
	}
	return version
}

// Tx is the unit of work handed to a Transaction body.
type Tx struct {
	tx  *sqlx.Tx
	log logrus.FieldLogger
}

// Query is Database.Query inside the transaction.
func (t *Tx) Query(ctx context.Context, dest any, query string, args ...any) error {
	return selectRows(ctx, t.tx, t.log, dest, query, args)
}

// QuerySingle is Database.QuerySingle inside the transaction.
func (t *Tx) QuerySingle(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	return getRow(ctx, t.tx, t.log, dest, query, args)
}

// Execute is Database.Execute inside the transaction.
func (t *Tx) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	return execute(ctx, t.tx, t.log, query, args)
}

func selectRows(ctx context.Context, r runner, log logrus.FieldLogger, dest any, query string, args []any) error {
	if err := sqlx.SelectContext(ctx, r, dest, query, args...); err != nil {
		log.WithError(err).WithField("sql", query).Error("query failed")
		return &QueryError{Query: query, Err: err}
	}
	return nil
}

func getRow(ctx context.Context, r runner, log logrus.FieldLogger, dest any, query string, args []any) (bool, error) {
	err := sqlx.GetContext(ctx, r, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.WithError(err).WithField("sql", query).Error("query failed")
		return false, &QueryError{Query: query, Err: err}
	}
	return true, nil
}

func execute(ctx context.Context, r runner, log logrus.FieldLogger, query string, args []any) (Result, error) {
	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.WithError(err).WithField("sql", query).Error("execute failed")
		return Result{}, &QueryError{Query: query, Err: err}
	}

	affected, _ := res.RowsAffected()
	lastID, _ := res.LastInsertId()
	return Result{RowsAffected: affected, LastInsertID: lastID}, nil
}
