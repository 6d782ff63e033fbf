package localstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // driver SQLite para database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// NewDB abre la base SQLite y aplica los pragmas de concurrencia.
func NewDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping base: %w", err)
	}
	return db, nil
}

// Migrate aplica las migraciones pendientes (goose, embebidas en el binario).
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("dialecto: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	return nil
}

// SQLiteLists motor de listas sobre la tabla named_lists.
type SQLiteLists struct {
	db *sql.DB
}

// OpenSQLite abre (o crea) la base en path y la deja migrada.
func OpenSQLite(path string) (*SQLiteLists, error) {
	db, err := NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteLists{db: db}, nil
}

// Begin abre una transacción SQL; las listas se leen y escriben dentro de ella.
func (s *SQLiteLists) Begin(ctx context.Context) (ListTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &sqliteTx{tx: tx}, nil
}

// Close cierra la base.
func (s *SQLiteLists) Close() error {
	return s.db.Close()
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) Load(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := t.tx.QueryRowContext(ctx, `SELECT payload FROM named_lists WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer lista %s: %w", name, err)
	}
	return payload, nil
}

func (t *sqliteTx) Save(ctx context.Context, name string, payload []byte) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO named_lists (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("guardar lista %s: %w", name, err)
	}
	return nil
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
