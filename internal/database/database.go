package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Open connects to the database and verifies the connection. The returned
// handle is owned by the caller and passed explicitly to every layer that
// needs it.
func Open(host, port, user, password, dbname, sslmode string) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// ApplySchema reads and executes the base schema script when a path is configured.
func ApplySchema(db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}
	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}

// legacyColumns are the columns bolted onto the customers table by later form
// revisions. They are added additively, never dropped and never backfilled;
// every read must tolerate NULL in them.
var legacyColumns = []struct {
	name       string
	definition string
}{
	{"current_charge", "BIGINT"},
	{"total_amount", "BIGINT"},
	{"advance_payment", "BIGINT"},
	{"kaj_count", "VARCHAR(50)"},
	{"pocket_size", "VARCHAR(50)"},
	{"style_patti", "VARCHAR(50)"},
	{"design_button", "VARCHAR(50)"},
	{"salai", "VARCHAR(50)"},
}

// EnsureLegacyColumns reconciles the customers table with the newest form
// revision by adding any missing column.
func EnsureLegacyColumns(db *sql.DB) error {
	for _, col := range legacyColumns {
		stmt := fmt.Sprintf("ALTER TABLE customers ADD COLUMN IF NOT EXISTS %s %s", col.name, col.definition)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("adding column %s: %w", col.name, err)
		}
	}
	return nil
}

// EnsureIssuedIDLog creates the append-only issued-ID log on databases that
// predate it and backfills it from the existing customers, so minting never
// reissues an ID that was in use before the log was introduced.
func EnsureIssuedIDLog(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS issued_customer_ids (
			customer_id VARCHAR(20) PRIMARY KEY,
			issued_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`INSERT INTO issued_customer_ids (customer_id)
		 SELECT customer_id FROM customers
		 ON CONFLICT (customer_id) DO NOTHING`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("reconciling issued-ID log: %w", err)
		}
	}
	return nil
}
