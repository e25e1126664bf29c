package fieldstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tomberek/fieldstore/field"
)

// DDL creates the fixed tables every content type shares. Numbered columns
// are unique per content type; columnless pseudo-columns repeat freely.
const DDL = `
CREATE TABLE IF NOT EXISTS inode (
  inode TEXT PRIMARY KEY,
  owner TEXT,
  idate DATETIME,
  type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS structure (
  inode TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  velocity_var_name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS field (
  inode TEXT PRIMARY KEY,
  structure_inode TEXT NOT NULL,
  field_name TEXT,
  field_type TEXT NOT NULL,
  field_relation_type TEXT,
  field_contentlet TEXT NOT NULL,
  required BOOLEAN NOT NULL DEFAULT 0,
  indexed BOOLEAN NOT NULL DEFAULT 0,
  listed BOOLEAN NOT NULL DEFAULT 0,
  velocity_var_name TEXT,
  sort_order INTEGER NOT NULL DEFAULT 0,
  field_values TEXT,
  regex_check TEXT,
  hint TEXT,
  default_value TEXT,
  fixed BOOLEAN NOT NULL DEFAULT 0,
  read_only BOOLEAN NOT NULL DEFAULT 0,
  searchable BOOLEAN NOT NULL DEFAULT 0,
  unique_ BOOLEAN NOT NULL DEFAULT 0,
  mod_date DATETIME
);

CREATE TABLE IF NOT EXISTS field_variable (
  id TEXT PRIMARY KEY,
  field_id TEXT NOT NULL,
  variable_name TEXT,
  variable_key TEXT NOT NULL,
  variable_value TEXT,
  user_id TEXT,
  last_mod_date DATETIME
);

CREATE INDEX IF NOT EXISTS idx_field_structure ON field (structure_inode);
CREATE UNIQUE INDEX IF NOT EXISTS idx_field_var ON field (structure_inode, velocity_var_name);
CREATE UNIQUE INDEX IF NOT EXISTS idx_field_column ON field (structure_inode, field_contentlet)
  WHERE field_contentlet NOT IN ('constant', 'section_divider', 'system_field');
CREATE INDEX IF NOT EXISTS idx_field_variable_field ON field_variable (field_id);
`

// CreateSchema applies DDL; running it again is a no-op.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, DDL); err != nil {
		return field.StorageFailure(err, "create schema")
	}
	return nil
}

// Open opens the sqlite database named by cfg.DSN, creates the schema and
// returns a store over it.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, field.StorageFailure(err, "open")
	}
	// every statement of a save shares the transaction's connection
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, field.StorageFailure(err, fmt.Sprintf("ping %s", cfg.DSN))
	}
	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return New(db, cfg), nil
}
