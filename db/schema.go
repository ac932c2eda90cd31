// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	ddl, err := renderSchema(dbType)
	if err != nil {
		return err
	}

	_, err = db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// renderSchema fills in the column types for dbType. Postgres stores JSON
// documents as JSONB and times as TIMESTAMPTZ; sqlite has neither.
func renderSchema(dbType string) (string, error) {
	var r *strings.Replacer
	switch dbType {
	case "postgres":
		r = strings.NewReplacer("{{document}}", "JSONB", "{{timestamp}}", "TIMESTAMPTZ")
	case "sqlite":
		r = strings.NewReplacer("{{document}}", "TEXT", "{{timestamp}}", "TIMESTAMP")
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
	return r.Replace(schema), nil
}

const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at {{timestamp}} NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_account_email ON account(email);

-- Profiles (one per account, matches embedded)
CREATE TABLE IF NOT EXISTS profile (
    account_id TEXT PRIMARY KEY REFERENCES account(id) ON DELETE CASCADE,
    level INTEGER NOT NULL DEFAULT 0 CHECK (level >= 0 AND level <= 10),
    style TEXT CHECK (style IN ('drive', 'reves')),
    matches {{document}} NOT NULL,
    skill_averages {{document}} NOT NULL,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
);
`
