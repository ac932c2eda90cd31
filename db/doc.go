// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and driver selection.

# Schema Creation

CreateSchema initializes all required tables for the configured database:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - account: name, unique email, bcrypt password hash
  - profile: level, style, and the embedded matches and skill_averages
    documents (JSONB on PostgreSQL, TEXT on SQLite)

Timestamps are TIMESTAMPTZ on PostgreSQL and TIMESTAMP on SQLite.

# Relationships

	account 1──1 profile

profile.account_id references account(id) with ON DELETE CASCADE.

# Drivers

	postgres → github.com/lib/pq
	sqlite   → modernc.org/sqlite

Queries use $N placeholders, which both drivers accept.

ConnString turns on the SQLite foreign_keys pragma, which is off by default,
so the cascade above holds:

	conn, err := sql.Open(driver, db.ConnString(cfg.DatabaseType, cfg.DatabaseURL))

# Errors

IsUniqueViolation recognises duplicate key errors from either driver so
handlers can answer 409 instead of 500.
*/
package db
