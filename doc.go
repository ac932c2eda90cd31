// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the appadel API server.

appadel is a padel self-assessment service: players answer a short survey
to get a 1-10 level, take a quiz that labels them drive or revés, log
matches with per-skill ratings, and browse training videos. The server
stores accounts and one profile per account.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=appadel.db TOKEN_SECRET=dev go run .

Or with flags:

	go run . -p 4000 -t postgres -d "postgres://..." -token-secret dev

A .env file in the working directory is loaded first (github.com/joho/godotenv);
variables already set in the environment take precedence.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - TOKEN_SECRET (-token-secret): HMAC key for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL (-token-ttl): Token lifetime (default: 720h)
  - ALLOWED_ORIGINS (-origins): Comma-separated CORS origins (default: http://localhost:3000)
  - REDIS_URL (-redis): Share revoked tokens through Redis instead of memory
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, profiles, assessment)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer auth, JSON helpers
  - assess: Level, style and skill average calculations, question catalogue
  - models: Request/response and domain types
  - auth: Password hashing, bearer tokens, revocation
  - db: Schema creation and driver helpers
  - cliparse: Configuration parsing
  - client: Go client for the API and the profile sync flow
  - cmd/padel: Terminal client

See package documentation for each component.
*/
package main
