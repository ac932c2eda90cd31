// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - TokenSecret: Secret for bearer token HMAC (required)
  - TokenTTL: Bearer token lifetime (default: 720h)
  - AllowedOrigins: CORS origins (default: http://localhost:3000)
  - RedisURL: Shared token revocation store (optional, in-memory otherwise)
  - LogLevel: slog level (default: info)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-token-secret  Token signing secret
	-token-ttl     Token lifetime
	-origins       CORS origins
	-redis         Redis URL
	-log-level     Log level

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	TOKEN_SECRET    → -token-secret
	TOKEN_TTL       → -token-ttl
	ALLOWED_ORIGINS → -origins
	REDIS_URL       → -redis
	LOG_LEVEL       → -log-level

CLI flags take precedence over environment variables. main loads a .env
file into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - TOKEN_SECRET must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - PORT and TOKEN_TTL must parse
*/
package cliparse
