// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Survey API server.

Quickly Survey collects responses to static and branching surveys and
analyses the route each respondent took through the questions: unique
paths, path groups, tree layouts and per-path comparison subtrees.

# Starting the Server

SQLite is the default database:

	DATABASE_URL=survey.db ADMIN_KEY_SALT=... SURVEY_SLUG_SALT=... go run .

Or with PostgreSQL and flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A YAML file can be given with -c; a .env file is loaded when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string or SQLite file
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - SURVEY_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (--base-url): Public base for share links
  - LOG_LEVEL (--log-level): debug, info, warn or error
  - CORS_ORIGINS (--cors-origins): Comma separated allowed origins

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (surveys, responses, analysis)
  - pathtree: Path extraction, grouping, filtering and tree layout
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, validation, JSON helpers
  - models: Request/response types
  - auth: Key generation and validation
  - db: Connection, dialects and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
