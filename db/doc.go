// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open returns a Conn for either SQLite (modernc.org/sqlite, the default)
or Postgres (lib/pq):

	conn, err := db.Open(db.DialectSQLite, "file:surveys.db")

Queries are always written with "?" placeholders; Conn rewrites them to
$1, $2, ... on Postgres.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - survey: Survey metadata, lifecycle state and JSON definition
  - response: Ordered answers (JSON) and optional respondent metadata
  - analysis_group: Saved, named path selections

# Relationships

	survey 1──* response
	survey 1──* analysis_group

All foreign keys use ON DELETE CASCADE.
*/
package db
