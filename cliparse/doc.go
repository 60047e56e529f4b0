// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Layers

Settings are read from four layers, highest precedence first:

 1. CLI flags
 2. Environment variables (a dotenv file fills in unset ones)
 3. YAML config file given with -c
 4. Defaults

# CLI Flags

	-p             Server port (default 3318)
	-d             Database URL
	-t             Database type: sqlite (default) or postgres
	-c             YAML config file
	-env           dotenv file (default .env, ignored when missing)
	--admin-salt   Admin key salt
	--slug-salt    Survey slug salt
	--base-url     Public base URL for share links
	--log-level    debug, info, warn or error
	--cors-origins Comma separated allowed origins

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, ADMIN_KEY_SALT, SURVEY_SLUG_SALT,
	BASE_URL, LOG_LEVEL, CORS_ORIGINS

# Validation

ParseFlags returns an error if the database URL or either salt is missing,
or if the database type is not sqlite or postgres.
*/
package cliparse
