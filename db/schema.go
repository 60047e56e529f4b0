// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(c *Conn) error {
	_, err := c.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// JSON columns are TEXT so the schema runs unchanged on SQLite and Postgres.
const schema = `
-- Surveys
CREATE TABLE IF NOT EXISTS survey (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    creator_name TEXT NOT NULL,
    kind TEXT NOT NULL DEFAULT 'static' CHECK (kind IN ('static', 'dynamic')),
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'open', 'closed')),
    share_slug TEXT UNIQUE,
    definition TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    closed_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_survey_share_slug ON survey(share_slug);
CREATE INDEX IF NOT EXISTS idx_survey_status ON survey(status);

-- Responses
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    answers TEXT NOT NULL,
    respondent TEXT,
    ip_hash TEXT,
    user_agent TEXT,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_response_survey_id ON response(survey_id, submitted_at);

-- Saved path comparisons
CREATE TABLE IF NOT EXISTS analysis_group (
    id TEXT PRIMARY KEY,
    survey_id TEXT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    paths TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analysis_group_survey_id ON analysis_group(survey_id);
`
