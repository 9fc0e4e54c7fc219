// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/veriqai/veriq-tui/internal/model"
)

// usageSchema holds one row per send outcome.
const usageSchema = `
CREATE TABLE IF NOT EXISTS usage (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	at TIMESTAMP NOT NULL,
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	ok INTEGER NOT NULL,
	detail TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_usage_provider ON usage(provider);
`

// =============================================================================
// USAGE LOG
// =============================================================================

// UsageLog records send outcomes in a local SQLite database.
type UsageLog struct {
	db *sql.DB
}

// UsageTotals aggregates recorded outcomes for one provider.
type UsageTotals struct {
	Provider model.ProviderKind
	Requests int
	Failures int
}

// OpenUsageLog opens (and initializes) the usage database at path.
func OpenUsageLog(path string) (*UsageLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(usageSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &UsageLog{db: db}, nil
}

// Close releases the database handle.
func (u *UsageLog) Close() error {
	return u.db.Close()
}

// Record logs one send outcome. Failures to record are logged and swallowed;
// usage accounting must never disturb the conversation flow.
func (u *UsageLog) Record(provider model.ProviderKind, modelName string, ok bool, detail string) {
	okVal := 0
	if ok {
		okVal = 1
	}
	_, err := u.db.Exec(
		"INSERT INTO usage (at, provider, model, ok, detail) VALUES (?, ?, ?, ?, ?)",
		time.Now().UTC(), string(provider), modelName, okVal, detail,
	)
	if err != nil {
		log.Printf("admin: failed to record usage: %v", err)
	}
}

// Totals returns per-provider request and failure counts.
func (u *UsageLog) Totals() ([]UsageTotals, error) {
	rows, err := u.db.Query(
		"SELECT provider, COUNT(*), SUM(CASE WHEN ok = 0 THEN 1 ELSE 0 END) FROM usage GROUP BY provider ORDER BY provider",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage totals: %w", err)
	}
	defer rows.Close()

	var totals []UsageTotals
	for rows.Next() {
		var t UsageTotals
		var provider string
		if err := rows.Scan(&provider, &t.Requests, &t.Failures); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		t.Provider = model.ProviderKind(provider)
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
