// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"

	"github.com/sboehler/fundsim/lib/accountant"
	"github.com/sboehler/fundsim/lib/impact"
	"github.com/sboehler/fundsim/lib/model"
)

// SQLiteRecorder appends the results of each run to a SQLite database. Rows
// are tagged with a run id.
type SQLiteRecorder struct {
	db    *sql.DB
	mu    sync.Mutex
	runID string
	log   zerolog.Logger
}

var _ Recorder = (*SQLiteRecorder)(nil)

// NewSQLiteRecorder opens (or creates) the database, migrates it and
// registers a new run.
func NewSQLiteRecorder(path string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	r := &SQLiteRecorder{db: db, runID: uuid.NewString(), log: log}
	if err := r.migrate(); err != nil {
		return nil, multierr.Append(fmt.Errorf("migrate: %w", err), db.Close())
	}
	if _, err := db.Exec(`INSERT INTO runs (id, created_at) VALUES (?, ?)`, r.runID, time.Now().Unix()); err != nil {
		return nil, multierr.Append(fmt.Errorf("register run: %w", err), db.Close())
	}
	log.Info().Str("path", path).Str("run", r.runID).Msg("sqlite recorder opened")
	return r, nil
}

// RunID returns the id of the run being recorded.
func (r *SQLiteRecorder) RunID() string {
	return r.runID
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS valuations (
			run_id     TEXT NOT NULL REFERENCES runs(id),
			account    TEXT NOT NULL,
			customer   TEXT NOT NULL,
			fund       TEXT NOT NULL,
			shareclass TEXT NOT NULL,
			date       TEXT NOT NULL,
			init_GAV   REAL,
			GAV        REAL,
			expense    REAL,
			NAV        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_valuations_run ON valuations(run_id, account)`,
		`CREATE TABLE IF NOT EXISTS impact (
			run_id        TEXT NOT NULL REFERENCES runs(id),
			customer      TEXT NOT NULL,
			fund          TEXT NOT NULL,
			shareclass    TEXT NOT NULL,
			total_expense REAL,
			impact        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_impact_run ON impact(run_id)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordValuations implements Recorder.
func (r *SQLiteRecorder) RecordValuations(rows []accountant.Row) error {
	return r.insert("valuations", records(rows))
}

// RecordImpact implements Recorder.
func (r *SQLiteRecorder) RecordImpact(rows []impact.Row) error {
	return r.insert("impact", records(rows))
}

func records[T model.Record](ts []T) []model.Record {
	res := make([]model.Record, len(ts))
	for i, t := range ts {
		res[i] = t
	}
	return res
}

func (r *SQLiteRecorder) insert(table string, recs []model.Record) (err error) {
	if len(recs) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cols := recs[0].Columns()
	query := fmt.Sprintf("INSERT INTO %s (run_id, %s) VALUES (?%s)",
		table, strings.Join(cols, ", "), strings.Repeat(", ?", len(cols)))

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()
	stmt, err := tx.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	args := make([]any, len(cols)+1)
	args[0] = r.runID
	for _, rec := range recs {
		copy(args[1:], rec.Values())
		if _, err = stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	r.log.Debug().Str("table", table).Int("rows", len(recs)).Msg("recorded")
	return nil
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
