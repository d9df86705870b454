// Package audit records contact lifecycles and actor snapshots from a run
// to SQLite, and checks recorded lifecycles for ordering mistakes.
// Uses the pure-Go modernc.org/sqlite driver.
package audit

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/milk9111/sensorstage/ecs/component"
)

var ErrClosed = errors.New("audit: recorder is closed")

// Recorder appends one run's rows inside a single transaction, committed by
// Flush or Close.
type Recorder struct {
	db  *sql.DB
	tx  *sql.Tx
	run int64

	contactStmt  *sql.Stmt
	snapshotStmt *sql.Stmt

	// err holds the first failure from a hook, which cannot return one.
	err error
}

// Open creates or opens the database at path and starts a run for stage.
func Open(path, stage string) (*Recorder, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	res, err := db.Exec("INSERT INTO runs (stage) VALUES (?)", stage)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: start run: %w", err)
	}
	run, err := res.LastInsertId()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: start run: %w", err)
	}
	r := &Recorder{db: db, run: run}
	if err := r.begin(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// OpenDB opens the database and runs migrations without starting a run.
func OpenDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit: cannot create directory %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: cannot connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migration failed: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			stage TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			gimmick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			actor INTEGER NOT NULL,
			state TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_contacts_pair ON contacts(run, gimmick, actor, id);

		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			actor INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			angle REAL NOT NULL,
			mode TEXT NOT NULL,
			grounded INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_actor ON snapshots(run, actor, tick);
	`
	_, err := db.Exec(schema)
	return err
}

func (r *Recorder) begin() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("audit: begin: %w", err)
	}
	contact, err := tx.Prepare("INSERT INTO contacts (run, tick, gimmick, kind, actor, state) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("audit: prepare contacts: %w", err)
	}
	snapshot, err := tx.Prepare("INSERT INTO snapshots (run, tick, actor, x, y, angle, mode, grounded) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("audit: prepare snapshots: %w", err)
	}
	r.tx, r.contactStmt, r.snapshotStmt = tx, contact, snapshot
	return nil
}

// Run is the id of the run this recorder writes.
func (r *Recorder) Run() int64 {
	return r.run
}

func (r *Recorder) RecordContact(tick, gimmick uint64, kind component.GimmickKind, actor uint64, state component.ContactState) error {
	if r.tx == nil {
		return ErrClosed
	}
	if _, err := r.contactStmt.Exec(r.run, int64(tick), int64(gimmick), kind.String(), int64(actor), state.String()); err != nil {
		return fmt.Errorf("audit: record contact: %w", err)
	}
	return nil
}

// Snapshot is one actor row.
type Snapshot struct {
	Tick     uint64
	Actor    uint64
	X, Y     float64
	AngleDeg float64
	Mode     component.GroundMode
	Grounded bool
}

func (r *Recorder) RecordSnapshot(s Snapshot) error {
	if r.tx == nil {
		return ErrClosed
	}
	grounded := 0
	if s.Grounded {
		grounded = 1
	}
	if _, err := r.snapshotStmt.Exec(r.run, int64(s.Tick), int64(s.Actor), s.X, s.Y, s.AngleDeg, s.Mode.String(), grounded); err != nil {
		return fmt.Errorf("audit: record snapshot: %w", err)
	}
	return nil
}

// ContactHook adapts RecordContact to component.Hooks.Contact. The first
// failure is kept and reported by Err.
func (r *Recorder) ContactHook() func(tick, gimmick uint64, kind component.GimmickKind, actor uint64, state component.ContactState) {
	return func(tick, gimmick uint64, kind component.GimmickKind, actor uint64, state component.ContactState) {
		if err := r.RecordContact(tick, gimmick, kind, actor, state); err != nil && r.err == nil {
			r.err = err
		}
	}
}

func (r *Recorder) Err() error {
	return r.err
}

// Flush commits what has been recorded and keeps the recorder open.
func (r *Recorder) Flush() error {
	if r.tx == nil {
		return ErrClosed
	}
	if err := r.commit(); err != nil {
		return err
	}
	return r.begin()
}

func (r *Recorder) commit() error {
	r.contactStmt.Close()
	r.snapshotStmt.Close()
	err := r.tx.Commit()
	r.tx = nil
	if err != nil {
		return fmt.Errorf("audit: commit: %w", err)
	}
	return nil
}

// Close commits and closes the database.
func (r *Recorder) Close() error {
	var err error
	if r.tx != nil {
		err = r.commit()
	}
	if r.db != nil {
		if cerr := r.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
		r.db = nil
	}
	return err
}

// DB exposes the connection for queries against the current run. Rows
// still inside the open transaction are not visible until Flush.
func (r *Recorder) DB() *sql.DB {
	return r.db
}
