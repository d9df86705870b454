package audit

import (
	"database/sql"
	"fmt"
	"time"
)

// RunInfo describes one recorded run.
type RunInfo struct {
	ID        int64
	Stage     string
	CreatedAt time.Time
	Contacts  int
	Snapshots int
}

// Runs lists recorded runs, newest first.
func Runs(db *sql.DB) ([]RunInfo, error) {
	rows, err := db.Query(`
		SELECT r.id, r.stage, r.created_at,
			(SELECT COUNT(*) FROM contacts c WHERE c.run = r.id),
			(SELECT COUNT(*) FROM snapshots s WHERE s.run = r.id)
		FROM runs r
		ORDER BY r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("audit: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var ri RunInfo
		if err := rows.Scan(&ri.ID, &ri.Stage, &ri.CreatedAt, &ri.Contacts, &ri.Snapshots); err != nil {
			return nil, fmt.Errorf("audit: scan run: %w", err)
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

// Summary counts contact rows of one gimmick kind in one state.
type Summary struct {
	Kind  string
	State string
	Count int
}

// Summaries groups a run's contacts by gimmick kind and state.
func Summaries(db *sql.DB, run int64) ([]Summary, error) {
	rows, err := db.Query(`
		SELECT kind, state, COUNT(*)
		FROM contacts
		WHERE run = ?
		GROUP BY kind, state
		ORDER BY kind, state`, run)
	if err != nil {
		return nil, fmt.Errorf("audit: summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Kind, &s.State, &s.Count); err != nil {
			return nil, fmt.Errorf("audit: scan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Violation is a recorded contact that breaks Enter, Stay..., Exit order
// for its gimmick and actor pair.
type Violation struct {
	Tick     uint64
	Gimmick  uint64
	Kind     string
	Actor    uint64
	Previous string
	State    string
}

func (v Violation) String() string {
	return fmt.Sprintf("tick %d: %s %d / actor %d: %s after %s", v.Tick, v.Kind, v.Gimmick, v.Actor, v.State, v.Previous)
}

type pair struct {
	gimmick, actor uint64
}

// CheckLifecycle replays a run's contacts per pair. Enter may only follow
// nothing or Exit; Stay and Exit may only follow Enter or Stay.
func CheckLifecycle(db *sql.DB, run int64) ([]Violation, error) {
	rows, err := db.Query(`
		SELECT tick, gimmick, kind, actor, state
		FROM contacts
		WHERE run = ?
		ORDER BY id`, run)
	if err != nil {
		return nil, fmt.Errorf("audit: lifecycle: %w", err)
	}
	defer rows.Close()

	last := map[pair]string{}
	var out []Violation
	for rows.Next() {
		var (
			v             Violation
			tick, gm, act int64
		)
		if err := rows.Scan(&tick, &gm, &v.Kind, &act, &v.State); err != nil {
			return nil, fmt.Errorf("audit: scan contact: %w", err)
		}
		v.Tick, v.Gimmick, v.Actor = uint64(tick), uint64(gm), uint64(act)
		key := pair{v.Gimmick, v.Actor}
		prev, seen := last[key]
		if !allowed(prev, seen, v.State) {
			v.Previous = prev
			if !seen {
				v.Previous = "inactive"
			}
			out = append(out, v)
		}
		last[key] = v.State
	}
	return out, rows.Err()
}

func allowed(prev string, seen bool, next string) bool {
	touching := seen && (prev == "enter" || prev == "stay")
	switch next {
	case "enter":
		return !touching
	case "stay", "exit":
		return touching
	}
	return false
}

// LatestRun is the id of the most recent run, or 0 when there is none.
func LatestRun(db *sql.DB) (int64, error) {
	var id sql.NullInt64
	if err := db.QueryRow("SELECT MAX(id) FROM runs").Scan(&id); err != nil {
		return 0, fmt.Errorf("audit: latest run: %w", err)
	}
	return id.Int64, nil
}
