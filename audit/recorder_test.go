package audit

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/sim"
)

func openTemp(t *testing.T, stage string) *Recorder {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "audit.db")
	r, err := Open(path, stage)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecorderSummariesAndLifecycle(t *testing.T) {
	r := openTemp(t, "demo")

	rows := []struct {
		tick    uint64
		gimmick uint64
		kind    component.GimmickKind
		actor   uint64
		state   component.ContactState
	}{
		{1, 10, component.GimmickSpring, 1, component.ContactEnter},
		{2, 10, component.GimmickSpring, 1, component.ContactStay},
		{3, 10, component.GimmickSpring, 1, component.ContactExit},
		{4, 10, component.GimmickSpring, 1, component.ContactEnter},
		// out of order pairs
		{5, 11, component.GimmickBridge, 1, component.ContactStay},
		{6, 12, component.GimmickRing, 1, component.ContactEnter},
		{7, 12, component.GimmickRing, 1, component.ContactEnter},
	}
	for _, row := range rows {
		if err := r.RecordContact(row.tick, row.gimmick, row.kind, row.actor, row.state); err != nil {
			t.Fatalf("RecordContact: %v", err)
		}
	}
	if err := r.RecordSnapshot(Snapshot{Tick: 1, Actor: 1, X: 3, Y: 4, Mode: component.GroundFloor, Grounded: true}); err != nil {
		t.Fatalf("RecordSnapshot: %v", err)
	}
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	sums, err := Summaries(r.DB(), r.Run())
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	counts := map[string]int{}
	for _, s := range sums {
		counts[s.Kind+"/"+s.State] = s.Count
	}
	if counts["spring/enter"] != 2 || counts["spring/stay"] != 1 || counts["ring/enter"] != 2 {
		t.Fatalf("unexpected summaries %v", counts)
	}

	violations, err := CheckLifecycle(r.DB(), r.Run())
	if err != nil {
		t.Fatalf("CheckLifecycle: %v", err)
	}
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", violations)
	}
	if v := violations[0]; v.Tick != 5 || v.State != "stay" || v.Previous != "inactive" {
		t.Fatalf("unexpected first violation %s", v)
	}
	if v := violations[1]; v.Tick != 7 || v.Previous != "enter" {
		t.Fatalf("unexpected second violation %s", v)
	}

	runs, err := Runs(r.DB())
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Stage != "demo" || runs[0].Contacts != len(rows) || runs[0].Snapshots != 1 {
		t.Fatalf("unexpected runs %+v", runs)
	}
	latest, err := LatestRun(r.DB())
	if err != nil || latest != r.Run() {
		t.Fatalf("LatestRun: got %d, %v", latest, err)
	}
}

func TestRecorderClose(t *testing.T) {
	r := openTemp(t, "demo")
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}
	if err := r.RecordContact(1, 1, component.GimmickSpring, 1, component.ContactEnter); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := r.Flush(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Flush, got %v", err)
	}
}

func TestRunsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	for _, stage := range []string{"a", "b"} {
		r, err := Open(path, stage)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := r.RecordContact(1, 1, component.GimmickSpring, 2, component.ContactEnter); err != nil {
			t.Fatalf("RecordContact: %v", err)
		}
		if err := r.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()
	runs, err := Runs(db)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 || runs[0].Stage != "b" || runs[1].Stage != "a" {
		t.Fatalf("expected newest first, got %+v", runs)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Fatalf("runs should be timestamped")
	}
}

func TestLatestRunEmpty(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()
	if id, err := LatestRun(db); err != nil || id != 0 {
		t.Fatalf("expected 0 for an empty database, got %d, %v", id, err)
	}
}

func TestRecordedSimRunIsWellFormed(t *testing.T) {
	r := openTemp(t, "spring_zone")
	s, err := sim.Load("spring_zone", sim.Options{Hooks: &component.Hooks{Contact: r.ContactHook()}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s.Run(240, nil)
	if err := r.Err(); err != nil {
		t.Fatalf("hook error: %v", err)
	}
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	violations, err := CheckLifecycle(r.DB(), r.Run())
	if err != nil {
		t.Fatalf("CheckLifecycle: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("a real run should have no lifecycle violations, got %v", violations)
	}
	sums, err := Summaries(r.DB(), r.Run())
	if err != nil || len(sums) == 0 {
		t.Fatalf("expected recorded contacts, got %v %v", sums, err)
	}
}
