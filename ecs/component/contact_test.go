package component

import "testing"

func TestContactEventLifecycle(t *testing.T) {
	var c ContactEvent

	if !c.Begin(1) {
		t.Fatalf("Begin on inactive contact should succeed")
	}
	if c.State != ContactEnter {
		t.Fatalf("expected enter, got %s", c.State)
	}

	// the downgrade armed on tick 1 must not fire on the same tick
	c.Advance(1)
	if c.State != ContactEnter {
		t.Fatalf("expected enter to survive its own tick, got %s", c.State)
	}
	c.Advance(2)
	if c.State != ContactStay {
		t.Fatalf("expected stay on the next tick, got %s", c.State)
	}
	if !c.Continue() {
		t.Fatalf("Continue should report stay")
	}

	if !c.End(3) {
		t.Fatalf("End on stay should succeed")
	}
	if c.State != ContactExit {
		t.Fatalf("expected exit, got %s", c.State)
	}
	c.Advance(3)
	c.Advance(4)
	if c.State != ContactInactive {
		t.Fatalf("expected inactive after exit settles, got %s", c.State)
	}
}

func TestContactEventReentrancy(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *ContactEvent)
		op    func(c *ContactEvent) bool
		want  bool
		state ContactState
	}{
		{
			name:  "begin_while_enter_is_ignored",
			setup: func(c *ContactEvent) { c.Begin(1) },
			op:    func(c *ContactEvent) bool { return c.Begin(1) },
			want:  false,
			state: ContactEnter,
		},
		{
			name: "begin_while_stay_is_ignored",
			setup: func(c *ContactEvent) {
				c.Begin(1)
				c.Advance(2)
			},
			op:    func(c *ContactEvent) bool { return c.Begin(2) },
			want:  false,
			state: ContactStay,
		},
		{
			name:  "end_while_inactive_is_noop",
			setup: func(c *ContactEvent) {},
			op:    func(c *ContactEvent) bool { return c.End(1) },
			want:  false,
			state: ContactInactive,
		},
		{
			name: "second_end_is_noop",
			setup: func(c *ContactEvent) {
				c.Begin(1)
				c.End(2)
			},
			op:    func(c *ContactEvent) bool { return c.End(2) },
			want:  false,
			state: ContactExit,
		},
		{
			name: "begin_from_exit_reenters",
			setup: func(c *ContactEvent) {
				c.Begin(1)
				c.End(2)
			},
			op:    func(c *ContactEvent) bool { return c.Begin(2) },
			want:  true,
			state: ContactEnter,
		},
		{
			name:  "enter_can_end_before_settling",
			setup: func(c *ContactEvent) { c.Begin(1) },
			op:    func(c *ContactEvent) bool { return c.End(1) },
			want:  true,
			state: ContactExit,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c ContactEvent
			tc.setup(&c)
			if got := tc.op(&c); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if c.State != tc.state {
				t.Fatalf("expected state %s, got %s", tc.state, c.State)
			}
		})
	}
}

func TestExitDoesNotSettleIntoStay(t *testing.T) {
	var c ContactEvent
	c.Begin(1)
	// exit on the same tick replaces the enter->stay downgrade
	c.End(1)
	c.Advance(2)
	if c.State != ContactInactive {
		t.Fatalf("expected inactive, got %s", c.State)
	}
}

func TestGimmickRecordPerActor(t *testing.T) {
	var r GimmickRecord

	r.Contact(7).Begin(1)
	r.Contact(3).Begin(1)
	if got := r.Actors(); len(got) != 2 || got[0] != 7 || got[1] != 3 {
		t.Fatalf("expected first-contact order [7 3], got %v", got)
	}
	r.Advance(2)
	r.Contact(3).End(2)

	if r.StateFor(7) != ContactStay {
		t.Fatalf("actor 7 expected stay, got %s", r.StateFor(7))
	}
	if r.StateFor(3) != ContactExit {
		t.Fatalf("actor 3 expected exit, got %s", r.StateFor(3))
	}
	if r.State() != ContactStay {
		t.Fatalf("aggregate expected stay, got %s", r.State())
	}

	r.Advance(3)
	if got := r.Actors(); len(got) != 1 || got[0] != 7 {
		t.Fatalf("inactive contacts should be dropped, got %v", got)
	}
	if r.StateFor(3) != ContactInactive {
		t.Fatalf("untracked actor should read inactive")
	}

	r.Forget(7)
	if len(r.Actors()) != 0 {
		t.Fatalf("expected no actors after forget")
	}
	// forgetting twice is harmless
	r.Forget(7)
}

func TestGimmickRecordReset(t *testing.T) {
	var r GimmickRecord
	r.Contact(1).Begin(1)
	r.Contact(2).Begin(1)
	r.Reset()
	if r.State() != ContactInactive || len(r.Actors()) != 0 {
		t.Fatalf("reset should clear every contact")
	}
	r.Advance(2)
	if r.State() != ContactInactive {
		t.Fatalf("no timer should fire after reset")
	}
}

func TestParseContactState(t *testing.T) {
	for _, s := range []ContactState{ContactInactive, ContactEnter, ContactStay, ContactExit} {
		got, err := ParseContactState(s.String())
		if err != nil || got != s {
			t.Fatalf("round trip %s: got %s err=%v", s, got, err)
		}
	}
	if _, err := ParseContactState("bounce"); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}
