package component

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestGroundModeFromAngle(t *testing.T) {
	tests := []struct {
		angle float64
		want  GroundMode
	}{
		{0, GroundFloor},
		{45, GroundFloor},
		{89.999, GroundFloor},
		{90, GroundRightWall},
		{179.999, GroundRightWall},
		{180, GroundCeiling},
		{270, GroundLeftWall},
		{330, GroundLeftWall},
		{359.999, GroundLeftWall},
	}
	for _, tc := range tests {
		if got := GroundModeFromAngle(tc.angle); got != tc.want {
			t.Fatalf("GroundModeFromAngle(%v) = %s, want %s", tc.angle, got, tc.want)
		}
	}
}

func TestNewSensorRigIsSymmetric(t *testing.T) {
	rig := NewSensorRig(18, 38)
	if rig.FloorLeft.OriginOffset.X != -8 || rig.FloorRight.OriginOffset.X != 8 {
		t.Fatalf("floor sensors should sit one unit inside the edges, got %v %v", rig.FloorLeft.OriginOffset, rig.FloorRight.OriginOffset)
	}
	if rig.CeilingLeft.OriginOffset.X != -8 || rig.CeilingRight.OriginOffset.X != 8 {
		t.Fatalf("ceiling sensors should match the floor layout, got %v %v", rig.CeilingLeft.OriginOffset, rig.CeilingRight.OriginOffset)
	}
	if rig.FloorLeft.CastAngleDeg != 270 || rig.CeilingRight.CastAngleDeg != 90 {
		t.Fatalf("unexpected cast angles %+v", rig)
	}
	if rig.FloorLeft.CastLength != 19 {
		t.Fatalf("floor rays should reach the feet, got %v", rig.FloorLeft.CastLength)
	}
	if rig.WallRight.CastLength != 10 {
		t.Fatalf("wall ray should reach just past the side, got %v", rig.WallRight.CastLength)
	}
}

func TestBoundsOverlapAndSides(t *testing.T) {
	b := BoundsAround(cp.Vector{}, 10, 10)

	if !b.Overlaps(BoundsAround(cp.Vector{X: 9}, 10, 10)) {
		t.Fatalf("expected overlap")
	}
	if b.Overlaps(BoundsAround(cp.Vector{X: 10}, 10, 10)) {
		t.Fatalf("touching edges should not overlap")
	}
	if b.Overlaps(Bounds{}) {
		t.Fatalf("empty bounds never overlap")
	}

	above := BoundsAround(cp.Vector{Y: 8}, 4, 4)
	if !b.TargetIsToTheTop(above) || b.TargetIsToTheBottom(above) {
		t.Fatalf("expected target above")
	}
	if !b.TargetIsWithinHorizontalBounds(above) {
		t.Fatalf("expected target within horizontal bounds")
	}
	left := BoundsAround(cp.Vector{X: -6}, 2, 2)
	if !b.TargetIsToTheLeft(left) || b.TargetIsToTheRight(left) {
		t.Fatalf("expected target to the left")
	}
}

func TestInputScriptEdges(t *testing.T) {
	s := &InputScript{Frames: []InputFrame{
		{From: 0, To: 10, MoveX: 1},
		{From: 3, To: 4, Jump: true},
		{From: 6, To: 6, Jump: true},
		{From: 8, To: 9, MoveX: -1, Down: true},
	}}

	var pressed []uint64
	for tick := uint64(0); tick <= 10; tick++ {
		in := s.At(tick)
		if in.JumpPressed {
			pressed = append(pressed, tick)
		}
		switch {
		case tick == 8 && (in.MoveX != -1 || !in.Down):
			t.Fatalf("tick 8: later frame should win, got %+v", in)
		case tick == 2 && in.MoveX != 1:
			t.Fatalf("tick 2: expected move right, got %+v", in)
		}
	}
	if len(pressed) != 2 || pressed[0] != 3 || pressed[1] != 6 {
		t.Fatalf("expected jump presses on ticks 3 and 6, got %v", pressed)
	}
}
