package common

import (
	"math"
	"testing"
)

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-30, 330},
		{360, 0},
		{720.5, 0.5},
		{-360, 0},
		{-0.001, 359.999},
		{450, 90},
	}
	for _, tc := range tests {
		got := RoundTo(NormalizeDegrees(tc.in), 6)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("NormalizeDegrees(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRoundToDropsNegativeZero(t *testing.T) {
	got := RoundTo(-0.0001, 3)
	if math.Signbit(got) {
		t.Fatalf("expected positive zero, got %v", got)
	}
	if RoundTo(1.23456, 3) != 1.235 {
		t.Fatalf("expected 1.235, got %v", RoundTo(1.23456, 3))
	}
}

func TestApproachAndClamp(t *testing.T) {
	if got := Approach(0, 1, 0.25); got != 0.25 {
		t.Fatalf("Approach up: got %v", got)
	}
	if got := Approach(1, 0, 2); got != 0 {
		t.Fatalf("Approach should not overshoot, got %v", got)
	}
	if got := Clamp(5, -1, 1); got != 1 {
		t.Fatalf("Clamp high: got %v", got)
	}
	if got := Sign(-3); got != -1 {
		t.Fatalf("Sign: got %v", got)
	}
}
