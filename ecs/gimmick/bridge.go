package gimmick

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sensorstage/ecs/component"
	"github.com/milk9111/sensorstage/ecs/system"
)

const defaultSettleTicks = 16

// Bridge is a row of kinematic segments that sag under a rider. The segment
// under the rider is the tension point and sinks by MaxDepression; the others
// sink linearly less toward the anchors.
type Bridge struct {
	Base
	Segments      int
	SegmentWidth  float64
	MaxDepression float64
	SettleTicks   int

	depression []float64
	rest       []cp.Vector
	tension    int
	touched    bool
	settle     int
}

func NewBridge(segments int, segmentWidth, maxDepression float64) *Bridge {
	return &Bridge{
		Segments:      segments,
		SegmentWidth:  segmentWidth,
		MaxDepression: maxDepression,
		SettleTicks:   defaultSettleTicks,
	}
}

func (b *Bridge) Bind(env component.GimmickEnv) error {
	if err := b.bindSolid(env); err != nil {
		return err
	}
	if b.Segments <= 0 || b.SegmentWidth <= 0 {
		return fmt.Errorf("gimmick: bridge needs segments, got %d x %v", b.Segments, b.SegmentWidth)
	}
	if len(b.Solid.Parts) != b.Segments {
		return fmt.Errorf("gimmick: bridge has %d parts for %d segments", len(b.Solid.Parts), b.Segments)
	}
	b.rest = make([]cp.Vector, b.Segments)
	for i, p := range b.Solid.Parts {
		if p.Body == nil {
			return ErrNoSolid
		}
		b.rest[i] = p.Body.Position()
	}
	b.depression = make([]float64, b.Segments)
	return nil
}

// Left is the x of the bridge's left anchor.
func (b *Bridge) Left() float64 {
	return b.Transform.X - float64(b.Segments)*b.SegmentWidth/2
}

// TensionIndex is the segment under world x, clamped to the bridge.
func (b *Bridge) TensionIndex(x float64) int {
	i := int(math.Floor((x - b.Left()) / b.SegmentWidth))
	if i < 0 {
		return 0
	}
	if i >= b.Segments {
		return b.Segments - 1
	}
	return i
}

// Depressions returns the sag of every segment for a tension point t.
func Depressions(segments, t int, maxDepression float64) []float64 {
	out := make([]float64, segments)
	if segments <= 0 {
		return out
	}
	if t < 0 {
		t = 0
	}
	if t >= segments {
		t = segments - 1
	}
	for i := range out {
		if i <= t {
			out[i] = maxDepression * float64(i+1) / float64(t+1)
		} else {
			out[i] = maxDepression * float64(segments-i) / float64(segments-t)
		}
	}
	return out
}

func (b *Bridge) Depression(i int) float64 {
	if i < 0 || i >= len(b.depression) {
		return 0
	}
	return b.depression[i]
}

func (b *Bridge) Tension() int {
	return b.tension
}

func (b *Bridge) IsCollisionValid(actor *component.ActorRef, _ component.Bounds) bool {
	return actor.Grounded()
}

func (b *Bridge) OnEnter(actor *component.ActorRef) { b.press(actor) }
func (b *Bridge) OnStay(actor *component.ActorRef)  { b.press(actor) }

func (b *Bridge) press(actor *component.ActorRef) {
	b.tension = b.TensionIndex(actor.Position().X)
	copy(b.depression, Depressions(b.Segments, b.tension, b.MaxDepression))
	b.touched = true
	b.settle = b.SettleTicks
	b.apply()
}

// Tick eases the bridge back to rest once nobody pressed it last tick.
func (b *Bridge) Tick(uint64) {
	if b.touched {
		b.touched = false
		return
	}
	if b.settle <= 0 {
		return
	}
	for i := range b.depression {
		b.depression[i] -= b.depression[i] / float64(b.settle)
	}
	b.settle--
	b.apply()
}

// apply moves every segment to its sag and tilts it along its neighbours.
func (b *Bridge) apply() {
	n := b.Segments
	tops := make([]cp.Vector, n+2)
	tops[0] = b.rest[0].Sub(cp.Vector{X: b.SegmentWidth})
	tops[n+1] = b.rest[n-1].Add(cp.Vector{X: b.SegmentWidth})
	for i := 0; i < n; i++ {
		tops[i+1] = b.rest[i].Sub(cp.Vector{Y: b.depression[i]})
	}
	for i := 0; i < n; i++ {
		angle := system.SlopeAngle(tops[i], tops[i+2])
		b.Solid.MovePart(i, tops[i+1], angle)
	}
}
