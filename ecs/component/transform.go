package component

import "github.com/jakecoffman/cp"

// Transform is the world-space centre of an entity. Y points up.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

func (t *Transform) Position() cp.Vector {
	if t == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: t.X, Y: t.Y}
}

func (t *Transform) SetPosition(p cp.Vector) {
	if t == nil {
		return
	}
	t.X = p.X
	t.Y = p.Y
}

var TransformComponent = NewComponent[Transform]()
