package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	err := DecodeComponentSpecInto(raw, &out)
	return out, err
}

// DecodeComponentSpecInto decodes raw over out, keeping fields raw omits.
func DecodeComponentSpecInto[T any](raw any, out *T) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// MergeComponents overlays per-placement props onto a prefab's components.
// Map-valued components merge key by key; anything else is replaced.
func MergeComponents(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		bm, okBase := out[k].(map[string]any)
		om, okOver := v.(map[string]any)
		if !okBase || !okOver {
			out[k] = v
			continue
		}
		merged := make(map[string]any, len(bm)+len(om))
		for mk, mv := range bm {
			merged[mk] = mv
		}
		for mk, mv := range om {
			merged[mk] = mv
		}
		out[k] = merged
	}
	return out
}

// PhysicsProfiles maps a profile name to ActorPhysics fields.
type PhysicsProfiles map[string]map[string]any

func LoadPhysicsProfiles() (PhysicsProfiles, error) {
	return LoadSpec[PhysicsProfiles]("physics.yaml")
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type ActorComponentSpec struct {
	Kind         string         `yaml:"kind"`
	Width        float64        `yaml:"width"`
	Height       float64        `yaml:"height"`
	Profile      string         `yaml:"profile"`
	Physics      map[string]any `yaml:"physics"`
	Facing       float64        `yaml:"facing"`
	Rings        int            `yaml:"rings"`
	CollectDelay int            `yaml:"collect_delay"`
	GroundSnap   float64        `yaml:"ground_snap"`
}

type CollisionLayerComponentSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type PatrolComponentSpec struct {
	Speed      float64 `yaml:"speed"`
	Script     string  `yaml:"script"`
	LedgeReach float64 `yaml:"ledge_reach"`
}

type TTLComponentSpec struct {
	Ticks int `yaml:"ticks"`
}

type NameComponentSpec struct {
	Value string `yaml:"value"`
}

type SolidComponentSpec struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetY   float64 `yaml:"offset_y"`
	Count     int     `yaml:"count"`
	Kinematic bool    `yaml:"kinematic"`
	Category  string  `yaml:"category"`
}

// GimmickComponentSpec is the union of every gimmick's settings; each kind
// reads the fields it needs.
type GimmickComponentSpec struct {
	Kind    string  `yaml:"kind"`
	Source  string  `yaml:"source"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`

	Side      string  `yaml:"side"`
	Velocity  float64 `yaml:"velocity"`
	LockTicks int     `yaml:"lock_ticks"`

	Speed float64 `yaml:"speed"`

	Segments      int     `yaml:"segments"`
	SegmentWidth  float64 `yaml:"segment_width"`
	MaxDepression float64 `yaml:"max_depression"`
	SettleTicks   int     `yaml:"settle_ticks"`

	From     string  `yaml:"from"`
	MinSpeed float64 `yaml:"min_speed"`
	Rebound  bool    `yaml:"rebound"`
	Score    int     `yaml:"score"`

	Armored bool `yaml:"armored"`

	Direction float64 `yaml:"direction"`

	TravelX float64 `yaml:"travel_x"`
	TravelY float64 `yaml:"travel_y"`
	Period  int     `yaml:"period"`

	Value int `yaml:"value"`
}
