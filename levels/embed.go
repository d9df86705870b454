package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrEmptyStage = errors.New("levels: stage has no terrain")

// Stage is a playable layout: static terrain, entity placements and an
// optional scripted input timeline for headless runs.
type Stage struct {
	Name     string        `yaml:"name"`
	Width    float64       `yaml:"width"`
	Height   float64       `yaml:"height"`
	KillY    float64       `yaml:"kill_y"`
	Spawn    Point         `yaml:"spawn"`
	Terrain  []TerrainSpec `yaml:"terrain"`
	Entities []Placement   `yaml:"entities"`
	Inputs   []InputSpec   `yaml:"inputs"`
	Expect   []ExpectSpec  `yaml:"expect"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TerrainSpec is exactly one of Polygon, Box or Segment.
type TerrainSpec struct {
	Polygon  [][2]float64 `yaml:"polygon"`
	Box      *BoxSpec     `yaml:"box"`
	Segment  *SegmentSpec `yaml:"segment"`
	Category string       `yaml:"category"`
}

type BoxSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type SegmentSpec struct {
	A      Point   `yaml:"a"`
	B      Point   `yaml:"b"`
	Radius float64 `yaml:"radius"`
}

// Placement spawns a prefab at a position. Props override prefab
// components by name.
type Placement struct {
	Prefab string         `yaml:"prefab"`
	Name   string         `yaml:"name"`
	X      float64        `yaml:"x"`
	Y      float64        `yaml:"y"`
	Props  map[string]any `yaml:"props"`
}

type InputSpec struct {
	From  uint64  `yaml:"from"`
	To    uint64  `yaml:"to"`
	MoveX float64 `yaml:"move_x"`
	Jump  bool    `yaml:"jump"`
	Down  bool    `yaml:"down"`
}

// ExpectSpec is a contact the headless runner checks happened.
type ExpectSpec struct {
	Gimmick string `yaml:"gimmick"`
	State   string `yaml:"state"`
	Before  uint64 `yaml:"before"`
}

// LoadStage reads levels/<name> from disk when present, else the embedded copy.
func LoadStage(name string) (*Stage, error) {
	clean := cleanStagePath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	return ParseStage(data)
}

func ParseStage(data []byte) (*Stage, error) {
	var stage Stage
	if err := yaml.Unmarshal(data, &stage); err != nil {
		return nil, fmt.Errorf("levels: unmarshal stage: %w", err)
	}
	if len(stage.Terrain) == 0 {
		return nil, ErrEmptyStage
	}
	return &stage, nil
}

// List returns the embedded stage names without extension, sorted.
func List() ([]string, error) {
	matches, err := fs.Glob(LevelsFS, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("levels: list: %w", err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.TrimSuffix(m, ".yaml"))
	}
	sort.Strings(out)
	return out, nil
}

func cleanStagePath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
