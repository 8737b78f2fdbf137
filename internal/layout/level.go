package layout

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/raanman3d/internal/collision"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

// FixedPlatforms is the number of hand-placed platforms every level carries.
const FixedPlatforms = 10

//go:embed levels/*.yaml
var embeddedLevels embed.FS

// Level is a hand-authored level definition.
type Level struct {
	ID           string
	Name         string
	Spawn        vecmath.Vec3
	Platforms    []Box // exactly FixedPlatforms
	Collectibles []vecmath.Vec3
	Hazards      []Box
	FilePath     string // empty for embedded levels
}

// Box is a centre + full extents pair.
type Box struct {
	Center vecmath.Vec3
	Size   vecmath.Vec3
}

// usable reports a positive size on every axis and finite bounds.
func (b Box) usable() bool {
	if b.Size.X() <= 0 || b.Size.Y() <= 0 || b.Size.Z() <= 0 {
		return false
	}
	return collision.BoxAround(b.Center, b.Size).Valid()
}

// yamlLevel represents the YAML structure for a level file.
type yamlLevel struct {
	ID           string      `yaml:"id"`
	Name         string      `yaml:"name"`
	Spawn        yamlPoint   `yaml:"spawn"`
	Platforms    []yamlBox   `yaml:"platforms"`
	Collectibles []yamlPoint `yaml:"collectibles,omitempty"`
	Hazards      []yamlBox   `yaml:"hazards,omitempty"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type yamlBox struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
	D float64 `yaml:"d"`
}

func (p yamlPoint) vec() vecmath.Vec3 { return vecmath.V3(p.X, p.Y, p.Z) }

func (b yamlBox) box() Box {
	return Box{Center: vecmath.V3(b.X, b.Y, b.Z), Size: vecmath.V3(b.W, b.H, b.D)}
}

// ParseLevel parses a YAML level file.
func ParseLevel(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}
	if len(yl.Platforms) != FixedPlatforms {
		return Level{}, fmt.Errorf("level %s: want %d platforms, got %d", yl.ID, FixedPlatforms, len(yl.Platforms))
	}

	if !vecmath.Finite(yl.Spawn.vec()) {
		return Level{}, fmt.Errorf("level %s: spawn is not finite", yl.ID)
	}

	lvl := Level{
		ID:    yl.ID,
		Name:  yl.Name,
		Spawn: yl.Spawn.vec(),
	}
	for i, p := range yl.Platforms {
		b := p.box()
		if !b.usable() {
			return Level{}, fmt.Errorf("level %s: platform %d has invalid bounds", yl.ID, i)
		}
		lvl.Platforms = append(lvl.Platforms, b)
	}
	for _, c := range yl.Collectibles {
		lvl.Collectibles = append(lvl.Collectibles, c.vec())
	}
	for i, h := range yl.Hazards {
		b := h.box()
		if !b.usable() {
			return Level{}, fmt.Errorf("level %s: hazard %d has invalid bounds", yl.ID, i)
		}
		lvl.Hazards = append(lvl.Hazards, b)
	}
	return lvl, nil
}

// LoadFile loads a single level file from disk.
func LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	lvl.FilePath = p
	return lvl, nil
}

// Embedded returns every built-in level sorted by ID.
func Embedded() ([]Level, error) {
	entries, err := fs.ReadDir(embeddedLevels, "levels")
	if err != nil {
		return nil, fmt.Errorf("reading embedded levels: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		data, err := embeddedLevels.ReadFile(path.Join("levels", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded level %s: %w", e.Name(), err)
		}
		lvl, err := ParseLevel(data)
		if err != nil {
			return nil, fmt.Errorf("embedded level %s: %w", e.Name(), err)
		}
		levels = append(levels, lvl)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadByID returns the built-in level with the given ID.
func LoadByID(id string) (Level, error) {
	levels, err := Embedded()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all built-in level IDs in sorted order.
func ListIDs() ([]string, error) {
	levels, err := Embedded()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Resolve picks a level file when path is set, otherwise the built-in level id.
func Resolve(id, file string) (Level, error) {
	if file != "" {
		return LoadFile(file)
	}
	return LoadByID(id)
}

func isSupportedExtension(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
