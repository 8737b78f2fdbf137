package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/raanman3d/internal/layout"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

var (
	flagLayoutLevel  string
	flagLayoutFile   string
	flagLayoutFlat   bool
	flagLayoutFormat string
	flagLayoutList   bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the generated layout of a level",
	Long: `Generate a level exactly as a run would and print every platform,
collectible, enemy and hazard. The same level and seed always print the
same layout.

Examples:
  raanman layout
  raanman layout --level level-2 --seed 42
  raanman layout --file ./my-level.yaml --flat --format json
  raanman layout --list`,
	Run: runLayout,
}

func init() {
	f := layoutCmd.Flags()
	f.StringVar(&flagLayoutLevel, "level", "", "Built-in level ID (default from tuning)")
	f.StringVar(&flagLayoutFile, "file", "", "Level YAML file")
	f.BoolVar(&flagLayoutFlat, "flat", false, "Generate the 2D variant")
	f.StringVar(&flagLayoutFormat, "format", "yaml", "Output format: yaml or json")
	f.BoolVar(&flagLayoutList, "list", false, "Print the built-in level IDs and exit")
}

// listLevels prints one built-in level ID per line.
func listLevels(w io.Writer) error {
	ids, err := layout.ListIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}

type point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func toPoint(v vecmath.Vec3) point {
	return point{X: v.X(), Y: v.Y(), Z: v.Z()}
}

type platformDump struct {
	ID     int   `yaml:"id" json:"id"`
	Center point `yaml:"center" json:"center"`
	Size   point `yaml:"size" json:"size"`
	Fixed  bool  `yaml:"fixed,omitempty" json:"fixed,omitempty"`
}

type collectibleDump struct {
	ID   int   `yaml:"id" json:"id"`
	Base point `yaml:"base" json:"base"`
}

type enemyDump struct {
	ID       int     `yaml:"id" json:"id"`
	Platform int     `yaml:"platform" json:"platform"`
	Home     point   `yaml:"home" json:"home"`
	Range    float64 `yaml:"range" json:"range"`
}

type hazardDump struct {
	ID     int   `yaml:"id" json:"id"`
	Center point `yaml:"center" json:"center"`
	Size   point `yaml:"size" json:"size"`
}

type layoutDump struct {
	Level        string            `yaml:"level" json:"level"`
	Name         string            `yaml:"name" json:"name"`
	Seed         int64             `yaml:"seed" json:"seed"`
	Flat         bool              `yaml:"flat" json:"flat"`
	Spawn        point             `yaml:"spawn" json:"spawn"`
	Platforms    []platformDump    `yaml:"platforms" json:"platforms"`
	Collectibles []collectibleDump `yaml:"collectibles" json:"collectibles"`
	Enemies      []enemyDump       `yaml:"enemies" json:"enemies"`
	Hazards      []hazardDump      `yaml:"hazards" json:"hazards"`
}

func dumpLayout(lay layout.Layout) layoutDump {
	d := layoutDump{
		Level: lay.LevelID,
		Name:  lay.Name,
		Seed:  lay.Seed,
		Flat:  lay.Flat,
		Spawn: toPoint(lay.Spawn),
	}
	for _, p := range lay.Platforms {
		d.Platforms = append(d.Platforms, platformDump{ID: p.ID, Center: toPoint(p.Center), Size: toPoint(p.Size), Fixed: p.Fixed})
	}
	for _, c := range lay.Collectibles {
		d.Collectibles = append(d.Collectibles, collectibleDump{ID: c.ID, Base: toPoint(c.Base)})
	}
	for _, e := range lay.Enemies {
		d.Enemies = append(d.Enemies, enemyDump{ID: e.ID, Platform: e.Platform, Home: toPoint(e.Home), Range: e.Range})
	}
	for _, h := range lay.Hazards {
		d.Hazards = append(d.Hazards, hazardDump{ID: h.ID, Center: toPoint(h.Center), Size: toPoint(h.Size)})
	}
	return d
}

func writeLayout(w io.Writer, d layoutDump, format string) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func runLayout(_ *cobra.Command, _ []string) {
	if flagLayoutList {
		if err := listLevels(os.Stdout); err != nil {
			fail("%v", err)
		}
		return
	}

	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}
	if flagLayoutLevel != "" {
		tuning.Level.ID = flagLayoutLevel
		tuning.Level.File = ""
	}
	if flagLayoutFile != "" {
		tuning.Level.File = flagLayoutFile
	}

	lay, err := layout.Build(tuning, flagSeed, flagLayoutFlat)
	if err != nil {
		fail("%v", err)
	}
	if err := writeLayout(os.Stdout, dumpLayout(lay), flagLayoutFormat); err != nil {
		fail("%v", err)
	}
}
