package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedLevels(t *testing.T) {
	ids, err := ListIDs()
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if len(ids) < 2 || ids[0] != "level-1" || ids[1] != "level-2" {
		t.Fatalf("ids = %v", ids)
	}

	for _, id := range ids {
		lvl, err := LoadByID(id)
		if err != nil {
			t.Fatalf("LoadByID(%s): %v", id, err)
		}
		if len(lvl.Platforms) != FixedPlatforms {
			t.Errorf("%s: %d platforms", id, len(lvl.Platforms))
		}
		// Spawn stands on the first platform.
		first := lvl.Platforms[0]
		if top := first.Center.Y() + first.Size.Y()/2; top != lvl.Spawn.Y() {
			t.Errorf("%s: spawn y %v, first top %v", id, lvl.Spawn.Y(), top)
		}
	}

	if _, err := LoadByID("missing"); err == nil {
		t.Error("expected error for unknown id")
	}
}

// levelWith builds a level document whose tenth platform is last and with
// extra appended verbatim.
func levelWith(last, extra string) string {
	var b strings.Builder
	b.WriteString("id: a\nplatforms:\n")
	for i := range FixedPlatforms - 1 {
		fmt.Fprintf(&b, "  - {x: %d, y: 0, z: 0, w: 1, h: 1, d: 1}\n", i*3)
	}
	b.WriteString("  - " + last + "\n")
	b.WriteString(extra)
	return b.String()
}

func TestParseLevelErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "id: [", "yaml unmarshal"},
		{"no id", "name: x\n", "no id"},
		{"too few platforms", "id: a\nplatforms:\n  - {x: 0, y: 0, z: 0, w: 1, h: 1, d: 1}\n", "want 10 platforms"},
		{"zero size platform", levelWith("{x: 0, y: 0, z: 0, w: 0, h: 1, d: 1}", ""), "platform 9 has invalid bounds"},
		{"nan size platform", levelWith("{x: 0, y: 0, z: 0, w: .nan, h: 1, d: 1}", ""), "platform 9 has invalid bounds"},
		{"infinite platform", levelWith("{x: .inf, y: 0, z: 0, w: 1, h: 1, d: 1}", ""), "platform 9 has invalid bounds"},
		{"bad hazard", levelWith("{x: 0, y: 0, z: 0, w: 1, h: 1, d: 1}", "hazards:\n  - {x: 0, y: 0, z: 0, w: 1, h: -1, d: 1}\n"), "hazard 0 has invalid bounds"},
		{"nan spawn", levelWith("{x: 0, y: 0, z: 0, w: 1, h: 1, d: 1}", "spawn: {x: .nan, y: 0, z: 0}\n"), "spawn is not finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	data, err := embeddedLevels.ReadFile("levels/level-1.yaml")
	if err != nil {
		t.Fatal(err)
	}
	custom := strings.Replace(string(data), "id: level-1", "id: custom", 1)
	p := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(p, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := Resolve("level-2", p)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if lvl.ID != "custom" || lvl.FilePath != p {
		t.Errorf("got id %q path %q", lvl.ID, lvl.FilePath)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
