package collision

import (
	"math"
	"testing"

	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

func box(minX, maxX, minY, maxY, minZ, maxZ float64) AABB {
	return AABB{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY, MinZ: minZ, MaxZ: maxZ}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     AABB
		expected bool
	}{
		{
			name:     "penetrating boxes",
			a:        box(0, 2, 0, 2, 0, 2),
			b:        box(1, 3, 1, 3, 1, 3),
			expected: true,
		},
		{
			name:     "touching on X (no overlap)",
			a:        box(0, 2, 0, 2, 0, 2),
			b:        box(2, 4, 0, 2, 0, 2),
			expected: false,
		},
		{
			name:     "touching on Y (resting contact)",
			a:        box(0, 2, 0, 2, 0, 2),
			b:        box(0, 2, 2, 4, 0, 2),
			expected: false,
		},
		{
			name:     "fully contained",
			a:        box(0, 10, 0, 10, 0, 10),
			b:        box(4, 5, 4, 5, 4, 5),
			expected: true,
		},
		{
			name:     "overlap on X and Y only",
			a:        box(0, 2, 0, 2, 0, 2),
			b:        box(1, 3, 1, 3, 5, 6),
			expected: false,
		},
		{
			name:     "separated",
			a:        box(0, 1, 0, 1, 0, 1),
			b:        box(5, 6, 5, 6, 5, 6),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlap(tc.a, tc.b); got != tc.expected {
				t.Errorf("Overlap() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := Overlap(tc.b, tc.a); got != tc.expected {
				t.Errorf("Overlap() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPlayerAABBAtOrigin(t *testing.T) {
	got := PlayerAABB(vecmath.V3(0, 0, 0))
	expected := box(-0.4, 0.4, 0, 2.8, -0.25, 0.25)
	if got != expected {
		t.Errorf("PlayerAABB(0,0,0) = %+v, expected %+v", got, expected)
	}
}

func TestPlayerAABBOffset(t *testing.T) {
	got := PlayerAABB(vecmath.V3(5, 3, -2))

	checks := []struct {
		name      string
		got, want float64
	}{
		{"MinX", got.MinX, 4.6},
		{"MaxX", got.MaxX, 5.4},
		{"MinY", got.MinY, 3},
		{"MaxY", got.MaxY, 5.8},
		{"MinZ", got.MinZ, -2.25},
		{"MaxZ", got.MaxZ, -1.75},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %f, expected %f", c.name, c.got, c.want)
		}
	}
}

func TestPlayerStandingOnPlatformIsNotOverlap(t *testing.T) {
	platform := BoxAround(vecmath.V3(0, -0.5, 0), vecmath.V3(4, 1, 4))
	player := PlayerAABB(vecmath.V3(0, 0, 0))

	if Overlap(player, platform) {
		t.Error("player resting exactly on platform top should not overlap")
	}

	sunk := PlayerAABB(vecmath.V3(0, -0.01, 0))
	if !Overlap(sunk, platform) {
		t.Error("player sunk into platform should overlap")
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(vecmath.V3(1, 2, 3), vecmath.V3(2, 4, 6))
	if b != box(0, 2, 0, 4, 0, 6) {
		t.Errorf("BoxAround = %+v", b)
	}
	if !b.Center().ApproxEqual(vecmath.V3(1, 2, 3)) {
		t.Errorf("Center = %v", b.Center())
	}
	if !b.Size().ApproxEqual(vecmath.V3(2, 4, 6)) {
		t.Errorf("Size = %v", b.Size())
	}
}

func TestValid(t *testing.T) {
	if !box(0, 1, 0, 1, 0, 1).Valid() {
		t.Error("unit box should be valid")
	}
	if box(1, 0, 0, 1, 0, 1).Valid() {
		t.Error("inverted box should be invalid")
	}
	nan := PlayerAABB(vecmath.V3(math.NaN(), 0, 0))
	if nan.Valid() {
		t.Error("NaN box should be invalid")
	}
}

func TestOverlapXZ(t *testing.T) {
	a := box(0, 2, 0, 1, 0, 2)
	b := box(1, 3, 10, 11, 1, 3)
	if !OverlapXZ(a, b) {
		t.Error("footprints overlap regardless of height")
	}
	if Overlap(a, b) {
		t.Error("boxes at different heights should not overlap")
	}
}
