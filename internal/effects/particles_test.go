package effects

import (
	"testing"

	"github.com/vovakirdan/raanman3d/internal/device"
	"github.com/vovakirdan/raanman3d/internal/vecmath"
)

func TestPoolCapacityFollowsProfile(t *testing.T) {
	tests := []struct {
		tier device.Tier
		want int
	}{
		{device.Mobile, 400},
		{device.Desktop, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			p := NewPool(device.ProfileFor(tt.tier), 1)
			for range 150 {
				p.Burst(vecmath.V3(0, 1, 0), KindSpark, 20)
			}
			if p.Len() != tt.want {
				t.Errorf("saturated pool holds %d, expected %d", p.Len(), tt.want)
			}
		})
	}
}

func TestPoolNeverExceedsCap(t *testing.T) {
	p := NewPool(device.ProfileFor(device.Mobile), 7)
	p.SeedBackground(vecmath.V3(0, 0, 0), 20)
	if p.Len() != 30 {
		t.Fatalf("background particles = %d, expected 30", p.Len())
	}

	for i := 0; i < 50; i++ {
		p.Burst(vecmath.V3(0, 1, 0), KindSpark, 20)
	}
	if p.Len() != 400 {
		t.Errorf("pool should saturate at 400, got %d", p.Len())
	}

	ambient := 0
	for _, pt := range p.Particles() {
		if pt.Kind == KindAmbient {
			ambient++
		}
	}
	if ambient != 30 {
		t.Errorf("overwrite should keep ambient particles, got %d", ambient)
	}
}

func TestPoolUpdateExpires(t *testing.T) {
	p := NewPool(device.ProfileFor(device.Desktop), 3)
	p.SeedBackground(vecmath.V3(0, 0, 0), 10)
	p.Burst(vecmath.V3(0, 0, 0), KindPickup, 10)

	for i := 0; i < 120; i++ {
		p.Update(1.0/60, -28)
	}

	if p.Len() != 100 {
		t.Errorf("after 2s only ambient particles should remain, got %d", p.Len())
	}
	for _, pt := range p.Particles() {
		for i := range 3 {
			if pt.Position[i] < -10 || pt.Position[i] > 10 {
				t.Fatalf("ambient particle escaped its box: %v", pt.Position)
			}
		}
	}
}

func TestPoolDeterministic(t *testing.T) {
	a := NewPool(device.ProfileFor(device.Mobile), 42)
	b := NewPool(device.ProfileFor(device.Mobile), 42)
	a.Burst(vecmath.V3(1, 2, 3), KindSpark, 5)
	b.Burst(vecmath.V3(1, 2, 3), KindSpark, 5)

	for i := range a.Particles() {
		if a.Particles()[i] != b.Particles()[i] {
			t.Fatalf("particle %d differs between identically seeded pools", i)
		}
	}
}
