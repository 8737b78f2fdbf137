package gamestate

import "testing"

func TestComboScoring(t *testing.T) {
	s := New(3)

	for i := 0; i < 3; i++ {
		s.Collect(100)
	}

	if s.Score != 600 {
		t.Errorf("Score = %d, expected 600 (100+200+300)", s.Score)
	}
	if s.Combo != 4 {
		t.Errorf("Combo = %d, expected 4", s.Combo)
	}
}

func TestDefeatSharesCombo(t *testing.T) {
	s := New(3)
	if got := s.Collect(100); got != 100 {
		t.Errorf("first collect = %d, expected 100", got)
	}
	if got := s.Defeat(250); got != 500 {
		t.Errorf("defeat at combo 2 = %d, expected 500", got)
	}
}

func TestDamageResetsCombo(t *testing.T) {
	s := New(3)
	s.Collect(100)
	s.Collect(100)

	s.Damage(5)
	if s.Combo != 1 {
		t.Errorf("damage should reset combo to 1, got %d", s.Combo)
	}
	if s.Score != 300 {
		t.Errorf("damage must not touch score, got %d", s.Score)
	}
}

func TestHealthFloor(t *testing.T) {
	s := New(3)
	if s.Damage(60) {
		t.Error("60 damage should not be fatal")
	}
	if !s.Damage(60) {
		t.Error("second 60 damage should be fatal")
	}
	if s.Health != 0 {
		t.Errorf("health should floor at 0, got %f", s.Health)
	}
	if !s.Dead() {
		t.Error("Dead() should be true at 0 health")
	}
}

func TestDamageIgnoresNonPositive(t *testing.T) {
	s := New(3)
	s.Collect(100)
	s.Damage(0)
	s.Damage(-5)
	if s.Health != MaxHealth || s.Combo != 2 {
		t.Errorf("non-positive damage should be a no-op, health=%f combo=%d", s.Health, s.Combo)
	}
}

func TestHackMeterCeiling(t *testing.T) {
	tests := []struct {
		start, delta, expected float64
	}{
		{95, 5, 100},
		{98, 5, 100},
		{100, 5, 100},
		{40, 5, 45},
	}

	for _, tc := range tests {
		s := New(1)
		s.Hack = tc.start
		s.AddHack(tc.delta)
		if s.Hack != tc.expected {
			t.Errorf("AddHack(%f) from %f = %f, expected %f", tc.delta, tc.start, s.Hack, tc.expected)
		}
	}
}

func TestTriggerHack(t *testing.T) {
	s := New(1)
	s.Hack = 99
	if s.TriggerHack(5) {
		t.Error("hack should need a full meter")
	}

	s.AddHack(5)
	if !s.TriggerHack(5) {
		t.Fatal("full meter should trigger hack")
	}
	if s.Hack != 0 {
		t.Errorf("trigger should empty meter, got %f", s.Hack)
	}
	if !s.HackActive() {
		t.Error("hack should be active")
	}

	s.Tick(5)
	if s.HackActive() {
		t.Error("hack should expire after its duration")
	}
}

func TestHitInvulnerability(t *testing.T) {
	s := New(1)

	applied, _ := s.Hit(10, 1)
	if !applied {
		t.Fatal("first hit should land")
	}
	applied, _ = s.Hit(10, 1)
	if applied {
		t.Error("second hit inside the invulnerability window should be ignored")
	}
	if s.Health != 90 {
		t.Errorf("health = %f, expected 90", s.Health)
	}

	if !s.HUD().Invulnerable {
		t.Error("HUD should report the invulnerability window")
	}

	s.Tick(1)
	if s.HUD().Invulnerable {
		t.Error("window should have expired")
	}
	applied, _ = s.Hit(10, 1)
	if !applied {
		t.Error("hit after the window should land")
	}
}

func TestLivesAndRespawn(t *testing.T) {
	s := New(2)
	s.Collect(100)
	s.Damage(100)

	if s.LoseLife() {
		t.Fatal("first death with 2 lives should not end the run")
	}
	s.Respawn()
	if s.Health != MaxHealth || s.Combo != 1 || s.Hack != 0 {
		t.Errorf("respawn should restore health/combo/hack, got %+v", s)
	}
	if s.Score != 100 {
		t.Errorf("respawn keeps score, got %d", s.Score)
	}

	if !s.LoseLife() {
		t.Error("losing the last life should end the run")
	}

	s.Reset(2)
	if s.Lives != 2 || s.Score != 0 {
		t.Errorf("Reset should restore lives and score, got lives=%d score=%d", s.Lives, s.Score)
	}
}

func TestHealthBars(t *testing.T) {
	tests := []struct {
		health float64
		bars   int
	}{
		{100, 10},
		{0, 0},
		{-20, 0},
		{55, 6},
		{54, 5},
		{4, 0},
		{5, 1},
		{150, 10},
	}

	prev := -1
	for _, tc := range tests {
		if got := HealthBars(tc.health); got != tc.bars {
			t.Errorf("HealthBars(%f) = %d, expected %d", tc.health, got, tc.bars)
		}
	}

	for h := 0.0; h <= 100; h += 0.5 {
		bars := HealthBars(h)
		if bars < prev {
			t.Fatalf("HealthBars not monotonic at %f: %d < %d", h, bars, prev)
		}
		prev = bars
	}
}

func TestHUD(t *testing.T) {
	s := New(3)
	s.Collect(100)
	s.AddHack(50)

	hud := s.HUD()
	if hud.Score != 100 || hud.Combo != 2 || hud.HealthBars != 10 || hud.HackPercent != 50 || hud.Lives != 3 {
		t.Errorf("unexpected HUD: %+v", hud)
	}
}
