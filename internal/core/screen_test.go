package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, want 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.GetCell(5, 5).Rune != 'X' {
		t.Errorf("GetCell(5, 5) = %q, expected 'X'", s.GetCell(5, 5).Rune)
	}

	s.SetColored(2, 3, '@', ColorBrightGreen)
	if c := s.GetCell(2, 3); c.Rune != '@' || c.Color != ColorBrightGreen {
		t.Errorf("GetCell(2, 3) = %+v", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetColored(0, -1, 'A', ColorRed)
	if s.GetCell(-1, 0).Rune != ' ' || s.GetCell(100, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.Fill('#')
	if s.GetCell(3, 3).Rune != '#' {
		t.Fatal("Fill did not fill")
	}
	s.SetColored(1, 1, 'X', ColorRed)
	s.Clear()
	if c := s.GetCell(1, 1); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("after Clear cell = %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")
	if got := s.Row(1)[2:7]; got != "Hello" {
		t.Errorf("row = %q", got)
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.GetCell(18, 0).Rune != 'H' || s.GetCell(19, 0).Rune != 'e' {
		t.Error("Text should be clipped at right boundary")
	}

	// Multi-byte runes occupy one cell each.
	s.DrawTextColored(0, 2, "♥♥♥", ColorRed)
	if s.GetCell(2, 2).Rune != '♥' || s.GetCell(3, 2).Rune != ' ' {
		t.Errorf("row 2 = %q", s.Row(2))
	}
	if s.GetCell(1, 2).Color != ColorRed {
		t.Error("DrawTextColored lost color")
	}

	s.DrawTextCentered(4, "Hi")
	if s.GetCell(9, 4).Rune != 'H' || s.GetCell(10, 4).Rune != 'i' {
		t.Errorf("centered row = %q", s.Row(4))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘'}
	for pos, want := range corners {
		if got := s.GetCell(pos[0], pos[1]).Rune; got != want {
			t.Errorf("corner %v = %q, want %q", pos, got, want)
		}
	}
	for x := 2; x < 5; x++ {
		if s.GetCell(x, 1).Rune != '─' || s.GetCell(x, 4).Rune != '─' {
			t.Errorf("horizontal edge broken at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.GetCell(1, y).Rune != '│' || s.GetCell(5, y).Rune != '│' {
			t.Errorf("vertical edge broken at y=%d", y)
		}
	}
	if s.GetCell(3, 2).Rune != ' ' {
		t.Error("DrawBox should not fill the interior")
	}
}

func TestScreenFillPolygon(t *testing.T) {
	s := NewScreen(10, 10)
	square := []PointF{{2, 2}, {6, 2}, {6, 6}, {2, 6}}
	s.FillPolygon(square, '#', ColorBlue)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 6 && y >= 2 && y < 6
			if got := s.GetCell(x, y).Rune == '#'; got != inside {
				t.Fatalf("cell (%d, %d) filled = %v, want %v", x, y, got, inside)
			}
		}
	}
	if s.GetCell(3, 3).Color != ColorBlue {
		t.Error("polygon color lost")
	}

	// Reversed winding and off-screen polygons are fine.
	s.Clear()
	s.FillPolygon([]PointF{{2, 6}, {6, 6}, {6, 2}, {2, 2}}, '#', ColorBlue)
	if s.GetCell(4, 4).Rune != '#' {
		t.Error("winding should not matter")
	}
	s.FillPolygon([]PointF{{-50, -50}, {500, -50}, {500, 500}, {-50, 500}}, '.', ColorGray)
	if s.GetCell(0, 0).Rune != '.' || s.GetCell(9, 9).Rune != '.' {
		t.Error("oversized polygon should clip to the screen")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Error("Out of bounds row should be spaces")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got, want := s.String(), "AAAAA\nBBBBB\nCCCCC"; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}
