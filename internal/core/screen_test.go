package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColored(3, 2, '▲', ColorOrange)

	c := s.GetCell(3, 2)
	if c.Rune != '▲' || c.Color != ColorOrange {
		t.Errorf("GetCell(3, 2) = %+v, expected orange ▲", c)
	}
	if s.Get(3, 2) != '▲' {
		t.Errorf("Get(3, 2) = %q, expected ▲", s.Get(3, 2))
	}

	// Out of bounds writes are ignored, reads are blank
	s.SetColored(-1, 0, 'X', ColorRed)
	s.SetColored(10, 0, 'X', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out-of-bounds cells should read as space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColored(7, 1, "♥♥♥♥", ColorRed)

	if got := s.Row(1); got != "       ♥♥♥" {
		t.Errorf("Row(1) = %q, expected clipped hearts", got)
	}
	if s.GetCell(8, 1).Color != ColorRed {
		t.Error("DrawTextColored should color each rune")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, '#')
	s.Set(4, 4, '@')

	s.Resize(3, 3)
	if s.Get(1, 1) != '#' {
		t.Error("Resize should preserve content inside the new bounds")
	}

	s.Resize(6, 6)
	if s.Get(4, 4) != ' ' {
		t.Error("content clipped by a shrink should not reappear")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawHLine(0, 0, 3, '═', ColorGray)
	s.DrawVLine(1, 0, 2, '|', ColorDefault)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("String() should have 2 lines, got %d", len(lines))
	}
	if lines[0] != "═|═" || lines[1] != " | " {
		t.Errorf("String() = %q", s.String())
	}
}
