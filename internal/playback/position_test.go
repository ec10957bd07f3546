package playback

import (
	"math"
	"testing"

	"github.com/jwulff/glossplayer/internal/gloss"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name       string
		progress   float64
		lineCount  int
		lineLength int
		wantLine   int
		wantSign   int
	}{
		{"halfway", 0.5, 4, 3, 2, 0},
		{"end clamps", 1.0, 4, 3, 3, 0},
		{"start", 0, 4, 3, 0, 0},
		{"mid line", 0.125 + 0.0625, 4, 4, 0, 3},
		{"second line middle", 0.375, 4, 2, 1, 1},
		{"no lines", 0.5, 0, 3, NoIndex, NoIndex},
		{"empty line", 0.5, 4, 0, 2, NoIndex},
		{"over one", 1.7, 4, 3, 3, 0},
		{"negative", -0.3, 4, 3, 0, 0},
		{"single line", 0.99, 1, 10, 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := Map(tt.progress, tt.lineCount, tt.lineLength)
			if pos.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pos.Line, tt.wantLine)
			}
			if pos.Sign != tt.wantSign {
				t.Errorf("Sign = %d, want %d", pos.Sign, tt.wantSign)
			}
		})
	}
}

func TestMapLineFraction(t *testing.T) {
	pos := Map(0.5, 4, 3)
	if pos.LineFraction != 0 {
		t.Errorf("LineFraction = %v, want 0", pos.LineFraction)
	}

	pos = Map(0.3, 2, 5)
	if math.Abs(pos.LineFraction-0.6) > 1e-9 {
		t.Errorf("LineFraction = %v, want 0.6", pos.LineFraction)
	}
	if pos.Sign != 3 {
		t.Errorf("Sign = %d, want 3", pos.Sign)
	}
}

func TestMapNaN(t *testing.T) {
	pos := Map(math.NaN(), 3, 3)
	if pos.Line != 0 || pos.Sign != 0 || pos.Progress != 0 {
		t.Errorf("Map(NaN) = %+v, want start of document", pos)
	}
}

func TestMapHugeCounts(t *testing.T) {
	pos := Map(1.0, math.MaxInt, 1)
	if pos.Line != math.MaxInt-1 || pos.Sign != 0 {
		t.Errorf("Map(1, MaxInt, 1) = %+v, want last line", pos)
	}

	pos = Map(0.5, math.MaxInt, math.MaxInt)
	if pos.Line < 0 || pos.Line >= math.MaxInt || pos.Sign < 0 || pos.Sign >= math.MaxInt {
		t.Errorf("Map(0.5, MaxInt, MaxInt) = %+v, out of range", pos)
	}

	pos = Map(0.999999, 3, math.MaxInt)
	if pos.Line != 2 || pos.Sign < 0 {
		t.Errorf("Map(0.999999, 3, MaxInt) = %+v", pos)
	}
}

func TestMapMonotonic(t *testing.T) {
	const lines = 7
	prev := 0
	for i := 0; i <= 1000; i++ {
		p := float64(i) / 1000
		pos := Map(p, lines, 5)
		if pos.Line < prev {
			t.Fatalf("line went backwards at progress %v: %d -> %d", p, prev, pos.Line)
		}
		if pos.Line-prev > 1 {
			t.Fatalf("line skipped at progress %v: %d -> %d", p, prev, pos.Line)
		}
		if pos.Line < 0 || pos.Line >= lines {
			t.Fatalf("line out of range at progress %v: %d", p, pos.Line)
		}
		if pos.Sign < 0 || pos.Sign >= 5 {
			t.Fatalf("sign out of range at progress %v: %d", p, pos.Sign)
		}
		prev = pos.Line
	}
	if prev != lines-1 {
		t.Errorf("final line = %d, want %d", prev, lines-1)
	}
}

func TestLocate(t *testing.T) {
	doc := gloss.Parse("A | B\nC | D | E | F\nG")

	pos := Locate(doc, 0.5)
	if pos.Line != 1 {
		t.Fatalf("Line = %d, want 1", pos.Line)
	}
	// 0.5*3 = 1.5 → halfway through a four-sign line.
	if pos.Sign != 2 {
		t.Errorf("Sign = %d, want 2", pos.Sign)
	}

	if pos := Locate(gloss.Document{}, 0.5); pos.Active() {
		t.Errorf("empty document should have no active line: %+v", pos)
	}

	blank := gloss.Parse("A\n| |")
	if pos := Locate(blank, 0.9); pos.Line != 1 || pos.Sign != NoIndex {
		t.Errorf("line without signs: %+v", pos)
	}
}

func TestPositionHighlighted(t *testing.T) {
	pos := Map(0.5, 4, 3)
	if !pos.Highlighted(2, 0) {
		t.Error("expected (2,0) highlighted")
	}
	if pos.Highlighted(2, 1) || pos.Highlighted(1, 0) {
		t.Error("unexpected highlight")
	}
	none := Map(0.5, 4, 0)
	if none.Highlighted(2, NoIndex) {
		t.Error("a line without signs has nothing highlighted")
	}
}
