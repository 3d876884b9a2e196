package preview

import (
	"testing"

	"github.com/dshills/mathdown/internal/doctree"
	"github.com/dshills/mathdown/internal/render"
)

func TestPlaceAbove(t *testing.T) {
	caret := Rect{X: 100, Y: 200, W: 2, H: 16}
	panel := Size{W: 120, H: 40}
	vp := Size{W: 800, H: 600}

	got := Place(caret, panel, vp)
	if got.Below {
		t.Fatal("expected placement above")
	}
	if got.X != 100 {
		t.Errorf("X = %d, want 100", got.X)
	}
	if want := 200 - GapAbove - 40; got.Y != want {
		t.Errorf("Y = %d, want %d", got.Y, want)
	}
}

func TestPlaceFlipsBelow(t *testing.T) {
	// Caret near the top: 30 - 10 - 40 = -20 < TopMargin.
	caret := Rect{X: 100, Y: 30, W: 2, H: 16}
	got := Place(caret, Size{W: 120, H: 40}, Size{W: 800, H: 600})
	if !got.Below {
		t.Fatal("expected placement below")
	}
	if want := 30 + 16 + GapBelow; got.Y != want {
		t.Errorf("Y = %d, want %d", got.Y, want)
	}
}

func TestPlaceHorizontalClamp(t *testing.T) {
	vp := Size{W: 800, H: 600}
	panel := Size{W: 100, H: 40}

	left := Place(Rect{X: 2, Y: 300}, panel, vp)
	if left.X != ViewportMargin {
		t.Errorf("left clamp X = %d, want %d", left.X, ViewportMargin)
	}

	right := Place(Rect{X: 790, Y: 300}, panel, vp)
	if want := 800 - ViewportMargin - 100; right.X != want {
		t.Errorf("right clamp X = %d, want %d", right.X, want)
	}
}

func TestMatchAt(t *testing.T) {
	content := "see $x+y$ and $$z$$"
	tests := []struct {
		caret   int
		wantTex string
		wantOK  bool
	}{
		{0, "", false},
		{4, "x+y", true},  // at opening delimiter
		{6, "x+y", true},  // inside
		{9, "x+y", true},  // at closing edge, inclusive
		{10, "", false},   // between runs
		{16, "z", true},   // inside display run
		{19, "z", true},   // at display closing edge
	}
	for _, tt := range tests {
		m, ok := MatchAt(content, tt.caret)
		if ok != tt.wantOK {
			t.Errorf("MatchAt(%d) ok = %v, want %v", tt.caret, ok, tt.wantOK)
			continue
		}
		if ok && m.Tex != tt.wantTex {
			t.Errorf("MatchAt(%d) tex = %q, want %q", tt.caret, m.Tex, tt.wantTex)
		}
	}
}

func TestPanelUpdate(t *testing.T) {
	p := NewPanel(render.NewTextEngine())
	blk := doctree.NewBlock(doctree.BlockParagraph)
	seg := doctree.NewText("typing $a+b$ here")
	blk.Append(seg)

	if !p.Update(seg, 9) {
		t.Fatal("caret inside run: panel should show")
	}
	if p.Content() != "a+b" || p.Display() {
		t.Errorf("content = %q display = %v", p.Content(), p.Display())
	}

	if p.Update(seg, 0) {
		t.Error("caret outside run: panel should hide")
	}
	if p.Visible() {
		t.Error("panel still visible after hide")
	}
}

func TestPanelHidesForNonScannable(t *testing.T) {
	p := NewPanel(render.NewTextEngine())

	if p.Update(nil, 0) {
		t.Error("nil segment should hide")
	}

	code := doctree.NewBlock(doctree.BlockCode)
	seg := doctree.NewText("$x$")
	code.Append(seg)
	if p.Update(seg, 1) {
		t.Error("code block segment should hide")
	}
}

func TestPanelRenderFailureFallsBack(t *testing.T) {
	p := NewPanel(render.FailEngine{})
	blk := doctree.NewBlock(doctree.BlockParagraph)
	seg := doctree.NewText("$x$")
	blk.Append(seg)

	if !p.Update(seg, 1) {
		t.Fatal("panel should show")
	}
	if p.Content() != "$x$" {
		t.Errorf("content = %q, want raw fallback", p.Content())
	}
}
