package layout

import "testing"

func TestLetterGeometry(t *testing.T) {
	g := Letter()

	// 8.5x11in at 72pt/in with 0.75in margins.
	if g.PageWidth != 612 || g.PageHeight != 792 || g.Margin != 54 {
		t.Fatalf("page = %vx%v margin %v, want 612x792 margin 54", g.PageWidth, g.PageHeight, g.Margin)
	}
	if got := g.ContentWidth(); got != 504 {
		t.Errorf("ContentWidth = %v, want 504", got)
	}
	if got := g.ContentHeight(); got != 684 {
		t.Errorf("ContentHeight = %v, want 684", got)
	}
	if got := g.ColumnWidth(); got != 243 {
		t.Errorf("ColumnWidth = %v, want 243", got)
	}
	// Two columns plus the gutter span the content width exactly.
	if got := 2*g.ColumnWidth() + g.ColumnGap; got != g.ContentWidth() {
		t.Errorf("columns + gap = %v, want %v", got, g.ContentWidth())
	}
}

func TestFigureWidthBuckets(t *testing.T) {
	g := Letter()

	tests := []struct {
		size string
		want float64
	}{
		{"very-small", 86.4},
		{"small", 129.6},
		{"medium", 180},
		{"large", 230.4},
		{"", 180},
		{"bogus", 180},
	}

	for _, tt := range tests {
		if got := g.FigureWidth(tt.size); got != tt.want {
			t.Errorf("FigureWidth(%q) = %v, want %v", tt.size, got, tt.want)
		}
	}

	// Every bucket fits inside one body column.
	for _, size := range []string{"very-small", "small", "medium", "large"} {
		if w := g.FigureWidth(size); w > g.ColumnWidth() {
			t.Errorf("bucket %q (%v) wider than a column (%v)", size, w, g.ColumnWidth())
		}
	}
}
