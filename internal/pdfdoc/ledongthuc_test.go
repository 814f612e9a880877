package pdfdoc

import (
	"strings"
	"testing"

	pdflib "github.com/ledongthuc/pdf"
)

func glyph(s string, x, y, w, size float64, font string) pdflib.Text {
	return pdflib.Text{S: s, X: x, Y: y, W: w, FontSize: size, Font: font}
}

func TestIsBoldFont(t *testing.T) {
	tests := []struct {
		font string
		want bool
	}{
		{"Helvetica-Bold", true},
		{"Arial-Black", true},
		{"TimesHeavy", true},
		{"FuturaCondB", true},
		{"GaramondCBI", true},
		{"Helvetica", false},
		{"Times-Italic", false},
	}
	for _, tc := range tests {
		if got := IsBoldFont(tc.font); got != tc.want {
			t.Errorf("IsBoldFont(%q) = %v, want %v", tc.font, got, tc.want)
		}
	}
}

func TestGroupLines_BucketsByBaseline(t *testing.T) {
	// Two visual lines: Y=700 and Y=680 (PDF Y grows upward). Glyphs arrive
	// out of X order within the top line.
	texts := []pdflib.Text{
		glyph("world", 60, 700.5, 30, 12, "Helvetica"),
		glyph("hello", 20, 700, 28, 12, "Helvetica"),
		glyph("below", 20, 680, 30, 12, "Helvetica"),
	}

	lines := groupLines(texts, 792)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lineString(lines[0]); got != "hello world" {
		t.Errorf("top line = %q, want %q", got, "hello world")
	}
	if got := lineString(lines[1]); got != "below" {
		t.Errorf("second line = %q", got)
	}
	// Top-down flip: the Y=700 line must come first with the smaller Y0.
	if lines[0].BBox.Y0 >= lines[1].BBox.Y0 {
		t.Errorf("lines not in top-down order: %v then %v", lines[0].BBox, lines[1].BBox)
	}
}

func TestAssembleLine_SplitsSpansOnFontChange(t *testing.T) {
	texts := []pdflib.Text{
		glyph("Key", 20, 700, 20, 12, "Helvetica-Bold"),
		glyph("point", 45, 700, 26, 12, "Helvetica"),
	}

	line := assembleLine(texts, 792)
	if len(line.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(line.Spans), line.Spans)
	}
	if line.Spans[0].Font != "Helvetica-Bold" || line.Spans[1].Font != "Helvetica" {
		t.Errorf("span fonts = %q, %q", line.Spans[0].Font, line.Spans[1].Font)
	}
}

func TestAssembleLine_WordGaps(t *testing.T) {
	// Characters of one word are adjacent; a wide gap starts a new word.
	texts := []pdflib.Text{
		glyph("h", 20, 700, 6, 12, "Helvetica"),
		glyph("i", 26, 700, 4, 12, "Helvetica"),
		glyph("there", 45, 700, 30, 12, "Helvetica"),
	}

	line := assembleLine(texts, 792)
	if len(line.Spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(line.Spans))
	}
	if got := strings.TrimSpace(line.Spans[0].Text); got != "hi there" {
		t.Errorf("span text = %q, want %q", got, "hi there")
	}
}

func TestGroupBlocks_SplitsAtVerticalGaps(t *testing.T) {
	line := func(y0 float64) Line {
		return Line{BBox: Rect{X0: 20, Y0: y0, X1: 500, Y1: y0 + 12}}
	}
	// Lines 14pt apart belong together; a 60pt gap starts a new block.
	lines := []Line{line(100), line(114), line(128), line(200), line(214)}

	blocks := groupBlocks(lines)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if len(blocks[0].Lines) != 3 || len(blocks[1].Lines) != 2 {
		t.Errorf("block line counts = %d, %d", len(blocks[0].Lines), len(blocks[1].Lines))
	}
	if blocks[0].BBox.Y1 < 128 {
		t.Errorf("block bbox not unioned: %+v", blocks[0].BBox)
	}
}

func TestMemoryDoc_PageTextClips(t *testing.T) {
	doc := &MemoryDoc{
		Pages: []PageLayout{{
			Number: 1, Width: 612, Height: 792,
			Blocks: []Block{{
				Lines: []Line{
					{Spans: []Span{{Text: "inside"}}, BBox: Rect{Y0: 100, Y1: 112}},
					{Spans: []Span{{Text: "outside"}}, BBox: Rect{Y0: 500, Y1: 512}},
				},
			}},
		}},
	}

	got, err := doc.PageText(1, Rect{X0: 0, Y0: 0, X1: 612, Y1: 300})
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(got) != "inside" {
		t.Errorf("clipped text = %q, want %q", got, "inside")
	}

	if _, err := doc.PageText(3, Rect{}); err == nil {
		t.Error("expected error for out-of-range page")
	}
}

func lineString(l Line) string {
	parts := make([]string, 0, len(l.Spans))
	for _, s := range l.Spans {
		parts = append(parts, strings.TrimSpace(s.Text))
	}
	return strings.Join(parts, " ")
}
