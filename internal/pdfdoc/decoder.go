// Package pdfdoc defines the decoder contract the analysis pipeline consumes:
// per-page layout blocks made of lines and styled spans, clipped text
// extraction, document metadata, and an embedded outline when one exists.
package pdfdoc

import "strings"

// Rect is a page-relative bounding box in top-down coordinates:
// (X0,Y0) is the top-left corner, (X1,Y1) the bottom-right, Y0 <= Y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Union returns the smallest rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if o.X0 < r.X0 {
		r.X0 = o.X0
	}
	if o.Y0 < r.Y0 {
		r.Y0 = o.Y0
	}
	if o.X1 > r.X1 {
		r.X1 = o.X1
	}
	if o.Y1 > r.Y1 {
		r.Y1 = o.Y1
	}
	return r
}

// Span is an atomic glyph run with one font.
type Span struct {
	Text string
	Size int    // rounded font size in points
	Font string // raw font name; bold is derived via IsBoldFont
	BBox Rect
}

// Line is a horizontal run of spans.
type Line struct {
	Spans []Span
	BBox  Rect
}

// Block is a layout grouping of lines, as reconstructed by the decoder.
type Block struct {
	Lines []Line
	BBox  Rect
}

// PageLayout is the decoded layout of one page.
type PageLayout struct {
	Number int // 1-based
	Width  float64
	Height float64
	Blocks []Block
}

// NativeEntry is one entry of an outline embedded in the file by its
// producing application. No bounding box is available for these.
type NativeEntry struct {
	Level int
	Text  string
	Page  int // 1-based
}

// Decoder provides read access to one open PDF document.
type Decoder interface {
	// NumPages returns the page count.
	NumPages() int
	// Page returns the decoded layout of page n (1-based).
	Page(n int) (PageLayout, error)
	// PageText returns plain text of page n restricted to clip.
	PageText(n int, clip Rect) (string, error)
	// MetadataTitle returns the document metadata title, or "".
	MetadataTitle() string
	// NativeOutline returns the embedded outline, or nil when absent.
	NativeOutline() []NativeEntry
	// Close releases the underlying file.
	Close() error
}

// Opener opens a document at path. The pipeline takes an Opener so tests can
// substitute in-memory documents.
type Opener func(path string) (Decoder, error)

// boldMarkers are font-name substrings that indicate a bold face.
var boldMarkers = []string{"bold", "black", "heavy", "condb", "cbi"}

// IsBoldFont reports whether a font name denotes a bold face.
func IsBoldFont(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range boldMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
