package outline

import (
	"strings"

	"github.com/docsift/docsift/internal/pdfdoc"
)

// Outline is the resolved document structure: a title plus ordered headings.
type Outline struct {
	Title    string    `json:"title"`
	Headings []Heading `json:"outline"`
}

// A strategy attempts to produce headings for a document. Returning ok=false
// hands off to the next strategy in priority order.
type strategy struct {
	name string
	run  func(doc pdfdoc.Decoder, title string) ([]Heading, bool)
}

var strategies = []strategy{
	{name: "native", run: fromNativeOutline},
	{name: "heuristic", run: fromVisualStyles},
}

// Extract resolves the title and runs the outline strategies in priority
// order: the embedded native outline when the file carries one, else the
// visual-style heuristic. A document with no usable structure yields an
// empty outline, never an error.
func Extract(doc pdfdoc.Decoder) (Outline, error) {
	title := ResolveTitle(doc)
	for _, s := range strategies {
		if headings, ok := s.run(doc, title); ok {
			return Outline{Title: title, Headings: headings}, nil
		}
	}
	return Outline{Title: title}, nil
}

// fromNativeOutline prefers the outline embedded by the producing
// application verbatim: levels 1-4 only, entries without a letter dropped.
// Native entries carry no bounding boxes; downstream consumers degrade to
// page-granularity spans.
func fromNativeOutline(doc pdfdoc.Decoder, _ string) ([]Heading, bool) {
	native := doc.NativeOutline()
	if len(native) == 0 {
		return nil, false
	}
	var headings []Heading
	for _, e := range native {
		if e.Level < 1 || e.Level > maxLevels {
			continue
		}
		text := strings.TrimSpace(e.Text)
		if !hasLetter(text) {
			continue
		}
		headings = append(headings, Heading{Text: text, Level: e.Level, Page: e.Page})
	}
	if len(headings) == 0 {
		return nil, false
	}
	return headings, true
}

// fromVisualStyles is the multi-pass heuristic: reconstruct text blocks,
// infer the body style, classify heading candidates, map levels.
func fromVisualStyles(doc pdfdoc.Decoder, title string) ([]Heading, bool) {
	blocks, err := CollectBlocks(doc)
	if err != nil || len(blocks) == 0 {
		return nil, false
	}
	body, ok := BodyStyle(blocks)
	if !ok {
		return nil, false
	}
	return classifyHeadings(blocks, body, title), true
}
