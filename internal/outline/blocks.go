// Package outline reconstructs a document's heading hierarchy from visual
// signals alone: glyph spans are merged into styled text blocks, the body
// text style is inferred statistically, and the remaining prominent styles
// are mapped onto heading levels H1..H4.
package outline

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/docsift/docsift/internal/pdfdoc"
)

// Style is a coarse typographic class: rounded font size plus bold flag.
// Equality is exact tuple equality.
type Style struct {
	Size int
	Bold bool
}

// MoreProminentThan reports whether s visually outranks other: strictly
// larger, or same size but bold where other is not.
func (s Style) MoreProminentThan(other Style) bool {
	if s.Size != other.Size {
		return s.Size > other.Size
	}
	return s.Bold && !other.Bold
}

func (s Style) String() string {
	if s.Bold {
		return fmt.Sprintf("%dpt bold", s.Size)
	}
	return fmt.Sprintf("%dpt", s.Size)
}

// TextBlock is a logical text block with a single dominant style.
type TextBlock struct {
	Text  string
	Style Style
	BBox  pdfdoc.Rect
	Page  int // 1-based
	Lines int
	Words int
}

// CollectBlocks merges each layout block's spans into one TextBlock per
// block, in page order then in-page order. Blocks that trim to empty or
// contain no letter are discarded as non-semantic (rules, page numbers,
// decorations).
func CollectBlocks(doc pdfdoc.Decoder) ([]TextBlock, error) {
	var blocks []TextBlock
	for n := 1; n <= doc.NumPages(); n++ {
		page, err := doc.Page(n)
		if err != nil {
			return nil, fmt.Errorf("decode page %d: %w", n, err)
		}
		for _, raw := range page.Blocks {
			if tb, ok := aggregateBlock(raw, n); ok {
				blocks = append(blocks, tb)
			}
		}
	}
	return blocks, nil
}

// aggregateBlock concatenates a layout block's span texts and elects the
// dominant style by majority vote, ties broken by first occurrence.
func aggregateBlock(raw pdfdoc.Block, pageNum int) (TextBlock, bool) {
	var sb strings.Builder
	var styles []Style
	for _, line := range raw.Lines {
		for _, span := range line.Spans {
			sb.WriteString(span.Text)
			sb.WriteString(" ")
			styles = append(styles, Style{Size: span.Size, Bold: pdfdoc.IsBoldFont(span.Font)})
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" || !hasLetter(text) || len(styles) == 0 {
		return TextBlock{}, false
	}

	return TextBlock{
		Text:  text,
		Style: dominantStyle(styles),
		BBox:  raw.BBox,
		Page:  pageNum,
		Lines: len(raw.Lines),
		Words: len(strings.Fields(text)),
	}, true
}

// dominantStyle returns the most frequent style. The first style to reach
// the winning count wins ties, which keeps the vote deterministic.
func dominantStyle(styles []Style) Style {
	counts := make(map[Style]int, len(styles))
	for _, s := range styles {
		counts[s]++
	}
	best := styles[0]
	bestCount := 0
	seen := make(map[Style]bool, len(styles))
	for _, s := range styles {
		if seen[s] {
			continue
		}
		seen[s] = true
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
