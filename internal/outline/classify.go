package outline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docsift/docsift/internal/pdfdoc"
)

// Heading rejection thresholds: headings are short.
const (
	maxHeadingWords = 30
	maxHeadingLines = 3
	maxLevels       = 4
)

var (
	// Runs of 4+ periods are table-of-contents leader dots.
	leaderDots = regexp.MustCompile(`\.{4,}`)
	// Bulleted or lettered list-item markers at the start of a block.
	listMarker = regexp.MustCompile(`^\s*([•*-]|[a-zA-Z\d]+\))\s+`)
	// Numbering like "2", "2.1", "2.1.3" followed by whitespace.
	numberPrefix = regexp.MustCompile(`^\s*(\d+(\.\d+)*)\s+`)
)

// Heading is one resolved outline entry. BBox is nil when the entry came
// from an embedded native outline.
type Heading struct {
	Text  string       `json:"text"`
	Level int          `json:"level"` // 1..4
	Page  int          `json:"page"`
	BBox  *pdfdoc.Rect `json:"-"`
}

// filterCandidates keeps blocks that are stylistically and structurally
// heading-like relative to the body style.
func filterCandidates(blocks []TextBlock, body Style) []TextBlock {
	var out []TextBlock
	for _, b := range blocks {
		if b.Words > maxHeadingWords || b.Lines > maxHeadingLines {
			continue
		}
		if !b.Style.MoreProminentThan(body) {
			continue
		}
		text := strings.TrimSpace(b.Text)
		if leaderDots.MatchString(text) || endsSentenceLike(text) {
			continue
		}
		if listMarker.MatchString(text) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func endsSentenceLike(text string) bool {
	return strings.HasSuffix(text, ".") || strings.HasSuffix(text, ",") ||
		strings.HasSuffix(text, ";") || strings.HasSuffix(text, ":")
}

// levelBySize maps the distinct candidate styles onto levels: distinct font
// sizes sorted descending, top four sizes assigned H1..H4. Bold and non-bold
// styles of one size share a level; sizes beyond the fourth get no level.
func levelBySize(candidates []TextBlock) map[Style]int {
	sizes := make(map[int][]Style)
	seen := make(map[Style]bool)
	for _, b := range candidates {
		if seen[b.Style] {
			continue
		}
		seen[b.Style] = true
		sizes[b.Style.Size] = append(sizes[b.Style.Size], b.Style)
	}

	distinct := make([]int, 0, len(sizes))
	for size := range sizes {
		distinct = append(distinct, size)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))

	levels := make(map[Style]int)
	for i, size := range distinct {
		if i >= maxLevels {
			break
		}
		for _, style := range sizes[size] {
			levels[style] = i + 1
		}
	}
	return levels
}

// classifyHeadings runs candidate filtering and level assignment, applies
// the numeric-prefix override and title de-duplication, and returns entries
// ordered by (page, top of bbox).
func classifyHeadings(blocks []TextBlock, body Style, title string) []Heading {
	candidates := filterCandidates(blocks, body)
	if len(candidates) == 0 {
		return nil
	}
	levels := levelBySize(candidates)

	var headings []Heading
	for _, b := range candidates {
		level, ok := levels[b.Style]
		if !ok {
			continue
		}
		text := normalizeSpace(b.Text)

		// Explicit numbering outranks font size: "2.1 Overview" is H2 no
		// matter which size bucket its style landed in.
		if m := numberPrefix.FindStringSubmatch(text); m != nil {
			level = strings.Count(m[1], ".") + 1
			if level > maxLevels {
				level = maxLevels
			}
		}

		// The title restated at the top of page 1 is not a heading.
		if level == 1 && b.Page == 1 && text == title {
			continue
		}

		box := b.BBox
		headings = append(headings, Heading{Text: text, Level: level, Page: b.Page, BBox: &box})
	}

	sort.SliceStable(headings, func(i, j int) bool {
		if headings[i].Page != headings[j].Page {
			return headings[i].Page < headings[j].Page
		}
		return headings[i].BBox.Y0 < headings[j].BBox.Y0
	})
	return headings
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
