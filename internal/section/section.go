// Package section turns an ordered outline into titled content sections:
// each heading owns the text between its own bottom edge and the next
// heading's top edge, cleaned into a single paragraph-like block.
package section

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docsift/docsift/internal/outline"
	"github.com/docsift/docsift/internal/pdfdoc"
)

// Section is the text span between one heading and the next, prefixed by its
// heading title. Score is assigned only by the ranker.
type Section struct {
	Document string `json:"document"`
	Title    string `json:"section_title"`
	Page     int    `json:"page_number"`
	Content  string `json:"content"`
}

var multiNewline = regexp.MustCompile(`\n{2,}`)

// Build extracts one section per heading. Headings with bounding boxes use
// precise coordinate spans; when no heading carries a box (the native
// outline path) the degraded page-granularity spans of BuildPaged are used
// instead.
func Build(doc pdfdoc.Decoder, headings []outline.Heading) ([]Section, error) {
	if len(headings) == 0 {
		return nil, nil
	}
	if noBoxes(headings) {
		return BuildPaged(doc, headings)
	}

	lastPage := doc.NumPages()
	var sections []Section
	for i, h := range headings {
		if h.BBox == nil {
			continue
		}

		startPage := h.Page
		startY := h.BBox.Y1

		endPage, endY, err := endBoundary(doc, headings, i, lastPage)
		if err != nil {
			return nil, err
		}

		content, err := extractSpan(doc, startPage, startY, endPage, endY)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", h.Text, err)
		}

		sections = append(sections, Section{
			Title:   h.Text,
			Page:    h.Page,
			Content: h.Text + "\n" + CleanText(content),
		})
	}
	return sections, nil
}

// endBoundary is the next boxed heading's top edge, or the bottom of the
// last page for the final section.
func endBoundary(doc pdfdoc.Decoder, headings []outline.Heading, i, lastPage int) (page int, y float64, err error) {
	for _, next := range headings[i+1:] {
		if next.BBox != nil {
			return next.Page, next.BBox.Y0, nil
		}
	}
	last, err := doc.Page(lastPage)
	if err != nil {
		return 0, 0, err
	}
	return lastPage, last.Height, nil
}

// extractSpan concatenates clipped page text from (startPage, startY) to
// (endPage, endY), spanning intervening pages in full.
func extractSpan(doc pdfdoc.Decoder, startPage int, startY float64, endPage int, endY float64) (string, error) {
	var sb strings.Builder
	for n := startPage; n <= endPage; n++ {
		page, err := doc.Page(n)
		if err != nil {
			return "", err
		}
		clipTop := 0.0
		if n == startPage {
			clipTop = startY
		}
		clipBottom := page.Height
		if n == endPage {
			clipBottom = endY
		}
		if clipTop >= clipBottom {
			continue
		}
		text, err := doc.PageText(n, pdfdoc.Rect{X0: 0, Y0: clipTop, X1: page.Width, Y1: clipBottom})
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// BuildPaged is the degraded path for headings without bounding boxes: each
// section spans whole pages from its heading's page up to the page before
// the next heading (or the last page).
func BuildPaged(doc pdfdoc.Decoder, headings []outline.Heading) ([]Section, error) {
	lastPage := doc.NumPages()
	var sections []Section
	for i, h := range headings {
		endPage := lastPage
		if i+1 < len(headings) {
			endPage = headings[i+1].Page - 1
			// Headings sharing a page each get that single page.
			if endPage < h.Page {
				endPage = h.Page
			}
		}

		var sb strings.Builder
		for n := h.Page; n <= endPage && n <= lastPage; n++ {
			page, err := doc.Page(n)
			if err != nil {
				return nil, err
			}
			text, err := doc.PageText(n, pdfdoc.Rect{X0: 0, Y0: 0, X1: page.Width, Y1: page.Height})
			if err != nil {
				return nil, err
			}
			sb.WriteString(text)
		}

		sections = append(sections, Section{
			Title:   h.Text,
			Page:    h.Page,
			Content: h.Text + "\n" + CleanText(sb.String()),
		})
	}
	return sections, nil
}

func noBoxes(headings []outline.Heading) bool {
	for _, h := range headings {
		if h.BBox != nil {
			return false
		}
	}
	return true
}

// CleanText folds extracted page text into a readable block: a lone newline
// is a logical line wrap and becomes a space, a newline preceded by a space
// is folded, and runs of blank lines collapse to a single break. The folding
// is a documented heuristic and is lossy for tables and code-like text.
func CleanText(s string) string {
	s = foldSingleNewlines(s)
	s = strings.ReplaceAll(s, " \n", "\n")
	s = multiNewline.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// foldSingleNewlines replaces each newline not adjacent to another newline
// with a space.
func foldSingleNewlines(s string) string {
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == '\n' {
			prevNL := i > 0 && b[i-1] == '\n'
			nextNL := i+1 < len(b) && b[i+1] == '\n'
			if !prevNL && !nextNL {
				out = append(out, ' ')
				continue
			}
		}
		out = append(out, b[i])
	}
	return string(out)
}
