package outline

import (
	"regexp"
	"strings"

	"github.com/docsift/docsift/internal/pdfdoc"
)

// Metadata titles shorter than this are junk ("1", "doc", ...).
const minMetaTitleLen = 4

// Title fraction of page 1 scanned for the visual fallback.
const titleBandFraction = 0.4

// Lines this long are paragraphs, not title lines.
const maxTitleLineWords = 20

var fileExtSuffix = regexp.MustCompile(`(?i)\.(pdf|docx?|pptx?|xlsx?|cdr)$`)

// ResolveTitle returns the document title: the metadata title when it passes
// vetting, else the largest-sized text lines in the top 40% of page 1, else
// the empty string.
func ResolveTitle(doc pdfdoc.Decoder) string {
	if t := vetMetadataTitle(doc.MetadataTitle()); t != "" {
		return t
	}
	return titleFromFirstPage(doc)
}

// vetMetadataTitle rejects short, filename-like, or generic placeholder
// metadata titles.
func vetMetadataTitle(title string) string {
	title = strings.TrimSpace(title)
	if len(title) <= minMetaTitleLen {
		return ""
	}
	if fileExtSuffix.MatchString(title) {
		return ""
	}
	// Word writes "Microsoft Word - <filename>" as the title.
	if strings.Contains(title, "Microsoft Word") {
		return ""
	}
	return title
}

// titleFromFirstPage groups the short text lines in the top band of page 1
// by rounded average span size and joins all lines of the single largest
// size with spaces.
func titleFromFirstPage(doc pdfdoc.Decoder) string {
	if doc.NumPages() == 0 {
		return ""
	}
	page, err := doc.Page(1)
	if err != nil {
		return ""
	}
	limit := page.Height * titleBandFraction

	bySize := make(map[int][]string)
	for _, block := range page.Blocks {
		for _, line := range block.Lines {
			if line.BBox.Y0 > limit {
				continue
			}
			text := lineText(line)
			if text == "" || !hasLetter(text) || len(strings.Fields(text)) >= maxTitleLineWords {
				continue
			}
			bySize[avgSpanSize(line)] = append(bySize[avgSpanSize(line)], text)
		}
	}

	maxSize := 0
	for size := range bySize {
		if size > maxSize {
			maxSize = size
		}
	}
	if maxSize == 0 {
		return ""
	}
	return strings.Join(bySize[maxSize], " ")
}

func lineText(line pdfdoc.Line) string {
	parts := make([]string, 0, len(line.Spans))
	for _, span := range line.Spans {
		if s := strings.TrimSpace(span.Text); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// avgSpanSize rounds the mean span size of a line.
func avgSpanSize(line pdfdoc.Line) int {
	if len(line.Spans) == 0 {
		return 0
	}
	sum := 0
	for _, span := range line.Spans {
		sum += span.Size
	}
	return (sum + len(line.Spans)/2) / len(line.Spans)
}
