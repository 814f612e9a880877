package pdfdoc

import (
	"fmt"
	"strings"
)

// MemoryDoc is an in-memory Decoder implementation. It backs tests and lets
// callers feed pre-decoded layouts through the pipeline.
type MemoryDoc struct {
	Title   string
	Pages   []PageLayout
	Outline []NativeEntry
}

func (m *MemoryDoc) NumPages() int { return len(m.Pages) }

func (m *MemoryDoc) Page(n int) (PageLayout, error) {
	if n < 1 || n > len(m.Pages) {
		return PageLayout{}, fmt.Errorf("page %d out of range (1..%d)", n, len(m.Pages))
	}
	return m.Pages[n-1], nil
}

// PageText returns the text of lines whose vertical center falls inside clip,
// one line per row, in document order.
func (m *MemoryDoc) PageText(n int, clip Rect) (string, error) {
	page, err := m.Page(n)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, block := range page.Blocks {
		for _, line := range block.Lines {
			mid := (line.BBox.Y0 + line.BBox.Y1) / 2
			if mid < clip.Y0 || mid > clip.Y1 {
				continue
			}
			for i, span := range line.Spans {
				if i > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(span.Text)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

func (m *MemoryDoc) MetadataTitle() string        { return m.Title }
func (m *MemoryDoc) NativeOutline() []NativeEntry { return m.Outline }
func (m *MemoryDoc) Close() error                 { return nil }
