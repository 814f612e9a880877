package pdfdoc

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Glyph-run grouping thresholds, in points or font-size multiples.
const (
	rowTolerance   = 2.5 // max Y drift within one line
	wordGapFactor  = 0.3 // gap wider than this * size starts a new word
	blockGapFactor = 1.6 // line gap taller than this * size starts a new block
	defaultPageH   = 792 // US Letter, used when MediaBox is missing
	defaultPageW   = 612
)

// FileDoc is the production Decoder backed by github.com/ledongthuc/pdf.
// Glyph runs are regrouped into lines by Y proximity and lines into blocks by
// vertical gaps, with Y flipped to top-down coordinates.
type FileDoc struct {
	f      *os.File
	reader *pdflib.Reader
	pages  map[int]*PageLayout // decoded lazily, memoized
}

// Open opens the PDF at path. It satisfies the Opener signature.
func Open(path string) (Decoder, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &FileDoc{f: f, reader: reader, pages: make(map[int]*PageLayout)}, nil
}

func (d *FileDoc) NumPages() int { return d.reader.NumPage() }

func (d *FileDoc) Close() error { return d.f.Close() }

// MetadataTitle reads the Info dictionary's Title entry.
func (d *FileDoc) MetadataTitle() string {
	title := d.reader.Trailer().Key("Info").Key("Title")
	if title.Kind() != pdflib.String {
		return ""
	}
	return strings.TrimSpace(title.Text())
}

// NativeOutline returns nil: the backing library exposes outline titles but
// not resolvable page destinations, so the embedded outline cannot satisfy
// the (level, text, page) contract. Callers fall through to the heuristic
// extraction path.
func (d *FileDoc) NativeOutline() []NativeEntry { return nil }

func (d *FileDoc) Page(n int) (PageLayout, error) {
	if cached, ok := d.pages[n]; ok {
		return *cached, nil
	}
	if n < 1 || n > d.reader.NumPage() {
		return PageLayout{}, fmt.Errorf("page %d out of range (1..%d)", n, d.reader.NumPage())
	}
	page := d.reader.Page(n)
	if page.V.IsNull() {
		layout := PageLayout{Number: n, Width: defaultPageW, Height: defaultPageH}
		d.pages[n] = &layout
		return layout, nil
	}

	width, height := pageSize(page)
	texts := filterGlyphs(page.Content().Text)
	lines := groupLines(texts, height)
	blocks := groupBlocks(lines)

	layout := PageLayout{Number: n, Width: width, Height: height, Blocks: blocks}
	d.pages[n] = &layout
	return layout, nil
}

// PageText extracts plain text of page n restricted to clip, one decoded
// line per output row.
func (d *FileDoc) PageText(n int, clip Rect) (string, error) {
	layout, err := d.Page(n)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, block := range layout.Blocks {
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

// pageSize reads the MediaBox, falling back to US Letter.
func pageSize(page pdflib.Page) (w, h float64) {
	box := page.V.Key("MediaBox")
	if box.Kind() != pdflib.Array || box.Len() < 4 {
		return defaultPageW, defaultPageH
	}
	w = box.Index(2).Float64() - box.Index(0).Float64()
	h = box.Index(3).Float64() - box.Index(1).Float64()
	if w <= 0 {
		w = defaultPageW
	}
	if h <= 0 {
		h = defaultPageH
	}
	return w, h
}

// filterGlyphs drops empty and whitespace-only glyph runs.
func filterGlyphs(texts []pdflib.Text) []pdflib.Text {
	out := make([]pdflib.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// groupLines buckets glyph runs by baseline Y, then assembles each bucket
// into a Line with word-gap spacing and per-font spans. Y is flipped so that
// 0 is the top of the page.
func groupLines(texts []pdflib.Text, pageHeight float64) []Line {
	if len(texts) == 0 {
		return nil
	}

	type bucket struct {
		yMin, yMax float64
		texts      []pdflib.Text
	}
	var buckets []bucket
	for _, t := range texts {
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-rowTolerance && t.Y <= buckets[i].yMax+rowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				buckets[i].yMin = math.Min(buckets[i].yMin, t.Y)
				buckets[i].yMax = math.Max(buckets[i].yMax, t.Y)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, texts: []pdflib.Text{t}})
		}
	}

	// Reading order: PDF Y grows upward, so top lines have the larger Y.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })

	lines := make([]Line, 0, len(buckets))
	for _, b := range buckets {
		sort.Slice(b.texts, func(i, j int) bool { return b.texts[i].X < b.texts[j].X })
		lines = append(lines, assembleLine(b.texts, pageHeight))
	}
	return lines
}

// assembleLine merges X-sorted glyph runs into spans, starting a new span on
// font or size change and inserting spaces at word gaps.
func assembleLine(texts []pdflib.Text, pageHeight float64) Line {
	var line Line
	var cur *Span
	var prevEnd float64

	for i, t := range texts {
		size := int(math.Round(t.FontSize))
		box := glyphRect(t, pageHeight)

		sameSpan := cur != nil && t.Font == cur.Font && size == cur.Size
		if !sameSpan {
			line.Spans = append(line.Spans, Span{Size: size, Font: t.Font, BBox: box})
			cur = &line.Spans[len(line.Spans)-1]
		}
		if i > 0 && t.X-prevEnd > wordGapFactor*t.FontSize {
			cur.Text += " "
		}
		cur.Text += t.S
		cur.BBox = cur.BBox.Union(box)
		prevEnd = t.X + t.W
	}

	if len(line.Spans) > 0 {
		line.BBox = line.Spans[0].BBox
		for _, s := range line.Spans[1:] {
			line.BBox = line.BBox.Union(s.BBox)
		}
	}
	return line
}

// glyphRect converts a glyph run's baseline position to a top-down rect.
func glyphRect(t pdflib.Text, pageHeight float64) Rect {
	top := pageHeight - t.Y - t.FontSize
	bottom := pageHeight - t.Y
	if top < 0 {
		top = 0
	}
	return Rect{X0: t.X, Y0: top, X1: t.X + t.W, Y1: bottom}
}

// groupBlocks splits top-sorted lines into blocks at large vertical gaps.
func groupBlocks(lines []Line) []Block {
	if len(lines) == 0 {
		return nil
	}
	var blocks []Block
	var cur Block
	for i, line := range lines {
		if i > 0 {
			prev := cur.Lines[len(cur.Lines)-1]
			lineH := line.BBox.Y1 - line.BBox.Y0
			if lineH <= 0 {
				lineH = 10
			}
			if line.BBox.Y0-prev.BBox.Y1 > blockGapFactor*lineH {
				blocks = append(blocks, cur)
				cur = Block{}
			}
		}
		if len(cur.Lines) == 0 {
			cur.BBox = line.BBox
		} else {
			cur.BBox = cur.BBox.Union(line.BBox)
		}
		cur.Lines = append(cur.Lines, line)
	}
	blocks = append(blocks, cur)
	return blocks
}
