package outline

// Substantial-block thresholds. Short blocks are unreliable signals of body
// text, so the body-style vote only counts blocks above either threshold.
const (
	substantialLines = 2
	substantialWords = 20
)

// BodyStyle infers which style represents ordinary paragraph text. Word
// counts are summed per style across substantial blocks and the style with
// the highest total wins: body text dominates total word volume even when no
// single style leads by block count. If no block is substantial, the most
// frequent style by block count wins instead. ok is false when there are no
// blocks at all, in which case the document is treated as headingless.
func BodyStyle(blocks []TextBlock) (body Style, ok bool) {
	if len(blocks) == 0 {
		return Style{}, false
	}

	wordTotals := make(map[Style]int)
	for _, b := range blocks {
		if b.Lines > substantialLines || b.Words > substantialWords {
			wordTotals[b.Style] += b.Words
		}
	}

	if len(wordTotals) > 0 {
		return maxByCount(blocks, func(b TextBlock) (Style, int, bool) {
			n, counted := wordTotals[b.Style]
			return b.Style, n, counted
		}), true
	}

	// Fallback: no substantial blocks, vote by block frequency.
	freq := make(map[Style]int)
	for _, b := range blocks {
		freq[b.Style]++
	}
	return maxByCount(blocks, func(b TextBlock) (Style, int, bool) {
		return b.Style, freq[b.Style], true
	}), true
}

// maxByCount walks blocks in document order and returns the style with the
// highest count, so ties resolve to the first-encountered style.
func maxByCount(blocks []TextBlock, countOf func(TextBlock) (Style, int, bool)) Style {
	var best Style
	bestCount := -1
	seen := make(map[Style]bool)
	for _, b := range blocks {
		style, n, counted := countOf(b)
		if !counted || seen[style] {
			continue
		}
		seen[style] = true
		if n > bestCount {
			best = style
			bestCount = n
		}
	}
	return best
}
