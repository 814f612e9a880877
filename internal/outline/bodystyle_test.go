package outline

import "testing"

func TestBodyStyle_WordVolumeWins(t *testing.T) {
	body := Style{Size: 12, Bold: false}
	big := Style{Size: 16, Bold: true}

	// Many short bold blocks, fewer but much wordier body blocks: the body
	// style must win on total word volume, not block frequency.
	blocks := []TextBlock{
		{Text: "x", Style: big, Lines: 3, Words: 25},
		{Text: "x", Style: big, Lines: 3, Words: 25},
		{Text: "x", Style: big, Lines: 3, Words: 25},
		{Text: "x", Style: body, Lines: 10, Words: 400},
		{Text: "x", Style: body, Lines: 8, Words: 350},
	}

	got, ok := BodyStyle(blocks)
	if !ok {
		t.Fatal("expected a determined body style")
	}
	if got != body {
		t.Errorf("body style = %v, want %v", got, body)
	}
}

func TestBodyStyle_IgnoresInsubstantialBlocks(t *testing.T) {
	noise := Style{Size: 9, Bold: false}
	body := Style{Size: 11, Bold: false}

	blocks := []TextBlock{
		// Short blocks never vote, regardless of how many there are.
		{Style: noise, Lines: 1, Words: 3},
		{Style: noise, Lines: 1, Words: 2},
		{Style: noise, Lines: 1, Words: 4},
		{Style: body, Lines: 4, Words: 120},
	}

	got, ok := BodyStyle(blocks)
	if !ok {
		t.Fatal("expected a determined body style")
	}
	if got != body {
		t.Errorf("body style = %v, want %v", got, body)
	}
}

func TestBodyStyle_FallbackToBlockFrequency(t *testing.T) {
	common := Style{Size: 10, Bold: false}
	rare := Style{Size: 14, Bold: false}

	// No block is substantial, so the vote falls back to block count.
	blocks := []TextBlock{
		{Style: common, Lines: 1, Words: 5},
		{Style: common, Lines: 1, Words: 4},
		{Style: rare, Lines: 1, Words: 6},
	}

	got, ok := BodyStyle(blocks)
	if !ok {
		t.Fatal("expected a determined body style")
	}
	if got != common {
		t.Errorf("body style = %v, want %v", got, common)
	}
}

func TestBodyStyle_UndeterminedOnEmptyInput(t *testing.T) {
	if _, ok := BodyStyle(nil); ok {
		t.Error("expected undetermined body style for no blocks")
	}
}
