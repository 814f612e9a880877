package rank

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/docsift/docsift/internal/section"
)

// keywordEmbedder is a deterministic fake: axis 0 is "outdoors", axis 1 is
// "finance", axis 2 is a constant so no vector is zero.
type keywordEmbedder struct{ calls int }

func (e *keywordEmbedder) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := []float32{0, 0, 0.1}
		lower := strings.ToLower(t)
		for _, w := range []string{"hiking", "trail", "trip", "travel"} {
			if strings.Contains(lower, w) {
				v[0]++
			}
		}
		for _, w := range []string{"tax", "deduction", "filing"} {
			if strings.Contains(lower, w) {
				v[1]++
			}
		}
		out[i] = v
	}
	return out, nil
}

func TestRank_RelevanceOrdering(t *testing.T) {
	sections := []section.Section{
		{Document: "law.pdf", Title: "Corporate Tax Law", Content: "Corporate Tax Law\ntax filing rules and deduction schedules"},
		{Document: "alps.pdf", Title: "Day Hikes", Content: "Day Hikes\nhiking trail guides for a short trip"},
	}

	ranked, err := Rank(context.Background(), &keywordEmbedder{}, "Travel Planner", "Plan a 3-day trip", sections)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked sections, got %d", len(ranked))
	}
	if ranked[0].Document != "alps.pdf" {
		t.Errorf("expected hiking section first, got %q (score %f vs %f)",
			ranked[0].Document, ranked[0].Score, ranked[1].Score)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("scores not descending: %f then %f", ranked[0].Score, ranked[1].Score)
	}
}

func TestRank_Idempotent(t *testing.T) {
	sections := []section.Section{
		{Document: "a.pdf", Title: "One", Content: "hiking and travel notes"},
		{Document: "b.pdf", Title: "Two", Content: "tax season"},
		{Document: "c.pdf", Title: "Three", Content: "trail maps for the trip"},
	}

	first, err := Rank(context.Background(), &keywordEmbedder{}, "Travel Planner", "Plan a trip", sections)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Rank(context.Background(), &keywordEmbedder{}, "Travel Planner", "Plan a trip", sections)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].Document != second[i].Document || first[i].Score != second[i].Score {
			t.Fatalf("re-ranking changed order: %+v vs %+v", first, second)
		}
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	sections := []section.Section{
		{Document: "a.pdf", Title: "First", Content: "identical text"},
		{Document: "b.pdf", Title: "Second", Content: "identical text"},
		{Document: "c.pdf", Title: "Third", Content: "identical text"},
	}

	ranked, err := Rank(context.Background(), &keywordEmbedder{}, "Anyone", "anything", sections)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.pdf", "b.pdf", "c.pdf"}
	for i := range want {
		if ranked[i].Document != want[i] {
			t.Fatalf("tied sections reordered: %+v", ranked)
		}
	}
}

func TestRank_EmptyInput(t *testing.T) {
	e := &keywordEmbedder{}
	ranked, err := Rank(context.Background(), e, "p", "t", nil)
	if err != nil {
		t.Fatal(err)
	}
	if ranked != nil {
		t.Errorf("expected nil for no sections, got %+v", ranked)
	}
	if e.calls != 0 {
		t.Errorf("embedder should not be called for empty input")
	}
}

// truncatingEmbedder drops the last vector, violating the one-vector-per-text
// contract.
type truncatingEmbedder struct{}

func (truncatingEmbedder) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for range texts[:len(texts)-1] {
		out = append(out, []float32{1})
	}
	return out, nil
}

func TestRank_EmbedderCountMismatch(t *testing.T) {
	sections := []section.Section{
		{Document: "a.pdf", Title: "Alpha", Content: "alpha"},
		{Document: "b.pdf", Title: "Beta", Content: "beta"},
	}
	_, err := Rank(context.Background(), truncatingEmbedder{}, "p", "t", sections)
	if err == nil {
		t.Fatal("expected an error for a short vector count")
	}
	if !strings.Contains(err.Error(), "vectors") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	sections := []section.Section{
		{Document: "a.pdf", Title: "Alpha", Content: "hiking"},
		{Document: "b.pdf", Title: "Beta", Content: "tax"},
	}
	orig := make([]section.Section, len(sections))
	copy(orig, sections)

	if _, err := Rank(context.Background(), &keywordEmbedder{}, "Travel Planner", "trip", sections); err != nil {
		t.Fatal(err)
	}
	for i := range orig {
		if sections[i] != orig[i] {
			t.Errorf("input section %d mutated: %+v", i, sections[i])
		}
	}
}

func TestQuery(t *testing.T) {
	got := Query("Travel Planner", "Plan a 3-day trip")
	want := "User Persona: Travel Planner. Task: Plan a 3-day trip"
	if got != want {
		t.Errorf("Query = %q, want %q", got, want)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cosine(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("cosine = %f, want %f", got, tc.want)
			}
		})
	}
}
