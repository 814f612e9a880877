package rank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/docsift/docsift/internal/section"
)

// Ranked is a section augmented with its relevance score. Rank returns new
// records rather than mutating its input, so section slices stay shareable
// across concurrently processed documents.
type Ranked struct {
	section.Section
	Score float64
}

// Query builds the single query string from the labeled persona and task.
func Query(persona, task string) string {
	return fmt.Sprintf("User Persona: %s. Task: %s", persona, task)
}

// Rank embeds the persona/task query and every section's content, scores
// each section by cosine similarity to the query, and returns the sections
// ordered by descending score. Ties keep input order.
func Rank(ctx context.Context, embedder Embedder, persona, task string, sections []section.Section) ([]Ranked, error) {
	if len(sections) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(sections)+1)
	texts = append(texts, Query(persona, task))
	for _, s := range sections {
		texts = append(texts, s.Content)
	}

	vectors, err := embedder.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed sections: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}
	query := vectors[0]

	ranked := make([]Ranked, len(sections))
	for i, s := range sections {
		ranked[i] = Ranked{Section: s, Score: cosine(query, vectors[i+1])}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked, nil
}

// cosine computes cosine similarity, accumulating in float64. Zero-norm
// vectors score 0.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ai := float64(a[i])
		bi := float64(b[i])
		dot += ai * bi
		na += ai * ai
		nb += bi * bi
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
