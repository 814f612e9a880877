// Package pipeline runs the full analysis for one document collection:
// outline extraction and sectionization per document, then a single semantic
// ranking pass over all sections.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/docsift/docsift/internal/outline"
	"github.com/docsift/docsift/internal/pdfdoc"
	"github.com/docsift/docsift/internal/rank"
	"github.com/docsift/docsift/internal/section"
)

// Runner processes document collections. Documents fan out across a bounded
// number of goroutines; there is no shared mutable state between them and
// results are re-merged in configured document order before ranking.
type Runner struct {
	open        pdfdoc.Opener
	embedder    rank.Embedder
	log         *slog.Logger
	concurrency int
}

// NewRunner creates a Runner. concurrency caps in-flight documents; values
// below 1 mean sequential processing.
func NewRunner(open pdfdoc.Opener, embedder rank.Embedder, log *slog.Logger, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{open: open, embedder: embedder, log: log, concurrency: concurrency}
}

// Run analyzes the collection described by req, reading documents from
// pdfDir. A document that cannot be opened or processed is logged and
// skipped; the rest of the collection continues.
func (r *Runner) Run(ctx context.Context, req Request, pdfDir string) (*Output, error) {
	perDoc := make([][]section.Section, len(req.Documents))

	sem := make(chan struct{}, r.concurrency)
	done := make(chan int, len(req.Documents))
	for i, doc := range req.Documents {
		sem <- struct{}{}
		go func(i int, filename string) {
			defer func() { <-sem }()
			sections, err := r.processDocument(filepath.Join(pdfDir, filename), filename)
			if err != nil {
				r.log.Warn("skipping document", "document", filename, "error", err)
			} else {
				perDoc[i] = sections
			}
			done <- i
		}(i, doc.Filename)
	}
	for range req.Documents {
		<-done
	}

	// Stable merge: configured document order, then in-document order.
	var all []section.Section
	for _, sections := range perDoc {
		all = append(all, sections...)
	}

	ranked, err := rank.Rank(ctx, r.embedder, req.Persona.Role, req.JobToBeDone.Task, all)
	if err != nil {
		return nil, fmt.Errorf("rank sections: %w", err)
	}

	r.log.Info("collection analyzed",
		"documents", len(req.Documents),
		"sections", len(all),
	)
	return buildOutput(req, ranked, time.Now()), nil
}

// processDocument extracts the outline and sections of one document.
func (r *Runner) processDocument(path, filename string) ([]section.Section, error) {
	doc, err := r.open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	ol, err := outline.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("extract outline: %w", err)
	}

	sections, err := section.Build(doc, ol.Headings)
	if err != nil {
		return nil, fmt.Errorf("build sections: %w", err)
	}
	for i := range sections {
		sections[i].Document = filename
	}

	r.log.Info("document processed",
		"document", filename,
		"title", ol.Title,
		"headings", len(ol.Headings),
		"sections", len(sections),
	)
	return sections, nil
}
