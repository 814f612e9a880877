// Package report renders an analysis output record as a Markdown document,
// with optional HTML conversion for the API.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/docsift/docsift/internal/pipeline"
)

// Markdown renders the output record as a human-readable report.
func Markdown(out *pipeline.Output) string {
	var sb strings.Builder

	sb.WriteString("# Analysis Report\n\n")
	fmt.Fprintf(&sb, "**Persona:** %s\n\n", out.Metadata.Persona)
	fmt.Fprintf(&sb, "**Task:** %s\n\n", out.Metadata.JobToBeDone)
	fmt.Fprintf(&sb, "**Processed:** %s\n\n", out.Metadata.ProcessedAt)

	sb.WriteString("## Documents\n\n")
	for _, name := range out.Metadata.InputDocuments {
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	sb.WriteString("\n")

	sb.WriteString("## Top Sections\n\n")
	if len(out.ExtractedSections) == 0 {
		sb.WriteString("No sections were extracted.\n\n")
	}
	for _, s := range out.ExtractedSections {
		fmt.Fprintf(&sb, "%d. **%s** (%s, page %d)\n", s.ImportanceRank, s.SectionTitle, s.Document, s.PageNumber)
	}
	sb.WriteString("\n")

	sb.WriteString("## Most Relevant Content\n\n")
	for _, s := range out.SubsectionAnalysis {
		fmt.Fprintf(&sb, "### %s, page %d\n\n%s\n\n", s.Document, s.PageNumber, s.RefinedText)
	}

	return sb.String()
}

// HTML renders the output record's Markdown report to HTML.
func HTML(out *pipeline.Output) (string, error) {
	md := goldmark.New()
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(out)), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}
