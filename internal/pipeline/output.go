package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/docsift/docsift/internal/rank"
)

// Result caps.
const (
	topSections    = 10
	topSubsections = 5
)

// Output is the produced analysis record.
type Output struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []Subsection       `json:"subsection_analysis"`
}

// Metadata echoes the request back alongside the processing time.
type Metadata struct {
	InputDocuments []string `json:"input_documents"`
	Persona        string   `json:"persona"`
	JobToBeDone    string   `json:"job_to_be_done"`
	ProcessedAt    string   `json:"processing_timestamp"`
}

// ExtractedSection is one ranked section reference.
type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// Subsection carries the full cleaned content of a top-ranked section.
type Subsection struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// buildOutput assembles the output record from ranked sections: the top 10
// as references, the top 5 with full content.
func buildOutput(req Request, ranked []rank.Ranked, now time.Time) *Output {
	out := &Output{
		Metadata: Metadata{
			InputDocuments: req.Filenames(),
			Persona:        req.Persona.Role,
			JobToBeDone:    req.JobToBeDone.Task,
			ProcessedAt:    now.UTC().Format(time.RFC3339),
		},
		ExtractedSections:  []ExtractedSection{},
		SubsectionAnalysis: []Subsection{},
	}
	for i, r := range ranked {
		if i >= topSections {
			break
		}
		out.ExtractedSections = append(out.ExtractedSections, ExtractedSection{
			Document:       r.Document,
			SectionTitle:   r.Title,
			ImportanceRank: i + 1,
			PageNumber:     r.Page,
		})
	}
	for i, r := range ranked {
		if i >= topSubsections {
			break
		}
		out.SubsectionAnalysis = append(out.SubsectionAnalysis, Subsection{
			Document:    r.Document,
			RefinedText: r.Content,
			PageNumber:  r.Page,
		})
	}
	return out
}

// WriteFile writes the output record as indented JSON.
func (o *Output) WriteFile(path string) error {
	data, err := json.MarshalIndent(o, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
