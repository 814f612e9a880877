package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Request is the collection input record: who is asking, what they need,
// and which documents to analyze, in order.
type Request struct {
	Persona struct {
		Role string `json:"role"`
	} `json:"persona"`
	JobToBeDone struct {
		Task string `json:"task"`
	} `json:"job_to_be_done"`
	Documents []DocumentRef `json:"documents"`
}

// DocumentRef names one input document.
type DocumentRef struct {
	Filename string `json:"filename"`
}

// ParseRequest decodes a collection input record.
func ParseRequest(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decode input config: %w", err)
	}
	return req, nil
}

// LoadRequest reads a collection input record from a file.
func LoadRequest(path string) (Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return Request{}, fmt.Errorf("open input config: %w", err)
	}
	defer f.Close()
	return ParseRequest(f)
}

// Filenames returns the configured document filenames in input order.
func (r Request) Filenames() []string {
	names := make([]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		names = append(names, d.Filename)
	}
	return names
}
