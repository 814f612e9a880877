package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsift/docsift/internal/outline"
	"github.com/docsift/docsift/internal/pipeline"
	"github.com/docsift/docsift/internal/report"
)

// handleAnalyze runs a full collection analysis. Multipart form: a "config"
// part holding the collection input record, and one "files" part per PDF
// named in it. `?format=html` returns the rendered report instead of JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	cfgFile, _, err := r.FormFile("config")
	if err != nil {
		jsonError(w, "config is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer cfgFile.Close()

	req, err := pipeline.ParseRequest(cfgFile)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		jsonError(w, "config names no documents", http.StatusBadRequest)
		return
	}

	// Spool uploaded PDFs into a temp collection directory.
	dir, err := os.MkdirTemp("", "docsift-collection-")
	if err != nil {
		jsonError(w, "failed to stage uploads", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(dir)

	for _, header := range r.MultipartForm.File["files"] {
		name := sanitizeFilename(header.Filename)
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(name)), http.StatusBadRequest)
			return
		}
		if err := saveUpload(header, filepath.Join(dir, name), s.cfg.MaxUploadBytes); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	runner := pipeline.NewRunner(s.open, s.embedder, s.log, s.cfg.DocConcurrency)
	out, err := runner.Run(r.Context(), req, dir)
	if err != nil {
		s.log.Error("analysis failed", "error", err)
		jsonError(w, "analysis failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := report.HTML(out)
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, html)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handleOutline returns the title and outline of a single uploaded PDF.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "docsift-*.pdf")
	if err != nil {
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, io.LimitReader(file, s.cfg.MaxUploadBytes+1)); err != nil {
		tmp.Close()
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	tmp.Close()

	doc, err := s.open(tmpPath)
	if err != nil {
		s.log.Warn("unreadable upload", "filename", header.Filename, "error", err)
		jsonError(w, "unreadable pdf: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	defer doc.Close()

	ol, err := outline.Extract(doc)
	if err != nil {
		jsonError(w, "outline extraction failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ol)
}

func saveUpload(header *multipart.FileHeader, dst string, maxBytes int64) error {
	src, err := header.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("stage upload %s: %w", header.Filename, err)
	}
	defer out.Close()

	n, err := io.Copy(out, io.LimitReader(src, maxBytes+1))
	if err != nil {
		return fmt.Errorf("write upload %s: %w", header.Filename, err)
	}
	if n > maxBytes {
		return fmt.Errorf("file %s exceeds max size (%d bytes)", header.Filename, maxBytes)
	}
	return nil
}

// sanitizeFilename strips any path components from an uploaded filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." {
		name = "upload.pdf"
	}
	return name
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
