package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"study_notes_generator/pipeline"
)

const maxBodyBytes = 1 << 20

type generateResp struct {
	Topic          string `json:"topic"`
	Notes          string `json:"notes"`
	PDFDownloadURL string `json:"pdf_download_url"`
	Summary        string `json:"summary"`
	NotesHTML      string `json:"notes_html"`
	Pages          int    `json:"pages"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Study notes generator API is running!"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	topic, err := pipeline.DecodeRequest(r.Body)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	res, err := s.pipe.Run(r.Context(), topic)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.response(res, s.baseURL(r)))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "filename"))
	if err != nil {
		name = ""
	}
	f, info, err := s.pipe.Open(name)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": info.Name()}))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (s *Server) response(res pipeline.Result, base string) generateResp {
	return generateResp{
		Topic:          res.Topic,
		Notes:          res.Notes,
		PDFDownloadURL: base + "/download/" + url.PathEscape(res.Document.FileName),
		Summary:        res.Digest,
		NotesHTML:      res.NotesHTML,
		Pages:          res.Document.Pages,
	}
}

// baseURL is the configured public URL, or scheme://host of the request.
func (s *Server) baseURL(r *http.Request) string {
	if s.opts.PublicBaseURL != "" {
		return strings.TrimRight(s.opts.PublicBaseURL, "/")
	}
	if r == nil {
		return ""
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writePipelineError(w http.ResponseWriter, err error) {
	writeError(w, pipeline.StatusCode(err), pipeline.Message(err))
}
