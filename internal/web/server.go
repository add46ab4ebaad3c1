package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/rgolubev/patentlens/internal/model"
	"github.com/rgolubev/patentlens/internal/pipeline"
)

// Runner executes one analysis request
type Runner interface {
	Run(ctx context.Context, req model.AnalysisRequest, progress pipeline.ProgressFn) (*model.Result, error)
}

// Server is the web surface: a search form, an HTML results view, and a
// JSON export endpoint. Every analysis parameter arrives with the request;
// the server itself holds no analysis state.
type Server struct {
	runner  Runner
	verbose bool
}

// NewServer creates the HTTP handler
func NewServer(runner Runner, verbose bool) http.Handler {
	s := &Server{runner: runner, verbose: verbose}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/api/search", s.handleAPISearch)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// formView carries everything the page template needs
type formView struct {
	Request     model.AnalysisRequest
	Features    string // Newline-delimited, as typed
	FieldErrors map[string]string
	Result      *model.Result
	Searched    bool

	MinThreshold, MaxThreshold     int
	MinMatchesLow, MinMatchesHigh  int
	MaxPatentsLow, MaxPatentsHigh  int
}

func defaultView() formView {
	return formView{
		Request: model.AnalysisRequest{
			Threshold:  model.DefaultThreshold,
			MinMatches: model.DefaultMinFeatureMatches,
			MaxPatents: model.DefaultMaxPatents,
		},
		FieldErrors:    map[string]string{},
		MinThreshold:   model.MinThreshold,
		MaxThreshold:   model.MaxThreshold,
		MinMatchesLow:  model.MinFeatureMatches,
		MinMatchesHigh: model.MaxFeatureMatches,
		MaxPatentsLow:  model.MinMaxPatents,
		MaxPatentsHigh: model.MaxMaxPatents,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	s.renderPage(w, defaultView())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}

	req, featuresText, err := requestFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := defaultView()
	view.Request = req
	view.Features = featuresText

	result, runErr := s.runner.Run(r.Context(), req, s.progress())
	if runErr != nil {
		var ve *pipeline.ValidationError
		if errors.As(runErr, &ve) {
			for _, f := range ve.Fields {
				view.FieldErrors[f.Field] = f.Message
			}
			s.renderPage(w, view)
			return
		}
		http.Error(w, runErr.Error(), http.StatusInternalServerError)
		return
	}

	view.Result = result
	view.Searched = true
	s.renderPage(w, view)
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}

	var req model.AnalysisRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		blob, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := json.Unmarshal(blob, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	} else {
		var err error
		req, _, err = requestFromForm(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := s.runner.Run(r.Context(), req, s.progress())
	if err != nil {
		var ve *pipeline.ValidationError
		if errors.As(err, &ve) {
			fields := map[string]string{}
			for _, f := range ve.Fields {
				fields[f.Field] = f.Message
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid request", "fields": fields})
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := pipeline.ExportJSON(result.Patents)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="patent_matches.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

// requestFromForm builds an AnalysisRequest from the submitted form. Range
// checks live in Validate; this only converts types.
func requestFromForm(r *http.Request) (model.AnalysisRequest, string, error) {
	if err := r.ParseForm(); err != nil {
		return model.AnalysisRequest{}, "", fmt.Errorf("parse form: %w", err)
	}

	featuresText := r.PostFormValue("features")
	req := model.AnalysisRequest{
		APIKey:      r.PostFormValue("api_key"),
		Description: r.PostFormValue("description"),
		Features:    model.ParseFeatures(featuresText),
		Threshold:   parseIntField(r.PostFormValue("threshold"), model.DefaultThreshold),
		MinMatches:  parseIntField(r.PostFormValue("min_matches"), model.DefaultMinFeatureMatches),
		MaxPatents:  parseIntField(r.PostFormValue("max_patents"), model.DefaultMaxPatents),
	}
	return req, featuresText, nil
}

func parseIntField(value string, def int) int {
	if strings.TrimSpace(value) == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return v
}

func (s *Server) progress() pipeline.ProgressFn {
	if !s.verbose {
		return nil
	}
	return func(processed, total int) {
		log.Printf("analyzing patent %d/%d", processed, total)
	}
}

func (s *Server) renderPage(w http.ResponseWriter, view formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		log.Printf("render page: %v", err)
	}
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": message})
}
