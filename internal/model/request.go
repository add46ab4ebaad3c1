package model

import (
	"fmt"
	"strings"
)

// Parameter bounds for a single analysis. These mirror the adjustable form
// inputs: every analysis parameter is user-supplied and range-checked before
// any network call is made.
const (
	MinThreshold     = 30
	MaxThreshold     = 90
	DefaultThreshold = 40

	MinFeatureMatches        = 1
	MaxFeatureMatches        = 10
	DefaultMinFeatureMatches = 3

	MinMaxPatents     = 5
	MaxMaxPatents     = 20
	DefaultMaxPatents = 10
)

// AnalysisRequest carries everything one analysis needs. It is built fresh
// per submission and never read from config, environment, or flags.
type AnalysisRequest struct {
	APIKey      string   `json:"api_key"`
	Description string   `json:"description"` // Free-text invention description
	Features    []string `json:"features"`    // One feature phrase per entry
	Threshold   int      `json:"threshold"`   // Similarity threshold, strict >
	MinMatches  int      `json:"min_matches"` // Minimum matched features to retain a patent
	MaxPatents  int      `json:"max_patents"` // Maximum candidates to fetch and score
}

// FieldError reports a single invalid input field so the presentation layer
// can render errors inline, next to the field that caused them.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseFeatures splits a newline-delimited feature list, trimming each line
// and dropping blank ones.
func ParseFeatures(text string) []string {
	var features []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			features = append(features, line)
		}
	}
	return features
}

// Validate checks the request before any side effects. Zero-valued numeric
// parameters take their defaults; out-of-range values are rejected. Returns
// all field errors at once so the form can show every problem together.
func (r *AnalysisRequest) Validate() []*FieldError {
	var errs []*FieldError

	if strings.TrimSpace(r.APIKey) == "" {
		errs = append(errs, &FieldError{Field: "api_key", Message: "SerpAPI key is required"})
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, &FieldError{Field: "description", Message: "invention description is required"})
	}

	features := make([]string, 0, len(r.Features))
	for _, f := range r.Features {
		f = strings.TrimSpace(f)
		if f != "" {
			features = append(features, f)
		}
	}
	r.Features = features
	if len(r.Features) == 0 {
		errs = append(errs, &FieldError{Field: "features", Message: "at least one feature is required (one per line)"})
	}

	if r.Threshold == 0 {
		r.Threshold = DefaultThreshold
	}
	if r.Threshold < MinThreshold || r.Threshold > MaxThreshold {
		errs = append(errs, &FieldError{
			Field:   "threshold",
			Message: fmt.Sprintf("similarity threshold must be between %d and %d", MinThreshold, MaxThreshold),
		})
	}

	if r.MinMatches == 0 {
		r.MinMatches = DefaultMinFeatureMatches
	}
	if r.MinMatches < MinFeatureMatches || r.MinMatches > MaxFeatureMatches {
		errs = append(errs, &FieldError{
			Field:   "min_matches",
			Message: fmt.Sprintf("minimum feature matches must be between %d and %d", MinFeatureMatches, MaxFeatureMatches),
		})
	}

	if r.MaxPatents == 0 {
		r.MaxPatents = DefaultMaxPatents
	}
	if r.MaxPatents < MinMaxPatents || r.MaxPatents > MaxMaxPatents {
		errs = append(errs, &FieldError{
			Field:   "max_patents",
			Message: fmt.Sprintf("maximum patents must be between %d and %d", MinMaxPatents, MaxMaxPatents),
		})
	}

	return errs
}
