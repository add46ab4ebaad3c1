package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgolubev/patentlens/internal/cache"
	"github.com/rgolubev/patentlens/internal/extract"
	"github.com/rgolubev/patentlens/internal/match"
	"github.com/rgolubev/patentlens/internal/model"
	"github.com/rgolubev/patentlens/internal/search"
)

// Searcher retrieves candidate records for a query
type Searcher interface {
	Search(ctx context.Context, query, apiKey string) ([]model.SearchResult, error)
}

// PageFetcher retrieves raw HTML for a candidate link
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ProgressFn reports per-candidate progress: processed so far out of total.
// Presentation concern only; nil is fine.
type ProgressFn func(processed, total int)

// Analyzer drives one analysis: retrieval, the sequential fetch/extract
// loop, and feature matching. One submission at a time; the only state it
// owns is the accumulating result.
type Analyzer struct {
	searcher  Searcher
	fetcher   PageFetcher
	extractor *extract.PatentExtractor
	matcher   *match.Matcher
}

// NewAnalyzer creates an analyzer wired to the real provider and fetcher.
// c may be nil to disable provider-response caching.
func NewAnalyzer(cfg *model.Config, c cache.Cache) *Analyzer {
	return &Analyzer{
		searcher:  search.NewClient(cfg.Search, cfg.HTTP.Timeout, c),
		fetcher:   NewFetcher(cfg.HTTP, cfg.Politeness),
		extractor: extract.NewPatentExtractor(),
		matcher:   match.NewMatcher(),
	}
}

// ValidationError rejects a request before any network call is made
type ValidationError struct {
	Fields []*model.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "invalid request: " + strings.Join(msgs, "; ")
}

// Run executes one analysis. The candidate list is truncated to MaxPatents
// before linkless records are skipped, so a linkless record still consumes a
// slot — this matches the retrieval contract exactly. Failures degrade:
// a provider error becomes a warning and zero candidates; a per-document
// fetch or parse error becomes that document's text and the loop continues.
func (a *Analyzer) Run(ctx context.Context, req model.AnalysisRequest, progress ProgressFn) (*model.Result, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	result := &model.Result{}

	candidates, err := a.searcher.Search(ctx, req.Description, req.APIKey)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("patent search failed: %v", err))
		candidates = nil
	}

	if len(candidates) > req.MaxPatents {
		candidates = candidates[:req.MaxPatents]
	}

	total := len(candidates)
	for i, candidate := range candidates {
		if progress != nil {
			progress(i+1, total)
		}
		if candidate.Link == "" {
			continue
		}

		text := a.documentText(ctx, candidate.Link)
		matches := a.matcher.ScoreFeatures(req.Features, text, req.Threshold)
		result.Analyzed++

		if len(matches) >= req.MinMatches {
			result.Patents = append(result.Patents, model.MatchedPatent{
				Title:   candidate.Title,
				Link:    candidate.Link,
				Matches: matches,
			})
		}
	}

	return result, nil
}

// documentText fetches and extracts one patent document. It always returns
// usable text: extraction failures yield an error-describing string so a
// single bad URL never aborts the remaining candidates.
func (a *Analyzer) documentText(ctx context.Context, url string) string {
	html, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Sprintf("Error scraping patent details: %v", err)
	}

	doc, err := a.extractor.Extract(html)
	if err != nil {
		return fmt.Sprintf("Error scraping patent details: %v", err)
	}

	return doc.Text()
}
