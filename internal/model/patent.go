package model

// SearchResult is one candidate record returned by the search provider
type SearchResult struct {
	Title string `json:"title"` // Defaults to "Untitled Patent" when the provider omits it
	Link  string `json:"link"`  // Empty when the provider omits it; linkless candidates are skipped
}

// UntitledPatent is the title used when the provider returns a record without one
const UntitledPatent = "Untitled Patent"

// FeatureMatch records how one feature phrase matched a document
type FeatureMatch struct {
	Score         int      `json:"score"`         // Partial-ratio score, 0-100
	Justification []string `json:"justification"` // 1-3 supporting sentences (or the placeholder)
}

// FeatureMatches maps a feature phrase to its match evidence.
// A feature absent from the map did not clear the similarity threshold.
type FeatureMatches map[string]FeatureMatch

// MatchedPatent is a candidate that cleared the minimum-feature-matches filter
type MatchedPatent struct {
	Title   string         `json:"patent_title"`
	Link    string         `json:"patent_link"`
	Matches FeatureMatches `json:"matches"`
}

// Result is the outcome of one analysis run
type Result struct {
	Patents  []MatchedPatent `json:"patents"`            // Retrieval order, no re-ranking
	Analyzed int             `json:"analyzed"`           // Candidates fetched and scored
	Warnings []string        `json:"warnings,omitempty"` // Recovered failures (provider errors etc.)
}
