package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/rgolubev/patentlens/internal/model"
)

// SentenceThreshold is the fixed score a sentence must exceed to count as
// justification. It is deliberately independent of the caller-supplied
// feature threshold.
const SentenceThreshold = 50

// MaxJustifications limits how many supporting sentences are kept per feature
const MaxJustifications = 3

// PlaceholderJustification is used when a feature clears the document
// threshold but no single sentence does.
const PlaceholderJustification = "No exact sentence found, but feature is present in the patent text."

// Matcher scores feature phrases against patent text using fuzzy
// partial-ratio matching (best-aligned substring similarity, 0-100).
type Matcher struct{}

// NewMatcher creates a new matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Score returns the partial-ratio similarity between a feature phrase and a
// body of text, case-folded on both sides.
func (m *Matcher) Score(feature, text string) int {
	return fuzzy.PartialRatio(strings.ToLower(feature), strings.ToLower(text))
}

// ScoreFeatures scores every feature against the full document text. A
// feature is retained only when its score strictly exceeds threshold; equal
// scores are excluded. Retained features carry up to MaxJustifications
// supporting sentences, or the placeholder when no sentence qualifies.
func (m *Matcher) ScoreFeatures(features []string, documentText string, threshold int) model.FeatureMatches {
	matches := make(model.FeatureMatches)

	for _, feature := range features {
		score := m.Score(feature, documentText)
		if score <= threshold {
			continue
		}
		matches[feature] = model.FeatureMatch{
			Score:         score,
			Justification: m.justify(feature, documentText),
		}
	}

	return matches
}

// justify re-scores individual sentences against the feature and keeps the
// first qualifying ones, in document order.
func (m *Matcher) justify(feature, documentText string) []string {
	var sentences []string

	for _, sentence := range strings.Split(documentText, ". ") {
		if m.Score(feature, sentence) > SentenceThreshold {
			sentences = append(sentences, strings.TrimSpace(sentence))
			if len(sentences) == MaxJustifications {
				break
			}
		}
	}

	if len(sentences) == 0 {
		return []string{PlaceholderJustification}
	}
	return sentences
}
