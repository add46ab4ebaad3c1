package match

import (
	"strings"
	"testing"
)

func TestScoreFeatures_BothFeaturesMatch(t *testing.T) {
	m := NewMatcher()

	features := []string{"red widget", "blue gear"}
	text := "a red widget with a blue gear attachment"

	matches := m.ScoreFeatures(features, text, 40)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matched features, got %d", len(matches))
	}

	for _, feature := range features {
		match, ok := matches[feature]
		if !ok {
			t.Fatalf("Expected feature %q in matches", feature)
		}
		if match.Score <= 40 {
			t.Errorf("Expected score > 40 for %q, got %d", feature, match.Score)
		}
		if len(match.Justification) == 0 {
			t.Fatalf("Expected justification for %q", feature)
		}
		if !strings.Contains(match.Justification[0], "red widget") {
			t.Errorf("Expected justification to reference the matching sentence, got %q", match.Justification[0])
		}
	}
}

func TestScoreFeatures_ThresholdBoundaryIsStrict(t *testing.T) {
	m := NewMatcher()

	// An exact occurrence scores 100. With threshold 100 the score equals
	// the threshold and must be excluded; with 99 it must be included.
	text := "red widget"

	matches := m.ScoreFeatures([]string{"red widget"}, text, 100)
	if len(matches) != 0 {
		t.Errorf("Expected score == threshold to be excluded, got %v", matches)
	}

	matches = m.ScoreFeatures([]string{"red widget"}, text, 99)
	match, ok := matches["red widget"]
	if !ok {
		t.Fatal("Expected score > threshold to be included")
	}
	if match.Score != 100 {
		t.Errorf("Expected score 100 for exact occurrence, got %d", match.Score)
	}
}

func TestScoreFeatures_CaseInsensitive(t *testing.T) {
	m := NewMatcher()

	matches := m.ScoreFeatures([]string{"RED WIDGET"}, "a red widget attachment", 40)

	match, ok := matches["RED WIDGET"]
	if !ok {
		t.Fatal("Expected case-folded match for RED WIDGET")
	}
	if match.Score <= 40 {
		t.Errorf("Expected high score, got %d", match.Score)
	}
}

func TestScoreFeatures_NoExtraKeys(t *testing.T) {
	m := NewMatcher()

	features := []string{"red widget", "xq7zk9v3pw"}
	matches := m.ScoreFeatures(features, "a red widget attachment", 40)

	for key := range matches {
		found := false
		for _, feature := range features {
			if key == feature {
				found = true
			}
		}
		if !found {
			t.Errorf("Unexpected key %q in matches", key)
		}
	}

	if _, ok := matches["xq7zk9v3pw"]; ok {
		t.Error("Expected dissimilar feature to be excluded")
	}
}

func TestScoreFeatures_JustificationLimitedToThree(t *testing.T) {
	m := NewMatcher()

	text := "the red widget one. the red widget two. the red widget three. the red widget four. the red widget five"
	matches := m.ScoreFeatures([]string{"red widget"}, text, 40)

	match, ok := matches["red widget"]
	if !ok {
		t.Fatal("Expected red widget to match")
	}
	if len(match.Justification) != MaxJustifications {
		t.Fatalf("Expected %d justifications, got %d", MaxJustifications, len(match.Justification))
	}

	// First qualifying sentences in document order
	expected := []string{"the red widget one", "the red widget two", "the red widget three"}
	for i, want := range expected {
		if match.Justification[i] != want {
			t.Errorf("Justification[%d] = %q, want %q", i, match.Justification[i], want)
		}
	}
}

func TestScoreFeatures_PlaceholderWhenNoSentenceQualifies(t *testing.T) {
	m := NewMatcher()

	// The feature's two halves sit in different sentences, padded with text
	// sharing no characters with the feature. Each sentence aligns at most
	// half the feature (partial ratio 50, not above the fixed sentence
	// threshold), while the whole document still clears a threshold of 40.
	feature := "uvwxyz123456"
	text := "pad pad uvwxyz pad. pad 123456 pad pad"

	matches := m.ScoreFeatures([]string{feature}, text, 40)

	match, ok := matches[feature]
	if !ok {
		t.Fatal("Expected feature to clear the document threshold")
	}
	if len(match.Justification) != 1 {
		t.Fatalf("Expected single placeholder justification, got %d entries", len(match.Justification))
	}
	if match.Justification[0] != PlaceholderJustification {
		t.Errorf("Expected placeholder justification, got %q", match.Justification[0])
	}
}

func TestScoreFeatures_EmptyFeatureList(t *testing.T) {
	m := NewMatcher()

	matches := m.ScoreFeatures(nil, "some document text", 40)
	if len(matches) != 0 {
		t.Errorf("Expected no matches for empty feature list, got %v", matches)
	}
}

func TestScoreFeatures_JustificationNeverEmpty(t *testing.T) {
	m := NewMatcher()

	texts := []string{
		"a red widget with a blue gear attachment",
		"red widget. red widget again",
		"pad pad red pad. pad widget pad pad",
	}

	for _, text := range texts {
		matches := m.ScoreFeatures([]string{"red widget"}, text, 30)
		for feature, match := range matches {
			if len(match.Justification) == 0 {
				t.Errorf("Feature %q in %q has empty justification", feature, text)
			}
			if len(match.Justification) > MaxJustifications {
				t.Errorf("Feature %q in %q has %d justifications", feature, text, len(match.Justification))
			}
		}
	}
}
