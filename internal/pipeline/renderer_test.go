package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgolubev/patentlens/internal/model"
)

func sampleMatches() []model.MatchedPatent {
	return []model.MatchedPatent{
		{
			Title: "Smart Irrigation Controller",
			Link:  "https://patents.google.com/patent/US1",
			Matches: model.FeatureMatches{
				"soil moisture sensor": {
					Score:         87,
					Justification: []string{"A soil moisture sensor is buried at root depth"},
				},
			},
		},
		{
			Title: "Drip Valve Assembly",
			Link:  "https://patents.google.com/patent/US2",
			Matches: model.FeatureMatches{
				"drip valve": {
					Score:         92,
					Justification: []string{"The drip valve opens under low pressure"},
				},
			},
		},
	}
}

func TestExportJSON_RoundTrip(t *testing.T) {
	patents := sampleMatches()

	data, err := ExportJSON(patents)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	decoded, err := ParseExport(data)
	if err != nil {
		t.Fatalf("Expected parseable export, got %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("Expected 2 patents, got %d", len(decoded))
	}
	if decoded[0].Title != "Smart Irrigation Controller" {
		t.Errorf("Title = %q", decoded[0].Title)
	}
	match, ok := decoded[0].Matches["soil moisture sensor"]
	if !ok {
		t.Fatal("Expected feature key to survive the round trip")
	}
	if match.Score != 87 || len(match.Justification) != 1 {
		t.Errorf("Match = %+v", match)
	}
}

func TestExportJSON_FieldNamesAndIndent(t *testing.T) {
	data, err := ExportJSON(sampleMatches())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	text := string(data)
	for _, field := range []string{`"patent_title"`, `"patent_link"`, `"matches"`, `"score"`, `"justification"`} {
		if !strings.Contains(text, field) {
			t.Errorf("Export missing field %s:\n%s", field, text)
		}
	}
	if !strings.Contains(text, "\n  {") {
		t.Error("Expected two-space indentation")
	}
}

func TestExportJSON_EmptyIsArray(t *testing.T) {
	for _, patents := range [][]model.MatchedPatent{nil, {}} {
		data, err := ExportJSON(patents)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("Expected empty array, got %q", string(data))
		}
	}
}

func TestWriteExport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExport(&buf, sampleMatches()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := ParseExport(buf.Bytes()); err != nil {
		t.Errorf("Expected parseable output, got %v", err)
	}
}

func TestWriteExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patent_matches.json")

	if err := WriteExportFile(path, sampleMatches()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected file to exist, got %v", err)
	}
	decoded, err := ParseExport(data)
	if err != nil {
		t.Fatalf("Expected parseable file, got %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("Expected 2 patents, got %d", len(decoded))
	}
}
