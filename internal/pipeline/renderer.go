package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rgolubev/patentlens/internal/model"
)

// ExportJSON renders matched patents in the export format: a JSON array of
// {patent_title, patent_link, matches}, two-space indented.
func ExportJSON(patents []model.MatchedPatent) ([]byte, error) {
	if patents == nil {
		patents = []model.MatchedPatent{}
	}
	data, err := json.MarshalIndent(patents, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}
	return data, nil
}

// ParseExport decodes a previously exported result set
func ParseExport(data []byte) ([]model.MatchedPatent, error) {
	var patents []model.MatchedPatent
	if err := json.Unmarshal(data, &patents); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return patents, nil
}

// WriteExport writes the export format to w
func WriteExport(w io.Writer, patents []model.MatchedPatent) error {
	data, err := ExportJSON(patents)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// WriteExportFile writes the export format to path
func WriteExportFile(path string, patents []model.MatchedPatent) error {
	data, err := ExportJSON(patents)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
