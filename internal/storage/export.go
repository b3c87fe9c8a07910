package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/sourcespace/internal/metrics"
)

// ExportData is the single-document JSON form of a run.
type ExportData struct {
	Run    RunMetadata     `json:"run"`
	Points []metrics.Point `json:"points"`
}

func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	points, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Points: points})
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
