package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/sourcespace/internal/metrics"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Theme     string             `json:"theme"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	Frames    int                `json:"frames"`
	FPS       int                `json:"fps"`
	Particles int                `json:"particles"`
	Threshold float64            `json:"threshold"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Metrics   map[string]float64 `json:"metrics"`
}

var framesHeader = []string{"frame", "energy", "edges", "mean_speed", "escapes"}

// Save writes meta and the per-frame points under a new run directory and
// returns the run ID. ID and Timestamp are filled in when empty.
func (s *Store) Save(meta RunMetadata, points []metrics.Point) (string, error) {
	now := time.Now()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Theme, now.UnixNano())
	}
	meta.Frames = len(points)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(framesHeader); err != nil {
		return "", err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatUint(p.Frame, 10),
			strconv.FormatFloat(p.Energy, 'f', 6, 64),
			strconv.Itoa(p.Edges),
			strconv.FormatFloat(p.MeanSpeed, 'f', 6, 64),
			strconv.Itoa(p.Escapes),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first. A missing base directory
// is an empty store.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[len(runs)-1], nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads back the per-frame points of a run. Malformed rows are
// skipped.
func (s *Store) LoadSeries(runID string) ([]metrics.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []metrics.Point{}, nil
	}

	points := make([]metrics.Point, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(framesHeader) {
			continue
		}
		p, err := parsePoint(record)
		if err != nil {
			continue
		}
		points = append(points, p)
	}
	return points, nil
}

func parsePoint(record []string) (metrics.Point, error) {
	var p metrics.Point
	var err error
	if p.Frame, err = strconv.ParseUint(record[0], 10, 64); err != nil {
		return p, err
	}
	if p.Energy, err = strconv.ParseFloat(record[1], 64); err != nil {
		return p, err
	}
	if p.Edges, err = strconv.Atoi(record[2]); err != nil {
		return p, err
	}
	if p.MeanSpeed, err = strconv.ParseFloat(record[3], 64); err != nil {
		return p, err
	}
	if p.Escapes, err = strconv.Atoi(record[4]); err != nil {
		return p, err
	}
	return p, nil
}
