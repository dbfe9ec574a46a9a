package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/projsim/internal/experiment"
	"github.com/san-kum/projsim/internal/flight"
)

const (
	metadataFile     = "metadata.json"
	trajectoriesFile = "trajectories.csv"
)

// Store keeps one directory per sweep, named by the sweep label.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SeriesMetadata struct {
	Label   string             `json:"label"`
	Value   float64            `json:"value"`
	Steps   int                `json:"steps"`
	Range   float64            `json:"range"`
	Metrics map[string]float64 `json:"metrics"`
}

type RunMetadata struct {
	ID         string                   `json:"id"`
	Experiment string                   `json:"experiment"`
	Parameter  string                   `json:"parameter"`
	Timestamp  time.Time                `json:"timestamp"`
	Drag       float64                  `json:"drag"`
	Dt         float64                  `json:"dt"`
	Mass       float64                  `json:"mass"`
	Gravity    float64                  `json:"gravity"`
	Series     []SeriesMetadata         `json:"series"`
	Optimal    *experiment.OptimalAngle `json:"optimal,omitempty"`
}

// Series is one stored trajectory.
type Series struct {
	Label  string
	Value  float64
	Points []flight.Point
}

// Save writes res under label, replacing an earlier run with the same label.
func (s *Store) Save(label string, res *experiment.SweepResult) (string, error) {
	if err := res.Check(); err != nil {
		return "", err
	}

	runDir := filepath.Join(s.baseDir, label)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	first := res.Entries[0].Trajectory.Params
	meta := RunMetadata{
		ID:         label,
		Experiment: res.Name,
		Parameter:  res.Parameter,
		Timestamp:  time.Now(),
		Drag:       res.Drag,
		Dt:         first.Dt,
		Mass:       first.Mass,
		Gravity:    first.Gravity,
		Series:     make([]SeriesMetadata, len(res.Entries)),
		Optimal:    res.Optimal,
	}
	for i, e := range res.Entries {
		meta.Series[i] = SeriesMetadata{
			Label:   e.Label,
			Value:   e.Value,
			Steps:   e.Trajectory.Steps,
			Range:   e.Trajectory.Range(),
			Metrics: e.Trajectory.Metrics,
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoriesFile))
	if err != nil {
		return "", err
	}
	if err := WriteTrajectoriesCSV(csvFile, res); err != nil {
		csvFile.Close()
		return "", err
	}
	if err := csvFile.Close(); err != nil {
		return "", err
	}

	return label, nil
}

// WriteTrajectoriesCSV writes one row per sample: series index, label,
// swept value, step, x, y.
func WriteTrajectoriesCSV(out io.Writer, res *experiment.SweepResult) error {
	if err := res.Check(); err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"series", "label", "value", "step", "x", "y"}); err != nil {
		return err
	}

	for i, e := range res.Entries {
		idx := strconv.Itoa(i)
		value := strconv.FormatFloat(e.Value, 'g', -1, 64)
		for step, p := range e.Trajectory.Points {
			row := []string{
				idx,
				e.Label,
				value,
				strconv.Itoa(step),
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

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

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectories reads the stored samples back in series order.
func (s *Store) LoadTrajectories(runID string) ([]Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]Series, 0)
	for i := 1; i < len(records); i++ {
		record := records[i]

		idx, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: series: %w", i, err)
		}
		if idx < 0 {
			return nil, fmt.Errorf("row %d: negative series index %d", i, idx)
		}
		value, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: value: %w", i, err)
		}
		x, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: x: %w", i, err)
		}
		y, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: y: %w", i, err)
		}

		for idx >= len(series) {
			series = append(series, Series{})
		}
		series[idx].Label = record[1]
		series[idx].Value = value
		series[idx].Points = append(series[idx].Points, flight.Point{X: x, Y: y})
	}

	return series, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportJSON writes a stored run's metadata to out.
func ExportJSON(out io.Writer, meta *RunMetadata) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
