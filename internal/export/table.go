package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/projsim/internal/experiment"
)

// TableHeader is the first row of an optimal-angle table.
var TableHeader = []string{"Drag Coefficient", "Optimal Angle (degrees)", "Max Range (m)"}

// WriteTable writes one row per record. Records without an optimum get
// empty angle and range cells.
func WriteTable(out io.Writer, records []experiment.OptimalAngle) error {
	w := csv.NewWriter(out)
	if err := w.Write(TableHeader); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{formatFloat(rec.Drag), "", ""}
		if rec.Found {
			row[1] = formatFloat(rec.BestAngle)
			row[2] = formatFloat(rec.MaxRange)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadTable parses a table written by WriteTable. The range column is
// optional so two-column files are accepted too.
func ReadTable(in io.Reader) ([]experiment.OptimalAngle, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table")
	}
	if len(records[0]) < 2 || records[0][0] != TableHeader[0] {
		return nil, fmt.Errorf("unexpected header: %v", records[0])
	}

	out := make([]experiment.OptimalAngle, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected at least 2 fields, got %d", i+1, len(row))
		}

		var rec experiment.OptimalAngle
		if rec.Drag, err = strconv.ParseFloat(row[0], 64); err != nil {
			return nil, fmt.Errorf("row %d: drag: %w", i+1, err)
		}
		if row[1] != "" {
			if rec.BestAngle, err = strconv.ParseFloat(row[1], 64); err != nil {
				return nil, fmt.Errorf("row %d: angle: %w", i+1, err)
			}
			rec.Found = true
		}
		if rec.Found && len(row) > 2 && row[2] != "" {
			if rec.MaxRange, err = strconv.ParseFloat(row[2], 64); err != nil {
				return nil, fmt.Errorf("row %d: range: %w", i+1, err)
			}
		}
		out = append(out, rec)
	}

	return out, nil
}

func WriteTableFile(path string, records []experiment.OptimalAngle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTable(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadTableFile(path string) ([]experiment.OptimalAngle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTable(f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
