package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/projsim/internal/experiment"
)

func runSweep(t *testing.T) *experiment.SweepResult {
	t.Helper()
	res, err := experiment.NewAngleSweep(0.2, []float64{30, 45}).Run(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := runSweep(t)
	runID, err := st.Save("angles_test", res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID != "angles_test" {
		t.Errorf("expected run id angles_test, got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Experiment != "angles" || meta.Drag != 0.2 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if len(meta.Series) != 2 || meta.Series[1].Label != "45 degrees" {
		t.Errorf("unexpected series metadata: %+v", meta.Series)
	}
	if meta.Optimal == nil || meta.Optimal.BestAngle != res.Optimal.BestAngle {
		t.Errorf("optimal not stored: %+v", meta.Optimal)
	}
	if _, ok := meta.Series[0].Metrics["apex"]; !ok {
		t.Error("expected apex metric in metadata")
	}

	series, err := st.LoadTrajectories(runID)
	if err != nil {
		t.Fatalf("load trajectories failed: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	for i, s := range series {
		want := res.Entries[i].Trajectory.Points
		if len(s.Points) != len(want) {
			t.Fatalf("series %d: expected %d points, got %d", i, len(want), len(s.Points))
		}
		if s.Points[len(want)-1] != want[len(want)-1] {
			t.Errorf("series %d: final point %v, want %v", i, s.Points[len(want)-1], want[len(want)-1])
		}
		if s.Label != res.Entries[i].Label || s.Value != res.Entries[i].Value {
			t.Errorf("series %d: label/value mismatch: %q %v", i, s.Label, s.Value)
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("first", runSweep(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save("first", runSweep(t)); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run after overwrite, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if _, err := st.Save("layout", runSweep(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, trajectoriesFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, "layout", name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreRejectsEmptyResult(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Save("empty", &experiment.SweepResult{}); !errors.Is(err, experiment.ErrNotRun) {
		t.Errorf("expected ErrNotRun, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Save("json", runSweep(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, err := st.Load("json")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded RunMetadata
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("exported JSON invalid: %v", err)
	}
	if decoded.ID != "json" {
		t.Errorf("expected id json, got %q", decoded.ID)
	}
}

func TestLoadTrajectoriesRejectsNegativeSeries(t *testing.T) {
	tmpDir := t.TempDir()
	runDir := filepath.Join(tmpDir, "corrupt")
	if err := os.MkdirAll(runDir, 0755); err != nil {
		t.Fatal(err)
	}
	data := "series,label,value,step,x,y\n-1,a,1,0,0,0\n"
	if err := os.WriteFile(filepath.Join(runDir, trajectoriesFile), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(tmpDir).LoadTrajectories("corrupt"); err == nil {
		t.Error("expected error for negative series index")
	}
}

func TestStoreSaveReportsWriteFailure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	// a directory in place of the samples file makes the write fail
	if err := os.MkdirAll(filepath.Join(tmpDir, "blocked", trajectoriesFile), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save("blocked", runSweep(t)); err == nil {
		t.Error("expected save to fail")
	}
}
