package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/wordgif/internal/engine"
	"github.com/san-kum/wordgif/internal/style"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Input      string    `json:"input"`
	Output     string    `json:"output"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	DelayMs    int       `json:"delay_ms"`
	Speed      bool      `json:"speed"`
	Trim       bool      `json:"trim"`
	Seed       uint64    `json:"seed"`
	Alternate  string    `json:"alternate"`
	Rasterizer string    `json:"rasterizer"`
	Frames     int       `json:"frames"`
	Dropped    int       `json:"dropped"`
	Files      []string  `json:"files"`
	ElapsedMs  int64     `json:"elapsed_ms"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Index      int
	Token      string
	DelayMs    int
	Fill       string
	Background string
}

// Run describes what was rendered; the store adds the result.
type Run struct {
	Input      string
	Output     string
	Config     engine.Config
	Seed       uint64
	Rasterizer string
}

// Save writes metadata.json and frames.csv into a new run directory and
// returns its ID.
func (s *Store) Save(run Run, result *engine.Result) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("run_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  now,
		Input:      run.Input,
		Output:     run.Output,
		Rows:       run.Config.Grid.Rows,
		Columns:    run.Config.Grid.Columns,
		DelayMs:    run.Config.Timing.BaseDelayMs,
		Speed:      run.Config.Timing.SpeedRamp,
		Trim:       run.Config.Trim,
		Seed:       run.Seed,
		Alternate:  run.Config.Style.Mode.String(),
		Rasterizer: run.Rasterizer,
		Frames:     result.Frames,
		Dropped:    result.Dropped,
		Files:      result.Paths,
		ElapsedMs:  result.Elapsed.Milliseconds(),
	}

	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, "frames.csv"), result.Steps); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeFrames(path string, steps []engine.Step) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "token", "delay_ms", "fill", "background"}); err != nil {
		return err
	}
	for _, step := range steps {
		row := []string{
			strconv.Itoa(step.Index),
			step.Token,
			strconv.Itoa(step.DelayMs),
			style.Hex(step.Fill),
			style.Hex(step.Background),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads frames.csv of a run. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
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
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		delay, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}
		fr := FrameRecord{Index: idx, Token: record[1], DelayMs: delay}
		if len(record) >= 5 {
			fr.Fill, fr.Background = record[3], record[4]
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

// Delays returns the delay column of frames.
func Delays(frames []FrameRecord) []float64 {
	d := make([]float64, len(frames))
	for i, f := range frames {
		d[i] = float64(f.DelayMs)
	}
	return d
}
