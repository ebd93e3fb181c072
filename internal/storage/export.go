package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []FrameExport `json:"frames"`
}

type FrameExport struct {
	Index      int    `json:"index"`
	Token      string `json:"token"`
	DelayMs    int    `json:"delay_ms"`
	Fill       string `json:"fill,omitempty"`
	Background string `json:"background,omitempty"`
}

// Export assembles a recorded run for JSON output.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{Run: *meta, Frames: make([]FrameExport, len(frames))}
	for i, f := range frames {
		data.Frames[i] = FrameExport(f)
	}
	return data, nil
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
