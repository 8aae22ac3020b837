package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Report is the persistable record of one batch run.
type Report struct {
	RunID     string       `json:"runId"`
	CreatedAt time.Time    `json:"createdAt"`
	Spec      *BatchSpec   `json:"spec"`
	Stats     *Stats       `json:"stats"`
	Results   []GameResult `json:"results,omitempty"`
}

// NewReport stamps a batch outcome with a run ID and timestamp.
func NewReport(spec *BatchSpec, stats *Stats, results []GameResult) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Spec:      spec,
		Stats:     stats,
		Results:   results,
	}
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// SaveFile writes the report to the given path.
func (r *Report) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	defer f.Close()
	if err := r.WriteJSON(f); err != nil {
		return err
	}
	return f.Close()
}
