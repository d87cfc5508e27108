package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/greenspectre/internal/analyzer"
)

const jsonSchema = "spectre/v1"

type jsonEnvelope struct {
	Schema    string           `json:"$schema"`
	Tool      string           `json:"tool"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Target    Target           `json:"target"`
	Config    ReportConfig     `json:"config"`
	Result    *analyzer.Result `json:"result"`
}

// Generate writes the full structured result wrapped in the spectre/v1 envelope.
func (r *JSONReporter) Generate(data Data) error {
	envelope := jsonEnvelope{
		Schema:    jsonSchema,
		Tool:      data.Tool,
		Version:   data.Version,
		Timestamp: data.Timestamp,
		Target:    data.Target,
		Config:    data.Config,
		Result:    data.Result,
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envelope); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
