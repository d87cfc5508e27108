package report

import (
	"io"
	"time"

	"github.com/ppiankov/greenspectre/internal/analyzer"
)

// Reporter writes a finished analysis in one output format.
type Reporter interface {
	Generate(data Data) error
}

// Target identifies the analyzed account without exposing it.
type Target struct {
	Type    string `json:"type"`
	URIHash string `json:"uri_hash"`
}

// ReportConfig records the settings the run was made with.
type ReportConfig struct {
	Profile        string `json:"profile,omitempty"`
	Region         string `json:"region"`
	SkipCost       bool   `json:"skip_cost"`
	LookbackDays   int    `json:"lookback_days"`
	CostWindowDays int    `json:"cost_window_days"`
}

// Data is everything a reporter needs to render one run.
type Data struct {
	Tool      string           `json:"tool"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Target    Target           `json:"target"`
	Config    ReportConfig     `json:"config"`
	Result    *analyzer.Result `json:"result"`
}

// TextReporter writes the human-readable report.
type TextReporter struct {
	Writer  io.Writer
	NoColor bool
}

// JSONReporter writes the spectre/v1 JSON envelope.
type JSONReporter struct {
	Writer io.Writer
}

// SARIFReporter writes SARIF v2.1.0 output.
type SARIFReporter struct {
	Writer io.Writer
}
