package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/greenspectre/internal/aws"
	"github.com/ppiankov/greenspectre/internal/config"
	"github.com/ppiankov/greenspectre/internal/report"
)

type staticInstances struct {
	instances []aws.Instance
	err       error
}

func (s *staticInstances) ListRunning(_ context.Context) ([]aws.Instance, error) {
	return s.instances, s.err
}

func TestExcludingInstances(t *testing.T) {
	src := &staticInstances{instances: []aws.Instance{
		{ID: "i-keep", Type: "m5.large"},
		{ID: "i-skip", Type: "t3.micro"},
		{ID: "i-sandbox", Type: "c6g.large", Tags: map[string]string{"Environment": "sandbox"}},
	}}
	filter := &excludingInstances{src: src, exclude: config.Exclude{
		InstanceIDs: []string{"i-skip"},
		Tags:        []string{"Environment=sandbox"},
	}}

	got, err := filter.ListRunning(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "i-keep" {
		t.Fatalf("expected only i-keep, got %+v", got)
	}
}

func TestExcludingInstances_PassesError(t *testing.T) {
	want := errors.New("boom")
	filter := &excludingInstances{src: &staticInstances{err: want}, exclude: config.Exclude{InstanceIDs: []string{"i-1"}}}

	if _, err := filter.ListRunning(context.Background()); !errors.Is(err, want) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestSelectReporter(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		format string
		check  func(report.Reporter) bool
	}{
		{"text", func(r report.Reporter) bool { tr, ok := r.(*report.TextReporter); return ok && tr.NoColor }},
		{"json", func(r report.Reporter) bool { _, ok := r.(*report.JSONReporter); return ok }},
		{"sarif", func(r report.Reporter) bool { _, ok := r.(*report.SARIFReporter); return ok }},
	}
	for _, tt := range tests {
		r, err := selectReporter(tt.format, &buf, true)
		if err != nil {
			t.Fatalf("format %s: unexpected error: %v", tt.format, err)
		}
		if !tt.check(r) {
			t.Fatalf("format %s: unexpected reporter %T", tt.format, r)
		}
	}

	if _, err := selectReporter("yaml", &buf, false); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestDisableColor(t *testing.T) {
	tests := []struct {
		name       string
		noColor    bool
		outputFile string
		want       bool
	}{
		{"stdout", false, "", false},
		{"flag", true, "", true},
		{"output file", false, "report.txt", true},
		{"both", true, "report.txt", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := disableColor(tt.noColor, tt.outputFile); got != tt.want {
				t.Fatalf("disableColor(%v, %q) = %v, want %v", tt.noColor, tt.outputFile, got, tt.want)
			}
		})
	}

	r, err := selectReporter("text", &bytes.Buffer{}, disableColor(false, "report.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr, ok := r.(*report.TextReporter); !ok || !tr.NoColor {
		t.Fatalf("expected plain text reporter for file output, got %+v", r)
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	savedCfg, savedProfile, savedFlags := cfg, profile, checkFlags
	t.Cleanup(func() { cfg, profile, checkFlags = savedCfg, savedProfile, savedFlags })

	cfg = config.Config{Profile: "from-config", Region: "eu-west-1", SkipCost: true, Format: "json", NoColor: true}
	profile = ""
	checkFlags.region = "us-west-2"
	checkFlags.format = "text"
	checkFlags.skipCost = false
	checkFlags.noColor = false

	// --region was passed explicitly; everything else comes from config.
	applyConfigDefaults(func(name string) bool { return name == "region" })

	if profile != "from-config" {
		t.Fatalf("expected profile from config, got %q", profile)
	}
	if checkFlags.region != "us-west-2" {
		t.Fatalf("expected explicit region to win, got %q", checkFlags.region)
	}
	if checkFlags.format != "json" || !checkFlags.skipCost || !checkFlags.noColor {
		t.Fatalf("expected config defaults applied, got %+v", checkFlags)
	}
}
