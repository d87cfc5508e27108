package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NoFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile != "" {
		t.Fatalf("expected empty profile, got %q", cfg.Profile)
	}
	if cfg.SkipCost {
		t.Fatal("expected skip_cost to default to false")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	content := `profile: production
region: ap-northeast-2
skip_cost: true
format: json
no_color: true
exclude:
  instance_ids:
    - i-0abc123
  tags:
    - "Environment=sandbox"
`
	if err := os.WriteFile(filepath.Join(dir, ".greenspectre.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile != "production" {
		t.Fatalf("expected profile production, got %q", cfg.Profile)
	}
	if cfg.Region != "ap-northeast-2" {
		t.Fatalf("expected region ap-northeast-2, got %q", cfg.Region)
	}
	if !cfg.SkipCost {
		t.Fatal("expected skip_cost true")
	}
	if cfg.Format != "json" {
		t.Fatalf("expected format json, got %q", cfg.Format)
	}
	if !cfg.NoColor {
		t.Fatal("expected no_color true")
	}
	if len(cfg.Exclude.InstanceIDs) != 1 {
		t.Fatalf("expected 1 excluded instance ID, got %d", len(cfg.Exclude.InstanceIDs))
	}
	if len(cfg.Exclude.Tags) != 1 {
		t.Fatalf("expected 1 excluded tag, got %d", len(cfg.Exclude.Tags))
	}
}

func TestLoad_YMLExtension(t *testing.T) {
	dir := t.TempDir()
	content := `profile: staging
`
	if err := os.WriteFile(filepath.Join(dir, ".greenspectre.yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile != "staging" {
		t.Fatalf("expected profile staging, got %q", cfg.Profile)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	content := `[invalid yaml content`
	if err := os.WriteFile(filepath.Join(dir, ".greenspectre.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_YAMLPriority(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".greenspectre.yaml"), []byte(`profile: from-yaml`), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".greenspectre.yml"), []byte(`profile: from-yml`), 0o644); err != nil {
		t.Fatalf("write yml: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// .yaml should take priority over .yml
	if cfg.Profile != "from-yaml" {
		t.Fatalf("expected profile from-yaml (priority), got %q", cfg.Profile)
	}
}

func TestExclude_ParseTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want map[string]string
	}{
		{"empty", nil, nil},
		{"key=value", []string{"Environment=production"}, map[string]string{"Environment": "production"}},
		{"key-only", []string{"temporary"}, map[string]string{"temporary": ""}},
		{"mixed", []string{"Env=prod", "greenspectre:ignore"}, map[string]string{"Env": "prod", "greenspectre:ignore": ""}},
		{"empty-value", []string{"Key="}, map[string]string{"Key": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Exclude{Tags: tt.tags}
			got := e.ParseTags()
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d: %v", len(tt.want), len(got), got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("key %q: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestExclude_Matches(t *testing.T) {
	e := Exclude{
		InstanceIDs: []string{"i-skip"},
		Tags:        []string{"Environment=sandbox", "greenspectre:ignore"},
	}

	tests := []struct {
		name string
		id   string
		tags map[string]string
		want bool
	}{
		{"by id", "i-skip", nil, true},
		{"by tag value", "i-1", map[string]string{"Environment": "sandbox"}, true},
		{"tag value differs", "i-2", map[string]string{"Environment": "production"}, false},
		{"key-only tag", "i-3", map[string]string{"greenspectre:ignore": "yes"}, true},
		{"no match", "i-4", map[string]string{"Name": "api"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Matches(tt.id, tt.tags); got != tt.want {
				t.Fatalf("Matches(%q, %v) = %v, want %v", tt.id, tt.tags, got, tt.want)
			}
		})
	}

	if !(Exclude{}).Empty() || e.Empty() {
		t.Fatal("unexpected Empty result")
	}
}
