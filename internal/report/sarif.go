package report

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/greenspectre/internal/analyzer"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// sarifReport is the top-level SARIF v2.1.0 structure.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifMessage      `json:"shortDescription"`
	DefaultConfig    sarifDefaultLevel `json:"defaultConfiguration"`
}

type sarifDefaultLevel struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string         `json:"ruleId"`
	Level     string         `json:"level"`
	Message   sarifMessage   `json:"message"`
	Locations []sarifLoc     `json:"locations,omitempty"`
	Props     map[string]any `json:"properties,omitempty"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

const (
	ruleLowUtilization = "LOW_UTILIZATION_EC2"
	ruleARMMigration   = "ARM_MIGRATION_CANDIDATE"
	ruleOverProvision  = "OVER_PROVISIONED"
)

// Generate writes SARIF v2.1.0 output. Results cover low-utilization instances,
// x86 instances when the ARM share is below target, and over-provisioned
// Compute Optimizer counts.
func (r *SARIFReporter) Generate(data Data) error {
	results := buildSARIFResults(data.Result)

	report := sarifReport{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    data.Tool,
						Version: data.Version,
						Rules:   buildSARIFRules(),
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode SARIF report: %w", err)
	}
	return nil
}

func buildSARIFResults(res *analyzer.Result) []sarifResult {
	results := make([]sarifResult, 0)
	if res == nil {
		return results
	}
	region := res.Identity.Region
	u := res.Utilization

	for _, inst := range u.Instances {
		if !inst.LowUtilization() {
			continue
		}
		results = append(results, sarifResult{
			RuleID:    ruleLowUtilization,
			Level:     "warning",
			Message:   sarifMessage{Text: fmt.Sprintf("Average CPU %.1f%% over %d days", inst.Utilization.Average, analyzer.LookbackDays)},
			Locations: resourceLocation(region, "ec2", inst.ID),
			Props: map[string]any{
				"instanceType": inst.Type,
				"name":         inst.Name,
				"avgCpu":       inst.Utilization.Average,
			},
		})
	}

	if u.SuggestARM {
		for _, inst := range u.Instances {
			if inst.Architecture != analyzer.ArchX86 {
				continue
			}
			results = append(results, sarifResult{
				RuleID:    ruleARMMigration,
				Level:     "note",
				Message:   sarifMessage{Text: fmt.Sprintf("x86 instance type %s; ARM share is %.1f%%", inst.Type, u.ARMPercent)},
				Locations: resourceLocation(region, "ec2", inst.ID),
				Props: map[string]any{
					"instanceType": inst.Type,
					"family":       inst.Family,
				},
			})
		}
	}

	for _, s := range res.Recommendations.Summaries {
		count := s.Counts()[analyzer.CategoryOverProvisioned]
		if count == 0 {
			continue
		}
		results = append(results, sarifResult{
			RuleID:    ruleOverProvision,
			Level:     "warning",
			Message:   sarifMessage{Text: fmt.Sprintf("%d over-provisioned %s resources", count, s.ResourceType)},
			Locations: resourceLocation(region, "compute-optimizer", s.ResourceType),
			Props: map[string]any{
				"resourceType": s.ResourceType,
				"count":        count,
			},
		})
	}

	return results
}

func resourceLocation(region, kind, id string) []sarifLoc {
	return []sarifLoc{
		{
			PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifArtifact{
					URI: fmt.Sprintf("aws://%s/%s/%s", region, kind, id),
				},
			},
		},
	}
}

func buildSARIFRules() []sarifRule {
	return []sarifRule{
		{ID: ruleLowUtilization, ShortDescription: sarifMessage{Text: "EC2 instance with low CPU utilization"}, DefaultConfig: sarifDefaultLevel{Level: "warning"}},
		{ID: ruleARMMigration, ShortDescription: sarifMessage{Text: "x86 instance that could move to Graviton"}, DefaultConfig: sarifDefaultLevel{Level: "note"}},
		{ID: ruleOverProvision, ShortDescription: sarifMessage{Text: "Over-provisioned resources reported by Compute Optimizer"}, DefaultConfig: sarifDefaultLevel{Level: "warning"}},
	}
}
