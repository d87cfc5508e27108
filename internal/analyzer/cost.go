package analyzer

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	awstype "github.com/ppiankov/greenspectre/internal/aws"
)

const (
	// CostWindowDays is the trailing spend window.
	CostWindowDays = 30
	// MaterialityFloor is the cost a service must exceed to count toward the total.
	MaterialityFloor = 0.01
	// CostTableSize is the number of services shown in the cost table.
	CostTableSize = 10
	// GuidanceScope is the number of top services scanned for guidance.
	GuidanceScope = 5
)

// CostSource fetches spend grouped by service.
type CostSource interface {
	CostByService(ctx context.Context, start, end time.Time) ([]awstype.ServiceCost, error)
}

type guidanceRule struct {
	// Substrings are matched case-sensitively against the service name.
	Substrings []string
	Label      string
	Text       string
}

// costGuidance is evaluated in order; the first matching rule wins for a service.
var costGuidance = []guidanceRule{
	{
		Substrings: []string{"EC2", "Elastic Compute Cloud"},
		Label:      "EC2",
		Text:       "Move to Graviton instances, rightsize, and review Auto Scaling",
	},
	{
		Substrings: []string{"RDS", "Relational Database Service"},
		Label:      "RDS",
		Text:       "Evaluate Aurora Serverless v2 and trim read replicas",
	},
	{
		Substrings: []string{"S3", "Simple Storage Service"},
		Label:      "S3",
		Text:       "Add lifecycle policies to expire or tier data automatically",
	},
	{
		Substrings: []string{"Lambda"},
		Label:      "Lambda",
		Text:       "Switch functions to arm64 and tune memory with Lambda Power Tuning",
	},
	{
		Substrings: []string{"DynamoDB"},
		Label:      "DynamoDB",
		Text:       "Compare on-demand and provisioned capacity modes",
	},
}

// GuidanceFor returns the suggestion for a service name, if any rule matches.
func GuidanceFor(service string) (Suggestion, bool) {
	for _, rule := range costGuidance {
		for _, sub := range rule.Substrings {
			if strings.Contains(service, sub) {
				return Suggestion{Service: service, Label: rule.Label, Text: rule.Text}, true
			}
		}
	}
	return Suggestion{}, false
}

// BuildCostEntries drops services at or below the materiality floor, totals the
// rest, and sorts them by cost descending. Equal costs keep their query order.
func BuildCostEntries(costs []awstype.ServiceCost) ([]ServiceCostEntry, float64) {
	var entries []ServiceCostEntry
	var total float64
	for _, c := range costs {
		if c.Amount <= MaterialityFloor {
			continue
		}
		entries = append(entries, ServiceCostEntry{Service: c.Service, Cost: c.Amount})
		total += c.Amount
	}

	sortEntries(entries)

	if total > 0 {
		for i := range entries {
			entries[i].Percent = entries[i].Cost / total * 100
		}
	}
	return entries, total
}

func sortEntries(entries []ServiceCostEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Cost > entries[j].Cost
	})
}

// Suggestions scans the top entries and returns one suggestion per matching service.
// Two services matching the same rule each get their own line.
func Suggestions(entries []ServiceCostEntry) []Suggestion {
	scope := entries
	if len(scope) > GuidanceScope {
		scope = scope[:GuidanceScope]
	}

	var out []Suggestion
	for _, e := range scope {
		if s, ok := GuidanceFor(e.Service); ok {
			out = append(out, s)
		}
	}
	return out
}

// AttributeCost queries the trailing spend window and ranks services by cost.
func AttributeCost(ctx context.Context, src CostSource, now time.Time) CostResult {
	end := now
	start := end.AddDate(0, 0, -CostWindowDays)
	result := CostResult{WindowStart: start, WindowEnd: end}

	costs, err := src.CostByService(ctx, start, end)
	if err != nil {
		slog.Debug("Cost phase degraded", "error", err)
		result.Err = newSectionError(PhaseCost, permGetCostAndUsage, err)
		return result
	}

	result.Entries, result.Total = BuildCostEntries(costs)
	result.Suggestions = Suggestions(result.Entries)
	return result
}
