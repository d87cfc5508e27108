package analyzer

import (
	"context"
	"log/slog"
	"math"
	"strings"

	awstype "github.com/ppiankov/greenspectre/internal/aws"
)

// NotEnabledNotice is reported when Compute Optimizer has no summaries to offer.
const NotEnabledNotice = "Compute Optimizer is not enabled or does not have enough data yet."

// OptInInstructions tells the operator how to enable Compute Optimizer.
const OptInInstructions = "To opt in: AWS Console > Compute Optimizer > Get started > Opt in"

// RecommendationSource fetches Compute Optimizer summaries.
type RecommendationSource interface {
	Summaries(ctx context.Context) ([]awstype.RecommendationSummary, error)
}

// Keys are finding names upper-cased with "_", "-" and spaces removed, so
// OVER_PROVISIONED and Overprovisioned land on the same category.
var findingCategories = map[string]FindingCategory{
	"OVERPROVISIONED":  CategoryOverProvisioned,
	"UNDERPROVISIONED": CategoryUnderProvisioned,
	"OPTIMIZED":        CategoryOptimized,
	"NOTOPTIMIZED":     CategoryNotOptimized,
}

var findingLabels = map[FindingCategory]string{
	CategoryOverProvisioned:  "Over-provisioned (can be downsized)",
	CategoryUnderProvisioned: "Under-provisioned (needs more capacity)",
	CategoryOptimized:        "Optimized",
	CategoryNotOptimized:     "Not optimized",
}

var findingNameReplacer = strings.NewReplacer("_", "", "-", "", " ", "")

// CategoryOf maps a raw finding name to its category.
func CategoryOf(name string) FindingCategory {
	key := strings.ToUpper(findingNameReplacer.Replace(name))
	if c, ok := findingCategories[key]; ok {
		return c
	}
	return CategoryOther
}

// FindingLabel returns the display label of a finding name. Unrecognized names
// are returned verbatim.
func FindingLabel(name string) string {
	if label, ok := findingLabels[CategoryOf(name)]; ok {
		return label
	}
	return name
}

// AggregateRecommendations tallies Compute Optimizer findings per resource type.
// Zero counts are dropped. An account that has not opted in, or has no summaries
// yet, yields NotEnabled rather than an error.
func AggregateRecommendations(ctx context.Context, src RecommendationSource) RecommendationResult {
	raw, err := src.Summaries(ctx)
	if err != nil {
		if awstype.IsOptInRequired(err) {
			slog.Debug("Compute Optimizer not opted in", "error", err)
			return RecommendationResult{NotEnabled: true}
		}
		slog.Debug("Recommendation phase degraded", "error", err)
		return RecommendationResult{Err: newSectionError(PhaseRecommendations, permGetRecommendations, err)}
	}
	if len(raw) == 0 {
		return RecommendationResult{NotEnabled: true}
	}

	result := RecommendationResult{Summaries: make([]RecommendationSummary, 0, len(raw))}
	for _, rs := range raw {
		summary := RecommendationSummary{ResourceType: rs.ResourceType}
		if summary.ResourceType == "" {
			summary.ResourceType = "Unknown"
		}
		for _, f := range rs.Findings {
			count := int(math.Round(f.Value))
			if count <= 0 {
				continue
			}
			summary.Findings = append(summary.Findings, FindingCount{
				Category: CategoryOf(f.Name),
				Name:     f.Name,
				Label:    FindingLabel(f.Name),
				Count:    count,
			})
		}
		result.Summaries = append(result.Summaries, summary)
	}
	return result
}
