package aws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
)

// ComputeOptimizerAPI is the minimal interface for Compute Optimizer operations.
type ComputeOptimizerAPI interface {
	GetRecommendationSummaries(ctx context.Context, input *computeoptimizer.GetRecommendationSummariesInput, opts ...func(*computeoptimizer.Options)) (*computeoptimizer.GetRecommendationSummariesOutput, error)
}

// RecommendationFetcher retrieves rightsizing summaries from Compute Optimizer.
type RecommendationFetcher struct {
	client ComputeOptimizerAPI
}

// NewRecommendationFetcher creates a fetcher using the given Compute Optimizer client.
func NewRecommendationFetcher(client ComputeOptimizerAPI) *RecommendationFetcher {
	return &RecommendationFetcher{client: client}
}

// Summaries returns one summary per resource type with the raw finding counts.
// An account that has not opted in returns an OptInRequiredException; see IsOptInRequired.
func (f *RecommendationFetcher) Summaries(ctx context.Context) ([]RecommendationSummary, error) {
	input := &computeoptimizer.GetRecommendationSummariesInput{}

	var summaries []RecommendationSummary
	for {
		out, err := f.client.GetRecommendationSummaries(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("get recommendation summaries: %w", err)
		}

		for _, rs := range out.RecommendationSummaries {
			summary := RecommendationSummary{ResourceType: string(rs.RecommendationResourceType)}
			for _, s := range rs.Summaries {
				summary.Findings = append(summary.Findings, FindingCount{
					Name:  string(s.Name),
					Value: s.Value,
				})
			}
			summaries = append(summaries, summary)
		}

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		input.NextToken = out.NextToken
	}

	slog.Debug("Fetched recommendation summaries", "resource_types", len(summaries))
	return summaries, nil
}
