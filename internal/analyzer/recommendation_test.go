package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	awstype "github.com/ppiankov/greenspectre/internal/aws"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		want FindingCategory
	}{
		{"Overprovisioned", CategoryOverProvisioned},
		{"OVER_PROVISIONED", CategoryOverProvisioned},
		{"Underprovisioned", CategoryUnderProvisioned},
		{"UNDER_PROVISIONED", CategoryUnderProvisioned},
		{"Optimized", CategoryOptimized},
		{"NotOptimized", CategoryNotOptimized},
		{"NOT_OPTIMIZED", CategoryNotOptimized},
		{"Unavailable", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.name); got != tt.want {
			t.Errorf("CategoryOf(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestFindingLabel_UnknownIsVerbatim(t *testing.T) {
	if got := FindingLabel("InsufficientData"); got != "InsufficientData" {
		t.Fatalf("expected verbatim label, got %q", got)
	}
	if got := FindingLabel("Overprovisioned"); got != "Over-provisioned (can be downsized)" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestAggregateRecommendations(t *testing.T) {
	src := staticRecommendations(
		awstype.RecommendationSummary{
			ResourceType: "Ec2Instance",
			Findings: []awstype.FindingCount{
				{Name: "Overprovisioned", Value: 3},
				{Name: "Underprovisioned", Value: 0},
				{Name: "Optimized", Value: 12},
				{Name: "BrandNewFinding", Value: 1},
			},
		},
		awstype.RecommendationSummary{
			ResourceType: "LambdaFunction",
			Findings:     []awstype.FindingCount{{Name: "NotOptimized", Value: 0}},
		},
	)

	result := AggregateRecommendations(context.Background(), src)

	if result.NotEnabled || result.Err != nil {
		t.Fatalf("unexpected state %+v", result)
	}
	if len(result.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(result.Summaries))
	}

	ec2 := result.Summaries[0]
	if len(ec2.Findings) != 3 {
		t.Fatalf("expected zero counts suppressed, got %+v", ec2.Findings)
	}
	unknown := ec2.Findings[2]
	if unknown.Category != CategoryOther || unknown.Label != "BrandNewFinding" || unknown.Count != 1 {
		t.Fatalf("expected unknown finding kept verbatim, got %+v", unknown)
	}
	if ec2.Counts()[CategoryOptimized] != 12 {
		t.Fatalf("expected 12 optimized, got %v", ec2.Counts())
	}
	if len(result.Summaries[1].Findings) != 0 {
		t.Fatalf("expected no findings for all-zero summary, got %+v", result.Summaries[1].Findings)
	}
}

func TestAggregateRecommendations_ScenarioC(t *testing.T) {
	src := &fakeRecommendations{summariesFn: func(context.Context) ([]awstype.RecommendationSummary, error) {
		return nil, fmt.Errorf("get recommendation summaries: %w",
			&smithy.GenericAPIError{Code: "OptInRequiredException", Message: "The account is not opted in"})
	}}

	result := AggregateRecommendations(context.Background(), src)

	if !result.NotEnabled {
		t.Fatal("expected not-enabled result")
	}
	if result.Err != nil {
		t.Fatalf("opt-in is not an error, got %+v", result.Err)
	}
}

func TestAggregateRecommendations_EmptyIsNotEnabled(t *testing.T) {
	result := AggregateRecommendations(context.Background(), staticRecommendations())

	if !result.NotEnabled {
		t.Fatal("expected an empty summary list to read as not enabled")
	}
}

func TestAggregateRecommendations_Failure(t *testing.T) {
	src := &fakeRecommendations{summariesFn: func(context.Context) ([]awstype.RecommendationSummary, error) {
		return nil, errors.New("service unavailable")
	}}

	result := AggregateRecommendations(context.Background(), src)

	if result.NotEnabled {
		t.Fatal("a generic failure is not an opt-in problem")
	}
	if result.Err == nil || result.Err.Kind != ErrorFailure {
		t.Fatalf("expected failure, got %+v", result.Err)
	}
	if result.Err.Permission != "compute-optimizer:GetRecommendationSummaries" {
		t.Fatalf("unexpected permission %s", result.Err.Permission)
	}
}
