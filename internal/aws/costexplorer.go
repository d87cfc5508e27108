package aws

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
)

const (
	costMetric = "UnblendedCost"
	dateLayout = "2006-01-02"
)

// CostExplorerAPI is the minimal interface for Cost Explorer operations.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, input *costexplorer.GetCostAndUsageInput, opts ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

// CostFetcher retrieves spend grouped by service.
type CostFetcher struct {
	client CostExplorerAPI
}

// NewCostFetcher creates a fetcher using the given Cost Explorer client.
// The client must be built from Client.CostExplorerConfig.
func NewCostFetcher(client CostExplorerAPI) *CostFetcher {
	return &CostFetcher{client: client}
}

// CostByService returns the unblended cost of every service between start (inclusive)
// and end (exclusive) at monthly granularity. When the window spans more than one
// calendar month the per-bucket amounts are summed per service. Services are returned
// in the order Cost Explorer first reported them.
func (f *CostFetcher) CostByService(ctx context.Context, start, end time.Time) ([]ServiceCost, error) {
	slog.Debug("Fetching cost by service", "start", start.Format(dateLayout), "end", end.Format(dateLayout))

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: awssdk.String(start.Format(dateLayout)),
			End:   awssdk.String(end.Format(dateLayout)),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []cetypes.GroupDefinition{
			{Type: cetypes.GroupDefinitionTypeDimension, Key: awssdk.String("SERVICE")},
		},
	}

	var costs []ServiceCost
	index := make(map[string]int)

	for {
		out, err := f.client.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("get cost and usage: %w", err)
		}

		for _, bucket := range out.ResultsByTime {
			for _, group := range bucket.Groups {
				if len(group.Keys) == 0 {
					continue
				}
				metric, ok := group.Metrics[costMetric]
				if !ok || metric.Amount == nil {
					continue
				}
				amount, err := strconv.ParseFloat(*metric.Amount, 64)
				if err != nil {
					return nil, fmt.Errorf("parse cost amount %q for %s: %w", *metric.Amount, group.Keys[0], err)
				}

				service := group.Keys[0]
				if i, seen := index[service]; seen {
					costs[i].Amount += amount
					continue
				}
				index[service] = len(costs)
				costs = append(costs, ServiceCost{Service: service, Amount: amount})
			}
		}

		if out.NextPageToken == nil || *out.NextPageToken == "" {
			break
		}
		input.NextPageToken = out.NextPageToken
	}

	slog.Debug("Fetched cost by service", "services", len(costs))
	return costs, nil
}
