package aws

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	// dailyPeriodSeconds is the aggregation period for utilization series (1 day).
	dailyPeriodSeconds = 86400
	// seriesQueryID is the query identifier of the single series requested per call.
	seriesQueryID = "m0"
)

// CloudWatchAPI is the minimal interface for CloudWatch operations needed by the metrics fetcher.
type CloudWatchAPI interface {
	GetMetricData(ctx context.Context, input *cloudwatch.GetMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricDataOutput, error)
}

// MetricsFetcher retrieves daily CloudWatch series, one resource per call.
type MetricsFetcher struct {
	client CloudWatchAPI
}

// NewMetricsFetcher creates a fetcher using the given CloudWatch client.
func NewMetricsFetcher(client CloudWatchAPI) *MetricsFetcher {
	return &MetricsFetcher{client: client}
}

// InstanceCPU returns the daily average CPUUtilization of an EC2 instance between start and end.
func (f *MetricsFetcher) InstanceCPU(ctx context.Context, instanceID string, start, end time.Time) ([]float64, error) {
	return f.DailyAverages(ctx, "AWS/EC2", "CPUUtilization", "InstanceId", instanceID, start, end)
}

// DailyAverages returns the daily Average statistic of a metric for one resource,
// ordered oldest first. Days without datapoints are absent from the result.
func (f *MetricsFetcher) DailyAverages(ctx context.Context, namespace, metricName, dimensionName, id string, start, end time.Time) ([]float64, error) {
	slog.Debug("Fetching CloudWatch series", "metric", metricName, "resource", id, "start", start, "end", end)

	input := &cloudwatch.GetMetricDataInput{
		MetricDataQueries: []cwtypes.MetricDataQuery{
			{
				Id: awssdk.String(seriesQueryID),
				MetricStat: &cwtypes.MetricStat{
					Metric: &cwtypes.Metric{
						Namespace:  awssdk.String(namespace),
						MetricName: awssdk.String(metricName),
						Dimensions: []cwtypes.Dimension{
							{
								Name:  awssdk.String(dimensionName),
								Value: awssdk.String(id),
							},
						},
					},
					Period: awssdk.Int32(dailyPeriodSeconds),
					Stat:   awssdk.String("Average"),
				},
			},
		},
		StartTime: awssdk.Time(start),
		EndTime:   awssdk.Time(end),
		ScanBy:    cwtypes.ScanByTimestampAscending,
	}

	var values []float64
	for {
		out, err := f.client.GetMetricData(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("get metric data (%s/%s %s): %w", namespace, metricName, id, err)
		}

		for _, result := range out.MetricDataResults {
			if result.Id == nil || *result.Id != seriesQueryID {
				continue
			}
			values = append(values, result.Values...)
		}

		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		input.NextToken = out.NextToken
	}

	return values, nil
}
