package aws

import (
	"context"
	"fmt"
	"log/slog"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// EC2API is the minimal interface for EC2 instance operations.
type EC2API interface {
	DescribeInstances(ctx context.Context, input *ec2.DescribeInstancesInput, opts ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// InstanceLister lists the running EC2 instances of the configured region.
type InstanceLister struct {
	client EC2API
}

// NewInstanceLister creates a lister using the given EC2 client.
func NewInstanceLister(client EC2API) *InstanceLister {
	return &InstanceLister{client: client}
}

// ListRunning returns every instance in the running state with its type and tags.
func (l *InstanceLister) ListRunning(ctx context.Context) ([]Instance, error) {
	paginator := ec2.NewDescribeInstancesPaginator(l.client, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   awssdk.String("instance-state-name"),
				Values: []string{string(ec2types.InstanceStateNameRunning)},
			},
		},
	})

	var instances []Instance
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				// The filter is applied server-side; re-check so a stale or
				// ignored filter never lets a non-running instance through.
				if inst.State != nil && inst.State.Name != ec2types.InstanceStateNameRunning {
					continue
				}
				instances = append(instances, Instance{
					ID:   deref(inst.InstanceId),
					Type: string(inst.InstanceType),
					Tags: tagsToMap(inst.Tags),
				})
			}
		}
	}

	slog.Debug("Listed running EC2 instances", "count", len(instances))
	return instances, nil
}

func tagsToMap(tags []ec2types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key == nil {
			continue
		}
		m[*tag.Key] = deref(tag.Value)
	}
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
