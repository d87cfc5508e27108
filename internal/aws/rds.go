package aws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/rds"
)

// dbStatusAvailable is the DBInstanceStatus of a running database.
const dbStatusAvailable = "available"

// RDSAPI is the minimal interface for RDS operations.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, input *rds.DescribeDBInstancesInput, opts ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// DBInstanceLister lists RDS instances of the configured region.
type DBInstanceLister struct {
	client RDSAPI
}

// NewDBInstanceLister creates a lister for RDS instances.
func NewDBInstanceLister(client RDSAPI) *DBInstanceLister {
	return &DBInstanceLister{client: client}
}

// ListAvailable returns every DB instance whose status is "available".
func (l *DBInstanceLister) ListAvailable(ctx context.Context) ([]DBInstance, error) {
	var instances []DBInstance
	paginator := rds.NewDescribeDBInstancesPaginator(l.client, &rds.DescribeDBInstancesInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe DB instances: %w", err)
		}
		for _, inst := range page.DBInstances {
			if deref(inst.DBInstanceStatus) != dbStatusAvailable {
				continue
			}
			instances = append(instances, DBInstance{
				ID:     deref(inst.DBInstanceIdentifier),
				Class:  deref(inst.DBInstanceClass),
				Engine: deref(inst.Engine),
			})
		}
	}

	slog.Debug("Listed available RDS instances", "count", len(instances))
	return instances, nil
}
