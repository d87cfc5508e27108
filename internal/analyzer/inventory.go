package analyzer

import (
	"context"
	"log/slog"
	"strings"

	awstype "github.com/ppiankov/greenspectre/internal/aws"
)

// IAM actions named in permission notices.
const (
	permDescribeInstances   = "ec2:DescribeInstances"
	permDescribeDBInstances = "rds:DescribeDBInstances"
	permGetMetricData       = "cloudwatch:GetMetricData"
	permGetCostAndUsage     = "ce:GetCostAndUsage"
	permGetRecommendations  = "compute-optimizer:GetRecommendationSummaries"
)

// InstanceSource lists running EC2 instances.
type InstanceSource interface {
	ListRunning(ctx context.Context) ([]awstype.Instance, error)
}

// DatabaseSource lists available RDS instances.
type DatabaseSource interface {
	ListAvailable(ctx context.Context) ([]awstype.DBInstance, error)
}

// CollectInventory lists the running instances and derives family and architecture.
func CollectInventory(ctx context.Context, src InstanceSource) InventoryResult {
	instances, err := src.ListRunning(ctx)
	if err != nil {
		slog.Debug("Inventory phase degraded", "error", err)
		return InventoryResult{Err: newSectionError(PhaseInventory, permDescribeInstances, err)}
	}

	records := make([]InstanceRecord, 0, len(instances))
	for _, inst := range instances {
		records = append(records, newInstanceRecord(inst))
	}
	return InventoryResult{Instances: records}
}

// CollectDatabases lists the available RDS instances and classifies their architecture.
func CollectDatabases(ctx context.Context, src DatabaseSource) DatabaseResult {
	dbs, err := src.ListAvailable(ctx)
	if err != nil {
		slog.Debug("Database phase degraded", "error", err)
		return DatabaseResult{Err: newSectionError(PhaseDatabases, permDescribeDBInstances, err)}
	}

	result := DatabaseResult{Databases: make([]DatabaseRecord, 0, len(dbs))}
	for _, db := range dbs {
		family := Family(strings.TrimPrefix(db.Class, "db."))
		arch := ClassifyArchitecture(family)
		if arch == ArchARM {
			result.ARMCount++
		} else {
			result.X86Count++
		}
		result.Databases = append(result.Databases, DatabaseRecord{
			ID:           db.ID,
			Class:        db.Class,
			Engine:       db.Engine,
			Family:       family,
			Architecture: arch,
		})
	}
	return result
}

func newInstanceRecord(inst awstype.Instance) InstanceRecord {
	family := Family(inst.Type)
	return InstanceRecord{
		ID:           inst.ID,
		Type:         inst.Type,
		Family:       family,
		Architecture: ClassifyArchitecture(family),
		Name:         inst.Tags["Name"],
		Tags:         inst.Tags,
	}
}
