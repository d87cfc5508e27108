package analyzer

import (
	"context"
	"time"

	awstype "github.com/ppiankov/greenspectre/internal/aws"
)

// Sources are the data adapters the pipeline reads from.
// Databases is optional; a nil source skips the database inventory.
type Sources struct {
	Instances       InstanceSource
	Databases       DatabaseSource
	Metrics         MetricsSource
	Cost            CostSource
	Recommendations RecommendationSource
}

// Options controls a single analysis run.
type Options struct {
	SkipCost bool
	// Now anchors the lookback windows. Zero means time.Now().UTC().
	Now time.Time
	// Progress, when set, is called before each phase starts.
	Progress func(Phase)
}

// Analyze runs every phase in order and returns their structured results.
// Phase failures are recorded in the result and never stop later phases.
func Analyze(ctx context.Context, identity awstype.Identity, src Sources, opts Options) *Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(Phase) {}
	}

	result := &Result{
		Identity:    identity,
		GeneratedAt: now,
	}

	progress(PhaseInventory)
	inventory := CollectInventory(ctx, src.Instances)

	progress(PhaseUtilization)
	result.Utilization = ClassifyUtilization(ctx, inventory, src.Metrics, now)

	if src.Databases != nil {
		progress(PhaseDatabases)
		dbs := CollectDatabases(ctx, src.Databases)
		result.Databases = &dbs
	}

	if opts.SkipCost {
		result.Cost = CostResult{Skipped: true}
	} else {
		progress(PhaseCost)
		result.Cost = AttributeCost(ctx, src.Cost, now)
	}

	progress(PhaseRecommendations)
	result.Recommendations = AggregateRecommendations(ctx, src.Recommendations)

	result.Checklist = Checklist()
	return result
}
