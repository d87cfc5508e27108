package analyzer

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

const (
	// LookbackDays is the CPU utilization window.
	LookbackDays = 7
	// LowUtilizationThreshold is the average CPU percent below which an instance is a rightsizing candidate.
	LowUtilizationThreshold = 5.0
	// ARMTargetPercent is the ARM share below which migration is suggested.
	ARMTargetPercent = 50.0
)

// MetricsSource fetches the daily average CPU series of an instance.
type MetricsSource interface {
	InstanceCPU(ctx context.Context, instanceID string, start, end time.Time) ([]float64, error)
}

// Family returns the instance family: the part of the type before the first ".".
func Family(instanceType string) string {
	family, _, _ := strings.Cut(instanceType, ".")
	return family
}

// ClassifyArchitecture applies the Graviton naming convention: a family is ARM
// when it ends with "g" or has a "g" after its first character (t4g, m7gd, c6gn).
// This is a naming heuristic and can misclassify families that break the convention.
func ClassifyArchitecture(family string) Architecture {
	if strings.HasSuffix(family, "g") {
		return ArchARM
	}
	if len(family) > 1 && strings.Contains(family[1:], "g") {
		return ArchARM
	}
	return ArchX86
}

// Summarize computes the aggregate and tier of a CPU series.
func Summarize(instanceID string, start, end time.Time, samples []float64) UtilizationSummary {
	summary := UtilizationSummary{
		InstanceID:  instanceID,
		WindowStart: start,
		WindowEnd:   end,
		Samples:     samples,
		Tier:        TierUnknown,
	}
	if len(samples) == 0 {
		return summary
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	summary.Average = sum / float64(len(samples))
	summary.Available = true
	summary.Tier = TierNormal
	if summary.Average < LowUtilizationThreshold {
		summary.Tier = TierLow
	}
	return summary
}

// ClassifyUtilization fetches the lookback CPU series of every inventoried instance,
// one at a time, and computes run totals. A failed metric query leaves that instance's
// aggregate unavailable and moves on to the next instance.
func ClassifyUtilization(ctx context.Context, inv InventoryResult, src MetricsSource, now time.Time) UtilizationResult {
	if inv.Err != nil {
		return UtilizationResult{Err: inv.Err}
	}

	end := now
	start := end.AddDate(0, 0, -LookbackDays)

	result := UtilizationResult{Instances: make([]InstanceRecord, 0, len(inv.Instances))}
	for _, inst := range inv.Instances {
		samples, err := src.InstanceCPU(ctx, inst.ID, start, end)

		var summary UtilizationSummary
		if err != nil {
			slog.Debug("CPU metrics unavailable", "instance", inst.ID, "error", err)
			summary = Summarize(inst.ID, start, end, nil)
			summary.Err = newSectionError(PhaseUtilization, permGetMetricData, err)
		} else {
			summary = Summarize(inst.ID, start, end, samples)
		}

		inst.Utilization = &summary
		result.Instances = append(result.Instances, inst)

		if inst.Architecture == ArchARM {
			result.ARMCount++
		} else {
			result.X86Count++
		}
		if inst.LowUtilization() {
			result.LowUtilization++
		}
	}

	if result.HasRatio() {
		result.ARMPercent = float64(result.ARMCount) / float64(result.ARMCount+result.X86Count) * 100
		result.SuggestARM = result.ARMPercent < ARMTargetPercent
	}
	return result
}
