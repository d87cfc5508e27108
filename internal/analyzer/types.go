package analyzer

import (
	"time"

	awstype "github.com/ppiankov/greenspectre/internal/aws"
)

// Phase names one stage of the analysis pipeline.
type Phase string

const (
	PhaseInventory       Phase = "inventory"
	PhaseUtilization     Phase = "utilization"
	PhaseDatabases       Phase = "databases"
	PhaseCost            Phase = "cost"
	PhaseRecommendations Phase = "recommendations"
)

// Architecture is the CPU architecture class derived from an instance family.
type Architecture string

const (
	ArchARM Architecture = "arm"
	ArchX86 Architecture = "x86"
)

// Label returns the display name of the architecture.
func (a Architecture) Label() string {
	if a == ArchARM {
		return "ARM (Graviton)"
	}
	return "x86"
}

// UtilizationTier buckets an instance by its average CPU utilization.
type UtilizationTier string

const (
	TierLow     UtilizationTier = "low"
	TierNormal  UtilizationTier = "normal"
	TierUnknown UtilizationTier = "unknown"
)

// UtilizationSummary is the lookback CPU series of one instance and its aggregate.
type UtilizationSummary struct {
	InstanceID  string          `json:"instance_id"`
	WindowStart time.Time       `json:"window_start"`
	WindowEnd   time.Time       `json:"window_end"`
	Samples     []float64       `json:"samples"`
	Average     float64         `json:"average"`
	Available   bool            `json:"available"`
	Tier        UtilizationTier `json:"tier"`
	Err         *SectionError   `json:"error,omitempty"`
}

// InstanceRecord is one running EC2 instance with its derived attributes.
type InstanceRecord struct {
	ID           string              `json:"id"`
	Type         string              `json:"type"`
	Family       string              `json:"family"`
	Architecture Architecture        `json:"architecture"`
	Name         string              `json:"name,omitempty"`
	Tags         map[string]string   `json:"tags,omitempty"`
	Utilization  *UtilizationSummary `json:"utilization,omitempty"`
}

// LowUtilization reports whether the instance is a rightsizing candidate.
func (r InstanceRecord) LowUtilization() bool {
	return r.Utilization != nil && r.Utilization.Tier == TierLow
}

// InventoryResult is the outcome of the inventory phase.
type InventoryResult struct {
	Instances []InstanceRecord `json:"instances"`
	Err       *SectionError    `json:"error,omitempty"`
}

// Empty reports a successful query that found no running instances.
func (r InventoryResult) Empty() bool {
	return r.Err == nil && len(r.Instances) == 0
}

// UtilizationResult is the outcome of the utilization phase, including run totals.
type UtilizationResult struct {
	Instances      []InstanceRecord `json:"instances"`
	ARMCount       int              `json:"arm_count"`
	X86Count       int              `json:"x86_count"`
	ARMPercent     float64          `json:"arm_percent"`
	LowUtilization int              `json:"low_utilization_count"`
	SuggestARM     bool             `json:"suggest_arm_migration"`
	Err            *SectionError    `json:"error,omitempty"`
}

// Empty reports that the inventory succeeded but held no running instances.
func (r UtilizationResult) Empty() bool {
	return r.Err == nil && len(r.Instances) == 0
}

// HasRatio reports whether ARMPercent is meaningful.
func (r UtilizationResult) HasRatio() bool {
	return r.ARMCount+r.X86Count > 0
}

// DatabaseRecord is one available RDS instance with its derived architecture.
type DatabaseRecord struct {
	ID           string       `json:"id"`
	Class        string       `json:"class"`
	Engine       string       `json:"engine"`
	Family       string       `json:"family"`
	Architecture Architecture `json:"architecture"`
}

// DatabaseResult is the outcome of the database inventory phase.
type DatabaseResult struct {
	Databases []DatabaseRecord `json:"databases"`
	ARMCount  int              `json:"arm_count"`
	X86Count  int              `json:"x86_count"`
	Err       *SectionError    `json:"error,omitempty"`
}

// Empty reports a successful query that found no available databases.
func (r DatabaseResult) Empty() bool {
	return r.Err == nil && len(r.Databases) == 0
}

// ServiceCostEntry is the spend of one service over the cost window.
type ServiceCostEntry struct {
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
	Percent float64 `json:"percent"`
}

// Suggestion is canned optimization guidance matched to a service.
type Suggestion struct {
	Service string `json:"service"`
	Label   string `json:"label"`
	Text    string `json:"text"`
}

// CostResult is the outcome of the cost phase.
type CostResult struct {
	Skipped     bool               `json:"skipped"`
	WindowStart time.Time          `json:"window_start"`
	WindowEnd   time.Time          `json:"window_end"`
	Total       float64            `json:"total"`
	Entries     []ServiceCostEntry `json:"entries"`
	Suggestions []Suggestion       `json:"suggestions,omitempty"`
	Err         *SectionError      `json:"error,omitempty"`
}

// Empty reports a successful query where no service exceeded the materiality floor.
func (r CostResult) Empty() bool {
	return !r.Skipped && r.Err == nil && len(r.Entries) == 0
}

// Top returns the entries shown in the cost table.
func (r CostResult) Top() []ServiceCostEntry {
	if len(r.Entries) <= CostTableSize {
		return r.Entries
	}
	return r.Entries[:CostTableSize]
}

// FindingCategory is the normalized Compute Optimizer finding class.
type FindingCategory string

const (
	CategoryOverProvisioned  FindingCategory = "over-provisioned"
	CategoryUnderProvisioned FindingCategory = "under-provisioned"
	CategoryOptimized        FindingCategory = "optimized"
	CategoryNotOptimized     FindingCategory = "not-optimized"
	CategoryOther            FindingCategory = "other"
)

// FindingCount is the number of resources of one finding category.
type FindingCount struct {
	Category FindingCategory `json:"category"`
	Name     string          `json:"name"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
}

// RecommendationSummary tallies findings for one resource type.
type RecommendationSummary struct {
	ResourceType string         `json:"resource_type"`
	Findings     []FindingCount `json:"findings"`
}

// Counts returns the count per finding category.
func (s RecommendationSummary) Counts() map[FindingCategory]int {
	counts := make(map[FindingCategory]int, len(s.Findings))
	for _, f := range s.Findings {
		counts[f.Category] += f.Count
	}
	return counts
}

// RecommendationResult is the outcome of the recommendation phase.
type RecommendationResult struct {
	NotEnabled bool                    `json:"not_enabled"`
	Summaries  []RecommendationSummary `json:"summaries"`
	Err        *SectionError           `json:"error,omitempty"`
}

// ChecklistCategory is a titled group of improvement prompts.
type ChecklistCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Result is the read-only snapshot of one analysis run.
type Result struct {
	Identity        awstype.Identity     `json:"identity"`
	GeneratedAt     time.Time            `json:"generated_at"`
	Utilization     UtilizationResult    `json:"utilization"`
	Databases       *DatabaseResult      `json:"databases,omitempty"`
	Cost            CostResult           `json:"cost"`
	Recommendations RecommendationResult `json:"recommendations"`
	Checklist       []ChecklistCategory  `json:"checklist"`
}
