package aws

// Identity describes the caller resolved by the session probe.
type Identity struct {
	Account string `json:"account"`
	ARN     string `json:"arn"`
	Region  string `json:"region"`
}

// Instance is a running EC2 instance as returned by the inventory query.
type Instance struct {
	ID   string            `json:"id"`
	Type string            `json:"type"`
	Tags map[string]string `json:"tags,omitempty"`
}

// DBInstance is an available RDS DB instance.
type DBInstance struct {
	ID     string `json:"id"`
	Class  string `json:"class"`
	Engine string `json:"engine"`
}

// ServiceCost is the unblended cost of one service over the queried window.
type ServiceCost struct {
	Service string  `json:"service"`
	Amount  float64 `json:"amount"`
}

// FindingCount is one finding category and its resource count, as reported by Compute Optimizer.
type FindingCount struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RecommendationSummary groups finding counts for a single resource type.
type RecommendationSummary struct {
	ResourceType string         `json:"resource_type"`
	Findings     []FindingCount `json:"findings"`
}
