package analyzer

// CarbonFootprintConsole is where the Customer Carbon Footprint Tool lives.
const CarbonFootprintConsole = "https://console.aws.amazon.com/billing/home#/carbon-footprint"

var checklist = []ChecklistCategory{
	{
		Category: "Compute",
		Items: []string{
			"[ ] EC2 instances moved to Graviton (ARM) where the workload allows",
			"[ ] Low-utilization instances rightsized",
			"[ ] Auto Scaling follows demand instead of peak capacity",
			"[ ] Dev/test environments stopped at night and on weekends",
			"[ ] Workloads that could run serverless (Lambda, Fargate) identified",
		},
	},
	{
		Category: "Storage",
		Items: []string{
			"[ ] S3 lifecycle policies move old data to colder storage classes",
			"[ ] Unattached EBS volumes and stale snapshots cleaned up",
			"[ ] Unnecessary data replication reduced",
		},
	},
	{
		Category: "Database",
		Items: []string{
			"[ ] DynamoDB uses on-demand mode for spiky traffic",
			"[ ] RDS workloads evaluated for Aurora Serverless v2",
			"[ ] Read replicas limited to what is actually used",
		},
	},
	{
		Category: "Network",
		Items: []string{
			"[ ] CloudFront offloads traffic from origin servers",
			"[ ] Data transfer minimized with compression and caching",
			"[ ] Idle NAT gateways and load balancers removed",
		},
	},
	{
		Category: "Monitoring",
		Items: []string{
			"[ ] Customer Carbon Footprint Tool reviewed regularly",
			"[ ] Compute Optimizer enabled and its recommendations reviewed",
			"[ ] Trusted Advisor cost optimization checks reviewed regularly",
		},
	},
}

// Checklist returns the static improvement prompts grouped by category.
func Checklist() []ChecklistCategory {
	out := make([]ChecklistCategory, len(checklist))
	for i, c := range checklist {
		out[i] = ChecklistCategory{
			Category: c.Category,
			Items:    append([]string(nil), c.Items...),
		}
	}
	return out
}
