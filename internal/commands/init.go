package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample .greenspectre.yaml config file and an IAM policy JSON file granting the read-only calls the check needs.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(cmd *cobra.Command, _ []string) error {
	configPath := ".greenspectre.yaml"
	policyPath := "greenspectre-policy.json"
	out := cmd.OutOrStdout()

	wrote := 0
	for _, f := range []struct{ path, content string }{
		{configPath, sampleConfig},
		{policyPath, sampleIAMPolicy},
	} {
		created, err := writeIfNotExists(out, f.path, f.content, initFlags.force)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(out, "Created %s\n", f.path)
			wrote++
		}
	}

	if wrote > 0 {
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Edit .greenspectre.yaml to set your profile and region")
		fmt.Fprintln(out, "  2. Apply greenspectre-policy.json to your AWS IAM role/user")
		fmt.Fprintln(out, "  3. Run: greenspectre")
	}
	return nil
}

func writeIfNotExists(out io.Writer, path, content string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "Skipping %s (already exists, use --force to overwrite)\n", path)
			return false, nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

const sampleConfig = `# greenspectre configuration
# See: https://github.com/ppiankov/greenspectre

# AWS profile (or set AWS_PROFILE env var)
# profile: default

# Region to check (default: from profile or AWS_REGION)
# region: us-east-1

# Skip the Cost Explorer section (avoids the per-request charge)
skip_cost: false

# Output format: text, json, or sarif
format: text

# Disable colored text output
# no_color: true

# Instances to leave out of the utilization section
# exclude:
#   instance_ids:
#     - i-0abc123
#   tags:
#     - "Environment=sandbox"
#     - "greenspectre:ignore"
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "GreenSpectreReadOnly",
      "Effect": "Allow",
      "Action": [
        "ec2:DescribeInstances",
        "cloudwatch:GetMetricData",
        "rds:DescribeDBInstances",
        "ce:GetCostAndUsage",
        "compute-optimizer:GetRecommendationSummaries",
        "sts:GetCallerIdentity"
      ],
      "Resource": "*"
    }
  ]
}
`
