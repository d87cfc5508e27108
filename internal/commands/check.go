package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/computeoptimizer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/briandowns/spinner"
	"github.com/ppiankov/greenspectre/internal/analyzer"
	"github.com/ppiankov/greenspectre/internal/aws"
	"github.com/ppiankov/greenspectre/internal/config"
	"github.com/ppiankov/greenspectre/internal/report"
	"github.com/spf13/cobra"
)

var errNoRegion = errors.New("no region resolved; use --region, set region in .greenspectre.yaml, or set AWS_REGION")

var checkFlags struct {
	region     string
	skipCost   bool
	format     string
	outputFile string
	noProgress bool
	noColor    bool
}

var phaseLabels = map[analyzer.Phase]string{
	analyzer.PhaseInventory:       "Listing running EC2 instances",
	analyzer.PhaseUtilization:     "Fetching CPU utilization",
	analyzer.PhaseDatabases:       "Listing RDS instances",
	analyzer.PhaseCost:            "Querying Cost Explorer",
	analyzer.PhaseRecommendations: "Querying Compute Optimizer",
}

func init() {
	rootCmd.Flags().StringVar(&checkFlags.region, "region", "", "AWS region (default: from profile or environment)")
	rootCmd.Flags().BoolVar(&checkFlags.skipCost, "skip-cost", false, "Skip the Cost Explorer analysis")
	rootCmd.Flags().StringVar(&checkFlags.format, "format", "text", "Output format: text, json, sarif")
	rootCmd.Flags().StringVarP(&checkFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&checkFlags.noProgress, "no-progress", false, "Disable progress output")
	rootCmd.Flags().BoolVar(&checkFlags.noColor, "no-color", false, "Disable colored text output")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Apply config file defaults where flags were not explicitly set
	applyConfigDefaults(cmd.Flags().Changed)

	out, closeOut, err := openOutput(checkFlags.outputFile)
	if err != nil {
		return err
	}
	defer closeOut()

	reporter, err := selectReporter(checkFlags.format, out, disableColor(checkFlags.noColor, checkFlags.outputFile))
	if err != nil {
		return err
	}

	client, err := aws.NewClient(ctx, profile, checkFlags.region)
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}
	if client.Region() == "" {
		return enhanceError("resolve region", errNoRegion)
	}

	identity, err := aws.NewIdentityProber(sts.NewFromConfig(client.Config()), client.Region()).Probe(ctx)
	if err != nil {
		return enhanceError("verify AWS credentials", err)
	}

	progress := newProgress(!checkFlags.noProgress)
	result := analyzer.Analyze(ctx, identity, buildSources(client, cfg.Exclude), analyzer.Options{
		SkipCost: checkFlags.skipCost,
		Progress: progress.phase,
	})
	progress.stop()

	data := report.Data{
		Tool:      "greenspectre",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Target: report.Target{
			Type:    "aws-account",
			URIHash: computeTargetHash(identity.Account, identity.Region),
		},
		Config: report.ReportConfig{
			Profile:        profile,
			Region:         identity.Region,
			SkipCost:       checkFlags.skipCost,
			LookbackDays:   analyzer.LookbackDays,
			CostWindowDays: analyzer.CostWindowDays,
		},
		Result: result,
	}
	return reporter.Generate(data)
}

// buildSources wires every adapter to the one client built for this run.
func buildSources(client *aws.Client, exclude config.Exclude) analyzer.Sources {
	awsCfg := client.Config()

	var instances analyzer.InstanceSource = aws.NewInstanceLister(ec2.NewFromConfig(awsCfg))
	if !exclude.Empty() {
		instances = &excludingInstances{src: instances, exclude: exclude}
	}

	return analyzer.Sources{
		Instances:       instances,
		Databases:       aws.NewDBInstanceLister(rds.NewFromConfig(awsCfg)),
		Metrics:         aws.NewMetricsFetcher(cloudwatch.NewFromConfig(awsCfg)),
		Cost:            aws.NewCostFetcher(costexplorer.NewFromConfig(client.CostExplorerConfig())),
		Recommendations: aws.NewRecommendationFetcher(computeoptimizer.NewFromConfig(awsCfg)),
	}
}

// excludingInstances drops instances matched by the config's exclude rules.
type excludingInstances struct {
	src     analyzer.InstanceSource
	exclude config.Exclude
}

func (e *excludingInstances) ListRunning(ctx context.Context) ([]aws.Instance, error) {
	instances, err := e.src.ListRunning(ctx)
	if err != nil {
		return nil, err
	}
	kept := instances[:0]
	for _, inst := range instances {
		if e.exclude.Matches(inst.ID, inst.Tags) {
			slog.Debug("Excluding instance", "instance", inst.ID)
			continue
		}
		kept = append(kept, inst)
	}
	return kept, nil
}

func applyConfigDefaults(changed func(name string) bool) {
	if !changed("profile") && cfg.Profile != "" {
		profile = cfg.Profile
	}
	if !changed("region") && cfg.Region != "" {
		checkFlags.region = cfg.Region
	}
	if !changed("skip-cost") && cfg.SkipCost {
		checkFlags.skipCost = true
	}
	if !changed("format") && cfg.Format != "" {
		checkFlags.format = cfg.Format
	}
	if !changed("no-color") && cfg.NoColor {
		checkFlags.noColor = true
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close output file", "path", path, "error", err)
		}
	}, nil
}

// disableColor reports whether text output must be plain. Files never get ANSI codes.
func disableColor(noColor bool, outputFile string) bool {
	return noColor || outputFile != ""
}

func selectReporter(format string, w io.Writer, noColor bool) (report.Reporter, error) {
	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w, NoColor: noColor}, nil
	case "sarif":
		return &report.SARIFReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text, json, or sarif)", format)
	}
}

// progress shows a spinner on stderr naming the running phase.
type progress struct {
	sp *spinner.Spinner
}

func newProgress(enabled bool) *progress {
	if !enabled {
		return &progress{}
	}
	return &progress{sp: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))}
}

func (p *progress) phase(ph analyzer.Phase) {
	if p.sp == nil {
		return
	}
	p.sp.Suffix = fmt.Sprintf(" %s ...", phaseLabels[ph])
	if !p.sp.Active() {
		p.sp.Start()
	}
}

func (p *progress) stop() {
	if p.sp != nil {
		p.sp.Stop()
	}
}
