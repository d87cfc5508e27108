package commands

import (
	"log/slog"

	"github.com/ppiankov/greenspectre/internal/config"
	"github.com/ppiankov/greenspectre/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	profile string
	version string
	commit  string
	date    string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "greenspectre",
	Short: "greenspectre — AWS sustainability and efficiency check",
	Long: `greenspectre reviews one AWS account and region for energy and cost efficiency.
It reports the CPU utilization and architecture (Graviton vs x86) of running EC2
instances, the last 30 days of spend by service, Compute Optimizer rightsizing
findings, and a checklist of sustainability improvements.

Every section degrades independently: a missing permission or a disabled feature
is reported inline and the rest of the report is still produced.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
		} else {
			cfg = loaded
		}
	},
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS profile name")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
