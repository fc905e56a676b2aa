package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags for the matching run
	logLevel       string        // Log verbosity level
	configPath     string        // Optional YAML run config
	projectsPath   string        // Project records file
	applicantsPath string        // Applicant records file
	maxIterations  int           // Iteration budget (safety bound)
	snapshotEvery  int           // Snapshot cadence in iterations
	timeout        time.Duration // Wall-clock bound on the run
	traceLevel     string        // Decision trace verbosity

	// CLI flags for outputs
	matrixOut    string // Assignment matrix CSV
	ranksOut     string // Per-applicant rank CSV
	reportOut    string // YAML report
	snapshotsOut string // YAML snapshot stream
	metricsOut   string // Prometheus text file
	locale       string // Number formatting locale for the summary

	strict bool // validate: fail on any warning
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "projmatch",
	Short: "Score-based stable assignment of applicants to capacity-limited projects",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd executes the matching using parameters from the config file, the
// environment and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching engine and write the final assignment",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}

		startTime := time.Now()
		res, err := runMatching(cmd.Context(), cfg, cmd.OutOrStdout())
		if err != nil {
			logrus.Fatalf("Matching failed: %v", err)
		}
		logrus.Infof("Matching complete in %s.", time.Since(startTime))
		if res.Canceled {
			os.Exit(2)
		}
	},
}

// validateCmd only loads the record files and reports diagnostics
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse the record files and list malformed lines and unknown references",
	Run: func(cmd *cobra.Command, args []string) {
		load, err := validateInputs(applicantsPath, projectsPath, cmd.OutOrStdout())
		if err != nil {
			logrus.Fatalf("Validation failed: %v", err)
		}
		if strict && len(load.Warnings) > 0 {
			os.Exit(1)
		}
	},
}

// resolveRunConfig layers defaults, the YAML file, the environment and the
// flags the user explicitly set.
func resolveRunConfig(cmd *cobra.Command) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if configPath != "" {
		if err := LoadRunConfig(configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("projects") {
		cfg.ProjectsPath = projectsPath
	}
	if flags.Changed("applicants") {
		cfg.ApplicantsPath = applicantsPath
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations = maxIterations
	}
	if flags.Changed("snapshot-every") {
		cfg.SnapshotEvery = snapshotEvery
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("trace") {
		cfg.Trace = traceLevel
	}
	if flags.Changed("out") {
		cfg.MatrixOut = matrixOut
	}
	if flags.Changed("ranks-out") {
		cfg.RanksOut = ranksOut
	}
	if flags.Changed("report-out") {
		cfg.ReportOut = reportOut
	}
	if flags.Changed("snapshots") {
		cfg.SnapshotsOut = snapshotsOut
	}
	if flags.Changed("metrics-out") {
		cfg.MetricsOut = metricsOut
	}
	if flags.Changed("locale") {
		cfg.Locale = locale
	}
	return cfg, cfg.Validate()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultRunConfig()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&projectsPath, "projects", defaults.ProjectsPath, "Project records file: one (<id>, <capacity>, <min-score>) per line")
	rootCmd.PersistentFlags().StringVar(&applicantsPath, "applicants", defaults.ApplicantsPath, "Applicant records file: one (<id>):(<project>, ...) (<score>) per line")

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run configuration file")
	runCmd.Flags().IntVar(&maxIterations, "iterations", defaults.MaxIterations, "Iteration budget (safety bound, not the termination criterion)")
	runCmd.Flags().IntVar(&snapshotEvery, "snapshot-every", defaults.SnapshotEvery, "Emit an assignment snapshot every N iterations (0 = final only)")
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the run after this duration and report the partial assignment (0 = none)")
	runCmd.Flags().StringVar(&traceLevel, "trace", defaults.Trace, "Decision trace level (none, decisions)")

	runCmd.Flags().StringVar(&matrixOut, "out", defaults.MatrixOut, "Assignment matrix CSV output (empty to skip)")
	runCmd.Flags().StringVar(&ranksOut, "ranks-out", "", "Per-applicant preference rank CSV output")
	runCmd.Flags().StringVar(&reportOut, "report-out", "", "YAML report with summary, rank index and per-project index")
	runCmd.Flags().StringVar(&snapshotsOut, "snapshots", "", "YAML stream of intermediate assignment snapshots")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Prometheus text-format metrics output")
	runCmd.Flags().StringVar(&locale, "locale", defaults.Locale, "BCP 47 locale for number formatting in the summary")

	validateCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any load warning was reported")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
