package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/playout-sim/playout-sim/sim"
)

var (
	scenarioPath string  // Path to the scenario YAML file
	logLevel     string  // Log verbosity level
	seed         int64   // Master seed override (-1 = use scenario value)
	numCases     int     // Number of cases override (0 = use scenario value)
	arrivalRatio float64 // Case arrival ratio override (< 0 = use scenario value)
	startTime    float64 // Virtual start time override (< 0 = use scenario value)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "playout",
	Short: "Stochastic playout engine for Petri-net process models",
}

// runCmd executes one playout using the scenario file plus CLI overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a Monte Carlo playout",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if scenarioPath == "" {
			logrus.Fatalf("Scenario file not provided. Exiting playout.")
		}
		scenario, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}
		net, initial, final, smap, config, err := scenario.Build()
		if err != nil {
			logrus.Fatalf("Invalid scenario %q: %v", scenario.Name, err)
		}

		// CLI flags win over scenario values where both are given.
		if seed >= 0 {
			config.Seed = seed
		}
		if numCases > 0 {
			config.NumCases = numCases
		}
		if arrivalRatio >= 0 {
			config.CaseArrivalRatio = arrivalRatio
		}
		if startTime >= 0 {
			config.StartTime = startTime
		}

		simulator, err := sim.NewSimulator(net, initial, final, smap, config)
		if err != nil {
			logrus.Fatalf("Unable to build simulator: %v", err)
		}
		result, err := simulator.Run()
		if err != nil {
			logrus.Fatalf("Playout failed: %v", err)
		}

		sim.Summarize(result).Print(os.Stdout)
		logrus.Infof("Run %s complete.", result.RunID)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the scenario YAML file")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Int64Var(&seed, "seed", -1, "Master seed override")
	runCmd.Flags().IntVar(&numCases, "cases", 0, "Number of cases override")
	runCmd.Flags().Float64Var(&arrivalRatio, "case-arrival-ratio", -1, "Mean inter-case arrival time override")
	runCmd.Flags().Float64Var(&startTime, "start-time", -1, "Virtual start time override")

	rootCmd.AddCommand(runCmd)
}
