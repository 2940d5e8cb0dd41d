// Package cmd implements the scheduler simulator's command-line
// interface: a Cobra root command with a single `run` subcommand
// exposing the tunables described in spec.md §6.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/SanferD/ProcessScheduleSimulation/sim"
	"github.com/SanferD/ProcessScheduleSimulation/sim/trace"
)

var (
	fileName          string
	generateProcesses int
	kernelQuantum     int
	userQuantum       int
	ageTimer          int
	ageAmount         int
	schedulerName     string
	interactive       bool
	logLevel          string
	policyConfigPath  string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "scheduler-sim",
	Short: "Discrete-time process scheduler simulator",
}

// runCmd runs a single simulation from CLI-provided configuration.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduler simulation",
	Run:   runSimulation,
}

// policyOverrides is the supplemental YAML format accepted by
// --policy-config: any subset of the quantum/age tunables, applied over
// the defaults before CLI flags that were explicitly set take effect.
type policyOverrides struct {
	KernelQuantum *int `yaml:"kernel_quantum"`
	UserQuantum   *int `yaml:"user_quantum"`
	AgeTimer      *int `yaml:"age_timer"`
	AgeAmount     *int `yaml:"age_amount"`
}

func runSimulation(cmd *cobra.Command, args []string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level %q: %v", logLevel, err)
	}
	logrus.SetLevel(level)

	cfg := sim.DefaultConfig()

	if policyConfigPath != "" {
		applyPolicyConfig(&cfg, policyConfigPath)
	}
	if cmd.Flags().Changed("kernel-quantum") {
		cfg.KernelQuantum = kernelQuantum
	}
	if cmd.Flags().Changed("user-quantum") {
		cfg.UserQuantum = userQuantum
	}
	if cmd.Flags().Changed("age-timer") {
		cfg.AgeTime = ageTimer
	}
	if cmd.Flags().Changed("age-amount") {
		cfg.AgeAmount = ageAmount
	}
	cfg.Interactive = interactive

	kind, err := sim.ParseSchedulerKind(schedulerName)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	cfg.Scheduler = kind

	workloadPath := fileName
	if cmd.Flags().Changed("generate-processes") {
		n := generateProcesses
		if n <= 0 {
			n = 10
		}
		if err := sim.GenerateWorkload(sim.GeneratorConfig{Count: n, HasIO: true, Seed: processStartSeed(), Output: "test_cases"}); err != nil {
			logrus.Fatalf("generating workload: %v", err)
		}
		workloadPath = "test_cases"
	}
	if workloadPath == "" {
		logrus.Fatalf("no workload given: pass --file-name or --generate-processes")
	}

	newQ := sim.LoadWorkload(workloadPath)

	tracePath := "output-" + strings.NewReplacer("/", "-", "\\", "-").Replace(workloadPath)
	traceFile, err := os.Create(tracePath)
	if err != nil {
		logrus.Fatalf("could not create trace file %q: %v", tracePath, err)
	}
	defer traceFile.Close()

	logrus.Debugf("config: %+v", cfg)

	s := sim.NewSimulation(cfg, newQ, trace.NewWriter(traceFile))
	stats := s.Run()

	fmt.Println()
	stats.Print(os.Stdout)
}

func applyPolicyConfig(cfg *sim.Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("could not read policy config %q: %v", path, err)
	}
	var overrides policyOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		logrus.Fatalf("could not parse policy config %q: %v", path, err)
	}
	if overrides.KernelQuantum != nil {
		cfg.KernelQuantum = *overrides.KernelQuantum
	}
	if overrides.UserQuantum != nil {
		cfg.UserQuantum = *overrides.UserQuantum
	}
	if overrides.AgeTimer != nil {
		cfg.AgeTime = *overrides.AgeTimer
	}
	if overrides.AgeAmount != nil {
		cfg.AgeAmount = *overrides.AgeAmount
	}
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := runCmd.Flags()

	flags.StringVar(&fileName, "file-name", "", "Workload file path")
	flags.IntVar(&generateProcesses, "generate-processes", 0, "Generate N random processes into test_cases and use it (N<=0 means 10)")
	flags.IntVar(&kernelQuantum, "kernel-quantum", sim.DefaultKernelQuantum, "Quantum for kernel processes")
	flags.IntVar(&userQuantum, "user-quantum", sim.DefaultUserQuantum, "Quantum for user processes")
	flags.IntVar(&ageTimer, "age-timer", sim.DefaultAgeTime, "Ticks a ready process may wait before aging")
	flags.IntVar(&ageAmount, "age-amount", sim.DefaultAgeAmount, "Priority increment per aging event")
	flags.StringVar(&schedulerName, "scheduler", "PRIORITY", "One of FIFO, SJF, PRIORITY, EDF")
	flags.BoolVar(&interactive, "interactive", false, "Enable interactive dashboard mode")
	flags.StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	flags.StringVar(&policyConfigPath, "policy-config", "", "Optional YAML file overriding quantum/age defaults")

	// Accept the original tool's underscore-spelled flags (--file_name,
	// --age_timer, ...) as aliases for the hyphenated ones above.
	flags.SetNormalizeFunc(func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.AddCommand(runCmd)
}

func processStartSeed() int64 {
	return time.Now().Unix()
}
