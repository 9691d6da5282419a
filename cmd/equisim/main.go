package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/payequity/equisim/internal/config"
	"github.com/payequity/equisim/internal/convergence"
	"github.com/payequity/equisim/internal/domain"
	"github.com/payequity/equisim/internal/forecast"
	"github.com/payequity/equisim/internal/intervention"
	"github.com/payequity/equisim/internal/output"
	"github.com/payequity/equisim/internal/policy"
	"github.com/payequity/equisim/internal/population"
	"github.com/payequity/equisim/internal/progression"
)

// simpleCLILogger implements domain.Logger using the standard log package.
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "equisim",
	Short: "Salary equity forecasting and intervention engine",
	Long:  "Forecasts salary progression and models equity interventions over a population snapshot",
}

// loadSetup reads the shared flags common to every analysis command.
func loadSetup(cmd *cobra.Command, populationFile string) ([]domain.Employee, config.Config, *forecast.Engine, error) {
	cfg := config.Default()
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			return nil, config.Config{}, nil, err
		}
		cfg = loaded
	}

	employees, err := population.Load(populationFile)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	engine := forecast.NewEngineWithConfig(cfg.ConfidenceInterval, cfg.MarketInflationRate)
	if cfg.RandomSeed != 0 {
		engine.SetRand(rand.New(rand.NewSource(cfg.RandomSeed)))
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return employees, cfg, engine, nil
}

func debugLogger(cmd *cobra.Command) domain.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return simpleCLILogger{}
	}
	return nil
}

var projectCmd = &cobra.Command{
	Use:   "project [population-file]",
	Short: "Project salary progression for one employee",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		employees, cfg, engine, err := loadSetup(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		employeeID, _ := cmd.Flags().GetInt("employee")
		years, _ := cmd.Flags().GetInt("years")
		if years == 0 {
			years = cfg.ProgressionAnalysisYears
		}
		marketAdjustments, _ := cmd.Flags().GetBool("market-adjustments")

		simulator := progression.NewSimulator(employees, engine)
		simulator.MarketAdjustmentYears = cfg.MarketAdjustmentYears
		simulator.SetLogger(debugLogger(cmd))

		var target *domain.Employee
		for i := range employees {
			if employees[i].EmployeeID == employeeID {
				target = &employees[i]
				break
			}
		}
		if target == nil {
			log.Fatalf("employee %d not found in population", employeeID)
		}

		result, err := simulator.Project(*target, years, nil, marketAdjustments)
		if err != nil {
			log.Fatal(err)
		}

		switch format, _ := cmd.Flags().GetString("format"); format {
		case output.FormatJSON:
			if err := output.WriteJSON(os.Stdout, result); err != nil {
				log.Fatal(err)
			}
		default:
			output.ProgressionReport(os.Stdout, result)
		}
	},
}

var convergeCmd = &cobra.Command{
	Use:   "converge [population-file]",
	Short: "Analyze median convergence timelines",
	Long: `Analyze convergence toward level medians.

With --employee the command models one employee's convergence timeline;
without it the command reports the below-median population.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		employees, cfg, engine, err := loadSetup(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		analyzer := convergence.NewAnalyzer(employees, engine)
		analyzer.ConvergenceThresholdYears = cfg.ConvergenceThresholdYears
		analyzer.AcceptableGapPercent = cfg.AcceptableGapPercent
		analyzer.SetLogger(debugLogger(cmd))

		format, _ := cmd.Flags().GetString("format")

		employeeID, _ := cmd.Flags().GetInt("employee")
		if employeeID == 0 {
			minGap, _ := cmd.Flags().GetFloat64("min-gap")
			analysis := analyzer.IdentifyBelowMedian(minGap, true)
			if format == output.FormatJSON {
				if err := output.WriteJSON(os.Stdout, analysis); err != nil {
					log.Fatal(err)
				}
				return
			}
			output.BelowMedianReport(os.Stdout, analysis)
			return
		}

		var target *domain.Employee
		for i := range employees {
			if employees[i].EmployeeID == employeeID {
				target = &employees[i]
				break
			}
		}
		if target == nil {
			log.Fatalf("employee %d not found in population", employeeID)
		}

		var targetRating domain.Rating
		if label, _ := cmd.Flags().GetString("target-rating"); label != "" {
			targetRating, err = domain.ParseRating(label)
			if err != nil {
				log.Fatal(err)
			}
		}

		result, err := analyzer.AnalyzeTimeline(*target, targetRating)
		if err != nil {
			log.Fatal(err)
		}
		if format == output.FormatJSON {
			if err := output.WriteJSON(os.Stdout, result); err != nil {
				log.Fatal(err)
			}
			return
		}
		output.ConvergenceReport(os.Stdout, result)
	},
}

var remediateCmd = &cobra.Command{
	Use:   "remediate [population-file]",
	Short: "Model gender pay gap remediation strategies",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		employees, cfg, _, err := loadSetup(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		simulator := intervention.NewSimulator(employees)
		simulator.MaxBudgetPercent = cfg.MaxBudgetPercent
		simulator.SetLogger(debugLogger(cmd))

		targetGap, _ := cmd.Flags().GetFloat64("target-gap")
		if !cmd.Flags().Changed("target-gap") {
			targetGap = cfg.TargetGenderGapPercent
		}
		maxYears, _ := cmd.Flags().GetInt("max-years")
		budget, _ := cmd.Flags().GetFloat64("budget")
		if budget == 0 {
			budget = cfg.InterventionBudgetConstraint
		}

		result, err := simulator.ModelGenderGapRemediation(targetGap, maxYears, budget)
		if err != nil {
			log.Fatal(err)
		}

		switch format, _ := cmd.Flags().GetString("format"); format {
		case output.FormatJSON:
			if err := output.WriteJSON(os.Stdout, result); err != nil {
				log.Fatal(err)
			}
		case output.FormatTable:
			output.StrategyTable(os.Stdout, result)
		default:
			output.RemediationReport(os.Stdout, result)
		}
	},
}

var equityCmd = &cobra.Command{
	Use:   "equity [population-file]",
	Short: "Analyze population salary equity across dimensions",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		employees, _, _, err := loadSetup(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		simulator := intervention.NewSimulator(employees)
		simulator.SetLogger(debugLogger(cmd))

		dimensions, _ := cmd.Flags().GetStringSlice("dimensions")
		if len(dimensions) == 0 {
			dimensions = nil
		}
		analysis := simulator.AnalyzeEquity(dimensions)

		switch format, _ := cmd.Flags().GetString("format"); format {
		case output.FormatJSON:
			if err := output.WriteJSON(os.Stdout, analysis); err != nil {
				log.Fatal(err)
			}
		default:
			output.EquityReport(os.Stdout, analysis)
		}
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate [population-file]",
	Short: "Allocate manager intervention budgets under policy constraints",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		employees, cfg, _, err := loadSetup(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		allocator := policy.NewAllocator(employees)
		allocator.MaxDirectReports = cfg.MaxDirectReports
		allocator.HighPerformerThreshold = cfg.HighPerformerThreshold
		// Config carries the budget as a percentage; the allocator wants a
		// payroll fraction.
		allocator.InequalityBudgetPercent = cfg.InequalityBudgetPercent / 100
		allocator.SetLogger(debugLogger(cmd))

		teams := allocator.IdentifyManagersAndTeams()
		interventions := allocator.PrioritizeInterventions(teams)
		allocations := allocator.OptimizeBudgetAllocation(interventions)
		summary := allocator.GeneratePolicySummary(teams, allocations)

		switch format, _ := cmd.Flags().GetString("format"); format {
		case output.FormatJSON:
			if err := output.WriteJSON(os.Stdout, summary); err != nil {
				log.Fatal(err)
			}
		case output.FormatTable:
			output.AllocationTable(os.Stdout, allocations)
		default:
			output.PolicyReport(os.Stdout, summary)
		}
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends [population-file]",
	Short: "Project population convergence trends",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		employees, cfg, engine, err := loadSetup(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		analyzer := convergence.NewAnalyzer(employees, engine)
		analyzer.AcceptableGapPercent = cfg.AcceptableGapPercent
		analyzer.SetLogger(debugLogger(cmd))

		years, _ := cmd.Flags().GetInt("years")
		trends := analyzer.AnalyzePopulationTrends(years)

		switch format, _ := cmd.Flags().GetString("format"); format {
		case output.FormatJSON:
			if err := output.WriteJSON(os.Stdout, trends); err != nil {
				log.Fatal(err)
			}
		default:
			output.TrendsReport(os.Stdout, trends)
		}
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "equisim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	for _, cmd := range []*cobra.Command{projectCmd, convergeCmd, remediateCmd, equityCmd, allocateCmd, trendsCmd} {
		cmd.Flags().String("config", "", "Path to YAML configuration file")
		cmd.Flags().StringP("format", "f", output.FormatText, "Output format (text, json, table)")
		cmd.Flags().Bool("debug", false, "Enable debug logging")
	}

	projectCmd.Flags().IntP("employee", "e", 0, "Employee ID to project (required)")
	projectCmd.Flags().IntP("years", "y", 0, "Projection horizon in years")
	projectCmd.Flags().Bool("market-adjustments", true, "Include market adjustment cycles")
	_ = projectCmd.MarkFlagRequired("employee")

	convergeCmd.Flags().IntP("employee", "e", 0, "Employee ID to analyze (omit for population analysis)")
	convergeCmd.Flags().Float64("min-gap", 0, "Minimum gap percent for population analysis")
	convergeCmd.Flags().String("target-rating", "", "Model a performance intervention toward this rating")

	remediateCmd.Flags().Float64("target-gap", 0, "Target gender pay gap percent")
	remediateCmd.Flags().Int("max-years", 5, "Maximum remediation timeline in years")
	remediateCmd.Flags().Float64("budget", 0, "Budget constraint as a fraction of payroll")

	equityCmd.Flags().StringSlice("dimensions", nil, "Equity dimensions (gender, level, gender_by_level, tenure)")

	trendsCmd.Flags().IntP("years", "y", 5, "Projection horizon in years")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(convergeCmd)
	rootCmd.AddCommand(remediateCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
