// Package cli provides the command-line interface for the bargainer client.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"bargainer/config"
	"bargainer/internal/decision"
	"bargainer/internal/display"
	"bargainer/internal/econ"
)

// activeManager is set when the session config comes from a managed config
// file; harness resets persist parameter changes through it.
var activeManager *config.Manager

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bargainer",
		Short: "Bargainer - bilateral price negotiation client",
		Long: `Bargainer is the participant-side client for a bilateral price negotiation.
A supplier and a buyer exchange chat messages and price/quantity proposals over
a live channel until one side accepts; the client enforces turn-taking, keeps
both standing proposals, and can evaluate the profit consequences of a deal
before you commit to it.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				manager, err := config.NewManager(
					config.WithConfigPath(path),
					config.WithInitialConfig(cfg),
				)
				if err != nil {
					return fmt.Errorf("load config file: %w", err)
				}
				activeManager = manager
				*cfg = manager.Get()
			}
			applyFlags(cmd, cfg)
			level := slog.LevelWarn
			if cfg.Debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: join a negotiation.
			return runNegotiation(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(newNegotiateCmd(cfg))
	rootCmd.AddCommand(newEvaluateCmd(cfg))
	rootCmd.AddCommand(newSweepCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", cfg.Debug, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a managed config file (created if missing)")
	rootCmd.PersistentFlags().String("url", cfg.ChannelURL, "Negotiation channel URL")
	rootCmd.PersistentFlags().String("role", cfg.Role, "Local role (Supplier or Buyer)")
	rootCmd.PersistentFlags().Float64("market-price", cfg.MarketPrice, "Maximum retail price per unit")
	rootCmd.PersistentFlags().Float64("cost", cfg.ProductionCost, "Production cost per unit")
	rootCmd.PersistentFlags().Int("demand-min", cfg.DemandMin, "Lower demand bound")
	rootCmd.PersistentFlags().Int("demand-max", cfg.DemandMax, "Upper demand bound")
	rootCmd.PersistentFlags().Bool("human", !cfg.BotOpponent, "Counterpart is a human (disables turn pacing)")
	rootCmd.PersistentFlags().Bool("harness", cfg.TestHarness, "Enable the test-harness controls (reset, decision trail)")
	rootCmd.PersistentFlags().Bool("no-analysis", !cfg.DecisionSupport, "Disable the decision-support commands")

	return rootCmd
}

// applyFlags folds explicitly set flags into the environment-seeded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("url") {
		cfg.ChannelURL, _ = flags.GetString("url")
	}
	if flags.Changed("role") {
		cfg.Role, _ = flags.GetString("role")
	}
	if flags.Changed("market-price") {
		cfg.MarketPrice, _ = flags.GetFloat64("market-price")
	}
	if flags.Changed("cost") {
		cfg.ProductionCost, _ = flags.GetFloat64("cost")
	}
	if flags.Changed("demand-min") {
		cfg.DemandMin, _ = flags.GetInt("demand-min")
	}
	if flags.Changed("demand-max") {
		cfg.DemandMax, _ = flags.GetInt("demand-max")
	}
	if flags.Changed("human") {
		human, _ := flags.GetBool("human")
		cfg.BotOpponent = !human
	}
	if flags.Changed("harness") {
		cfg.TestHarness, _ = flags.GetBool("harness")
	}
	if flags.Changed("no-analysis") {
		noAnalysis, _ := flags.GetBool("no-analysis")
		cfg.DecisionSupport = !noAnalysis
	}
}

// newNegotiateCmd creates the negotiate command.
func newNegotiateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "negotiate",
		Short: "Join a live negotiation",
		Long: `Connect to the negotiation channel and run the interactive session:
chat with the counterpart, submit price/quantity proposals and accept theirs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNegotiation(cmd.Context(), cfg)
		},
	}
}

// newEvaluateCmd creates the evaluate command, a one-shot profit analysis
// that needs no live channel.
func newEvaluateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate PRICE QUANTITY",
		Short: "Evaluate the profit consequences of a hypothetical deal",
		Long: `Compute expected demand, expected sales and both parties' profits for a
hypothetical deal at the given price and quantity.
Example: bargainer evaluate 7 50`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newDecisionEngine(cfg)
			if err != nil {
				return err
			}
			price, quantity, err := parseDealArgs(args)
			if err != nil {
				return err
			}
			scenario, err := eng.EvaluateScenario(price, quantity)
			if err != nil {
				return err
			}
			fmt.Println(display.NewTerminal(localMarker).Scenario(scenario))
			return nil
		},
	}
}

// newSweepCmd creates the sweep command.
func newSweepCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep PRICE QUANTITY",
		Short: "Show profits across the whole demand range for a deal",
		Long: `Compute both parties' profits at every demand level in the configured range
for a hypothetical deal, alongside the expected-value lines.
Example: bargainer sweep 7 50 --step=10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newDecisionEngine(cfg)
			if err != nil {
				return err
			}
			price, quantity, err := parseDealArgs(args)
			if err != nil {
				return err
			}
			series, err := eng.BuildSweep(price, quantity)
			if err != nil {
				return err
			}
			step, _ := cmd.Flags().GetInt("step")
			fmt.Println(display.NewTerminal(localMarker).Sweep(series, step))
			return nil
		},
	}
	cmd.Flags().Int("step", 5, "Demand-level stride between printed rows")
	return cmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Bargainer v1.0.0")
			fmt.Println("Bilateral price negotiation client")
		},
	}
}

// newConfigCmd creates the config command.
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Inspect and validate the negotiation configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Println("Configuration is valid.")
			return nil
		},
	})

	return configCmd
}

func newDecisionEngine(cfg *config.Config) (*decision.Engine, error) {
	if !cfg.DecisionSupport {
		return nil, fmt.Errorf("decision support is disabled")
	}
	params := econ.Params{
		MarketPrice:    cfg.MarketPrice,
		ProductionCost: cfg.ProductionCost,
		DemandMin:      cfg.DemandMin,
		DemandMax:      cfg.DemandMax,
	}
	return decision.NewEngine(params, cfg.IsSupplier())
}

func parseDealArgs(args []string) (float64, int, error) {
	price, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid price %q: %w", args[0], err)
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid quantity %q: %w", args[1], err)
	}
	return price, quantity, nil
}

// showConfig displays the current configuration.
func showConfig(cfg *config.Config) {
	fmt.Println("Current Bargainer Configuration:")
	fmt.Println("════════════════════════════════")
	fmt.Printf("Channel URL:          %s\n", cfg.ChannelURL)
	fmt.Printf("Submit URL:           %s\n", orUnset(cfg.SubmitURL))
	fmt.Printf("Participant Index:    %d\n", cfg.ParticipantIndex)
	fmt.Printf("Nickname:             %s\n", cfg.Nick)
	fmt.Println()
	fmt.Printf("Role:                 %s\n", cfg.Role)
	fmt.Printf("Counterpart:          %s\n", counterpartKind(cfg))
	fmt.Printf("Market Price:         %v\n", cfg.MarketPrice)
	fmt.Printf("Production Cost:      %v\n", cfg.ProductionCost)
	fmt.Printf("Demand Range:         [%d, %d]\n", cfg.DemandMin, cfg.DemandMax)
	fmt.Println()
	fmt.Printf("Decision Support:     %t\n", cfg.DecisionSupport)
	fmt.Printf("Test Harness:         %t\n", cfg.TestHarness)
	if cfg.TestHarness {
		fmt.Printf("Reset Cost Range:     [%d, %d]\n", cfg.ProductionCostLow, cfg.ProductionCostHigh)
		fmt.Printf("Reset Price Range:    [%d, %d]\n", cfg.MarketPriceLow, cfg.MarketPriceHigh)
	}
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func counterpartKind(cfg *config.Config) string {
	if cfg.BotOpponent {
		return fmt.Sprintf("automated %s", cfg.OppositeRole())
	}
	return fmt.Sprintf("human %s", cfg.OppositeRole())
}
