// Package cmd wires configuration, the backend session, tools, and the
// turn loop into the halcyon command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halcyon-ai/halcyon/internal/config"
)

var (
	cfgFile            string
	verboseFlag        bool
	modelFlag          string
	thinkingBudgetFlag int

	// Package-level version info, set by Execute().
	appVersion string
	appCommit  string
	appDate    string
)

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date

	rootCmd := &cobra.Command{
		Use:   "halcyon",
		Short: "Gemini-powered coding agent",
		Long: "halcyon is an interactive coding agent that lets a Gemini model " +
			"read, list, and edit files, run commands, and search arXiv while you chat with it.",
		// Running halcyon with no subcommand starts chat mode.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Flags().Changed("thinking-budget"))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/halcyon/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log every tool call with its arguments and result")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "override model")
	rootCmd.PersistentFlags().IntVar(&thinkingBudgetFlag, "thinking-budget", 0,
		fmt.Sprintf("thinking budget, 0 to %d (default %d)", config.MaxThinkingBudget, config.DefaultThinkingBudget))

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig loads configuration, applying CLI flag overrides.
func initConfig(budgetFlagSet bool) *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}
	if budgetFlagSet {
		cfg.ThinkingBudget = thinkingBudgetFlag
	}

	return cfg
}

// requireAPIKey exits with a configuration diagnostic when no credential
// is available. There is no degraded mode.
func requireAPIKey(cfg *config.Config) {
	if cfg.APIKey != "" {
		return
	}
	fmt.Fprintln(os.Stderr,
		"Gemini API key not configured.\n"+
			"Set it via:\n"+
			"  - environment: GEMINI_API_KEY\n"+
			"  - config file: api_key in ~/.config/halcyon/config.yaml\n"+
			"  - run: halcyon init")
	os.Exit(1)
}
