package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/halcyon-ai/halcyon/internal/agent"
	"github.com/halcyon-ai/halcyon/internal/backend"
	"github.com/halcyon-ai/halcyon/internal/session"
	"github.com/halcyon-ai/halcyon/internal/tui"
)

func newRunCmd() *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a single prompt non-interactively",
		Example: `  halcyon run -P "read main.go and tell me what it does"
  halcyon run --prompt "list all Go files"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if prompt == "" {
				return fmt.Errorf("--prompt / -P is required")
			}
			return runOnce(prompt, cmd.Flags().Changed("thinking-budget"))
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "P", "", "the prompt to execute")
	cmd.MarkFlagRequired("prompt")

	return cmd
}

// runOnce executes a single prompt and exits.
func runOnce(prompt string, budgetFlagSet bool) error {
	cfg := initConfig(budgetFlagSet)
	requireAPIKey(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui := tui.NewPlainIO()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		ui.SystemMessage("Goodbye!")
		os.Exit(0)
	}()

	client, err := backend.New(ctx, cfg.APIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	sess, err := openSession(ctx, client, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	a := agent.New(sess, session.NewMirror(), ui)
	return a.RunOnce(ctx, prompt)
}
