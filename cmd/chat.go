package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/halcyon-ai/halcyon/internal/agent"
	"github.com/halcyon-ai/halcyon/internal/backend"
	"github.com/halcyon-ai/halcyon/internal/config"
	"github.com/halcyon-ai/halcyon/internal/session"
	"github.com/halcyon-ai/halcyon/internal/tools"
	"github.com/halcyon-ai/halcyon/internal/tui"
)

// runChat starts the interactive chat (REPL) mode.
func runChat(budgetFlagSet bool) error {
	cfg := initConfig(budgetFlagSet)
	requireAPIKey(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui := tui.NewPlainIO()

	// Ctrl+C must end the session even while the scanner is blocked on
	// stdin, so the handler exits directly instead of waiting for the
	// loop to notice the cancelled context.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		ui.SystemMessage("Goodbye!")
		os.Exit(0)
	}()

	ui.SystemMessage("Configuring Gemini client...")

	client, err := backend.New(ctx, cfg.APIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The thinking budget is asked for per session when neither the flag
	// nor the config file pinned one.
	if !budgetFlagSet && cfg.ThinkingBudget == config.DefaultThinkingBudget {
		cfg.ThinkingBudget = promptThinkingBudget(ui)
	}

	sess, err := openSession(ctx, client, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ui.SystemMessage(fmt.Sprintf("Agent ready (%s, thinking budget %d). Ask me anything. Type 'exit' to quit.",
		cfg.Model, cfg.ThinkingBudget))

	a := agent.New(sess, session.NewMirror(), ui)
	return a.Run(ctx)
}

// openSession builds the tool registry and opens the single chat session.
func openSession(ctx context.Context, client *backend.Client, cfg *config.Config) (*backend.Session, error) {
	registry := tools.DefaultRegistry()
	if cfg.Verbose {
		registry.Wrap(func(t tools.Tool) tools.Tool {
			return tools.Verbose(t, os.Stderr)
		})
	}
	dispatcher := tools.NewDispatcher(registry)

	return client.OpenSession(ctx, cfg.Model, dispatcher, backend.Options{
		ThinkingBudget: int32(cfg.ThinkingBudget),
		SystemPrompt:   cfg.SystemPrompt,
	})
}

// promptThinkingBudget asks the operator for a per-session budget,
// reading through the IO layer's scanner so subsequent turn input is
// untouched. Blank keeps the default; anything unparseable warns and
// keeps it too.
func promptThinkingBudget(ui *tui.PlainIO) int {
	prompt := fmt.Sprintf("Enter thinking budget (0 to %d) for this session [%d]:",
		config.MaxThinkingBudget, config.DefaultThinkingBudget)

	input, err := ui.PromptLine(prompt)
	if err != nil || input == "" {
		return config.DefaultThinkingBudget
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		ui.Warning(fmt.Sprintf("invalid thinking budget; using default of %d", config.DefaultThinkingBudget))
		return config.DefaultThinkingBudget
	}
	return int(backend.ClampThinkingBudget(int32(n)))
}
