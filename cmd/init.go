package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halcyon-ai/halcyon/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactive configuration wizard",
		Long:  "Guides you through setting up halcyon: enter your Gemini API key, pick a model, and save the config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
}

func runInit() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Welcome to the halcyon configuration wizard!")
	fmt.Println()

	fmt.Print("Enter your Gemini API key: ")
	apiKey, _ := reader.ReadString('\n')
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	fmt.Printf("Model [%s]: ", config.DefaultModel)
	model, _ := reader.ReadString('\n')
	model = strings.TrimSpace(model)
	if model == "" {
		model = config.DefaultModel
	}

	cfg := config.DefaultConfig()
	cfg.APIKey = apiKey
	cfg.Model = model

	// Check for an existing config before overwriting.
	if path := config.DefaultPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("\nConfig file already exists at %s\n", path)
			fmt.Print("Overwrite? [y/N]: ")
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}
	}

	path, err := config.Save(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("\nConfig saved to %s\n", path)
	fmt.Println("You can now run: halcyon")
	return nil
}
