package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/Untitled-ITU/nutrify-sub000/internal/config"
	"github.com/spf13/cobra"
)

var configSetCmd = LeafCommand{
	Use:   "set <key> [value]",
	Short: "Change a setting (prompts for the value if omitted)",
	Example: `  nutrify config set base_url https://nutrify.example.com/api
  nutrify config set token
  nutrify config set min_week 2025-01-06`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		var prompt PromptFunc
		if len(args) == 1 {
			prompt = NewPromptFunc()
		}
		return runConfigSet(cmd, homeDir, args, prompt)
	},
}.Build()

func runConfigSet(cmd *cobra.Command, homeDir string, args []string, prompt PromptFunc) error {
	key := args[0]

	cfg, err := config.Read(homeDir)
	if err != nil {
		return err
	}
	if _, err := cfg.Get(key); err != nil {
		return err
	}

	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		if prompt == nil {
			return errors.New("missing value")
		}
		if value, err = prompt(key); err != nil {
			return err
		}
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Write(homeDir, cfg); err != nil {
		return err
	}

	shown, _ := cfg.Get(key)
	if key == "token" {
		shown = maskToken(shown)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, Primary(shown))
	return nil
}
