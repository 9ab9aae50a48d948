package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/Untitled-ITU/nutrify-sub000/internal/config"
	"github.com/spf13/cobra"
)

var configGetCmd = LeafCommand{
	Use:   "get [key]",
	Short: "Show one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		workDir, _ := os.Getwd()

		key := ""
		if len(args) == 1 {
			key = args[0]
		}
		return runConfigGet(cmd, homeDir, workDir, key)
	},
}.Build()

// runConfigGet prints effective settings: the file overlaid with the environment.
func runConfigGet(cmd *cobra.Command, homeDir, workDir, key string) error {
	cfg, err := config.Load(homeDir, workDir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if key != "" {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, v)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(w, Warning("warning: "+err.Error()))
	}
	for _, k := range config.Keys() {
		v, _ := cfg.Get(k)
		if k == "token" {
			v = maskToken(v)
		}
		if v == "" {
			v = Silent("(unset)")
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", padRight(k, 12), v)
	}
	return nil
}

func maskToken(t string) string {
	if len(t) <= 8 {
		return strings.Repeat("*", len(t))
	}
	return t[:4] + "…" + t[len(t)-4:]
}
