// Command todo manages a todo.txt list from the terminal.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MihkelHunter/todotxt/internal/config"
	"github.com/MihkelHunter/todotxt/internal/logging"
	"github.com/MihkelHunter/todotxt/internal/store"
	"github.com/MihkelHunter/todotxt/todo"
)

// svc is opened before any subcommand runs; tests replace it.
var svc *todo.Service

var rootCmd = &cobra.Command{
	Use:           "todo",
	Short:         "Manage a todo.txt list",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if svc != nil {
			return nil
		}
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if lvl, ok := logging.ParseLevel(cfg.Log.Level); ok {
			logging.SetLevel(lvl)
		}
		repo, err := store.Open(cfg)
		if err != nil {
			return fmt.Errorf("store: %w", err)
		}
		svc = todo.NewService(repo, todo.WithCreationDate(cfg.DateOnAdd))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.todoapp/config.toml)")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func main() {
	err := rootCmd.Execute()
	if svc != nil {
		svc.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
