// Package main serves a todo.txt list over HTTP.
//
// It uses the same todo.Service and stores as the desktop app and the CLI,
// so the list can be edited from any of them.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/MihkelHunter/todotxt/internal/config"
	"github.com/MihkelHunter/todotxt/internal/logging"
	"github.com/MihkelHunter/todotxt/internal/store"
	"github.com/MihkelHunter/todotxt/internal/web"
	"github.com/MihkelHunter/todotxt/todo"
)

var rootCmd = &cobra.Command{
	Use:   "todo-web",
	Short: "Serve a todo.txt list over HTTP",
	Long: `Serve a todo.txt list over HTTP.

Endpoints:
  GET    /todo.txt                 the list in todo.txt format
  GET    /api/tasks                tasks as JSON (?priority= ?context= ?project= ?done= ?sort=priority)
  POST   /api/tasks                add {"line": "..."}
  PUT    /api/tasks/:id            replace {"line": "..."}
  POST   /api/tasks/:id/toggle     mark done / not done
  DELETE /api/tasks/:id            delete`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if addr == "" {
			addr = cfg.Web.Addr
		}

		if lvl, ok := logging.ParseLevel(cfg.Log.Level); ok {
			logging.SetLevel(lvl)
		}
		log := logging.Logger()

		repo, err := store.Open(cfg)
		if err != nil {
			return fmt.Errorf("store: %w", err)
		}
		svc := todo.NewService(repo, todo.WithCreationDate(cfg.DateOnAdd))
		defer svc.Close()

		gin.SetMode(gin.ReleaseMode)
		log.Info("serving todo list", "backend", cfg.Backend, "file", cfg.TodoFile)
		return web.NewServer(svc, log).Run(addr)
	},
}

func init() {
	rootCmd.Flags().String("config", "", "config file (default ~/.todoapp/config.toml)")
	rootCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
