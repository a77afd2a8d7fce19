package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MihkelHunter/todotxt/todo"
)

var addCmd = &cobra.Command{
	Use:   "add LINE...",
	Short: "Add a task",
	Long: `Add a task. Arguments are joined with spaces into one todo.txt line.

Examples:
  todo add "(A) Call mom @phone +family due:2012-03-10"
  todo add Buy milk @store`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := svc.Add(strings.Join(args, " "))
		if err != nil {
			return err
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s\n", green("added"), t.ID, t)
		return nil
	},
}

var doCmd = &cobra.Command{
	Use:   "do ID",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE:  mutateCmd("done", (*todo.Service).Do),
}

var undoCmd = &cobra.Command{
	Use:   "undo ID",
	Short: "Mark a task not done",
	Args:  cobra.ExactArgs(1),
	RunE:  mutateCmd("reopened", (*todo.Service).Undo),
}

var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := svc.Delete(id); err != nil {
			return err
		}
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", yellow("deleted"), id)
		return nil
	},
}

func mutateCmd(verb string, fn func(*todo.Service, int64) (*todo.Task, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		t, err := fn(svc, id)
		if err != nil {
			return err
		}
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s\n", cyan(verb), t.ID, t)
		return nil
	}
}

func init() {
	rootCmd.AddCommand(addCmd, doCmd, undoCmd, rmCmd)
}
