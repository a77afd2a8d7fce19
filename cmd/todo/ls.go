package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MihkelHunter/todotxt/todo"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tasks, most urgent first",
	Long: `List tasks sorted by priority. Ties keep file order.

Examples:
  # Everything still open
  todo ls --done=false

  # Phone calls for the family project
  todo ls --context phone --project family

  # Machine-readable output
  todo ls --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var preds []todo.Predicate
		if v, _ := cmd.Flags().GetString("priority"); v != "" {
			p, ok := todo.ParsePriority(v)
			if !ok {
				return fmt.Errorf("invalid priority %q: must be a single letter A-Z", v)
			}
			preds = append(preds, todo.HasPriority(p))
		}
		if v, _ := cmd.Flags().GetString("context"); v != "" {
			preds = append(preds, todo.HasContext(v))
		}
		if v, _ := cmd.Flags().GetString("project"); v != "" {
			preds = append(preds, todo.HasProject(v))
		}
		if cmd.Flags().Changed("done") {
			done, _ := cmd.Flags().GetBool("done")
			preds = append(preds, todo.IsDone(done))
		}
		format, _ := cmd.Flags().GetString("format")

		l, err := svc.All()
		if err != nil {
			return err
		}
		l = l.Filter(todo.And(preds...))
		l.SortByPriority()
		return printTasks(cmd.OutOrStdout(), l, format)
	},
}

func init() {
	lsCmd.Flags().String("priority", "", "only tasks with this priority")
	lsCmd.Flags().String("context", "", "only tasks with this @context")
	lsCmd.Flags().String("project", "", "only tasks with this +project")
	lsCmd.Flags().Bool("done", false, "only done (true) or open (false) tasks")
	lsCmd.Flags().String("format", "text", "output format: text or yaml")
	rootCmd.AddCommand(lsCmd)
}

func printTasks(w io.Writer, l *todo.List, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(l.Views())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "text", "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	for t := range l.All() {
		fmt.Fprintf(w, "%3d %s\n", t.ID, paint(t))
	}
	faint := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(w, faint("--"))
	fmt.Fprintln(w, faint(fmt.Sprintf("%d task(s)", l.Len())))
	return nil
}

// paint colours a line the way todo.sh does: A red, B yellow, C green,
// completed tasks faint. Overdue open tasks are bold.
func paint(t *todo.Task) string {
	line := t.String()
	var c *color.Color
	switch {
	case t.Done():
		c = color.New(color.Faint)
	case t.Priority == 'A':
		c = color.New(color.FgRed)
	case t.Priority == 'B':
		c = color.New(color.FgYellow)
	case t.Priority == 'C':
		c = color.New(color.FgGreen)
	default:
		c = color.New(color.Reset)
	}
	if !t.Done() && t.Overdue() {
		c.Add(color.Bold)
	}
	return c.Sprint(line)
}
