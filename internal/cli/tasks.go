package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taskboard/internal/filter"
	"taskboard/internal/table"
	"taskboard/internal/task"
)

// newTasksCmd fetches the task list once and prints it without the TUI.
func newTasksCmd(app *App) *cobra.Command {
	var st filter.State
	var sortKey string
	var desc bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Fetch and print tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := stderrLogger(cmd.ErrOrStderr(), app.level())
			s := app.newStore(logger)
			if err := s.FetchAll(cmd.Context()); err != nil {
				return err
			}
			spec := table.SortSpec{Key: sortKey, Direction: table.Asc}
			if desc {
				spec.Direction = table.Desc
			}
			rows := table.Sort(filter.Apply(s.Snapshot().Items, st), spec)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tPRIORITY\tDUE\tASSIGNEE")
			for _, t := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Name, t.Display(task.FieldStatus), t.Display(task.FieldPriority), t.DueDate, t.Assignee)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&st.Search, "search", "", "Match name, description or id")
	cmd.Flags().StringVar(&st.Status, "status", "", "Exact status (e.g. in_progress)")
	cmd.Flags().StringVar(&st.Priority, "priority", "", "Exact priority")
	cmd.Flags().StringVar(&st.Assignee, "assignee", "", "Exact assignee")
	cmd.Flags().StringVar(&sortKey, "sort", task.FieldDueDate, "Sort key")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
