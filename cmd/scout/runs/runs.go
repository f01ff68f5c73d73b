package runs

import (
	"fmt"
	"os"
	"text/tabwriter"

	"scout/cmd/scout/cli"

	"github.com/spf13/cobra"
)

var limit int

var Cmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		runs, err := env.Store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tROLE\tDEPTH\tSTATUS\tTOPIC")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Role, r.Depth, r.Status,
				truncateTopic(r.Topic, 48))
		}
		return w.Flush()
	},
}

// truncateTopic shortens a topic to at most n characters for the list
// view, counting runes so multibyte text never gets cut mid-character.
func truncateTopic(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the report of an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.Setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		run, err := env.Store.GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if run.Report == "" {
			return fmt.Errorf("run %s has no report (status %s)", run.ID, run.Status)
		}
		fmt.Println(run.Report)
		return nil
	},
}

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list")
	Cmd.AddCommand(showCmd)
}
