package brief

import (
	"fmt"
	"strings"

	"scout/cmd/scout/cli"
	"scout/internal/agent"
	"scout/internal/profile"

	"github.com/spf13/cobra"
)

var (
	format string
	out    string
)

var Cmd = &cobra.Command{
	Use:   "brief <company>",
	Short: "Prepare a pre-sales account brief",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := profile.FormatExecutive
		if format != "" {
			parsed, err := profile.ParseFormat(format)
			if err != nil {
				return err
			}
			f = parsed
		}

		req := agent.Request{
			Topic:  strings.Join(args, " "),
			Format: f,
			Role:   "prospect",
		}

		env, err := cli.Setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if err := cli.RunAndRender(cmd.Context(), env, req, out); err != nil {
			return fmt.Errorf("brief run: %w", err)
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "report format: summary, detailed, or executive (default executive)")
	Cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to a file instead of stdout")
}
