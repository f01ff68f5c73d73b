package research

import (
	"fmt"
	"strings"

	"scout/cmd/scout/cli"
	"scout/internal/agent"
	"scout/internal/profile"

	"github.com/spf13/cobra"
)

var (
	depth  string
	format string
	role   string
	out    string
)

var Cmd = &cobra.Command{
	Use:   "research <topic>",
	Short: "Run a research task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := agent.Request{
			Topic: strings.Join(args, " "),
			Role:  role,
		}

		// Validate before touching the vendor: unknown values are a
		// usage error, never a silent default.
		if depth != "" {
			d, err := profile.ParseDepth(depth)
			if err != nil {
				return err
			}
			req.Depth = d
		}
		if format != "" {
			f, err := profile.ParseFormat(format)
			if err != nil {
				return err
			}
			req.Format = f
		}

		env, err := cli.Setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if err := cli.RunAndRender(cmd.Context(), env, req, out); err != nil {
			return fmt.Errorf("research run: %w", err)
		}
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&depth, "depth", "d", "", "research depth: quick, standard, or comprehensive")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "report format: summary, detailed, or executive")
	Cmd.Flags().StringVarP(&role, "role", "r", "research", "agent role")
	Cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to a file instead of stdout")
}
