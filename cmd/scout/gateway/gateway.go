package gateway

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"scout/cmd/scout/cli"
	"scout/internal/agent"
	gw "scout/internal/gateway"

	"github.com/spf13/cobra"
)

var addr string

var Cmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start the demo gateway server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := cli.Setup(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if addr != "" {
			env.Cfg.Gateway.Addr = addr
		}

		runner, err := agent.FromConfig(env.Cfg, env.Mode, env.Store)
		if err != nil {
			return err
		}

		srv := gw.NewServer(runner, env.Store, env.Cfg.Gateway.Token)
		slog.Info("starting gateway", "addr", env.Cfg.Gateway.Addr, "mode", env.Mode)
		return srv.ListenAndServe(ctx, env.Cfg.Gateway.Addr)
	},
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "override gateway listen address")
}
