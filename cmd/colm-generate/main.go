// Command colm-generate answers a question file with the deliberation
// pipeline. Settings are read from colm_config.yaml or the file named by
// COLM_CONFIG.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/colm/config"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/internal/cli"
	"github.com/hupe1980/colm/runner"
	"github.com/hupe1980/colm/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "colm-generate",
		Short:        "Generate specialist answers for a question file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel, logger := cli.Setup("colm-generate")
			defer cancel()

			settings, err := config.LoadGenerateSettings(config.GenerateConfigPath())
			if err != nil {
				return err
			}
			dir, err := cli.LoadDirectory(settings.EndpointFile)
			if err != nil {
				return err
			}
			if err := settings.CheckBackends(dir); err != nil {
				return err
			}

			g, err := cli.Gateway(ctx, dir, logger, gateway.JitterFromMillis(settings.JitterMinMS, settings.JitterMaxMS))
			if err != nil {
				return err
			}
			d, err := runner.NewDeliberator(g, settings, logger)
			if err != nil {
				return err
			}
			for _, b := range d.Registry().Backends() {
				if !g.Has(b) {
					return fmt.Errorf("%s: specialist backend %q: %w", settings.EndpointFile, b, gateway.ErrUnknownBackend)
				}
			}

			pub, err := runner.NewPublisher(ctx, settings.Publish)
			if err != nil {
				return err
			}

			summary, err := runner.NewGenerateRunner(settings, d, store.New(func(o *store.Options) { o.Logger = logger }), func(o *runner.GenerateOptions) {
				o.Logger = logger
				o.Publisher = pub
			}).Run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}
