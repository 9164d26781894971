// Command colm-judge scores stored model answers with an LLM judge.
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
	var (
		settingFile  string
		endpointFile string
	)

	cmd := &cobra.Command{
		Use:   "colm-judge",
		Short: "Judge model answers against a baseline with an LLM judge",
		Long: `Loads the benchmark questions and the answers under <bench>/model_answer,
judges every (model, question) pair that has no judgment yet and appends the
results to <bench>/model_judgment/<judge>/<model>.jsonl.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel, logger := cli.Setup("colm-judge")
			defer cancel()

			settings, err := config.LoadJudgeSettings(settingFile)
			if err != nil {
				return err
			}
			dir, err := cli.LoadDirectory(endpointFile, settings.JudgeModel)
			if err != nil {
				return err
			}

			logger.Info("Judge settings",
				"judge_model", settings.JudgeModel,
				"baseline", settings.Baseline,
				"baseline_model", settings.BaselineModel,
				"reference", settings.Reference,
				"ref_model", settings.RefModel,
				"temperature", settings.Temperature,
				"max_tokens", settings.MaxTokens,
				"pairwise", settings.Pairwise,
			)

			g, err := cli.Gateway(ctx, config.EndpointDirectory{settings.JudgeModel: dir[settings.JudgeModel]}, logger, gateway.DefaultJitter())
			if err != nil {
				return err
			}
			engine, err := runner.NewJudgeEngine(g, settings, logger)
			if err != nil {
				return err
			}
			pub, err := runner.NewPublisher(ctx, settings.Publish)
			if err != nil {
				return err
			}

			summary, err := runner.NewJudgeRunner(settings, engine, store.New(func(o *store.Options) { o.Logger = logger }), func(o *runner.JudgeOptions) {
				o.Parallel = dir.Parallel(settings.JudgeModel)
				o.Logger = logger
				o.Publisher = pub
				if settings.Publish.Prefix != "" {
					o.PublishPrefix = settings.Publish.Prefix
				}
			}).Run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&settingFile, "setting-file", "arena_hard_judge_config.yaml", "judge settings file")
	cmd.Flags().StringVar(&endpointFile, "endpoint-file", "api_config.yaml", "endpoint directory file")

	return cmd
}
