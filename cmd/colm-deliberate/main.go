// Command colm-deliberate runs one question through the deliberation
// pipeline and prints every specialist's final answer.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/colm/agent"
	"github.com/hupe1980/colm/config"
	"github.com/hupe1980/colm/core"
	"github.com/hupe1980/colm/gateway"
	"github.com/hupe1980/colm/internal/cli"
	"github.com/hupe1980/colm/runner"
)

const sampleQuestion = "Explain the book 'The Alignment Problem' by Brian Christian. " +
	"What are its main arguments and how do they relate to current AI safety research?"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "colm-deliberate [question...]",
		Short:        "Deliberate one question with the specialist registry",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel, logger := cli.Setup("colm-deliberate")
			defer cancel()

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if settings.Iterations < 2 {
				settings.Iterations = 2
			}

			dir, err := cli.LoadDirectory(settings.EndpointFile)
			if err != nil {
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

			text := sampleQuestion
			if len(args) > 0 {
				text = strings.Join(args, " ")
			}

			out, err := d.Deliberate(ctx, core.Question{ID: "cli", Turns: core.Turns{text}})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Selected: %s\n", strings.Join(out.Selected, ", "))
			fmt.Fprintf(w, "Refinement rounds: %d\n", settings.Iterations)
			for _, name := range d.Registry().Names() {
				ans, ok := out.Final[name]
				if !ok {
					continue
				}
				fmt.Fprintf(w, "\n=== %s ===\n%s\n", name, strings.Join(ans.Turns(), "\n"))
			}
			return nil
		},
	}
}

// loadSettings reads the generation settings when present; the defaults and
// the built-in specialists apply otherwise.
func loadSettings() (*config.GenerateSettings, error) {
	path := config.GenerateConfigPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s := config.NewGenerateSettings()
		s.QuestionFile = "-"
		for _, sp := range agent.DefaultSpecialists() {
			s.Specializations = append(s.Specializations, config.Specialization{Name: sp.Name, SystemPrompt: sp.SystemPrompt, Backend: sp.Backend})
		}
		return s, nil
	}
	return config.LoadGenerateSettings(path)
}
