package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/usecase"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var input string
	cfg := newPipelineCfg()

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "URL or security question to analyze (first argument is used when omitted)",
				Destination: &input,
			},
		},
		cfg.Flags(false),
	)

	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze one URL or question without human verification",
		ArgsUsage: "[URL or question]",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if input == "" {
				input = strings.Join(cmd.Args().Slice(), " ")
			}
			input = strings.TrimSpace(input)
			if input == "" {
				return goerr.New("input is required, pass it as an argument or with --input")
			}
			if len(input) > usecase.MaxInputLength {
				return goerr.New("input is too long",
					goerr.V("length", len(input)),
					goerr.V("max", usecase.MaxInputLength))
			}

			logging.Default().Debug("starting analysis", "pipeline", cfg)

			uc, closer, err := cfg.Configure(ctx)
			defer closer()
			if err != nil {
				return err
			}

			report, err := uc.Evaluate(ctx, analysis.ParseQuery(input), false, false)
			if err != nil {
				return err
			}

			return printReport(os.Stdout, report)
		},
	}
}

func printReport(w io.Writer, report *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	return nil
}
