package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/cli/config"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/usecase"
	"github.com/secmon-lab/guardian/pkg/utils/clock"
	"github.com/urfave/cli/v3"
)

func cmdHistory() *cli.Command {
	var firestoreCfg config.Firestore

	return &cli.Command{
		Name:  "history",
		Usage: "Show recent analyses",
		Flags: firestoreCfg.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kvStore, closer, err := firestoreCfg.Configure(ctx)
			defer closer()
			if err != nil {
				return err
			}

			uc := usecase.New(usecase.WithKVStore(kvStore))
			entries, err := uc.History(ctx)
			if err != nil {
				return err
			}

			return printHistory(os.Stdout, entries, clock.Now(ctx))
		},
	}
}

var verdictColors = map[analysis.Verdict]*color.Color{
	analysis.VerdictSafe:       color.New(color.FgGreen, color.Bold),
	analysis.VerdictSuspicious: color.New(color.FgYellow, color.Bold),
	analysis.VerdictRisky:      color.New(color.FgRed, color.Bold),
}

func printHistory(w io.Writer, entries []analysis.HistoryEntry, now time.Time) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no analysis yet")
		return wrapWriteErr(err)
	}

	for _, entry := range entries {
		verdict := entry.Verdict.String()
		if c, ok := verdictColors[entry.Verdict]; ok {
			verdict = c.Sprint(verdict)
		}

		if _, err := fmt.Fprintf(w, "%-10s %s (%s)\n", verdict, entry.URL, humanize.RelTime(entry.Timestamp, now, "ago", "from now")); err != nil {
			return wrapWriteErr(err)
		}
		if entry.Reason != "" {
			if _, err := fmt.Fprintf(w, "           %s\n", entry.Reason); err != nil {
				return wrapWriteErr(err)
			}
		}
	}
	return nil
}

func wrapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	return goerr.Wrap(err, "failed to write history")
}
