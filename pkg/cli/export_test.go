package cli

import (
	"context"
	"io"
	"time"

	adminpb "cloud.google.com/go/firestore/apiv1/admin/adminpb"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/urfave/cli/v3"
)

func PrintReport(w io.Writer, report *analysis.Report) error {
	return printReport(w, report)
}

func PrintHistory(w io.Writer, entries []analysis.HistoryEntry, now time.Time) error {
	return printHistory(w, entries, now)
}

func TTLFieldName(projectID, databaseID string) string {
	return ttlFieldName(projectID, databaseID)
}

func TTLEnabled(field *adminpb.Field) bool {
	return ttlEnabled(field)
}

func TTLUpdateRequest(name string) *adminpb.UpdateFieldRequest {
	return ttlUpdateRequest(name)
}

// IntelSources parses args with the intel flags and returns enabled sources.
func IntelSources(args []string) ([]interfaces.DomainIntel, error) {
	list := newIntelList()
	var sources []interfaces.DomainIntel
	err := runWithFlags(list.Flags(), args, func() {
		sources = list.Sources()
	})
	return sources, err
}

func runWithFlags(flags []cli.Flag, args []string, fn func()) error {
	cmd := &cli.Command{
		Name:  "test",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			fn()
			return nil
		},
	}
	return cmd.Run(context.Background(), append([]string{"test"}, args...))
}
