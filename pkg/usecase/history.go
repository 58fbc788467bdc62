package usecase

import (
	"context"

	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
)

// History returns the rolling analysis log, newest first.
func (u *UseCases) History(ctx context.Context) ([]analysis.HistoryEntry, error) {
	return u.history.List(ctx)
}
