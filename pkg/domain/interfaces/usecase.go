package interfaces

import (
	"context"

	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/domain/types"
)

type AnalyzeRequest struct {
	Input             string
	VerificationToken string
	SessionID         types.SessionID
}

type AnalyzeUsecases interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*analysis.Report, error)
	History(ctx context.Context) ([]analysis.HistoryEntry, error)
}
