package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/interfaces"
	"github.com/secmon-lab/guardian/pkg/domain/model/analysis"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/domain/types"
)

type analyzeRequest struct {
	URL               string `json:"url"`
	VerificationToken string `json:"verificationToken" masq:"secret"`
	// TurnstileToken is accepted for clients of the earlier API.
	TurnstileToken string `json:"turnstile_token" masq:"secret"`
	SessionID      string `json:"sessionId"`
}

type historyResponse struct {
	History []analysis.HistoryEntry `json:"history"`
}

func analyzeHandler(uc interfaces.AnalyzeUsecases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				handleError(w, r, goerr.Wrap(err, "request body is too large", goerr.T(errs.TagInvalidRequest)))
				return
			}
			handleError(w, r, goerr.Wrap(err, "invalid request body", goerr.T(errs.TagInvalidRequest)))
			return
		}

		token := body.VerificationToken
		if token == "" {
			token = body.TurnstileToken
		}

		report, err := uc.Analyze(r.Context(), interfaces.AnalyzeRequest{
			Input:             body.URL,
			VerificationToken: token,
			SessionID:         types.SessionID(body.SessionID),
		})
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

func historyHandler(uc interfaces.AnalyzeUsecases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := uc.History(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		if entries == nil {
			entries = []analysis.HistoryEntry{}
		}

		writeJSON(w, r, http.StatusOK, historyResponse{History: entries})
	}
}
