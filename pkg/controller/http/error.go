package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/domain/model/errs"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/secmon-lab/guardian/pkg/utils/safe"
)

type errorResponse struct {
	Error string `json:"error"`
}

type challengeErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		logging.From(r.Context()).Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, raw)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// handleError maps tagged errors to status codes. 5xx responses carry a
// fixed message; the error itself only goes to logs and Sentry.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.From(r.Context())

	switch {
	case goerr.HasTag(err, errs.TagNotFound):
		logger.Warn("Not Found", "error", err)
		writeError(w, r, http.StatusNotFound, err.Error())

	case goerr.HasTag(err, errs.TagValidation), goerr.HasTag(err, errs.TagInvalidRequest):
		logger.Warn("Bad Request", "error", err)
		writeError(w, r, http.StatusBadRequest, err.Error())

	case goerr.HasTag(err, errs.TagForbidden):
		logger.Warn("Forbidden", "error", err)
		details := errs.Details(err)
		if details == nil {
			details = []string{}
		}
		writeJSON(w, r, http.StatusForbidden, challengeErrorResponse{Error: "Verification failed", Details: details})

	case goerr.HasTag(err, errs.TagTimeout):
		logger.Error("Gateway Timeout", "error", err)
		writeError(w, r, http.StatusGatewayTimeout, "Upstream service timed out")

	case goerr.HasTag(err, errs.TagExternal):
		logger.Error("External Service Error", "error", err)
		writeError(w, r, http.StatusBadGateway, "Upstream service error")

	case goerr.HasTag(err, errs.TagMisconfigured):
		errs.Handle(r.Context(), err)
		writeError(w, r, http.StatusInternalServerError, "Server misconfiguration")

	case goerr.HasTag(err, errs.TagDatabase), goerr.HasTag(err, errs.TagInternal):
		errs.Handle(r.Context(), err)
		writeError(w, r, http.StatusInternalServerError, "Internal server error")

	default:
		errs.Handle(r.Context(), err)
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
