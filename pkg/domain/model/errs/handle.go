package errs

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/guardian/pkg/utils/logging"
	"github.com/secmon-lab/guardian/pkg/utils/request_id"
)

// Handle logs err and reports it to Sentry. It never panics.
func Handle(ctx context.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[CRITICAL] slog crashed during error handling: original_error=%s, slog_panic=%v\n",
				err.Error(), r)
		}
	}()

	logAttrs := []any{slog.Any("error", err)}
	logger := logging.From(ctx)

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if reqID := request_id.FromContext(ctx); reqID != "" {
			scope.SetTag("request_id", reqID)
		}

		for k, v := range goerr.Values(err) {
			scope.SetExtra(k, v)
		}
	})
	evID := hub.CaptureException(err)
	if evID != nil {
		logAttrs = append(logAttrs, slog.Any("sentry.id", *evID))
	}

	logger.Error("Error: "+err.Error(), logAttrs...)
}

// Details returns client visible details attached with DetailsKey.
func Details(err error) []string {
	v, ok := goerr.Values(err)[DetailsKey]
	if !ok {
		return nil
	}
	details, ok := v.([]string)
	if !ok {
		return nil
	}
	return details
}
