package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/guardian/pkg/utils/logging"
)

func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write", slog.Any("error", err))
	}
}

// Drain discards the rest of r so keep-alive connections can be reused.
func Drain(ctx context.Context, r io.Reader, limit int64) {
	if r == nil {
		return
	}
	if _, err := io.Copy(io.Discard, io.LimitReader(r, limit)); err != nil {
		logging.From(ctx).Debug("Failed to drain body", slog.Any("error", err))
	}
}
