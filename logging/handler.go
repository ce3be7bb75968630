package logging

import (
	"context"
	"log/slog"
)

// Handler attaches the current Span (if any) to every record before
// delegating, so span correlation doesn't need to be threaded through
// every log call by hand.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v := ctx.Value(SpanKey); v != nil {
		record.Add("logging.span", v.(Span))
	}
	return h.Handler.Handle(ctx, record)
}
