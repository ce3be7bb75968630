package logging

import (
	"context"
	"crypto/rand"
)

// Span is an opaque id correlating the log lines of one executor Run.
type Span string

type spanKeyType struct{}

// SpanKey is the context.Context key under which the current Span is
// stored.
var SpanKey = spanKeyType{}

// NewSpan mints a fresh Span, records its parent (the caller's current
// span, if any) and returns a context carrying it plus the span itself.
type NewSpan func(ctx context.Context, parent Span) (context.Context, Span)

func (Module) NewSpan(logger Logger) NewSpan {
	return func(ctx context.Context, parent Span) (context.Context, Span) {
		var creator Span
		if v := ctx.Value(SpanKey); v != nil {
			creator = v.(Span)
		}
		if parent == "" {
			parent = creator
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		var args []any
		if creator != "" && creator != parent {
			args = append(args, "creator", creator)
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.InfoContext(ctx, "new span", args...)

		return ctx, span
	}
}
