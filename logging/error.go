package logging

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan annotates err with the request's span id, if any, so an
// error surfacing far from its origin still carries enough context to
// find the log lines for the run that produced it.
func WrapSpan(ctx context.Context, err error) error {
	v := ctx.Value(SpanKey)
	if v == nil {
		return err
	}
	return errors.Join(err, fmt.Errorf("span: %s", v.(Span)))
}
