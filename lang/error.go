package lang

import "fmt"

// PosError is an error tied to a source position: tokenizer, parser,
// and code-generator failures all report through this type so a caller
// can point at the offending offset.
type PosError struct {
	Pos Pos
	Msg string
}

func (e *PosError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// WithPos builds a *PosError with a formatted message.
func WithPos(pos Pos, format string, args ...any) *PosError {
	return &PosError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
