package logging

// New builds a Logger directly, for callers (like cmd/gradsym) that
// don't need full dscope wiring.
func New() Logger {
	return Module{}.Logger(Module{}.Writer())
}
