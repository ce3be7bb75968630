// Package logging wires structured logging for the executor and the
// SMT layer: a terminal text handler fanned out to the systemd journal
// when available, plus span ids threaded through context.Context so a
// single Run's log lines can be correlated.
package logging

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}
