// Package assert turns violated internal invariants into logged panics.
//
// Checks are off by default; Enable switches them on (the CLI does so when the
// debug config key is set). A disabled check costs one atomic load.
package assert

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"

	"lil-go/pkg/errs"
	"lil-go/pkg/log"
)

var enabled atomic.Bool

// Failure is the panic value raised by a failed check.
type Failure struct {
	Code     errs.Code
	Expr     string
	Location string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("assertion %q failed at %s: %v", f.Expr, f.Location, f.Code)
}

func (f *Failure) Unwrap() error {
	return f.Code
}

// Enable turns checks on or off.
func Enable(on bool) {
	enabled.Store(on)
}

func Enabled() bool {
	return enabled.Load()
}

// That panics with a *Failure carrying code when checks are enabled and cond is false.
func That(cond bool, code errs.Code, expr string) {
	if cond || !enabled.Load() {
		return
	}
	Fail(code, expr)
}

// Fail logs and panics unconditionally.
func Fail(code errs.Code, expr string) {
	f := &Failure{Code: code, Expr: expr, Location: caller()}
	log.Error().Str("code", code.String()).Str("expr", expr).Str("at", f.Location).Msg("assertion failed")
	panic(f)
}

func caller() string {
	for skip := 2; skip < 6; skip++ {
		_, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		if !isAssertFrame(file) {
			return fmt.Sprintf("%s:%d", file, line)
		}
	}
	return "unknown"
}

func isAssertFrame(file string) bool {
	return strings.HasSuffix(file, "pkg/assert/assert.go")
}
