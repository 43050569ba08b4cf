package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Exit codes reported when the process did not produce one of its own.
const (
	ExitNotStarted = 127 // Executable missing or not runnable (shell convention).
	ExitAbnormal   = 1   // Killed by a signal or otherwise terminated without a status.
)

// Invocation is one external call: an executable and its arguments.
type Invocation struct {
	Name string
	Args []string
}

// Result holds the outcome of a single invocation. ExitCode is 0 on success.
// Err is set whenever ExitCode is nonzero and describes the failure.
type Result struct {
	ExitCode int
	Err      error
}

// OK reports whether the process exited with status 0.
func (r Result) OK() bool { return r.ExitCode == 0 }

// Runner executes an invocation synchronously and reports its exit status.
type Runner interface {
	Run(ctx context.Context, inv Invocation) Result
}

// Exec runs invocations with os/exec. Nil writers pass through to the
// process's own stdout and stderr.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the process, waits for it, and maps the outcome to a Result.
// Cancelling ctx kills the process.
func (e Exec) Run(ctx context.Context, inv Invocation) Result {
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Stdout = e.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return Result{}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			code = ExitAbnormal
		}
		return Result{ExitCode: code, Err: fmt.Errorf("%s: %w", inv.Name, err)}
	}
	return Result{ExitCode: ExitNotStarted, Err: fmt.Errorf("%s: %w", inv.Name, err)}
}

// Line renders inv as a shell-style command line for logging. Arguments
// containing whitespace or quotes are quoted.
func Line(inv Invocation) string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quote(inv.Name))
	for _, a := range inv.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'\\") {
		return strconv.Quote(s)
	}
	return s
}
