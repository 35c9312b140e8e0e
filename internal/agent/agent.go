// Package agent invokes the external natural-language agent script and
// relays its JSON output.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrTimeout reports that the agent script did not finish within the
// configured deadline. The subprocess is killed when the deadline passes.
var ErrTimeout = errors.New("agent invocation timed out")

// Request carries the caller's identity alongside the question. Email and
// designation are re-read from the database by the caller, never taken from
// the token.
type Request struct {
	Question    string
	Email       string
	Designation string
}

// ExecError reports that the agent script failed, carrying its diagnostic
// output verbatim.
type ExecError struct {
	Details string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("agent script failed: %s", e.Details)
}

// ParseError reports that the agent script exited cleanly but its output was
// not a valid JSON document.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "agent returned malformed response"
}

// Agent answers a natural-language question on behalf of an identified
// caller. The returned payload is opaque JSON, relayed to the client as-is.
type Agent interface {
	Ask(ctx context.Context, req Request) (json.RawMessage, error)
}

// ScriptRunner runs the agent as a subprocess:
//
//	<command> <script> <question> <email> <designation>
//
// The script's contract is one JSON document on stdout on success, or
// diagnostic text on stderr on failure.
type ScriptRunner struct {
	command string
	script  string
	timeout time.Duration
}

// NewScriptRunner creates a ScriptRunner. timeout bounds each invocation.
func NewScriptRunner(command, script string, timeout time.Duration) *ScriptRunner {
	return &ScriptRunner{command: command, script: script, timeout: timeout}
}

// Ask invokes the script and returns its JSON output. Arguments are passed
// positionally, never through a shell, so question text cannot be injected
// into a command line.
func (s *ScriptRunner) Ask(ctx context.Context, req Request) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.command, s.script, req.Question, req.Email, req.Designation)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Orphaned children of a killed script can hold the output pipes open;
	// don't let them stall Wait past the deadline.
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, ErrTimeout
	}
	if err != nil {
		details := strings.TrimSpace(stderr.String())
		if details == "" {
			details = err.Error()
		}
		return nil, &ExecError{Details: details}
	}

	// A clean exit with stderr output still counts as failure per the
	// script's contract.
	if stderr.Len() > 0 {
		return nil, &ExecError{Details: strings.TrimSpace(stderr.String())}
	}

	out := strings.TrimSpace(stdout.String())
	if !json.Valid([]byte(out)) {
		return nil, &ParseError{Raw: out}
	}

	return json.RawMessage(out), nil
}
