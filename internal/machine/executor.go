package machine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// Executor runs the machine command executable with a deadline. One
// process is spawned per command; the executable reads a Request as
// JSON from stdin and writes a Response as JSON to stdout.
type Executor struct {
	executable string
	timeout    time.Duration
}

// NewExecutor creates an Executor for the given executable path.
func NewExecutor(executable string, timeout time.Duration) *Executor {
	return &Executor{executable: executable, timeout: timeout}
}

// Execute sends req to the executable and parses its reply.
func (e *Executor) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.executable)
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("command %q timed out after %s", req.Action, e.timeout)
	}
	if err != nil {
		if msg := stderr.String(); msg != "" {
			return nil, fmt.Errorf("command %q failed: %w, stderr: %s", req.Action, err, msg)
		}
		return nil, fmt.Errorf("command %q failed: %w", req.Action, err)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse command reply: %w, stdout: %s", err, stdout.String())
	}

	return &resp, nil
}
