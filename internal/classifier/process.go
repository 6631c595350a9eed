package classifier

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// ProcessClassifier implements Classifier using a Python sidecar that
// loads the trained model and answers over stdin/stdout, one JSON line
// per request and response. The sidecar holds the sklearn model and label
// encoder; this side only ships feature vectors across.
type ProcessClassifier struct {
	scriptPath string
	modelDir   string
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stdout     *bufio.Reader
	mu         sync.Mutex
	started    bool
}

// NewProcessClassifier creates a classifier backed by the given sidecar
// script and model directory. The process is started lazily on the first
// classification.
func NewProcessClassifier(scriptPath, modelDir string) (*ProcessClassifier, error) {
	if _, err := os.Stat(scriptPath); err != nil {
		return nil, fmt.Errorf("classifier script: %w", err)
	}

	return &ProcessClassifier{
		scriptPath: scriptPath,
		modelDir:   modelDir,
	}, nil
}

type classifyRequest struct {
	Features []float64 `json:"features"`
}

type classifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// Classify sends the feature vector to the sidecar and returns its
// prediction.
func (c *ProcessClassifier) Classify(features []float64) (Prediction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureStarted(); err != nil {
		return Prediction{}, err
	}

	req, err := json.Marshal(classifyRequest{Features: features})
	if err != nil {
		return Prediction{}, fmt.Errorf("marshal request: %w", err)
	}
	req = append(req, '\n')

	if _, err := c.stdin.Write(req); err != nil {
		return Prediction{}, fmt.Errorf("write request: %w", err)
	}

	line, err := c.stdout.ReadString('\n')
	if err != nil {
		return Prediction{}, fmt.Errorf("read response: %w", err)
	}

	var resp classifyResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return Prediction{}, fmt.Errorf("parse response: %w", err)
	}
	if resp.Error != "" {
		return Prediction{}, fmt.Errorf("classifier: %s", resp.Error)
	}

	return Prediction{Label: resp.Label, Confidence: resp.Confidence}, nil
}

// Close shuts down the sidecar process.
func (c *ProcessClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}

	if c.stdin != nil {
		c.stdin.Close()
	}

	err := c.cmd.Wait()
	c.started = false
	c.cmd = nil
	c.stdin = nil
	c.stdout = nil

	return err
}

func (c *ProcessClassifier) ensureStarted() error {
	if c.started {
		return nil
	}

	c.cmd = exec.Command("python3", c.scriptPath, "--model-dir", c.modelDir)

	stdin, err := c.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	c.cmd.Stderr = os.Stderr

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("start classifier sidecar: %w", err)
	}

	c.stdin = stdin
	c.stdout = bufio.NewReader(stdout)
	c.started = true

	return nil
}
