// Package main simulates a machine-side command endpoint. It accepts
// the daemon's command protocol on stdin and tracks simulated machine
// state in a JSON file, which makes it useful for commissioning a
// setup before wiring in the real PLC bridge.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Request is the command payload read from stdin.
type Request struct {
	Action     string          `json:"action"`
	Gesture    string          `json:"gesture"`
	Confidence float64         `json:"confidence"`
	Mode       string          `json:"mode"`
	Params     json.RawMessage `json:"params,omitempty"`
}

// Response is written to stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// machineState is the simulated machine, persisted between invocations.
type machineState struct {
	Running   bool      `json:"running"`
	Mode      int       `json:"mode"`
	Position  string    `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeError(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	state := loadState()

	if err := apply(&state, req.Action); err != nil {
		writeError(err.Error())
		return
	}

	state.UpdatedAt = time.Now()
	saveState(state)

	data, _ := json.Marshal(state)
	json.NewEncoder(os.Stdout).Encode(Response{Success: true, Data: data})
}

func apply(state *machineState, action string) error {
	switch {
	case action == "START_MACHINE":
		state.Running = true
	case action == "STOP_MACHINE":
		state.Running = false
	case action == "CONFIRM":
		// Acknowledgement only, no state change.
	case strings.HasPrefix(action, "MODE_"):
		var mode int
		if _, err := fmt.Sscanf(action, "MODE_%d", &mode); err != nil {
			return fmt.Errorf("malformed mode action: %s", action)
		}
		if !state.Running {
			return fmt.Errorf("cannot change mode while stopped")
		}
		state.Mode = mode
	case strings.HasPrefix(action, "MOVE_"):
		if !state.Running {
			return fmt.Errorf("cannot move while stopped")
		}
		state.Position = strings.ToLower(strings.TrimPrefix(action, "MOVE_"))
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
	return nil
}

func statePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "machine-sim.json"
	}
	return filepath.Join(home, ".gestured", "machine-sim.json")
}

func loadState() machineState {
	state := machineState{Position: "center"}
	data, err := os.ReadFile(statePath())
	if err != nil {
		return state
	}
	json.Unmarshal(data, &state)
	return state
}

func saveState(state machineState) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return
	}
	os.MkdirAll(filepath.Dir(statePath()), 0755)
	os.WriteFile(statePath(), data, 0644)
}

func writeError(msg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: msg})
}
