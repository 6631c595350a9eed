// Package machine dispatches recognized gestures to the machine-side
// command executable and defines the command wire types.
package machine

import "encoding/json"

// Request is the command payload written to the executable's stdin.
type Request struct {
	Action     string          `json:"action"`
	Gesture    string          `json:"gesture"`
	Confidence float64         `json:"confidence"`
	Mode       string          `json:"mode"`
	Params     json.RawMessage `json:"params,omitempty"`
}

// Response is the executable's reply read from stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
