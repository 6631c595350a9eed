package machine

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

type fakeRunner struct {
	requests []*Request
	resp     *Response
	err      error
}

func (f *fakeRunner) Execute(_ context.Context, req *Request) (*Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &Response{Success: true}, nil
}

func newDispatcherStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDispatcher_BoundGesture(t *testing.T) {
	s := newDispatcherStore(t)
	runner := &fakeRunner{}
	d := NewDispatcher(s.Gestures(), runner)

	if err := d.Dispatch(context.Background(), "fist", 0.9, "standard"); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if len(runner.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(runner.requests))
	}
	req := runner.requests[0]
	if req.Action != "STOP_MACHINE" || req.Gesture != "fist" {
		t.Errorf("request = %+v", req)
	}
	if req.Confidence != 0.9 || req.Mode != "standard" {
		t.Errorf("request metadata = %+v", req)
	}
}

func TestDispatcher_SkipsUnknownAndDisabled(t *testing.T) {
	s := newDispatcherStore(t)
	runner := &fakeRunner{}
	d := NewDispatcher(s.Gestures(), runner)

	if err := d.Dispatch(context.Background(), "not_in_catalog", 0.9, "standard"); err != nil {
		t.Errorf("unknown gesture should be a no-op, got %v", err)
	}

	if err := s.Gestures().SetEnabled("fist", false); err != nil {
		t.Fatal(err)
	}
	if err := d.Dispatch(context.Background(), "fist", 0.9, "standard"); err != nil {
		t.Errorf("disabled gesture should be a no-op, got %v", err)
	}

	if len(runner.requests) != 0 {
		t.Errorf("runner was called %d times, want 0", len(runner.requests))
	}
}

func TestDispatcher_NilRunnerLogsOnly(t *testing.T) {
	s := newDispatcherStore(t)
	d := NewDispatcher(s.Gestures(), nil)

	if err := d.Dispatch(context.Background(), "open_hand", 0.95, "safe"); err != nil {
		t.Errorf("nil runner should be log-only, got %v", err)
	}
}

func TestDispatcher_PropagatesFailures(t *testing.T) {
	s := newDispatcherStore(t)

	t.Run("runner error", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("broken pipe")}
		d := NewDispatcher(s.Gestures(), runner)
		if err := d.Dispatch(context.Background(), "fist", 0.9, "standard"); err == nil {
			t.Error("expected the runner error to propagate")
		}
	})

	t.Run("machine rejection", func(t *testing.T) {
		runner := &fakeRunner{resp: &Response{Success: false, Error: "interlock open"}}
		d := NewDispatcher(s.Gestures(), runner)
		err := d.Dispatch(context.Background(), "fist", 0.9, "standard")
		if err == nil {
			t.Fatal("expected an error for a rejected command")
		}
		if got := err.Error(); got == "" || !strings.Contains(got, "interlock open") {
			t.Errorf("err = %v, want the machine's error message", err)
		}
	})
}
