package greenflag

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoSteps is returned by LoadTestScript for a script without steps.
var ErrNoSteps = errors.New("no steps")

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Key     string  `json:"key,omitempty"`
	Message string  `json:"message,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences green flags, injected input, and broadcasts across
// frames for automated runs. Attach to a Runtime via SetTestRunner.
//
//	{"steps": [
//	  {"action": "greenflag"},
//	  {"action": "wait", "frames": 30},
//	  {"action": "click", "x": 240, "y": 180},
//	  {"action": "key", "key": "space"},
//	  {"action": "keydown", "key": "left arrow"},
//	  {"action": "keyup", "key": "left arrow"},
//	  {"action": "broadcast", "message": "go"},
//	  {"action": "stopall"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Runtime via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "greenflag", "click", "wait", "stopall":
		case "key", "keydown", "keyup":
			if st.Key == "" {
				return nil, fmt.Errorf("parse test script: step %d: %s action without key", i, st.Action)
			}
		case "broadcast":
			if st.Message == "" {
				return nil, fmt.Errorf("parse test script: step %d: broadcast action without message", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called at the start of each
// Runtime frame, before input.
func (r *TestRunner) step(rt *Runtime) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if rt.scene.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	rt.log.Debug().Str("action", st.Action).Int("step", r.cursor).Msg("test step")

	switch st.Action {
	case "greenflag":
		rt.GreenFlag()
	case "click":
		rt.scene.InjectClick(st.X, st.Y)
	case "key":
		rt.scene.InjectKey(Key(st.Key))
	case "keydown":
		rt.scene.InjectKeyDown(Key(st.Key))
	case "keyup":
		rt.scene.InjectKeyUp(Key(st.Key))
	case "broadcast":
		rt.Broadcast(st.Message)
	case "stopall":
		rt.StopAll()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && rt.scene.Pending() == 0 {
		r.done = true
	}
}
