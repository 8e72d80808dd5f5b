package tiltcard

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"move":       true,
	"sweep":      true,
	"wait":       true,
}

// TestRunner sequences injected pointer events and screenshots across
// frames for automated visual testing. Attach to a Card via SetTestRunner.
//
// Coordinates are relative to the card bounds, so a script keeps working
// when the card is moved on screen.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Card via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the card. The runner's step method
// is called from Card.Update before input is processed each frame.
func (c *Card) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Card.Update.
func (r *TestRunner) step(c *Card) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if c.PendingInjected() > 0 {
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

	ox, oy := c.bounds.X, c.bounds.Y
	switch st.Action {
	case "screenshot":
		c.Screenshot(st.Label)
	case "click":
		c.InjectClick(ox+st.X, oy+st.Y)
	case "move":
		c.InjectMove(ox+st.X, oy+st.Y)
	case "sweep":
		c.InjectSweep(ox+st.FromX, oy+st.FromY, ox+st.ToX, oy+st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && c.PendingInjected() == 0 {
		r.done = true
	}
}
