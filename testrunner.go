package spruce

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a morph script.
type scriptStep struct {
	Action string `json:"action"`
	Shape  string `json:"shape,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// morphScript is the top-level JSON structure for a morph script.
type morphScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences target-shape changes across frames for automated
// demos and visual testing. Call Step once per frame alongside Scene.Update.
//
// Scripts are JSON:
//
//	{"steps": [
//	  {"action": "target", "shape": "tree"},
//	  {"action": "wait", "frames": 180},
//	  {"action": "toggle"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadMorphScript parses a JSON morph script and returns a ScriptRunner.
func LoadMorphScript(jsonData []byte) (*ScriptRunner, error) {
	var script morphScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse morph script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse morph script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "target":
			if st.Shape != "tree" && st.Shape != "scattered" {
				return nil, fmt.Errorf("parse morph script: step %d has unknown shape %q", i, st.Shape)
			}
		case "toggle", "wait":
		default:
			return nil, fmt.Errorf("parse morph script: step %d has unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, applying at most one action to the
// scene. Wait steps consume the given number of frames before the next
// action fires.
func (r *ScriptRunner) Step(s *Scene) {
	if r.done {
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

	switch st.Action {
	case "target":
		if st.Shape == "tree" {
			s.SetTarget(TreeShape)
		} else {
			s.SetTarget(Scattered)
		}
	case "toggle":
		s.Toggle()
	case "wait":
		r.waitCount = st.Frames
	}
}
