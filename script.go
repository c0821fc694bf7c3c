package colorin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Script is a recorded sequence of user interactions which can be replayed over a session.
// Pointer coordinates are screen coordinates relative to the canvas container.
//
//	{"events": [
//		{"op": "color", "color": "#3b82f6"},
//		{"op": "down", "x": 10, "y": 20},
//		{"op": "move", "x": 60, "y": 20},
//		{"op": "up"}
//	]}
type Script struct {
	Events []ScriptEvent `json:"events"`
}

// ScriptEvent is a single step of a paint script.
type ScriptEvent struct {
	Op    string  `json:"op"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Tool  string  `json:"tool,omitempty"`
	Color string  `json:"color,omitempty"`
	Size  int     `json:"size,omitempty"`
	Scale float64 `json:"scale,omitempty"`
	Mode  string  `json:"mode,omitempty"`
	// Touch marks pointer events coming from a touch screen.
	Touch bool `json:"touch,omitempty"`
	// Show sets the reference photo view. When missing the view is toggled.
	Show *bool `json:"show,omitempty"`
}

// ParseScript decodes a JSON paint script.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("invalid paint script: %w", err)
	}
	return &s, nil
}

// LoadScript reads a JSON paint script from a file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the paint script: %w", err)
	}
	defer f.Close()

	return ParseScript(f)
}

// Replay applies every event of the script to the session, in order.
func (sc *Script) Replay(s *Session) error {
	for i, e := range sc.Events {
		if err := e.apply(s); err != nil {
			return fmt.Errorf("paint script event #%d (%s): %w", i, e.Op, err)
		}
	}
	return nil
}

func (e ScriptEvent) apply(s *Session) error {
	switch e.Op {
	case "tool":
		t, err := ParseTool(e.Tool)
		if err != nil {
			return err
		}
		s.SelectTool(t)
	case "color":
		return s.SelectColorHex(e.Color)
	case "picker":
		s.OpenColorPicker()
	case "size":
		s.SetBrushSize(e.Size)
	case "zoom":
		s.SetScale(e.Scale)
	case "zoom_in":
		s.ZoomIn()
	case "zoom_out":
		s.ZoomOut()
	case "pan":
		s.SetPan(Pt(e.X, e.Y))
	case "reset":
		s.ResetView()
	case "blend":
		return s.SetBlendMode(e.Mode)
	case "down":
		e.pointer(s, PhaseStart)
	case "move":
		e.pointer(s, PhaseMove)
	case "up":
		e.pointer(s, PhaseEnd)
	case "enter":
		s.PointerEnter(Pt(e.X, e.Y))
	case "leave":
		s.PointerLeave()
	case "original":
		if e.Show == nil {
			s.ToggleOriginal()
		} else {
			s.SetShowOriginal(*e.Show)
		}
	default:
		return fmt.Errorf("unknown operation %q", e.Op)
	}
	return nil
}

func (e ScriptEvent) pointer(s *Session, phase Phase) {
	if !e.Touch {
		s.HandlePointer(MouseSample(e.X, e.Y, phase))
		return
	}
	var touches []Point
	if phase != PhaseEnd {
		touches = []Point{Pt(e.X, e.Y)}
	}
	if ps, ok := TouchSample(touches, phase); ok {
		s.HandlePointer(ps)
	}
}
