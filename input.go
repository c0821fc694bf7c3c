package colorin

// Phase is the stage of a pointer gesture.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	}
	return "unknown"
}

// PointerSample is a normalized pointer event: a screen position and a phase.
// Mouse and touch input are both converted into this form before dispatch.
type PointerSample struct {
	Point
	Phase Phase
}

// MouseSample normalizes a mouse event.
func MouseSample(x, y float64, phase Phase) PointerSample {
	return PointerSample{Point: Pt(x, y), Phase: phase}
}

// TouchSample normalizes a touch event using only the first touch point.
// A touch end carries no remaining touches, so an empty list is valid for PhaseEnd.
// For the other phases it is rejected.
func TouchSample(touches []Point, phase Phase) (PointerSample, bool) {
	if len(touches) == 0 {
		if phase == PhaseEnd {
			return PointerSample{Phase: PhaseEnd}, true
		}
		return PointerSample{}, false
	}
	return PointerSample{Point: touches[0], Phase: phase}, true
}

// HandlePointer dispatches a normalized pointer sample based on the current tool.
// The returned value reports whether the sample was consumed by an active gesture,
// in which case the host should suppress its default action (e.g. page scrolling).
func (s *Session) HandlePointer(ps PointerSample) bool {
	switch ps.Phase {
	case PhaseStart:
		return s.pointerDown(ps.Point)
	case PhaseMove:
		return s.pointerMove(ps.Point)
	case PhaseEnd:
		s.pointerUp()
	}
	return false
}

// PointerEnter marks the pointer as hovering the canvas container.
func (s *Session) PointerEnter(p Point) {
	s.hovering = true
	s.pointer = p
	s.changed()
}

// PointerLeave clears the hover state and ends any active stroke or pan.
func (s *Session) PointerLeave() {
	s.hovering = false
	s.endGesture()
	s.changed()
}

func (s *Session) pointerDown(p Point) bool {
	s.pointer = p
	// A press without a release finishes the previous gesture first.
	if s.endGesture() {
		s.changed()
	}
	if s.showOriginal || !s.Ready() {
		return false
	}
	if s.tool == ToolPan {
		s.panning = true
		s.dragOrigin = p.Sub(s.viewport.Pan)
		return true
	}
	px, ok := MapToPixel(p, s.CanvasRect(), s.size.Width, s.size.Height)
	if !ok {
		return false
	}
	s.drawing = true
	s.stroke.Start(px, s.pen())

	return true
}

func (s *Session) pointerMove(p Point) bool {
	s.pointer = p
	switch {
	case s.panning:
		s.viewport.SetPan(p.Sub(s.dragOrigin))
		s.changed()
		return true
	case s.drawing:
		if px, ok := MapToPixel(p, s.CanvasRect(), s.size.Width, s.size.Height); ok {
			s.stroke.Move(px)
			s.revision++
		}
		s.changed()
		return true
	}
	if s.hovering {
		// Only the cursor preview moved.
		s.changed()
	}
	return false
}

func (s *Session) pointerUp() {
	if s.endGesture() {
		s.changed()
	}
}

// endGesture terminates the active stroke or pan, if any.
func (s *Session) endGesture() bool {
	active := s.drawing || s.panning
	if s.drawing {
		s.stroke.End()
		s.drawing = false
		s.revision++
	}
	s.panning = false

	return active
}

// Capturing reports whether a stroke or a pan gesture is in progress.
// Hosts use it to grab the pointer for the duration of the gesture.
func (s *Session) Capturing() bool {
	return s.drawing || s.panning
}
