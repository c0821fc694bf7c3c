package colorin

import (
	"testing"

	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
)

func TestGui_KeyboardShortcuts(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	g := NewGUI(s, nil)
	press := func(name string) {
		g.handleKey(key.Event{Name: name, State: key.Press})
	}

	press("E")
	assert.Equal(ToolEraser, s.Tool())
	press("M")
	assert.Equal(ToolPan, s.Tool())
	press("B")
	assert.Equal(ToolBrush, s.Tool())

	press("+")
	press("+")
	assert.InDelta(1.2, s.Viewport().Scale, 1e-9)
	press("-")
	assert.InDelta(1.1, s.Viewport().Scale, 1e-9)
	press("R")
	assert.Equal(NewViewport(), s.Viewport())

	press("]")
	assert.Equal(DefaultBrushSize+1, s.Brush().Size)
	press("[")
	press("[")
	assert.Equal(DefaultBrushSize-1, s.Brush().Size)

	press("E")
	press("3")
	assert.Equal(ToolBrush, s.Tool())
	assert.Equal(palette[2], s.Brush().Hex())
	press("P")
	assert.Equal(palette[3], s.Brush().Hex())

	// Exporting without a sink is harmless.
	press("S")
	press("D")
}

func TestGui_Export(t *testing.T) {
	assert := assert.New(t)

	sink := &recordingSink{}
	g := NewGUI(NewSession(DefaultView), sink)
	g.handleKey(key.Event{Name: "S", State: key.Press})
	assert.Empty(sink.saved)

	g = NewGUI(readySession(t, 40, 40), sink)
	g.handleKey(key.Event{Name: "S", State: key.Press})
	g.handleKey(key.Event{Name: "D", State: key.Press})
	assert.Len(sink.saved, 1)
	assert.Len(sink.downloaded, 1)
}

func TestGui_TouchDispatch(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	g := NewGUI(s, nil)

	g.dispatch(pointer.Touch, Pt(10, 40), PhaseStart)
	assert.True(s.Capturing())
	g.dispatch(pointer.Touch, Pt(90, 40), PhaseMove)
	g.dispatch(pointer.Touch, Point{}, PhaseEnd)
	assert.False(s.Capturing())
	assert.Equal(s.Brush().Color, s.PaintLayer().NRGBAAt(50, 40))

	g.dispatch(pointer.Mouse, Pt(10, 60), PhaseStart)
	g.dispatch(pointer.Mouse, Pt(90, 60), PhaseMove)
	g.dispatch(pointer.Mouse, Pt(90, 60), PhaseEnd)
	assert.Equal(s.Brush().Color, s.PaintLayer().NRGBAAt(50, 60))
}

func TestGui_BackgroundLoad(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(DefaultView)
	g := NewGUI(s, nil)
	w, h := g.getWindowSize()
	assert.Equal(480.0, w)
	assert.Equal(360.0, h)

	g.Load(SlotLineArt, NewImageSource(makeLineArt(300, 200)))
	assert.True(s.CompleteLoad(<-g.loads))
	assert.Equal(ImageSize{300, 200}, s.Size())

	g.Load(SlotPhoto, NewImageSource(makePaint(ImageSize{Width: 50, Height: 50})))
	assert.True(s.CompleteLoad(<-g.loads))
	assert.NotNil(s.ReferencePhoto())
}
