package colorin

import (
	"image"
	"image/color"
	"testing"

	"github.com/colorin/colorin/utils"
	"github.com/stretchr/testify/assert"
)

// makeLineArt returns a white image with a black frame.
func makeLineArt(w, h int) *image.NRGBA {
	img := uniform(ImageSize{Width: w, Height: h}, Background)
	black := color.NRGBA{A: 0xff}
	for x := 0; x < w; x++ {
		img.SetNRGBA(x, 0, black)
		img.SetNRGBA(x, h-1, black)
	}
	for y := 0; y < h; y++ {
		img.SetNRGBA(0, y, black)
		img.SetNRGBA(w-1, y, black)
	}
	return img
}

func readySession(t *testing.T, w, h int) *Session {
	t.Helper()

	s := NewSession(DefaultView)
	if !assert.NoError(t, s.LoadLineArt(NewImageSource(makeLineArt(w, h)))) {
		t.FailNow()
	}
	return s
}

func stroke(s *Session, pts ...Point) {
	s.HandlePointer(PointerSample{Point: pts[0], Phase: PhaseStart})
	for _, p := range pts[1:] {
		s.HandlePointer(PointerSample{Point: p, Phase: PhaseMove})
	}
	s.HandlePointer(PointerSample{Phase: PhaseEnd})
}

func TestSession_Defaults(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(Bounds{})
	assert.Equal("#ec4899", s.Brush().Hex())
	assert.Equal(DefaultBrushSize, s.Brush().Size)
	assert.Equal(ToolBrush, s.Tool())
	assert.Equal(NewViewport(), s.Viewport())
	assert.False(s.Ready())
	assert.Len(Palette(), 43)

	_, err := s.Compose()
	assert.ErrorIs(err, ErrNotReady)
	assert.False(s.HandlePointer(MouseSample(10, 10, PhaseStart)))
}

func TestSession_ColorSelectionForcesBrush(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(DefaultView)
	s.SelectTool(ToolEraser)
	assert.Equal(ToolEraser, s.Tool())

	assert.NoError(s.SelectColorHex("#3b82f6"))
	assert.Equal(ToolBrush, s.Tool())
	assert.Equal(blue, s.Brush().Color)

	s.SelectTool(ToolPan)
	s.OpenColorPicker()
	assert.Equal(ToolBrush, s.Tool())

	assert.Error(s.SelectColorHex("blue"))
	s.SelectTool(Tool(42))
	assert.Equal(ToolBrush, s.Tool())
}

func TestSession_BrushSizeIsClamped(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(DefaultView)
	s.SetBrushSize(0)
	assert.Equal(MinBrushSize, s.Brush().Size)
	s.SetBrushSize(99)
	assert.Equal(MaxBrushSize, s.Brush().Size)
	s.SetBrushSize(12)
	assert.Equal(12, s.Brush().Size)
}

func TestSession_VersionAndListeners(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(DefaultView)
	var seen []uint64
	s.OnChange(func(v uint64) { seen = append(seen, v) })

	s.ZoomIn()
	s.SetBrushSize(8)
	assert.Equal(uint64(2), s.Version())
	assert.Equal([]uint64{1, 2}, seen)
}

func TestSession_BrushStrokeReachesComposite(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	assert.Equal(ImageSize{Width: 100, Height: 80}, s.Size())
	assert.Equal(Rect{0, 0, 100, 80}, s.CanvasRect())

	assert.NoError(s.SelectColorHex("#3b82f6"))
	stroke(s, Pt(10, 10), Pt(50, 10))

	assert.Equal(blue, s.PaintLayer().NRGBAAt(30, 10))
	img, err := s.Compose()
	assert.NoError(err)
	assert.Equal(blue, img.NRGBAAt(30, 10))
	// The line art stays on top of the paint.
	assert.Equal(color.NRGBA{A: 0xff}, img.NRGBAAt(0, 10))
}

func TestSession_StrokeHonorsViewport(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	s.SetScale(2)
	s.SetPan(Pt(10, 20))
	assert.Equal(Rect{10, 20, 200, 160}, s.CanvasRect())

	// Screen (71, 61) maps to the center of pixel (30, 20).
	stroke(s, Pt(71, 61))
	assert.Equal(s.Brush().Color, s.PaintLayer().NRGBAAt(30, 20))
	assert.Equal(Background, s.PaintLayer().NRGBAAt(35, 20))
}

func TestSession_EraserPaintsBackground(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	s.SetBrushSize(6)
	stroke(s, Pt(20, 40), Pt(80, 40))
	assert.Equal(s.Brush().Color, s.PaintLayer().NRGBAAt(50, 40))

	s.SelectTool(ToolEraser)
	s.SetBrushSize(30)
	stroke(s, Pt(20, 40), Pt(80, 40))
	assert.Equal(newPaintLayer(s.Size()).Pix, s.PaintLayer().Pix)
}

func TestSession_PanGesture(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	s.SelectTool(ToolPan)

	assert.True(s.HandlePointer(MouseSample(10, 10, PhaseStart)))
	assert.True(s.Capturing())
	assert.True(s.HandlePointer(MouseSample(30, 25, PhaseMove)))
	assert.Equal(Pt(20, 15), s.Viewport().Pan)
	assert.False(s.HandlePointer(MouseSample(0, 0, PhaseEnd)))
	assert.False(s.Capturing())

	// A second drag continues from the current offset.
	stroke(s, Pt(50, 50), Pt(40, 45))
	assert.Equal(Pt(10, 10), s.Viewport().Pan)
	assert.Equal(newPaintLayer(s.Size()).Pix, s.PaintLayer().Pix)

	assert.False(s.HandlePointer(MouseSample(60, 60, PhaseMove)))
	assert.Equal(Pt(10, 10), s.Viewport().Pan)

	s.ResetView()
	assert.Equal(NewViewport(), s.Viewport())
}

func TestSession_LeaveEndsStroke(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	s.PointerEnter(Pt(10, 10))
	assert.True(s.HandlePointer(MouseSample(10, 10, PhaseStart)))
	assert.True(s.HandlePointer(MouseSample(20, 10, PhaseMove)))
	s.PointerLeave()
	assert.False(s.Capturing())
	assert.False(s.Hovering())

	assert.False(s.HandlePointer(MouseSample(20, 60, PhaseMove)))
	assert.Equal(Background, s.PaintLayer().NRGBAAt(20, 40))
}

func TestSession_DrawingContinuesOutsideCanvas(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	assert.True(s.HandlePointer(MouseSample(50, 40, PhaseStart)))
	assert.True(s.HandlePointer(MouseSample(150, 40, PhaseMove)))
	s.HandlePointer(MouseSample(0, 0, PhaseEnd))
	assert.Equal(s.Brush().Color, s.PaintLayer().NRGBAAt(98, 40))
}

func TestSession_ReferencePhotoBlocksGestures(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	s.ToggleOriginal()
	assert.False(s.ShowingOriginal(), "no photo is loaded")

	assert.NoError(s.LoadReferencePhoto(NewImageSource(makePaint(ImageSize{Width: 300, Height: 200}))))
	s.ToggleOriginal()
	assert.True(s.ShowingOriginal())

	s.PointerEnter(Pt(40, 40))
	assert.False(s.Cursor().Visible)
	assert.False(s.HandlePointer(MouseSample(40, 40, PhaseStart)))
	s.HandlePointer(MouseSample(60, 40, PhaseMove))
	s.HandlePointer(MouseSample(0, 0, PhaseEnd))
	assert.Equal(newPaintLayer(s.Size()).Pix, s.PaintLayer().Pix)

	s.SelectTool(ToolPan)
	assert.False(s.HandlePointer(MouseSample(40, 40, PhaseStart)))
	assert.Equal(Point{}, s.Viewport().Pan)

	// The photo is never part of the composite.
	img, err := s.Compose()
	assert.NoError(err)
	assert.Equal(Background, img.NRGBAAt(50, 40))

	s.SetReferencePhoto(nil)
	assert.False(s.ShowingOriginal())
	assert.Nil(s.ReferencePhoto())
}

func TestSession_ShowingOriginalEndsStroke(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	assert.NoError(s.LoadReferencePhoto(NewImageSource(makePaint(ImageSize{Width: 10, Height: 10}))))

	s.HandlePointer(MouseSample(10, 40, PhaseStart))
	s.SetShowOriginal(true)
	assert.False(s.Capturing())
	s.HandlePointer(MouseSample(90, 40, PhaseMove))
	assert.Equal(Background, s.PaintLayer().NRGBAAt(50, 40))
}

func TestSession_CursorPreview(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	assert.False(s.Cursor().Visible)

	s.PointerEnter(Pt(12, 34))
	c := s.Cursor()
	assert.True(c.Visible)
	assert.Equal(Pt(12, 34), c.Position)
	assert.Equal(4.0, c.Diameter)
	assert.Equal(s.Brush().Color, c.Fill)

	s.SetBrushSize(10)
	s.SetScale(2)
	s.HandlePointer(MouseSample(50, 60, PhaseMove))
	c = s.Cursor()
	assert.Equal(20.0, c.Diameter)
	assert.Equal(Pt(50, 60), c.Position)

	s.SelectTool(ToolEraser)
	assert.Equal(Background, s.Cursor().Fill)

	s.SelectTool(ToolPan)
	assert.False(s.Cursor().Visible)

	s.SelectTool(ToolBrush)
	s.PointerLeave()
	assert.False(s.Cursor().Visible)
}

func TestSession_CanvasRectOverride(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	s.SetCanvasRect(Rect{0, 0, 0, 0})
	assert.False(s.HandlePointer(MouseSample(10, 10, PhaseStart)), "canvas not laid out")

	s.SetCanvasRect(Rect{100, 100, 50, 40})
	stroke(s, Pt(125.25, 120.25))
	assert.Equal(s.Brush().Color, s.PaintLayer().NRGBAAt(50, 40))

	s.ClearCanvasRect()
	s.SetOrigin(Pt(5, 5))
	assert.Equal(Rect{5, 5, 100, 80}, s.CanvasRect())
}

func TestSession_BlendMode(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(DefaultView)
	assert.Equal("multiply", s.BlendMode())
	assert.Error(s.SetBlendMode("burn"))
	assert.NoError(s.SetBlendMode("darken"))
	assert.Equal("darken", s.BlendMode())
	assert.True(utils.Contains(Palette(), DefaultColor))
}

func TestSession_SetViewBumpsVersion(t *testing.T) {
	assert := assert.New(t)

	s := NewSession(DefaultView)
	v := s.Version()
	s.SetView(Bounds{Width: 640, Height: 480})
	assert.Equal(v+1, s.Version())

	s.SetView(Bounds{Width: 0, Height: 480})
	assert.Equal(v+1, s.Version())
}

func TestSession_SecondPressKeepsFirstDot(t *testing.T) {
	assert := assert.New(t)

	s := readySession(t, 100, 80)
	pink := s.Brush().Color

	s.HandlePointer(MouseSample(20, 20, PhaseStart))
	s.HandlePointer(MouseSample(60, 40, PhaseStart))
	s.HandlePointer(MouseSample(60, 40, PhaseEnd))

	assert.Equal(pink, s.PaintLayer().NRGBAAt(20, 20))
	assert.Equal(pink, s.PaintLayer().NRGBAAt(60, 40))
	assert.False(s.Capturing())
}
