package colorin

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/colorin/colorin/imop"
	"github.com/colorin/colorin/utils"
)

// Brush size limits and defaults.
const (
	MinBrushSize     = 1
	MaxBrushSize     = 50
	DefaultBrushSize = 3
	DefaultColor     = "#ec4899"
)

// Background is the color of a fresh paint layer. The eraser paints with it.
var Background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// DefaultView is the view size used for fitting the line art when the host doesn't provide one.
var DefaultView = Bounds{Width: 1366, Height: 768}

var palette = []string{
	"#ef4444", "#f87171", "#fca5a5",
	"#f97316", "#fdba74", "#ffedd5",
	"#eab308", "#fde047", "#fef08a",
	"#84cc16", "#bef264", "#ecfccb",
	"#22c55e", "#86efac", "#dcfce7",
	"#06b6d4", "#67e8f9", "#cffafe",
	"#3b82f6", "#93c5fd", "#dbeafe",
	"#6366f1", "#a5b4fc", "#e0e7ff",
	"#a855f7", "#d8b4fe", "#f3e8ff",
	"#d946ef", "#f0abfc", "#fae8ff",
	"#ec4899", "#f9a8d4", "#fce7f3",
	"#881337", "#be123c", "#fb7185",
	"#78350f", "#b45309", "#d97706",
	"#000000", "#525252", "#a3a3a3", "#ffffff",
}

// Palette returns the predefined brush colors as hex strings.
func Palette() []string {
	p := make([]string, len(palette))
	copy(p, palette)
	return p
}

// Brush holds the paint color and the stroke width in pixels.
type Brush struct {
	Color color.NRGBA
	Size  int
}

// Hex returns the brush color in #rrggbb form.
func (b Brush) Hex() string {
	return utils.RGBAToHex(b.Color)
}

// CursorPreview describes the circle drawn under the pointer.
type CursorPreview struct {
	Visible  bool
	Position Point
	Diameter float64
	Fill     color.NRGBA
	Outline  color.NRGBA
}

// layer is an image slot together with its load bookkeeping.
type layer struct {
	token   string
	pending string
	img     image.Image
}

// Session is the whole mutable state of an editing session: brush, tool,
// viewport, layers and the pointer related flags. It is not safe for concurrent use,
// the host must drive it from a single goroutine.
type Session struct {
	brush    Brush
	tool     Tool
	viewport Viewport
	blend    string

	view       Bounds
	origin     Point
	canvasRect *Rect

	lineArt layer
	photo   layer
	size    ImageSize
	paint   *image.NRGBA
	stroke  *StrokeRasterizer

	drawing      bool
	panning      bool
	dragOrigin   Point
	hovering     bool
	pointer      Point
	showOriginal bool

	version   uint64
	revision  uint64
	listeners []func(uint64)
}

// NewSession creates a session which fits the loaded line art into view.
func NewSession(view Bounds) *Session {
	col, _ := utils.HexToRGBA(DefaultColor)
	if view.Width <= 0 || view.Height <= 0 {
		view = DefaultView
	}
	return &Session{
		brush:    Brush{Color: col, Size: DefaultBrushSize},
		tool:     ToolBrush,
		viewport: NewViewport(),
		blend:    imop.Multiply,
		view:     view,
	}
}

// Version returns a counter which is incremented after every state change.
func (s *Session) Version() uint64 {
	return s.version
}

// OnChange registers a listener called with the new version after every state change.
func (s *Session) OnChange(fn func(version uint64)) {
	s.listeners = append(s.listeners, fn)
}

// Revision returns a counter which is incremented whenever the pixels
// of the composite may have changed: strokes, loads and blend mode changes.
func (s *Session) Revision() uint64 {
	return s.revision
}

func (s *Session) changed() {
	s.version++
	for _, fn := range s.listeners {
		fn(s.version)
	}
}

// Ready reports whether the paint layer is initialized.
func (s *Session) Ready() bool {
	return s.paint != nil
}

// Size returns the display size of the artwork. It is zero until the line art is loaded.
func (s *Session) Size() ImageSize {
	return s.size
}

// PaintLayer returns the paint layer. It is nil until the line art is loaded.
func (s *Session) PaintLayer() *image.NRGBA {
	return s.paint
}

// LineArt returns the line art scaled to the display size.
func (s *Session) LineArt() image.Image {
	return s.lineArt.img
}

// ReferencePhoto returns the loaded reference photo, if any.
func (s *Session) ReferencePhoto() image.Image {
	return s.photo.img
}

// Brush returns the current brush.
func (s *Session) Brush() Brush {
	return s.brush
}

// SelectColor sets the brush color. Choosing a color always switches to the brush tool.
func (s *Session) SelectColor(c color.NRGBA) {
	c.A = 0xff
	s.brush.Color = c
	s.selectTool(ToolBrush)
	s.changed()
}

// SelectColorHex is like SelectColor, but takes a hex color string.
func (s *Session) SelectColorHex(hex string) error {
	c, err := utils.HexToRGBA(hex)
	if err != nil {
		return err
	}
	s.SelectColor(c)
	return nil
}

// OpenColorPicker switches to the brush tool, as opening the custom color picker does.
func (s *Session) OpenColorPicker() {
	s.selectTool(ToolBrush)
	s.changed()
}

// SetBrushSize sets the stroke width, clamped to [MinBrushSize, MaxBrushSize].
func (s *Session) SetBrushSize(size int) {
	s.brush.Size = utils.Clamp(size, MinBrushSize, MaxBrushSize)
	s.changed()
}

// Tool returns the current tool.
func (s *Session) Tool() Tool {
	return s.tool
}

// SelectTool activates the given tool. Unknown tools are ignored.
func (s *Session) SelectTool(t Tool) {
	if !t.Valid() {
		return
	}
	s.selectTool(t)
	s.changed()
}

func (s *Session) selectTool(t Tool) {
	if t != s.tool {
		s.endGesture()
	}
	s.tool = t
}

// pen returns the stroke style for the current tool.
func (s *Session) pen() Pen {
	if s.tool == ToolEraser {
		return Pen{Color: Background, Size: s.brush.Size}
	}
	return Pen{Color: s.brush.Color, Size: s.brush.Size}
}

// Viewport returns the current viewport.
func (s *Session) Viewport() Viewport {
	return s.viewport
}

// SetScale sets the zoom level.
func (s *Session) SetScale(scale float64) {
	s.viewport.SetScale(scale)
	s.changed()
}

// ZoomIn increases the zoom level by one step.
func (s *Session) ZoomIn() {
	s.viewport.ZoomIn()
	s.changed()
}

// ZoomOut decreases the zoom level by one step.
func (s *Session) ZoomOut() {
	s.viewport.ZoomOut()
	s.changed()
}

// SetPan sets the pan offset.
func (s *Session) SetPan(p Point) {
	s.viewport.SetPan(p)
	s.changed()
}

// ResetView restores zoom 1 and no pan.
func (s *Session) ResetView() {
	s.viewport.Reset()
	s.changed()
}

// SetBlendMode selects the blend mode of the line-art layer.
func (s *Session) SetBlendMode(mode string) error {
	if err := imop.NewBlend().Set(mode); err != nil {
		return err
	}
	s.blend = mode
	s.revision++
	s.changed()
	return nil
}

// BlendMode returns the blend mode of the line-art layer.
func (s *Session) BlendMode() string {
	return s.blend
}

// SetView sets the bounds used to fit the next loaded line art.
func (s *Session) SetView(b Bounds) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	s.view = b
	s.changed()
}

// SetOrigin sets the screen position of the canvas container's top-left corner.
func (s *Session) SetOrigin(p Point) {
	s.origin = p
	s.changed()
}

// SetCanvasRect overrides the on-screen rectangle of the canvas as measured by the host.
func (s *Session) SetCanvasRect(r Rect) {
	s.canvasRect = &r
	s.changed()
}

// ClearCanvasRect drops the override of SetCanvasRect.
func (s *Session) ClearCanvasRect() {
	s.canvasRect = nil
	s.changed()
}

// CanvasRect returns the on-screen rectangle of the canvas, with the viewport applied.
func (s *Session) CanvasRect() Rect {
	if s.canvasRect != nil {
		return *s.canvasRect
	}
	tl := s.viewport.Apply(Point{}).Add(s.origin)
	return Rect{
		X:      tl.X,
		Y:      tl.Y,
		Width:  float64(s.size.Width) * s.viewport.Scale,
		Height: float64(s.size.Height) * s.viewport.Scale,
	}
}

// Hovering reports whether the pointer is over the canvas container.
func (s *Session) Hovering() bool {
	return s.hovering
}

// ShowingOriginal reports whether the reference photo is displayed instead of the canvas.
func (s *Session) ShowingOriginal() bool {
	return s.showOriginal
}

// ToggleOriginal switches between the canvas and the reference photo.
// It does nothing when no photo is loaded.
func (s *Session) ToggleOriginal() {
	if s.photo.img == nil {
		return
	}
	s.SetShowOriginal(!s.showOriginal)
}

// SetShowOriginal shows or hides the reference photo. Showing the photo ends any gesture.
func (s *Session) SetShowOriginal(show bool) {
	if show && s.photo.img == nil {
		return
	}
	if show {
		s.endGesture()
	}
	s.showOriginal = show
	s.changed()
}

// Cursor returns the brush preview circle for the current pointer position.
func (s *Session) Cursor() CursorPreview {
	c := CursorPreview{
		Visible:  s.hovering && !s.showOriginal && s.tool != ToolPan,
		Position: s.pointer,
		Diameter: utils.Max(4, float64(s.brush.Size)*s.viewport.Scale),
		Fill:     s.brush.Color,
		Outline:  color.NRGBA{A: 0x80},
	}
	if s.tool == ToolEraser {
		c.Fill = Background
	}
	return c
}

// newPaintLayer allocates an opaque white layer of the given size.
func newPaintLayer(size ImageSize) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	return dst
}
