package colorin

import (
	"errors"
	"image"
	"image/color"
	"log"
	"strconv"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/colorin/colorin/utils"
)

const (
	maxScreenX = 1366
	maxScreenY = 768

	// padding around the canvas container, in pixels.
	padding = 20
)

var defaultBkgColor = color.NRGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}

// pointerTypes lists the pointer events the canvas container listens to.
const pointerTypes = pointer.Press | pointer.Drag | pointer.Release |
	pointer.Move | pointer.Enter | pointer.Leave | pointer.Cancel

// Gui is the basic struct containing all of the information needed for the UI operation.
// It hosts a session in a Gio window: it translates the window input into session
// operations and renders the session state on every frame.
type Gui struct {
	cfg struct {
		window struct {
			w     float64
			h     float64
			title string
		}
		color struct {
			background color.NRGBA
		}
	}
	session *Session
	sink    ExportSink
	loads   chan Loaded
	ctx     layout.Context

	// Only the primary pointer drives the gestures.
	primary struct {
		id      pointer.ID
		pressed bool
	}
	canvas struct {
		revision uint64
		src      paint.ImageOp
		ready    bool
	}
	photo struct {
		img image.Image
		src paint.ImageOp
	}
	palette int
}

// NewGUI initializes the Gio interface hosting the session.
// Saved and downloaded artworks are sent to the sink.
func NewGUI(s *Session, sink ExportSink) *Gui {
	gui := &Gui{
		session: s,
		sink:    sink,
		loads:   make(chan Loaded, 1),
	}
	gui.cfg.color.background = defaultBkgColor
	gui.cfg.window.title = "Colorin"
	gui.cfg.window.w, gui.cfg.window.h = gui.getWindowSize()

	return gui
}

// getWindowSize returns the window size fitting the artwork, within the screen limits.
func (g *Gui) getWindowSize() (float64, float64) {
	size := g.session.Size()
	w := utils.Clamp(float64(size.Width+2*padding), 480, maxScreenX)
	h := utils.Clamp(float64(size.Height+2*padding), 360, maxScreenY)

	return w, h
}

// Load decodes the source in the background and installs it into the slot
// once the window event loop receives the result.
func (g *Gui) Load(slot Slot, src ImageSource) {
	if slot == SlotPhoto {
		g.session.SetReferencePhoto(src)
	} else {
		g.session.SetLineArt(src)
	}
	LoadAsync(slot, src, g.loads)
}

// Run is the core method of the Gio GUI application.
// It processes the window events until the window is closed.
func (g *Gui) Run() error {
	w := app.NewWindow(app.Title(g.cfg.window.title), app.Size(
		unit.Dp(g.cfg.window.w),
		unit.Dp(g.cfg.window.h),
	))
	g.session.OnChange(func(uint64) { w.Invalidate() })

	var ops op.Ops
	for {
		select {
		case e := <-w.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				g.ctx = layout.NewContext(&ops, e)
				g.handlePointer()
				g.draw()
				e.Frame(g.ctx.Ops)
			case key.Event:
				if e.State != key.Press {
					break
				}
				if e.Name == key.NameEscape {
					w.Perform(system.ActionClose)
					break
				}
				g.handleKey(e)
			case system.DestroyEvent:
				return e.Err
			}
		case res := <-g.loads:
			if res.Err != nil {
				log.Printf(utils.DecorateText("could not load the %s: %v", utils.ErrorMessage), res.Slot, res.Err)
			}
			g.session.CompleteLoad(res)
		}
	}
}

// handlePointer converts the queued pointer events into session pointer samples.
func (g *Gui) handlePointer() {
	for _, ev := range g.ctx.Events(g) {
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		p := Pt(float64(e.Position.X), float64(e.Position.Y))

		switch e.Type {
		case pointer.Enter:
			g.session.PointerEnter(p)
		case pointer.Leave:
			g.primary.pressed = false
			g.session.PointerLeave()
		case pointer.Move:
			g.session.HandlePointer(MouseSample(p.X, p.Y, PhaseMove))
		case pointer.Press:
			if g.primary.pressed {
				continue
			}
			g.primary.id, g.primary.pressed = e.PointerID, true
			g.dispatch(e.Source, p, PhaseStart)
		case pointer.Drag:
			if g.primary.pressed && e.PointerID == g.primary.id {
				g.dispatch(e.Source, p, PhaseMove)
			}
		case pointer.Release, pointer.Cancel:
			if g.primary.pressed && e.PointerID == g.primary.id {
				g.primary.pressed = false
				g.dispatch(e.Source, p, PhaseEnd)
			}
		}
	}
}

func (g *Gui) dispatch(src pointer.Source, p Point, phase Phase) {
	if src != pointer.Touch {
		g.session.HandlePointer(MouseSample(p.X, p.Y, phase))
		return
	}
	var touches []Point
	if phase != PhaseEnd {
		touches = []Point{p}
	}
	if ps, ok := TouchSample(touches, phase); ok {
		g.session.HandlePointer(ps)
	}
}

// handleKey maps the keyboard shortcuts to session operations.
func (g *Gui) handleKey(e key.Event) {
	s := g.session
	switch e.Name {
	case "B":
		s.SelectTool(ToolBrush)
	case "E":
		s.SelectTool(ToolEraser)
	case "M", "H":
		s.SelectTool(ToolPan)
	case "R":
		s.ResetView()
	case "+", "=":
		s.ZoomIn()
	case "-":
		s.ZoomOut()
	case "[":
		s.SetBrushSize(s.Brush().Size - 1)
	case "]":
		s.SetBrushSize(s.Brush().Size + 1)
	case "O":
		s.ToggleOriginal()
	case "P":
		g.palette = (g.palette + 1) % len(palette)
		s.SelectColorHex(palette[g.palette])
	case "S":
		g.export("saved to the gallery", s.Save)
	case "D":
		g.export("downloaded", s.Download)
	default:
		// The digits select the first colors of the palette.
		if n, err := strconv.Atoi(e.Name); err == nil && n >= 1 && n <= 9 {
			g.palette = n - 1
			s.SelectColorHex(palette[g.palette])
		}
	}
}

func (g *Gui) export(done string, fn func(ExportSink) error) {
	if g.sink == nil {
		log.Println(utils.DecorateText("no export destination configured", utils.ErrorMessage))
		return
	}
	if !g.session.Ready() {
		return
	}
	if err := fn(g.sink); err != nil {
		if errors.Is(err, ErrCompose) {
			log.Printf(utils.DecorateText("could not export the artwork: %v", utils.ErrorMessage), err)
		} else {
			log.Printf(utils.DecorateText("export failed: %v", utils.ErrorMessage), err)
		}
		return
	}
	log.Println(utils.DecorateText("the artwork has been "+done+" ✔", utils.SuccessMessage))
}

// draw renders the canvas container: the composite (or the reference photo)
// through the viewport transform, then the brush cursor on top.
func (g *Gui) draw() {
	gtx := g.ctx
	paint.Fill(gtx.Ops, g.cfg.color.background)

	size := g.session.Size()
	if size.Empty() {
		return
	}
	defer op.Offset(image.Pt(padding, padding)).Push(gtx.Ops).Pop()

	area := clip.Rect{Max: image.Pt(size.Width, size.Height)}.Push(gtx.Ops)
	pointer.InputOp{
		Tag:   g,
		Grab:  g.session.Capturing(),
		Types: pointerTypes,
	}.Add(gtx.Ops)
	paint.Fill(gtx.Ops, Background)

	tr := op.Affine(g.session.Viewport().Transform()).Push(gtx.Ops)
	if g.session.ShowingOriginal() {
		g.drawPhoto(size)
	} else {
		g.drawCanvas()
	}
	tr.Pop()

	g.drawCursor(g.session.Cursor())
	area.Pop()
}

// drawCanvas paints the composite, composing it again only when the layers changed.
func (g *Gui) drawCanvas() {
	if !g.canvas.ready || g.canvas.revision != g.session.Revision() {
		img, err := g.session.Compose()
		if err != nil {
			return
		}
		g.canvas.src = paint.NewImageOp(img)
		g.canvas.revision = g.session.Revision()
		g.canvas.ready = true
	}
	g.canvas.src.Add(g.ctx.Ops)
	paint.PaintOp{}.Add(g.ctx.Ops)
}

// drawPhoto paints the reference photo contained in the artwork area.
func (g *Gui) drawPhoto(size ImageSize) {
	img := g.session.ReferencePhoto()
	if img == nil {
		return
	}
	if g.photo.img != img {
		g.photo.img = img
		g.photo.src = paint.NewImageOp(img)
	}
	b := img.Bounds()
	k := utils.Min(float32(size.Width)/float32(b.Dx()), float32(size.Height)/float32(b.Dy()))
	offset := f32.Pt(
		(float32(size.Width)-float32(b.Dx())*k)/2,
		(float32(size.Height)-float32(b.Dy())*k)/2,
	)
	fit := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(k, k)).Offset(offset)

	defer op.Affine(fit).Push(g.ctx.Ops).Pop()
	g.photo.src.Add(g.ctx.Ops)
	paint.PaintOp{}.Add(g.ctx.Ops)
}
