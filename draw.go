package colorin

import (
	"math"

	"gioui.org/f32"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// drawCursor draws the brush preview circle at the pointer position.
func (g *Gui) drawCursor(c CursorPreview) {
	if !c.Visible {
		return
	}
	center := g.point(c.Position)
	radius := float32(c.Diameter / 2)

	paint.FillShape(g.ctx.Ops, c.Fill, clip.Outline{Path: g.circle(center, radius)}.Op())
	paint.FillShape(g.ctx.Ops, c.Outline, clip.Stroke{Path: g.circle(center, radius), Width: 1}.Op())
}

// circle returns the outline of a circle.
func (g *Gui) circle(center f32.Point, radius float32) clip.PathSpec {
	var path clip.Path
	path.Begin(g.ctx.Ops)
	path.MoveTo(f32.Pt(center.X-radius, center.Y))
	// Both foci in the center make the ellipse a circle.
	path.Arc(f32.Pt(radius, 0), f32.Pt(radius, 0), 2*math.Pi)
	path.Close()

	return path.End()
}

// point converts a session point to Gio f32.Point.
func (g *Gui) point(p Point) f32.Point {
	return f32.Point{
		X: float32(p.X),
		Y: float32(p.Y),
	}
}
