package colorin

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa is the control point distance of a cubic Bézier approximating a quarter circle.
const kappa = 0.5522847498

// Pen describes the style of a stroke.
type Pen struct {
	Color color.NRGBA
	Size  int
}

// StrokeRasterizer renders freehand strokes onto a paint layer.
// Every pointer sample produces one straight segment with round caps,
// which also gives round joins between consecutive segments.
type StrokeRasterizer struct {
	layer  *image.NRGBA
	pen    Pen
	last   Point
	active bool
	moved  bool

	ras vector.Rasterizer
}

// NewStrokeRasterizer binds a new rasterizer to the paint layer.
func NewStrokeRasterizer(layer *image.NRGBA) *StrokeRasterizer {
	return &StrokeRasterizer{layer: layer}
}

// Active reports whether a stroke is in progress.
func (r *StrokeRasterizer) Active() bool {
	return r.active
}

// Start begins a new stroke at p. Nothing is drawn yet.
func (r *StrokeRasterizer) Start(p Point, pen Pen) {
	r.pen = pen
	r.last = p
	r.active = true
	r.moved = false
}

// Move draws a segment from the last recorded point to p.
func (r *StrokeRasterizer) Move(p Point) {
	if !r.active {
		return
	}
	r.segment(r.last, p)
	r.last = p
	r.moved = true
}

// End finishes the stroke. A stroke which never moved leaves a round dot.
func (r *StrokeRasterizer) End() {
	if r.active && !r.moved {
		r.segment(r.last, r.last)
	}
	r.active = false
	r.moved = false
}

// segment rasterizes the capsule between a and b into the layer.
func (r *StrokeRasterizer) segment(a, b Point) {
	if r.layer == nil || r.pen.Size <= 0 {
		return
	}
	radius := float64(r.pen.Size) / 2

	bbox := image.Rect(
		int(math.Floor(math.Min(a.X, b.X)-radius))-1,
		int(math.Floor(math.Min(a.Y, b.Y)-radius))-1,
		int(math.Ceil(math.Max(a.X, b.X)+radius))+1,
		int(math.Ceil(math.Max(a.Y, b.Y)+radius))+1,
	).Intersect(r.layer.Bounds())
	if bbox.Empty() {
		return
	}

	r.ras.Reset(bbox.Dx(), bbox.Dy())
	r.ras.DrawOp = draw.Over

	// Path coordinates are relative to the bounding box.
	origin := Pt(float64(bbox.Min.X), float64(bbox.Min.Y))
	capsule(&r.ras, a.Sub(origin), b.Sub(origin), radius)

	r.ras.Draw(r.layer, bbox, image.NewUniform(r.pen.Color), image.Point{})
}

// capsule adds to the rasterizer the outline of a segment with round caps.
// A degenerate segment becomes a full circle.
func capsule(ras *vector.Rasterizer, a, b Point, radius float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		v := Pt(radius, 0)
		n := Pt(0, radius)
		ras.MoveTo(float32(a.X+v.X), float32(a.Y+v.Y))
		quarter(ras, a, v, n)
		quarter(ras, a, n, neg(v))
		quarter(ras, a, neg(v), neg(n))
		quarter(ras, a, neg(n), v)
		ras.ClosePath()
		return
	}
	u := Pt(dx/length*radius, dy/length*radius)
	n := Pt(-u.Y, u.X)

	ras.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
	ras.LineTo(float32(b.X+n.X), float32(b.Y+n.Y))
	quarter(ras, b, n, u)
	quarter(ras, b, u, neg(n))
	ras.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
	quarter(ras, a, neg(n), neg(u))
	quarter(ras, a, neg(u), n)
	ras.ClosePath()
}

// quarter adds a quarter circle around c going from c+v0 to c+v1.
// The pen is expected to be at c+v0.
func quarter(ras *vector.Rasterizer, c, v0, v1 Point) {
	ras.CubeTo(
		float32(c.X+v0.X+kappa*v1.X), float32(c.Y+v0.Y+kappa*v1.Y),
		float32(c.X+v1.X+kappa*v0.X), float32(c.Y+v1.Y+kappa*v0.Y),
		float32(c.X+v1.X), float32(c.Y+v1.Y),
	)
}

func neg(p Point) Point {
	return Point{X: -p.X, Y: -p.Y}
}
