package colorin

// Point is a position in screen space or in the pixel space of the paint layer.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is the on-screen bounding rectangle of the canvas element.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// MapToPixel converts a pointer position from screen space into the pixel space of a
// raster of rasterW x rasterH pixels displayed inside rect.
//
// The display rectangle already reflects any transformation applied to the canvas
// (viewport zoom and pan, CSS-like stretching), so the ratio between the raster and the
// displayed size corrects all of them at once. The sample is rejected when the canvas
// is not laid out yet or the raster has no size.
func MapToPixel(screen Point, rect Rect, rasterW, rasterH int) (Point, bool) {
	if rect.Width <= 0 || rect.Height <= 0 || rasterW <= 0 || rasterH <= 0 {
		return Point{}, false
	}
	scaleX := float64(rasterW) / rect.Width
	scaleY := float64(rasterH) / rect.Height

	return Point{
		X: (screen.X - rect.X) * scaleX,
		Y: (screen.Y - rect.Y) * scaleY,
	}, true
}
