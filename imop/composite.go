package imop

import (
	"errors"
	"image"
)

const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
)

// ErrBoundsMismatch is returned when the source and the backdrop are not of the same size.
var ErrBoundsMismatch = errors.New("source and backdrop bounds differ")

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operator.
type Composite struct {
	current string
	ops     []string
}

// NewBitmap allocates a new, fully transparent bitmap.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp initializes the composite operator with source-over as default.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops:     []string{Copy, SrcOver, DstOver},
	}
}

// Set changes the composition operator. Unknown operators are ignored.
func (op *Composite) Set(cop string) {
	for _, o := range op.ops {
		if o == cop {
			op.current = cop
			return
		}
	}
}

// Get returns the active composition operator.
func (op *Composite) Get() string {
	return op.current
}

// Draw composites the source over the backdrop (dst) into the bitmap, mixing the
// colors with the blend mode first. A nil blend stands for the normal mode.
// The three images must have the same dimensions; the bitmap can alias dst.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) error {
	sb, db := src.Bounds(), dst.Bounds()
	if sb.Size() != db.Size() {
		return ErrBoundsMismatch
	}
	if bitmap.Img == nil || bitmap.Img.Bounds().Size() != db.Size() {
		bitmap.Img = image.NewNRGBA(image.Rect(0, 0, db.Dx(), db.Dy()))
	}
	out := bitmap.Img
	dx, dy := db.Dx(), db.Dy()

	for y := 0; y < dy; y++ {
		si := src.PixOffset(sb.Min.X, sb.Min.Y+y)
		di := dst.PixOffset(db.Min.X, db.Min.Y+y)
		oi := out.PixOffset(out.Rect.Min.X, out.Rect.Min.Y+y)

		for x := 0; x < dx; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			as, ab := s[3], d[3]

			var px [4]uint8
			switch op.current {
			case Copy:
				copy(px[:], s)
			case DstOver:
				px = over(d, s, ab, as, nil, false)
			default:
				px = over(s, d, as, ab, blend, true)
			}
			copy(out.Pix[oi:oi+4], px[:])

			si += 4
			di += 4
			oi += 4
		}
	}
	return nil
}

// over composites the top pixel over the bottom one. When the top pixel is the source
// of the operation its color is first replaced by (1 - αb)·Cs + αb·B(Cb, Cs).
func over(top, bottom []uint8, at, ab uint8, blend *Blend, mix bool) [4]uint8 {
	var px [4]uint8

	ao := uint32(at) + uint32(mul(ab, 0xff-at))
	if ao == 0 {
		return px
	}
	for c := 0; c < 3; c++ {
		ct, cb := top[c], bottom[c]
		if mix {
			ct = mul(0xff-ab, ct) + mul(ab, blend.Mix(cb, ct))
		}
		// Premultiplied result, scaled back by the resulting alpha.
		pc := uint32(mul(at, ct)) + uint32(mul(mul(ab, cb), 0xff-at))
		v := (pc*0xff + ao/2) / ao
		if v > 0xff {
			v = 0xff
		}
		px[c] = uint8(v)
	}
	px[3] = uint8(ao)

	return px
}
