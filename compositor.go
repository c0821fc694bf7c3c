package colorin

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/colorin/colorin/imop"
	"github.com/disintegration/imaging"
)

var (
	// ErrNotReady is returned when an operation needs a paint layer which doesn't exist yet.
	ErrNotReady = errors.New("paint layer not initialized")
	// ErrCompose is returned when the flattened image cannot be produced.
	ErrCompose = errors.New("could not compose the artwork")
)

// Compose flattens the paint layer and the line art into a new image of the given size.
// The paint layer is copied as it is, flattened over the background wherever it is
// not opaque, then the line art, scaled to size, is merged on top
// with the blend mode. With the multiply mode the white areas of the line art leave
// the paint untouched and its dark strokes stay dark over any color.
// The layers are never modified.
func Compose(paint *image.NRGBA, lineArt image.Image, size ImageSize, mode string) (*image.NRGBA, error) {
	if paint == nil {
		return nil, ErrNotReady
	}
	if lineArt == nil {
		return nil, fmt.Errorf("%w: missing line-art layer", ErrCompose)
	}
	if size.Empty() || paint.Bounds().Size() != size.Rect().Size() {
		return nil, fmt.Errorf("%w: paint layer is %v, expected %dx%d",
			ErrCompose, paint.Bounds().Size(), size.Width, size.Height)
	}

	blend := imop.NewBlend()
	if err := blend.Set(mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompose, err)
	}

	var art *image.NRGBA
	if b := lineArt.Bounds(); b.Dx() == size.Width && b.Dy() == size.Height {
		art = imaging.Clone(lineArt)
	} else {
		art = imaging.Resize(lineArt, size.Width, size.Height, imaging.Lanczos)
	}

	bitmap := imop.NewBitmap(size.Rect())
	dst := bitmap.Img
	bkg := image.NewNRGBA(size.Rect())
	draw.Draw(bkg, bkg.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	// Copy the paint layer, fill whatever it leaves transparent with the background,
	// then merge the line art on top.
	op := imop.InitOp()
	for _, step := range []struct {
		op    string
		src   *image.NRGBA
		blend *imop.Blend
	}{
		{imop.Copy, paint, nil},
		{imop.DstOver, bkg, nil},
		{imop.SrcOver, art, blend},
	} {
		op.Set(step.op)
		if err := op.Draw(bitmap, step.src, dst, step.blend); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCompose, err)
		}
	}
	return bitmap.Img, nil
}

// Compose flattens the session's layers into a new image.
func (s *Session) Compose() (*image.NRGBA, error) {
	if !s.Ready() {
		return nil, ErrNotReady
	}
	return Compose(s.paint, s.lineArt.img, s.size, s.blend)
}
