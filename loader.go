package colorin

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Limits of the fitted display size.
const (
	maxFitWidth   = 800
	viewPadding   = 40
	maxFitHeightK = 0.7
)

// Bounds is the size of the host view, used to fit the line art.
type Bounds struct {
	Width, Height float64
}

// ImageSize is the display size of the artwork, in whole pixels.
// Both layers and the composite share it.
type ImageSize struct {
	Width, Height int
}

// Empty reports whether the size has no area.
func (s ImageSize) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect returns the rectangle {0, 0, Width, Height}.
func (s ImageSize) Rect() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// FitImageSize computes the display size of an image with the given natural size.
// The image is scaled down, keeping its aspect ratio, until it fits into
// min(800, view width - 40) by 0.7 * view height. It is never scaled up.
func FitImageSize(natural image.Point, view Bounds) ImageSize {
	w, h := float64(natural.X), float64(natural.Y)
	maxW := math.Min(maxFitWidth, view.Width-viewPadding)
	maxH := view.Height * maxFitHeightK

	if w > maxW || h > maxH {
		ratio := math.Min(maxW/w, maxH/h)
		w *= ratio
		h *= ratio
	}
	size := ImageSize{
		Width:  int(math.Floor(w)),
		Height: int(math.Floor(h)),
	}
	if size.Width < 1 {
		size.Width = 1
	}
	if size.Height < 1 {
		size.Height = 1
	}
	return size
}

// Slot identifies an image layer which can be loaded into the session.
type Slot int

const (
	SlotLineArt Slot = iota
	SlotPhoto
)

func (s Slot) String() string {
	if s == SlotPhoto {
		return "photo"
	}
	return "line-art"
}

// ImageSource provides an image identified by a token.
// Every source instance has its own token, even when two sources point to the same data.
type ImageSource interface {
	Token() string
	Decode() (image.Image, error)
}

type fileSource struct {
	token string
	path  string
}

// NewFileSource returns a source which decodes the image file at path.
func NewFileSource(path string) ImageSource {
	return &fileSource{token: uuid.NewString(), path: path}
}

func (s *fileSource) Token() string { return s.token }

func (s *fileSource) Decode() (image.Image, error) {
	return decodeImg(s.path)
}

type readerSource struct {
	token string
	r     io.Reader
}

// NewReaderSource returns a source which decodes the image from r.
// The reader is consumed by the first Decode call.
func NewReaderSource(r io.Reader) ImageSource {
	return &readerSource{token: uuid.NewString(), r: r}
}

func (s *readerSource) Token() string { return s.token }

func (s *readerSource) Decode() (image.Image, error) {
	img, _, err := image.Decode(s.r)
	if err != nil {
		return nil, fmt.Errorf("could not decode the image: %w", err)
	}
	return img, nil
}

type imageSource struct {
	token string
	img   image.Image
}

// NewImageSource wraps an already decoded image.
func NewImageSource(img image.Image) ImageSource {
	return &imageSource{token: uuid.NewString(), img: img}
}

func (s *imageSource) Token() string { return s.token }

func (s *imageSource) Decode() (image.Image, error) {
	if s.img == nil {
		return nil, fmt.Errorf("empty image source")
	}
	return s.img, nil
}

// NewBytesSource returns a source which decodes an encoded image held in memory.
func NewBytesSource(data []byte) ImageSource {
	return NewReaderSource(bytes.NewReader(data))
}

// Loaded is the outcome of decoding an image source.
type Loaded struct {
	Slot  Slot
	Token string
	Image image.Image
	Err   error
}

// LoadAsync decodes the source in a new goroutine and delivers the result on out.
// The result must be handed to Session.CompleteLoad by the goroutine owning the session.
func LoadAsync(slot Slot, src ImageSource, out chan<- Loaded) {
	go func() {
		img, err := src.Decode()
		out <- Loaded{Slot: slot, Token: src.Token(), Image: img, Err: err}
	}()
}

// SetLineArt replaces the line-art source. The paint layer is discarded and the session
// is not ready until the matching load completes. A source with the token of the
// current or pending line art is ignored. It returns the token the load must carry.
func (s *Session) SetLineArt(src ImageSource) string {
	token := src.Token()
	if token == s.lineArt.pending || (s.lineArt.pending == "" && token == s.lineArt.token) {
		return token
	}
	s.endGesture()
	s.lineArt = layer{pending: token}
	s.paint = nil
	s.stroke = nil
	s.size = ImageSize{}
	s.revision++
	s.changed()

	return token
}

// SetReferencePhoto replaces the reference photo source. A nil source removes the photo.
func (s *Session) SetReferencePhoto(src ImageSource) string {
	if src == nil {
		s.photo = layer{}
		s.showOriginal = false
		s.changed()
		return ""
	}
	token := src.Token()
	if token == s.photo.pending || (s.photo.pending == "" && token == s.photo.token) {
		return token
	}
	s.photo.pending = token
	s.changed()

	return token
}

// CompleteLoad applies a decoded image. Results which don't belong to the pending
// load of their slot are stale and ignored. It reports whether the result was applied.
func (s *Session) CompleteLoad(l Loaded) bool {
	slot := &s.lineArt
	if l.Slot == SlotPhoto {
		slot = &s.photo
	}
	if slot.pending == "" || l.Token != slot.pending {
		return false
	}
	slot.pending = ""
	if l.Err != nil || l.Image == nil {
		s.changed()
		return false
	}

	if l.Slot == SlotPhoto {
		slot.token = l.Token
		slot.img = l.Image
		s.changed()
		return true
	}

	b := l.Image.Bounds()
	size := FitImageSize(b.Size(), s.view)

	var art *image.NRGBA
	if b.Dx() == size.Width && b.Dy() == size.Height {
		art = imaging.Clone(l.Image)
	} else {
		art = imaging.Resize(l.Image, size.Width, size.Height, imaging.Lanczos)
	}
	slot.token = l.Token
	slot.img = art

	s.size = size
	s.paint = newPaintLayer(size)
	s.stroke = NewStrokeRasterizer(s.paint)
	s.revision++
	s.changed()

	return true
}

// LoadLineArt decodes the source synchronously and installs it as line art.
func (s *Session) LoadLineArt(src ImageSource) error {
	return s.load(SlotLineArt, s.SetLineArt(src), src)
}

// LoadReferencePhoto decodes the source synchronously and installs it as reference photo.
func (s *Session) LoadReferencePhoto(src ImageSource) error {
	return s.load(SlotPhoto, s.SetReferencePhoto(src), src)
}

func (s *Session) load(slot Slot, token string, src ImageSource) error {
	if slot == SlotLineArt && token == s.lineArt.token && s.lineArt.pending == "" {
		return nil
	}
	if slot == SlotPhoto && token == s.photo.token && s.photo.pending == "" {
		return nil
	}
	img, err := src.Decode()
	if err != nil {
		s.CompleteLoad(Loaded{Slot: slot, Token: token, Err: err})
		return fmt.Errorf("could not load the %s: %w", slot, err)
	}
	s.CompleteLoad(Loaded{Slot: slot, Token: token, Image: img})

	return nil
}
