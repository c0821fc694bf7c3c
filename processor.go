package colorin

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/colorin/colorin/imop"
	"github.com/colorin/colorin/utils"
)

// Processor options
type Processor struct {
	// Script is replayed over every processed line art. It is never modified,
	// so the same processor can be shared by concurrent workers.
	Script    *Script
	PhotoPath string
	BlendMode string
	View      Bounds
	// Format is the output format used when the destination is not a file.
	Format  string
	Spinner *utils.Spinner
	Preview bool
}

// NewSession creates a session holding the line art decoded from r
// and the reference photo, with the paint script already replayed.
func (p *Processor) NewSession(r io.Reader) (*Session, error) {
	s := NewSession(p.View)
	if p.BlendMode != "" {
		if err := s.SetBlendMode(p.BlendMode); err != nil {
			return nil, fmt.Errorf("%w: %s (supported: %v)", err, p.BlendMode, imop.Modes)
		}
	}
	if err := s.LoadLineArt(NewReaderSource(r)); err != nil {
		return nil, err
	}
	if p.PhotoPath != "" {
		if err := s.LoadReferencePhoto(NewFileSource(p.PhotoPath)); err != nil {
			return nil, err
		}
	}
	if p.Script != nil {
		if err := p.Script.Replay(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Process colors the line art read from r with the paint script
// and writes the flattened artwork to w.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	s, err := p.NewSession(r)
	if err != nil {
		return err
	}
	img, err := s.Compose()
	if err != nil {
		return err
	}
	return encodeImg(p, w, img)
}

// encodeImg encodes an image to a destination of type io.Writer.
// The format of a file destination is given by its extension.
func encodeImg(p *Processor, w io.Writer, img image.Image) error {
	switch w := w.(type) {
	case *os.File:
		if w != os.Stdout {
			format, err := FormatFromPath(w.Name())
			if err != nil {
				return err
			}
			return EncodeImage(w, img, format)
		}
	}
	return EncodeImage(w, img, p.Format)
}

// ShowPreview opens a window for painting the line art read from r interactively.
// The reference photo is loaded in the background. It blocks until the window is
// closed, so it must not run on the main goroutine, which belongs to app.Main.
func (p *Processor) ShowPreview(r io.Reader, sink ExportSink) error {
	q := *p
	q.PhotoPath = ""
	s, err := q.NewSession(r)
	if err != nil {
		return err
	}
	gui := NewGUI(s, sink)
	if p.PhotoPath != "" {
		gui.Load(SlotPhoto, NewFileSource(p.PhotoPath))
	}
	return gui.Run()
}
