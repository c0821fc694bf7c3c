package colorin

import (
	"bytes"
	"errors"
	"fmt"
	"image"
)

// Raster is a flattened artwork together with its encoded form.
type Raster struct {
	Image  *image.NRGBA
	Data   []byte
	Format string
}

// ExportSink receives the exported artwork.
type ExportSink interface {
	Save(*Raster) error
	Download(*Raster) error
}

// Export composes the artwork and encodes it as PNG.
func (s *Session) Export() (*Raster, error) {
	img, err := s.Compose()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, FormatPNG); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompose, err)
	}
	return &Raster{Image: img, Data: buf.Bytes(), Format: FormatPNG}, nil
}

// Save exports the artwork to the gallery side of the sink.
// Nothing happens when no line art is loaded yet.
func (s *Session) Save(sink ExportSink) error {
	return s.export(sink.Save)
}

// Download exports the artwork to the download side of the sink.
// Nothing happens when no line art is loaded yet.
func (s *Session) Download(sink ExportSink) error {
	return s.export(sink.Download)
}

func (s *Session) export(fn func(*Raster) error) error {
	r, err := s.Export()
	if errors.Is(err, ErrNotReady) {
		return nil
	}
	if err != nil {
		return err
	}
	return fn(r)
}
