package export

import (
	"errors"

	"github.com/colorin/colorin"
)

// ErrNoDestination is returned when the sink has no destination for the requested export.
var ErrNoDestination = errors.New("no export destination configured")

// Sink sends saved artworks to the gallery and downloads to the file.
// Either of them may be missing.
type Sink struct {
	Gallery *Gallery
	File    *File
}

var _ colorin.ExportSink = (*Sink)(nil)

// Save implements colorin.ExportSink.
func (s *Sink) Save(r *colorin.Raster) error {
	if s.Gallery == nil {
		return ErrNoDestination
	}
	return s.Gallery.Save(r)
}

// Download implements colorin.ExportSink.
func (s *Sink) Download(r *colorin.Raster) error {
	if s.File == nil {
		return ErrNoDestination
	}
	return s.File.Download(r)
}
