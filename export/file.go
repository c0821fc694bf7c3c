package export

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/colorin/colorin"
)

// DefaultName is the file name used for downloads.
const DefaultName = "colorin-art.png"

// File writes the downloaded artwork to a fixed path. The format follows the file
// extension, so a name ending in .pdf produces a printable page.
type File struct {
	Dir  string
	Name string
}

// NewFile returns a download destination inside dir. An empty name means DefaultName.
func NewFile(dir, name string) *File {
	if name == "" {
		name = DefaultName
	}
	return &File{Dir: dir, Name: name}
}

// Path returns the destination path of the downloads.
func (f *File) Path() string {
	return filepath.Join(f.Dir, f.Name)
}

// Download writes the artwork, replacing any previous download.
func (f *File) Download(r *colorin.Raster) error {
	format, err := colorin.FormatFromPath(f.Name)
	if err != nil {
		return err
	}
	data := r.Data
	if format != r.Format || data == nil {
		var buf bytes.Buffer
		if err := colorin.EncodeImage(&buf, r.Image, format); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	if f.Dir != "" {
		if err := os.MkdirAll(f.Dir, 0755); err != nil {
			return err
		}
	}
	return writeFile(f.Path(), data)
}

// PDF writes the image as a single A4 page, centred inside the margins.
func PDF(w io.Writer, img image.Image) error {
	return colorin.EncodeImage(w, img, colorin.FormatPDF)
}
