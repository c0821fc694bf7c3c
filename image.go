package colorin

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/colorin/colorin/utils"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Supported output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatPDF  = "pdf"
)

// ErrUnsupportedFormat is returned for an output format which cannot be encoded.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// pdfMargin is the page margin of the PDF export in millimeters.
const pdfMargin = 10.0

// decodeImg decodes an image file to type image.Image
func decodeImg(src string) (image.Image, error) {
	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	defer file.Close()

	ctype, err := utils.DetectContentType(file.Name())
	if err != nil {
		return nil, err
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%s is not an image file", src)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode the image file: %w", err)
	}
	return img, nil
}

// FormatFromPath returns the output format matching the file extension.
// A missing extension defaults to png.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// EncodeImage encodes the image into w using the requested format.
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "", FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG, "jpg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatPDF:
		return encodePDF(w, img)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// encodePDF writes a single A4 page with the image centred and scaled to fit the margins.
// The page orientation follows the orientation of the image.
func encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	b := img.Bounds()
	orientation := "P"
	if b.Dx() > b.Dy() {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetCreator("colorin", true)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("artwork", opts, &buf)

	pw, ph := pdf.GetPageSize()
	maxW, maxH := pw-2*pdfMargin, ph-2*pdfMargin
	ratio := utils.Min(maxW/float64(b.Dx()), maxH/float64(b.Dy()))
	iw, ih := float64(b.Dx())*ratio, float64(b.Dy())*ratio

	pdf.ImageOptions("artwork", (pw-iw)/2, (ph-ih)/2, iw, ih, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("could not create the pdf: %w", err)
	}
	return pdf.Output(w)
}
