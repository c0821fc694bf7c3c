package colorin

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/bmp"
)

func TestImage_FormatFromPath(t *testing.T) {
	testCases := []struct {
		path string
		want string
		err  bool
	}{
		{"out", FormatPNG, false},
		{"out.png", FormatPNG, false},
		{"out.JPG", FormatJPEG, false},
		{"dir/out.jpeg", FormatJPEG, false},
		{"out.bmp", FormatBMP, false},
		{"out.pdf", FormatPDF, false},
		{"out.webp", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatFromPath(tc.path)
			if tc.err {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestImage_EncodeImage(t *testing.T) {
	assert := assert.New(t)

	img := makePaint(ImageSize{Width: 24, Height: 16})
	decoders := map[string]func(*bytes.Buffer) (image.Image, error){
		FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		FormatJPEG: func(b *bytes.Buffer) (image.Image, error) { return jpeg.Decode(b) },
		FormatBMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
	}
	for format, decode := range decoders {
		var buf bytes.Buffer
		assert.NoError(EncodeImage(&buf, img, format))
		res, err := decode(&buf)
		assert.NoError(err)
		assert.Equal(img.Bounds().Size(), res.Bounds().Size(), format)
	}

	var buf bytes.Buffer
	assert.NoError(EncodeImage(&buf, img, FormatPDF))
	assert.True(bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	err := EncodeImage(&buf, img, "webp")
	assert.True(errors.Is(err, ErrUnsupportedFormat))
}

func TestImage_DecodeFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "art.png")
	f, err := os.Create(path)
	assert.NoError(err)
	assert.NoError(png.Encode(f, makeLineArt(12, 9)))
	assert.NoError(f.Close())

	img, err := NewFileSource(path).Decode()
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 12, 9), img.Bounds())

	txt := filepath.Join(dir, "notes.txt")
	assert.NoError(os.WriteFile(txt, []byte("plain text, definitely not pixels"), 0644))
	_, err = NewFileSource(txt).Decode()
	assert.Error(err)
}
