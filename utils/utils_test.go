package utils

import (
	"bytes"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_MinMaxClamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, Min(1, 2))
	assert.Equal(1, Min(2, 1))
	assert.Equal(2, Max(1, 2))
	assert.Equal(2.5, Max(2.5, -1))
	assert.Equal(1.0, Clamp(0.2, 1, 5))
	assert.Equal(5.0, Clamp(7.3, 1, 5))
	assert.Equal(2.4, Clamp(2.4, 1, 5))
	assert.True(Contains([]string{"a", "b"}, "b"))
	assert.False(Contains([]string{"a", "b"}, "c"))
}

func TestUtils_HexToRGBA(t *testing.T) {
	testCases := []struct {
		hex  string
		want color.NRGBA
		err  bool
	}{
		{hex: "#ec4899", want: color.NRGBA{R: 0xec, G: 0x48, B: 0x99, A: 0xff}},
		{hex: "ffffff", want: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{hex: "#f00", want: color.NRGBA{R: 0xff, A: 0xff}},
		{hex: "#12345", err: true},
		{hex: "#zzzzzz", err: true},
	}

	for _, tc := range testCases {
		t.Run(tc.hex, func(t *testing.T) {
			c, err := HexToRGBA(tc.hex)
			if tc.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, c)
			assert.Equal(t, tc.want, mustHex(t, RGBAToHex(c)))
		})
	}
}

func mustHex(t *testing.T, hex string) color.NRGBA {
	t.Helper()
	c, err := HexToRGBA(hex)
	assert.NoError(t, err)
	return c
}

func TestUtils_FormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(125*time.Second))
	assert.Equal(t, "1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
}

func TestUtils_DecorateText(t *testing.T) {
	assert.Equal(t, ErrorColor+"boom"+DefaultColor, DecorateText("boom", ErrorMessage))
	assert.Equal(t, "plain", DecorateText("plain", MessageType(42)))
}

func TestUtils_SpinnerConcurrentStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("working", time.Millisecond, false)
	s.writer = &buf

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Start()
			time.Sleep(2 * time.Millisecond)
			s.Stop("done\n")
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, strings.Count(buf.String(), "done\n"))
	assert.False(t, s.running)
}
