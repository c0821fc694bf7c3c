package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"gioui.org/app"
	"github.com/colorin/colorin"
	"github.com/colorin/colorin/export"
	"github.com/colorin/colorin/imop"
	"github.com/colorin/colorin/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┬  ┌─┐┬─┐┬┌┐┌
│  │ ││  │ │├┬┘││││
└─┘└─┘┴─┘└─┘┴└─┴┘└┘

Paint color under line art, keep the lines crisp.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source line art: file, directory, URL or - for stdin")
	destination = flag.String("out", pipeName, "Destination: file, directory or - for stdout")
	strokes     = flag.String("strokes", "", "JSON paint script replayed over the line art")
	photo       = flag.String("photo", "", "Reference photo shown with the 'original' operation")
	blend       = flag.String("blend", imop.Multiply, "Line-art blend mode: "+strings.Join(imop.Modes, ", "))
	format      = flag.String("format", colorin.FormatPNG, "Output format used with stdout: png, jpeg, bmp or pdf")
	viewWidth   = flag.Float64("vw", colorin.DefaultView.Width, "View width used to fit the line art")
	viewHeight  = flag.Float64("vh", colorin.DefaultView.Height, "View height used to fit the line art")
	gallery     = flag.String("gallery", "", "Gallery directory for the saved artworks (preview mode)")
	download    = flag.String("download", export.DefaultName, "Download file name (preview mode), .pdf for a printable page")
	preview     = flag.Bool("preview", false, "Open an interactive window for painting")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	proc := &colorin.Processor{
		PhotoPath: *photo,
		BlendMode: *blend,
		Format:    *format,
		View:      colorin.Bounds{Width: *viewWidth, Height: *viewHeight},
		Preview:   *preview,
	}
	if *strokes != "" {
		script, err := colorin.LoadScript(*strokes)
		if err != nil {
			log.Fatalf(utils.DecorateText("%v", utils.ErrorMessage), err)
		}
		proc.Script = script
	}

	if *preview {
		runPreview(proc)
		return
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("🖍 COLORIN", utils.StatusMessage),
		utils.DecorateText("is painting the line art...", utils.DefaultMessage))
	proc.Spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	op := &colorin.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}
	if err := proc.Execute(op); err != nil {
		log.Fatalf(
			utils.DecorateText("\nError painting the line art: %s", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
}

// runPreview opens the interactive window. The Gio event loop runs in its own
// goroutine, because app.Main takes over the main OS thread.
func runPreview(proc *colorin.Processor) {
	sink := &export.Sink{File: export.NewFile(".", *download)}
	if *gallery != "" {
		g, err := export.NewGallery(*gallery)
		if err != nil {
			log.Fatalf(utils.DecorateText("%v", utils.ErrorMessage), err)
		}
		sink.Gallery = g
	}

	src := os.Stdin
	if *source != pipeName {
		f, err := openSource(*source)
		if err != nil {
			log.Fatalf(utils.DecorateText("%v", utils.ErrorMessage), err)
		}
		defer f.Close()
		src = f
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal(utils.DecorateText("`-` should be used with a pipe for stdin", utils.ErrorMessage))
	}

	go func() {
		if err := proc.ShowPreview(src, sink); err != nil {
			log.Fatalf(utils.DecorateText("%v", utils.ErrorMessage), err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// openSource opens a local line-art file, downloading it first when it's an URL.
func openSource(path string) (*os.File, error) {
	if !utils.IsValidUrl(path) {
		return os.Open(path)
	}
	f, err := utils.DownloadImage(context.Background(), path)
	if err != nil {
		return nil, err
	}
	// The open descriptor keeps the content readable after the removal.
	os.Remove(f.Name())
	return f, nil
}
