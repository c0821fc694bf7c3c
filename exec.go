package colorin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/colorin/colorin/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Supported source files.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

// Ops holds the source and destination of a run.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about the coloring process and the generated image.
type result struct {
	path string
	err  error
}

// Execute colors the source line art (a file, a directory, an URL or the standard input)
// and writes the artwork to the destination. Directories are processed concurrently.
func (p *Processor) Execute(op *Ops) error {
	if p.Spinner == nil {
		msg := fmt.Sprintf("%s %s",
			utils.DecorateText("🖍 COLORIN", utils.StatusMessage),
			utils.DecorateText("⇢ painting the line art...", utils.DefaultMessage),
		)
		p.Spinner = utils.NewSpinner(msg, time.Millisecond*80, true)
	}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(context.Background(), op.Src)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		defer os.Remove(src.Name())
		src.Close()
		op.Src = src.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	quit := make(chan struct{})
	defer func() {
		signal.Stop(signalChan)
		close(quit)
	}()
	go func() {
		select {
		case <-signalChan:
			p.Spinner.RestoreCursor()
			os.Exit(1)
		case <-quit:
		}
	}()

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		var wg sync.WaitGroup
		// Read destination file or directory.
		if _, err := os.Stat(op.Dst); err != nil {
			if err := os.MkdirAll(op.Dst, 0755); err != nil {
				return fmt.Errorf("unable to create the destination directory: %w", err)
			}
		}
		p.Preview = false

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		// Process recursively the image files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan struct{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, validExtensions)

		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(p, op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		var failed int
		for res := range ch {
			if res.err != nil {
				failed++
			}
			op.printOpStatus(res.path, res.err)
		}

		if err := <-errc; err != nil {
			return err
		}
		if failed > 0 {
			err = fmt.Errorf("%d image(s) could not be processed", failed)
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		if op.Dst != op.PipeName {
			if _, err := FormatFromPath(op.Dst); err != nil {
				return err
			}
		}
		err = op.process(p, op.Src, op.Dst)
		op.printOpStatus(op.Dst, err)

	default:
		return fmt.Errorf("unsupported source: %s", op.Src)
	}

	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return err
}

// consumer reads the path names from the paths channel and calls the processor against the source image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		err := op.process(p, src, destPath(dest, src))

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// destPath returns the output path of a source file processed in directory mode.
// Sources without an encoder for their format are written as png.
func destPath(dir, src string) string {
	base := filepath.Base(src)
	if _, err := FormatFromPath(base); err != nil {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}
	return filepath.Join(dir, base)
}

// process calls the processor over the source image and returns the error in case exists.
func (op *Ops) process(p *Processor, in, out string) error {
	successMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("🖍 COLORIN", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the artwork has been painted successfully ✔", utils.SuccessMessage),
	)
	errorMsg := fmt.Sprintf("%s %s %s",
		utils.DecorateText("🖍 COLORIN", utils.StatusMessage),
		utils.DecorateText("painting failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	// Start the progress indicator.
	p.Spinner.Start()

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		p.Spinner.Stop(errorMsg)
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
	}

	// Stop the progress indicator.
	if err != nil {
		p.Spinner.Stop(errorMsg)
	} else {
		p.Spinner.Stop(successMsg)
	}

	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the coloring process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s%s",
			utils.DecorateText(fmt.Sprintf("\nError painting %s", filepath.Base(fname)), utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe artwork has been saved as: %s %s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if isValidExtension(strings.ToLower(filepath.Ext(f.Name())), srcExts) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	return utils.Contains(extensions, ext)
}
