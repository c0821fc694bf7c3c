/*
Package colorin is a layered coloring canvas library: it lets the user paint colors
underneath a line-art image, while the line art stays on top as a crisp multiply overlay,
supports pan and zoom navigation of the artwork and produces one flattened image for export.

The package provides a command line interface, which replays a paint script over a line-art
image (or a whole directory of images) and an interactive preview window.
To check the supported commands type:

	$ colorin --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/colorin/colorin"
	)

	func main() {
		s := colorin.NewSession(colorin.DefaultView)
		if err := s.LoadLineArt(colorin.NewFileSource("lineart.png")); err != nil {
			fmt.Printf("Error loading the line art: %s", err.Error())
		}
		s.SelectColorHex("#3b82f6")
		s.HandlePointer(colorin.MouseSample(120, 80, colorin.PhaseStart))
		s.HandlePointer(colorin.MouseSample(180, 95, colorin.PhaseMove))
		s.HandlePointer(colorin.MouseSample(0, 0, colorin.PhaseEnd))

		img, err := s.Compose()
		if err != nil {
			fmt.Printf("Error composing the artwork: %s", err.Error())
		}
		_ = img
	}
*/
package colorin
