// Command gridtest composes up to nine images into the 3x3 grid headlessly
// and writes the exported PNG.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ninegrid/internal/compose"
	"ninegrid/internal/grid"

	"github.com/disintegration/imaging"
)

func main() {
	out := flag.String("out", compose.ExportFileName, "Output PNG path")
	taint := flag.String("taint", "", "Comma-separated cell indices to mark tainted (export should then refuse)")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: gridtest [-out 3x3-grid.png] [-taint 0,4] image1 [image2 ... image9]")
		os.Exit(1)
	}
	if len(paths) > grid.CellCount {
		fmt.Fprintf(os.Stderr, "At most %d images fit the grid, got %d\n", grid.CellCount, len(paths))
		os.Exit(1)
	}

	session := grid.NewSession()
	for i, path := range paths {
		img, err := imaging.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", path, err)
			os.Exit(1)
		}
		session.SetCell(i, img, false)
		fmt.Printf("Cell %d: %s (%dx%d)\n", i, path, img.Bounds().Dx(), img.Bounds().Dy())
	}

	for _, field := range strings.Split(*taint, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		index, err := strconv.Atoi(field)
		if err != nil || index < 0 || index >= grid.CellCount {
			fmt.Fprintf(os.Stderr, "Bad taint index %q\n", field)
			os.Exit(1)
		}
		if session.CellImage(index) != nil {
			session.SetCell(index, session.CellImage(index), true)
			fmt.Printf("Cell %d: marked tainted\n", index)
		}
	}

	renderer := compose.NewRenderer()
	data, err := renderer.Export(session.Snapshot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export refused: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", *out, len(data))
}
