// Command shapepath prints the shapes stored in a layout file with their
// regenerated SVG paths and measurements.
package main

import (
	"flag"
	"fmt"
	"os"

	"layout-maker/internal/curve"
	"layout-maker/internal/dimension"
	"layout-maker/internal/project"
)

func main() {
	regen := flag.Bool("regen", false, "Regenerate derived fields and rewrite the file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: shapepath [-regen] <file.layout>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	f, err := project.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load layout: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Layout: %s (version %d)\n", f.Name, f.Version)

	if f.Room != nil {
		printShape("Room", *f.Room)
	} else {
		fmt.Println("\nRoom: none")
	}
	for i, wall := range f.Walls {
		printShape(fmt.Sprintf("Wall %d", i+1), wall)
	}
	fmt.Printf("\nElements: %d\n", len(f.Elements))

	if *regen {
		if err := f.Save(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to rewrite layout: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Rewrote", path)
	}
}

func printShape(title string, s project.Shape) {
	fmt.Printf("\n%s: %s\n", title, s.Name)
	fmt.Printf("  Vertices:  %d (closed=%v)\n", len(s.Verts), s.Closed)
	fmt.Printf("  Size:      %.2f x %.2f m\n", s.Width, s.Height)
	fmt.Printf("  Perimeter: %.2f m\n", dimension.Perimeter(s.Verts, s.Closed))

	curved := 0
	for _, c := range curve.NormalizeList(s.Curves, len(s.Verts)) {
		if !c.IsNone() {
			curved++
		}
	}
	if curved > 0 {
		fmt.Printf("  Curved edges: %d\n", curved)
	}
	fmt.Printf("  Path:      %s\n", s.SVGPath)
}
