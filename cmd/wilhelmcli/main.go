package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/algonents/wilhelm-renderer/scene"
)

var (
	input  = flag.String("in", "", "Shape document to read (defaults to stdin)")
	output = flag.String("out", "", "SVG file to write (defaults to stdout)")
)

func main() {
	flag.Parse()

	reader := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		reader = f
	}

	document, err := scene.Decode(reader)
	if err != nil {
		panic(err)
	}

	if svg, err := document.ToSVG(); err == nil {
		if *output == "" {
			fmt.Printf("%s", svg)
		} else if err := os.WriteFile(*output, svg, 0o644); err != nil {
			panic(err)
		}
	} else {
		panic(err)
	}
}
