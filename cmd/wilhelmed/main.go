package main

import (
	"flag"
	"os"

	"github.com/gotk3/gotk3/gtk"
	log "github.com/sirupsen/logrus"
)

var scenePath = flag.String("scene", "", "Shape document to open")

func init() {
	gtk.Init(&os.Args)
}

func main() {
	flag.Parse()

	app, err := buildInterface()
	if err != nil {
		log.Fatal(err)
	}
	// Flags are consumed already, GTK only gets the program name.
	os.Exit(app.Run(os.Args[:1]))
}
