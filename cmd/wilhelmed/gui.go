package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gobuffalo/packr"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	log "github.com/sirupsen/logrus"

	"github.com/algonents/wilhelm-renderer/scene"
)

// Global variables for GTK and resources
var (
	Builder         *gtk.Builder
	StaticResources packr.Box

	document *scene.Document
)

func init() {
	StaticResources = packr.NewBox("./resources")
}

func buildInterface() (*gtk.Application, error) {
	app, err := gtk.ApplicationNew("org.algonents.wilhelmed", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return nil, err
	}

	app.Connect("startup", func() {
		log.Info("Application starting")
	})

	app.Connect("activate", func() {
		log.Info("Application activating")

		if *scenePath != "" {
			loaded, err := openDocument(*scenePath)
			if err != nil {
				log.Fatal(err)
			}
			document = loaded
		}

		resource, err := StaticResources.FindString("wilhelmed.glade")
		if err != nil {
			log.Fatal(err)
		}

		builder, err := gtk.BuilderNew()
		if err != nil {
			log.Fatal(err)
		}
		if err := builder.AddFromString(resource); err != nil {
			log.Fatal(err)
		}
		Builder = builder

		win, err := mainWindow(builder)
		if err != nil {
			log.Fatal(err)
		}
		if err := connectCanvas(builder); err != nil {
			log.Fatal(err)
		}
		if err := updateStatus(builder); err != nil {
			log.Error(err)
		}

		win.SetDefaultSize(800, 600)
		win.ShowAll()
		app.AddWindow(win)
	})

	app.Connect("shutdown", func() {
		log.Info("Application shutting down")
	})
	return app, nil
}

func openDocument(path string) (*scene.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scene.Decode(f)
}

func mainWindow(builder *gtk.Builder) (*gtk.Window, error) {
	obj, err := builder.GetObject("mainWindow")
	if err != nil {
		return nil, err
	}
	win, ok := obj.(*gtk.Window)
	if !ok {
		return nil, errors.New("failed to cast Object from builder to Window")
	}
	return win, nil
}

func connectCanvas(builder *gtk.Builder) error {
	obj, err := builder.GetObject("canvas")
	if err != nil {
		return err
	}
	canvas, ok := obj.(*gtk.DrawingArea)
	if !ok {
		return errors.New("failed to cast Object from builder to DrawingArea")
	}
	canvas.Connect("draw", onDraw)
	return nil
}

func updateStatus(builder *gtk.Builder) error {
	obj, err := builder.GetObject("statusBar")
	if err != nil {
		return err
	}
	status, ok := obj.(*gtk.Statusbar)
	if !ok {
		return errors.New("failed to cast Object from builder to Statusbar")
	}

	contextID := status.GetContextId("document")
	if document == nil {
		status.Push(contextID, "No document open")
		return nil
	}
	status.Push(contextID, fmt.Sprintf("%s, %d shapes", *scenePath, len(document.Nodes)))
	return nil
}
