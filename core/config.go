// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "github.com/algonents/wilhelm-renderer/gfx"

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Window   WindowConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the interval between input polls,
	// in milliseconds
	EventPollDelay int
}

// WindowConfiguration is used to configure the window surface
type WindowConfiguration struct {
	Title  string
	Width  int
	Height int

	Resizable bool
	VSync     bool
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	ScreenWidth  int
	ScreenHeight int

	// Background paints the frame before anything draws
	Background gfx.Color
}
