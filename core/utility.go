// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/algonents/wilhelm-renderer/gfx"
)

// GetPixels redraws an image onto a tightly packed RGBA canvas and
// returns the raw pixels in upload order.
func GetPixels(img image.Image) []uint8 {
	bounds := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)
	return canvas.Pix
}

// LoadTexture decodes an image file and uploads it as an RGBA
// texture. The caller registers the decoders it needs and owns the
// returned handle. The image dimensions come back with it.
func LoadTexture(device gfx.Device, path string) (gfx.Texture, int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("image.Decode(%s): %s", path, err)
	}

	bounds := img.Bounds()
	texture := device.CreateTexture()
	device.BindTexture(texture)
	device.TexImageRGBA(bounds.Dx(), bounds.Dy(), GetPixels(img))
	return texture, bounds.Dx(), bounds.Dy(), nil
}
