package imagegen

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

const (
	placeholderWidth  = 600
	placeholderHeight = 340
)

// 1x1 transparent PNG; the API surface degrades to this when image
// generation fails so the response stays a valid data URI.
const transparentPixelBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNk+A8AAQUBAScY42YAAAAASUVORK5CYII="

// Placeholder returns a fixed light-blue 600x340 PNG used in place of a
// scene image when generation fails in the interactive surface.
func Placeholder() []byte {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))
	fill := color.RGBA{R: 220, G: 240, B: 255, A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	var buf bytes.Buffer
	// Encoding a uniform in-memory image cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// TransparentPixel returns the fixed 1x1 transparent PNG.
func TransparentPixel() []byte {
	data, err := base64.StdEncoding.DecodeString(transparentPixelBase64)
	if err != nil {
		panic("imagegen: invalid embedded placeholder: " + err.Error())
	}
	return data
}
