package internal

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/veandco/go-sdl2/sdl"
)

// defaultSVGSize is used when an SVG has no view box.
const defaultSVGSize = 256

func rasterizeSVGFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rasterizeSVG(f)
}

// rasterizeSVG draws an SVG document at its view box size.
func rasterizeSVG(r io.Reader) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = defaultSVGSize, defaultSVGSize
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}

// textureFromRGBA uploads rgba through a surface owned by SDL.
func textureFromRGBA(r *sdl.Renderer, rgba *image.RGBA) (*sdl.Texture, error) {
	b := rgba.Bounds()
	// ABGR8888 is R, G, B, A in memory on little endian machines.
	surface, err := sdl.CreateRGBSurfaceWithFormat(0, int32(b.Dx()), int32(b.Dy()), 32, sdl.PIXELFORMAT_ABGR8888)
	if err != nil {
		return nil, fmt.Errorf("svg: surface: %w", err)
	}
	defer surface.Free()

	if err := surface.Lock(); err != nil {
		return nil, fmt.Errorf("svg: lock: %w", err)
	}
	pixels := surface.Pixels()
	pitch := int(surface.Pitch)
	rowBytes := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		copy(pixels[y*pitch:y*pitch+rowBytes], rgba.Pix[y*rgba.Stride:y*rgba.Stride+rowBytes])
	}
	surface.Unlock()

	return r.CreateTextureFromSurface(surface)
}
