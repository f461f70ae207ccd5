package internal

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

// texture is the component.Texture handed out by Renderer. path is empty
// for textures that are not backed by a file.
type texture struct {
	t    *sdl.Texture
	w, h int32
	path string
}

func (t *texture) Size() (w, h int32) {
	return t.w, t.h
}

func (t *texture) destroy() {
	if t.t != nil {
		t.t.Destroy()
		t.t = nil
	}
}

// Renderer draws components onto the window. Texture creation and
// destruction are serialised so collections can be loaded off the main
// goroutine.
type Renderer struct {
	mu     sync.Mutex
	window *Window
	cache  *TextureCache
}

func NewRenderer(w *Window) *Renderer {
	return &Renderer{
		window: w,
		cache:  NewTextureCache((*texture).destroy),
	}
}

func (r *Renderer) target() *sdl.Renderer {
	return r.window.Renderer
}

// LoadTexture decodes an image file. SVG files are rasterised at their
// view box size.
func (r *Renderer) LoadTexture(path string) (component.Texture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t := r.cache.Take(path); t != nil {
		t.t.SetColorMod(255, 255, 255)
		return t, nil
	}

	var (
		tex *sdl.Texture
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		tex, err = r.loadSVG(path)
	} else {
		tex, err = img.LoadTexture(r.target(), path)
	}
	if err != nil {
		return nil, fmt.Errorf("renderer: load %s: %w", path, err)
	}
	return r.wrap(tex, path)
}

func (r *Renderer) loadSVG(path string) (*sdl.Texture, error) {
	rgba, err := rasterizeSVGFile(path)
	if err != nil {
		return nil, err
	}
	return textureFromRGBA(r.target(), rgba)
}

// CreateSolid returns an opaque white texture for colour modulated
// backgrounds.
func (r *Renderer) CreateSolid(w, h int32) (component.Texture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	surface, err := sdl.CreateRGBSurfaceWithFormat(0, w, h, 32, sdl.PIXELFORMAT_ABGR8888)
	if err != nil {
		return nil, fmt.Errorf("renderer: solid surface: %w", err)
	}
	defer surface.Free()
	if err := surface.FillRect(nil, 0xffffffff); err != nil {
		return nil, fmt.Errorf("renderer: fill: %w", err)
	}
	tex, err := r.target().CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("renderer: solid texture: %w", err)
	}
	return r.wrap(tex, "")
}

// textureFromSurface uploads a surface built by the caller, such as a font
// atlas. The texture is not cached on release.
func (r *Renderer) textureFromSurface(surface *sdl.Surface) (*texture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tex, err := r.target().CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("renderer: texture from surface: %w", err)
	}
	return r.wrap(tex, "")
}

func (r *Renderer) wrap(tex *sdl.Texture, path string) (*texture, error) {
	if err := tex.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		logging.GetInternalLogger().Debug("Blend mode not supported", "path", path, "error", err)
	}
	_, _, w, h, err := tex.Query()
	if err != nil {
		tex.Destroy()
		return nil, fmt.Errorf("renderer: query %s: %w", path, err)
	}
	return &texture{t: tex, w: w, h: h, path: path}, nil
}

// Destroy releases t. File backed textures stay cached for a while.
func (r *Renderer) Destroy(t component.Texture) {
	tex, ok := t.(*texture)
	if !ok || tex == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tex.path != "" {
		r.cache.Put(tex.path, tex)
		return
	}
	tex.destroy()
}

// Close releases every cached texture.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Destroy()
}

func (r *Renderer) SetColorMod(t component.Texture, red, green, blue uint8) {
	if tex, ok := t.(*texture); ok && tex.t != nil {
		tex.t.SetColorMod(red, green, blue)
	}
}

// Copy draws t with the view's rotation, container clip and reflections.
// Only monitor 0 is drawn: the frontend opens a single window.
func (r *Renderer) Copy(t component.Texture, alpha float32, src *component.Rect, dst component.Rect, v view.Info, layoutWidth, layoutHeight int) {
	tex, ok := t.(*texture)
	if !ok || tex.t == nil || alpha <= 0 || v.Monitor != 0 {
		return
	}
	if layoutWidth <= 0 || layoutHeight <= 0 {
		return
	}
	w, h := r.window.LogicalSize()
	scaleX := float64(w) / float64(layoutWidth)
	scaleY := float64(h) / float64(layoutHeight)

	whole := component.Rect{W: tex.w, H: tex.h}
	if src != nil {
		whole = *src
	}
	for _, p := range placements(whole, dst, alpha, v, scaleX, scaleY) {
		s := sdl.Rect{X: p.src.X, Y: p.src.Y, W: p.src.W, H: p.src.H}
		d := sdl.Rect{X: p.dst.X, Y: p.dst.Y, W: p.dst.W, H: p.dst.H}
		tex.t.SetAlphaMod(uint8(p.alpha * 255))
		r.target().CopyEx(tex.t, &s, &d, float64(v.Angle), nil, p.flip)
	}
}

// placement is one draw call of a Copy.
type placement struct {
	src, dst component.Rect
	alpha    float32
	flip     sdl.RendererFlip
}

// placements computes the draw calls for one Copy in window coordinates:
// the image clipped to its container, then one mirrored copy per
// reflection edge. Reflections use the unclipped source.
func placements(src, dst component.Rect, alpha float32, v view.Info, scaleX, scaleY float64) []placement {
	if alpha > 1 {
		alpha = 1
	}
	clipped, clippedDst := clip(src, dst, v)
	out := []placement{{src: clipped, dst: scale(clippedDst, scaleX, scaleY), alpha: alpha, flip: sdl.FLIP_NONE}}

	reflectionAlpha := v.ReflectionAlpha * alpha
	if reflectionAlpha > 1 {
		reflectionAlpha = 1
	}
	for _, edge := range strings.Fields(v.Reflection) {
		r := clippedDst
		var flip sdl.RendererFlip = sdl.FLIP_VERTICAL
		switch edge {
		case "top":
			r.H = int32(float32(r.H) * v.ReflectionScale)
			r.Y = r.Y - r.H - int32(v.ReflectionDistance)
		case "bottom":
			r.Y = r.Y + r.H + int32(v.ReflectionDistance)
			r.H = int32(float32(r.H) * v.ReflectionScale)
		case "left":
			r.W = int32(float32(r.W) * v.ReflectionScale)
			r.X = r.X - r.W - int32(v.ReflectionDistance)
			flip = sdl.FLIP_HORIZONTAL
		case "right":
			r.X = r.X + r.W + int32(v.ReflectionDistance)
			r.W = int32(float32(r.W) * v.ReflectionScale)
			flip = sdl.FLIP_HORIZONTAL
		default:
			continue
		}
		out = append(out, placement{src: src, dst: scale(r, scaleX, scaleY), alpha: reflectionAlpha, flip: flip})
	}
	return out
}

// clip limits dst to the view's container, trimming src in proportion.
func clip(src, dst component.Rect, v view.Info) (component.Rect, component.Rect) {
	if v.ContainerWidth <= 0 || v.ContainerHeight <= 0 || dst.W <= 0 || dst.H <= 0 {
		return src, dst
	}
	imageScaleX := float64(src.W) / float64(dst.W)
	imageScaleY := float64(src.H) / float64(dst.H)
	cx, cy := int32(v.ContainerX), int32(v.ContainerY)
	cw, ch := int32(v.ContainerWidth), int32(v.ContainerHeight)

	s, d := src, dst
	if d.X < cx {
		d.X = cx
		d.W = dst.W + dst.X - d.X
		s.X = src.X + src.W*(d.X-dst.X)/dst.W
	}
	if dst.X+dst.W > cx+cw {
		d.W = cx + cw - d.X
	}
	if d.Y < cy {
		d.Y = cy
		d.H = dst.H + dst.Y - d.Y
		s.Y = src.Y + src.H*(d.Y-dst.Y)/dst.H
	}
	if dst.Y+dst.H > cy+ch {
		d.H = cy + ch - d.Y
	}
	if d.W < 0 {
		d.W = 0
	}
	if d.H < 0 {
		d.H = 0
	}
	s.W = int32(float64(d.W) * imageScaleX)
	s.H = int32(float64(d.H) * imageScaleY)
	return s, d
}

func scale(r component.Rect, scaleX, scaleY float64) component.Rect {
	return component.Rect{
		X: int32(float64(r.X) * scaleX),
		Y: int32(float64(r.Y) * scaleY),
		W: int32(float64(r.W) * scaleX),
		H: int32(float64(r.H) * scaleY),
	}
}
