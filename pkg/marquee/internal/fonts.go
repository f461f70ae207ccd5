package internal

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// ErrNoFont is returned when neither the requested nor a system font can be
// opened.
var ErrNoFont = errors.New("fonts: no usable font")

// systemFonts are looked up when no font is configured.
var systemFonts = []string{"DejaVuSans.ttf", "FreeSans.ttf", "LiberationSans-Regular.ttf", "Arial.ttf"}

// atlasWidth is the widest row of glyphs in a font texture.
const atlasWidth = 1024

// glyphRanges are rasterised into every atlas: printable ASCII and Latin-1.
var glyphRanges = [][2]rune{{32, 126}, {160, 255}}

// Font is a glyph atlas of one face at one size and colour.
type Font struct {
	texture *texture
	height  int32
	ascent  int32
	glyphs  map[rune]component.Glyph
}

func (f *Font) Texture() component.Texture { return f.texture }
func (f *Font) Height() int32 { return f.height }
func (f *Font) Ascent() int32 { return f.ascent }

func (f *Font) Glyph(r rune) (component.Glyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}

// FontCache builds each font atlas once.
type FontCache struct {
	mu          sync.Mutex
	renderer    *Renderer
	defaultPath string
	fonts       map[string]*Font
}

// NewFontCache uses defaultPath for requests that name no font, or a
// system font when defaultPath is empty or missing.
func NewFontCache(renderer *Renderer, defaultPath string) *FontCache {
	if _, err := os.Stat(defaultPath); defaultPath == "" || err != nil {
		defaultPath = findSystemFont()
	}
	return &FontCache{
		renderer:    renderer,
		defaultPath: defaultPath,
		fonts:       make(map[string]*Font),
	}
}

func findSystemFont() string {
	for _, name := range systemFonts {
		if path, err := findfont.Find(name); err == nil {
			logging.GetInternalLogger().Debug("Using system font", "path", path)
			return path
		}
	}
	logging.GetInternalLogger().Warn("No system font found")
	return ""
}

func fontKey(path string, size int, c color.RGBA) string {
	return fmt.Sprintf("%s_SIZE=%d RGB=%d.%d.%d", path, size, c.R, c.G, c.B)
}

// Font implements layout.Fonts. Every monitor shares the single window's
// renderer.
func (fc *FontCache) Font(path string, size int, c color.RGBA, _ int) (component.Font, error) {
	if path == "" {
		path = fc.defaultPath
	}
	if path == "" {
		return nil, ErrNoFont
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	key := fontKey(path, size, c)
	if f, ok := fc.fonts[key]; ok {
		return f, nil
	}
	f, err := fc.build(path, size, c)
	if err != nil && path != fc.defaultPath && fc.defaultPath != "" {
		logging.GetInternalLogger().Warn("Could not open font, using default", "path", path, "error", err)
		f, err = fc.build(fc.defaultPath, size, c)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoFont, path, err)
	}
	fc.fonts[key] = f
	return f, nil
}

func (fc *FontCache) build(path string, size int, c color.RGBA) (*Font, error) {
	face, err := ttf.OpenFont(path, size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	f := &Font{
		height: int32(face.Height()),
		ascent: int32(face.Ascent()),
		glyphs: make(map[rune]component.Glyph),
	}

	var (
		runes    []rune
		surfaces []*sdl.Surface
		sizes    [][2]int32
	)
	defer func() {
		for _, s := range surfaces {
			s.Free()
		}
	}()
	fg := sdl.Color{R: c.R, G: c.G, B: c.B, A: 255}
	for _, span := range glyphRanges {
		for r := span[0]; r <= span[1]; r++ {
			surface, err := face.RenderGlyphBlended(r, fg)
			if err != nil {
				continue
			}
			metrics, err := face.GlyphMetrics(r)
			if err != nil {
				surface.Free()
				continue
			}
			runes = append(runes, r)
			surfaces = append(surfaces, surface)
			sizes = append(sizes, [2]int32{surface.W, surface.H})
			f.glyphs[r] = component.Glyph{
				MinX:    int32(metrics.MinX),
				MaxY:    int32(metrics.MaxY),
				Advance: int32(metrics.Advance),
			}
		}
	}

	rects, w, h := packAtlas(sizes, atlasWidth)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("font %s has no printable glyphs", path)
	}
	atlas, err := sdl.CreateRGBSurfaceWithFormat(0, w, h, 32, sdl.PIXELFORMAT_ABGR8888)
	if err != nil {
		return nil, err
	}
	defer atlas.Free()

	for i, r := range runes {
		rect := rects[i]
		dst := sdl.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H}
		surfaces[i].SetBlendMode(sdl.BLENDMODE_NONE)
		if err := surfaces[i].Blit(nil, atlas, &dst); err != nil {
			return nil, err
		}
		g := f.glyphs[r]
		g.Rect = rect
		f.glyphs[r] = g
	}

	f.texture, err = fc.renderer.textureFromSurface(atlas)
	if err != nil {
		return nil, err
	}
	logging.GetInternalLogger().Debug("Built font atlas", "path", path, "size", size, "glyphs", len(runes), "width", w, "height", h)
	return f, nil
}

// packAtlas lays glyph boxes out in rows no wider than maxWidth and
// returns their positions and the atlas size.
func packAtlas(sizes [][2]int32, maxWidth int32) ([]component.Rect, int32, int32) {
	rects := make([]component.Rect, len(sizes))
	var x, rowHeight, top, width int32
	for i, s := range sizes {
		if x > 0 && x+s[0] >= maxWidth {
			top += rowHeight
			width = max(width, x)
			x, rowHeight = 0, 0
		}
		rects[i] = component.Rect{X: x, Y: top, W: s[0], H: s[1]}
		x += s[0]
		rowHeight = max(rowHeight, s[1])
	}
	return rects, max(width, x), top + rowHeight
}

// Close destroys every atlas.
func (fc *FontCache) Close() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for key, f := range fc.fonts {
		f.texture.destroy()
		delete(fc.fonts, key)
	}
}
