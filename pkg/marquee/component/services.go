package component

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

// Rect is a pixel rectangle in layout coordinates.
type Rect struct {
	X, Y, W, H int32
}

// Texture is a GPU texture owned by a Renderer.
type Texture interface {
	Size() (w, h int32)
}

// Renderer creates, draws and destroys textures. Implementations
// serialise texture creation and destruction.
type Renderer interface {
	LoadTexture(path string) (Texture, error)
	CreateSolid(w, h int32) (Texture, error)
	Destroy(t Texture)
	SetColorMod(t Texture, r, g, b uint8)

	// Copy draws src of t (the whole texture when src is nil) into dst,
	// scaled from the layout size to the monitor and transformed by v.
	Copy(t Texture, alpha float32, src *Rect, dst Rect, v view.Info, layoutWidth, layoutHeight int)
}

// Glyph locates one character in a font atlas.
type Glyph struct {
	Rect    Rect
	MinX    int32
	MaxY    int32
	Advance int32
}

// Font is a rasterised glyph atlas.
type Font interface {
	Texture() Texture
	Height() int32
	Ascent() int32
	Glyph(r rune) (Glyph, bool)
}

// Player plays one media file into a texture.
type Player interface {
	Play(path string, loops int) error
	Stop()
	Update(dt float64)
	Texture() Texture
	Size() (w, h int32)
	IsPlaying() bool
	SetVolume(volume float32)

	Pause()
	IsPaused() bool
	Restart()
	Skip(seconds float64)
	SkipPercent(percent float64)
}

// Host is the page as seen by its components.
type Host interface {
	Renderer() Renderer

	// NewPlayer returns nil when media playback is unavailable.
	NewPlayer() Player

	LayoutWidth(monitor int) int
	LayoutHeight(monitor int) int

	IsMenuScrolling() bool
	IsPaused() bool
	IsLocked() bool

	// ItemByOffset is the item offset positions from the selection.
	ItemByOffset(offset int) *collection.Item
	SelectedIndex() int
	CollectionName() string
	CollectionSize() int
	PlaylistName() string
}
