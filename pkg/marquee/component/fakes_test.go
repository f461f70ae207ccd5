package component

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

type fakeTexture struct {
	path string
	w, h int32
}

func (t *fakeTexture) Size() (int32, int32) { return t.w, t.h }

type fakeRenderer struct {
	loaded    []string
	destroyed int
	copies    int
}

func (r *fakeRenderer) LoadTexture(path string) (Texture, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.New("missing")
	}
	r.loaded = append(r.loaded, path)
	return &fakeTexture{path: path, w: 40, h: 20}, nil
}

func (r *fakeRenderer) CreateSolid(w, h int32) (Texture, error) {
	return &fakeTexture{w: w, h: h}, nil
}

func (r *fakeRenderer) Destroy(Texture) { r.destroyed++ }
func (r *fakeRenderer) SetColorMod(Texture, uint8, uint8, uint8) {}

func (r *fakeRenderer) Copy(Texture, float32, *Rect, Rect, view.Info, int, int) {
	r.copies++
}

// fakeFont is a monospace atlas: every rune is 10 wide and 20 high.
type fakeFont struct{}

func (fakeFont) Texture() Texture { return &fakeTexture{w: 256, h: 256} }
func (fakeFont) Height() int32 { return 20 }
func (fakeFont) Ascent() int32 { return 16 }

func (fakeFont) Glyph(r rune) (Glyph, bool) {
	return Glyph{Rect: Rect{W: 10, H: 20}, MaxY: 16, Advance: 10}, true
}

type fakeHost struct {
	renderer  *fakeRenderer
	items     []*collection.Item
	selected  int
	scrolling bool
	paused    bool
	locked    bool
	coll      string
	playlist  string
}

func newFakeHost(items ...*collection.Item) *fakeHost {
	return &fakeHost{renderer: &fakeRenderer{}, items: items, coll: "Arcade", playlist: "all"}
}

func (h *fakeHost) Renderer() Renderer { return h.renderer }
func (h *fakeHost) NewPlayer() Player { return nil }
func (h *fakeHost) LayoutWidth(int) int { return 640 }
func (h *fakeHost) LayoutHeight(int) int { return 480 }
func (h *fakeHost) IsMenuScrolling() bool { return h.scrolling }
func (h *fakeHost) IsPaused() bool { return h.paused }
func (h *fakeHost) IsLocked() bool { return h.locked }
func (h *fakeHost) SelectedIndex() int { return h.selected }
func (h *fakeHost) CollectionName() string { return h.coll }
func (h *fakeHost) CollectionSize() int { return len(h.items) }
func (h *fakeHost) PlaylistName() string { return h.playlist }

func (h *fakeHost) ItemByOffset(offset int) *collection.Item {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[LoopIncrement(h.selected, offset, len(h.items))]
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func items(c *collection.Collection, names ...string) []*collection.Item {
	out := make([]*collection.Item, len(names))
	for i, name := range names {
		item := collection.NewItem(name, c)
		item.Title = name
		item.FullTitle = name
		out[i] = item
	}
	c.Add(out...)
	return out
}
