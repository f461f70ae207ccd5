package page

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
)

// recorder is a free component that records the events it receives.
type recorder struct {
	component.Base
	events []string
}

func newRecorder(p *Page) *recorder {
	return &recorder{Base: component.NewBase(p)}
}

func (r *recorder) TriggerEvent(event string, menuIndex int) {
	r.events = append(r.events, fmt.Sprintf("%s@%d", event, menuIndex))
}

type fakeSound struct{ plays int }

func (s *fakeSound) Play() { s.plays++ }
func (s *fakeSound) IsPlaying() bool { return false }
func (s *fakeSound) Allocate() {}
func (s *fakeSound) Free() {}

func newCollection(t *testing.T, name string, titles ...string) *collection.Collection {
	t.Helper()
	c := collection.New(name)
	c.Root = t.TempDir()
	for _, title := range titles {
		item := collection.NewItem(title, c)
		item.Title = title
		item.FullTitle = title
		c.Add(item)
	}
	return c
}

func newPage(t *testing.T) (*Page, *component.ScrollingList) {
	t.Helper()
	conf := config.New(t.TempDir())
	p := New(conf, nil, []int{640}, []int{480})
	l := component.NewScrollingList(p, conf, nil, component.ListOptions{})
	p.PushMenu(l, 0)
	return p, l
}

func TestPushPopCollection(t *testing.T) {
	p, _ := newPage(t)
	arcade := newCollection(t, "Arcade", "Asteroids", "Berzerk", "Centipede")
	shooters := newCollection(t, "Shooters", "Defender", "Galaga")

	p.PushCollection(arcade)
	if p.MenuDepth() != 1 || p.CollectionName() != "Arcade" {
		t.Fatalf("depth = %d, collection = %q", p.MenuDepth(), p.CollectionName())
	}
	if p.PlaylistName() != constants.PlaylistAll {
		t.Errorf("playlist = %q, want all", p.PlaylistName())
	}
	if p.PopCollection() {
		t.Error("popped the root collection")
	}

	p.PushCollection(shooters)
	if p.MenuDepth() != 2 || p.MenusAtDepth() != 2 {
		t.Fatalf("depth = %d, menus = %d, want a cloned second depth", p.MenuDepth(), p.MenusAtDepth())
	}
	if got := p.SelectedItem().Title; got != "Defender" {
		t.Errorf("selected = %q, want Defender", got)
	}

	if !p.PopCollection() {
		t.Fatal("PopCollection failed")
	}
	if p.MenuDepth() != 1 || p.CollectionName() != "Arcade" || p.CollectionSize() != 3 {
		t.Errorf("depth = %d, collection = %q, size = %d", p.MenuDepth(), p.CollectionName(), p.CollectionSize())
	}
	if got := p.SelectedItem().Title; got != "Asteroids" {
		t.Errorf("selected = %q, want Asteroids", got)
	}
	if shooters.Items == nil {
		t.Error("popped collection released before Cleanup")
	}

	p.Cleanup()
	if shooters.Items != nil {
		t.Error("popped collection not released by Cleanup")
	}
	if arcade.Items == nil {
		t.Error("root collection released")
	}
}

func TestTogglePlaylist(t *testing.T) {
	p, _ := newPage(t)
	arcade := newCollection(t, "Arcade", "Asteroids", "Berzerk")
	p.PushCollection(arcade)
	item := p.SelectedItem()

	p.TogglePlaylist()
	if !item.IsFavorite || !arcade.Contains(constants.PlaylistFavorites, item) {
		t.Fatal("toggle did not add the favorite")
	}
	file := filepath.Join(arcade.PlaylistDir(), constants.PlaylistFavorites+".txt")
	if _, err := os.Stat(file); err != nil {
		t.Errorf("favorites not saved: %v", err)
	}

	p.TogglePlaylist()
	if item.IsFavorite || arcade.Contains(constants.PlaylistFavorites, item) {
		t.Error("second toggle did not remove the favorite")
	}
}

func TestPlaylistNavigation(t *testing.T) {
	p, l := newPage(t)
	arcade := newCollection(t, "Arcade", "Asteroids", "Berzerk", "Centipede")
	p.PushCollection(arcade)

	p.NextPlaylist()
	if p.PlaylistName() != constants.PlaylistAll {
		t.Errorf("empty favorites selected: %q", p.PlaylistName())
	}
	p.FavPlaylist()
	if p.PlaylistName() != constants.PlaylistAll {
		t.Errorf("FavPlaylist switched to an empty playlist: %q", p.PlaylistName())
	}

	l.SetSelectedIndex(1)
	p.OnNewItemSelected()
	p.AddPlaylist()

	p.NextPlaylist()
	if p.PlaylistName() != constants.PlaylistFavorites || l.Size() != 1 {
		t.Fatalf("playlist = %q, size = %d", p.PlaylistName(), l.Size())
	}
	if nav, prev := p.FromPlaylistNav(); !nav || prev {
		t.Errorf("FromPlaylistNav = %t, %t", nav, prev)
	}

	p.PrevPlaylist()
	if p.PlaylistName() != constants.PlaylistAll || l.Size() != 3 {
		t.Fatalf("playlist = %q, size = %d", p.PlaylistName(), l.Size())
	}

	p.ReturnToRememberSelectedItem()
	if got := p.SelectedItem().Title; got != "Berzerk" {
		t.Errorf("selected = %q, want the remembered Berzerk", got)
	}
}

func TestRemoveWhileShowingFavorites(t *testing.T) {
	p, l := newPage(t)
	arcade := newCollection(t, "Arcade", "Asteroids", "Berzerk", "Centipede")
	p.PushCollection(arcade)
	for i := range 3 {
		l.SetSelectedIndex(i)
		p.OnNewItemSelected()
		p.AddPlaylist()
	}

	p.SelectPlaylist(constants.PlaylistFavorites)
	l.SetSelectedIndex(1)
	p.OnNewItemSelected()
	p.RemovePlaylist()

	if l.Size() != 2 {
		t.Fatalf("favorites list has %d items, want 2", l.Size())
	}
	if got := l.SelectedIndex(); got != 1 {
		t.Errorf("selected index = %d, want 1", got)
	}
}

func TestCyclePlaylist(t *testing.T) {
	p, _ := newPage(t)
	arcade := newCollection(t, "Arcade", "Asteroids", "Berzerk")
	arcade.SetPlaylist("shooters", arcade.Items[:1])
	p.PushCollection(arcade)

	list := []string{"shooters", "missing", constants.PlaylistAll}

	tests := []struct {
		next bool
		want string
	}{
		{true, "shooters"},
		{true, constants.PlaylistAll},
		{true, "shooters"},
		{false, constants.PlaylistAll},
	}
	for i, tt := range tests {
		if tt.next {
			p.NextCyclePlaylist(list)
		} else {
			p.PrevCyclePlaylist(list)
		}
		if got := p.PlaylistName(); got != tt.want {
			t.Errorf("step %d: playlist = %q, want %q", i, got, tt.want)
		}
	}

	p.SelectPlaylist(constants.PlaylistAll)
	p.NextCyclePlaylist([]string{"missing", "shooters"})
	if got := p.PlaylistName(); got != "shooters" {
		t.Errorf("outside the cycle: playlist = %q, want shooters", got)
	}
}

func TestBroadcastMenuIndex(t *testing.T) {
	p, _ := newPage(t)
	rec := newRecorder(p)
	p.AddComponent(rec)
	p.PushCollection(newCollection(t, "Arcade", "Asteroids"))

	p.EnterMenu()
	if len(rec.events) != 0 {
		t.Errorf("events before a selection: %v", rec.events)
	}

	p.OnNewItemSelected()
	p.PushCollection(newCollection(t, "Shooters", "Defender"))
	p.OnNewItemSelected()
	p.EnterMenu()
	p.TriggerEvent("custom")
	p.SetScrolling(ScrollForward)
	p.SetScrolling(ScrollForward)

	want := []string{
		animate.EventMenuEnter + "@1",
		"custom@1",
		animate.EventMenuScroll + "@1",
	}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
	if !p.IsMenuScrolling() {
		t.Error("not scrolling")
	}
}

func TestAddComponentLayer(t *testing.T) {
	p, _ := newPage(t)
	tests := []struct {
		layer int
		want  bool
	}{
		{0, true},
		{constants.NumLayers - 1, true},
		{constants.NumLayers, false},
		{-1, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.layer), func(t *testing.T) {
			rec := newRecorder(p)
			rec.View().Layer = tt.layer
			if got := p.AddComponent(rec); got != tt.want {
				t.Errorf("AddComponent = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestSounds(t *testing.T) {
	p, _ := newPage(t)
	load, unload, sel := &fakeSound{}, &fakeSound{}, &fakeSound{}
	p.SetSounds(Sounds{Load: load, Unload: unload, Select: sel})

	p.Start()
	p.Stop()
	p.PlaySelect()
	if load.plays != 1 || unload.plays != 1 || sel.plays != 1 {
		t.Errorf("plays = %d, %d, %d", load.plays, unload.plays, sel.plays)
	}
}

func TestHostQueries(t *testing.T) {
	p, _ := newPage(t)
	if p.LayoutWidth(0) != 640 || p.LayoutHeight(0) != 480 || p.LayoutWidth(1) != 0 {
		t.Error("layout size per monitor")
	}
	if p.NewPlayer() != nil {
		t.Error("player without a factory")
	}
	if p.ScrollOffsetIndex() != -1 {
		t.Errorf("ScrollOffsetIndex = %d without an active menu", p.ScrollOffsetIndex())
	}
	var _ component.Host = p
}
