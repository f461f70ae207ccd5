package component

import (
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

func newList(t *testing.T, conf *config.Store, points, offset int, opts ListOptions, names ...string) (*ScrollingList, *fakeHost) {
	t.Helper()
	if conf == nil {
		conf = config.New(t.TempDir())
	}
	host := newFakeHost()
	l := NewScrollingList(host, conf, fakeFont{}, opts)
	l.SetCollectionName("Arcade")
	l.SetSelectedOffset(offset)

	infos := make([]view.Info, points)
	events := make([]*animate.Events, points)
	for i := range infos {
		infos[i] = view.New()
		infos[i].X = float32(100 * i)
		events[i] = animate.NewEvents()
	}
	l.SetPoints(infos, events)
	l.SetItems(items(collection.New("Arcade"), names...))
	return l, host
}

// checkSlots verifies slot i shows items[itemIndex+i].
func checkSlots(t *testing.T, l *ScrollingList) {
	t.Helper()
	n := len(l.items)
	for i, c := range l.Slots() {
		text, ok := c.(*Text)
		if !ok {
			t.Fatalf("slot %d is %T, want *Text", i, c)
		}
		want := l.items[LoopIncrement(l.itemIndex, i, n)].Title
		if text.String() != want {
			t.Errorf("slot %d shows %q, want %q", i, text.String(), want)
		}
	}
}

func TestLoopHelpers(t *testing.T) {
	tests := []struct {
		offset, i, size int
		inc, dec        int
	}{
		{0, 1, 5, 1, 4},
		{4, 1, 5, 0, 3},
		{2, 7, 5, 4, 0},
		{-1, 0, 5, 4, 4},
		{3, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := LoopIncrement(tt.offset, tt.i, tt.size); got != tt.inc {
			t.Errorf("LoopIncrement(%d, %d, %d) = %d, want %d", tt.offset, tt.i, tt.size, got, tt.inc)
		}
		if got := LoopDecrement(tt.offset, tt.i, tt.size); got != tt.dec {
			t.Errorf("LoopDecrement(%d, %d, %d) = %d, want %d", tt.offset, tt.i, tt.size, got, tt.dec)
		}
	}

	for size := 1; size <= 7; size++ {
		for i := 0; i <= 3*size; i++ {
			for x := -2 * size; x <= 2*size; x++ {
				want := (x%size + size) % size
				if got := LoopIncrement(LoopDecrement(x, i, size), i, size); got != want {
					t.Fatalf("LoopIncrement(LoopDecrement(%d, %d, %d)) = %d, want %d", x, i, size, got, want)
				}
			}
		}
	}
}

func TestScrollingListSelectionAfterScroll(t *testing.T) {
	l, _ := newList(t, nil, 3, 1, ListOptions{}, "a", "b", "c", "d", "e")
	l.AllocateGraphicsMemory()

	if got := l.SelectedItem().Name; got != "a" {
		t.Fatalf("selected = %q, want a", got)
	}
	checkSlots(t, l)

	l.Scroll(true)
	if got := l.SelectedItem().Name; got != "b" {
		t.Errorf("selected after scroll = %q, want b", got)
	}
	checkSlots(t, l)
}

func TestScrollingListFullCycle(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}
	for _, forward := range []bool{true, false} {
		l, _ := newList(t, nil, 3, 1, ListOptions{}, names...)
		l.AllocateGraphicsMemory()
		start := l.SelectedIndex()

		for range names {
			l.Scroll(forward)
			checkSlots(t, l)
		}
		if got := l.SelectedIndex(); got != start {
			t.Errorf("forward=%v: selected %d after a full cycle, want %d", forward, got, start)
		}
	}
}

func TestScrollingListScrollAnimatesToNeighbour(t *testing.T) {
	l, _ := newList(t, nil, 3, 0, ListOptions{}, "a", "b", "c", "d")
	l.AllocateGraphicsMemory()
	l.Update(1)

	l.Scroll(true)
	l.Update(0)
	if l.IsScrollingListIdle() {
		t.Fatal("slots idle right after a scroll")
	}
	l.Update(1)
	if !l.IsScrollingListIdle() {
		t.Fatal("slots still scrolling after the period")
	}
	for i, c := range l.Slots() {
		if got, want := c.View().X, float32(100*i); got != want {
			t.Errorf("slot %d x = %v, want %v", i, got, want)
		}
	}

	for i, events := range l.tweenPoints {
		if events.Has(animate.EventMenuScroll) {
			t.Errorf("shared tween point %d was given a menuScroll animation", i)
		}
	}
	if !l.Slots()[0].Tweens().Has(animate.EventMenuScroll) {
		t.Error("slot has no private menuScroll animation")
	}
}

func TestScrollingListNoScroll(t *testing.T) {
	empty, _ := newList(t, nil, 3, 0, ListOptions{})
	empty.AllocateGraphicsMemory()
	empty.Scroll(true)
	if empty.SelectedItem() != nil {
		t.Error("empty list has a selection")
	}

	playlist, _ := newList(t, nil, 3, 0, ListOptions{PlaylistType: true}, "a", "b", "c")
	playlist.AllocateGraphicsMemory()
	playlist.Scroll(true)
	if got := playlist.SelectedItem().Name; got != "a" {
		t.Errorf("playlist list scrolled to %q", got)
	}
}

func TestScrollingListLetterJump(t *testing.T) {
	names := []string{"apple", "avocado", "banana", "cherry"}
	tests := []struct {
		name string
		from int
		up   bool
		want string
	}{
		{"up to next letter", 0, true, "banana"},
		{"up wraps around", 3, true, "apple"},
		{"down to first of previous group", 2, false, "apple"},
		{"down from single item group", 3, false, "banana"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newList(t, nil, 3, 0, ListOptions{}, names...)
			l.SetSelectedIndex(tt.from)
			if tt.up {
				l.LetterUp()
			} else {
				l.LetterDown()
			}
			if got := l.SelectedItem().Name; got != tt.want {
				t.Errorf("selected %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScrollingListLetterDownToCurrent(t *testing.T) {
	conf := config.New(t.TempDir())
	conf.Set("prevLetterSubToCurrent", "true")
	l, _ := newList(t, conf, 3, 0, ListOptions{}, "apple", "banana", "bravo", "cherry")

	l.SetSelectedIndex(2)
	l.LetterDown()
	if got := l.SelectedItem().Name; got != "banana" {
		t.Errorf("selected %q, want banana", got)
	}
}

func TestScrollingListLetterSameGroup(t *testing.T) {
	l, _ := newList(t, nil, 3, 0, ListOptions{}, "aa", "ab", "ac")
	l.SetSelectedIndex(1)
	l.LetterUp()
	l.LetterDown()
	if got := l.SelectedItem().Name; got != "ab" {
		t.Errorf("selected %q, want ab", got)
	}
}

// grouped binds one collection per group, in order, and selects the home
// collection name for the cfw searches.
func grouped(t *testing.T, conf *config.Store, home string, groups ...[]string) *ScrollingList {
	t.Helper()
	l, _ := newList(t, conf, 3, 0, ListOptions{})
	l.SetCollectionName(home)
	var all []*collection.Item
	for _, g := range groups {
		all = append(all, items(collection.New(g[0]), g[1:]...)...)
	}
	l.SetItems(all)
	return l
}

func TestScrollingListSubJump(t *testing.T) {
	groups := [][]string{
		{"Amiga", "amiga1", "amiga2"},
		{"Arcade", "arcade1", "arcade2"},
		{"Atari", "atari1"},
	}
	tests := []struct {
		name          string
		from          int
		up            bool
		prevToCurrent bool
		want          string
	}{
		{"up across a shared first letter", 0, true, false, "arcade1"},
		{"up from the middle of a group", 3, true, false, "atari1"},
		{"up wraps around", 4, true, false, "amiga1"},
		{"down to first of previous group", 3, false, false, "amiga1"},
		{"down from first of group", 2, false, false, "amiga1"},
		{"down wraps around", 0, false, false, "atari1"},
		{"down to start of current group", 3, false, true, "arcade1"},
		{"down from start of group", 2, false, true, "amiga1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := config.New(t.TempDir())
			if tt.prevToCurrent {
				conf.Set("prevLetterSubToCurrent", "true")
			}
			l := grouped(t, conf, "Main", groups...)
			l.SetSelectedIndex(tt.from)
			if tt.up {
				l.SubUp()
			} else {
				l.SubDown()
			}
			if got := l.SelectedItem().Name; got != tt.want {
				t.Errorf("selected %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScrollingListSubJumpDigits(t *testing.T) {
	l := grouped(t, nil, "Main", []string{"32X", "knuckles"}, []string{"3DO", "gex"})
	l.SubUp()
	if got := l.SelectedItem().Name; got != "gex" {
		t.Errorf("selected %q, want gex", got)
	}
}

func TestScrollingListCfwLetterSub(t *testing.T) {
	groups := [][]string{
		{"Main", "xray", "yankee"},
		{"Amiga", "amiga1", "amiga2"},
		{"Arcade", "arcade1"},
	}
	tests := []struct {
		name string
		from int
		up   bool
		want string
	}{
		{"home letter up", 0, true, "yankee"},
		{"home into subs", 1, true, "amiga1"},
		{"sub up", 2, true, "arcade1"},
		{"last sub back home", 4, true, "xray"},
		{"sub down", 4, false, "amiga1"},
		{"first sub back to home", 2, false, "yankee"},
		{"home letter down", 1, false, "xray"},
		{"first home item into subs", 0, false, "arcade1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := grouped(t, nil, "Main", groups...)
			l.SetSelectedIndex(tt.from)
			if tt.up {
				l.CfwLetterSubUp()
			} else {
				l.CfwLetterSubDown()
			}
			if got := l.SelectedItem().Name; got != tt.want {
				t.Errorf("selected %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScrollingListPaging(t *testing.T) {
	names := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	l, _ := newList(t, nil, 3, 0, ListOptions{}, names...)

	l.PageDown()
	if got := l.SelectedIndex(); got != 3 {
		t.Errorf("after PageDown = %d, want 3", got)
	}
	l.PageUp()
	l.PageUp()
	if got := l.SelectedIndex(); got != 7 {
		t.Errorf("after PageUp twice = %d, want 7", got)
	}

	for range 20 {
		l.Random()
		if idx := l.SelectedIndex(); idx < 0 || idx >= len(names) {
			t.Fatalf("random index %d out of range", idx)
		}
	}
}

func TestScrollingListScrollPeriod(t *testing.T) {
	l, _ := newList(t, nil, 3, 0, ListOptions{}, "a", "b")
	l.SetStartScrollTime(0.5)
	l.SetMinScrollTime(0.25)
	l.SetScrollAcceleration(0.125)

	l.AllocateGraphicsMemory()
	if got := l.ScrollPeriod(); got != 0.5 {
		t.Fatalf("period = %v, want 0.5", got)
	}
	want := []float64{0.375, 0.25, 0.25}
	for i, w := range want {
		l.UpdateScrollPeriod()
		if got := l.ScrollPeriod(); got != w {
			t.Errorf("step %d: period = %v, want %v", i, got, w)
		}
	}
	l.ResetScrollPeriod()
	if got := l.ScrollPeriod(); got != 0.5 {
		t.Errorf("reset period = %v, want 0.5", got)
	}

	l.FreeGraphicsMemory()
	if l.ScrollPeriod() != 0 {
		t.Error("period not cleared on free")
	}
	for i, c := range l.Slots() {
		if c != nil {
			t.Errorf("slot %d still allocated", i)
		}
	}
}

func TestScrollingListFindsArtwork(t *testing.T) {
	root := t.TempDir()
	art := filepath.Join(root, "collections", "Arcade", "medium_artwork", "artwork", "pacman.png")
	touch(t, art)

	l, host := newList(t, config.New(root), 2, 0, ListOptions{ImageType: "artwork"}, "pacman", "galaga")
	l.AllocateGraphicsMemory()

	if _, ok := l.Slots()[0].(*Image); !ok {
		t.Errorf("slot 0 is %T, want *Image", l.Slots()[0])
	}
	if text, ok := l.Slots()[1].(*Text); !ok || text.String() != "galaga" {
		t.Errorf("slot 1 is %T, want a text fallback", l.Slots()[1])
	}
	if len(host.renderer.loaded) != 1 || host.renderer.loaded[0] != art {
		t.Errorf("loaded = %v, want [%s]", host.renderer.loaded, art)
	}
}

func TestScrollingListClone(t *testing.T) {
	l, _ := newList(t, nil, 3, 1, ListOptions{ImageType: "logo"}, "a", "b", "c")
	c := l.Clone()
	if len(c.Points()) != 3 || c.Options().ImageType != "logo" {
		t.Errorf("clone lost its layout: %d points, %+v", len(c.Points()), c.Options())
	}
	if c.Size() != 0 {
		t.Error("clone should not carry items")
	}
	c.SetItems(l.Items())
	if got := c.SelectedItem().Name; got != "a" {
		t.Errorf("clone selected %q, want a", got)
	}
}
