package collection

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// GlobalFavoritesCollection receives favorites and last played lists when
// globalFavLast is set.
const GlobalFavoritesCollection = "Favorites"

// PlayCountFile sits in Root/collections.
const PlayCountFile = "playCount.txt"

func (c *Collection) playlistOwner() string {
	if c.GlobalFavLast {
		return GlobalFavoritesCollection
	}
	return c.Name
}

// PlaylistDir is where c reads and writes its playlist files.
func (c *Collection) PlaylistDir() string {
	return filepath.Join(c.Root, "collections", c.playlistOwner(), "playlists")
}

// Save writes the favorites playlist when a save was requested. Failures
// are logged and returned; callers treat saving as best effort.
func (c *Collection) Save() error {
	if !c.SaveRequest || c.Name == "" {
		return nil
	}

	favorites, _ := c.Playlist(constants.PlaylistFavorites)
	file := filepath.Join(c.PlaylistDir(), constants.PlaylistFavorites+".txt")
	logging.GetInternalLogger().Info("Saving playlist", "file", file)

	if err := writePlaylist(file, c.playlistOwner(), favorites); err != nil {
		logging.GetInternalLogger().Error("Playlist save failed", "file", file, "error", err)
		return err
	}
	c.SaveRequest = false
	return nil
}

func writePlaylist(file, owner string, items []*Item) error {
	dir := filepath.Dir(file)
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return fmt.Errorf("collection: %s exists and is not a directory", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("collection: create %s: %w", dir, err)
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("collection: create %s: %w", file, err)
	}
	w := bufio.NewWriter(f)
	for _, item := range items {
		if item.CollectionName() == owner {
			fmt.Fprintln(w, item.Name)
		} else {
			fmt.Fprintln(w, item.Key())
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// parseKey splits a playlist line into collection and item names. Lines
// of the form _<collection>:<item> name another collection; anything else
// belongs to def.
func parseKey(line, def string) (string, string) {
	if strings.HasPrefix(line, "_") {
		if coll, name, ok := strings.Cut(line[1:], ":"); ok {
			return coll, name
		}
		return def, line[1:]
	}
	return def, line
}

// UpdateLastPlayed moves item to the front of the lastplayed playlist,
// keeps at most size entries, writes the list and bumps the play count.
// A size of 0 clears the playlist and records nothing.
func (c *Collection) UpdateLastPlayed(item *Item, size int) {
	file := filepath.Join(c.PlaylistDir(), constants.PlaylistLastPlayed+".txt")
	previous := readList(file)

	if size <= 0 {
		c.SetPlaylist(constants.PlaylistLastPlayed, nil)
		return
	}
	list := make([]*Item, 0, size)

	item.PlayCount++
	item.LastPlayed = strconv.FormatInt(time.Now().Unix(), 10)
	list = append(list, item)

	for _, line := range previous {
		if len(list) >= size {
			break
		}
		coll, name := parseKey(line, c.Name)
		for _, candidate := range c.Items {
			if candidate != item && candidate.Name == name && candidate.CollectionName() == coll {
				list = append(list, candidate)
			}
		}
	}

	if err := writePlaylist(file, c.playlistOwner(), list); err != nil {
		logging.GetInternalLogger().Warn("Could not write last played playlist", "file", file, "error", err)
	}

	sortItems(list, ItemLess(constants.PlaylistLastPlayed))
	c.SetPlaylist(constants.PlaylistLastPlayed, list)

	c.recordPlayCount(item)
}

func (c *Collection) playCountPath() string {
	return filepath.Join(c.Root, "collections", PlayCountFile)
}

type playRecord struct {
	count      int
	lastPlayed string
}

// readPlayCounts parses "<key>;<count>;<lastPlayed>" lines.
func readPlayCounts(file string) (map[string]playRecord, []string) {
	records := make(map[string]playRecord)
	var order []string
	for _, line := range readList(file) {
		key, rest, ok := strings.Cut(line, ";")
		if !ok {
			continue
		}
		count, last, ok := strings.Cut(rest, ";")
		if !ok {
			continue
		}
		n, _ := strconv.Atoi(strings.TrimSpace(count))
		if _, seen := records[key]; !seen {
			order = append(order, key)
		}
		records[key] = playRecord{count: n, lastPlayed: strings.TrimSpace(last)}
	}
	return records, order
}

func (c *Collection) recordPlayCount(item *Item) {
	file := c.playCountPath()
	records, order := readPlayCounts(file)
	key := item.Key()
	if _, ok := records[key]; !ok {
		order = append(order, key)
	}
	records[key] = playRecord{count: item.PlayCount, lastPlayed: item.LastPlayed}

	f, err := os.Create(file)
	if err != nil {
		logging.GetInternalLogger().Warn("Could not write play counts", "file", file, "error", err)
		return
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, k := range order {
		r := records[k]
		fmt.Fprintf(w, "%s;%d;%s\n", k, r.count, r.lastPlayed)
	}
	if err := w.Flush(); err != nil {
		logging.GetInternalLogger().Warn("Could not write play counts", "file", file, "error", err)
	}
}

// applyPlayCounts copies recorded play counts onto the items of c.
func (c *Collection) applyPlayCounts() {
	records, _ := readPlayCounts(c.playCountPath())
	if len(records) == 0 {
		return
	}
	for _, item := range c.Items {
		r, ok := records[item.Key()]
		if !ok {
			r, ok = records[item.Name]
		}
		if ok {
			item.PlayCount = r.count
			item.LastPlayed = r.lastPlayed
		}
	}
}

// readList returns the non-empty, comment-stripped lines of file.
func readList(file string) []string {
	f, err := os.Open(file)
	if err != nil {
		return nil
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(stripComment(scanner.Text()))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
