package collection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/constants"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// ErrNotFound is returned when a collection has no directory.
var ErrNotFound = errors.New("collection not found")

// MetadataFilename is read from the collection directory unless
// collections.<name>.metadata.path names another file.
const MetadataFilename = "metadata.json"

// Loader builds collections from the directory tree under the frontend
// root.
type Loader struct {
	conf     *config.Store
	imported map[string]bool
}

func NewLoader(conf *config.Store) *Loader {
	return &Loader{conf: conf, imported: make(map[string]bool)}
}

func (l *Loader) root() string {
	return l.conf.AbsolutePath()
}

func (l *Loader) key(collection, suffix string) string {
	return "collections." + collection + "." + suffix
}

// ImportSettings loads collections/<name>/settings.conf once.
func (l *Loader) ImportSettings(name string) {
	if l.imported[name] {
		return
	}
	l.imported[name] = true
	file := filepath.Join(l.conf.CollectionDir(name), "settings.conf")
	if err := l.conf.ImportCollection(name, "collections."+name, file, false); err != nil {
		logging.GetInternalLogger().Warn("Could not import collection settings", "collection", name, "error", err)
	}
}

// Load builds the named collection: its items, sub-collections, playlists,
// menu entries and metadata, sorted for display.
func (l *Loader) Load(name string) (*Collection, error) {
	dir := l.conf.CollectionDir(name)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logging.GetInternalLogger().Error("Could not read collection directory", "collection", name, "dir", dir)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	l.ImportSettings(name)
	subsSplit := l.conf.BoolOr("subsSplit", false)

	c := l.build(name, "")
	c.SubsSplit = subsSplit
	l.injectMetadata(c)

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".sub" {
			continue
		}
		subName := strings.TrimSuffix(e.Name(), ".sub")
		l.ImportSettings(subName)
		sub := l.build(subName, name)
		sub.SubsSplit = subsSplit
		l.injectMetadata(sub)
		c.AddSubcollection(sub)
		c.HasSubs = true
	}

	menuSort := l.conf.BoolOr(l.key(name, "list.menuSort"), true)
	if menuSort {
		c.SortType = l.conf.StringOr(l.key(name, "list.sortType"), "")
		if !ValidSortType(c.SortType) {
			c.SortType = ""
		}
		c.SortItems()
	}

	l.addPlaylists(c)
	c.SortPlaylists()
	l.addMenuItems(c, menuSort)

	for _, item := range c.Items {
		item.LoadInfo(filepath.Join(dir, "info", item.Name+".conf"))
	}

	showParens := l.conf.BoolOr("showParenthesis", true)
	showBrackets := l.conf.BoolOr("showSquareBrackets", true)
	if !showParens || !showBrackets {
		for _, playlist := range c.PlaylistNames() {
			items, _ := c.Playlist(playlist)
			for _, item := range items {
				item.StripBrackets(!showParens, !showBrackets)
			}
		}
	}

	logging.GetInternalLogger().Info("Loaded collection", "collection", name, "items", len(c.Items), "playlists", len(c.PlaylistItems))
	return c, nil
}

// build reads the item list of name. merged names the parent collection
// when name is a sub-collection listed in <merged>/<name>.sub.
func (l *Loader) build(name, merged string) *Collection {
	c := New(name)
	c.Root = l.root()
	c.GlobalFavLast = l.conf.BoolOr("globalFavLast", false)
	c.ListPath = l.conf.CollectionPath(name)
	c.Extensions = l.conf.List(l.key(name, "list.extensions"))
	c.MetadataType = l.conf.StringOr(l.key(name, "metadata.type"), name)
	c.MetadataPath = l.conf.StringOr(l.key(name, "metadata.path"), "")

	launcher, ok := l.conf.String(l.key(name, "launcher"))
	if !ok {
		logging.GetInternalLogger().Warn("Collection has no launcher; items can be browsed but not launched", "collection", name)
	}
	c.Launcher = launcher

	l.importDirectory(c, merged)
	return c
}

func (l *Loader) importDirectory(c *Collection, merged string) {
	dir := l.conf.CollectionDir(c.Name)
	var includeOrdered []string
	include := make(map[string]bool)
	exclude := make(map[string]bool)

	showMissing := false
	if merged != "" {
		showMissing = l.conf.BoolOr(l.key(merged, "list.includeMissingItems"), false)
		for _, line := range readList(filepath.Join(l.conf.CollectionDir(merged), c.Name+".sub")) {
			if !include[line] {
				include[line] = true
				includeOrdered = append(includeOrdered, line)
			}
		}
	}
	showMissing = l.conf.BoolOr(l.key(c.Name, "list.includeMissingItems"), showMissing)
	emuarc := l.conf.BoolOr(l.key(c.Name, "list.emuarc"), false)
	romHierarchy := emuarc || l.conf.BoolOr(l.key(c.Name, "list.romHierarchy"), false)

	for _, line := range readList(filepath.Join(dir, "include.txt")) {
		if !include[line] {
			include[line] = true
			includeOrdered = append(includeOrdered, line)
		}
	}
	for _, line := range readList(filepath.Join(dir, "exclude.txt")) {
		exclude[line] = true
	}

	if showMissing {
		for _, name := range includeOrdered {
			if !exclude[name] {
				c.Add(NewItem(name, c))
			}
		}
	}

	if !showMissing || len(include) == 0 {
		for _, path := range strings.Split(c.ListPath, ";") {
			if path = strings.TrimSpace(path); path != "" {
				l.importRomDirectory(c, path, include, exclude, romHierarchy, emuarc)
			}
		}
	}

	c.applyPlayCounts()
}

func (l *Loader) importRomDirectory(c *Collection, path string, include, exclude map[string]bool, romHierarchy, emuarc bool) {
	entries, err := os.ReadDir(path)
	if err != nil {
		logging.GetInternalLogger().Info("Could not read item directory; ignore if this is a menu", "dir", path)
		return
	}

	for _, e := range entries {
		file := e.Name()
		if e.IsDir() {
			if romHierarchy {
				l.importRomDirectory(c, filepath.Join(path, file), include, exclude, romHierarchy, emuarc)
			}
			continue
		}

		base := strings.TrimSuffix(file, filepath.Ext(file))
		if len(include) > 0 && !include[base] {
			continue
		}
		if exclude[base] {
			continue
		}
		if !hasExtension(file, c.Extensions) || c.Find(base) != nil {
			continue
		}

		item := NewItem(base, c)
		item.Filepath = path + string(filepath.Separator)
		if emuarc {
			item.File = base
			item.Name = filepath.Base(path)
			item.Title = item.Name
			item.FullTitle = item.Name
		}
		c.Add(item)
	}
}

func hasExtension(file string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(file, "."+ext) {
			return true
		}
	}
	return false
}

// injectMetadata fills item fields from the collection's JSON metadata:
// an object keyed by item name whose values hold title, year,
// manufacturer, developer, genre, cloneOf, players, buttons, ctrlType,
// joyWays, rating and score.
func (l *Loader) injectMetadata(c *Collection) {
	path := c.MetadataPath
	if path == "" {
		path = filepath.Join(l.conf.CollectionDir(c.Name), MetadataFilename)
	} else {
		path = config.ConvertToAbsolutePath(l.root(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if !gjson.ValidBytes(data) {
		logging.GetInternalLogger().Warn("Invalid metadata file", "collection", c.Name, "file", path)
		return
	}

	byName := make(map[string]*Item, len(c.Items))
	for _, item := range c.Items {
		byName[item.Name] = item
	}

	matched := 0
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		item, ok := byName[key.String()]
		if !ok {
			return true
		}
		matched++
		applyMetadata(item, value)
		return true
	})
	logging.GetInternalLogger().Debug("Injected metadata", "collection", c.Name, "file", path, "matched", matched)
}

func applyMetadata(item *Item, value gjson.Result) {
	set := func(dst *string, field string) {
		if v := value.Get(field); v.Exists() {
			*dst = v.String()
		}
	}
	set(&item.Title, "title")
	set(&item.FullTitle, "title")
	if v := value.Get("fullTitle"); v.Exists() {
		item.FullTitle = v.String()
	}
	set(&item.Year, "year")
	set(&item.Manufacturer, "manufacturer")
	set(&item.Developer, "developer")
	set(&item.Genre, "genre")
	set(&item.CloneOf, "cloneOf")
	set(&item.NumberPlayers, "players")
	set(&item.NumberButtons, "buttons")
	set(&item.CtrlType, "ctrlType")
	set(&item.JoyWays, "joyWays")
	set(&item.Rating, "rating")
	set(&item.Score, "score")
}

func (l *Loader) addPlaylists(c *Collection) {
	dir := l.conf.CollectionDir(c.Name)

	excludeAll := readList(filepath.Join(dir, "exclude_all.txt"))
	if len(excludeAll) > 0 {
		var all []*Item
		for _, item := range c.Items {
			if !matchesAny(item, excludeAll, c.Name) {
				all = append(all, item)
			}
		}
		c.SetPlaylist(constants.PlaylistAll, all)
	}

	cycle := config.SplitList(l.conf.CollectionStringOr(c.Name, "cyclePlaylist", ""), ',')
	playlistItems := make(map[string]*Item)
	l.loadPlaylists(c, filepath.Join(dir, "playlists"), cycle, playlistItems)
	if c.GlobalFavLast {
		c.SetPlaylist(constants.PlaylistFavorites, nil)
		l.loadPlaylists(c, filepath.Join(l.root(), "collections", GlobalFavoritesCollection, "playlists"), cycle, playlistItems)
	}

	if len(playlistItems) == 0 {
		return
	}

	if len(cycle) > 0 {
		for _, name := range cycle {
			if item, ok := playlistItems[name]; ok {
				c.PlaylistItems = append(c.PlaylistItems, item)
			}
		}
	} else {
		names := make([]string, 0, len(playlistItems))
		for name := range playlistItems {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.PlaylistItems = append(c.PlaylistItems, playlistItems[name])
		}
	}

	if !c.HasPlaylist(constants.PlaylistLastPlayed) {
		c.SetPlaylist(constants.PlaylistLastPlayed, nil)
	}
}

// loadPlaylists reads every <name>.txt in dir as a playlist of c. Only
// playlists listed in cycle are read when cycle is set.
func (l *Loader) loadPlaylists(c *Collection, dir string, cycle []string, playlistItems map[string]*Item) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".txt")
		if len(cycle) > 0 && !contains(cycle, name) {
			continue
		}

		lines := readList(filepath.Join(dir, e.Name()))
		sort.Strings(lines)
		seen := make(map[string]bool, len(lines))
		var items []*Item
		for _, line := range lines {
			if seen[line] {
				continue
			}
			seen[line] = true
			coll, itemName := parseKey(line, c.Name)
			for _, item := range c.Items {
				if (item.Name == itemName || itemName == "*") && item.CollectionName() == coll {
					items = append(items, item)
					if name == constants.PlaylistFavorites {
						item.IsFavorite = true
					}
				}
			}
		}
		c.SetPlaylist(name, items)

		playlist := NewItem(name, c)
		playlist.Leaf = false
		playlistItems[name] = playlist
	}
}

func matchesAny(item *Item, lines []string, def string) bool {
	for _, line := range lines {
		coll, name := parseKey(line, def)
		if (item.Name == name || name == "*") && item.CollectionName() == coll {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// addMenuItems prepends the sub-collection entries listed in menu.txt, or
// one per menu/*.txt file when menu.txt is absent.
func (l *Loader) addMenuItems(c *Collection, menuSort bool) {
	dir := l.conf.CollectionDir(c.Name)
	var names []string
	if _, err := os.Stat(filepath.Join(dir, "menu.txt")); err == nil {
		names = readList(filepath.Join(dir, "menu.txt"))
	} else {
		entries, _ := os.ReadDir(filepath.Join(dir, "menu"))
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".txt" {
				names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
			}
		}
		sort.Slice(names, func(i, j int) bool { return strings.ToLower(names[i]) < strings.ToLower(names[j]) })
	}

	menu := make([]*Item, 0, len(names))
	for _, name := range names {
		item := NewItem(name, c)
		item.Leaf = false
		menu = append(menu, item)
	}
	c.MenuSort = menuSort
	c.Items = append(menu, c.Items...)
}

// LoadMenu builds the collection shown by the menu layout from
// menu/<name>.txt. A "label = action" line becomes a leaf entry whose
// CtrlType carries the action.
func (l *Loader) LoadMenu(name string) *Collection {
	menuDir := filepath.Join(l.root(), "menu")
	c := New(name)
	c.Root = l.root()
	c.ListPath = menuDir

	seen := make(map[string]bool)
	for _, line := range readList(filepath.Join(menuDir, name+".txt")) {
		if seen[line] {
			continue
		}
		seen[line] = true
		item := NewItem(line, c)
		item.Leaf = false
		if label, action, ok := strings.Cut(line, "="); ok {
			item.Name = strings.TrimSpace(label)
			item.Title = item.Name
			item.FullTitle = item.Name
			item.CtrlType = strings.TrimSpace(action)
			item.Leaf = true
		}
		c.Add(item)
	}
	return c
}

// CreateSkeleton lays out an empty collection directory with default
// settings, include/exclude lists and artwork folders.
func (l *Loader) CreateSkeleton(name string) error {
	dir := l.conf.CollectionDir(name)
	dirs := []string{
		"medium_artwork/artwork_back",
		"medium_artwork/artwork_front",
		"medium_artwork/bezel",
		"medium_artwork/logo",
		"medium_artwork/medium_back",
		"medium_artwork/medium_front",
		"medium_artwork/screenshot",
		"medium_artwork/screentitle",
		"medium_artwork/video",
		"roms",
		"system_artwork",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(d)), 0755); err != nil {
			return fmt.Errorf("collection: create %s: %w", d, err)
		}
	}

	files := map[string]string{
		"include.txt": "# Files to show in the menu, one name per line without the extension.\n" +
			"# When empty, every file in the item directory is shown.\n",
		"exclude.txt": "# Files to hide from the menu, one name per line without the extension.\n",
		"settings.conf": "#list.path = %BASE_ITEM_PATH%/%ITEM_COLLECTION_NAME%/roms\n" +
			"list.includeMissingItems = false\n" +
			"list.extensions = zip\n" +
			"list.menuSort = yes\n\n" +
			"launcher = mame\n",
		"menu.txt": "",
	}
	for file, content := range files {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("collection: write %s: %w", path, err)
		}
	}
	return nil
}
