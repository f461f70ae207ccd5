package collection

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// Item is one selectable entry: a game, a sub-collection or a playlist.
// Items are owned by their Collection; other holders borrow the pointer.
type Item struct {
	Name      string
	Filepath  string
	File      string
	Title     string
	FullTitle string

	Year          string
	Manufacturer  string
	Developer     string
	Genre         string
	CloneOf       string
	NumberPlayers string
	NumberButtons string
	CtrlType      string
	JoyWays       string
	Rating        string
	Score         string

	PlayCount  int
	LastPlayed string
	IsFavorite bool

	// Leaf items launch; non-leaf items open a collection or playlist.
	Leaf bool

	Collection *Collection

	info map[string]string
}

// NewItem returns a leaf item named name owned by c.
func NewItem(name string, c *Collection) *Item {
	return &Item{
		Name:       name,
		Title:      name,
		FullTitle:  name,
		LastPlayed: "0",
		Leaf:       true,
		Collection: c,
	}
}

// Filename is the base name of Filepath.
func (i *Item) Filename() string {
	return filepath.Base(i.Filepath)
}

func (i *Item) LowercaseFullTitle() string {
	return strings.ToLower(i.FullTitle)
}

// CollectionName is the name of the owning collection, or "".
func (i *Item) CollectionName() string {
	if i.Collection == nil {
		return ""
	}
	return i.Collection.Name
}

// Key identifies the item across collections in playlist files.
func (i *Item) Key() string {
	return "_" + i.CollectionName() + ":" + i.Name
}

var sortTypes = map[string]bool{
	"year":          true,
	"manufacturer":  true,
	"developer":     true,
	"genre":         true,
	"numberplayers": true,
	"numberbuttons": true,
	"ctrltype":      true,
	"joyways":       true,
	"rating":        true,
	"score":         true,
	"lastplayed":    true,
}

// ValidSortType reports whether name is a metadata field playlists can be
// ordered by.
func ValidSortType(name string) bool {
	return sortTypes[strings.ToLower(name)]
}

// SortDescending reports whether sortType orders high to low.
func SortDescending(sortType string) bool {
	return strings.ToLower(sortType) == "lastplayed"
}

// MetaAttribute returns the lowercase value of a sort field.
func (i *Item) MetaAttribute(sortType string) string {
	var v string
	switch strings.ToLower(sortType) {
	case "year":
		v = i.Year
	case "manufacturer":
		v = i.Manufacturer
	case "developer":
		v = i.Developer
	case "genre":
		v = i.Genre
	case "numberplayers":
		v = i.NumberPlayers
	case "numberbuttons":
		v = i.NumberButtons
	case "ctrltype":
		v = i.CtrlType
	case "joyways":
		v = i.JoyWays
	case "rating":
		v = i.Rating
	case "score":
		v = i.Score
	case "lastplayed":
		v = i.LastPlayed
	}
	return strings.ToLower(v)
}

// SetInfo stores a free-form attribute. The first value for a key wins.
func (i *Item) SetInfo(key, value string) {
	if i.info == nil {
		i.info = make(map[string]string)
	}
	if _, ok := i.info[key]; !ok {
		i.info[key] = value
	}
}

func (i *Item) GetInfo(key string) (string, bool) {
	v, ok := i.info[key]
	return v, ok
}

// LoadInfo reads "key = value" lines from path into the item's info.
// A missing file is ignored.
func (i *Item) LoadInfo(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := stripComment(scanner.Text())
		if strings.TrimSpace(text) == "" {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			logging.GetInternalLogger().Warn("Missing an assignment operator", "file", path, "line", line)
			continue
		}
		i.SetInfo(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}

// StripBrackets removes every "(...)" group (parens) or "[...]" group
// (brackets) from the title.
func (i *Item) StripBrackets(parens, brackets bool) {
	if parens {
		i.Title = stripGroups(i.Title, '(', ')')
	}
	if brackets {
		i.Title = stripGroups(i.Title, '[', ']')
	}
}

func stripGroups(s string, open, close byte) string {
	for {
		start := strings.IndexByte(s, open)
		if start < 0 {
			return s
		}
		end := strings.IndexByte(s[start:], close)
		if end < 0 {
			return s
		}
		s = s[:start] + s[start+end+1:]
	}
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimRight(line, "\r")
}
