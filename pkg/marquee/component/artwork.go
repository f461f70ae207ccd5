package component

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
)

const commonCollection = "_common"

// artSource locates artwork directories. Layout mode searches below the
// active layout; common mode replaces the collection with _common.
type artSource struct {
	conf       *config.Store
	layoutMode bool
	commonMode bool
}

func (a artSource) collectionBase(collection string) (string, bool) {
	name := collection
	if a.commonMode {
		name = commonCollection
	}
	switch {
	case a.layoutMode:
		layout := a.conf.StringOr("layout", "")
		return filepath.Join(a.conf.AbsolutePath(), "layouts", layout, "collections", name), true
	case a.commonMode:
		return filepath.Join(a.conf.AbsolutePath(), "collections", name), true
	}
	return "", false
}

// mediaDir is the medium_artwork directory for mediaType.
func (a artSource) mediaDir(collection, mediaType string) string {
	if base, ok := a.collectionBase(collection); ok {
		return filepath.Join(base, "medium_artwork", mediaType)
	}
	return a.conf.MediaPath(collection, mediaType, false)
}

// systemDir is the system_artwork directory of collection.
func (a artSource) systemDir(collection, mediaType string) string {
	if base, ok := a.collectionBase(collection); ok {
		return filepath.Join(base, "system_artwork")
	}
	return a.conf.MediaPath(collection, mediaType, true)
}

// hasMedia reports whether a video type is configured.
func hasMedia(mediaType string) bool {
	return mediaType != "" && mediaType != "null"
}

// fieldValue is the item attribute an artwork or text type names, matched
// case-insensitively. Developer falls back to manufacturer.
func fieldValue(item *collection.Item, mediaType string) (string, bool) {
	switch strings.ToLower(mediaType) {
	case "numberbuttons":
		return item.NumberButtons, true
	case "numberplayers":
		return item.NumberPlayers, true
	case "year":
		return item.Year, true
	case "title":
		return item.Title, true
	case "developer":
		if item.Developer == "" {
			return item.Manufacturer, true
		}
		return item.Developer, true
	case "manufacturer":
		return item.Manufacturer, true
	case "genre":
		return item.Genre, true
	case "ctrltype":
		return item.CtrlType, true
	case "joyways", "numberjoyways":
		return item.JoyWays, true
	case "rating":
		return item.Rating, true
	case "score":
		return item.Score, true
	case "playcount":
		return strconv.Itoa(item.PlayCount), true
	case "lastplayed":
		return item.LastPlayed, true
	}
	return "", false
}

func isPlaylistType(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(mediaType), "playlist")
}

// artNames is the ordered list of file names tried for a list slot.
func artNames(item *collection.Item, imageType string) []string {
	names := []string{item.Name, item.FullTitle}
	if item.CloneOf != "" {
		names = append(names, item.CloneOf)
	}
	if v, ok := fieldValue(item, imageType); ok && !strings.EqualFold(imageType, "playcount") && !strings.EqualFold(imageType, "lastplayed") {
		names = append(names, v)
	}
	if isPlaylistType(imageType) {
		names = append(names, item.Name)
	}
	return append(names, "default")
}

// safeName replaces path separators so a value can name a file.
func safeName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name)
}
