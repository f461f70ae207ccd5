package component

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/marquee/pkg/marquee/collection"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
)

// TextFormat decorates reloadable text values.
type TextFormat struct {
	SinglePrefix  string
	SinglePostfix string
	PluralPrefix  string
	PluralPostfix string

	// Case is "uppercase", "lowercase" or empty.
	Case string
}

// counted decorates text by the grammatical number of n: 0 takes the
// single prefix and plural postfix, 1 the single forms, anything else the
// plural forms.
func (f TextFormat) counted(n int, text string) string {
	switch n {
	case 0:
		return f.SinglePrefix + text + f.PluralPostfix
	case 1:
		return f.SinglePrefix + text + f.SinglePostfix
	}
	return f.PluralPrefix + text + f.PluralPostfix
}

// decorate applies the count rule to a literal value and the case mapping.
func (f TextFormat) decorate(text string) string {
	switch text {
	case "":
		return ""
	case "0":
		text = f.counted(0, text)
	case "1":
		text = f.counted(1, text)
	default:
		text = f.counted(2, text)
	}
	switch f.Case {
	case "uppercase":
		text = cases.Upper(language.Und).String(text)
	case "lowercase":
		text = cases.Lower(language.Und).String(text)
	}
	return text
}

// pageValue renders the page-level text types. ok is false for types that
// are not page-level.
func (f TextFormat) pageValue(host Host, textType string) (string, bool) {
	switch textType {
	case "collectionName":
		return host.CollectionName(), true
	case "collectionSize":
		size := host.CollectionSize()
		return f.counted(size, strconv.Itoa(size)), true
	case "collectionIndex":
		index := host.SelectedIndex()
		return f.counted(index, strconv.Itoa(index+1)), true
	case "collectionIndexSize":
		index := host.SelectedIndex()
		return f.counted(index, strconv.Itoa(index+1)+"/"+strconv.Itoa(host.CollectionSize())), true
	}
	return "", false
}

// itemValue is the raw value of an item-level text type.
func itemValue(item *collection.Item, textType, playlistName string) string {
	switch textType {
	case "isFavorite":
		if item.IsFavorite {
			return "yes"
		}
		return "no"
	case "firstLetter":
		if r := firstRune(item.FullTitle); r != 0 {
			return string(r)
		}
		return ""
	}
	if isPlaylistType(textType) {
		return playlistName
	}
	v, _ := fieldValue(item, textType)
	return v
}

// configured reads collections.<name>.<textType>.
func configured(conf *config.Store, name, textType string) string {
	if conf == nil {
		return ""
	}
	return conf.StringOr("collections."+name+"."+textType, "")
}
