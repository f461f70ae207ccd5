// Package config is the flat key/value property store every part of the
// frontend reads its settings from. Files are "key = value" lines with
// '#' comments; importing a file under a prefix namespaces its keys, so
// collections/<name>/settings.conf becomes collections.<name>.*.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/ini.v1"

	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// ErrNotFound is returned by Import when a required file is missing.
var ErrNotFound = errors.New("config: file not found")

// Placeholders substituted in values.
const (
	CollectionNameVar = "%ITEM_COLLECTION_NAME%"
	BaseMediaPathVar  = "%BASE_MEDIA_PATH%"
	BaseItemPathVar   = "%BASE_ITEM_PATH%"
)

// Store holds every imported property. It is safe for concurrent use: the
// init goroutine imports collection settings while the splash page reads.
type Store struct {
	root string

	mu         sync.RWMutex
	properties map[string]string
}

// New returns an empty store rooted at root, the directory holding
// settings.conf, collections/ and layouts/.
func New(root string) *Store {
	return &Store{root: root, properties: make(map[string]string)}
}

// AbsolutePath is the frontend root directory.
func (s *Store) AbsolutePath() string {
	return s.root
}

// Import reads file and stores each key under prefix.
func (s *Store) Import(prefix, file string, mustExist bool) error {
	return s.ImportCollection("", prefix, file, mustExist)
}

// ImportCollection is Import with %ITEM_COLLECTION_NAME% replaced by
// collection in every value.
func (s *Store) ImportCollection(collection, prefix, file string, mustExist bool) error {
	if _, err := os.Stat(file); err != nil {
		if mustExist {
			logging.GetInternalLogger().Error("Could not open required config file", "file", file, "error", err)
			return fmt.Errorf("%w: %s", ErrNotFound, file)
		}
		logging.GetInternalLogger().Debug("Optional config file not present", "file", file)
		return nil
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines:  true,
		SpaceBeforeInlineComment: true,
		PreserveSurroundedQuote:  true,
		KeyValueDelimiters:       "=",
	}, file)
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", file, err)
	}

	if prefix != "" {
		prefix += "."
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, section := range f.Sections() {
		// Files are flat; a bracketed header only scopes the keys below it.
		sectionPrefix := prefix
		if name := section.Name(); name != ini.DefaultSection {
			sectionPrefix += name + "."
		}
		for _, key := range section.Keys() {
			value := strings.TrimSpace(key.Value())
			if collection != "" {
				value = strings.ReplaceAll(value, CollectionNameVar, collection)
			}
			s.properties[sectionPrefix+strings.TrimSpace(key.Name())] = value
		}
	}
	logging.GetInternalLogger().Info("Imported config file", "file", file, "prefix", strings.TrimSuffix(prefix, "."))
	return nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	s.properties[key] = value
	s.mu.Unlock()
}

// Raw returns the stored value with no substitution.
func (s *Store) Raw(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.properties[key]
	return v, ok
}

// Exists reports whether key is set.
func (s *Store) Exists(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.properties[key]
	return ok
}

// PrefixExists reports whether any key starts with prefix + ".".
func (s *Store) PrefixExists(prefix string) bool {
	search := prefix + "."
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k := range s.properties {
		if strings.HasPrefix(k, search) {
			return true
		}
	}
	return false
}

// ChildKeys returns the distinct next path segments below parent, sorted.
func (s *Store) ChildKeys(parent string) []string {
	search := parent + "."
	seen := make(map[string]struct{})
	var out []string
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k := range s.properties {
		if !strings.HasPrefix(k, search) {
			continue
		}
		crumb := strings.TrimPrefix(k, search)
		if i := strings.IndexByte(crumb, '.'); i >= 0 {
			crumb = crumb[:i]
		}
		if _, ok := seen[crumb]; ok {
			continue
		}
		seen[crumb] = struct{}{}
		out = append(out, crumb)
	}
	sort.Strings(out)
	return out
}

// String returns key with the base path placeholders expanded.
func (s *Store) String(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.properties[key]
	if !ok {
		return "", false
	}
	collections := filepath.Join(s.root, "collections")
	baseMedia, baseItem := collections, collections
	if m, ok := s.properties["baseMediaPath"]; ok {
		baseMedia = m
	}
	if i, ok := s.properties["baseItemPath"]; ok {
		baseItem = i
	}
	v = strings.ReplaceAll(v, BaseMediaPathVar, baseMedia)
	v = strings.ReplaceAll(v, BaseItemPathVar, baseItem)
	return v, true
}

// Int parses key as an integer. A malformed value reads as 0.
func (s *Store) Int(key string) (int, bool) {
	v, ok := s.String(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		f, ferr := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if ferr != nil {
			return 0, true
		}
		n = int(f)
	}
	return n, true
}

// Float parses key as a float.
func (s *Store) Float(key string) (float64, bool) {
	v, ok := s.String(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, true
	}
	return f, true
}

// Bool is true for "yes", "true" and "on".
func (s *Store) Bool(key string) (bool, bool) {
	v, ok := s.String(key)
	if !ok {
		return false, false
	}
	return ParseBool(v), true
}

// ParseBool is the truthiness rule used for every boolean setting.
func ParseBool(v string) bool {
	switch strings.TrimSpace(v) {
	case "yes", "true", "on":
		return true
	}
	return false
}

func (s *Store) StringOr(key, def string) string {
	if v, ok := s.String(key); ok {
		return v
	}
	return def
}

func (s *Store) IntOr(key string, def int) int {
	if v, ok := s.Int(key); ok {
		return v
	}
	return def
}

func (s *Store) FloatOr(key string, def float64) float64 {
	if v, ok := s.Float(key); ok {
		return v
	}
	return def
}

func (s *Store) BoolOr(key string, def bool) bool {
	if v, ok := s.Bool(key); ok {
		return v
	}
	return def
}

// CollectionStringOr prefers collections.<name>.<key> over the global key.
func (s *Store) CollectionStringOr(collection, key, def string) string {
	if v, ok := s.String("collections." + collection + "." + key); ok {
		return v
	}
	return s.StringOr(key, def)
}

// List splits a comma separated value, trimming each entry and dropping
// empties.
func (s *Store) List(key string) []string {
	v, ok := s.String(key)
	if !ok {
		return nil
	}
	return SplitList(v, ',')
}

// SplitList splits v on sep, trimming entries and dropping empties.
func SplitList(v string, sep rune) []string {
	var out []string
	for _, part := range strings.Split(v, string(sep)) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ConvertToAbsolutePath joins path onto prefix unless it is already
// absolute (rooted, or carrying a drive letter).
func ConvertToAbsolutePath(prefix, path string) string {
	if filepath.IsAbs(path) || (len(path) > 1 && path[1] == ':') || strings.HasPrefix(path, "/") {
		return path
	}
	return filepath.Join(prefix, path)
}

// PathAbsolute reads key as a path relative to the root.
func (s *Store) PathAbsolute(key string) (string, bool) {
	v, ok := s.String(key)
	if !ok {
		return "", false
	}
	return ConvertToAbsolutePath(s.root, v), true
}

// MediaPath resolves the artwork directory for mediaType in collection.
// With system set it is the collection's system_artwork directory.
func (s *Store) MediaPath(collection, mediaType string, system bool) string {
	key := "collections." + collection + ".media." + mediaType
	if system {
		key = "collections." + collection + ".media.system_artwork"
	}
	if v, ok := s.PathAbsolute(key); ok {
		return v
	}

	base, ok := s.PathAbsolute("baseMediaPath")
	if !ok {
		base = filepath.Join(s.root, "collections")
	}
	if system {
		return filepath.Join(base, collection, "system_artwork")
	}
	return filepath.Join(base, collection, "medium_artwork", mediaType)
}

// CollectionPath resolves the item (rom) directory list for name. The
// value may hold several directories separated by ';'.
func (s *Store) CollectionPath(name string) string {
	if v, ok := s.PathAbsolute("collections." + name + ".list.path"); ok {
		return v
	}
	if base, ok := s.PathAbsolute("baseItemPath"); ok {
		return filepath.Join(base, name)
	}
	return filepath.Join(s.root, "collections", name, "roms")
}

// CollectionDir is the settings directory of a collection.
func (s *Store) CollectionDir(name string) string {
	return filepath.Join(s.root, "collections", name)
}

// LayoutDir is the directory of a layout.
func (s *Store) LayoutDir(layout string) string {
	return filepath.Join(s.root, "layouts", layout)
}
