package marquee

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// StateFilename is the file under the root that keeps navigation state
// across restarts.
const StateFilename = "state.json"

// SavedState is the persisted navigation state:
//
//	{
//	  "firstPlaylist": "favorites",
//	  "menus": {"Arcade": {"playlist": "all", "offset": 12}}
//	}
type SavedState struct {
	path string
	data []byte
}

// LoadState reads path. A missing or corrupt file yields an empty state.
func LoadState(path string) *SavedState {
	s := &SavedState{path: path, data: []byte(`{}`)}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		logging.GetInternalLogger().Warn("Could not read saved state", "file", path, "error", err)
	case !gjson.ValidBytes(data):
		logging.GetInternalLogger().Warn("Ignoring corrupt saved state", "file", path)
	default:
		s.data = data
	}
	return s
}

// escapeKey quotes the gjson path characters in a collection name.
func escapeKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func menuPath(collection string) string {
	return "menus." + escapeKey(collection)
}

func (s *SavedState) FirstPlaylist() (string, bool) {
	r := gjson.GetBytes(s.data, "firstPlaylist")
	return r.String(), r.Exists() && r.String() != ""
}

func (s *SavedState) SetFirstPlaylist(name string) {
	s.set("firstPlaylist", name)
}

// Menu returns the playlist and scroll offset last shown for collection.
func (s *SavedState) Menu(collection string) (playlist string, offset int, ok bool) {
	r := gjson.GetBytes(s.data, menuPath(collection))
	if !r.IsObject() {
		return "", 0, false
	}
	return r.Get("playlist").String(), int(r.Get("offset").Int()), true
}

func (s *SavedState) SetMenu(collection, playlist string, offset int) {
	s.set(menuPath(collection)+".playlist", playlist)
	s.set(menuPath(collection)+".offset", offset)
}

func (s *SavedState) set(path string, value any) {
	data, err := sjson.SetBytes(s.data, path, value)
	if err != nil {
		logging.GetInternalLogger().Warn("Could not update saved state", "path", path, "error", err)
		return
	}
	s.data = data
}

// Save writes the state file.
func (s *SavedState) Save() error {
	if err := os.WriteFile(s.path, s.data, 0o644); err != nil {
		return NewInfrastructureError("save_state", err)
	}
	logging.GetInternalLogger().Info("Saved state", "file", s.path)
	return nil
}
