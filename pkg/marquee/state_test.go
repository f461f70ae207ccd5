package marquee

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSavedStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), StateFilename)
	s := LoadState(path)
	if _, ok := s.FirstPlaylist(); ok {
		t.Fatal("a new state has no first playlist")
	}

	s.SetFirstPlaylist("favorites")
	s.SetMenu("Arcade", "all", 12)
	s.SetMenu("Sega.Genesis", "lastplayed", 3)
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := LoadState(path)
	if got, ok := loaded.FirstPlaylist(); !ok || got != "favorites" {
		t.Errorf("FirstPlaylist = %q, %t", got, ok)
	}
	tests := []struct {
		collection string
		playlist   string
		offset     int
	}{
		{"Arcade", "all", 12},
		{"Sega.Genesis", "lastplayed", 3},
	}
	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			playlist, offset, ok := loaded.Menu(tt.collection)
			if !ok || playlist != tt.playlist || offset != tt.offset {
				t.Errorf("Menu = %q, %d, %t", playlist, offset, ok)
			}
		})
	}
	if _, _, ok := loaded.Menu("Sega"); ok {
		t.Error("a dotted name must not create a parent entry")
	}
}

func TestLoadStateCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), StateFilename)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := LoadState(path)
	if _, _, ok := s.Menu("Arcade"); ok {
		t.Error("a corrupt file should load as empty")
	}
	s.SetFirstPlaylist("all")
	if got, _ := s.FirstPlaylist(); got != "all" {
		t.Errorf("FirstPlaylist = %q", got)
	}
}

func TestSavedStateSaveError(t *testing.T) {
	s := LoadState(filepath.Join(t.TempDir(), "missing", StateFilename))
	if err := s.Save(); !IsInfrastructureError(err) {
		t.Errorf("Save() error = %v, want an infrastructure error", err)
	}
}
