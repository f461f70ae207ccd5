package component

import (
	"os"
	"path/filepath"

	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// ImageExtensions are tried in order when looking for artwork by name.
var ImageExtensions = []string{"png", "PNG", "jpg", "JPG", "jpeg", "JPEG", "svg"}

// VideoExtensions are tried in order when looking for media by name.
var VideoExtensions = []string{"mp4", "MP4", "avi", "AVI", "mp3", "MP3", "wav", "WAV"}

// FindFile returns dir/name.<ext> for the first extension that exists.
func FindFile(dir, name string, extensions []string) (string, bool) {
	if name == "" {
		return "", false
	}
	prefix := filepath.Join(dir, name)
	for _, ext := range extensions {
		path := prefix + "." + ext
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Image is a static texture loaded from a file.
type Image struct {
	Base
	path    string
	altPath string
	texture Texture
}

// NewImage returns an image that loads path, or altPath if that fails,
// when its graphics memory is allocated.
func NewImage(host Host, path, altPath string, monitor int) *Image {
	img := &Image{Base: NewBase(host), path: path, altPath: altPath}
	img.info.Monitor = monitor
	return img
}

// openImage is nil when dir holds no image named name.
func openImage(host Host, dir, name string, monitor int) Component {
	path, ok := FindFile(dir, name, ImageExtensions)
	if !ok {
		return nil
	}
	return NewImage(host, path, "", monitor)
}

func (i *Image) AllocateGraphicsMemory() {
	if i.texture == nil {
		r := i.host.Renderer()
		tex, err := r.LoadTexture(i.path)
		if err != nil && i.altPath != "" {
			tex, err = r.LoadTexture(i.altPath)
		}
		if err != nil {
			logging.GetInternalLogger().Debug("Image not loaded", "path", i.path, "error", err)
		} else {
			i.texture = tex
			w, h := tex.Size()
			i.info.ImageWidth = float32(w)
			i.info.ImageHeight = float32(h)
		}
	}
	i.Base.AllocateGraphicsMemory()
}

func (i *Image) FreeGraphicsMemory() {
	i.Base.FreeGraphicsMemory()
	if i.texture != nil {
		i.host.Renderer().Destroy(i.texture)
		i.texture = nil
	}
}

func (i *Image) Draw() {
	i.Base.Draw()
	if i.texture == nil {
		return
	}
	v := i.info
	dst := Rect{
		X: int32(v.XRelativeToOrigin()),
		Y: int32(v.YRelativeToOrigin()),
		W: int32(v.ScaledWidth()),
		H: int32(v.ScaledHeight()),
	}
	lw, lh := i.layoutSize()
	i.host.Renderer().Copy(i.texture, v.Alpha, nil, dst, v, lw, lh)
}

// SetImage swaps the file when id matches, reloading it if loaded.
func (i *Image) SetImage(path string, id int) {
	if id != i.id || path == i.path {
		return
	}
	loaded := i.texture != nil
	if loaded {
		i.host.Renderer().Destroy(i.texture)
		i.texture = nil
	}
	i.path = path
	if loaded {
		i.AllocateGraphicsMemory()
	}
}
