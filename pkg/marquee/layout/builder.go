package layout

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/page"
)

var (
	// ErrInvalidLayout is returned for a file without a <layout> root or
	// without a non-zero width and height.
	ErrInvalidLayout = errors.New("layout: invalid layout")

	// ErrNotFound is returned when no layout file exists for the page.
	ErrNotFound = errors.New("layout: no layout file")
)

const (
	// DefaultPage is the layout file name used when Options.Page is empty.
	DefaultPage = "layout"

	defaultFontSize = 24
)

// Fonts loads a font at a size and color. Loaded fonts are cached by the
// implementation and outlive the page.
type Fonts interface {
	Font(path string, size int, c color.RGBA, monitor int) (component.Font, error)
}

// Options selects the layout file a Builder reads.
type Options struct {
	// Layout is the directory under <root>/layouts.
	Layout string

	// Page is the file name without extension, "layout" when empty.
	Page string

	// Menu reads from <root>/menu instead of the layout directory.
	Menu bool

	// ScreenWidth and ScreenHeight pick aspect specific files such as
	// "layout 16x9.xml".
	ScreenWidth  int
	ScreenHeight int

	// Monitors is the number of displays; each may have its own
	// "layout - N.xml".
	Monitors int

	// DefaultFont is used by components that name no font.
	DefaultFont string

	// NewSound opens a sound effect, trying path then altPath. Sounds are
	// skipped when it is nil.
	NewSound func(path, altPath string) page.Sound

	// NewPlayer is installed as the page media player factory.
	NewPlayer func() component.Player
}

// Builder turns layout XML files into pages.
type Builder struct {
	conf     *config.Store
	renderer component.Renderer
	fonts    Fonts
	opts     Options
}

func NewBuilder(conf *config.Store, renderer component.Renderer, fonts Fonts, opts Options) *Builder {
	if opts.Page == "" {
		opts.Page = DefaultPage
	}
	if opts.Monitors < 1 {
		opts.Monitors = 1
	}
	return &Builder{conf: conf, renderer: renderer, fonts: fonts, opts: opts}
}

// Path is the directory layout files for collection are read from. The
// empty collection is the main page.
func (b *Builder) Path(collection string) string {
	switch {
	case b.opts.Menu:
		return filepath.Join(b.conf.AbsolutePath(), "menu")
	case collection == "":
		return b.conf.LayoutDir(b.opts.Layout)
	default:
		return filepath.Join(b.conf.LayoutDir(b.opts.Layout), "collections", collection, "layout")
	}
}

// file is one parsed layout file and the monitor it draws on.
type file struct {
	path    string
	monitor int
	root    *node
	width   int
	height  int
}

// Build reads every layout file for collection and returns the page they
// describe. Files are looked up per monitor, aspect specific names first.
func (b *Builder) Build(collection string) (*page.Page, error) {
	dir := b.Path(collection)
	files, err := b.load(dir)
	if err != nil {
		return nil, err
	}

	widths := make([]int, b.opts.Monitors)
	heights := make([]int, b.opts.Monitors)
	for _, f := range files {
		if f.monitor >= len(widths) {
			continue
		}
		widths[f.monitor] = f.width
		heights[f.monitor] = f.height
	}
	for i := range widths {
		if widths[i] == 0 {
			widths[i], heights[i] = files[0].width, files[0].height
		}
	}

	p := page.New(b.conf, b.renderer, widths, heights)
	if b.opts.NewPlayer != nil {
		p.SetPlayerFactory(b.opts.NewPlayer)
	}
	for _, f := range files {
		d := b.newDoc(p, dir, f)
		d.build()
		logging.GetInternalLogger().Info("Layout initialized", "file", f.path, "width", f.width, "height", f.height,
			"scaleX", float64(b.opts.ScreenWidth)/float64(f.width), "scaleY", float64(b.opts.ScreenHeight)/float64(f.height))
	}
	return p, nil
}

// load parses the file for each monitor. The plain file is monitor 0,
// "<page> - N" is monitor N.
func (b *Builder) load(dir string) ([]file, error) {
	logger := logging.GetInternalLogger()

	suffixes := []string{""}
	for i := 0; i < b.opts.Monitors; i++ {
		suffixes = append(suffixes, " - "+strconv.Itoa(i))
	}

	var files []file
	for i, suffix := range suffixes {
		monitor := max(i-1, 0)
		path, ok := b.find(dir, suffix)
		if !ok {
			continue
		}
		f, err := readFile(path)
		if err != nil {
			logger.Error("Could not initialize layout", "file", path, "error", err)
			return nil, err
		}
		f.monitor = monitor
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, b.opts.Page, dir)
	}
	return files, nil
}

func (b *Builder) find(dir, suffix string) (string, bool) {
	logger := logging.GetInternalLogger()
	candidates := make([]string, 0, 2)
	if w, h := b.opts.ScreenWidth, b.opts.ScreenHeight; w > 0 && h > 0 {
		g := gcd(w, h)
		candidates = append(candidates, fmt.Sprintf("%s %dx%d%s.xml", b.opts.Page, w/g, h/g, suffix))
	}
	candidates = append(candidates, b.opts.Page+suffix+".xml")

	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
		logger.Debug("Could not find layout file", "file", path)
	}
	return "", false
}

func readFile(path string) (file, error) {
	r, err := os.Open(path)
	if err != nil {
		return file{}, err
	}
	defer r.Close()

	root, err := parse(r)
	if err != nil {
		return file{}, fmt.Errorf("%s: %w", path, err)
	}
	if root.name() != "layout" {
		return file{}, fmt.Errorf("%w: %s: missing <layout> tag", ErrInvalidLayout, path)
	}
	w, okW := root.attr("width")
	h, okH := root.attr("height")
	if !okW || !okH {
		return file{}, fmt.Errorf("%w: %s: <layout> must specify a width and height", ErrInvalidLayout, path)
	}
	f := file{path: path, root: root, width: toInt(w), height: toInt(h)}
	if f.width == 0 || f.height == 0 {
		return file{}, fmt.Errorf("%w: %s: width and height cannot be 0", ErrInvalidLayout, path)
	}
	return f, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
