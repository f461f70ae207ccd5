package marquee

import (
	"errors"
	"math/rand/v2"

	"github.com/BrandonKowalski/marquee/pkg/marquee/component"
	"github.com/BrandonKowalski/marquee/pkg/marquee/config"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/layout"
	"github.com/BrandonKowalski/marquee/pkg/marquee/page"
)

// DefaultLayout is the layout directory used when settings name none.
const DefaultLayout = "Default"

// SplashPage is the layout file shown while the first collection loads.
const SplashPage = "splash"

// layoutPages builds pages from the configured layout.
type layoutPages struct {
	conf     *config.Store
	renderer component.Renderer
	fonts    layout.Fonts
	opts     layout.Options
}

func newLayoutPages(conf *config.Store, renderer component.Renderer, fonts layout.Fonts, opts layout.Options) *layoutPages {
	if opts.Layout == "" {
		opts.Layout = conf.StringOr("layout", DefaultLayout)
	}
	return &layoutPages{conf: conf, renderer: renderer, fonts: fonts, opts: opts}
}

// pickLayout chooses one entry of randomLayout, when set, and stores it as
// the layout for the rest of the run.
func pickLayout(conf *config.Store, intn func(int) int) {
	choices := conf.List("randomLayout")
	if len(choices) == 0 {
		return
	}
	if intn == nil {
		intn = rand.IntN
	}
	choice := choices[intn(len(choices))]
	logging.GetInternalLogger().Info("Picked random layout", "layout", choice)
	conf.Set("layout", choice)
}

func (l *layoutPages) build(name string, menu bool, collection string) (*page.Page, error) {
	opts := l.opts
	opts.Page = name
	opts.Menu = menu
	return layout.NewBuilder(l.conf, l.renderer, l.fonts, opts).Build(collection)
}

func (l *layoutPages) Splash() (*page.Page, error) {
	return l.build(SplashPage, false, "")
}

func (l *layoutPages) Collection(collection string) (*page.Page, error) {
	return l.build("", false, collection)
}

func (l *layoutPages) Load(collection string) (*page.Page, error) {
	p, err := l.Collection(collection)
	if err == nil || collection == "" {
		return p, err
	}
	if !errors.Is(err, layout.ErrNotFound) {
		logging.GetInternalLogger().Warn("Collection layout failed, using the main layout", "collection", collection, "error", err)
	}
	return l.Collection("")
}

func (l *layoutPages) Menu() (*page.Page, error) {
	return l.build("", true, "")
}
