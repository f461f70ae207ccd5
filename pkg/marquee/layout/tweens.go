package layout

import (
	"github.com/BrandonKowalski/marquee/pkg/marquee/animate"
	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
	"github.com/BrandonKowalski/marquee/pkg/marquee/view"
)

// eventTags maps the on<Event> child tags to the events they define.
var eventTags = []struct {
	tag   string
	event string
}{
	{"onEnter", animate.EventEnter},
	{"onExit", animate.EventExit},
	{"onIdle", animate.EventIdle},
	{"onMenuIdle", animate.EventMenuIdle},
	{"onMenuScroll", animate.EventMenuScroll},
	{"onHighlightEnter", animate.EventHighlightEnter},
	{"onHighlightExit", animate.EventHighlightExit},
	{"onMenuEnter", animate.EventMenuEnter},
	{"onMenuExit", animate.EventMenuExit},
	{"onGameEnter", animate.EventGameEnter},
	{"onGameExit", animate.EventGameExit},
	{"onPlaylistEnter", animate.EventPlaylistEnter},
	{"onPlaylistExit", animate.EventPlaylistExit},
	{"onPlaylistNextEnter", animate.EventPlaylistNextEnter},
	{"onPlaylistNextExit", animate.EventPlaylistNextExit},
	{"onPlaylistPrevEnter", animate.EventPlaylistPrevEnter},
	{"onPlaylistPrevExit", animate.EventPlaylistPrevExit},
	{"onMenuJumpEnter", animate.EventMenuJumpEnter},
	{"onMenuJumpExit", animate.EventMenuJumpExit},
	{"onAttractEnter", animate.EventAttractEnter},
	{"onAttract", animate.EventAttract},
	{"onAttractExit", animate.EventAttractExit},
	{"onJukeboxJump", animate.EventJukeboxJump},
	{"onMenuActionInputEnter", animate.EventMenuActionInputEnter},
	{"onMenuActionInputExit", animate.EventMenuActionInputExit},
	{"onMenuActionSelectEnter", animate.EventMenuActionSelectEnter},
	{"onMenuActionSelectExit", animate.EventMenuActionSelectExit},
}

// tweens reads every on<Event> block of n. Each menu index a block's
// menuIndex selector expands to gets its own Animation.
func (d *doc) tweens(n *node) *animate.Events {
	events := animate.NewEvents()
	for _, e := range eventTags {
		for _, block := range n.children(e.tag) {
			selector, _ := block.attr("menuIndex")
			for _, index := range animate.ExpandIndex(selector) {
				events.Set(e.event, index, d.animation(block))
			}
		}
	}
	return events
}

func (d *doc) animation(block *node) *animate.Animation {
	anim := animate.NewAnimation()
	for _, set := range block.children("set") {
		if ts := d.tweenSet(set); ts != nil {
			anim.Push(ts)
		}
	}
	return anim
}

// tweenSet is nil when set has no duration.
func (d *doc) tweenSet(set *node) *animate.TweenSet {
	logger := logging.GetInternalLogger()
	durationAttr, ok := set.attr("duration")
	if !ok {
		logger.Error(`Animation set tag missing "duration" attribute`)
		return nil
	}
	duration := toFloat(durationAttr)

	ts := animate.NewTweenSet()
	for _, a := range set.children("animate") {
		typ, ok := a.attr("type")
		if !ok {
			logger.Error(`Animate tag missing "type" attribute`)
			continue
		}
		to, hasTo := a.attr("to")
		if !hasTo && typ != "nop" {
			logger.Error(`Animate tag missing "to" attribute`, "type", typ)
			continue
		}
		property, ok := animate.ParseProperty(typ)
		if !ok {
			logger.Error("Unsupported tween type attribute", "type", typ)
			continue
		}
		from, hasFrom := a.attr("from")
		algorithmName, _ := a.attr("algorithm")
		algorithm := animate.ParseAlgorithm(algorithmName)

		start := d.tweenValue(property, from, hasFrom)
		end := d.tweenValue(property, to, hasTo)
		if hasFrom {
			ts.Push(animate.NewTween(property, algorithm, start, end, duration))
		} else {
			ts.Push(animate.NewRelativeTween(property, algorithm, end, duration))
		}
	}
	return ts
}

// tweenValue reads an animate value with the alignment keywords of its
// axis. Origins become fractions of the layout size.
func (d *doc) tweenValue(p animate.Property, v string, ok bool) float64 {
	switch p {
	case animate.PropertyXOrigin:
		return float64(d.horizontal(v, ok, 0) / d.width)
	case animate.PropertyYOrigin:
		return float64(d.vertical(v, ok, 0) / d.height)
	case animate.PropertyMaxWidth, animate.PropertyMaxHeight:
		return float64(d.vertical(v, ok, view.Unbounded))
	}
	switch {
	case p.Horizontal():
		return float64(d.horizontal(v, ok, 0))
	case p.Vertical():
		return float64(d.vertical(v, ok, 0))
	}
	if !ok {
		return 0
	}
	return toFloat(v)
}
