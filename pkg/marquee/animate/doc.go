// Package animate implements the declarative animation model used by layouts.
//
// A Tween interpolates one view property over a duration with a named easing
// curve. Tweens in a TweenSet run in parallel; an Animation plays its sets in
// order. Events maps an event name and a menu index to an Animation.
//
// Definitions are immutable once built and are shared freely between
// components. Playback state (current phase, elapsed time) belongs to the
// component playing the animation.
package animate
