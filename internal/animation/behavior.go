package animation

import "time"

// BehaviorKind tags a property behavior.
type BehaviorKind int

const (
	// BehaviorStatic renders a constant declared value.
	BehaviorStatic BehaviorKind = iota
	// BehaviorAnimated plays a keyframe timeline.
	BehaviorAnimated
	// BehaviorNone means the property is not applicable; its zero value is
	// used and no playback loop is started.
	BehaviorNone
)

// Behavior is the per-property animation state machine: Static, Animated or
// None. Repeated sampling with unchanged inputs of a Static behavior yields
// exactly the declared value with no drift.
type Behavior[T any] struct {
	kind   BehaviorKind
	static T
	player *Player[T]
}

// Static declares a constant-valued behavior.
func Static[T any](value T) Behavior[T] {
	return Behavior[T]{kind: BehaviorStatic, static: value}
}

// None declares a not-applicable behavior; sampling returns the zero value.
func None[T any]() Behavior[T] {
	return Behavior[T]{kind: BehaviorNone}
}

// Animated declares a live behavior playing the animation group. The initial
// value is rendered until the first keyframe fires.
func Animated[T any](initial T, anims []Animation[T], lerp Lerper[T]) Behavior[T] {
	if len(anims) == 0 {
		return Static(initial)
	}
	return Behavior[T]{
		kind:   BehaviorAnimated,
		player: NewPlayer(initial, anims, lerp),
	}
}

// Kind returns the behavior's tag.
func (b *Behavior[T]) Kind() BehaviorKind {
	return b.kind
}

// ValueAt samples the behavior at an elapsed time since mount.
func (b *Behavior[T]) ValueAt(elapsed time.Duration) T {
	switch b.kind {
	case BehaviorStatic:
		return b.static
	case BehaviorAnimated:
		return b.player.ValueAt(elapsed)
	default:
		var zero T
		return zero
	}
}

// Live reports whether the behavior still has motion after the given elapsed
// time, i.e. the owning element must keep scheduling re-renders.
func (b *Behavior[T]) Live(elapsed time.Duration) bool {
	return b.kind == BehaviorAnimated && b.player.Live(elapsed)
}

// Player folds timeline frames into concrete values. Sampling must move
// forward in time; the player consumes frames as their windows pass, which is
// exactly the re-render driven pull model the renderer uses.
type Player[T any] struct {
	timeline  *Timeline[T]
	lerp      Lerper[T]
	from      T
	current   T
	frame     *Frame[T]
	exhausted bool
}

// NewPlayer creates a player positioned before the first frame.
func NewPlayer[T any](initial T, anims []Animation[T], lerp Lerper[T]) *Player[T] {
	p := &Player[T]{
		timeline: NewTimeline(anims),
		lerp:     lerp,
		from:     initial,
		current:  initial,
	}
	p.pull()
	return p
}

func (p *Player[T]) pull() {
	frame, ok := p.timeline.Next()
	if !ok {
		p.frame = nil
		p.exhausted = true
		return
	}
	p.frame = &frame
}

// ValueAt samples the playback value at an elapsed time since mount.
func (p *Player[T]) ValueAt(elapsed time.Duration) T {
	for p.frame != nil && elapsed >= p.frame.FireAt+p.frame.Duration {
		p.current = p.frame.Target
		p.from = p.frame.Target
		p.pull()
	}
	if p.frame == nil || elapsed < p.frame.FireAt {
		return p.current
	}
	if p.frame.Snap || p.frame.Duration <= 0 {
		return p.frame.Target
	}
	t := float64(elapsed-p.frame.FireAt) / float64(p.frame.Duration)
	p.current = p.lerp(p.from, p.frame.Target, p.frame.Easing.Apply(t))
	return p.current
}

// Live reports whether more motion remains at the given elapsed time.
func (p *Player[T]) Live(elapsed time.Duration) bool {
	if p.exhausted && p.frame == nil {
		return false
	}
	return true
}
