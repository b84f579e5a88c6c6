package elements

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skylineapps/paywallkit/internal/texts"
)

// TimerLaunchKind selects how a timer's end moment is determined.
type TimerLaunchKind int

const (
	// LaunchEndAtTime counts down to an absolute wall-clock moment.
	LaunchEndAtTime TimerLaunchKind = iota
	// LaunchDuration counts down a fixed duration from a start moment
	// governed by the start behavior.
	LaunchDuration
	// LaunchCustom asks the host's timer resolver for the end moment.
	LaunchCustom
)

// TimerStartBehavior governs when a duration timer's clock starts.
type TimerStartBehavior int

const (
	// StartEveryAppearance restarts the countdown each time the element
	// appears.
	StartEveryAppearance TimerStartBehavior = iota
	// StartOnceVolatile starts on first appearance and survives re-renders,
	// but not process restarts.
	StartOnceVolatile
	// StartOncePersisted starts on first appearance and survives process
	// restarts through the cache repository.
	StartOncePersisted
)

// TimerLaunch is a timer's countdown source.
type TimerLaunch struct {
	Kind     TimerLaunchKind
	EndAt    time.Time
	Duration time.Duration
	Start    TimerStartBehavior
}

// TimerFormat is one display template, active while the remaining time
// exceeds FromSeconds. Templates are evaluated most-specific first so a
// threshold crossing always lands on the adjacent format, never skips one.
type TimerFormat struct {
	FromSeconds int64
	StringID    texts.StringID
}

// Timer renders a live countdown and dispatches its actions exactly once on
// expiry. States: counting down, expired.
type Timer struct {
	Props       BaseProps
	ID          string
	Launch      TimerLaunch
	Formats     []TimerFormat
	Actions     []Action
	FontAssetID string
	HAlign      Alignment
	// Jitter adds a small random offset to millisecond/centisecond digits,
	// simulating sub-tick precision.
	Jitter bool

	startedAt    time.Time
	fired        bool
	pinnedHeight int
	rng          *rand.Rand
}

func (t *Timer) Base() *BaseProps { return &t.Props }

// Remaining computes the time left on this pass. ok is false when the end
// moment cannot be determined (missing custom resolver entry).
func (t *Timer) Remaining(ctx *Context) (time.Duration, bool) {
	switch t.Launch.Kind {
	case LaunchEndAtTime:
		return t.Launch.EndAt.Sub(ctx.Now), true
	case LaunchCustom:
		if ctx.TimerResolver == nil {
			return 0, false
		}
		end, ok := ctx.TimerResolver(t.ID)
		if !ok {
			return 0, false
		}
		return end.Sub(ctx.Now), true
	default:
		start, ok := t.startMoment(ctx)
		if !ok {
			return 0, false
		}
		return start.Add(t.Launch.Duration).Sub(ctx.Now), true
	}
}

// startMoment finds (or records) the countdown start for duration timers.
func (t *Timer) startMoment(ctx *Context) (time.Time, bool) {
	switch t.Launch.Start {
	case StartEveryAppearance:
		if t.startedAt.IsZero() {
			t.startedAt = ctx.Now
		}
		return t.startedAt, true
	default:
		persisted := t.Launch.Start == StartOncePersisted
		if ctx.TimerCache == nil {
			// No cache collaborator; degrade to per-appearance behavior
			if t.startedAt.IsZero() {
				t.startedAt = ctx.Now
			}
			return t.startedAt, true
		}
		key := timerStartKey(ctx.PlacementID, t.ID)
		if ms, ok := ctx.TimerCache.GetLong(key, persisted); ok {
			return time.UnixMilli(ms), true
		}
		ctx.TimerCache.SetLong(key, ctx.Now.UnixMilli(), persisted)
		return ctx.Now, true
	}
}

// timerStartKey scopes a timer's start timestamp to its placement.
func timerStartKey(placementID, timerID string) string {
	return "timer_" + placementID + "_" + timerID
}

// NeedsMicroTicks reports whether the active format shows sub-second digits,
// which moves the owning player from whole-second ticks to the 125ms cadence.
func (t *Timer) NeedsMicroTicks(ctx *Context) bool {
	remaining, ok := t.Remaining(ctx)
	if !ok {
		return false
	}
	res := ctx.Resolve(t.activeFormat(remaining))
	for _, seg := range timerSegments(res) {
		if seg.Unit.SubSecond() {
			return true
		}
	}
	return false
}

// timerSegments collects the digit segments of a resolved template.
func timerSegments(res texts.Result) []texts.TimerSegment {
	var segs []texts.TimerSegment
	switch res.Kind {
	case texts.ResultTimerSegment:
		segs = append(segs, *res.Segment)
	case texts.ResultComplex:
		for _, part := range res.Parts {
			if part.Kind == texts.PartTimerSegment {
				segs = append(segs, *part.Segment)
			}
		}
	}
	return segs
}

func (t *Timer) Render(ctx *Context) Block {
	if len(t.Formats) == 0 {
		return OmittedBlock()
	}
	remaining, ok := t.Remaining(ctx)
	if !ok {
		ctx.Logger.Debug("Timer end moment unresolved; element omitted",
			zap.String("timer_id", t.ID))
		return OmittedBlock()
	}

	if remaining <= 0 {
		remaining = 0
		if !t.fired {
			// Expiry actions fire exactly once per timer instance
			t.fired = true
			if ctx.Events != nil {
				ctx.Events.OnTimerExpired(t.ID, t.Actions)
			}
		}
	}

	res := ctx.Resolve(t.activeFormat(remaining))
	content := t.renderCountdown(ctx, res, remaining)
	return finishText(ctx, &t.Props, content, t.HAlign, 0, false, &t.pinnedHeight)
}

func (t *Timer) RenderInRow(ctx *Context) Block    { return t.Render(ctx) }
func (t *Timer) RenderInColumn(ctx *Context) Block { return t.Render(ctx) }

// activeFormat selects the template for the remaining time: thresholds are
// checked in descending order and the first one strictly below the remaining
// seconds wins, so a tick that lands exactly on a boundary switches to the
// next template.
func (t *Timer) activeFormat(remaining time.Duration) texts.StringID {
	sorted := make([]TimerFormat, len(t.Formats))
	copy(sorted, t.Formats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FromSeconds > sorted[j].FromSeconds
	})

	seconds := int64(remaining / time.Second)
	for _, f := range sorted {
		if seconds > f.FromSeconds {
			return f.StringID
		}
	}
	return sorted[len(sorted)-1].StringID
}

// renderCountdown substitutes live digits into the resolved template.
func (t *Timer) renderCountdown(ctx *Context, res texts.Result, remaining time.Duration) string {
	switch res.Kind {
	case texts.ResultTimerSegment:
		return styleRun(ctx, t.segmentText(*res.Segment, remaining), res.Attrs, t.FontAssetID)
	case texts.ResultComplex:
		var sb strings.Builder
		for _, part := range res.Parts {
			switch part.Kind {
			case texts.PartText:
				sb.WriteString(styleRun(ctx, part.Text, part.Attrs, t.FontAssetID))
			case texts.PartTimerSegment:
				sb.WriteString(styleRun(ctx, t.segmentText(*part.Segment, remaining), part.Attrs, t.FontAssetID))
			case texts.PartImage:
				sb.WriteString(inlineImage(ctx, part.ImageID, part.Attrs))
			}
		}
		return sb.String()
	default:
		return renderTextContent(ctx, res, t.FontAssetID)
	}
}

func (t *Timer) segmentText(seg texts.TimerSegment, remaining time.Duration) string {
	if t.Jitter && remaining > 0 && seg.Unit.SubSecond() && seg.Unit != texts.UnitDeciseconds {
		if t.rng == nil {
			t.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		jitter := time.Duration(t.rng.Intn(100)) * time.Millisecond
		if jitter < remaining {
			remaining -= jitter
		}
	}
	return seg.Render(remaining)
}
