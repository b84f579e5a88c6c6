package animation

import (
	"testing"
	"time"
)

func collectFrames[T any](tl *Timeline[T], limit int) []Frame[T] {
	var frames []Frame[T]
	for len(frames) < limit {
		f, ok := tl.Next()
		if !ok {
			break
		}
		frames = append(frames, f)
	}
	return frames
}

func TestTimeline_SinglePlayThrough(t *testing.T) {
	tl := NewTimeline([]Animation[float64]{{
		Start:    0,
		End:      1,
		Duration: time.Second,
	}})

	frames := collectFrames(tl, 10)
	if len(frames) != 1 {
		t.Fatalf("no-repeat animation should emit exactly 1 frame, got %d", len(frames))
	}
	if frames[0].Target != 1 || frames[0].Duration != time.Second || frames[0].Snap {
		t.Errorf("forward frame = %+v", frames[0])
	}
}

func TestTimeline_NormalRepeatMaxCount(t *testing.T) {
	// Normal repeat with max 2: two forward play-throughs separated by a
	// zero-duration snap back to start, then stop
	tl := NewTimeline([]Animation[float64]{{
		Start:          0,
		End:            1,
		Duration:       time.Second,
		Repeat:         RepeatNormal,
		RepeatMaxCount: 2,
	}})

	frames := collectFrames(tl, 10)
	if len(frames) != 3 {
		t.Fatalf("expected forward, snap, forward; got %d frames", len(frames))
	}
	if frames[0].Snap || frames[0].Target != 1 {
		t.Errorf("frame 0 should animate to end, got %+v", frames[0])
	}
	if !frames[1].Snap || frames[1].Target != 0 || frames[1].Duration != 0 {
		t.Errorf("frame 1 should snap to start, got %+v", frames[1])
	}
	if frames[2].Snap || frames[2].Target != 1 {
		t.Errorf("frame 2 should animate to end again, got %+v", frames[2])
	}
}

func TestTimeline_PingPongMaxCount(t *testing.T) {
	// PingPong with max 1: exactly one forward+backward pair, no snap
	tl := NewTimeline([]Animation[float64]{{
		Start:          0,
		End:            1,
		Duration:       time.Second,
		Repeat:         RepeatPingPong,
		RepeatMaxCount: 1,
	}})

	frames := collectFrames(tl, 10)
	if len(frames) != 2 {
		t.Fatalf("expected forward+backward, got %d frames", len(frames))
	}
	if frames[0].Target != 1 || frames[1].Target != 0 {
		t.Errorf("pingpong frames = %+v", frames)
	}
	for _, f := range frames {
		if f.Snap {
			t.Error("pingpong must not snap")
		}
	}
}

func TestTimeline_PingPongDelay(t *testing.T) {
	tl := NewTimeline([]Animation[float64]{{
		Start:          0,
		End:            1,
		Duration:       time.Second,
		PingPongDelay:  500 * time.Millisecond,
		Repeat:         RepeatPingPong,
		RepeatMaxCount: 1,
	}})

	frames := collectFrames(tl, 2)
	if frames[1].Delay != 500*time.Millisecond {
		t.Errorf("backward phase delay = %v, want 500ms", frames[1].Delay)
	}
	if frames[1].FireAt != 1500*time.Millisecond {
		t.Errorf("backward fires at %v, want 1.5s", frames[1].FireAt)
	}
}

func TestTimeline_StartDelayOrdering(t *testing.T) {
	// Two keyframes declared out of order must be sorted by start delay and
	// fire in delay order
	tl := NewTimeline([]Animation[float64]{
		{Start: 0, End: 2, Duration: time.Second, StartDelay: 3 * time.Second},
		{Start: 0, End: 1, Duration: time.Second, StartDelay: time.Second},
	})

	frames := collectFrames(tl, 10)
	if len(frames) != 2 {
		t.Fatalf("got %d frames", len(frames))
	}
	if frames[0].Target != 1 {
		t.Errorf("earlier start delay must fire first, got target %v", frames[0].Target)
	}
	if frames[0].FireAt != time.Second {
		t.Errorf("first frame fires at %v, want 1s", frames[0].FireAt)
	}
	// Second animation was scheduled for 3s; motion before it consumed 2s of
	// elapsed time, so it waits the remaining 1s
	if frames[1].Delay != time.Second || frames[1].FireAt != 3*time.Second {
		t.Errorf("second frame delay %v fireAt %v, want 1s / 3s", frames[1].Delay, frames[1].FireAt)
	}
}

func TestTimeline_UnlimitedNeverExhausts(t *testing.T) {
	tl := NewTimeline([]Animation[float64]{{
		Start:          0,
		End:            1,
		Duration:       time.Millisecond,
		Repeat:         RepeatNormal,
		RepeatMaxCount: Unlimited,
	}})

	frames := collectFrames(tl, 100)
	if len(frames) != 100 {
		t.Errorf("unlimited repeat should keep emitting, got %d frames", len(frames))
	}
}

func TestTimeline_RepeatDelayBetweenRounds(t *testing.T) {
	tl := NewTimeline([]Animation[float64]{{
		Start:          0,
		End:            1,
		Duration:       time.Second,
		RepeatDelay:    2 * time.Second,
		Repeat:         RepeatNormal,
		RepeatMaxCount: 2,
	}})

	frames := collectFrames(tl, 3)
	if frames[1].Delay != 2*time.Second {
		t.Errorf("snap should wait the repeat delay, got %v", frames[1].Delay)
	}
	if frames[2].Delay != 0 {
		t.Errorf("forward after snap should fire immediately, got %v", frames[2].Delay)
	}
}
