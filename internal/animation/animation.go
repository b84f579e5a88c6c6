package animation

import (
	"fmt"
	"math"
	"time"
)

// Unlimited is the repeat max count meaning "repeat forever".
const Unlimited = math.MaxInt32

// Role names the visual property an animation drives.
type Role int

const (
	RoleBackground Role = iota
	RoleBorder
	RoleOpacity
	RoleOffset
	RoleScale
	RoleRotation
	RoleShadow
	RoleBoxSize
)

// String returns a human-readable name for the role
func (r Role) String() string {
	switch r {
	case RoleBackground:
		return "background"
	case RoleBorder:
		return "border"
	case RoleOpacity:
		return "opacity"
	case RoleOffset:
		return "offset"
	case RoleScale:
		return "scale"
	case RoleRotation:
		return "rotation"
	case RoleShadow:
		return "shadow"
	case RoleBoxSize:
		return "box_size"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// RepeatMode selects how an animation replays after its first pass.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatNormal
	RepeatPingPong
)

// Easing is a closed set of timing curves.
type Easing int

const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
)

// Apply maps normalized progress through the curve. Input outside [0, 1] is
// clamped.
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		return t * t * (3 - 2*t)
	default:
		return t
	}
}

// Animation is one declarative keyframe descriptor: animate from Start to
// End over Duration, beginning StartDelay after mount. Start and End are
// homogeneous in type by construction. RepeatMaxCount bounds every repeat
// mode; Unlimited means no bound.
type Animation[T any] struct {
	Start          T
	End            T
	Duration       time.Duration
	StartDelay     time.Duration
	RepeatDelay    time.Duration
	PingPongDelay  time.Duration
	Easing         Easing
	Repeat         RepeatMode
	RepeatMaxCount int
	Role           Role
}

// Offset is a 2D translation in layout units.
type Offset struct {
	X float64
	Y float64
}

// Dims is a box size in layout units.
type Dims struct {
	Width  float64
	Height float64
}

// Shadow is a drop shadow: hex color, blur radius and offset.
type Shadow struct {
	Color  string
	Blur   float64
	Offset Offset
}

// Border is a stroke: hex color and thickness in layout units.
type Border struct {
	Color     string
	Thickness float64
}
