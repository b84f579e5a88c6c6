package elements

import (
	"time"

	"go.uber.org/zap"

	"github.com/skylineapps/paywallkit/internal/assets"
	"github.com/skylineapps/paywallkit/internal/products"
	"github.com/skylineapps/paywallkit/internal/state"
	"github.com/skylineapps/paywallkit/internal/texts"
)

// Element is one node of the paywall view tree. The three entry points exist
// because weighted sizing behaves differently depending on the container
// axis the element is placed in.
type Element interface {
	Base() *BaseProps
	Render(ctx *Context) Block
	RenderInRow(ctx *Context) Block
	RenderInColumn(ctx *Context) Block
}

// EventCallback receives user interactions and element side effects. The
// view model implements it; hosts can wrap it.
type EventCallback interface {
	// OnActions dispatches a tapped element's action list.
	OnActions(actions []Action)
	// OnInitialProductSelected fires once per button when its product
	// condition first matches, so listeners learn the default selection.
	OnInitialProductSelected(groupID, productID string)
	// OnTimerExpired fires a timer's configured actions exactly once.
	OnTimerExpired(timerID string, actions []Action)
}

// TimerResolver supplies the countdown end for Custom launch timers.
type TimerResolver func(timerID string) (time.Time, bool)

// TimerCache persists timer start timestamps across renders and, when
// persisted is true, across process restarts. The view model delegates this
// to the host's cache repository.
type TimerCache interface {
	GetLong(key string, persisted bool) (int64, bool)
	SetLong(key string, value int64, persisted bool)
}

// Hotspot is a tappable region registered during a render pass. The terminal
// player binds hotspots to keys; a touch host would bind them to gestures.
type Hotspot struct {
	ID      string
	Label   string
	Actions []Action
}

// Context carries everything a render pass may pull: resolver snapshots, the
// event callback, layout constraints and the pass clock. It is rebuilt by
// the orchestrator for every pass; elements never retain it.
type Context struct {
	Texts    *texts.Engine
	Inputs   texts.Inputs
	Assets   *assets.Resolver
	State    state.Store
	Products map[string]*products.Product

	Events        EventCallback
	TimerResolver TimerResolver
	TimerCache    TimerCache

	// Elements holds screen-level element definitions Reference nodes point
	// at.
	Elements map[string]Element

	// Now is the wall clock of this pass; Elapsed is time since mount.
	// Renders never read the clock directly so passes are reproducible.
	Now     time.Time
	Elapsed time.Duration

	// MaxWidth and MaxHeight are the constraints of the current slot, in
	// cells. Zero means unconstrained.
	MaxWidth  int
	MaxHeight int

	// PlacementID scopes persisted timer keys.
	PlacementID string

	// PagerIndex reports the current page of a pager, owned by the player.
	PagerIndex func(pagerID string) int

	Logger *zap.Logger

	hotspots *[]Hotspot
}

// NewContext returns a context with safe defaults for the given snapshot.
func NewContext(engine *texts.Engine, in texts.Inputs, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	var spots []Hotspot
	return &Context{
		Texts:    engine,
		Inputs:   in,
		Assets:   in.Assets,
		State:    in.State,
		Products: in.Products,
		Now:      time.Now(),
		Logger:   logger,
		hotspots: &spots,
	}
}

// WithConstraints returns a copy of the context with new slot constraints.
// The hotspot registry is shared with the parent.
func (c *Context) WithConstraints(maxWidth, maxHeight int) *Context {
	out := *c
	out.MaxWidth = maxWidth
	out.MaxHeight = maxHeight
	return &out
}

// Resolve resolves a string id against this pass's snapshot.
func (c *Context) Resolve(id texts.StringID) texts.Result {
	if c.Texts == nil {
		return texts.Empty()
	}
	return c.Texts.Resolve(id, c.Inputs)
}

// RegisterHotspot records a tappable region for this pass.
func (c *Context) RegisterHotspot(h Hotspot) {
	if c.hotspots != nil {
		*c.hotspots = append(*c.hotspots, h)
	}
}

// Hotspots returns the tappable regions collected during the pass, in render
// order.
func (c *Context) Hotspots() []Hotspot {
	if c.hotspots == nil {
		return nil
	}
	return *c.hotspots
}

