package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skylineapps/paywallkit/internal/assets"
	"github.com/skylineapps/paywallkit/internal/elements"
	"github.com/skylineapps/paywallkit/internal/products"
	"github.com/skylineapps/paywallkit/internal/state"
	"github.com/skylineapps/paywallkit/internal/templates"
	"github.com/skylineapps/paywallkit/internal/texts"
)

// ExpectedProduct is one product slot declared by the configuration, matched
// against the store's product list by vendor id and, for subscriptions, base
// plan id.
type ExpectedProduct struct {
	ID         string
	VendorID   string
	BasePlanID string
	GroupID    string
}

// Configuration is a decoded paywall: the screen trees plus the data maps
// the resolvers run against.
type Configuration struct {
	PlacementID string
	Screen      *templates.Screen
	// Screens holds additional bottom-sheet screens addressable by
	// open_screen actions.
	Screens map[string]*templates.Screen
	// Elements holds screen-level definitions Reference nodes point at.
	Elements     map[string]elements.Element
	Texts        map[string]*texts.Item
	Assets       map[string]assets.Asset
	Products     []ExpectedProduct
	InitialState map[string]any
}

// ViewModel owns one mounted paywall's mutable data. All mutation happens
// under its lock; render passes read through snapshots built by BuildContext.
type ViewModel struct {
	mu sync.Mutex

	logger   *zap.Logger
	cfg      *Configuration
	state    state.Store
	products map[string]*products.Product
	assetRes *assets.Resolver
	engine   *texts.Engine
	loading  bool

	sessionID string
	observer  bool

	store    StoreHandler
	delegate PurchaseDelegate
	listener Listener
	cache    CacheRepository
	volatile map[string]int64

	retryDelay  time.Duration
	shouldRetry RetryDecision

	timerResolver elements.TimerResolver
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithLogger installs the logger; nil keeps the nop default.
func WithLogger(logger *zap.Logger) Option {
	return func(v *ViewModel) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithStoreHandler installs the billing collaborator.
func WithStoreHandler(h StoreHandler) Option {
	return func(v *ViewModel) { v.store = h }
}

// WithObserverMode enables observer mode: purchases and restores are handed
// to the delegate when one is installed.
func WithObserverMode(delegate PurchaseDelegate) Option {
	return func(v *ViewModel) {
		v.observer = true
		v.delegate = delegate
	}
}

// WithListener installs the lifecycle event listener.
func WithListener(l Listener) Option {
	return func(v *ViewModel) { v.listener = l }
}

// WithCacheRepository installs durable storage for timer timestamps.
func WithCacheRepository(c CacheRepository) Option {
	return func(v *ViewModel) { v.cache = c }
}

// WithRetryPolicy sets the product-load retry decision and the fixed delay
// between attempts.
func WithRetryPolicy(decide RetryDecision, delay time.Duration) Option {
	return func(v *ViewModel) {
		v.shouldRetry = decide
		if delay > 0 {
			v.retryDelay = delay
		}
	}
}

// WithTextEngine replaces the default text engine, e.g. to install a custom
// tag resolver.
func WithTextEngine(e *texts.Engine) Option {
	return func(v *ViewModel) {
		if e != nil {
			v.engine = e
		}
	}
}

// WithTimerResolver installs the host's end-moment source for Custom launch
// timers.
func WithTimerResolver(r elements.TimerResolver) Option {
	return func(v *ViewModel) { v.timerResolver = r }
}

// New creates an empty view model; SetConfiguration mounts a paywall into it.
func New(opts ...Option) *ViewModel {
	v := &ViewModel{
		logger:     zap.NewNop(),
		state:      state.Store{},
		products:   make(map[string]*products.Product),
		engine:     texts.NewEngine(),
		volatile:   make(map[string]int64),
		sessionID:  uuid.NewString(),
		retryDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SessionID identifies this presentation in lifecycle events.
func (v *ViewModel) SessionID() string { return v.sessionID }

// Loading reports whether a product load is still in flight.
func (v *ViewModel) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// SetConfiguration mounts a paywall: the runtime state is reset wholesale to
// the configuration's initial state (never merged with the previous one),
// the supplied store products are associated with the expected slots, and
// custom theme assets are layered over the configuration's own. Expected
// products with no match are loaded asynchronously when a store handler is
// installed.
func (v *ViewModel) SetConfiguration(ctx context.Context, cfg *Configuration, storeProducts []*products.Product, customAssets map[string]assets.Asset) {
	v.mu.Lock()

	v.cfg = cfg
	v.sessionID = uuid.NewString()

	v.state = state.Store{}
	for k, val := range cfg.InitialState {
		v.state[k] = val
	}

	v.assetRes = assets.NewResolver(cloneAssets(cfg.Assets), v.logger)
	if len(customAssets) > 0 {
		v.assetRes.LayerCustom(customAssets)
	}

	v.products = make(map[string]*products.Product)
	missing := v.associate(cfg.Products, storeProducts)

	var load []ExpectedProduct
	if len(missing) > 0 && v.store != nil {
		v.loading = true
		load = missing
	} else if len(missing) > 0 {
		v.logger.Warn("Expected products unresolved and no store handler installed",
			zap.Int("missing", len(missing)))
	}
	v.mu.Unlock()

	v.emit(Event{Kind: EventShown})

	if len(load) > 0 {
		go v.loadMissing(ctx, load)
	}
}

// associate matches store products to expected slots by vendor id plus base
// plan id for subscriptions, and records them under the configuration's
// product id. It returns the slots that stayed empty. Callers hold the lock.
func (v *ViewModel) associate(expected []ExpectedProduct, storeProducts []*products.Product) []ExpectedProduct {
	var missing []ExpectedProduct
	for _, exp := range expected {
		var match *products.Product
		for _, sp := range storeProducts {
			if sp.VendorID != exp.VendorID {
				continue
			}
			if sp.Subscription != nil && exp.BasePlanID != "" && sp.BasePlanID != exp.BasePlanID {
				continue
			}
			match = sp
			break
		}
		if match == nil {
			missing = append(missing, exp)
			continue
		}
		resolved := *match
		resolved.ID = exp.ID
		resolved.GroupID = exp.GroupID
		v.products[exp.ID] = &resolved
	}
	return missing
}

// BuildContext snapshots the current data into a render context. The view
// model itself serves as the event callback and timer cache.
func (v *ViewModel) BuildContext() *elements.Context {
	v.mu.Lock()
	defer v.mu.Unlock()

	in := texts.Inputs{
		Products: v.products,
		Assets:   v.assetRes,
		State:    v.state.Clone(),
	}
	if v.cfg != nil {
		in.Texts = v.cfg.Texts
	}
	if in.Assets == nil {
		in.Assets = assets.NewResolver(nil, v.logger)
	}

	ctx := elements.NewContext(v.engine, in, v.logger)
	ctx.Events = v
	ctx.TimerCache = v
	ctx.TimerResolver = v.timerResolver
	if v.cfg != nil {
		ctx.Elements = v.cfg.Elements
		ctx.PlacementID = v.cfg.PlacementID
	}
	return ctx
}

// ActiveScreen returns the screen to render: an opened additional screen if
// state names one, the main screen otherwise.
func (v *ViewModel) ActiveScreen() *templates.Screen {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cfg == nil {
		return nil
	}
	if id := v.state.OpenedScreen(); id != "" {
		if screen, ok := v.cfg.Screens[id]; ok {
			return screen
		}
		v.logger.Warn("Opened screen not found in configuration", zap.String("screen_id", id))
	}
	return v.cfg.Screen
}

// Product returns the resolved product for a configuration product id.
func (v *ViewModel) Product(id string) (*products.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p, ok := v.products[id]
	return p, ok
}

// State returns a copy of the runtime state for inspection.
func (v *ViewModel) State() state.Store {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Clone()
}

// GetLong implements the timer cache: persisted values go through the cache
// repository, volatile values live in process memory.
func (v *ViewModel) GetLong(key string, persisted bool) (int64, bool) {
	if persisted && v.cache != nil {
		return v.cache.GetLong(key, true)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	val, ok := v.volatile[key]
	return val, ok
}

// SetLong implements the timer cache counterpart of GetLong.
func (v *ViewModel) SetLong(key string, value int64, persisted bool) {
	if persisted && v.cache != nil {
		v.cache.SetLong(key, value, true)
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volatile[key] = value
}

// emit stamps and delivers one lifecycle event. Callers never hold the lock;
// emit takes it briefly for the session and placement snapshot so events
// from the load goroutine see a consistent mount.
func (v *ViewModel) emit(e Event) {
	v.mu.Lock()
	e.SessionID = v.sessionID
	if v.cfg != nil {
		e.PlacementID = v.cfg.PlacementID
	}
	listener := v.listener
	v.mu.Unlock()

	v.logger.Debug("Paywall event",
		zap.String("kind", e.Kind.String()),
		zap.String("session_id", e.SessionID),
	)
	if listener != nil {
		listener.OnEvent(e)
	}
}

func cloneAssets(in map[string]assets.Asset) map[string]assets.Asset {
	out := make(map[string]assets.Asset, len(in))
	for k, a := range in {
		out[k] = a
	}
	return out
}
