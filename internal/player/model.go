package player

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/skylineapps/paywallkit/internal/elements"
	"github.com/skylineapps/paywallkit/internal/viewmodel"
)

// frameRate is the player's tick frequency. 8 frames a second covers the
// 125ms micro-tick cadence sub-second timer formats need.
const frameRate = 8

type tickMsg time.Time

type paywallEventMsg viewmodel.Event

var (
	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)
	hotspotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)

// Model is the bubbletea model hosting one mounted paywall.
type Model struct {
	vm     *viewmodel.ViewModel
	logger *zap.Logger

	width   int
	height  int
	scroll  int
	maxScrl int

	mounted time.Time
	now     time.Time

	pagers map[string]*pagerState

	frame    string
	hotspots []elements.Hotspot

	events chan viewmodel.Event
	toast  string
	toastT time.Time

	spinner spinner.Model
	keys    keyMap
	help    help.Model

	done bool
}

// New creates a player around a view model. The returned listener must be
// installed on the view model (viewmodel.WithListener) before mounting so
// lifecycle events surface as toasts.
func New(vm *viewmodel.ViewModel, logger *zap.Logger) (*Model, viewmodel.Listener) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	m := &Model{
		vm:      vm,
		logger:  logger,
		mounted: time.Now(),
		now:     time.Now(),
		pagers:  make(map[string]*pagerState),
		events:  make(chan viewmodel.Event, 16),
		spinner: sp,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	listener := viewmodel.ListenerFunc(func(e viewmodel.Event) {
		select {
		case m.events <- e:
		default:
			// Toast channel full; the log still records the event
			logger.Debug("Dropping paywall event toast", zap.String("kind", e.Kind.String()))
		}
	})
	return m, listener
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForEvent(), m.spinner.Tick)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return paywallEventMsg(<-m.events)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.render()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		for _, p := range m.pagers {
			p.tick(m.now)
		}
		m.render()
		return m, m.tick()

	case paywallEventMsg:
		ev := viewmodel.Event(msg)
		m.toast = toastText(ev)
		m.toastT = m.now
		if ev.Kind == viewmodel.EventCloseRequested {
			m.done = true
			return m, tea.Quit
		}
		return m, m.waitForEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.vm.OnActions([]elements.Action{{Type: elements.ActionCloseScreen}})
		m.render()

	case key.Matches(msg, m.keys.Up):
		if m.scroll > 0 {
			m.scroll--
			m.render()
		}

	case key.Matches(msg, m.keys.Down):
		if m.scroll < m.maxScrl {
			m.scroll++
			m.render()
		}

	case key.Matches(msg, m.keys.PrevPage):
		m.flipPagers(-1)
		m.render()

	case key.Matches(msg, m.keys.NextPage):
		m.flipPagers(1)
		m.render()

	case key.Matches(msg, m.keys.Tap):
		if spot, ok := m.hotspotForKey(msg.String()); ok {
			m.logger.Debug("Hotspot tapped", zap.String("id", spot.ID))
			m.vm.OnActions(spot.Actions)
			m.render()
		}
	}
	return m, nil
}

// hotspotForKey maps a digit key to the hotspot registered at that position
// during the last render pass.
func (m *Model) hotspotForKey(digit string) (elements.Hotspot, bool) {
	n, err := strconv.Atoi(digit)
	if err != nil || n < 1 || n > len(m.hotspots) {
		return elements.Hotspot{}, false
	}
	return m.hotspots[n-1], true
}

func (m *Model) flipPagers(delta int) {
	for _, p := range m.pagers {
		p.flip(delta, m.now)
	}
}

// render runs one full pass: build a context, render the active screen,
// cache the frame and this pass's hotspots.
func (m *Model) render() {
	if m.width == 0 || m.height == 0 {
		return
	}
	screen := m.vm.ActiveScreen()
	if screen == nil {
		m.frame = ""
		m.hotspots = nil
		return
	}

	ctx := m.vm.BuildContext()
	ctx.Now = m.now
	ctx.Elapsed = m.now.Sub(m.mounted)
	ctx.PagerIndex = m.pagerIndex(ctx)

	viewport := m.height - m.chromeHeight()
	if viewport < 1 {
		viewport = 1
	}
	frame, maxScroll := screen.Render(ctx.WithConstraints(m.width, viewport), m.width, viewport, m.scroll)
	m.frame = frame
	m.maxScrl = maxScroll
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	m.hotspots = ctx.Hotspots()
}

// pagerIndex lazily registers pager clocks as the renderer asks for them.
func (m *Model) pagerIndex(ctx *elements.Context) func(string) int {
	return func(pagerID string) int {
		if state, ok := m.pagers[pagerID]; ok {
			return state.displayIndex()
		}
		if pager, ok := findPager(ctx.Elements, pagerID); ok {
			state := newPagerState(pager, m.now)
			m.pagers[pagerID] = state
			return state.displayIndex()
		}
		return 0
	}
}

// findPager looks a pager up among the screen-level element definitions.
// Pagers placed inline register on first render through RegisterPager.
func findPager(defs map[string]elements.Element, id string) (*elements.Pager, bool) {
	for _, el := range defs {
		if p, ok := el.(*elements.Pager); ok && p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// RegisterPager installs the clock for a pager known ahead of rendering.
func (m *Model) RegisterPager(p *elements.Pager) {
	if _, ok := m.pagers[p.ID]; !ok {
		m.pagers[p.ID] = newPagerState(p, m.now)
	}
}

// chromeHeight is the number of rows the player reserves below the paywall.
func (m *Model) chromeHeight() int {
	return 2 // hotspot legend + help/toast line
}

func (m *Model) View() string {
	if m.done {
		return ""
	}
	if m.width == 0 {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(hotspotStyle.Render(m.legend()))
	b.WriteString("\n")

	switch {
	case m.vm.Loading():
		b.WriteString(m.spinner.View() + loadingStyle.Render(" loading products..."))
	case m.toast != "" && m.now.Sub(m.toastT) < 4*time.Second:
		b.WriteString(toastStyle.Render(m.toast))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// legend lists the tappable elements of the last pass with their keys.
func (m *Model) legend() string {
	if len(m.hotspots) == 0 {
		return "no tappable elements"
	}
	parts := make([]string, 0, len(m.hotspots))
	for i, spot := range m.hotspots {
		if i >= 9 {
			break
		}
		label := spot.Label
		if label == "" {
			label = spot.ID
		}
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, label))
	}
	return strings.Join(parts, "  ")
}

func toastText(e viewmodel.Event) string {
	switch e.Kind {
	case viewmodel.EventPurchaseStarted:
		return "purchasing " + e.ProductID + "..."
	case viewmodel.EventPurchaseCompleted:
		return "purchase complete: " + e.ProductID
	case viewmodel.EventPurchaseFailed:
		return "purchase failed: " + errText(e.Err)
	case viewmodel.EventRestoreCompleted:
		return "purchases restored"
	case viewmodel.EventRestoreFailed:
		return "restore failed: " + errText(e.Err)
	case viewmodel.EventProductsLoadFailed:
		return "product load failed: " + errText(e.Err)
	case viewmodel.EventOpenURL:
		return "open " + e.URL
	case viewmodel.EventTimerExpired:
		return "offer expired"
	default:
		return e.Kind.String()
	}
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
