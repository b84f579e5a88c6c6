package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/skylineapps/paywallkit/internal/configfile"
	"github.com/skylineapps/paywallkit/internal/logging"
	"github.com/skylineapps/paywallkit/internal/player"
	"github.com/skylineapps/paywallkit/internal/preview"
	"github.com/skylineapps/paywallkit/internal/products"
	"github.com/skylineapps/paywallkit/internal/viewmodel"
)

// Shared command flags
var (
	logLevel  string
	mockStore bool

	renderWidth  int
	renderHeight int
	renderScroll int

	serveHost     string
	servePort     int
	serveWidth    int
	serveHeight   int
	serveAnnounce bool
	serveInstance string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; empty = silent)")
	rootCmd.PersistentFlags().BoolVar(&mockStore, "mock-store", true, "Resolve products from placeholder store data instead of a billing backend")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
}

// runCmd launches the interactive terminal player
var runCmd = &cobra.Command{
	Use:   "run <config.yaml>",
	Short: "Run a paywall interactively in the terminal",
	Long: `Load a paywall configuration and run it in the terminal.

The player renders the paywall at the terminal's size, ticks timers and
pager animations at frame rate, and maps number keys to the paywall's
tappable regions. Purchases resolve against placeholder store data unless
--mock-store=false.`,
	Example: `  # Run a paywall
  paywall-preview run onboarding.yaml

  # Run with debug logging
  paywall-preview run onboarding.yaml --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("configuration file required (see 'paywall-preview --help')")
	}

	logger, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	vm := viewmodel.New(viewmodel.WithLogger(logger))
	m, listener := player.New(vm, logger)
	if err := mount(cmd.Context(), vm, listener, args[0], logger); err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("player failed: %w", err)
	}
	return nil
}

// renderCmd renders a single frame to stdout
var renderCmd = &cobra.Command{
	Use:   "render <config.yaml>",
	Short: "Render one frame of a paywall to stdout",
	Long: `Render a paywall configuration once and print the frame.

Useful for golden-file review and quick visual checks in scripts. The
frame size defaults to the terminal size when stdout is a terminal.`,
	Example: `  # Render at terminal size
  paywall-preview render onboarding.yaml

  # Render at a fixed size for golden files
  paywall-preview render onboarding.yaml --width 60 --height 24`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Frame width in cells (0 = terminal width)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Frame height in cells (0 = terminal height)")
	renderCmd.Flags().IntVar(&renderScroll, "scroll", 0, "Scroll offset in rows")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	width, height := renderWidth, renderHeight
	if width < 1 || height < 1 {
		tw, th, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return fmt.Errorf("stdout is not a terminal; pass --width and --height")
		}
		if width < 1 {
			width = tw
		}
		if height < 1 {
			height = th - 1
		}
	}

	vm := viewmodel.New(viewmodel.WithLogger(logger))
	if err := mount(cmd.Context(), vm, nil, args[0], logger); err != nil {
		return err
	}

	screen := vm.ActiveScreen()
	if screen == nil {
		return fmt.Errorf("configuration has no screen to render")
	}

	ctx := vm.BuildContext()
	ctx.Now = time.Now()
	frame, _ := screen.Render(ctx.WithConstraints(width, height), width, height, renderScroll)
	fmt.Println(frame)
	return nil
}

// serveCmd starts the live-preview server
var serveCmd = &cobra.Command{
	Use:   "serve <config.yaml>",
	Short: "Start the live-preview server",
	Long: `Start a WebSocket server that mirrors the paywall to design tools.

Connected tools receive rendered frames at frame rate and can send taps,
scrolls and page flips back. With --announce the server registers itself
over mDNS so tools on the local network discover it automatically.`,
	Example: `  # Serve on the default port
  paywall-preview serve onboarding.yaml

  # Serve on a fixed port with mDNS announcement
  paywall-preview serve onboarding.yaml --port 7455 --announce`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 7455, "Listen port (0 = random free port)")
	serveCmd.Flags().IntVar(&serveWidth, "width", 60, "Frame width in cells")
	serveCmd.Flags().IntVar(&serveHeight, "height", 24, "Frame height in cells")
	serveCmd.Flags().BoolVar(&serveAnnounce, "announce", false, "Announce the server over mDNS")
	serveCmd.Flags().StringVar(&serveInstance, "instance", "", "mDNS instance name (defaults to the placement id)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	vm := viewmodel.New(viewmodel.WithLogger(logger))
	doc, err := configfile.Load(args[0])
	if err != nil {
		return err
	}

	instance := serveInstance
	if instance == "" {
		instance = doc.PlacementID
	}
	srv, listener := preview.New(preview.Config{
		Host:     serveHost,
		Port:     servePort,
		Width:    serveWidth,
		Height:   serveHeight,
		Announce: serveAnnounce,
		Instance: instance,
	}, vm, logger)

	if err := mountDocument(cmd.Context(), vm, listener, doc, logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// validateCmd checks a configuration without running it
var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml>",
	Short: "Validate a paywall configuration file",
	Long: `Parse, validate and dry-build a paywall configuration.

Structural problems (missing placement, malformed screens, bad asset
definitions) fail validation. Unknown element types are reported by the
build as warnings and render as skipped elements, matching the engine's
runtime behavior.`,
	Example: `  # Validate a configuration
  paywall-preview validate onboarding.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := configfile.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := configfile.Build(doc, logger)
	if err != nil {
		return err
	}

	fmt.Printf("%s: OK\n\n", args[0])
	fmt.Printf("  Placement:  %s\n", cfg.PlacementID)
	fmt.Printf("  Screens:    %d\n", 1+len(cfg.Screens))
	fmt.Printf("  Elements:   %d shared\n", len(cfg.Elements))
	fmt.Printf("  Texts:      %d\n", len(cfg.Texts))
	fmt.Printf("  Assets:     %d\n", len(cfg.Assets))
	fmt.Printf("  Products:   %d\n", len(cfg.Products))
	return nil
}

// mount loads a configuration file and mounts it into the view model.
func mount(ctx context.Context, vm *viewmodel.ViewModel, listener viewmodel.Listener, path string, logger *zap.Logger) error {
	doc, err := configfile.Load(path)
	if err != nil {
		return err
	}
	return mountDocument(ctx, vm, listener, doc, logger)
}

func mountDocument(ctx context.Context, vm *viewmodel.ViewModel, listener viewmodel.Listener, doc *configfile.Document, logger *zap.Logger) error {
	cfg, err := configfile.Build(doc, logger)
	if err != nil {
		return err
	}
	if listener != nil {
		viewmodel.WithListener(listener)(vm)
	}

	var storeProducts []*products.Product
	if mockStore {
		storeProducts = mockProducts(doc)
	}
	vm.SetConfiguration(ctx, cfg, storeProducts, nil)
	return nil
}

// mockProducts fabricates store data matching the configuration's expected
// products so paywalls preview fully without a billing backend.
func mockProducts(doc *configfile.Document) []*products.Product {
	out := make([]*products.Product, 0, len(doc.Products))
	for i, p := range doc.Products {
		mock := &products.Product{
			ID:       p.ID,
			VendorID: p.VendorID,
			Title:    p.ID,
			GroupID:  p.Group,
			Price: products.Price{
				Amount:    float64(i+1) * 4.99,
				Currency:  "USD",
				Localized: fmt.Sprintf("$%.2f", float64(i+1)*4.99),
			},
		}
		if p.BasePlanID != "" {
			mock.BasePlanID = p.BasePlanID
			mock.Subscription = &products.Period{
				Unit:          products.PeriodMonth,
				NumberOfUnits: 1,
			}
		}
		out = append(out, mock)
	}
	return out
}
