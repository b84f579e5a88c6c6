//go:build ignore

package main

// Standalone tool to render a paywall configuration at a matrix of frame
// sizes and write each frame to a golden directory for visual diffing.
//
// Usage: go run tools/golden-frames.go <config.yaml> <output-dir>
//
// Re-run after renderer changes and diff the output directory to see every
// layout that moved:
//
//	go run tools/golden-frames.go fixtures/onboarding.yaml goldens/
//	git diff goldens/

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skylineapps/paywallkit/internal/configfile"
	"github.com/skylineapps/paywallkit/internal/logging"
	"github.com/skylineapps/paywallkit/internal/viewmodel"
)

// sizes covers the common terminal geometries plus a narrow phone-like
// column that stresses wrapping.
var sizes = []struct {
	name   string
	width  int
	height int
}{
	{"narrow", 32, 20},
	{"standard", 60, 24},
	{"wide", 100, 30},
	{"tall", 60, 48},
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: go run tools/golden-frames.go <config.yaml> <output-dir>")
		os.Exit(1)
	}
	configPath, outDir := os.Args[1], os.Args[2]

	logger := logging.Nop()

	doc, err := configfile.Load(configPath)
	if err != nil {
		fatal("load configuration: %v", err)
	}
	cfg, err := configfile.Build(doc, logger)
	if err != nil {
		fatal("build configuration: %v", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fatal("create output dir: %v", err)
	}

	// A fixed clock keeps timer segments stable across runs
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	vm := viewmodel.New(viewmodel.WithLogger(logger))
	vm.SetConfiguration(context.Background(), cfg, nil, nil)

	screen := vm.ActiveScreen()
	if screen == nil {
		fatal("configuration has no screen")
	}

	for _, size := range sizes {
		ctx := vm.BuildContext()
		ctx.Now = now

		frame, maxScroll := screen.Render(
			ctx.WithConstraints(size.width, size.height),
			size.width, size.height, 0,
		)

		name := fmt.Sprintf("%s-%s-%dx%d.txt", cfg.PlacementID, size.name, size.width, size.height)
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(frame+"\n"), 0644); err != nil {
			fatal("write %s: %v", path, err)
		}
		fmt.Printf("%-40s max_scroll=%d\n", name, maxScroll)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
