// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeltabs/main.go
// Summary: texeltabs command: tabbed floating windows in the terminal.
// Usage: Run `texeltabs [--windows file.yaml]` inside a terminal.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/framegrace/texeltabs/config"
	"github.com/framegrace/texeltabs/dom"
	"github.com/framegrace/texeltabs/internal/eventloop"
	"github.com/framegrace/texeltabs/popup"
	"github.com/framegrace/texeltabs/termui"
	"github.com/framegrace/texeltabs/wm"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type options struct {
	configPath  string
	windowsPath string
	logPath     string
	browser     string
	panicLog    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "texeltabs",
		Short:         "Tabbed floating windows in the terminal",
		Long:          "texeltabs shows windows in one draggable, resizable tabbed frame with a minimized dock. Tabs can be popped out into browser windows.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Config file (default: user config dir/texeltabs/texeltabs.json)")
	f.StringVar(&opts.windowsPath, "windows", "", "YAML file describing the startup windows")
	f.StringVar(&opts.logPath, "log", "", "Log file (default: user config dir/texeltabs/logs/texeltabs.log)")
	f.StringVar(&opts.browser, "browser", "", "Browser binary for popout windows (overrides popup.browser_path)")
	f.StringVar(&opts.panicLog, "panic-log", "", "File to append panic stack traces")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logFile, err := setupLogging(opts.logPath)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logFile.Close()

	if opts.configPath != "" {
		config.UsePath(opts.configPath)
	}
	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Config: Using defaults: %v", err)
	}

	specs := defaultWindows()
	if opts.windowsPath != "" {
		if specs, err = loadWindows(opts.windowsPath); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	panics := newPanicLogger(opts.panicLog, screen.Fini)
	defer panics.Recover("main loop")
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))

	settings := wm.SettingsFromConfig(cfg)
	cols, rows := screen.Size()
	doc := dom.NewDocument(cols*settings.CellWidth, rows*settings.CellHeight)
	loop := eventloop.NewLoop(64)
	defer loop.Close()

	browser := opts.browser
	if browser == "" {
		browser = cfg.GetString("popup", "browser_path", "")
	}
	theme := termui.ThemeFromConfig(cfg)
	// Opening a popup blocks the UI loop until the browser is up or
	// launch_timeout_ms expires.
	host := popup.NewHost(ctx, popup.Options{
		ExecPath:      browser,
		Style:         pageStyle(cfg),
		Headless:      cfg.GetBool("popup", "headless", false),
		LaunchTimeout: cfg.GetMillis("popup", "launch_timeout_ms", 0),
	})

	mgr := wm.NewManager(doc, loop, wm.WithSettings(settings), wm.WithPopupHost(host))
	app := termui.NewApp(screen, loop, mgr, theme, termui.KeymapFromConfig(cfg))

	for _, spec := range specs {
		d, err := spec.descriptor()
		if err != nil {
			return err
		}
		if _, err := mgr.CreateWindow(d); err != nil {
			return err
		}
		if spec.Popout {
			if err := mgr.OpenActiveInPopup(); err != nil {
				log.Printf("WM: Startup popout of %q failed: %v", spec.ID, err)
			}
		}
	}

	err = app.Run(ctx)
	for _, win := range mgr.Windows() {
		mgr.CloseWindow(win.ID)
	}
	return err
}

func pageStyle(cfg config.Config) popup.PageStyle {
	return popup.PageStyle{
		Background: cfg.GetString("theme", "surface_bg", popup.DefaultPageStyle.Background),
		Foreground: cfg.GetString("theme", "surface_fg", popup.DefaultPageStyle.Foreground),
	}
}

func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "texeltabs", "logs", "texeltabs.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}
