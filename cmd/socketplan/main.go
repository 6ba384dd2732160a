// SocketPlan: back panel and socket layout planner
//
// A cross-platform desktop editor for placing socket groups on mounting
// plates, with a command line for checking and exporting layout files.
//
// Build:
//   go build -ldflags "-X main.version=1.0.0" -o socketplan ./cmd/socketplan
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/SocketPlan/internal/cli"
	"github.com/piwi3910/SocketPlan/internal/configurator"
	"github.com/piwi3910/SocketPlan/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, runGUI)
	stop()
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// runGUI opens the editor window and blocks until it is closed or ctx ends.
func runGUI(ctx context.Context, opts cli.GUIOptions) error {
	application := app.NewWithID("com.piwi3910.socketplan")
	application.Settings().SetTheme(ui.NewSocketPlanTheme(opts.Config.Theme))

	window := application.NewWindow("SocketPlan")

	session := configurator.NewSession(opts.Logger)
	appUI := ui.NewApp(window, session, ui.Options{
		Config:     opts.Config,
		ConfigPath: opts.ConfigPath,
		Logger:     opts.Logger,
		Version:    version,
	})
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(float32(opts.Config.WindowWidth), float32(opts.Config.WindowHeight)))
	window.CenterOnScreen()
	window.SetOnClosed(appUI.Close)

	if opts.LayoutPath != "" {
		if err := appUI.OpenLayout(opts.LayoutPath); err != nil {
			return err
		}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(application.Quit)
		case <-done:
		}
	}()

	window.ShowAndRun()
	return ctx.Err()
}
