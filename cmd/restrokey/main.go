// Command restrokey is a system-wide Bengali phonetic keyboard for
// Windows. It hooks the keyboard, transliterates Latin keystrokes
// into Bengali in any focused application, and shows a settings and
// layout preview panel.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"restrokey/cmd/restrokey/internal/theme"
	"restrokey/cmd/restrokey/internal/ui"
	"restrokey/internal/config"
	"restrokey/internal/hook"
	keylayout "restrokey/internal/layout"
	"restrokey/internal/logging"
	"restrokey/internal/settings"
	"restrokey/internal/synth"
	"restrokey/internal/translit"
)

func main() {
	configPath := flag.String("config", "", "path to config file (TOML, JSON or YAML)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "restrokey:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logging.SetDefault(log)
	defer log.Close()

	if err := cfg.EnsureDirectories(); err != nil {
		log.Warn("cannot create data directories", "error", err)
	}

	table := keylayout.Builtin()
	if cfg.Layout.Path != "" {
		loaded, err := keylayout.Load(cfg.Layout.Path)
		if err != nil {
			// A broken layout file must not leave the user without a
			// keyboard; fall back and say so in the panel.
			log.Error("layout file rejected, using builtin",
				"path", cfg.Layout.Path, "error", err)
		} else {
			table = loaded
			log.Info("layout loaded", "name", table.Name(), "rules", table.Len())
		}
	}

	state := seedState(cfg)
	engine := translit.NewEngine(table, cfg.Input.OverflowThreshold)

	var synthesizer *synth.Synthesizer
	injector, err := synth.NewInjector()
	if err != nil {
		log.Warn("synthetic input unavailable, running panel only", "error", err)
	} else {
		synthesizer = synth.New(injector, cfg.SynthOptions(), log.WithComponent("synth").Logger)
		synthesizer.Start()
		defer synthesizer.Stop()
	}

	var keyboard *hook.Hook
	if synthesizer != nil {
		gateway := hook.NewGateway(state, engine, synthesizer, log.WithComponent("hook").Logger)
		keyboard = hook.NewHook(gateway, log.WithComponent("hook").Logger)
		if err := keyboard.Start(); err != nil {
			if errors.Is(err, hook.ErrUnsupported) {
				log.Warn("keyboard interception unavailable, running panel only")
				keyboard = nil
			} else {
				// Without the hook there is nothing to intercept.
				return err
			}
		} else {
			defer keyboard.Stop()
		}
	}

	go func() {
		if err := uiLoop(cfg, state, table, log); err != nil {
			log.Error("ui loop failed", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(&logging.Config{
		Level:     level,
		Format:    format,
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		Component: "restrokey",
	})
}

func seedState(cfg *config.Config) *settings.State {
	state := settings.New()
	state.SetEnabled(cfg.Input.Enabled)
	if cfg.Input.ActiveScript == "latin" {
		state.SetActiveScript(settings.Latin)
	}
	state.SetHotkeyEnabled(cfg.Input.HotkeyEnabled)
	state.SetInterceptAll(cfg.Input.InterceptAll)
	state.SetFontSize(float32(cfg.UI.FontSize))
	state.SetDarkTheme(cfg.UI.DarkTheme)
	state.SetShowSuggestions(cfg.UI.ShowSuggestions)
	return state
}

func uiLoop(cfg *config.Config, state *settings.State, table *keylayout.Table, log *logging.Logger) error {
	w := new(app.Window)
	w.Option(app.Title("Restro Keyboard"))
	w.Option(app.Size(unit.Dp(720), unit.Dp(560)))

	mtheme := material.NewTheme()
	mtheme.Shaper = text.NewShaper(text.WithCollection(loadFontCollection(log.Logger)))
	t := theme.NewTheme(mtheme, state.DarkTheme())

	panel := ui.NewPanel(t, state, table)

	// Redraw when the hotkey flips the script on the hook thread.
	state.SetNotify(w.Invalidate)

	stopWatch := startLayoutWatcher(cfg, panel, w, log)
	if stopWatch != nil {
		defer stopWatch()
	}

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			panel.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// startLayoutWatcher live-reloads an edited layout file into the
// panel preview. The engine's own table is fixed at startup.
func startLayoutWatcher(cfg *config.Config, panel *ui.Panel, w *app.Window, log *logging.Logger) func() {
	if !cfg.Layout.WatchReload || cfg.Layout.Path == "" {
		return nil
	}

	watcher, err := keylayout.NewWatcher(cfg.Layout.Path)
	if err != nil {
		log.Warn("layout watcher unavailable", "error", err)
		return nil
	}
	watcher.SetDebounce(cfg.LayoutDebounce())
	if err := watcher.Start(); err != nil {
		log.Warn("layout watcher unavailable", "error", err)
		return nil
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events():
				if !ok {
					return
				}
				log.Info("layout reloaded into preview",
					"name", ev.Table.Name(), "rules", ev.Table.Len())
				panel.SetTable(ev.Table,
					fmt.Sprintf("reloaded %s (%d rules), restart to apply", ev.Table.Name(), ev.Table.Len()))
				w.Invalidate()
			case err, ok := <-watcher.Errors():
				if !ok {
					return
				}
				log.Warn("layout reload failed", "error", err)
				panel.SetNotice(fmt.Sprintf("layout reload failed: %v", err), false)
				w.Invalidate()
			}
		}
	}()

	return func() {
		if err := watcher.Stop(); err != nil {
			log.Warn("layout watcher stop", "error", err)
		}
	}
}
