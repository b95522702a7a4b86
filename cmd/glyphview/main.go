// glyphview plays a glyphfx scene in an SDL2 window.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glyphfx/internal/config"
	"github.com/Faultbox/glyphfx/internal/engine/animator"
	"github.com/Faultbox/glyphfx/internal/engine/debug"
	"github.com/Faultbox/glyphfx/internal/engine/window"
	"github.com/Faultbox/glyphfx/internal/logger"
	"github.com/Faultbox/glyphfx/internal/scene"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: glyphview [-config file] [-debug] [-fps N] <scene.yaml>")
		fmt.Fprintln(os.Stderr, "Keys: space pause, right step, r restart, esc quit")
		os.Exit(1)
	}

	if err := run(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Log

	sc, err := scene.Load(scenePath)
	if err != nil {
		return err
	}
	if err := sc.Validate(animator.DefaultRegistry()); err != nil {
		return err
	}

	newAnimator := func() (*animator.Animator, error) {
		opts := []animator.Option{
			animator.WithLogger(log.Named("animator")),
			animator.WithLayout(cfg.LayoutOptions()),
		}
		if c, ok := cfg.DefaultColor(); ok {
			opts = append(opts, animator.WithDefaultColor(c))
		}
		an := animator.New(opts...)
		return an, sc.Apply(an)
	}
	an, err := newAnimator()
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{
		Title:  "glyphview - " + scenePath,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

	snap := debug.NewSnapshot("", "")
	snap.Scale = float32(cfg.Window.Scale)

	dt := cfg.FrameDelta()
	frameTime := time.Duration(float64(time.Second) * float64(dt))
	paused := false
	for {
		start := time.Now()

		ev := win.PollEvents()
		if ev.Quit {
			return nil
		}
		if ev.Pause {
			paused = !paused
			log.Info("playback toggled", zap.Bool("paused", paused))
		}
		if ev.Restart {
			if an, err = newAnimator(); err != nil {
				return err
			}
			log.Info("scene restarted")
		}

		if !paused || ev.Step {
			stats := an.Update(dt)
			log.Debug("frame",
				zap.Int("frame", stats.Frame),
				zap.Int("uploaded", stats.Uploaded),
				zap.Stringer("channels", stats.Uploads))
		}
		if img, err := snap.Render(an.Buffer()); err != nil {
			log.Warn("frame not rendered", zap.Int("frame", an.Frame()), zap.Error(err))
		} else if err := win.Present(img); err != nil {
			return err
		}
		an.Buffer().Flush()

		if !cfg.Window.VSync {
			if rest := frameTime - time.Since(start); rest > 0 {
				sdl.Delay(uint32(rest.Milliseconds()))
			}
		}
	}
}
