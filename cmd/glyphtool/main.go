// glyphtool is a CLI utility for inspecting glyphfx layouts, animations
// and resolved frames.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/Faultbox/glyphfx/internal/config"
	"github.com/Faultbox/glyphfx/internal/engine/debug"
	"github.com/Faultbox/glyphfx/internal/engine/animator"
	"github.com/Faultbox/glyphfx/internal/layout"
	"github.com/Faultbox/glyphfx/internal/logger"
	"github.com/Faultbox/glyphfx/internal/scene"
	"github.com/Faultbox/glyphfx/pkg/encoding"
	"github.com/Faultbox/glyphfx/pkg/glyph"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(args)
	case "animations", "anims":
		cmdAnimations()
	case "resolve", "run":
		cmdResolve(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`glyphtool - per-character text animation utility

Usage:
  glyphtool [-config file] [-debug] [-fps N] [-frames N] <command> [options]

Commands:
  info [-file f [-encoding e]] <text> Show the layout of every character
  animations                         List animations and their parameters
  resolve [-char N] <scene.yaml>     Run a scene and print resolved quads
          [-snapshot dir -every N]   Also write PNG frames

Examples:
  glyphtool info "Hello, 世界"
  glyphtool info -file legacy.txt -encoding euc-kr
  glyphtool animations
  glyphtool -frames 60 resolve -char 0 scene.yaml
  glyphtool resolve -snapshot ./frames -every 5 scene.yaml`)
}

func mustConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	file := fs.String("file", "", "Read text from file instead of arguments")
	enc := fs.String("encoding", "", "Source encoding of -file (e.g. euc-kr, shift_jis)")
	fs.Parse(args)

	if fs.NArg() < 1 && *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: glyphtool info [-file path [-encoding name]] [text]")
		os.Exit(1)
	}
	cfg := mustConfig()
	defer logger.Sync()

	text := strings.Join(fs.Args(), " ")
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if text, err = encoding.Decode(data, *enc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Log.Debug("text decoded",
			zap.String("file", *file),
			zap.String("encoding", *enc),
			zap.Int("bytes", len(data)))
	}

	glyphs, err := layout.Layout(text, cfg.LayoutOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Characters: %d\n", len(glyphs))
	fmt.Println()
	fmt.Printf("  %-5s %-6s %-5s %-5s %-5s %-5s %s\n", "idx", "rune", "line", "word", "page", "cells", "centroid")
	for _, g := range glyphs {
		r := string(g.Info.Rune)
		if !g.Info.Visible {
			r = fmt.Sprintf("%U", g.Info.Rune)
		}
		c := g.Quad.Centroid()
		fmt.Printf("  %-5d %s %-5d %-5d %-5d %-5d (%.2f, %.2f)\n",
			g.Info.Index, runewidth.FillRight(r, 6), g.Info.Line, g.Info.Word, g.Info.Page,
			runewidth.RuneWidth(g.Info.Rune), c.X, c.Y)
	}
}

func cmdAnimations() {
	reg := animator.DefaultRegistry()
	for _, name := range reg.Names() {
		anim, _ := reg.Lookup(name)
		fmt.Println(name)
		for _, p := range anim.Schema().Params() {
			alias := ""
			if len(p.Aliases) > 0 {
				alias = " (" + strings.Join(p.Aliases, ", ") + ")"
			}
			fmt.Printf("  %-12s %-7s default %v%s\n", p.Name, p.Kind, p.Default, alias)
		}
	}
}

func cmdResolve(args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	char := fs.Int("char", -1, "Print only this character (-1 = all)")
	shots := fs.String("snapshot", "", "Write PNG snapshots to this directory")
	every := fs.Int("every", 0, "Snapshot every N frames (0 = last frame only)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: glyphtool resolve [-char N] [-snapshot dir [-every N]] <scene.yaml>")
		os.Exit(1)
	}
	cfg := mustConfig()
	defer logger.Sync()

	sc, err := scene.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := []animator.Option{
		animator.WithLogger(logger.Log.Named("animator")),
		animator.WithLayout(cfg.LayoutOptions()),
	}
	if c, ok := cfg.DefaultColor(); ok {
		opts = append(opts, animator.WithDefaultColor(c))
	}
	an := animator.New(opts...)

	if err := sc.Validate(animator.DefaultRegistry()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := sc.Apply(an); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var snap *debug.Snapshot
	if *shots != "" {
		snap = debug.NewSnapshot(*shots, "frame")
	}
	saveSnapshot := func() {
		path, err := snap.Save(an.Buffer(), an.Frame())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Log.Info("snapshot written", zap.String("path", path))
	}

	dt := cfg.FrameDelta()
	var warnings int
	for range cfg.Animator.Frames {
		stats := an.Update(dt)
		warnings += stats.Warnings
		logger.Log.Debug("frame",
			zap.Int("frame", stats.Frame),
			zap.Int("resolved", stats.Resolved),
			zap.Int("uploaded", stats.Uploaded),
			zap.Stringer("channels", stats.Uploads))

		if snap != nil && *every > 0 && stats.Frame%*every == 0 {
			saveSnapshot()
		}
	}
	an.Buffer().Flush()
	if snap != nil && (*every <= 0 || an.Frame()%*every != 0) {
		saveSnapshot()
	}

	fmt.Printf("Scene:    %s\n", fs.Arg(0))
	fmt.Printf("Frames:   %d at %d fps (%.2fs)\n", an.Frame(), cfg.Animator.FPS, an.Time())
	fmt.Printf("Warnings: %d\n", warnings)
	fmt.Println()

	for i, ch := range an.Table().All() {
		if *char >= 0 && i != *char {
			continue
		}
		q, err := an.Buffer().Quad(i * glyph.CornerCount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[%d] %q\n", i, ch.Info.Rune)
		for _, c := range glyph.Corners {
			v := q[c]
			fmt.Printf("  %-2s pos (%7.3f, %7.3f, %7.3f) color %s uv (%.3f, %.3f)\n",
				c, v.Position.X, v.Position.Y, v.Position.Z, v.Color, v.UV0.X, v.UV0.Y)
		}
	}
}
