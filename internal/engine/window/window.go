// Package window handles the SDL2 preview window that displays rendered
// frames.
package window

import (
	"fmt"
	"image"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

func init() {
	// SDL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Events summarizes input since the last PollEvents call.
type Events struct {
	Quit    bool
	Pause   bool // Space toggles playback
	Restart bool
	Step    bool // Advance one frame while paused
}

// Window wraps an SDL2 window and its 2D renderer.
type Window struct {
	config   Config
	log      *zap.Logger
	sdlWin   *sdl.Window
	renderer *sdl.Renderer

	texture    *sdl.Texture
	texW, texH int
}

// New creates a window with an accelerated renderer.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	w := &Window{config: cfg, log: log}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	var err error
	w.sdlWin, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWin, -1, flags)
	if err != nil {
		w.sdlWin.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateRenderer failed: %w", err)
	}

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync))
	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.texture != nil {
		_ = w.texture.Destroy()
	}
	if w.renderer != nil {
		_ = w.renderer.Destroy()
	}
	if w.sdlWin != nil {
		_ = w.sdlWin.Destroy()
	}
	sdl.Quit()
}

// PollEvents drains the SDL event queue.
func (w *Window) PollEvents() Events {
	var ev Events
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			ev.Quit = true
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_q:
				ev.Quit = true
			case sdl.K_SPACE:
				ev.Pause = true
			case sdl.K_r:
				ev.Restart = true
			case sdl.K_RIGHT, sdl.K_PERIOD:
				ev.Step = true
			}
		}
	}
	return ev
}

// Present draws img centered and scaled to fit the window, then shows it.
func (w *Window) Present(img *image.RGBA) error {
	size := img.Bounds().Size()
	if err := w.ensureTexture(size.X, size.Y); err != nil {
		return err
	}

	pixels, pitch, err := w.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("locking texture: %w", err)
	}
	row := size.X * 4
	for y := range size.Y {
		copy(pixels[y*pitch:y*pitch+row], img.Pix[y*img.Stride:y*img.Stride+row])
	}
	w.texture.Unlock()

	_ = w.renderer.SetDrawColor(24, 24, 28, 255)
	_ = w.renderer.Clear()
	if err := w.renderer.Copy(w.texture, nil, w.fit(size.X, size.Y)); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	w.renderer.Present()
	return nil
}

// ensureTexture recreates the streaming texture when the frame size changes.
func (w *Window) ensureTexture(width, height int) error {
	if w.texture != nil && w.texW == width && w.texH == height {
		return nil
	}
	if w.texture != nil {
		_ = w.texture.Destroy()
	}

	tex, err := w.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(width), int32(height))
	if err != nil {
		return fmt.Errorf("SDL_CreateTexture failed: %w", err)
	}
	_ = tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	w.texture, w.texW, w.texH = tex, width, height
	w.log.Debug("frame texture resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// fit returns the largest rect with the frame's aspect ratio that fits the
// window, centered.
func (w *Window) fit(width, height int) *sdl.Rect {
	ww, wh := w.GetSize()
	scale := min(float64(ww)/float64(width), float64(wh)/float64(height))
	dw, dh := int32(float64(width)*scale), int32(float64(height)*scale)
	return &sdl.Rect{X: (int32(ww) - dw) / 2, Y: (int32(wh) - dh) / 2, W: dw, H: dh}
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWin.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWin.SetTitle(title)
}
