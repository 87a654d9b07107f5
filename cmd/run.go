package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ThatOtherAndrew/Flasher/internal/app"
	"github.com/ThatOtherAndrew/Flasher/internal/audio"
	"github.com/ThatOtherAndrew/Flasher/internal/config"
	"github.com/ThatOtherAndrew/Flasher/internal/fire"
	"github.com/ThatOtherAndrew/Flasher/internal/logger"
	"github.com/ThatOtherAndrew/Flasher/internal/opengl"
	"github.com/ThatOtherAndrew/Flasher/internal/terminal"
	"github.com/ThatOtherAndrew/Flasher/pkg/window"
)

var runFlags struct {
	backend      string
	step         float32
	easing       string
	fullscreen   bool
	sound        bool
	startRunning bool
	shaderDir    string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the flasher (default command)",
	RunE:  Run,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
	// glfw and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&runFlags.backend, "backend", config.BackendGL, "display backend: gl or terminal")
	f.Float32Var(&runFlags.step, "step", 2.004, "initial step per frame")
	f.StringVar(&runFlags.easing, "easing", "cosine", "easing policy: cosine or linear")
	f.BoolVar(&runFlags.fullscreen, "fullscreen", false, "start in fullscreen")
	f.BoolVar(&runFlags.sound, "sound", false, "play a blip at every fire burst")
	f.BoolVar(&runFlags.startRunning, "start-running", false, "animate before the first fire")
	f.StringVar(&runFlags.shaderDir, "shader-dir", "", "load solid.vert.glsl and solid.frag.glsl from this directory")
}

// applyRunFlags copies explicitly set flags over the settings file values.
func applyRunFlags(flags *pflag.FlagSet, s *config.Settings) {
	if flags.Changed("backend") {
		s.Backend = runFlags.backend
	}
	if flags.Changed("step") {
		s.Step = runFlags.step
	}
	if flags.Changed("easing") {
		s.Easing = runFlags.easing
	}
	if flags.Changed("fullscreen") {
		s.Fullscreen = runFlags.fullscreen
	}
	if flags.Changed("sound") {
		s.Sound = runFlags.sound
	}
	if flags.Changed("start-running") {
		s.StartRunning = runFlags.startRunning
	}
	if logLevel != "" {
		s.LogLevel = logLevel
	}
	s.Validate()
}

// glBackend pairs the window with the renderer drawing into it.
type glBackend struct {
	*window.Window
	*opengl.Renderer
}

func Run(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown arguments: %v", args)
	}

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	applyRunFlags(cmd.Flags(), settings)

	// Validate already replaced an unknown level with the default
	level, err := logger.ParseLogLevel(settings.LogLevel)
	if err != nil {
		return err
	}

	logOut, closeLog, err := logOutput(settings.Backend)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.Setup(logOut, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var fireOpts []fire.Option
	if settings.Sound {
		cue := audio.New(log)
		defer cue.Close()
		fireOpts = append(fireOpts, fire.WithBurstHook(cue.Burst))
	}

	var backend app.Backend
	switch settings.Backend {
	case config.BackendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		term, err := terminal.New(screen)
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer term.Destroy()
		backend = term
	default:
		win, err := window.NewWindow(window.Options{
			Title:      "flasher",
			Width:      settings.Width,
			Height:     settings.Height,
			Fullscreen: settings.Fullscreen,
		})
		if err != nil {
			log.Error("Failed to create window", "err", err)
			return err
		}
		defer win.Destroy()

		renderer := opengl.New(win, opengl.Options{ShaderDir: runFlags.shaderDir})
		if err := renderer.InitGL(); err != nil {
			log.Error("Failed to initialize OpenGL", "err", err)
			return fmt.Errorf("failed to initialize OpenGL: %w", err)
		}
		defer renderer.Destroy()
		backend = glBackend{Window: win, Renderer: renderer}
	}

	a, err := app.New(settings, backend, log, fireOpts...)
	if err != nil {
		return err
	}
	a.Run(ctx)
	return nil
}

// logOutput keeps logs off the screen when the terminal is the display.
func logOutput(backend string) (io.Writer, func(), error) {
	if backend != config.BackendTerminal {
		return os.Stderr, func() {}, nil
	}
	dir, err := config.GetDir()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "flasher.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
