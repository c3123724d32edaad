package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/particle-hero/audio"
	"github.com/lixenwraith/particle-hero/config"
	"github.com/lixenwraith/particle-hero/hero"
	"github.com/lixenwraith/particle-hero/logging"
)

// rootOptions carries persistent flags and injectable dependencies
type rootOptions struct {
	configFile string
	newScreen  func() (tcell.Screen, error)
}

// flagKeys maps persistent flags onto configuration keys
var flagKeys = map[string]string{
	"effect":    "effect",
	"fps":       "render.fps",
	"audio":     "audio.enabled",
	"stats":     "render.stats",
	"log-level": "log.level",
	"log-file":  "log.file",
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{newScreen: tcell.NewScreen})
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	def := config.Default()

	cmd := &cobra.Command{
		Use:           "particle-hero",
		Short:         "Particle field hero section for the terminal",
		Long:          "Renders a lattice of particles that morphs into a glyph shape when the pointer hovers the title.\nPress space to toggle the shape, q or Esc to quit.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHero(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("particle-hero {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", fmt.Sprintf("config file (default ./%s when present)", config.DefaultFile))
	pf.String("effect", def.Effect, "background effect: field or dotgrid")
	pf.Int("fps", def.Render.FPS, "frames per second")
	pf.Bool("audio", def.Audio.Enabled, "play a chime on morph transitions")
	pf.Bool("stats", def.Render.Stats, "show the frame stats line, toggle with s")
	pf.String("log-level", def.Log.Level, "log level")
	pf.String("log-file", def.Log.File, "log file, empty disables file logging")

	cmd.AddCommand(newSampleCmd(opts), newConfigCmd(opts), newVersionCmd())
	return cmd
}

// loadConfig binds the persistent flags and loads the layered configuration
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	v := viper.New()
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config.Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	return config.Load(v, opts.configFile)
}

func runHero(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// The screen owns stdout, file logging only
	logger, closeLog, err := logging.New(cfg.Log, nil)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	effect, err := hero.NewEffect(cfg.Effects(), logger)
	if err != nil {
		return err
	}

	screen, err := opts.newScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	crash := func(r any) {
		screen.Fini()
		logger.Error("crashed", zap.Any("panic", r), zap.Stack("stack"))
		_ = closeLog()
		fmt.Fprintf(os.Stderr, "\n\x1b[31mPARTICLE-HERO CRASHED: %v\x1b[0m\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()
	defer screen.Fini()

	cue := audio.Open(cfg.Audio, logger.Named("audio"))
	defer cue.Close()

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		zap.String("version", Version),
		zap.String("effect", cfg.Effect),
		zap.Int("fps", cfg.Render.FPS))

	view := hero.NewView(screen, effect, cfg.Render,
		hero.WithLogger(logger.Named("hero")),
		hero.WithCue(cue),
		hero.WithCrashHandler(crash))
	return view.Run(ctx)
}

// consoleLogger logs to the command's stderr as well as the configured file
func consoleLogger(cmd *cobra.Command, cfg logging.Config) (*zap.Logger, func() error, error) {
	return logging.New(cfg, zapcore.AddSync(cmd.ErrOrStderr()))
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
