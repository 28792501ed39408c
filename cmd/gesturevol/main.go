package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/gesturevol/internal/app"
	"github.com/ayusman/gesturevol/internal/detector"
	"github.com/ayusman/gesturevol/internal/logging"
	"github.com/ayusman/gesturevol/internal/plugin"
	"github.com/ayusman/gesturevol/internal/tray"
	"github.com/ayusman/gesturevol/internal/volume"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI flags
var (
	noAudioFlag   bool
	cameraFlag    int
	widthFlag     int
	heightFlag    int
	pluginDirFlag string
	logLevelFlag  string
	trayFlag      bool
	syncEveryFlag int
)

// rootCmd is the main Cobra command for the gesturevol CLI.
var rootCmd = &cobra.Command{
	Use:   "gesturevol",
	Short: "Control system volume using hand gestures",
	Long: `gesturevol watches the webcam for a pinch between thumb and index finger
and maps the distance between them to the system output volume.

Two gestures are recognized: one hand with index and middle fingers raised
(thumb to index distance), or both hands (the closer thumb to opposite index
pair). Without a working volume plugin, or with --no-audio, the overlay runs
in demo mode and the system volume is never touched.

Keys in the preview window: q quits, m mutes, u unmutes.

Examples:
  gesturevol
  gesturevol --no-audio
  gesturevol --camera 1 --width 1280 --height 720
  gesturevol --tray --log-level debug`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMain,
}

func init() {
	defaults := app.DefaultConfig()

	rootCmd.Flags().BoolVar(&noAudioFlag, "no-audio", false, "Run in demo mode without changing system volume")
	rootCmd.Flags().IntVar(&cameraFlag, "camera", defaults.CameraID, "Camera device index")
	rootCmd.Flags().IntVar(&widthFlag, "width", defaults.Width, "Camera frame width")
	rootCmd.Flags().IntVar(&heightFlag, "height", defaults.Height, "Camera frame height")
	rootCmd.Flags().StringVar(&pluginDirFlag, "plugin-dir", "", "Plugin directory (default: ./plugins, then ~/.gesturevol/plugins)")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", logging.DefaultLevel(), "Log level: debug, info, warn, error (env "+logging.EnvLevel+")")
	rootCmd.Flags().BoolVar(&trayFlag, "tray", false, "Show a system tray menu with mute, unmute and quit")
	rootCmd.Flags().IntVar(&syncEveryFlag, "sync-every", defaults.SyncEvery, "Read the system volume back every N frames; each read runs the volume plugin, so raise this if the preview stutters")

	// Errors from runMain go through the logger; flag errors have no logger yet.
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln("Error:", err)
		return err
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runMain is the main execution logic called by Cobra.
func runMain(cmd *cobra.Command, args []string) error {
	level, levelErr := logging.ParseLevel(logLevelFlag)
	log := logging.New(cmd.ErrOrStderr(), level).With().Str("session", uuid.NewString()).Logger()
	if levelErr != nil {
		log.Error().Err(levelErr).Msg("Invalid log level")
		return levelErr
	}

	cfg := app.DefaultConfig()
	cfg.CameraID = cameraFlag
	cfg.Width = widthFlag
	cfg.Height = heightFlag
	cfg.AudioEnabled = !noAudioFlag
	cfg.SyncEvery = syncEveryFlag
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return err
	}

	log.Info().Msg("Starting Hand-Based Volume Controller")
	log.Info().Bool("enabled", cfg.AudioEnabled).Msg("Audio control")

	backend := selectBackend(cfg.AudioEnabled, resolvePluginDir(pluginDirFlag), log)
	sink := volume.NewSink(cfg.AudioEnabled, backend, log)

	application := app.New(cfg, sink, log)
	application.SetDetector(selectDetector(log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if trayFlag {
		t := tray.New(application, sink.Demo(), log)
		t.Start()
		defer t.Stop()
	}

	if err := application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Application error")
		return err
	}

	log.Info().Msg("Shutting down...")
	return nil
}

// selectBackend returns the system-volume plugin backend when it is
// installed and answers a probe, and Noop otherwise.
func selectBackend(enabled bool, pluginDir string, log zerolog.Logger) volume.Backend {
	if !enabled {
		return volume.Noop{}
	}

	mgr := plugin.NewManager(pluginDir, log)
	if err := mgr.Discover(); err != nil {
		log.Error().Err(err).Str("dir", pluginDir).Msg("Plugin discovery failed")
		return volume.Noop{}
	}
	for _, p := range mgr.List() {
		log.Debug().Str("plugin", p.Manifest.Name).Str("dir", mgr.PluginDir()).Msg("Plugin available")
	}

	b, err := volume.NewPluginBackend(mgr, plugin.NewExecutor(plugin.DefaultTimeout))
	if err != nil {
		log.Error().Err(err).Str("dir", pluginDir).Msg("Volume plugin unavailable")
		return volume.Noop{}
	}
	if err := volume.Probe(b); err != nil {
		log.Error().Err(err).Msg("Failed to initialize audio control")
		return volume.Noop{}
	}

	log.Info().Str("dir", pluginDir).Msg("Audio control initialized")
	return b
}

// selectDetector tries MediaPipe first and falls back to a detector that
// never reports hands.
func selectDetector(log zerolog.Logger) detector.Detector {
	mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig(), log)
	if err != nil {
		log.Warn().Err(err).Msg("MediaPipe not available, using mock detector")
		return detector.NewMockDetector()
	}
	log.Info().Msg("Using MediaPipe hand detection")
	return mp
}

// resolvePluginDir returns dir when set, else ./plugins when it exists,
// else ~/.gesturevol/plugins.
func resolvePluginDir(dir string) string {
	if dir != "" {
		return dir
	}
	if info, err := os.Stat("plugins"); err == nil && info.IsDir() {
		if abs, err := filepath.Abs("plugins"); err == nil {
			return abs
		}
		return "plugins"
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "plugins"
	}
	return filepath.Join(homeDir, ".gesturevol", "plugins")
}
