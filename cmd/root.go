package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/opdeck/internal/app"
	"github.com/zjrosen/opdeck/internal/config"
	"github.com/zjrosen/opdeck/internal/console"
	"github.com/zjrosen/opdeck/internal/log"
	"github.com/zjrosen/opdeck/internal/tracing"
	"github.com/zjrosen/opdeck/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin so the
	// OSC 11 reply cannot leak into the input loop.
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".opdeck/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "opdeck",
	Short: "A terminal operator console for a joystick-driven motor rig",
	Long: `opdeck opens monitor panels for the rig's hardware units, routes joystick
input to the motor board and tracks the run/pause/stop lifecycle of an
operating session.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runConsole,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/opdeck/config.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false,
		"write debug logs to opdeck-debug.log (or set OPDECK_DEBUG)")
	rootCmd.Flags().Bool("no-journal", false, "do not record session runs")
	rootCmd.Flags().Bool("windowed", false, "do not switch to the alternate screen")
}

func initConfig() {
	home, _ := os.UserHomeDir()
	var err error
	cfg, configPath, err = loadConfig(viper.GetViper(), cfgFile, home)
	if err != nil {
		log.Warn(log.CatConfig, "Using default configuration", "error", err)
		cfg = config.Defaults()
	}
}

// setDefaults registers every key of config.Defaults so a partial file
// still yields a complete Config.
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("hardware.motor.name", d.Hardware.Motor.Name)
	v.SetDefault("hardware.motor.device", d.Hardware.Motor.Device)
	v.SetDefault("hardware.motor.simulate", d.Hardware.Motor.Simulate)
	v.SetDefault("hardware.motor.max_speed", d.Hardware.Motor.MaxSpeed)
	v.SetDefault("hardware.joystick.name", d.Hardware.Joystick.Name)
	v.SetDefault("hardware.joystick.device", d.Hardware.Joystick.Device)
	v.SetDefault("hardware.joystick.simulate", d.Hardware.Joystick.Simulate)
	v.SetDefault("hardware.joystick.deadzone", d.Hardware.Joystick.Deadzone)
	v.SetDefault("hardware.joystick.axes", d.Hardware.Joystick.Axes)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.fullscreen", d.UI.Fullscreen)
	v.SetDefault("ui.layout", d.UI.Layout)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("theme.highlight", d.Theme.Highlight)
	v.SetDefault("theme.error", d.Theme.Error)
	v.SetDefault("theme.success", d.Theme.Success)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("hotplug.enabled", d.Hotplug.Enabled)
	v.SetDefault("hotplug.debounce", d.Hotplug.Debounce)
}

// loadConfig reads the configuration. Lookup order: explicit, then
// .opdeck/config.yaml in the working directory, then
// ~/.config/opdeck/config.yaml. When none exists a default file is written
// to the user location. Returns the path of the file in use.
func loadConfig(v *viper.Viper, explicit, home string) (config.Config, string, error) {
	setDefaults(v)

	path := explicit
	if path == "" {
		path = filepath.Join(home, ".config", "opdeck", "config.yaml")
		if _, err := os.Stat(localConfigPath); err == nil {
			path = localConfigPath
		}
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && explicit == "" {
		if err := config.WriteDefaultConfig(path); err != nil {
			return config.Defaults(), "", err
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return config.Defaults(), path, fmt.Errorf("reading config %s: %w", path, err)
	}
	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Defaults(), path, fmt.Errorf("decoding config %s: %w", path, err)
	}
	log.Debug(log.CatConfig, "Loaded config", "path", path)
	return c, path, nil
}

func debugEnabled(cmd *cobra.Command) bool {
	if on, _ := cmd.Flags().GetBool("debug"); on {
		return true
	}
	return os.Getenv("OPDECK_DEBUG") != ""
}

func runConsole(cmd *cobra.Command, _ []string) error {
	if debugEnabled(cmd) {
		cleanup, err := log.InitWithTeaLog("opdeck-debug.log", "opdeck")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
	}

	cfg.ResolvePaths()
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if windowed, _ := cmd.Flags().GetBool("windowed"); windowed {
		cfg.UI.Fullscreen = false
	}
	noJournal, _ := cmd.Flags().GetBool("no-journal")
	applyTheme(cfg.Theme)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}()

	hw := openRig(cfg.Hardware)
	hw.driver.Start(ctx)
	defer hw.close()

	opts := []console.Option{console.WithTracer(provider.Tracer())}
	if cfg.Journal.Enabled && !noJournal {
		rec, closeJournal, err := openJournal(cfg)
		if err != nil {
			// The console runs without a journal rather than refusing to start.
			log.ErrorErr(log.CatJournal, "Journal unavailable", err, "path", cfg.Journal.Path)
		} else {
			defer closeJournal()
			opts = append(opts, console.WithJournal(rec))
		}
	}

	c := newConsole(hw, cfg.Hardware, opts...)
	if err := c.Startup(ctx); err != nil {
		return fmt.Errorf("starting console: %w", err)
	}
	defer c.Shutdown()

	w := startWatcher(cfg)
	if w != nil {
		defer func() { _ = w.Stop() }()
	}

	zone.NewGlobal()
	model := app.New(app.Deps{
		Console:      c,
		Config:       cfg,
		ConfigPath:   configPath,
		Joystick:     hw.device,
		VirtualStick: cfg.Hardware.Joystick.Simulate,
		Watcher:      w,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func startWatcher(c config.Config) *watcher.Watcher {
	if !c.Hotplug.Enabled {
		return nil
	}
	w, err := watcher.New(watcher.Config{
		Devices:     []string{c.Hardware.Motor.Device, c.Hardware.Joystick.Device},
		DebounceDur: c.Hotplug.Debounce,
	})
	if err != nil {
		log.Warn(log.CatWatcher, "Hot-plug notices disabled", "error", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "Hot-plug notices disabled", "error", err)
		_ = w.Stop()
		return nil
	}
	return w
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
