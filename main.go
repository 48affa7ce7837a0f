package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/tyrius02/next-gen-vision/cmd"
	"github.com/tyrius02/next-gen-vision/internal/api"
	"github.com/tyrius02/next-gen-vision/internal/config"
	"github.com/tyrius02/next-gen-vision/internal/devices"
	"github.com/tyrius02/next-gen-vision/internal/events"
	"github.com/tyrius02/next-gen-vision/internal/logging"
	"github.com/tyrius02/next-gen-vision/internal/metrics/exporters"
	"github.com/tyrius02/next-gen-vision/internal/updater"
)

// Options is the flat flag set humacli binds. The toml and env tags let
// LoadConfig lay file and environment values under explicitly set flags.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// HTTP listener
	Host string `help:"Interface to bind" default:"0.0.0.0" toml:"server.host" env:"SERVER_HOST"`
	Port int    `help:"Port to listen on" short:"p" default:"8080" toml:"server.port" env:"SERVER_PORT"`

	// Device discovery settings
	DeviceDir    string `help:"Directory scanned for device nodes" default:"/dev" toml:"devices.dir" env:"DEVICES_DIR"`
	DevicePrefix string `help:"Device node name prefix" default:"video" toml:"devices.prefix" env:"DEVICES_PREFIX"`

	// API credentials
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Metrics settings
	MetricsEnabled bool `help:"Expose Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Update settings
	UpdateRepository    string `help:"GitHub repository checked for releases (owner/name)" default:"tyrius02/next-gen-vision" toml:"update.repository" env:"UPDATE_REPOSITORY"`
	UpdateCheckInterval string `help:"Interval between automatic update checks, 0 disables" default:"6h" toml:"update.check_interval" env:"UPDATE_CHECK_INTERVAL"`

	// Global level plus per-module overrides
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingDevices string `help:"Devices logging level" toml:"logging.modules.devices" env:"LOGGING_DEVICES"`
	LoggingV4L2    string `help:"V4L2 probe logging level" toml:"logging.modules.v4l2" env:"LOGGING_V4L2"`
	LoggingHotplug string `help:"Hotplug logging level" toml:"logging.modules.hotplug" env:"LOGGING_HOTPLUG"`
	LoggingAPI     string `help:"API logging level" toml:"logging.modules.api" env:"LOGGING_API"`
	LoggingHTTP    string `help:"HTTP request logging level" toml:"logging.modules.http" env:"LOGGING_HTTP"`
	LoggingUpdater string `help:"Updater logging level" toml:"logging.modules.updater" env:"LOGGING_UPDATER"`
}

// moduleLevels collects the per-module log level overrides. Unset
// modules inherit the global level.
func moduleLevels(opts *Options) map[string]string {
	modules := make(map[string]string)
	for module, level := range map[string]string{
		"devices": opts.LoggingDevices,
		"v4l2":    opts.LoggingV4L2,
		"hotplug": opts.LoggingHotplug,
		"api":     opts.LoggingAPI,
		"http":    opts.LoggingHTTP,
		"updater": opts.LoggingUpdater,
	} {
		if level != "" {
			modules[module] = level
		}
	}
	return modules
}

// updateCheckInterval parses the configured interval. Empty, zero or
// unparseable values disable periodic checks.
func updateCheckInterval(value string) time.Duration {
	if value == "" || value == "0" {
		return 0
	}
	interval, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid update check interval, periodic checks disabled", "value", value)
		return 0
	}
	return interval
}

func main() {
	// Declared before New so the closure can read parsed flags.
	var cli humacli.CLI

	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Before anything that logs, so every logger gets the format.
		logging.Initialize(logging.Config{
			Level:   opts.LoggingLevel,
			Format:  opts.LoggingFormat,
			Modules: moduleLevels(opts),
		})

		logger := logging.GetLogger("main")

		eventBus := events.New()

		// Forward every log line to SSE clients subscribed to /api/events.
		logging.SetLogCallback(func(entry logging.LogEntry) {
			eventBus.Publish(events.LogEvent{
				Seq:        entry.Seq,
				Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
				Level:      entry.Level,
				Module:     entry.Module,
				Message:    entry.Message,
				Attributes: entry.Attributes,
			})
		})

		// Device registry over the platform scanner
		registry := devices.NewRegistry(&devices.Options{
			Scanner:  devices.NewScanner(opts.DeviceDir, opts.DevicePrefix),
			EventBus: eventBus,
		})

		updateService, err := updater.NewService(&updater.Options{
			Repository: opts.UpdateRepository,
			EventBus:   eventBus,
		})
		if err != nil {
			logger.Error("Failed to create update service", "error", err)
			os.Exit(1)
		}

		// Hot-reload logging levels when the config file changes
		watcher := config.NewWatcher(opts.Config, logging.GetLogger("config"))
		watcher.OnReload(func(cfg logging.Config) {
			logging.UpdateLevels(cfg)
			eventBus.Publish(events.ConfigReloadedEvent{
				Path:      opts.Config,
				Timestamp: time.Now().Format(time.RFC3339Nano),
			})
		})

		apiOpts := &api.Options{
			Registry:      registry,
			UpdateService: updateService,
			EventBus:      eventBus,
			AuthUsername:  opts.AuthUsername,
			AuthPassword:  opts.AuthPassword,
		}
		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = exporters.HTTPHandler()
		}

		server := api.NewServer(apiOpts)

		// Covers the hotplug watch, periodic update checks and in-flight scans.
		backgroundCtx, cancelBackground := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			// Populate the registry before the API starts serving.
			if _, scanErr := registry.Scan(backgroundCtx, devices.TriggerInitial); scanErr != nil {
				logger.Warn("Initial device scan failed", "error", scanErr)
			}

			if watchErr := registry.Watch(backgroundCtx); watchErr != nil {
				logger.Warn("Hotplug monitoring unavailable, rescans are manual only", "error", watchErr)
			}

			if startErr := watcher.Start(); startErr != nil {
				logger.Warn("Config hot reload unavailable", "error", startErr)
			}

			updateService.StartPeriodicChecks(backgroundCtx, updateCheckInterval(opts.UpdateCheckInterval))

			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			logger.Info("Starting HTTP server", "addr", addr)
			if startErr := server.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			cancelBackground()
			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Error("Error stopping config watcher", "error", stopErr)
			}
		})
	})

	// One-shot discovery and diagnostics commands
	cli.Root().AddCommand(cmd.CreateScanCmd())
	cli.Root().AddCommand(cmd.CreateWatchCmd())
	cli.Root().AddCommand(cmd.CreateVersionCmd())

	cli.Run()
}
