// Package logging builds the process-wide slog setup: leveled,
// module-scoped loggers whose records land on stdout, in the systemd
// journal, and in an in-memory ring buffer that backs the logs API and
// the SSE log stream.
//
// Each subsystem asks for its logger once, by module name, and keeps it:
//
//	log := logging.GetLogger("devices")
//	log.Info("scan complete", "devices", n)
//	log.With("device", path).Debug("probing formats")
//
// GetLogger always returns the same logger for a module. Calling it
// before Initialize is fine; early loggers start at the info default and
// pick up configured levels when Initialize runs.
//
// # Levels
//
// The global level and per-module overrides come from the [logging]
// table of the config file:
//
//	[logging]
//	level = "info"
//	format = "json"
//
//	[logging.modules]
//	v4l2 = "debug"
//	hotplug = "debug"
//
// Recognized levels are debug, info, warn (or warning), and error.
// Levels live in shared slog.LevelVars, so UpdateLevels retunes every
// existing logger in place when the config watcher sees a change. The
// output format, by contrast, is fixed when a logger is created, which
// is why main initializes logging before constructing anything that
// logs.
//
// # Destinations
//
// Handler construction probes the environment instead of taking flags.
// Stdout gets text or JSON output when it points somewhere useful (a
// terminal, pipe, socket, or file); the journal is used when its socket
// is reachable per [github.com/coreos/go-systemd/v22/journal.Enabled].
// The ring buffer receives every record regardless, so the logs API
// works even when the process logs nowhere else.
//
// Journal records carry the module and other attributes as uppercase
// journal fields, which pairs with journalctl's field matching:
//
//	journalctl -t vision-node -f
//	journalctl -t vision-node MODULE=hotplug
//	journalctl -t vision-node DEVICE=/dev/video0 -p warning
package logging
