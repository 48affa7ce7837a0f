package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

const defaultBufferSize = 1000

var (
	moduleLoggers   = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	globalConfig    Config
	globalLevelVar  = &slog.LevelVar{}
	isInitialized   bool
	mutex           sync.RWMutex
	logBuffer       *RingBuffer
	logCallback     LogCallback
)

// Config mirrors the [logging] table of the config file.
type Config struct {
	Level   string            `toml:"level"`
	Format  string            `toml:"format"`
	Modules map[string]string `toml:"modules"`
}

// effectiveLevel resolves the level for a module: its override if set
// and valid, the global level otherwise.
func (c Config) effectiveLevel(module string) slog.Level {
	level := slog.LevelInfo
	if parsed, ok := parseLevel(c.Level); ok {
		level = parsed
	}
	if override, exists := c.Modules[module]; exists {
		if parsed, ok := parseLevel(override); ok {
			level = parsed
		}
	}
	return level
}

// apply sets the global and per-module level vars from this config.
// Caller must hold the package mutex.
func (c Config) apply() {
	global := slog.LevelInfo
	if parsed, ok := parseLevel(c.Level); ok {
		global = parsed
	}
	globalLevelVar.Set(global)

	for module, levelVar := range moduleLevelVars {
		levelVar.Set(c.effectiveLevel(module))
	}
}

// Initialize applies the config file's [logging] table: levels, output
// format, and the ring buffer. Loggers handed out earlier keep their
// handler chain but still follow level changes through the shared
// LevelVars; the format only affects loggers created from here on, so
// main initializes logging before constructing anything that logs.
func Initialize(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	globalConfig = config
	isInitialized = true

	if logBuffer == nil {
		logBuffer = NewRingBuffer(defaultBufferSize)
	}

	config.apply()

	slog.SetDefault(slog.New(createHandler(config.Format, globalLevelVar)))
}

// UpdateLevels adjusts log levels from a reloaded config. Handlers and the
// ring buffer stay in place; only the LevelVars move.
func UpdateLevels(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	globalConfig.Level = config.Level
	globalConfig.Modules = config.Modules
	config.apply()
}

// GetBuffer hands out the ring buffer that backs the logs API.
func GetBuffer() *RingBuffer {
	mutex.RLock()
	defer mutex.RUnlock()
	return logBuffer
}

// SetLogCallback registers a function that observes every entry as it is
// written. main uses it to put log records on the event bus without this
// package importing the bus.
func SetLogCallback(callback LogCallback) {
	mutex.Lock()
	defer mutex.Unlock()
	logCallback = callback
}

// currentSinks returns the active ring buffer and callback. The buffer
// handler consults these on every record, so handlers created before
// Initialize still feed the buffer once it exists.
func currentSinks() (*RingBuffer, LogCallback) {
	mutex.RLock()
	defer mutex.RUnlock()
	return logBuffer, logCallback
}

// GetLogger returns the named module's logger, creating and caching it
// on first use. The same *slog.Logger comes back for the module's whole
// lifetime, so callers may keep it in a struct field.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	if logger, exists := moduleLoggers[module]; exists {
		mutex.RUnlock()
		return logger
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	// Another goroutine may have won the race.
	if logger, exists := moduleLoggers[module]; exists {
		return logger
	}

	// A LevelVar per module so UpdateLevels can move levels without
	// touching the cached logger.
	levelVar := &slog.LevelVar{}
	format := "text"
	if isInitialized {
		levelVar.Set(globalConfig.effectiveLevel(module))
		format = globalConfig.Format
	} else {
		levelVar.Set(slog.LevelInfo)
	}

	logger := slog.New(createHandler(format, levelVar)).With("module", module)
	moduleLoggers[module] = logger
	moduleLevelVars[module] = levelVar
	return logger
}

// createHandler builds the handler chain for one logger: stdout in the
// configured format, the journal when running under systemd, and the
// ring buffer feeding the logs API. Level may be a *slog.LevelVar.
func createHandler(format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var stdoutHandler slog.Handler
	if format == "json" {
		stdoutHandler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		stdoutHandler = slog.NewTextHandler(os.Stdout, opts)
	}

	var handlers []slog.Handler
	if isStdoutAvailable() {
		handlers = append(handlers, stdoutHandler)
	}
	if IsJournalAvailable() {
		handlers = append(handlers, NewJournalHandler(level))
	}
	// The buffer handler checks for an active buffer on every record.
	handlers = append(handlers, NewBufferHandler(level))

	if len(handlers) == 1 {
		return handlers[0]
	}
	return NewMultiHandler(handlers...)
}

// isStdoutAvailable reports whether stdout goes anywhere useful: a
// terminal, pipe, socket, or regular file. /dev/null is a device and
// fails all four checks.
func isStdoutAvailable() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	mode := fi.Mode()
	return (mode&os.ModeCharDevice) != 0 || (mode&os.ModeNamedPipe) != 0 || (mode&os.ModeSocket) != 0 || mode.IsRegular()
}

// parseLevel converts a level name to a slog.Level. The second return
// is false for names it does not recognize.
func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
