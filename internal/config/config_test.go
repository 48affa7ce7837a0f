package config

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

// options mirrors the shape main wires into humacli: flat fields, toml
// tags holding dotted paths, env tags without the VISION_ prefix.
type options struct {
	Config string `help:"Config file path"`

	Host        string   `toml:"api.host" env:"HOST"`
	Port        int      `toml:"api.port" env:"PORT"`
	Debug       bool     `toml:"api.debug" env:"DEBUG"`
	DirPrefixes []string `toml:"scan.dir_prefixes" env:"DIR_PREFIXES"`
	LogLevel    string   `toml:"logging.level" env:"LOGGING_LEVEL"`
}

const sampleConfig = `
[api]
host = "0.0.0.0"
port = 9000
debug = true

[scan]
dir_prefixes = ["video", "vbi"]

[logging]
level = "debug"
`

func configFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, content)
	return path
}

func TestLoadConfigReadsTOML(t *testing.T) {
	opts := &options{Config: configFile(t, sampleConfig)}

	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := &options{
		Config:      opts.Config,
		Host:        "0.0.0.0",
		Port:        9000,
		Debug:       true,
		DirPrefixes: []string{"video", "vbi"},
		LogLevel:    "debug",
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("LoadConfig produced %+v, want %+v", opts, want)
	}
}

func TestLoadConfigReadsEnv(t *testing.T) {
	t.Setenv("VISION_HOST", "127.0.0.1")
	t.Setenv("VISION_PORT", "8200")
	t.Setenv("VISION_DEBUG", "true")
	t.Setenv("VISION_DIR_PREFIXES", "video, radio")
	t.Setenv("VISION_LOGGING_LEVEL", "warn")

	opts := &options{}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := &options{
		Host:        "127.0.0.1",
		Port:        8200,
		Debug:       true,
		DirPrefixes: []string{"video", "radio"},
		LogLevel:    "warn",
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("LoadConfig produced %+v, want %+v", opts, want)
	}
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	opts := &options{Config: configFile(t, sampleConfig)}

	t.Setenv("VISION_HOST", "10.0.0.5")
	t.Setenv("VISION_DEBUG", "false")

	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if opts.Host != "10.0.0.5" {
		t.Errorf("Host = %q, want the env value", opts.Host)
	}
	if opts.Debug {
		t.Error("Debug = true, want the env override false")
	}

	// Fields without an env override still come from the file.
	if opts.Port != 9000 {
		t.Errorf("Port = %d, want 9000 from the file", opts.Port)
	}
	if want := []string{"video", "vbi"}; !reflect.DeepEqual(opts.DirPrefixes, want) {
		t.Errorf("DirPrefixes = %v, want %v from the file", opts.DirPrefixes, want)
	}
}

func TestLoadConfigCLIFlagsWin(t *testing.T) {
	opts := struct {
		Config     string `help:"Config file path"`
		Host       string `toml:"api.host" env:"HOST"`
		Port       int    `toml:"api.port" env:"PORT"`
		LoggingAPI string `toml:"logging.api" env:"LOGGING_API"`
	}{
		Config: configFile(t, sampleConfig+"api = \"debug\"\n"),
	}

	t.Setenv("VISION_HOST", "env.example")

	// Flags registered the way humacli kebab-cases field names,
	// acronyms included.
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("host", "", "")
	cmd.Flags().Int("port", 0, "")
	cmd.Flags().String("logging-api", "", "")
	if err := cmd.Flags().Parse([]string{"--host", "cli.example", "--logging-api", "warn"}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	// humacli binds parsed flag values into the options struct before
	// LoadConfig runs; mirror that here.
	opts.Host = "cli.example"
	opts.LoggingAPI = "warn"

	if err := LoadConfig(&opts, cmd); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if opts.Host != "cli.example" {
		t.Errorf("Host = %q, want the CLI value kept over env and file", opts.Host)
	}
	if opts.LoggingAPI != "warn" {
		t.Errorf("LoggingAPI = %q, want the CLI value kept", opts.LoggingAPI)
	}
	// No --port was passed, so the file value lands.
	if opts.Port != 9000 {
		t.Errorf("Port = %d, want 9000 from the file", opts.Port)
	}
}

func TestLoadConfigMissingFileIsFine(t *testing.T) {
	opts := &options{Config: filepath.Join(t.TempDir(), "absent.toml")}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig with a missing file: %v", err)
	}
	if opts.Host != "" || opts.Port != 0 {
		t.Errorf("missing file changed fields: %+v", opts)
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	opts := &options{Config: configFile(t, "[api\nnot toml")}
	if err := LoadConfig(opts, nil); err == nil {
		t.Fatal("LoadConfig accepted malformed TOML")
	}
}

func TestFlagKey(t *testing.T) {
	tests := []struct {
		flag  string
		field string
	}{
		{"port", "Port"},
		{"logging-level", "LoggingLevel"},
		{"logging-api", "LoggingAPI"},
		{"logging-v4-l2", "LoggingV4L2"},
		{"logging-v4l2", "LoggingV4L2"},
	}

	for _, tt := range tests {
		if got, want := flagKey(tt.flag), flagKey(tt.field); got != want {
			t.Errorf("flagKey(%q) = %q, flagKey(%q) = %q; want equal", tt.flag, got, tt.field, want)
		}
	}
}

func TestTomlLookup(t *testing.T) {
	tree := map[string]any{
		"api": map[string]any{
			"host": "0.0.0.0",
			"tls": map[string]any{
				"cert": "/etc/vision-node/cert.pem",
			},
		},
		"debug": true,
	}

	tests := []struct {
		path string
		want any
	}{
		{"debug", true},
		{"api.host", "0.0.0.0"},
		{"api.tls.cert", "/etc/vision-node/cert.pem"},
		{"api.missing", nil},
		{"missing.host", nil},
		{"api.host.deeper", nil},
	}

	for _, tt := range tests {
		if got := tomlLookup(tree, tt.path); got != tt.want {
			t.Errorf("tomlLookup(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestAssign(t *testing.T) {
	type target struct {
		S  string
		B  bool
		N  int
		SS []string
	}

	var got target
	v := reflect.ValueOf(&got).Elem()

	assign(v.FieldByName("S"), "text")
	assign(v.FieldByName("B"), true)
	assign(v.FieldByName("N"), int64(42))
	assign(v.FieldByName("SS"), []any{"a", "b"})

	want := target{S: "text", B: true, N: 42, SS: []string{"a", "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("assign produced %+v, want %+v", got, want)
	}
}

func TestAssignIgnoresMismatchedTypes(t *testing.T) {
	var got struct {
		N int
		S string
	}
	v := reflect.ValueOf(&got).Elem()

	assign(v.FieldByName("N"), "not a number")
	assign(v.FieldByName("S"), 17)

	if got.N != 0 || got.S != "" {
		t.Errorf("mismatched values changed fields: %+v", got)
	}
}

func TestAssignString(t *testing.T) {
	var got struct {
		S  string
		B  bool
		N  int
		SS []string
	}
	v := reflect.ValueOf(&got).Elem()

	assignString(v.FieldByName("S"), "text")
	assignString(v.FieldByName("B"), "true")
	assignString(v.FieldByName("N"), "123")
	assignString(v.FieldByName("SS"), " a , b , c ")

	if got.S != "text" || !got.B || got.N != 123 {
		t.Errorf("scalar fields wrong: %+v", got)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got.SS, want) {
		t.Errorf("SS = %v, want %v with whitespace trimmed", got.SS, want)
	}
}

func TestAssignStringKeepsFieldOnParseFailure(t *testing.T) {
	got := struct {
		B bool
		N int
	}{B: true, N: 7}
	v := reflect.ValueOf(&got).Elem()

	assignString(v.FieldByName("B"), "maybe")
	assignString(v.FieldByName("N"), "twelve")

	if !got.B || got.N != 7 {
		t.Errorf("unparseable values overwrote fields: %+v", got)
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	path := configFile(t, `
[logging]
level = "warn"
format = "json"

[logging.modules]
devices = "debug"
hotplug = "debug"
api = "error"
`)

	cfg := LoadLoggingConfig(path)

	if cfg.Level != "warn" {
		t.Errorf("Level = %q, want %q", cfg.Level, "warn")
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	wantModules := map[string]string{"devices": "debug", "hotplug": "debug", "api": "error"}
	if !reflect.DeepEqual(cfg.Modules, wantModules) {
		t.Errorf("Modules = %v, want %v", cfg.Modules, wantModules)
	}
}

func TestLoadLoggingConfigDefaults(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", "nonexistent_file.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadLoggingConfig(tt.path)
			if cfg.Level != "info" || cfg.Format != "text" || len(cfg.Modules) != 0 {
				t.Errorf("got %+v, want info/text defaults with no modules", cfg)
			}
		})
	}
}

func TestLoadLoggingConfigPartial(t *testing.T) {
	cfg := LoadLoggingConfig(configFile(t, "[logging]\nlevel = \"debug\"\n"))

	if cfg.Level != "debug" {
		t.Errorf("Level = %q, want %q", cfg.Level, "debug")
	}
	// Format falls back to the default when the key is absent.
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want %q", cfg.Format, "text")
	}
}

func TestLoadLoggingConfigBadTOMLYieldsDefaults(t *testing.T) {
	cfg := LoadLoggingConfig(configFile(t, "[logging\nbroken"))

	if cfg.Level != "info" || cfg.Format != "text" {
		t.Errorf("got %+v, want defaults on parse failure", cfg)
	}
}
