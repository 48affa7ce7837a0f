package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tyrius02/next-gen-vision/internal/logging"
)

// envPrefix namespaces all environment variable overrides.
const envPrefix = "VISION_"

// LoadConfig fills opts from the config file and the environment.
// Precedence, highest first: command-line flags, VISION_* environment
// variables, the TOML file named by the struct's Config field. opts must
// point to a flat options struct; `toml` tags hold dotted key paths into
// the file and `env` tags name the variable suffix.
//
// humacli binds flag values into opts before this runs, so fields backed
// by a flag the user actually set are left untouched.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	fromCLI := changedFlags(cmd)

	tree, err := readTOML(configPath(v))
	if err != nil {
		return err
	}

	for i := range t.NumField() {
		field := v.Field(i)
		spec := t.Field(i)
		if fromCLI[flagKey(spec.Name)] {
			continue
		}
		if path := spec.Tag.Get("toml"); path != "" && tree != nil {
			if value := tomlLookup(tree, path); value != nil {
				assign(field, value)
			}
		}
		if key := spec.Tag.Get("env"); key != "" {
			if value := os.Getenv(envPrefix + key); value != "" {
				assignString(field, value)
			}
		}
	}
	return nil
}

// configPath returns the file path held in the struct's Config field, if
// there is one.
func configPath(v reflect.Value) string {
	f := v.FieldByName("Config")
	if f.IsValid() && f.Kind() == reflect.String {
		return f.String()
	}
	return ""
}

// changedFlags reports which flags the user set on the command line,
// keyed through flagKey so kebab-cased flag names match field names.
func changedFlags(cmd *cobra.Command) map[string]bool {
	set := make(map[string]bool)
	if cmd == nil {
		return set
	}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			set[flagKey(f.Name)] = true
		}
	})
	return set
}

// readTOML parses the config file into a generic tree. A missing file is
// not an error; the node runs fine on defaults.
func readTOML(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, nil
}

// flagKey normalizes a flag or field name for comparison. CLI flags are
// kebab-case while struct fields are CamelCase; stripping separators and
// lowercasing makes "logging-api" and "LoggingAPI" compare equal.
func flagKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", ""))
}

// tomlLookup walks the parsed tree along a dotted key path.
func tomlLookup(tree map[string]any, path string) any {
	for {
		head, rest, nested := strings.Cut(path, ".")
		if !nested {
			return tree[head]
		}
		next, ok := tree[head].(map[string]any)
		if !ok {
			return nil
		}
		tree, path = next, rest
	}
}

// assign stores a decoded TOML value into a struct field. A value of the
// wrong type is ignored, leaving whatever the field already holds.
func assign(field reflect.Value, value any) {
	if !field.CanSet() {
		return
	}
	switch field.Kind() {
	case reflect.String:
		if s, ok := value.(string); ok {
			field.SetString(s)
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
		}
	case reflect.Int:
		switch n := value.(type) {
		case int64:
			field.SetInt(n)
		case int:
			field.SetInt(int64(n))
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		items, ok := value.([]any)
		if !ok {
			return
		}
		out := make([]string, len(items))
		for i, item := range items {
			if s, isStr := item.(string); isStr {
				out[i] = s
			}
		}
		field.Set(reflect.ValueOf(out))
	}
}

// assignString stores an environment variable into a struct field,
// parsing it per the field's kind. Slice fields split on commas.
func assignString(field reflect.Value, value string) {
	if !field.CanSet() {
		return
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			field.SetBool(b)
		}
	case reflect.Int:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(n)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return
		}
		parts := strings.Split(value, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		field.Set(reflect.ValueOf(parts))
	}
}

// LoadLoggingConfig reads just the [logging] table, including per-module
// overrides from [logging.modules]. A missing or unreadable file yields
// the defaults, so a broken reload never disables logging.
func LoadLoggingConfig(path string) logging.Config {
	cfg := logging.Config{
		Level:   "info",
		Format:  "text",
		Modules: make(map[string]string),
	}
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var file struct {
		Logging logging.Config `toml:"logging"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg
	}

	if file.Logging.Level != "" {
		cfg.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		cfg.Format = file.Logging.Format
	}
	for module, level := range file.Logging.Modules {
		cfg.Modules[module] = level
	}
	return cfg
}
