package cmd

import (
	"fmt"
	"reflect"
	"time"

	"github.com/hmwm/akina-halo/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  `Commands for managing akina-halo configuration.`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the default configuration",
	Long: `Dump the default configuration values in YAML format.

This shows all available configuration options with their default values.
You can redirect this output to a file to create a configuration template:

  akina-halo config dump > config.yaml

Configuration can be set via:
  - Config file (config.yaml in ., $HOME/.akina-halo or /etc/akina-halo)
  - Environment variables (AKINA_SERVER_PORT, AKINA_THEME_PROVIDER, etc.)
  - Command-line flags (for some options)

Environment variables use the AKINA_ prefix and underscores for nesting.
Example: theme.max_file_size -> AKINA_THEME_MAX_FILE_SIZE`,
	RunE: runConfigDump,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configDumpCmd)
}

// toMap converts a struct to a map, formatting durations and sizes for human readability.
func toMap(v any) map[string]any {
	result := make(map[string]any)
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		key := typ.Field(i).Tag.Get("mapstructure")
		if key == "" {
			key = typ.Field(i).Name
		}

		switch v := field.Interface().(type) {
		case time.Duration:
			result[key] = v.String()
		case config.ByteSize:
			result[key] = v.String()
		default:
			if field.Kind() == reflect.Struct {
				result[key] = toMap(v)
			} else {
				result[key] = v
			}
		}
	}
	return result
}

func runConfigDump(cmd *cobra.Command, _ []string) error {
	// Defaults, then any config.yaml in the search path and AKINA_ variables.
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	yamlData, err := yaml.Marshal(toMap(cfg))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# akina-halo Configuration File")
	fmt.Fprintln(out, "#")
	fmt.Fprintln(out, "# Duration format: 500ms, 30s, 5m, 168h")
	fmt.Fprintln(out, "# Size format: 512KB, 10MB")
	fmt.Fprintln(out, "# Autosave schedule: 6-field cron with seconds")
	fmt.Fprintln(out, "#")
	fmt.Fprintln(out, "# Environment variable overrides:")
	fmt.Fprintln(out, "#   AKINA_SERVER_HOST, AKINA_SERVER_PORT")
	fmt.Fprintln(out, "#   AKINA_DATABASE_DRIVER, AKINA_DATABASE_DSN")
	fmt.Fprintln(out, "#   AKINA_THEME_PROVIDER, AKINA_THEME_WORKSPACE_DIR")
	fmt.Fprintln(out, "#   AKINA_LOGGING_LEVEL, AKINA_LOGGING_FORMAT")
	fmt.Fprintln(out)
	fmt.Fprint(out, string(yamlData))

	return nil
}
