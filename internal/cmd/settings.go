package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/covdir/internal/config"
	"github.com/renato0307/covdir/internal/logging"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
	Set  SettingsSetCmd  `cmd:"set" help:"Set a value in settings.json"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// SettingsSetCmd writes one setting
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key (e.g., endpoint, coverage_thresholds.low)"`
	Value string `arg:"" help:"New value"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	return renderSettingsMeta(os.Stdout, config.GetSettingsPath(), config.GetSettingsExample(), s.Format)
}

func renderSettingsMeta(w io.Writer, settingsFile string, example map[string]any, format string) error {
	if format == "json" {
		output := map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "Settings file: %s\n\n", settingsFile)
	fmt.Fprintln(w, "Example settings.json:")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeExampleRows(tw, "", example)
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create or edit this file, or use 'covdir settings set', to configure covdir.")
	fmt.Fprintln(w, "All settings are optional and have sensible defaults.")
	return nil
}

// writeExampleRows prints nested keys in dotted form, the way `settings set` accepts them
func writeExampleRows(w io.Writer, prefix string, example map[string]any) {
	keys := make([]string, 0, len(example))
	for k := range example {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if nested, ok := example[key].(map[string]any); ok {
			writeExampleRows(w, name, nested)
			continue
		}
		fmt.Fprintf(w, "%s\t%v\n", name, example[key])
	}
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	settings, err := config.UpdateSettings(func(settings *config.Settings) error {
		return settings.SetValue(s.Key, s.Value)
	})
	if err != nil {
		if errors.Is(err, config.ErrUnknownSetting) {
			return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(config.SettingKeys(), ", "))
		}
		return err
	}

	cli.SetSettings(settings)
	logging.Logger.Info("Setting updated", "key", s.Key, "value", s.Value)
	fmt.Printf("Set %s = %s in %s\n", s.Key, s.Value, config.GetSettingsPath())
	return nil
}
