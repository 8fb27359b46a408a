package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ConfigIssue represents a validation finding.
type ConfigIssue struct {
	Key      string `json:"key"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Fix      string `json:"fix"`
}

// Wizard runs the interactive setup wizard.
// If reader is nil, reads from os.Stdin.
func Wizard(reader io.Reader) error {
	if reader == nil {
		reader = os.Stdin
	}
	scanner := bufio.NewScanner(reader)
	ask := func(prompt string) string {
		fmt.Print(prompt)
		scanner.Scan()
		return strings.TrimSpace(scanner.Text())
	}

	fmt.Println("diffkit setup")
	fmt.Println(strings.Repeat("-", 48))
	fmt.Println()

	fmt.Println("Step 1/3: Output")
	if f := ask(fmt.Sprintf("  Default format (%s) [%s]: ", strings.Join(Formats, ", "), viper.GetString("format"))); f != "" {
		if !validFormat(f) {
			fmt.Printf("  Unknown format %q, keeping %s\n", f, viper.GetString("format"))
		} else {
			viper.Set("format", f)
		}
	}
	if c := strings.ToLower(ask("  Colored output? [Y/n]: ")); c == "n" || c == "no" {
		viper.Set("color", false)
	} else {
		viper.Set("color", true)
	}
	fmt.Println()

	fmt.Println("Step 2/3: Unified diff")
	if n := ask(fmt.Sprintf("  Context lines [%d]: ", viper.GetInt("context"))); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil || v < 0 {
			fmt.Println("  Not a non-negative number, skipped")
		} else {
			viper.Set("context", v)
		}
	}
	fmt.Println()

	fmt.Println("Step 3/3: Limits")
	if n := ask(fmt.Sprintf("  Maximum lines per input, 0 for no limit [%d]: ", viper.GetInt("max_lines"))); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil || v < 0 {
			fmt.Println("  Not a non-negative number, skipped")
		} else {
			viper.Set("max_lines", v)
		}
	}
	fmt.Println()

	if err := SaveConfig(); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}

	fmt.Printf("Config file: %s\n", ConfigPath())
	fmt.Println("Type 'diffkit config show' to see all settings.")
	return nil
}

// WizardNonInteractive sets up config with defaults only (no user input).
func WizardNonInteractive() error {
	applyDefaults()
	return SaveConfig()
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Validate checks config values and returns a list of issues.
func Validate() []ConfigIssue {
	var issues []ConfigIssue

	for _, k := range Keys() {
		if _, err := ParseValue(k, viper.GetString(k)); err != nil {
			issues = append(issues, ConfigIssue{
				Key:      k,
				Severity: "error",
				Message:  err.Error(),
				Fix:      fmt.Sprintf("diffkit config set %s %v", k, defaults[k]),
			})
		}
	}

	if c := viper.GetInt("context"); c < 0 {
		issues = append(issues, ConfigIssue{
			Key:      "context",
			Severity: "error",
			Message:  fmt.Sprintf("context must be >= 0, got %d", c),
			Fix:      "diffkit config set context 3",
		})
	}

	switch m := viper.GetInt("max_lines"); {
	case m < 0:
		issues = append(issues, ConfigIssue{
			Key:      "max_lines",
			Severity: "error",
			Message:  fmt.Sprintf("max_lines must be >= 0, got %d", m),
			Fix:      "diffkit config set max_lines 20000",
		})
	case m == 0:
		issues = append(issues, ConfigIssue{
			Key:      "max_lines",
			Severity: "warning",
			Message:  "max_lines is 0, input size is unbounded and memory grows with the product of both line counts",
			Fix:      "diffkit config set max_lines 20000",
		})
	default:
		issues = append(issues, ConfigIssue{
			Key:      "max_lines",
			Severity: "info",
			Message:  fmt.Sprintf("inputs limited to %d lines", m),
		})
	}

	if n := viper.GetInt("batch.concurrency"); n < 1 {
		issues = append(issues, ConfigIssue{
			Key:      "batch.concurrency",
			Severity: "warning",
			Message:  fmt.Sprintf("batch.concurrency is %d, batches will run one pair at a time", n),
			Fix:      "diffkit config set batch.concurrency 4",
		})
	}

	if d := viper.GetInt("watch.debounce_ms"); d < 0 {
		issues = append(issues, ConfigIssue{
			Key:      "watch.debounce_ms",
			Severity: "error",
			Message:  fmt.Sprintf("watch.debounce_ms must be >= 0, got %d", d),
			Fix:      "diffkit config set watch.debounce_ms 300",
		})
	}

	return issues
}

// ToEnv returns all config values as a map of env var name -> value.
func ToEnv() map[string]string {
	env := make(map[string]string)
	for _, k := range Keys() {
		if v := viper.GetString(k); v != "" {
			env["DIFFKIT_"+strings.ToUpper(strings.ReplaceAll(k, ".", "_"))] = v
		}
	}
	return env
}

// Keys returns the known config keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseValue converts value to the type of key's default. format and
// log_level must name a known format and logrus level.
func ParseValue(key, value string) (interface{}, error) {
	def, ok := defaults[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	switch key {
	case "format":
		if !validFormat(value) {
			return nil, fmt.Errorf("unknown output format %q (supported: %s)", value, strings.Join(Formats, ", "))
		}
		return value, nil
	case "log_level":
		if _, err := logrus.ParseLevel(value); err != nil {
			return nil, fmt.Errorf("invalid log_level: %w", err)
		}
		return value, nil
	}
	switch def.(type) {
	case int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number, got %q", key, value)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		return b, nil
	}
	return value, nil
}

// Set parses value for key and saves it to disk. Nothing is written when
// the value does not parse.
func Set(key, value string) error {
	v, err := ParseValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, v)
	return SaveConfig()
}

// Get retrieves a config value.
func Get(key string) string {
	return viper.GetString(key)
}

// ResetConfig resets all config to defaults.
func ResetConfig() error {
	path := ConfigPath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete config: %w", err)
	}
	applyDefaults()
	return nil
}

func applyDefaults() {
	for k, v := range defaults {
		viper.Set(k, v)
	}
}

// SaveConfig writes the current config to ~/.diffkit/config.yaml.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}

	os.Chmod(path, 0600)
	return nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// ShowConfig returns a formatted string of the current configuration.
func ShowConfig() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config: %s\n\n", ConfigPath()))

	sb.WriteString("Output\n")
	sb.WriteString(fmt.Sprintf("  format:     %s\n", viper.GetString("format")))
	sb.WriteString(fmt.Sprintf("  color:      %t\n", viper.GetBool("color")))
	sb.WriteString(fmt.Sprintf("  pager:      %t\n", viper.GetBool("pager")))
	sb.WriteString(fmt.Sprintf("  context:    %d\n", viper.GetInt("context")))
	sb.WriteString("\n")

	sb.WriteString("Limits\n")
	if m := viper.GetInt("max_lines"); m > 0 {
		sb.WriteString(fmt.Sprintf("  max_lines:  %d\n", m))
	} else {
		sb.WriteString("  max_lines:  unlimited\n")
	}
	sb.WriteString(fmt.Sprintf("  batch:      %d workers\n", viper.GetInt("batch.concurrency")))
	sb.WriteString(fmt.Sprintf("  watch:      %dms debounce\n", viper.GetInt("watch.debounce_ms")))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Log level: %s\n", viper.GetString("log_level")))
	return sb.String()
}
