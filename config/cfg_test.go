package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tprint/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Print.Display != common.DisplayContentTextAndImages {
		t.Errorf("Display = %v, want textAndImages", cfg.Print.Display)
	}
	if cfg.Print.MarginLeft != 0.075 || cfg.Print.MarginTop != 0.03 {
		t.Errorf("margins = %v/%v, want 0.075/0.03", cfg.Print.MarginLeft, cfg.Print.MarginTop)
	}
	if cfg.Print.Page.Width != 850 || cfg.Print.Page.ImageableHeight != 1050 {
		t.Errorf("page = %+v, unexpected default geometry", cfg.Print.Page)
	}
	if cfg.Print.AllPagesPolicy != common.AllPagesPolicyImmediate {
		t.Errorf("AllPagesPolicy = %v, want immediate", cfg.Print.AllPagesPolicy)
	}
	if cfg.Layout.Alignment != common.TextAlignmentLeft {
		t.Errorf("Alignment = %v, want left", cfg.Layout.Alignment)
	}
	if cfg.Resources.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want 10m", cfg.Resources.CacheTTL)
	}
	if !strings.Contains(cfg.Output.NameTemplate, "{{ .Name }}") {
		t.Errorf("NameTemplate = %q, template must not be expanded", cfg.Output.NameTemplate)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, `version: 1
print:
  display: text
  margin_left: 0.1
  all_pages_policy: wait
  page:
    width: 600
    height: 800
    imageable_width: 580
    imageable_height: 780
layout:
  font_size: 16
  alignment: justify
  language: ru-RU
resources:
  workers: 2
  cache_ttl: 30s
logging:
  console:
    level: normal
  file:
    level: debug
    destination: `+filepath.Join(tmpDir, "test.log")+`
    mode: append
`)

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Print.Display != common.DisplayContentText {
		t.Errorf("Display = %v, want text", cfg.Print.Display)
	}
	if cfg.Print.MarginLeft != 0.1 {
		t.Errorf("MarginLeft = %f, want 0.1", cfg.Print.MarginLeft)
	}
	// not mentioned in file - default survives
	if cfg.Print.MarginTop != 0.03 {
		t.Errorf("MarginTop = %f, want default 0.03", cfg.Print.MarginTop)
	}
	if cfg.Print.AllPagesPolicy != common.AllPagesPolicyWait {
		t.Errorf("AllPagesPolicy = %v, want wait", cfg.Print.AllPagesPolicy)
	}
	if cfg.Print.Page.Width != 600 {
		t.Errorf("Page.Width = %f, want 600", cfg.Print.Page.Width)
	}
	if cfg.Layout.FontSize != 16 || cfg.Layout.Alignment != common.TextAlignmentJustify {
		t.Errorf("layout = %+v, unexpected", cfg.Layout)
	}
	if cfg.Resources.Workers != 2 || cfg.Resources.CacheTTL != 30*time.Second {
		t.Errorf("resources = %+v, unexpected", cfg.Resources)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("FileLogger.Mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `version: 1
print:
  display: text
  invalid indent
`)
	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	configPath := writeConfig(t, `version: 1
print:
  unknown_field: true
`)
	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"margin too large", "version: 1\nprint:\n  margin_left: 0.6\n"},
		{"imageable wider than page", "version: 1\nprint:\n  page:\n    imageable_width: 900\n"},
		{"no workers", "version: 1\nresources:\n  workers: 0\n"},
		{"bad display", "version: 1\nprint:\n  display: color\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{"display: textAndImages", "all_pages_policy: immediate", "alignment: left"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() output does not contain %q", want)
		}
	}

	// dumped configuration must load back
	path := writeConfig(t, out)
	back, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration(dump) error = %v", err)
	}
	if back.Print != cfg.Print {
		t.Errorf("print section changed after round trip: %+v != %+v", back.Print, cfg.Print)
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty configuration")
	}
	if !strings.Contains(string(data), "version: 1") {
		t.Error("Prepare() output does not contain version")
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 3\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("error %q is not wrapped", err)
	}
	if errors.Unwrap(err) == nil {
		t.Error("expected wrapped validation error")
	}
}
