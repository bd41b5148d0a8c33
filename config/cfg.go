package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"tprint/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// GeometryConfig describes default paper when printer does not report
	// its own page description. Units are device independent pixels.
	GeometryConfig struct {
		Width           float64 `yaml:"width" validate:"gt=0"`
		Height          float64 `yaml:"height" validate:"gt=0"`
		ImageableWidth  float64 `yaml:"imageable_width" validate:"gt=0,ltefield=Width"`
		ImageableHeight float64 `yaml:"imageable_height" validate:"gt=0,ltefield=Height"`
	}

	PrintConfig struct {
		Display        common.DisplayContent `yaml:"display" validate:"min=1,max=3"`
		MarginLeft     float64               `yaml:"margin_left" validate:"gte=0,lt=0.5"`
		MarginTop      float64               `yaml:"margin_top" validate:"gte=0,lt=0.5"`
		MaxPages       int                   `yaml:"max_pages" validate:"min=1"`
		AllPagesPolicy common.AllPagesPolicy `yaml:"all_pages_policy" validate:"gte=0"`
		Page           GeometryConfig        `yaml:"page"`
	}

	LayoutConfig struct {
		FontFamily       string               `yaml:"font_family"`
		FontSize         float64              `yaml:"font_size" validate:"gt=0"`
		LineSpacing      float64              `yaml:"line_spacing" validate:"gte=1"`
		CharacterSpacing int                  `yaml:"character_spacing"`
		Alignment        common.TextAlignment `yaml:"alignment" validate:"gte=0"`
		Foreground       string               `yaml:"foreground" validate:"omitempty,hexcolor"`
		Language         string               `yaml:"language" validate:"required,bcp47_language_tag"`
		ImageWidth       float64              `yaml:"image_width" validate:"gt=0"`
		ImageHeight      float64              `yaml:"image_height" validate:"gt=0"`
	}

	ResourcesConfig struct {
		Workers   int           `yaml:"workers" validate:"min=1,max=64"`
		CacheTTL  time.Duration `yaml:"cache_ttl" validate:"gte=0"`
		UseBroken bool          `yaml:"use_broken"`
		SVGSize   int           `yaml:"svg_size" validate:"min=16,max=8192"`
	}

	OutputConfig struct {
		NameTemplate  string `yaml:"name_template"`
		Transliterate bool   `yaml:"transliterate"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Print     PrintConfig     `yaml:"print"`
		Layout    LayoutConfig    `yaml:"layout"`
		Resources ResourcesConfig `yaml:"resources"`
		Output    OutputConfig    `yaml:"output"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	NameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(NameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Only fields we know about are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
