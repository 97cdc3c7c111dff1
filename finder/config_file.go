package finder

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of Config. Unset fields keep the preset's value.
type FileConfig struct {
	Preset          string `yaml:"preset" validate:"omitempty,oneof=default halving bisect quad wide"`
	Fanout          *int   `yaml:"fanout" validate:"omitempty,min=2,max=65536"`
	AdaptiveFanout  *bool  `yaml:"adaptive_fanout"`
	BitmapThreshold *int   `yaml:"bitmap_threshold" validate:"omitempty,min=1,max=16777216"`
	BucketCount     *int   `yaml:"bucket_count" validate:"omitempty,min=0"`
	Recovery        string `yaml:"recovery" validate:"omitempty,oneof=sum xor none"`
	FilterLimit     *int   `yaml:"filter_limit" validate:"omitempty,min=0"`
	Workers         *int   `yaml:"workers" validate:"omitempty,min=0,max=1024"`
	Verify          *bool  `yaml:"verify"`
}

var validate = validator.New()

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML into a Config, starting from the named preset.
func ParseConfig(data []byte) (*Config, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(&fc); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return fc.Config()
}

// Config applies the file's fields over its preset.
func (fc *FileConfig) Config() (*Config, error) {
	var cfg *Config
	switch fc.Preset {
	case "", "default":
		cfg = DefaultConfig()
	case "halving":
		cfg = HalvingConfig()
	case "bisect":
		cfg = BisectConfig()
	case "quad":
		cfg = QuadConfig()
	case "wide":
		cfg = WideConfig()
	default:
		return nil, fmt.Errorf("unknown preset %q", fc.Preset)
	}
	if fc.Fanout != nil {
		cfg.Fanout = *fc.Fanout
	}
	if fc.AdaptiveFanout != nil {
		cfg.AdaptiveFanout = *fc.AdaptiveFanout
	}
	if fc.BitmapThreshold != nil {
		cfg.BitmapThreshold = *fc.BitmapThreshold
	}
	if fc.BucketCount != nil {
		cfg.BucketCount = *fc.BucketCount
	}
	if fc.Recovery != "" {
		r, err := ParseRecovery(fc.Recovery)
		if err != nil {
			return nil, err
		}
		cfg.Recovery = r
	}
	if fc.FilterLimit != nil {
		cfg.FilterLimit = *fc.FilterLimit
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.Verify != nil {
		cfg.Verify = *fc.Verify
	}
	return cfg.OrDefault(), nil
}
