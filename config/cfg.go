package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	RenderConfig struct {
		// script evaluation budget for one template render
		TimeoutSec int `yaml:"timeout_sec" validate:"min=1,max=120"`
	}

	EditorConfig struct {
		// starter used when "new" is called without an explicit one
		DefaultStarter string `yaml:"default_starter" validate:"required"`
		// brand kit offered by default in palettes and starters
		DefaultBrandKit string `yaml:"default_brand_kit" validate:"required"`
	}

	StorageConfig struct {
		DatabasePath string `yaml:"database_path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
		AssetsDir    string `yaml:"assets_dir" sanitize:"path_clean" validate:"required"`
	}

	ServerConfig struct {
		Listen    string       `yaml:"listen" validate:"required,hostname_port"`
		AuthToken SecretString `yaml:"auth_token,omitempty"`
	}

	// RemoteConfig points CLI commands at a running server instead of the
	// local database.
	RemoteConfig struct {
		BaseURL   string       `yaml:"base_url,omitempty" validate:"omitempty,url"`
		AuthToken SecretString `yaml:"auth_token,omitempty"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Editor    EditorConfig   `yaml:"editor"`
		Render    RenderConfig   `yaml:"render"`
		Storage   StorageConfig  `yaml:"storage"`
		Server    ServerConfig   `yaml:"server"`
		Remote    RemoteConfig   `yaml:"remote"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// StoreMode reports which template store the configuration selects.
func (cfg *Config) StoreMode() StoreMode {
	if len(cfg.Remote.BaseURL) > 0 {
		return StoreModeRemote
	}
	return StoreModeLocal
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
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

	// overwrite cfg values with values from the file
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
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
