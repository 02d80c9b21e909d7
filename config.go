package main

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath      = "vpngate.ovpn"
	DefaultCredentialsPath = "pass.txt"
	DefaultDataCiphers     = "AES-256-GCM:AES-128-GCM:CHACHA20-POLY1305:AES-128-CBC"
)

var DefaultOpenVPNCommand = []string{"sudo", "openvpn"}

type Config struct {
	ListURL         string   `yaml:"list_url"`
	ConfigPath      string   `yaml:"config_path"`
	CredentialsPath string   `yaml:"credentials_path"`
	OpenVPNCommand  []string `yaml:"openvpn_command"`
	DataCiphers     string   `yaml:"data_ciphers"`
}

func DefaultConfig() Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return cfg
}

// LoadConfig reads a YAML config file. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &IOError{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &UsageError{Msg: path + ": " + err.Error()}
	}

	ApplyDefaults(&cfg)
	return cfg, nil
}

func ApplyDefaults(cfg *Config) {
	if cfg.ListURL == "" {
		cfg.ListURL = DefaultListURL
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfigPath
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = DefaultCredentialsPath
	}
	if len(cfg.OpenVPNCommand) == 0 {
		cfg.OpenVPNCommand = append([]string{}, DefaultOpenVPNCommand...)
	}
	if cfg.DataCiphers == "" {
		cfg.DataCiphers = DefaultDataCiphers
	}
}

func Validate(cfg Config) error {
	if cfg.ListURL == "" {
		return errors.New("list_url is required")
	}
	if len(cfg.OpenVPNCommand) == 0 || cfg.OpenVPNCommand[0] == "" {
		return errors.New("openvpn_command is required")
	}
	return nil
}
