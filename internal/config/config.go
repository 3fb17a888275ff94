/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable YAML configuration and merges
// environment overrides. The detection service API key never touches disk;
// it lives in the OS keychain.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// DetectConfig points at the external grid-detection service.
type DetectConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// DrawingConfig carries render-side preferences.
type DrawingConfig struct {
	// FontFile is an optional TTF/OTF used for annotation text.
	FontFile string `yaml:"font_file"`
	// OutDir is where CLI exports land when the output path is relative.
	OutDir string `yaml:"out_dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Detect        DetectConfig  `yaml:"detect"`
	Drawing       DrawingConfig `yaml:"drawing"`
	Server        ServerConfig  `yaml:"server"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Detect:        DetectConfig{BaseURL: "", TimeoutMs: 30000},
		Drawing:       DrawingConfig{FontFile: "", OutDir: "exports"},
		Server:        ServerConfig{Addr: ":8090"},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvDetectURL       = "APR_DETECT_URL"
	EnvDetectTimeoutMs = "APR_DETECT_TIMEOUT_MS"
	EnvFontFile        = "APR_FONT_FILE"
	EnvOutDir          = "APR_OUT_DIR"
	EnvServerAddr      = "APR_SERVER_ADDR"
	EnvLogLevel        = "APR_LOG_LEVEL"
	EnvLogFormat       = "APR_LOG_FORMAT"
	EnvLogSource       = "APR_LOG_SOURCE"
	EnvLogFile         = "APR_LOG_FILE"
	// EnvDetectKey bypasses the keyring, mainly for CI.
	EnvDetectKey = "APR_DETECT_API_KEY"
)

// Service/key for the OS keyring.
const (
	keyringService = "ArchPro"
	keyringKeyName = "detect_api_key"
)

// KeyStore abstracts the keyring so tests can stub it.
type KeyStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

var keyStore KeyStore = osKeyring{}

// DetectAPIKey resolves the detection service key: env override first, then
// the OS keyring. An empty string means no key is configured.
func DetectAPIKey() string {
	if v := strings.TrimSpace(os.Getenv(EnvDetectKey)); v != "" {
		return v
	}
	v, err := keyStore.Get(keyringService, keyringKeyName)
	if err != nil {
		return ""
	}
	return v
}

// StoreDetectAPIKey persists the key into the OS keyring; an empty key
// deletes the stored entry.
func StoreDetectAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return keyStore.Delete(keyringService, keyringKeyName)
	}
	return keyStore.Set(keyringService, keyringKeyName, key)
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ArchPro")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ArchPro")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "archpro")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and
// merges environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Detect.BaseURL) != "" {
		dst.Detect.BaseURL = strings.TrimSpace(src.Detect.BaseURL)
	}
	if src.Detect.TimeoutMs != 0 {
		dst.Detect.TimeoutMs = src.Detect.TimeoutMs
	}
	if strings.TrimSpace(src.Drawing.FontFile) != "" {
		dst.Drawing.FontFile = strings.TrimSpace(src.Drawing.FontFile)
	}
	if strings.TrimSpace(src.Drawing.OutDir) != "" {
		dst.Drawing.OutDir = strings.TrimSpace(src.Drawing.OutDir)
	}
	if strings.TrimSpace(src.Server.Addr) != "" {
		dst.Server.Addr = strings.TrimSpace(src.Server.Addr)
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDetectURL)); v != "" {
		cfg.Detect.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDetectTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Detect.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontFile)); v != "" {
		cfg.Drawing.FontFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutDir)); v != "" {
		cfg.Drawing.OutDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvServerAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
