package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ThatOtherAndrew/Flasher/internal/easing"
	"github.com/ThatOtherAndrew/Flasher/internal/logger"
)

const (
	BackendGL       = "gl"
	BackendTerminal = "terminal"
)

type Fire struct {
	Count int           `yaml:"count"`
	Burst time.Duration `yaml:"burst"`
	Pause time.Duration `yaml:"pause"`
}

type Settings struct {
	Backend      string  `yaml:"backend"`
	Step         float32 `yaml:"step"`
	Easing       string  `yaml:"easing"`
	MinValue     float32 `yaml:"min_value"`
	BaseGray     float32 `yaml:"base_gray"`
	StartRunning bool    `yaml:"start_running"`
	Fullscreen   bool    `yaml:"fullscreen"`
	Sound        bool    `yaml:"sound"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	LogLevel     string  `yaml:"log_level"`
	Fire         Fire    `yaml:"fire"`
}

func Default() *Settings {
	return &Settings{
		Backend:  BackendGL,
		Step:     2.004,
		Easing:   easing.Default,
		MinValue: 0.5,
		BaseGray: 128.0 / 255.0,
		Width:    1280,
		Height:   720,
		LogLevel: "info",
		Fire: Fire{
			Count: 4,
			Burst: 500 * time.Millisecond,
			Pause: 100 * time.Millisecond,
		},
	}
}

func GetDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "flasher")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

func GetSettingsPath() (string, error) {
	configDir, err := GetDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.yaml"), nil
}

// LoadSettings reads path, creating it with defaults when it does not exist.
// An unreadable or malformed file falls back to defaults; individual bad
// values are replaced by their default with a warning.
func LoadSettings(path string) (*Settings, error) {
	defaultSettings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("Creating default settings file", "path", path)
			if err := WriteSettings(path, defaultSettings); err != nil {
				slog.Warn("Failed to create default settings file", "err", err)
			}
			return defaultSettings, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]interface{}
	if err := yaml.Unmarshal(data, &rawSettings); err != nil {
		slog.Warn("Invalid settings file, using defaults", "err", err)
		return defaultSettings, nil
	}
	for _, key := range unknownKeys(rawSettings, reflect.TypeOf(Settings{}), "") {
		slog.Warn("Unrecognised setting key in settings file", "key", key)
	}

	settings := Default()
	if err := yaml.Unmarshal(data, settings); err != nil {
		slog.Warn("Invalid settings file, using defaults", "err", err)
		return defaultSettings, nil
	}

	settings.Validate()
	return settings, nil
}

// Validate replaces out-of-range values with their defaults.
func (s *Settings) Validate() {
	d := Default()

	if s.Backend != BackendGL && s.Backend != BackendTerminal {
		slog.Warn("Invalid backend, using default", "backend", s.Backend, "default", d.Backend)
		s.Backend = d.Backend
	}
	if _, err := easing.Lookup(s.Easing); err != nil {
		slog.Warn("Invalid easing, using default", "easing", s.Easing, "default", d.Easing)
		s.Easing = d.Easing
	}
	if _, err := logger.ParseLogLevel(s.LogLevel); err != nil {
		slog.Warn("Invalid log_level, using default", "log_level", s.LogLevel, "default", d.LogLevel)
		s.LogLevel = d.LogLevel
	}
	if s.MinValue < 0 || s.MinValue > 1 {
		slog.Warn("Invalid min_value, must be between 0.0 and 1.0, using default",
			"min_value", s.MinValue, "default", d.MinValue)
		s.MinValue = d.MinValue
	}
	if s.BaseGray < 0 || s.BaseGray > 1 {
		slog.Warn("Invalid base_gray, must be between 0.0 and 1.0, using default",
			"base_gray", s.BaseGray, "default", d.BaseGray)
		s.BaseGray = d.BaseGray
	}
	if s.Width <= 0 || s.Height <= 0 {
		slog.Warn("Invalid window size, using default", "width", s.Width, "height", s.Height)
		s.Width, s.Height = d.Width, d.Height
	}
	if s.Fire.Count < 0 {
		slog.Warn("Invalid fire.count, using default", "count", s.Fire.Count, "default", d.Fire.Count)
		s.Fire.Count = d.Fire.Count
	}
	if s.Fire.Burst < 0 {
		slog.Warn("Invalid fire.burst, using default", "burst", s.Fire.Burst, "default", d.Fire.Burst)
		s.Fire.Burst = d.Fire.Burst
	}
	if s.Fire.Pause < 0 {
		slog.Warn("Invalid fire.pause, using default", "pause", s.Fire.Pause, "default", d.Fire.Pause)
		s.Fire.Pause = d.Fire.Pause
	}
}

func (s *Settings) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteSettings(path string, settings *Settings) error {
	data, err := settings.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func unknownKeys(raw map[string]interface{}, t reflect.Type, prefix string) []string {
	known := getKnownKeys(t)

	var unknown []string
	for key, value := range raw {
		field, ok := known[key]
		if !ok {
			unknown = append(unknown, prefix+key)
			continue
		}
		nested, isMap := value.(map[string]interface{})
		if isMap && field.Kind() == reflect.Struct {
			unknown = append(unknown, unknownKeys(nested, field, prefix+key+".")...)
		}
	}
	return unknown
}

func getKnownKeys(t reflect.Type) map[string]reflect.Type {
	keys := make(map[string]reflect.Type)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if tag := field.Tag.Get("yaml"); tag != "" {
			// Handle tags like "field,omitempty"
			tagName := strings.Split(tag, ",")[0]
			if tagName != "-" {
				keys[tagName] = field.Type
			}
		}
	}
	return keys
}
