package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/renato0307/covdir/internal/domain"
)

// Defaults applied when neither flags, env nor settings.json say otherwise
const (
	DefaultCacheMaxAgeHours    = 24
	DefaultEndpoint            = "https://activedata.allizom.org"
	DefaultPrefetchConcurrency = 4
	DefaultSSHHost             = "localhost"
	DefaultSSHPort             = "23234"
	DefaultTimeoutSeconds      = 30
)

// ErrUnknownSetting is returned by SetValue for keys it does not accept
var ErrUnknownSetting = errors.New("unknown setting")

// ThresholdSettings overrides the coverage level bounds
type ThresholdSettings struct {
	Low    *int `json:"low,omitempty"`
	Medium *int `json:"medium,omitempty"`
}

// Settings represents the structure of $COVDIR_HOME/settings.json
type Settings struct {
	CacheEnabled        *bool              `json:"cache_enabled,omitempty"`
	CacheMaxAgeHours    *int               `json:"cache_max_age_hours,omitempty"`
	CoverageThresholds  *ThresholdSettings `json:"coverage_thresholds,omitempty"`
	Debug               *bool              `json:"debug,omitempty"`
	DefaultRepo         string             `json:"default_repo,omitempty"`
	Endpoint            string             `json:"endpoint,omitempty"`
	MaxLogFiles         *int               `json:"max_log_files,omitempty"`
	PrefetchConcurrency *int               `json:"prefetch_concurrency,omitempty"`
	SSHHost             string             `json:"ssh_host,omitempty"`
	SSHPort             string             `json:"ssh_port,omitempty"`
	TimeoutSeconds      *int               `json:"timeout_seconds,omitempty"`
}

// Thresholds returns the configured coverage bounds merged over the defaults
func (s *Settings) Thresholds() domain.Thresholds {
	thresholds := domain.DefaultThresholds()
	if s == nil || s.CoverageThresholds == nil {
		return thresholds
	}
	if s.CoverageThresholds.Low != nil {
		thresholds.Low = *s.CoverageThresholds.Low
	}
	if s.CoverageThresholds.Medium != nil {
		thresholds.Medium = *s.CoverageThresholds.Medium
	}
	return thresholds
}

// CacheMaxAge returns how long a cached snapshot stays fresh
func (s *Settings) CacheMaxAge() time.Duration {
	hours := DefaultCacheMaxAgeHours
	if s != nil && s.CacheMaxAgeHours != nil {
		hours = *s.CacheMaxAgeHours
	}
	return time.Duration(hours) * time.Hour
}

// IsCacheEnabled defaults to true
func (s *Settings) IsCacheEnabled() bool {
	if s == nil || s.CacheEnabled == nil {
		return true
	}
	return *s.CacheEnabled
}

// GetPrefetchConcurrency returns the prefetch worker limit
func (s *Settings) GetPrefetchConcurrency() int {
	if s == nil || s.PrefetchConcurrency == nil || *s.PrefetchConcurrency < 1 {
		return DefaultPrefetchConcurrency
	}
	return *s.PrefetchConcurrency
}

// Validate checks for configuration errors
func (s *Settings) Validate() error {
	if err := s.Thresholds().Validate(); err != nil {
		return fmt.Errorf("invalid coverage_thresholds: %w", err)
	}
	if s.TimeoutSeconds != nil && *s.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", *s.TimeoutSeconds)
	}
	if s.CacheMaxAgeHours != nil && *s.CacheMaxAgeHours < 0 {
		return fmt.Errorf("cache_max_age_hours must not be negative, got %d", *s.CacheMaxAgeHours)
	}
	return nil
}

// settingSetters maps the keys accepted by SetValue to their parsers
var settingSetters = map[string]func(s *Settings, value string) error{
	"cache_enabled": func(s *Settings, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.CacheEnabled = &b
		return nil
	},
	"cache_max_age_hours": func(s *Settings, value string) error {
		return setInt(&s.CacheMaxAgeHours, value)
	},
	"coverage_thresholds.low": func(s *Settings, value string) error {
		if s.CoverageThresholds == nil {
			s.CoverageThresholds = &ThresholdSettings{}
		}
		return setInt(&s.CoverageThresholds.Low, value)
	},
	"coverage_thresholds.medium": func(s *Settings, value string) error {
		if s.CoverageThresholds == nil {
			s.CoverageThresholds = &ThresholdSettings{}
		}
		return setInt(&s.CoverageThresholds.Medium, value)
	},
	"debug": func(s *Settings, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		s.Debug = &b
		return nil
	},
	"default_repo": func(s *Settings, value string) error {
		s.DefaultRepo = value
		return nil
	},
	"endpoint": func(s *Settings, value string) error {
		s.Endpoint = strings.TrimRight(value, "/")
		return nil
	},
	"max_log_files": func(s *Settings, value string) error {
		return setInt(&s.MaxLogFiles, value)
	},
	"prefetch_concurrency": func(s *Settings, value string) error {
		return setInt(&s.PrefetchConcurrency, value)
	},
	"ssh_host": func(s *Settings, value string) error {
		s.SSHHost = value
		return nil
	},
	"ssh_port": func(s *Settings, value string) error {
		s.SSHPort = value
		return nil
	},
	"timeout_seconds": func(s *Settings, value string) error {
		return setInt(&s.TimeoutSeconds, value)
	},
}

func setInt(dst **int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = &n
	return nil
}

// SettingKeys returns the keys accepted by SetValue, sorted
func SettingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetValue parses value and assigns it to the setting named key
func (s *Settings) SetValue(key, value string) error {
	setter, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownSetting, key)
	}
	if err := setter(s, value); err != nil {
		return fmt.Errorf("invalid value for '%s': %w", key, err)
	}
	return s.Validate()
}

// LoadSettings loads settings from $COVDIR_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $COVDIR_HOME/settings.json while holding
// an exclusive lock, so concurrent `settings set` calls don't interleave.
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	unlock, err := lockFile(path + ".lock")
	if err != nil {
		return fmt.Errorf("failed to lock settings file: %w", err)
	}
	defer unlock()

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// UpdateSettings loads, mutates and saves settings under the settings lock
func UpdateSettings(update func(s *Settings) error) (*Settings, error) {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	unlock, err := lockFile(path + ".lock")
	if err != nil {
		return nil, fmt.Errorf("failed to lock settings file: %w", err)
	}
	defer unlock()

	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	if err := update(settings); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write settings file: %w", err)
	}
	return settings, nil
}
