package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Dashboard holds the terminal dashboard's settings.
type Dashboard struct {
	API    APIConfig
	Export ExportConfig
	Log    LogConfig
	HTTP   HTTPConfig
}

// APIConfig points the dashboard at a running API server.
type APIConfig struct {
	URL   string
	Token string
}

// ExportConfig controls where downloaded workbooks are saved.
type ExportConfig struct {
	Dir string
}

type LogConfig struct {
	Path  string
	Level string
}

type HTTPConfig struct {
	Timeout time.Duration
}

// LoadDashboard reads configuration from file and env. Env var overrides use
// prefix SUBTRACK_ (SUBTRACK_API_URL, SUBTRACK_EXPORT_DIR, ...).
func LoadDashboard() (Dashboard, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.url", "http://localhost:8080")
	v.SetDefault("api.token", "")
	v.SetDefault("export.dir", ".")
	v.SetDefault("log.path", filepath.Join(os.TempDir(), "subtrack-dashboard.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("http.timeout", "10s")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SUBTRACK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "subtrack"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SUBTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present; an explicit path must exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Dashboard{}, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var d Dashboard
	if err := v.Unmarshal(&d); err != nil {
		return Dashboard{}, fmt.Errorf("unmarshal config: %w", err)
	}
	d.API.URL = strings.TrimRight(d.API.URL, "/")
	if d.API.URL == "" {
		return Dashboard{}, fmt.Errorf("api.url is required")
	}
	if d.HTTP.Timeout <= 0 {
		return Dashboard{}, fmt.Errorf("http.timeout must be positive")
	}
	return d, nil
}
