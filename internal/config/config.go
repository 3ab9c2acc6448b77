package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "WW"
	ConfigDir  = ".walletwise"
	configName = "config"
	configType = "toml"
)

// Keys shared with the adapters that read the same viper instance.
const (
	KeyAPIBaseURL      = "api.base_url"
	KeyAPITimeout      = "api.timeout"
	KeyDisplayCurrency = "display.currency"
	KeyWeekStart       = "display.week_start"
	KeyRatesMaxAge     = "rates.max_age"
	KeyServerAddr      = "server.addr"
	KeyServerRateLimit = "server.rate_limit"
	KeyServerBurst     = "server.burst"
	KeyLogLevel        = "log.level"
	KeyProfilesPath    = "profiles.path"
	KeySecretsDir      = "secrets.dir"
	KeyDefaultProfile  = "profiles.default"
)

type Config struct {
	API struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`

	Display struct {
		Currency  string `mapstructure:"currency"`
		WeekStart string `mapstructure:"week_start"`
	} `mapstructure:"display"`

	Rates struct {
		MaxAge time.Duration `mapstructure:"max_age"`
	} `mapstructure:"rates"`

	Server struct {
		Addr      string  `mapstructure:"addr"`
		RateLimit float64 `mapstructure:"rate_limit"`
		Burst     int     `mapstructure:"burst"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Profiles struct {
		Path    string `mapstructure:"path"`
		Default string `mapstructure:"default"`
	} `mapstructure:"profiles"`

	Secrets struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"secrets"`
}

// New prepares a viper instance rooted at homeDir/.walletwise with defaults
// and WW_* environment overrides. A .env file in the working directory is
// loaded first when present.
func New(homeDir string) *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, ConfigDir))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v, homeDir)

	return v
}

func SetDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault(KeyAPIBaseURL, "http://localhost:3000/api")
	v.SetDefault(KeyAPITimeout, 30*time.Second)
	v.SetDefault(KeyDisplayCurrency, "")
	v.SetDefault(KeyWeekStart, "monday")
	v.SetDefault(KeyRatesMaxAge, time.Hour)
	v.SetDefault(KeyServerAddr, "127.0.0.1:8787")
	v.SetDefault(KeyServerRateLimit, 10.0)
	v.SetDefault(KeyServerBurst, 20)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyProfilesPath, filepath.Join(homeDir, ConfigDir, "profiles.toml"))
	v.SetDefault(KeyDefaultProfile, "default")
	v.SetDefault(KeySecretsDir, filepath.Join(homeDir, ConfigDir, "secrets"))
}

// Load reads config.toml when it exists and decodes the merged settings.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("read config file: %w", err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return c, err
	}

	return c, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url is empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if _, err := ParseWeekday(c.Display.WeekStart); err != nil {
		return err
	}

	return nil
}

// ParseWeekday accepts full English day names and their three-letter forms.
func ParseWeekday(raw string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return time.Monday, nil
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		if normalized == name || normalized == name[:3] {
			return day, nil
		}
	}

	return time.Monday, fmt.Errorf("display.week_start: unknown weekday %q", raw)
}
