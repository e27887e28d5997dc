package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/istitla/istitla/internal/services"
)

// Config is the top-level server configuration. Values come from
// defaults, an optional YAML file, and ISTITLA_* environment variables,
// in increasing priority.
type Config struct {
	Addr            string `mapstructure:"addr"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	JWTSecret       string `mapstructure:"jwt_secret"`
	DefaultTimezone string `mapstructure:"default_timezone"`
	// ExcludeUnknownYesNo drops unclassifiable yes/no answers from CSAT
	// instead of counting them as neutral.
	ExcludeUnknownYesNo bool               `mapstructure:"exclude_unknown_yes_no"`
	NPSBands            []services.NPSBand `mapstructure:"nps_bands"`
	CacheTTL            time.Duration      `mapstructure:"cache_ttl"`
	AllowedOrigins      []string           `mapstructure:"allowed_origins"`
}

// Load reads configuration from the given file (or ./config.yaml when
// empty) and returns a Config with defaults applied. A missing file is
// not an error; environment variables alone are a valid setup.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("default_timezone", "Asia/Dubai")
	v.SetDefault("exclude_unknown_yes_no", false)
	v.SetDefault("cache_ttl", time.Minute)
	v.SetDefault("allowed_origins", []string{})

	v.SetEnvPrefix("ISTITLA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.NPSBands) == 0 {
		cfg.NPSBands = services.DefaultNPSBands
	}
	return &cfg, nil
}
