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
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	envPrefix       = "MTADMIN"
	appDirName      = "MTAdmin"
	settingsName    = "mtadmin.yaml"
	recordsFileName = "complaints.json"
	webhooksFile    = "config.json"
	journalFileName = "deliveries.db"

	defaultEnv            = EnvLocal
	defaultLogLevel       = "warn"
	defaultMaxAttempts    = 3
	defaultBaseDelay      = 2 * time.Second
	defaultAttemptTimeout = 10 * time.Second
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env            string            `mapstructure:"app_env"`
	LogLevel       string            `mapstructure:"log_level"`
	DataDir        string            `mapstructure:"data_dir"`
	RecordsPath    string            `mapstructure:"records_path"`
	WebhooksPath   string            `mapstructure:"webhooks_path"`
	JournalPath    string            `mapstructure:"journal_path"`
	JournalEnabled bool              `mapstructure:"journal_enabled"`
	ExportDir      string            `mapstructure:"export_dir"`
	Delivery       Delivery          `mapstructure:"delivery"`
	Labels         map[string]string `mapstructure:"labels"`
}

type Delivery struct {
	MaxAttempts    int           `mapstructure:"max_attempts"`
	BaseDelay      time.Duration `mapstructure:"base_delay"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

// Load builds the configuration from defaults, an optional settings file,
// an optional .env file and MTADMIN_* environment variables, in increasing
// order of precedence. cfgFile overrides the settings file location.
func Load(cfgFile string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("records_path", "")
	v.SetDefault("webhooks_path", "")
	v.SetDefault("journal_path", "")
	v.SetDefault("journal_enabled", true)
	v.SetDefault("export_dir", ".")
	v.SetDefault("delivery.max_attempts", defaultMaxAttempts)
	v.SetDefault("delivery.base_delay", defaultBaseDelay)
	v.SetDefault("delivery.attempt_timeout", defaultAttemptTimeout)

	if cfgFile == "" {
		cfgFile = filepath.Join(v.GetString("data_dir"), settingsName)
		if _, err := os.Stat(cfgFile); err != nil {
			cfgFile = ""
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.resolvePaths()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv loads .env from the working directory or its parent if present.
func loadDotEnv() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "load %s: %v\n", path, err)
			}
			return
		}
	}
}

// defaultDataDir is the per-user configuration directory of the tool.
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			dir = "."
		}
	}
	return filepath.Join(dir, appDirName)
}

func (c *Config) resolvePaths() {
	if c.RecordsPath == "" {
		c.RecordsPath = filepath.Join(c.DataDir, recordsFileName)
	}
	if c.WebhooksPath == "" {
		c.WebhooksPath = filepath.Join(c.DataDir, webhooksFile)
	}
	if c.JournalPath == "" {
		c.JournalPath = filepath.Join(c.DataDir, journalFileName)
	}
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("%w: app_env must be one of local, dev, prod, got %q", ErrInvalidConfig, c.Env)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if c.Delivery.MaxAttempts < 1 {
		return fmt.Errorf("%w: delivery.max_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.Delivery.BaseDelay <= 0 || c.Delivery.AttemptTimeout <= 0 {
		return fmt.Errorf("%w: delivery delays must be positive", ErrInvalidConfig)
	}
	return nil
}
