package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/lineup-cli/internal/model"
)

// ErrInvalid is returned by Validate for unusable configuration.
var ErrInvalid = eris.New("invalid configuration")

// Sink kinds.
const (
	SinkCSV      = "csv"
	SinkXLSX     = "xlsx"
	SinkSQLite   = "sqlite"
	SinkPostgres = "postgres"
	SinkNotion   = "notion"
)

// Config holds the full application configuration.
type Config struct {
	Source      string   `yaml:"source" mapstructure:"source"`
	URL         string   `yaml:"url" mapstructure:"url"`
	Year        int      `yaml:"year" mapstructure:"year"`
	Columns     []string `yaml:"columns" mapstructure:"columns"`
	EmptyMarker string   `yaml:"empty_marker" mapstructure:"empty_marker"`

	// FallbackStyles overrides the source's fallback style policy when set.
	FallbackStyles *bool `yaml:"fallback_styles" mapstructure:"fallback_styles"`

	Info  InfoConfig  `yaml:"info" mapstructure:"info"`
	Fetch FetchConfig `yaml:"fetch" mapstructure:"fetch"`
	Sink  SinkConfig  `yaml:"sink" mapstructure:"sink"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// InfoConfig configures the artist metadata site.
type InfoConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// FetchConfig configures page fetching.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
}

// SinkConfig selects and configures the output destination.
type SinkConfig struct {
	Kind           string `yaml:"kind" mapstructure:"kind"`
	Path           string `yaml:"path" mapstructure:"path"`
	Sheet          string `yaml:"sheet" mapstructure:"sheet"`
	DatabaseURL    string `yaml:"database_url" mapstructure:"database_url"`
	Table          string `yaml:"table" mapstructure:"table"`
	NotionToken    string `yaml:"notion_token" mapstructure:"notion_token"`
	NotionDatabase string `yaml:"notion_database" mapstructure:"notion_database"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// legacyKeys maps keys of older params files to their current names.
var legacyKeys = map[string]string{
	"festival":      "source",
	"export_format": "sink.kind",
}

// unsetByDefault lists keys without a default; they are bound explicitly so
// environment overrides reach Unmarshal.
var unsetByDefault = []string{
	"source",
	"url",
	"fallback_styles",
	"fetch.user_agent",
	"sink.path",
	"sink.database_url",
	"sink.table",
	"sink.notion_token",
	"sink.notion_database",
}

// Load reads configuration from path and the environment. An empty path
// looks for an optional config.yaml in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("LINEUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range unsetByDefault {
		_ = v.BindEnv(key)
	}

	// Defaults
	v.SetDefault("year", time.Now().Year())
	v.SetDefault("columns", []string{model.ColName, model.ColActiveDate, model.ColGenres, model.ColStyles})
	v.SetDefault("empty_marker", model.Empty)
	v.SetDefault("info.base_url", "https://www.allmusic.com")
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("sink.kind", SinkCSV)
	v.SetDefault("sink.sheet", "lineup")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional unless named)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	for old, key := range legacyKeys {
		if v.InConfig(old) && !v.InConfig(key) {
			v.SetDefault(key, v.Get(old))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate reports the first unusable setting, naming its key.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return eris.Wrap(ErrInvalid, "source: required")
	}
	if c.URL == "" {
		return eris.Wrap(ErrInvalid, "url: required")
	}
	if u, err := url.Parse(c.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return eris.Wrapf(ErrInvalid, "url: %q is not an http(s) URL", c.URL)
	}
	if len(c.Columns) == 0 {
		return eris.Wrap(ErrInvalid, "columns: at least one column is required")
	}
	if model.CanonicalColumn(c.Columns[0]) != model.ColName {
		return eris.Wrapf(ErrInvalid, "columns: first column must be %q, got %q", model.ColName, c.Columns[0])
	}
	if c.Fetch.TimeoutSecs <= 0 {
		return eris.Wrapf(ErrInvalid, "fetch.timeout_secs: must be positive, got %d", c.Fetch.TimeoutSecs)
	}
	if c.Fetch.MaxRetries <= 0 {
		return eris.Wrapf(ErrInvalid, "fetch.max_retries: must be positive, got %d", c.Fetch.MaxRetries)
	}

	switch c.Sink.Kind {
	case SinkCSV, SinkXLSX, SinkSQLite:
	case SinkPostgres:
		if c.Sink.DatabaseURL == "" {
			return eris.Wrap(ErrInvalid, "sink.database_url: required for postgres")
		}
	case SinkNotion:
		if c.Sink.NotionToken == "" {
			return eris.Wrap(ErrInvalid, "sink.notion_token: required for notion")
		}
		if c.Sink.NotionDatabase == "" {
			return eris.Wrap(ErrInvalid, "sink.notion_database: required for notion")
		}
	default:
		return eris.Wrapf(ErrInvalid, "sink.kind: unknown kind %q", c.Sink.Kind)
	}
	return nil
}

// SinkPath returns the configured output file, defaulting to
// <source>_<year> with the extension of the sink kind.
func (c *Config) SinkPath() string {
	if c.Sink.Path != "" {
		return c.Sink.Path
	}
	ext := c.Sink.Kind
	if c.Sink.Kind == SinkSQLite {
		ext = "db"
	}
	base := strings.TrimSpace(c.Source)
	if c.Year > 0 {
		base = fmt.Sprintf("%s_%d", base, c.Year)
	}
	return base + "." + ext
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
