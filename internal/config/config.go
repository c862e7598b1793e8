package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"CounterPicker/internal/ports"
)

const (
	configPathEnv     = "COUNTERPICKER_CONFIG"
	wikiAPIURLEnv     = "WIKI_API_URL"
	databasePathEnv   = "COUNTERPICKER_DB"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	logLevelEnv       = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Wiki          WikiConfig         `yaml:"wiki"`
	Enrichment    EnrichmentConfig   `yaml:"enrichment"`
	Database      DatabaseConfig     `yaml:"database"`
	Notifications NotificationConfig `yaml:"notifications"`
	Data          DataConfig         `yaml:"data"`
	Catalogs      []CatalogConfig    `yaml:"catalogs"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// WikiConfig describes how to reach the MediaWiki API.
type WikiConfig struct {
	APIURL            string        `yaml:"apiUrl"`
	UserAgent         string        `yaml:"userAgent"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
}

// EnrichmentConfig bounds the status refresh run.
type EnrichmentConfig struct {
	PoolSize      int           `yaml:"poolSize"`
	LookupTimeout time.Duration `yaml:"lookupTimeout"`
	Interval      time.Duration `yaml:"interval"`
}

// DatabaseConfig points at the sqlite run history file. Empty disables history.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// DataConfig locates auxiliary data files.
type DataConfig struct {
	CountersPath     string `yaml:"countersPath"`
	RemovedItemsPath string `yaml:"removedItemsPath"`
}

// CatalogConfig binds a catalog file to a classification taxonomy.
type CatalogConfig struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Taxonomy string `yaml:"taxonomy"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Catalog returns the catalog with the given name.
func (c Config) Catalog(name string) (CatalogConfig, bool) {
	for _, cat := range c.Catalogs {
		if cat.Name == name {
			return cat, true
		}
	}
	return CatalogConfig{}, false
}

// Spec converts the catalog entry into the port-level description.
func (c CatalogConfig) Spec() ports.CatalogSpec {
	return ports.CatalogSpec{Name: c.Name, Path: c.Path, Taxonomy: c.Taxonomy}
}

// Specs converts all configured catalogs.
func (c Config) Specs() []ports.CatalogSpec {
	out := make([]ports.CatalogSpec, 0, len(c.Catalogs))
	for _, cat := range c.Catalogs {
		out = append(out, cat.Spec())
	}
	return out
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(wikiAPIURLEnv); v != "" {
		c.Wiki.APIURL = v
	}

	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Wiki.APIURL != "" {
		base.Wiki.APIURL = override.Wiki.APIURL
	}
	if override.Wiki.UserAgent != "" {
		base.Wiki.UserAgent = override.Wiki.UserAgent
	}
	if override.Wiki.Timeout > 0 {
		base.Wiki.Timeout = override.Wiki.Timeout
	}
	if override.Wiki.RequestsPerSecond > 0 {
		base.Wiki.RequestsPerSecond = override.Wiki.RequestsPerSecond
	}

	if override.Enrichment.PoolSize > 0 {
		base.Enrichment.PoolSize = override.Enrichment.PoolSize
	}
	if override.Enrichment.LookupTimeout > 0 {
		base.Enrichment.LookupTimeout = override.Enrichment.LookupTimeout
	}
	if override.Enrichment.Interval > 0 {
		base.Enrichment.Interval = override.Enrichment.Interval
	}

	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Data.CountersPath != "" {
		base.Data.CountersPath = override.Data.CountersPath
	}
	if override.Data.RemovedItemsPath != "" {
		base.Data.RemovedItemsPath = override.Data.RemovedItemsPath
	}

	if len(override.Catalogs) > 0 {
		base.Catalogs = override.Catalogs
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Wiki: WikiConfig{
			APIURL:            "https://mobile-legends.fandom.com/api.php",
			UserAgent:         "CounterPicker/1.0",
			Timeout:           20 * time.Second,
			RequestsPerSecond: 10,
		},
		Enrichment: EnrichmentConfig{
			PoolSize:      8,
			LookupTimeout: 20 * time.Second,
			Interval:      24 * time.Hour,
		},
		Database: DatabaseConfig{Path: "data/runs.db"},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Data: DataConfig{
			CountersPath:     "data/counters.json",
			RemovedItemsPath: "data/items_removed.json",
		},
		Catalogs: []CatalogConfig{
			{Name: "heroes", Path: "data/heroes.json", Taxonomy: "hero"},
			{Name: "items", Path: "data/items.json", Taxonomy: "item"},
		},
	}
}
