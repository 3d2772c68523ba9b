package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию хранилища историй
type Config struct {
	// Настройки SQLite
	DBPath        string        `envconfig:"STORY_DB_PATH" default:"story_nodes.db"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"8"`
	DBBusyTimeout time.Duration `envconfig:"DB_BUSY_TIMEOUT" default:"5s"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`

	// Сколько страниц истории загружается параллельно при сборке
	FanoutLimit int `envconfig:"STORY_FANOUT_LIMIT" default:"4"`

	// Логирование. Stdout занят JSON-ответами команд, поэтому по умолчанию stderr.
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding   string `envconfig:"LOG_ENCODING" default:"console"`
	LogOutputPath string `envconfig:"LOG_OUTPUT_PATH" default:"stderr"`

	MetricsDump bool `envconfig:"STORY_METRICS_DUMP" default:"false"`
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values envconfig cannot check on its own.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("STORY_DB_PATH must not be empty")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be >= 1, got %d", c.DBMaxConns)
	}
	if c.FanoutLimit < 1 {
		return fmt.Errorf("STORY_FANOUT_LIMIT must be >= 1, got %d", c.FanoutLimit)
	}
	// Fan-out beyond the pool only queues goroutines on the pool.
	if c.FanoutLimit > c.DBMaxConns {
		return fmt.Errorf("STORY_FANOUT_LIMIT (%d) must not exceed DB_MAX_CONNECTIONS (%d)", c.FanoutLimit, c.DBMaxConns)
	}
	return nil
}

// uriPathEscaper escapes the characters that end or alter the path part of a
// SQLite file: URI. SQLite decodes %HH in the path back to the raw byte.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// GetDSN возвращает строку подключения к SQLite с обязательными pragma.
// Транзакции открываются как BEGIN IMMEDIATE: чтение с последующей записью
// ждет busy_timeout, а не падает сразу с SQLITE_BUSY.
func (c *Config) GetDSN() string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", c.DBBusyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_txlock", "immediate")
	return "file:" + uriPathEscaper.Replace(c.DBPath) + "?" + q.Encode()
}
