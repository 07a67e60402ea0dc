package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Gemini   geminiConfig
	Smtp     smtpConfig
	Fetchers fetchersConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"matcher"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"JOB_MATCHER_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"JOB_MATCHER_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string   `envconfig:"JOB_MATCHER_BASE_URL" default:"https://localhost:3443"`
	LogLevel        string   `envconfig:"JOB_MATCHER_LOG_LEVEL" default:"info"`
	CorsOrigins     []string `envconfig:"JOB_MATCHER_CORS_ORIGINS" default:"*"`
	MigrationFolder string   `envconfig:"JOB_MATCHER_MIGRATIONS_FOLDER" default:""`
}

type geminiConfig struct {
	ApiKey  string `envconfig:"JOB_MATCHER_GEMINI_API_KEY" default:""`
	Model   string `envconfig:"JOB_MATCHER_GEMINI_MODEL" default:"gemini-2.0-flash"`
	BaseUrl string `envconfig:"JOB_MATCHER_GEMINI_BASE_URL" default:""`
}

type smtpConfig struct {
	Host     string `envconfig:"JOB_MATCHER_SMTP_HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"JOB_MATCHER_SMTP_PORT" default:"587"`
	Sender   string `envconfig:"JOB_MATCHER_SMTP_SENDER" default:""`
	Password string `envconfig:"JOB_MATCHER_SMTP_PASSWORD" default:""`
}

type fetchersConfig struct {
	Timeout      time.Duration `envconfig:"JOB_MATCHER_FETCH_TIMEOUT" default:"10s"`
	RateLimitRPS float64       `envconfig:"JOB_MATCHER_FETCH_RATE_LIMIT_RPS" default:"2"`
	UserAgent    string        `envconfig:"JOB_MATCHER_FETCH_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a configuration suitable for tests: sqlite backed by an
// in-memory database and every other field at its default.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{Type: "sqlite", Name: ":memory:"},
		Service:  &svcConfig{Address: ":3443", LogLevel: "info", CorsOrigins: []string{"*"}},
		Fetchers: fetchersConfig{Timeout: 10 * time.Second, RateLimitRPS: 2},
	}
}
