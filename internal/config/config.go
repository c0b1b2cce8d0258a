package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App struct {
		Name        string `mapstructure:"name"`
		Env         string `mapstructure:"env"`
		Port        string `mapstructure:"port"`
		FrontendURL string `mapstructure:"frontend_url"`
	} `mapstructure:"app"`
	Store struct {
		Driver      string `mapstructure:"driver"`
		DSN         string `mapstructure:"dsn"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"store"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers        []string `mapstructure:"brokers"`
		GroupID        string   `mapstructure:"group_id"`
		ContactTopic   string   `mapstructure:"contact_topic"`
		PortfolioTopic string   `mapstructure:"portfolio_topic"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	RateLimit struct {
		ContactWindow time.Duration `mapstructure:"contact_window"`
		ContactLimit  int           `mapstructure:"contact_limit"`
	} `mapstructure:"rate_limit"`
	Cache struct {
		SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
	} `mapstructure:"cache"`
	Mail struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		From     string `mapstructure:"from"`
		NotifyTo string `mapstructure:"notify_to"`
	} `mapstructure:"mail"`
	Owner struct {
		Username string `mapstructure:"username"`
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
	} `mapstructure:"owner"`
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoadConfig reads <path>/.env and <path>/config.yaml when present, then the environment.
func LoadConfig(path string) (cfg Config, err error) {
	if path == "" {
		path = "."
	}

	if err := godotenv.Load(path + "/.env"); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"app.name":                  "APP_NAME",
		"app.env":                   "APP_ENV",
		"app.port":                  "APP_PORT",
		"app.frontend_url":          "FRONTEND_URL",
		"store.driver":              "STORE_DRIVER",
		"store.dsn":                 "DB_DSN",
		"store.auto_migrate":        "DB_AUTO_MIGRATE",
		"redis.addr":                "REDIS_ADDR",
		"redis.password":            "REDIS_PASSWORD",
		"kafka.brokers":             "KAFKA_BROKERS",
		"kafka.group_id":            "KAFKA_GROUP_ID",
		"kafka.contact_topic":       "KAFKA_CONTACT_TOPIC",
		"kafka.portfolio_topic":     "KAFKA_PORTFOLIO_TOPIC",
		"auth.jwt_secret":           "JWT_SECRET",
		"auth.token_lifespan":       "TOKEN_LIFESPAN",
		"cloudinary.cloud_name":     "CLOUDINARY_CLOUD_NAME",
		"cloudinary.api_key":        "CLOUDINARY_API_KEY",
		"cloudinary.api_secret":     "CLOUDINARY_API_SECRET",
		"jaeger.otlp_endpoint":      "OTEL_EXPORTER_OTLP_ENDPOINT",
		"cors.allowed_origins":      "CORS_ALLOWED_ORIGINS",
		"rate_limit.contact_window": "CONTACT_RATE_WINDOW",
		"rate_limit.contact_limit":  "CONTACT_RATE_LIMIT",
		"cache.snapshot_ttl":        "SNAPSHOT_CACHE_TTL",
		"mail.host":                 "SMTP_HOST",
		"mail.port":                 "SMTP_PORT",
		"mail.username":             "SMTP_USERNAME",
		"mail.password":             "SMTP_PASSWORD",
		"mail.from":                 "MAIL_FROM",
		"mail.notify_to":            "MAIL_NOTIFY_TO",
		"owner.username":            "OWNER_USERNAME",
		"owner.email":               "OWNER_EMAIL",
		"owner.password":            "OWNER_PASSWORD",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	// Comma separated env values arrive as a single element.
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "portfolio-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("store.driver", StoreDriverPostgres)
	v.SetDefault("kafka.group_id", "portfolio-notifier")
	v.SetDefault("kafka.contact_topic", "contact.events")
	v.SetDefault("kafka.portfolio_topic", "portfolio.events")
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("rate_limit.contact_window", 10*time.Minute)
	v.SetDefault("rate_limit.contact_limit", 3)
	v.SetDefault("cache.snapshot_ttl", 5*time.Minute)
	v.SetDefault("mail.port", 587)
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate rejects configurations that would run insecurely or could not start.
func (c Config) Validate() error {
	var errs []error

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn is required for the postgres driver"))
		}
	case StoreDriverMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("memory store is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	} else if c.IsProduction() && len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 characters in production"))
	}
	if c.Auth.TokenLifespan <= 0 {
		errs = append(errs, errors.New("auth.token_lifespan must be positive"))
	}

	if c.RateLimit.ContactLimit <= 0 || c.RateLimit.ContactWindow <= 0 {
		errs = append(errs, errors.New("rate_limit contact window and limit must be positive"))
	}

	if c.IsProduction() {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				errs = append(errs, errors.New("wildcard CORS origin is not allowed in production"))
			}
		}
	}

	return errors.Join(errs...)
}
