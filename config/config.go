package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
)

type Config struct {
	Service   string
	HTTPAddr  string
	LogLevel  string
	LogFormat string
	UploadDir string

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Gateway  GatewayConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN renders the lib/pq keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type KafkaConfig struct {
	Broker        string
	ActivityTopic string
	GroupID       string
}

type AuthConfig struct {
	Disabled      bool
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	LoginRate     float64
	LoginBurst    int
}

type GatewayConfig struct {
	ConsoleSvcURL string
	StatsSvcURL   string
	FrontendDir   string
}

// bindings maps config keys to the environment variables the services have
// always been deployed with.
var bindings = map[string]string{
	"server.addr":          "HTTP_ADDR",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
	"uploads.dir":          "UPLOAD_DIR",
	"database.host":        "DB_HOST",
	"database.port":        "DB_PORT",
	"database.name":        "DB_NAME",
	"database.user":        "DB_USER",
	"database.password":    "DB_PASSWORD",
	"database.sslmode":     "DB_SSLMODE",
	"redis.host":           "REDIS_HOST",
	"redis.port":           "REDIS_PORT",
	"redis.password":       "REDIS_PASSWORD",
	"redis.db":             "REDIS_DB",
	"redis.cache_ttl":      "REDIS_CACHE_TTL",
	"kafka.broker":         "KAFKA_BROKER",
	"kafka.activity_topic": "KAFKA_ACTIVITY_TOPIC",
	"kafka.group_id":       "KAFKA_GROUP_ID",
	"auth.disabled":        "AUTH_DISABLED",
	"auth.jwt_secret":      "JWT_SECRET",
	"auth.token_ttl":       "AUTH_TOKEN_TTL",
	"auth.admin_username":  "ADMIN_USERNAME",
	"auth.admin_password":  "ADMIN_PASSWORD",
	"auth.login_rate":      "LOGIN_RATE_PER_SECOND",
	"auth.login_burst":     "LOGIN_BURST",
	"gateway.console_url":  "CONSOLE_SVC_URL",
	"gateway.stats_url":    "STATS_SVC_URL",
	"gateway.frontend_dir": "FRONTEND_DIR",
}

// Load reads configuration for service from (in increasing priority) built-in
// defaults, an optional app.config.json in . or ./config, a .env file and the
// process environment.
func Load(service, defaultAddr string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app.config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v, service, defaultAddr)
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Service:   service,
		HTTPAddr:  v.GetString("server.addr"),
		LogLevel:  v.GetString("log.level"),
		LogFormat: v.GetString("log.format"),
		UploadDir: v.GetString("uploads.dir"),
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			Name:     v.GetString("database.name"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			CacheTTL: v.GetDuration("redis.cache_ttl"),
		},
		Kafka: KafkaConfig{
			Broker:        v.GetString("kafka.broker"),
			ActivityTopic: v.GetString("kafka.activity_topic"),
			GroupID:       v.GetString("kafka.group_id"),
		},
		Auth: AuthConfig{
			Disabled:      v.GetBool("auth.disabled"),
			JWTSecret:     v.GetString("auth.jwt_secret"),
			TokenTTL:      v.GetDuration("auth.token_ttl"),
			AdminUsername: v.GetString("auth.admin_username"),
			AdminPassword: v.GetString("auth.admin_password"),
			LoginRate:     v.GetFloat64("auth.login_rate"),
			LoginBurst:    v.GetInt("auth.login_burst"),
		},
		Gateway: GatewayConfig{
			ConsoleSvcURL: strings.TrimRight(v.GetString("gateway.console_url"), "/"),
			StatsSvcURL:   strings.TrimRight(v.GetString("gateway.stats_url"), "/"),
			FrontendDir:   v.GetString("gateway.frontend_dir"),
		},
	}

	if !cfg.Auth.Disabled && cfg.Auth.JWTSecret == "" && service == "console-svc" {
		return nil, errors.New("JWT_SECRET is required unless AUTH_DISABLED=true")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, service, defaultAddr string) {
	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "eventApp")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("kafka.activity_topic", "console-activity")
	v.SetDefault("kafka.group_id", service)
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.login_rate", 1.0)
	v.SetDefault("auth.login_burst", 5)
	v.SetDefault("gateway.console_url", "http://localhost:8081")
	v.SetDefault("gateway.stats_url", "http://localhost:8083")
}

// NewLogger builds the process-wide structured logger and installs it as the
// slog default.
func NewLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(slog.String("service", cfg.Service))
	slog.SetDefault(logger)
	return logger
}

func MustInitPostgres(cfg DatabaseConfig) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.ActivityTopic,
		GroupID: cfg.GroupID,
	})
}

// NewKafkaWriter returns nil when no broker is configured; callers fall back
// to a no-op publisher.
func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	if cfg.Broker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.ActivityTopic,
		Balancer: &kafka.LeastBytes{},
	}
}
