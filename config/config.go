package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"virtualta/global"
)

type Config struct {
	App struct {
		Name    string
		Version string
		Env     string
		Host    string
		Port    string
	}
	Corpus struct {
		Path string
	}
	Log struct {
		Level string
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
		TTL      time.Duration
	}
	RabbitMQ struct {
		Url    string
		Queue  string
		Buffer int
	}
}

var AppConfig *Config

// Addr is the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.App.Host, c.App.Port)
}

func (c *Config) Validate() error {
	if c.App.Port == "" {
		return errors.New("app.port is required")
	}
	if c.Corpus.Path == "" {
		return errors.New("corpus.path is required")
	}
	if c.RabbitMQ.Buffer < 0 {
		return fmt.Errorf("rabbitmq.buffer must not be negative, got %d", c.RabbitMQ.Buffer)
	}
	return nil
}

// Load reads config.yml from dir (if present) and overlays environment variables.
// A missing config file is not an error; defaults apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)

	v.SetDefault("app.name", "TDS Virtual TA")
	v.SetDefault("app.version", "1.0")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", "8000")
	v.SetDefault("corpus.path", "../data/all_data.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.ttl", "10m")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", "question.asked")
	v.SetDefault("rabbitmq.buffer", 256)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the bare names are what most hosting platforms inject
	_ = v.BindEnv("app.host", "APP_HOST", "HOST")
	_ = v.BindEnv("app.port", "APP_PORT", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitConfig loads configuration and brings up the process-wide logger,
// Redis client and RabbitMQ channel. Any failure is fatal.
func InitConfig() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := Load("./config")
	if err != nil {
		global.Logger.Fatal("Error reading config", zap.Error(err))
	}
	AppConfig = cfg

	logger, err := NewLogger(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		global.Logger.Fatal("Unable to build logger", zap.Error(err))
	}
	global.Logger = logger

	initRedis()
	initRabbit()
}
