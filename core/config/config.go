package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"appointment-sync/core/constants"
	"appointment-sync/core/logger"
)

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StoresConfig selects the backing implementation for each record store.
type StoresConfig struct {
	DataDir        string
	ScheduleDriver string // "file" | "postgres"
	ScheduleFile   string
	CalendarFile   string
	APIFile        string
}

type AuthConfig struct {
	JWTSecret string
}

type LLMConfig struct {
	AnthropicAPIKey string
	Model           string
}

type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

type Config struct {
	AppName  string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Stores   StoresConfig
	Auth     AuthConfig
	LLM      LLMConfig
	S3       S3Config
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (when present) and the process environment into the
// process-wide config. Call once at startup, before Get.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("Config:Load: no .env file, using environment only")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "appointment-sync")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "appointments")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("SCHEDULE_STORE_DRIVER", "file")
	v.SetDefault("SCHEDULE_FILE", constants.ScheduleFileName)
	v.SetDefault("CALENDAR_FILE", constants.CalendarFileName)
	v.SetDefault("API_FILE", constants.APIFileName)
	v.SetDefault("ANTHROPIC_MODEL", "claude-sonnet-4-20250514")
	v.SetDefault("S3_REGION", "us-east-1")

	cfg := &Config{
		AppName: v.GetString("APP_NAME"),
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Stores: StoresConfig{
			DataDir:        v.GetString("DATA_DIR"),
			ScheduleDriver: v.GetString("SCHEDULE_STORE_DRIVER"),
			ScheduleFile:   v.GetString("SCHEDULE_FILE"),
			CalendarFile:   v.GetString("CALENDAR_FILE"),
			APIFile:        v.GetString("API_FILE"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
		},
		LLM: LLMConfig{
			AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
			Model:           v.GetString("ANTHROPIC_MODEL"),
		},
		S3: S3Config{
			Bucket:    v.GetString("S3_BUCKET"),
			Region:    v.GetString("S3_REGION"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Stores.ScheduleDriver {
	case "file", "postgres":
	default:
		return fmt.Errorf("invalid schedule store driver: %q", c.Stores.ScheduleDriver)
	}
	return nil
}

// Get returns the loaded config. Panics when Load has not run; prefer GetSafe
// in paths that may execute before startup finishes.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Load must be called before Get")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// Set overrides the process config. Tests only.
func Set(cfg *Config) {
	mu.Lock()
	instance = cfg
	mu.Unlock()
}
