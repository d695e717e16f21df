package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Registry   RegistryConfig   `toml:"registry"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig параметры кэша слотов. Пустой Addr отключает кэш
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Enabled включен ли кэш
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RegistryConfig адрес реестра персонала и пациентов (timeout в секундах)
type RegistryConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulingConfig стандартные часы приема больницы
type SchedulingConfig struct {
	StandardOpenTime       string `toml:"standard_open_time"`
	StandardCloseTime      string `toml:"standard_close_time"`
	SlotGranularityMinutes int    `toml:"slot_granularity_minutes"`
	AdvanceBookingDays     int    `toml:"advance_booking_days"` // 0 = без ограничений
	SlotsCacheTTLSeconds   int    `toml:"slots_cache_ttl_seconds"`
	Timezone               string `toml:"timezone"`
}

// StandardHours возвращает стандартные часы приема
func (c SchedulingConfig) StandardHours() (open, close types.TimeString, err error) {
	open, err = types.NewTimeStringFromString(c.StandardOpenTime)
	if err != nil {
		return open, close, fmt.Errorf("%w: standard_open_time: %v", ErrInvalidConfig, err)
	}
	close, err = types.NewTimeStringFromString(c.StandardCloseTime)
	if err != nil {
		return open, close, fmt.Errorf("%w: standard_close_time: %v", ErrInvalidConfig, err)
	}
	return open, close, nil
}

// SlotGranularity шаг слотов
func (c SchedulingConfig) SlotGranularity() time.Duration {
	return time.Duration(c.SlotGranularityMinutes) * time.Minute
}

// SlotsCacheTTL время жизни кэша слотов
func (c SchedulingConfig) SlotsCacheTTL() time.Duration {
	return time.Duration(c.SlotsCacheTTLSeconds) * time.Second
}

// Location часовой пояс больницы
func (c SchedulingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone: %v", ErrInvalidConfig, err)
	}
	return loc, nil
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "hms_appointment_service",
		},
		Registry: RegistryConfig{
			Timeout: 5,
		},
		Scheduling: SchedulingConfig{
			StandardOpenTime:       "08:00",
			StandardCloseTime:      "22:00",
			SlotGranularityMinutes: 30,
			AdvanceBookingDays:     90,
			SlotsCacheTTLSeconds:   60,
			Timezone:               "UTC",
		},
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Registry.URL == "" {
		return fmt.Errorf("%w: registry.url is required", ErrInvalidConfig)
	}

	open, close, err := c.Scheduling.StandardHours()
	if err != nil {
		return err
	}
	if !open.IsBefore(close) {
		return fmt.Errorf("%w: standard_open_time must be before standard_close_time", ErrInvalidConfig)
	}
	if c.Scheduling.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("%w: slot_granularity_minutes must be positive", ErrInvalidConfig)
	}
	if c.Scheduling.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: advance_booking_days must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return err
	}

	return nil
}
