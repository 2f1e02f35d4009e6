package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Booking        BookingConfig        `toml:"booking"`
	Auth           AuthConfig           `toml:"auth"`
	GoogleCalendar GoogleCalendarConfig `toml:"google_calendar"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN возвращает строку подключения для lib/pq
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-настройки расписания
type BookingConfig struct {
	// Timezone единственная таймзона бизнеса, например "Europe/Berlin"
	Timezone string `toml:"timezone"`
	// SlotStepMinutes шаг сетки слотов
	SlotStepMinutes int `toml:"slot_step_minutes"`
	// MinBookingNoticeMinutes минимальный запас до начала слота при бронировании на сегодня
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
}

// AuthConfig настройки доступа к админским ручкам
type AuthConfig struct {
	// AdminToken значение заголовка X-Admin-Token для админских запросов
	AdminToken string `toml:"admin_token"`
}

// GoogleCalendarConfig настройки интеграции с Google Calendar
type GoogleCalendarConfig struct {
	Enabled         bool   `toml:"enabled"`
	CredentialsFile string `toml:"credentials_file"`
	CalendarID      string `toml:"calendar_id"`
	Timeout         int    `toml:"timeout"` // seconds
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Auth.AdminToken == "" {
		return fmt.Errorf("config: auth.admin_token is required")
	}
	if c.GoogleCalendar.Enabled {
		if c.GoogleCalendar.CredentialsFile == "" || c.GoogleCalendar.CalendarID == "" {
			return fmt.Errorf("config: google_calendar.credentials_file and calendar_id are required when enabled")
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Local"
	}
	if c.Booking.SlotStepMinutes <= 0 {
		c.Booking.SlotStepMinutes = 30
	}
	if c.Booking.MinBookingNoticeMinutes < 0 {
		c.Booking.MinBookingNoticeMinutes = 0
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.GoogleCalendar.Timeout <= 0 {
		c.GoogleCalendar.Timeout = 15
	}
}
