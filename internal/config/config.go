package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Redis    Redis    `toml:"redis"`
	Logs     Logs     `toml:"logs"`
	Metrics  Metrics  `toml:"metrics"`
	Auth     Auth     `toml:"auth"`
	Worker   Worker   `toml:"worker"`
	WhatsApp WhatsApp `toml:"whatsapp"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// Database настройки PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Redis настройки кеша
type Redis struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"` // TTL кешируемых справочников
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Auth настройки аутентификации. AdminEmail/AdminPassword задают
// учетную запись, создаваемую при первом запуске.
type Auth struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	AdminEmail      string `toml:"admin_email"`
	AdminPassword   string `toml:"admin_password"`
	AdminName       string `toml:"admin_name"`
}

// Worker настройки фоновой задачи автозавершения записей
type Worker struct {
	SweepIntervalMinutes int `toml:"sweep_interval_minutes"`
}

// WhatsApp шаблоны сообщений для deep-link'ов
type WhatsApp struct {
	ChargeTemplate   string `toml:"charge_template"`
	ReminderTemplate string `toml:"reminder_template"`
}

// Load читает и парсит конфигурацию из toml-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Redis.TTLSeconds == 0 {
		cfg.Redis.TTLSeconds = 300
	}
	if cfg.Worker.SweepIntervalMinutes == 0 {
		cfg.Worker.SweepIntervalMinutes = 5
	}
	if cfg.Auth.TokenTTLMinutes == 0 {
		cfg.Auth.TokenTTLMinutes = 720
	}

	return &cfg, nil
}
