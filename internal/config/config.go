package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-LandingBooking/internal/domain"
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSupabase = "supabase"

	// Хранилища визитов и счётчиков лимита
	VisitStoreMemory = "memory"
	VisitStoreRedis  = "redis"
)

type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logs        LogsConfig        `toml:"logs"`
	Database    DatabaseConfig    `toml:"database"`
	Storage     StorageConfig     `toml:"storage"`
	Supabase    SupabaseConfig    `toml:"supabase"`
	Redis       RedisConfig       `toml:"redis"`
	Visits      VisitsConfig      `toml:"visits"`
	Booking     BookingConfig     `toml:"booking"`
	Identity    IdentityConfig    `toml:"identity"`
	IPDiscovery IPDiscoveryConfig `toml:"ip_discovery"`
	Kafka       KafkaConfig       `toml:"kafka"`
	Tracing     TracingConfig     `toml:"tracing"`
	Metrics     MetricsConfig     `toml:"metrics"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"`
}

type SupabaseConfig struct {
	URL string `toml:"url"`
	Key string `toml:"key"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type VisitsConfig struct {
	Store      string `toml:"store"`
	TTLMinutes int    `toml:"ttl_minutes"`
	KeyPrefix  string `toml:"key_prefix"`
}

func (c VisitsConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

type BookingConfig struct {
	GuestName      string `toml:"guest_name"`
	RecheckStorage bool   `toml:"recheck_storage"`
	Location       string `toml:"location"`
	CalendarDays   int    `toml:"calendar_days"`
}

// LoadLocation часовой пояс, в котором считается "сегодня"
func (c BookingConfig) LoadLocation() (*time.Location, error) {
	return time.LoadLocation(c.Location)
}

type IdentityConfig struct {
	UseRPC bool `toml:"use_rpc"`
}

type IPDiscoveryConfig struct {
	TrustForwarded bool   `toml:"trust_forwarded"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	IpifyURL       string `toml:"ipify_url"`
	IpapiURL       string `toml:"ipapi_url"`
	IpdataURL      string `toml:"ipdata_url"`
	IpdataAPIKey   string `toml:"ipdata_api_key"`
}

func (c IPDiscoveryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IpdataEndpoint URL ipdata с подставленным ключом
func (c IPDiscoveryConfig) IpdataEndpoint() string {
	sep := "?"
	if strings.Contains(c.IpdataURL, "?") {
		sep = "&"
	}
	return c.IpdataURL + sep + "api-key=" + c.IpdataAPIKey
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled"`
	Store         string `toml:"store"` // memory | redis
	Requests      int    `toml:"requests"`
	WindowSeconds int    `toml:"window_seconds"`
	FailOpen      bool   `toml:"fail_open"` // пропускать запросы, если счётчик недоступен
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Load читает .env (если есть), TOML-файл, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация со значениями по умолчанию; TOML перезаписывает только указанные поля
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Visits: VisitsConfig{
			Store:      VisitStoreMemory,
			TTLMinutes: 120,
			KeyPrefix:  "landing:visit:",
		},
		Booking: BookingConfig{
			GuestName:      "אורח",
			RecheckStorage: true,
			Location:       "Asia/Jerusalem",
			CalendarDays:   30,
		},
		IPDiscovery: IPDiscoveryConfig{
			TimeoutSeconds: 3,
			IpifyURL:       "https://api.ipify.org?format=json",
			IpapiURL:       "https://ipapi.co/json/",
			IpdataURL:      "https://api.ipdata.co",
			IpdataAPIKey:   "test",
		},
		Kafka:   KafkaConfig{Topic: "booking.appointment_booked"},
		Tracing: TracingConfig{OTLPEndpoint: "localhost:4317", SampleRatio: 1},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "landing-booking",
		},
		RateLimit: RateLimitConfig{Store: VisitStoreMemory, Requests: 30, WindowSeconds: 60, FailOpen: true},
	}
}

// applyEnv секреты и адреса из окружения имеют приоритет над файлом
func (c *Config) applyEnv() {
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Supabase.URL, "SUPABASE_URL")
	setString(&c.Supabase.Key, "SUPABASE_KEY")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.IPDiscovery.IpdataAPIKey, "IPDATA_API_KEY")
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && strings.TrimSpace(v) != "" {
		c.Kafka.Brokers = splitList(v)
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database host and dbname are required for postgres storage", ErrInvalidConfig)
		}
	case StorageDriverSupabase:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			return fmt.Errorf("%w: supabase url and key are required for supabase storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Visits.Store {
	case VisitStoreMemory:
	case VisitStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis addr is required for redis visit store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown visit store %q", ErrInvalidConfig, c.Visits.Store)
	}

	if c.RateLimit.Enabled {
		switch c.RateLimit.Store {
		case VisitStoreMemory:
		case VisitStoreRedis:
			if c.Redis.Addr == "" {
				return fmt.Errorf("%w: redis addr is required for rate limiting", ErrInvalidConfig)
			}
		default:
			return fmt.Errorf("%w: unknown rate_limit store %q", ErrInvalidConfig, c.RateLimit.Store)
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return fmt.Errorf("%w: rate_limit requests and window_seconds must be positive", ErrInvalidConfig)
	}
	if c.Visits.TTLMinutes <= 0 {
		return fmt.Errorf("%w: visits.ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.IPDiscovery.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: ip_discovery.timeout_seconds must be positive", ErrInvalidConfig)
	}
	if c.Booking.CalendarDays <= 0 {
		return fmt.Errorf("%w: booking.calendar_days must be positive", ErrInvalidConfig)
	}
	// Диапазон по умолчанию: сегодня и ещё calendar_days дней
	if c.Booking.CalendarDays > domain.MaxCalendarRangeDays-1 {
		return fmt.Errorf("%w: booking.calendar_days must be at most %d", ErrInvalidConfig, domain.MaxCalendarRangeDays-1)
	}
	if _, err := c.Booking.LoadLocation(); err != nil {
		return fmt.Errorf("%w: booking.location: %v", ErrInvalidConfig, err)
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return fmt.Errorf("%w: kafka.topic is required when brokers are set", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
