package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Log       LogConfig
	Billing   BillingConfig
	Payment   PaymentConfig
	Scheduler SchedulerConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name         string `validate:"required"`
	Env          string `validate:"oneof=development testing production"`
	Port         string `validate:"required,numeric"`
	SeedDemoData bool   // Seed demo customers and invoices on an empty database
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string `validate:"oneof=postgres sqlite"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string // used when Driver is sqlite
	MaxOpenConns    int    `validate:"gt=0"`
	MaxIdleConns    int    `validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime int    // in minutes
	ConnMaxIdleTime int    // in minutes
	AutoMigrate     bool   // run SQL migrations on startup
	MigrationsPath  string
}

// RedisConfig holds Redis connection settings for the event stream sink
type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	DB           int
	Stream       string `validate:"required_if=Enabled true"`
	StreamMaxLen int64
}

// KafkaConfig holds Kafka settings for the event topic sink
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	Topic        string   `validate:"required_if=Enabled true"`
	BatchTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json console"`
	Output string // stdout, stderr, or file path
}

// BillingConfig holds the charge run settings
type BillingConfig struct {
	Workers      int           `validate:"gt=0,lte=256"` // worker count, also the page size
	AbortOnError bool          // stop the run on the first unclassified or storage error
	RunTimeout   time.Duration // upper bound for one run triggered over HTTP
}

// PaymentConfig selects and configures the payment provider
type PaymentConfig struct {
	Provider             string `validate:"oneof=simulated http"`
	BaseURL              string `validate:"omitempty,url"`
	APIKey               string
	Timeout              time.Duration
	SimulatedMinDelay    time.Duration
	SimulatedMaxDelay    time.Duration `validate:"gtefield=SimulatedMinDelay"`
	SimulatedSuccessRate float64       `validate:"gte=0,lte=1"`
}

// SchedulerConfig holds the monthly billing schedule
type SchedulerConfig struct {
	Enabled     bool
	ChargeDay   int `validate:"gte=1,lte=28"`
	ChargeHour  int `validate:"gte=0,lte=23"`
	OverdueDay  int `validate:"gte=1,lte=28"`
	OverdueHour int `validate:"gte=0,lte=23"`
	JobTimeout  time.Duration
	Location    string // IANA zone name, default UTC
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	ShutdownTimeout time.Duration
	TrustedProxies  []string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled                bool    // traces
	MetricsEnabled         bool    // metrics
	LogsEnabled            bool    // zap -> OTLP log bridge
	CollectorEndpoint      string  // e.g. "localhost:4317"
	SamplingRatio          float64 `validate:"gte=0,lte=1"`
	ServiceName            string
	Insecure               bool
	MetricsExportInterval  time.Duration
	DBTraceEnabled         bool
	DBLogFullSQL           bool
	DBSlowQueryThresh      time.Duration
	ProfilingEnabled       bool
	ProfilingServerAddress string `validate:"required_if=ProfilingEnabled true"`
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BILLING_ prefix (e.g., BILLING_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("BILLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:         v.GetString("app.name"),
			Env:          v.GetString("app.env"),
			Port:         v.GetString("app.port"),
			SeedDemoData: v.GetBool("app.seed_demo_data"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			SQLitePath:      v.GetString("database.sqlite_path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
			MigrationsPath:  v.GetString("database.migrations_path"),
		},
		Redis: RedisConfig{
			Enabled:      v.GetBool("redis.enabled"),
			Host:         v.GetString("redis.host"),
			Port:         v.GetInt("redis.port"),
			Password:     v.GetString("redis.password"),
			DB:           v.GetInt("redis.db"),
			Stream:       v.GetString("redis.stream"),
			StreamMaxLen: v.GetInt64("redis.stream_max_len"),
		},
		Kafka: KafkaConfig{
			Enabled:      v.GetBool("kafka.enabled"),
			Brokers:      v.GetStringSlice("kafka.brokers"),
			Topic:        v.GetString("kafka.topic"),
			BatchTimeout: v.GetDuration("kafka.batch_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Billing: BillingConfig{
			Workers:      v.GetInt("billing.workers"),
			AbortOnError: v.GetBool("billing.abort_on_error"),
			RunTimeout:   v.GetDuration("billing.run_timeout"),
		},
		Payment: PaymentConfig{
			Provider:             v.GetString("payment.provider"),
			BaseURL:              v.GetString("payment.base_url"),
			APIKey:               v.GetString("payment.api_key"),
			Timeout:              v.GetDuration("payment.timeout"),
			SimulatedMinDelay:    v.GetDuration("payment.simulated_min_delay"),
			SimulatedMaxDelay:    v.GetDuration("payment.simulated_max_delay"),
			SimulatedSuccessRate: v.GetFloat64("payment.simulated_success_rate"),
		},
		Scheduler: SchedulerConfig{
			Enabled:     v.GetBool("scheduler.enabled"),
			ChargeDay:   v.GetInt("scheduler.charge_day"),
			ChargeHour:  v.GetInt("scheduler.charge_hour"),
			OverdueDay:  v.GetInt("scheduler.overdue_day"),
			OverdueHour: v.GetInt("scheduler.overdue_hour"),
			JobTimeout:  v.GetDuration("scheduler.job_timeout"),
			Location:    v.GetString("scheduler.location"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:  v.GetInt("http.max_header_bytes"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
			TrustedProxies:  v.GetStringSlice("http.trusted_proxies"),
		},
		Telemetry: TelemetryConfig{
			Enabled:                v.GetBool("telemetry.enabled"),
			MetricsEnabled:         v.GetBool("telemetry.metrics_enabled"),
			LogsEnabled:            v.GetBool("telemetry.logs_enabled"),
			CollectorEndpoint:      v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:          v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:            v.GetString("telemetry.service_name"),
			Insecure:               v.GetBool("telemetry.insecure"),
			MetricsExportInterval:  v.GetDuration("telemetry.metrics_export_interval"),
			DBTraceEnabled:         v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:           v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh:      v.GetDuration("telemetry.db_slow_query_threshold"),
			ProfilingEnabled:       v.GetBool("telemetry.profiling_enabled"),
			ProfilingServerAddress: v.GetString("telemetry.profiling_server_address"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "antaeus-billing"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "antaeus"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "antaeus.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Database.MigrationsPath == "" {
		cfg.Database.MigrationsPath = "migrations"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.Stream == "" {
		cfg.Redis.Stream = "billing:events"
	}
	if cfg.Redis.StreamMaxLen == 0 {
		cfg.Redis.StreamMaxLen = 100000
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "billing.events"
	}
	if cfg.Kafka.BatchTimeout == 0 {
		cfg.Kafka.BatchTimeout = 50 * time.Millisecond
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Billing.Workers == 0 {
		cfg.Billing.Workers = 16
	}
	if cfg.Billing.RunTimeout == 0 {
		cfg.Billing.RunTimeout = time.Hour
	}
	if cfg.Payment.Provider == "" {
		cfg.Payment.Provider = "simulated"
	}
	if cfg.Payment.Timeout == 0 {
		cfg.Payment.Timeout = 10 * time.Second
	}
	if cfg.Payment.SimulatedMinDelay == 0 {
		cfg.Payment.SimulatedMinDelay = 300 * time.Millisecond
	}
	if cfg.Payment.SimulatedMaxDelay == 0 {
		cfg.Payment.SimulatedMaxDelay = 2 * time.Second
	}
	if cfg.Payment.SimulatedSuccessRate == 0 {
		cfg.Payment.SimulatedSuccessRate = 0.5
	}
	if cfg.Scheduler.ChargeDay == 0 {
		cfg.Scheduler.ChargeDay = 1
	}
	if cfg.Scheduler.OverdueDay == 0 {
		cfg.Scheduler.OverdueDay = 2
	}
	if cfg.Scheduler.JobTimeout == 0 {
		cfg.Scheduler.JobTimeout = 2 * time.Hour
	}
	if cfg.Scheduler.Location == "" {
		cfg.Scheduler.Location = "UTC"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsExportInterval == 0 {
		cfg.Telemetry.MetricsExportInterval = 60 * time.Second
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validate performs validation on the configuration
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Payment.Provider == "http" && c.Payment.BaseURL == "" {
		return fmt.Errorf("payment.base_url is required for the http provider")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when Kafka is enabled")
	}
	if _, err := time.LoadLocation(c.Scheduler.Location); err != nil {
		return fmt.Errorf("scheduler.location: %w", err)
	}

	if c.App.Env == "production" {
		if c.Database.Driver != "postgres" {
			return fmt.Errorf("database.driver must be postgres in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Payment.Provider == "simulated" {
			return fmt.Errorf("payment.provider cannot be 'simulated' in production")
		}
		if c.App.SeedDemoData {
			return fmt.Errorf("app.seed_demo_data must be false in production")
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
	}

	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis host:port address
func (r *RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
}
