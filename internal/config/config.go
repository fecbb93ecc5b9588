package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full process configuration. Every section maps to an
// environment prefix, e.g. Postgres.Host is read from POSTGRES_HOST.
type Config struct {
	App       AppConfig       `envconfig:"APP"`
	Postgres  PostgresConfig  `envconfig:"POSTGRES"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	Kafka     KafkaConfig     `envconfig:"KAFKA"`
	Telegram  TelegramConfig  `envconfig:"TELEGRAM"`
	NLU       NLUConfig       `envconfig:"NLU"`
	VendorBot VendorBotConfig `envconfig:"VENDOR_BOT"`
	Pricing   PricingConfig   `envconfig:"PRICING"`
	Workflow  WorkflowConfig  `envconfig:"WORKFLOW"`
	Order     OrderConfig     `envconfig:"ORDER"`
	Broadcast BroadcastConfig `envconfig:"BROADCAST"`
	JWT       JWTConfig       `envconfig:"JWT"`
	Admin     AdminConfig     `envconfig:"ADMIN"`
}

type AppConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type PostgresConfig struct {
	Host         string `envconfig:"HOST" default:"localhost"`
	Port         int    `envconfig:"PORT" default:"5432"`
	User         string `envconfig:"USER" default:"user"`
	Password     string `envconfig:"PASSWORD" default:"password"`
	DB           string `envconfig:"DB" default:"database"`
	SSLMode      string `envconfig:"SSLMODE" default:"disable"`
	MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" default:"16"`
	MaxIdleConns int    `envconfig:"MAX_IDLE_CONNS" default:"8"`
	Migrate      bool   `envconfig:"MIGRATE" default:"true"`
}

// DSN returns the connection URL understood by both pgx and golang-migrate.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

type RedisConfig struct {
	Host         string `envconfig:"HOST" default:"localhost"`
	Port         int    `envconfig:"PORT" default:"6379"`
	DB           int    `envconfig:"DB" default:"0"`
	Password     string `envconfig:"PASSWORD" default:""`
	PoolSize     int    `envconfig:"POOL_SIZE" default:"10"`
	MinIdleConns int    `envconfig:"MIN_IDLE_CONNS" default:"2"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Enabled        bool     `envconfig:"ENABLED" default:"true"`
	Brokers        []string `envconfig:"BROKERS" default:"localhost:9092"`
	BroadcastTopic string   `envconfig:"BROADCAST_TOPIC" default:"telegram-broadcasts"`
	GroupID        string   `envconfig:"GROUP_ID" default:"gw-exchange-bot"`
}

type TelegramConfig struct {
	Token       string `envconfig:"TOKEN"`
	PollTimeout int    `envconfig:"POLL_TIMEOUT" default:"60"`
	Workers     int    `envconfig:"WORKERS" default:"8"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`
}

type NLUConfig struct {
	URL     string        `envconfig:"URL" default:"http://localhost:9000"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"15s"`
}

type VendorBotConfig struct {
	URL     string        `envconfig:"URL" default:"http://localhost:9100"`
	Token   string        `envconfig:"TOKEN"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

type PricingConfig struct {
	RoundBase      float64 `envconfig:"ROUND_BASE" default:"0.05"`
	BaseCurrency   string  `envconfig:"BASE_CURRENCY" default:"USDT"`
	BuyPreference  string  `envconfig:"BUY_PREFERENCE" default:"min"`
	SellPreference string  `envconfig:"SELL_PREFERENCE" default:"max"`
}

type WorkflowConfig struct {
	DisabledActions []string `envconfig:"DISABLED_ACTIONS"`
}

type OrderConfig struct {
	Prefix        string        `envconfig:"PREFIX" default:"S"`
	PaymentWindow time.Duration `envconfig:"PAYMENT_WINDOW" default:"1h"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	SweepBatch    int           `envconfig:"SWEEP_BATCH" default:"100"`
	CartCacheTTL  time.Duration `envconfig:"CART_CACHE_TTL" default:"1h"`
}

type BroadcastConfig struct {
	Concurrency   int           `envconfig:"CONCURRENCY" default:"8"`
	RetryAttempts int           `envconfig:"RETRY_ATTEMPTS" default:"3"`
	RetryDelay    time.Duration `envconfig:"RETRY_DELAY" default:"2s"`
}

type JWTConfig struct {
	SecretKey string        `envconfig:"SECRET_KEY" default:"my_super_secret_key"`
	Exp       time.Duration `envconfig:"EXP" default:"1h"`
}

// AdminConfig seeds the administrator account at startup when both the
// username and password are set.
type AdminConfig struct {
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	Email    string `envconfig:"EMAIL"`
}

// Load reads an optional env file and then the process environment.
// A missing file is not an error: values then come from the environment
// and struct defaults only.
func Load(path string) (*Config, error) {
	if path != "" {
		_ = godotenv.Load(path)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Order.Prefix) != 1 {
		return nil, fmt.Errorf("parse config: ORDER_PREFIX must be a single character, got %q", cfg.Order.Prefix)
	}
	if cfg.Pricing.RoundBase <= 0 {
		return nil, fmt.Errorf("parse config: PRICING_ROUND_BASE must be positive, got %v", cfg.Pricing.RoundBase)
	}
	if cfg.Order.SweepInterval <= 0 {
		return nil, fmt.Errorf("parse config: ORDER_SWEEP_INTERVAL must be positive, got %v", cfg.Order.SweepInterval)
	}

	return &cfg, nil
}
