package config

import (
	"fmt"
	"strings"
	"time"

	"wallet-ledger-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Routing  RoutingConfig  `mapstructure:"routing"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RoutingConfig names the platform wallets each service category splits into.
// These were scattered env lookups historically; they are validated once at
// startup and turned into an immutable routing table.
type RoutingConfig struct {
	BankingWalletID   string `mapstructure:"banking_wallet_id"`
	ShippingWalletID  string `mapstructure:"shipping_wallet_id"`
	FillingWalletID   string `mapstructure:"filling_wallet_id"`
	PackagingWalletID string `mapstructure:"packaging_wallet_id"`
	TransferWalletID  string `mapstructure:"transfer_wallet_id"`
}

// GatewayConfig holds payment-rail provider credentials.
type GatewayConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Token     string        `mapstructure:"token"`
	Signature string        `mapstructure:"signature"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// EngineConfig tunes the split-payment engine's version-conflict retry loop.
type EngineConfig struct {
	MaxRetries      uint64        `mapstructure:"max_retries"`
	RetryBackoff    time.Duration `mapstructure:"retry_backoff"`
	RetryMaxBackoff time.Duration `mapstructure:"retry_max_backoff"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: WLS_ (Wallet Ledger
// Service). Nested keys use underscore: WLS_DATABASE_HOST, WLS_GATEWAY_TOKEN.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "wallet_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("gateway.base_url", "")
	v.SetDefault("gateway.token", "")
	v.SetDefault("gateway.signature", "")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("engine.max_retries", 4)
	v.SetDefault("engine.retry_backoff", "10ms")
	v.SetDefault("engine.retry_max_backoff", "250ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: WLS_DATABASE_HOST -> database.host
	v.SetEnvPrefix("WLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that everything the engine needs is present. Missing
// routing wallets or gateway credentials fail startup instead of surfacing
// as runtime lookup errors mid-payment.
func (c *Config) Validate() error {
	var missing []string
	for key, val := range map[string]string{
		"routing.banking_wallet_id":   c.Routing.BankingWalletID,
		"routing.shipping_wallet_id":  c.Routing.ShippingWalletID,
		"routing.filling_wallet_id":   c.Routing.FillingWalletID,
		"routing.packaging_wallet_id": c.Routing.PackagingWalletID,
		"routing.transfer_wallet_id":  c.Routing.TransferWalletID,
		"gateway.base_url":            c.Gateway.BaseURL,
		"gateway.token":               c.Gateway.Token,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config keys: %s", strings.Join(missing, ", "))
	}
	if _, err := c.RoutingTable(); err != nil {
		return err
	}
	return nil
}

// RoutingTable builds the immutable category → destination table. Every
// category pays its dedicated wallet first and the banking wallet second,
// matching the platform's split policy.
func (c *Config) RoutingTable() (*domain.RoutingTable, error) {
	parse := func(key, val string) (uuid.UUID, error) {
		id, err := uuid.Parse(val)
		if err != nil {
			return uuid.Nil, fmt.Errorf("config %s: %w", key, err)
		}
		return id, nil
	}

	banking, err := parse("routing.banking_wallet_id", c.Routing.BankingWalletID)
	if err != nil {
		return nil, err
	}
	shipping, err := parse("routing.shipping_wallet_id", c.Routing.ShippingWalletID)
	if err != nil {
		return nil, err
	}
	filling, err := parse("routing.filling_wallet_id", c.Routing.FillingWalletID)
	if err != nil {
		return nil, err
	}
	packaging, err := parse("routing.packaging_wallet_id", c.Routing.PackagingWalletID)
	if err != nil {
		return nil, err
	}
	transfer, err := parse("routing.transfer_wallet_id", c.Routing.TransferWalletID)
	if err != nil {
		return nil, err
	}

	return domain.NewRoutingTable(map[domain.ServiceCategory][]uuid.UUID{
		domain.CategoryShipping:  {shipping, banking},
		domain.CategoryFilling:   {filling, banking},
		domain.CategoryPackaging: {packaging, banking},
		domain.CategoryTransfer:  {transfer, banking},
	})
}
