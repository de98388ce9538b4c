package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yeremiapane/tab-pos/models"
)

type Config struct {
	Port    string
	GinMode string
	// Front-end origin allowed by CORS.
	AllowedOrigin string

	DBDriver string
	DBDSN    string

	TabMode  models.RegistryMode
	TabCount int
	// Carts idle longer than CartTTL are dropped every CartSweep.
	CartTTL   time.Duration
	CartSweep time.Duration

	KafkaBrokers []string
	ServiceName  string
	RedisAddr    string

	ManagerPINHash string
	JWTSecret      string
	CurrencySymbol string
}

// Load reads .env when present, then the environment, falling back to defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("allowed_origin", "*")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "tab-pos.db")
	v.SetDefault("tab_mode", string(models.ModeTable))
	v.SetDefault("tab_count", 20)
	v.SetDefault("cart_ttl", "4h")
	v.SetDefault("cart_sweep", "5m")
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("service_name", "tab-pos")
	v.SetDefault("redis_addr", "")
	v.SetDefault("manager_pin_hash", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("currency_symbol", "R$")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	c := Config{
		Port:           v.GetString("port"),
		GinMode:        v.GetString("gin_mode"),
		AllowedOrigin:  v.GetString("allowed_origin"),
		DBDriver:       strings.ToLower(v.GetString("db_driver")),
		DBDSN:          v.GetString("db_dsn"),
		TabMode:        models.RegistryMode(strings.ToLower(v.GetString("tab_mode"))),
		TabCount:       v.GetInt("tab_count"),
		CartTTL:        v.GetDuration("cart_ttl"),
		CartSweep:      v.GetDuration("cart_sweep"),
		KafkaBrokers:   splitCSV(v.GetString("kafka_brokers")),
		ServiceName:    v.GetString("service_name"),
		RedisAddr:      v.GetString("redis_addr"),
		ManagerPINHash: v.GetString("manager_pin_hash"),
		JWTSecret:      v.GetString("jwt_secret"),
		CurrencySymbol: v.GetString("currency_symbol"),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if !c.TabMode.Valid() {
		return fmt.Errorf("TAB_MODE must be table or ticket, got %q", c.TabMode)
	}
	if c.TabCount < 1 {
		return fmt.Errorf("TAB_COUNT must be at least 1, got %d", c.TabCount)
	}
	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite, mysql or postgres, got %q", c.DBDriver)
	}
	if c.CartTTL <= 0 || c.CartSweep <= 0 {
		return fmt.Errorf("CART_TTL and CART_SWEEP must be positive, got %s and %s", c.CartTTL, c.CartSweep)
	}
	if c.ManagerPINHash != "" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when MANAGER_PIN_HASH is set")
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
