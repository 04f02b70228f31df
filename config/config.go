package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port                string
	GinMode             string
	DBDriver            string
	DBSource            string
	JWTSecret           string
	AdminUsername       string
	AdminPasswordHash   string
	LogLevel            string
	InventoryFile       string
	PaymentGateway      string
	MidtransServerKey   string
	MidtransEnv         string
	RabbitMQURL         string
	CORSOrigin          string
	RefundRetryInterval time.Duration
}

// TableSeed is one physical table in the inventory file.
type TableSeed struct {
	Number   string `yaml:"number"`
	Capacity int    `yaml:"capacity"`
	Position string `yaml:"position"`
}

// PriorityWeights mirrors services.PriorityWeights; zero fields keep the defaults.
type PriorityWeights struct {
	VIPThreshold            int `yaml:"vip_threshold"`
	VIPBonus                int `yaml:"vip_bonus"`
	LoyaltyPerVisit         int `yaml:"loyalty_per_visit"`
	PerBooking              int `yaml:"per_booking"`
	LargePartyBonus         int `yaml:"large_party_bonus"`
	MediumPartyBonus        int `yaml:"medium_party_bonus"`
	SpecialRequestBonus     int `yaml:"special_request_bonus"`
	WaitPerMinute           int `yaml:"wait_per_minute"`
	WaitCap                 int `yaml:"wait_cap"`
	LargePartyMinGuests     int `yaml:"large_party_min_guests"`
	MediumPartyMinGuests    int `yaml:"medium_party_min_guests"`
	LargePartyCapacitySlack int `yaml:"large_party_capacity_slack"`
}

type Inventory struct {
	Tables   []TableSeed     `yaml:"tables"`
	Priority PriorityWeights `yaml:"priority"`
}

// Load membaca .env (jika ada) lalu environment variables dengan default.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: .env file not found or error loading: %v\n", err)
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "debug"),
		DBDriver:            getEnv("DB_DRIVER", "sqlite"),
		DBSource:            getEnv("DB_SOURCE", "coffeehub.db"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		AdminUsername:       getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash:   os.Getenv("ADMIN_PASSWORD_HASH"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		InventoryFile:       getEnv("INVENTORY_FILE", "config/inventory.yaml"),
		PaymentGateway:      strings.ToLower(getEnv("PAYMENT_GATEWAY", "manual")),
		MidtransServerKey:   os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransEnv:         getEnv("MIDTRANS_ENV", "sandbox"),
		RabbitMQURL:         os.Getenv("RABBITMQ_URL"),
		CORSOrigin:          getEnv("CORS_ORIGIN", "*"),
		RefundRetryInterval: getDuration("REFUND_RETRY_INTERVAL", 5*time.Minute),
	}
}

// Validate menolak konfigurasi yang tidak aman untuk release.
func (c *Config) Validate() error {
	if c.GinMode != "release" {
		return nil
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set when GIN_MODE=release")
	}
	return nil
}

// LoadInventory parses the table inventory and optional priority weights.
func LoadInventory(path string) (*Inventory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory %s: %w", path, err)
	}
	return ParseInventory(raw)
}

func ParseInventory(raw []byte) (*Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}

	seen := make(map[string]bool, len(inv.Tables))
	for i, t := range inv.Tables {
		if strings.TrimSpace(t.Number) == "" {
			return nil, fmt.Errorf("inventory table #%d has no number", i+1)
		}
		if t.Capacity <= 0 {
			return nil, fmt.Errorf("inventory table %s has invalid capacity %d", t.Number, t.Capacity)
		}
		if seen[t.Number] {
			return nil, fmt.Errorf("inventory table %s is listed twice", t.Number)
		}
		seen[t.Number] = true
	}
	return &inv, nil
}

// InitDB opens the configured database. sqlite is the default; mysql for deployments.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBSource)
	case "mysql":
		dialector = mysql.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormCfg := &gorm.Config{}
	if cfg.GinMode == "release" {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	return gorm.Open(dialector, gormCfg)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
