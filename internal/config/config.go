package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by StoreConfig.Backend.
const (
	BackendAppsScript = "appsscript"
	BackendSheets     = "sheets"
	BackendMemory     = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	AppsScript AppsScriptConfig
	Sheets     SheetsConfig
	Local      LocalConfig
	MongoDB    MongoDBConfig
	WhatsApp   WhatsAppConfig
	Reporting  ReportingConfig
	Auth       AuthConfig
	Shop       ShopConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// StoreConfig selects which remote tabular store backs the collections.
type StoreConfig struct {
	Backend string
}

// AppsScriptConfig points at the deployed spreadsheet web app.
type AppsScriptConfig struct {
	URL     string
	Timeout time.Duration
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// LocalConfig configures the on-disk fallback copy of every collection.
type LocalConfig struct {
	DSN string
}

// MongoDBConfig holds settings for the report archive. An empty URI disables archiving.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// WhatsAppConfig contains credentials and options for the Meta WhatsApp Cloud API.
// Notifications are disabled when AccessToken is empty.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	ManagerID     string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	DailyCron  string
	WeeklyCron string
	Timezone   string
}

// AuthConfig holds the login allow-list and token settings.
type AuthConfig struct {
	Users     []UserCredential
	JWTSecret string
	TokenTTL  time.Duration
}

// UserCredential is one allow-list entry as read from SHOP_USERS.
type UserCredential struct {
	Username    string
	Password    string
	DisplayName string
}

// ShopConfig holds business rule toggles.
type ShopConfig struct {
	DecrementStockOnSale bool
}

// Enabled reports whether WhatsApp notifications are configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != "" && c.ManagerID != ""
}

// Location resolves the configured timezone.
func (c ReportingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	users, err := ParseUsers(os.Getenv("SHOP_USERS"))
	if err != nil {
		return nil, err
	}

	appsScriptTimeout, err := getDurationWithDefault("APPS_SCRIPT_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getDurationWithDefault("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	decrement, err := getBoolWithDefault("CHECKOUT_DECREMENT_STOCK", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getenvWithDefault("STORE_BACKEND", BackendAppsScript)),
		},
		AppsScript: AppsScriptConfig{
			URL:     os.Getenv("APPS_SCRIPT_URL"),
			Timeout: appsScriptTimeout,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Local: LocalConfig{
			DSN: getenvWithDefault("LOCAL_STORE_DSN", "file:farmshop.db"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "farmshop"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			ManagerID:     os.Getenv("WHATSAPP_MANAGER_ID"),
		},
		Reporting: ReportingConfig{
			DailyCron:  getenvWithDefault("REPORT_DAILY_CRON", "55 23 * * *"),
			WeeklyCron: getenvWithDefault("REPORT_WEEKLY_CRON", "0 20 * * 5"),
			Timezone:   getenvWithDefault("TIMEZONE", "Africa/Johannesburg"),
		},
		Auth: AuthConfig{
			Users:     users,
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		Shop: ShopConfig{
			DecrementStockOnSale: decrement,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Backend {
	case BackendAppsScript:
		if c.AppsScript.URL == "" {
			return errors.New("APPS_SCRIPT_URL must be provided for the appsscript backend")
		}
	case BackendSheets:
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Local.DSN == "" {
		return errors.New("LOCAL_STORE_DSN must not be empty")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	if c.WhatsApp.AccessToken != "" {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.ManagerID == "":
			return errors.New("WHATSAPP_MANAGER_ID must be provided")
		}
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := c.Reporting.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}

	if len(c.Auth.Users) == 0 {
		return errors.New("SHOP_USERS must list at least one user")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}

	return nil
}

// ParseUsers reads the allow-list format "user:password:Display Name,...".
// The display name defaults to the username.
func ParseUsers(raw string) ([]UserCredential, error) {
	var users []UserCredential
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid SHOP_USERS entry %q", entry)
		}

		user := UserCredential{Username: parts[0], Password: parts[1], DisplayName: parts[0]}
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			user.DisplayName = strings.TrimSpace(parts[2])
		}
		users = append(users, user)
	}
	return users, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBoolWithDefault(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
