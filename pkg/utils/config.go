package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Payment  PaymentConfig
	Booking  BookingConfig
	Security SecurityConfig
	Email    EmailConfig
	Map      MapConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	Lifetime     time.Duration
	CookieSecure bool
}

type PaymentConfig struct {
	StripeSecretKey string
	StripePublicKey string
	Currency        string
}

type BookingConfig struct {
	PendingTTL    time.Duration
	SweepSchedule string
}

type SecurityConfig struct {
	LoginRatePerMinute int
	LoginBurst         int
}

type EmailConfig struct {
	SendGridAPIKey string
	From           string
	FromName       string
}

type MapConfig struct {
	CenterLat float64
	CenterLng float64
	Zoom      int
}

// LoadConfig reads .env from the working directory.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads an env-format file and overlays environment variables.
// A missing file is not an error.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "rental-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_LIFETIME_HOURS", 168)
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("PAYMENT_CURRENCY", "kes")
	v.SetDefault("PENDING_BOOKING_TTL_HOURS", 48)
	v.SetDefault("PENDING_BOOKING_SWEEP", "@every 15m")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("LOGIN_RATE_BURST", 5)
	v.SetDefault("EMAIL_FROM", "no-reply@homerent.co.ke")
	v.SetDefault("EMAIL_FROM_NAME", "HomeRent")
	v.SetDefault("MAP_CENTER_LAT", -1.286389)
	v.SetDefault("MAP_CENTER_LNG", 36.817223)
	v.SetDefault("MAP_ZOOM", 12)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	v.AutomaticEnv()

	port := v.GetString("PORT")
	baseURL := v.GetString("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    port,
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
			BaseURL: baseURL,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			Lifetime:     time.Duration(v.GetInt("SESSION_LIFETIME_HOURS")) * time.Hour,
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		},
		Payment: PaymentConfig{
			StripeSecretKey: v.GetString("STRIPE_SECRET_KEY"),
			StripePublicKey: v.GetString("STRIPE_PUBLIC_KEY"),
			Currency:        v.GetString("PAYMENT_CURRENCY"),
		},
		Booking: BookingConfig{
			PendingTTL:    time.Duration(v.GetInt("PENDING_BOOKING_TTL_HOURS")) * time.Hour,
			SweepSchedule: v.GetString("PENDING_BOOKING_SWEEP"),
		},
		Security: SecurityConfig{
			LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
			LoginBurst:         v.GetInt("LOGIN_RATE_BURST"),
		},
		Email: EmailConfig{
			SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
			From:           v.GetString("EMAIL_FROM"),
			FromName:       v.GetString("EMAIL_FROM_NAME"),
		},
		Map: MapConfig{
			CenterLat: v.GetFloat64("MAP_CENTER_LAT"),
			CenterLng: v.GetFloat64("MAP_CENTER_LNG"),
			Zoom:      v.GetInt("MAP_ZOOM"),
		},
	}

	return config, nil
}
