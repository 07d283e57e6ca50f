package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"parcelquote/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GeocoderBaseURL string
	GeocoderAPIKey  string
	GeocoderRPS     float64
	GeocoderTimeout time.Duration

	PaymentLatency time.Duration
	SessionTTL     time.Duration
	QuoteTimeout   time.Duration
	BcryptCost     int

	ReleaseSchedule  string
	TrackingSchedule string
	JobBatchSize     int

	TariffFile       string
	SeedDemoAccounts bool
	DemoPassword     string
}

var defaults = map[string]any{
	"HTTP_PORT":          "8080",
	"LOG_LEVEL":          "info",
	"DB_HOST":            "localhost",
	"DB_PORT":            "5432",
	"DB_SSLMODE":         "disable",
	"REDIS_DB":           0,
	"GEOCODER_RPS":       5.0,
	"GEOCODER_TIMEOUT":   "2s",
	"PAYMENT_LATENCY":    "300ms",
	"SESSION_TTL":        "12h",
	"QUOTE_TIMEOUT":      "3s",
	"BCRYPT_COST":        0,
	"RELEASE_SCHEDULE":   "@every 30s",
	"TRACKING_SCHEDULE":  "@every 1m",
	"JOB_BATCH_SIZE":     100,
	"SEED_DEMO_ACCOUNTS": true,
	"DEMO_PASSWORD":      "parcelquote-demo",
}

// LoadConfig reads envFile into the process environment, when it exists, and
// builds the Config from the environment on top of defaults. Variables already
// set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:         v.GetString("HTTP_PORT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		DBHost:           v.GetString("DB_HOST"),
		DBPort:           v.GetString("DB_PORT"),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		DBName:           v.GetString("DB_NAME"),
		DBSslMode:        v.GetString("DB_SSLMODE"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		GeocoderBaseURL:  v.GetString("GEOCODER_BASE_URL"),
		GeocoderAPIKey:   v.GetString("GEOCODER_API_KEY"),
		GeocoderRPS:      v.GetFloat64("GEOCODER_RPS"),
		GeocoderTimeout:  v.GetDuration("GEOCODER_TIMEOUT"),
		PaymentLatency:   v.GetDuration("PAYMENT_LATENCY"),
		SessionTTL:       v.GetDuration("SESSION_TTL"),
		QuoteTimeout:     v.GetDuration("QUOTE_TIMEOUT"),
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		ReleaseSchedule:  v.GetString("RELEASE_SCHEDULE"),
		TrackingSchedule: v.GetString("TRACKING_SCHEDULE"),
		JobBatchSize:     v.GetInt("JOB_BATCH_SIZE"),
		TariffFile:       v.GetString("TARIFF_FILE"),
		SeedDemoAccounts: v.GetBool("SEED_DEMO_ACCOUNTS"),
		DemoPassword:     v.GetString("DEMO_PASSWORD"),
	}

	return cfg, cfg.Validate()
}

// Validate reports every missing or unusable setting at once.
func (c Config) Validate() error {
	var problems []error
	required := map[string]string{
		"HTTP_PORT": c.HTTPPort,
		"DB_HOST":   c.DBHost,
		"DB_PORT":   c.DBPort,
		"DB_USER":   c.DBUser,
		"DB_NAME":   c.DBName,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(key))
		}
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("SESSION_TTL"))
	}
	if c.GeocoderBaseURL != "" && c.GeocoderRPS <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("GEOCODER_RPS"))
	}
	if c.PaymentLatency < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("PAYMENT_LATENCY"))
	}
	return errors.Join(problems...)
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
