package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	JWTSecret string

	KafkaBrokers       []string
	KafkaTrackingTopic string

	PaymentSweepSchedule string
	LogFormat            string
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads envFile if it exists, then the environment, then flags
// from args. Later sources win.
func LoadConfig(envFile string, args []string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	flags := pflag.NewFlagSet("parceldelivery", pflag.ContinueOnError)
	var cfg Config
	flags.StringVar(&cfg.HTTPPort, "http-port", env("HTTP_PORT", "8080"), "HTTP listen port")
	flags.StringVar(&cfg.DBHost, "db-host", env("DB_HOST", "localhost"), "database host")
	flags.StringVar(&cfg.DBPort, "db-port", env("DB_PORT", "5432"), "database port")
	flags.StringVar(&cfg.DBUser, "db-user", env("DB_USER", "postgres"), "database user")
	flags.StringVar(&cfg.DBPassword, "db-password", env("DB_PASSWORD", ""), "database password")
	flags.StringVar(&cfg.DBName, "db-name", env("DB_NAME", "parcels"), "database name")
	flags.StringVar(&cfg.DBSslMode, "db-sslmode", env("DB_SSLMODE", "disable"), "database sslmode")
	flags.StringVar(&cfg.StripeSecretKey, "stripe-secret-key", env("STRIPE_SECRET_KEY", ""), "Stripe API secret key")
	flags.StringVar(&cfg.CheckoutSuccessURL, "checkout-success-url", env("CHECKOUT_SUCCESS_URL", ""),
		"redirect after a successful checkout")
	flags.StringVar(&cfg.CheckoutCancelURL, "checkout-cancel-url", env("CHECKOUT_CANCEL_URL", ""),
		"redirect after a cancelled checkout")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", env("JWT_SECRET", ""), "HS256 secret for bearer tokens")
	flags.StringSliceVar(&cfg.KafkaBrokers, "kafka-brokers", splitList(env("KAFKA_BROKERS", "")),
		"Kafka brokers; tracking events are not published when empty")
	flags.StringVar(&cfg.KafkaTrackingTopic, "kafka-tracking-topic", env("KAFKA_TRACKING_TOPIC", "parcel.tracking"),
		"topic for tracking events")
	flags.StringVar(&cfg.PaymentSweepSchedule, "payment-sweep-schedule", env("PAYMENT_SWEEP_SCHEDULE", ""),
		"cron schedule with seconds for the payment sweep")
	flags.StringVar(&cfg.LogFormat, "log-format", env("LOG_FORMAT", "json"), "json or text")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errList []error
	if c.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}
	if c.StripeSecretKey == "" {
		errList = append(errList, errors.New("STRIPE_SECRET_KEY is required"))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errList = append(errList, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	return errors.Join(errList...)
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
