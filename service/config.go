package service

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	Catalogue struct {
		Source       string // file path or HTTP(S) URL
		FetchTimeout time.Duration
	}

	Session struct {
		Secret string
	}

	Stripe struct {
		PublishableKey string
		SecretKey      string
	}

	Checkout struct {
		OrderAPIURL string // when set, checkout goes through the external order endpoint
		Shipping    float64
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/velvetcharms.db"),
	}

	// Catalogue
	config.Catalogue.Source = getEnv("CATALOGUE_SOURCE", "./config/catalogue.json")
	timeout := getEnv("CATALOGUE_FETCH_TIMEOUT", "10s")
	if d, err := time.ParseDuration(timeout); err == nil {
		config.Catalogue.FetchTimeout = d
	} else {
		config.Catalogue.FetchTimeout = 10 * time.Second
	}

	// Session
	config.Session.Secret = getEnv("SESSION_SECRET", "development-secret")

	// Stripe
	config.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")

	// Checkout
	config.Checkout.OrderAPIURL = getEnv("ORDER_API_URL", "")
	shipping := getEnv("CHECKOUT_FLAT_SHIPPING", "0")
	if v, err := strconv.ParseFloat(shipping, 64); err == nil && v >= 0 {
		config.Checkout.Shipping = v
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
