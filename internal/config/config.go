package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr     string
	PostgresDSN  string
	MongoURI     string
	RedisAddr    string
	RabbitURL    string
	JWTSecret    string
	TokenTTL     time.Duration
	PaymentDelay time.Duration
	OTLPEndpoint string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	tokenTTL, _ := time.ParseDuration(os.Getenv("TOKEN_TTL"))
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}

	// Delay before the simulated gateway confirmation lands.
	paymentDelay, _ := time.ParseDuration(os.Getenv("PAYMENT_DELAY"))
	if paymentDelay == 0 {
		paymentDelay = 2 * time.Second
	}

	return &Config{
		HTTPAddr:     addr,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		MongoURI:     os.Getenv("MONGO_URI"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RabbitURL:    os.Getenv("RABBIT_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     tokenTTL,
		PaymentDelay: paymentDelay,
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}
