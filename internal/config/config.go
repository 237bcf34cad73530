package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultCurrency = "INR"

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	// RazorpayKeyID и RazorpayKeySecret серверные секреты шлюза. Их отсутствие не
	// валит загрузку конфига: клиент шлюза сам откажется создаваться, а ручка
	// создания заказа вернет ошибку конфигурации.
	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET"`

	// AuthJWTSecret секрет, которым внешний провайдер идентификации подписывает
	// свои access-токены. Мы токены только проверяем, не выпускаем.
	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	// Currency валюта продукта. Продукт один, валюта одна.
	Currency string `env:"PRODUCT_CURRENCY"`
}

func LoadConfig() (*Config, error) {
	// .env подхватываем только если файл существует.
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.AuthJWTSecret == "" {
		return nil, errors.New("auth JWT secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN (service role credential)")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.Currency, "c", DefaultCurrency, "Product currency code")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:        defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:       defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:     defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		RazorpayKeyID:     envConfig.RazorpayKeyID,
		RazorpayKeySecret: envConfig.RazorpayKeySecret,
		AuthJWTSecret:     envConfig.AuthJWTSecret,
		Currency:          defaultIfBlank(envConfig.Currency, flagsConfig.Currency),
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
