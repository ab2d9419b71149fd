package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		// TTL в днях: длинный токен при регистрации, короткий при логине
		RegisterTTLDays int `yaml:"register_ttl_days"`
		LoginTTLDays    int `yaml:"login_ttl_days"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Payment struct {
		ShopID       string `yaml:"shop_id"`
		SecretKey    string `yaml:"secret_key"`
		BaseURL      string `yaml:"base_url"`   // API платежного провайдера
		ReturnURL    string `yaml:"return_url"` // куда провайдер вернет браузер
		DashboardURL string `yaml:"dashboard_url"`
		Currency     string `yaml:"currency"`
		TimeoutSec   int    `yaml:"timeout_sec"`
	} `yaml:"payment"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Режим теста/контейнера: конфигурация из переменных окружения
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")

	cfg.Payment.ShopID = os.Getenv("PAYMENT_SHOP_ID")
	cfg.Payment.SecretKey = os.Getenv("PAYMENT_SECRET_KEY")
	cfg.Payment.BaseURL = os.Getenv("PAYMENT_BASE_URL")
	cfg.Payment.ReturnURL = os.Getenv("PAYMENT_RETURN_URL")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.FromEmail = "noreply@psyhub.kz"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.RegisterTTLDays == 0 {
		cfg.JWT.RegisterTTLDays = 30
	}
	if cfg.JWT.LoginTTLDays == 0 {
		cfg.JWT.LoginTTLDays = 7
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "KZT"
	}
	if cfg.Payment.TimeoutSec == 0 {
		cfg.Payment.TimeoutSec = 10
	}
	if cfg.Payment.DashboardURL == "" {
		cfg.Payment.DashboardURL = "/dashboard"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
