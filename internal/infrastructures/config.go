package infrastructures

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type AppConfig struct {
	PORT           string
	DATABASE_URL   string
	REDIS_ADDRESS  string
	REDIS_PASSWORD string
	RazorpayConfig RazorpayConfig
	SMTPConfig     SMTPConfig
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	Config = &AppConfig{
		PORT:           os.Getenv("PORT"),
		DATABASE_URL:   os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:  os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),
		RazorpayConfig: RazorpayConfig{
			KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
	}

	if Config.PORT == "" {
		Config.PORT = "8080"
	}

	return Config
}
