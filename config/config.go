package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// FallbackWebAppURL is used whenever WEB_APP_URL is missing or not HTTPS.
// Telegram refuses to open web apps over plain HTTP.
const FallbackWebAppURL = "https://loguncov.github.io/telegram_salon_mvp/"

type Settings struct {
	BotToken  string
	WebAppURL string
	DBURL     string
	Host      string
	Port      string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
}

// Load reads .env (if present) and assembles runtime settings.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	s := Settings{
		BotToken:          os.Getenv("BOT_TOKEN"),
		WebAppURL:         getEnv("WEB_APP_URL", FallbackWebAppURL),
		DBURL:             getEnv("DB_URL", "file:salon.db"),
		Host:              getEnv("HOST", "127.0.0.1"),
		Port:              getEnv("PORT", "8000"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
	return s
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
