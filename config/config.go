package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	EmailSender   string
	EmailPassword string // SMTP App Password
	SMTPHost      string
	SMTPPort      string
	SendGridKey   string

	FrontendURL string

	AdminEmail    string // Seeded admin account
	AdminPassword string

	InviteExpiryDays  int
	ResetTokenMinutes int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "basic"),
		DBPort:     getEnv("DB_PORT", "5432"),

		EmailSender:   getEnv("SMTP_USER", ""),
		EmailPassword: getEnv("SMTP_PASS", ""),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SendGridKey:   getEnv("SENDGRID_API_KEY", ""),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:4200"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@basic.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		InviteExpiryDays:  getEnvInt("INVITE_EXPIRY_DAYS", 30),
		ResetTokenMinutes: getEnvInt("RESET_TOKEN_MINUTES", 60),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.EmailSender == "" && AppConfig.SendGridKey == "" {
		log.Println("Warning: No mail credentials configured. Emails will be logged only.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
