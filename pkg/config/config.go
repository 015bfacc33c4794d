package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Email    EmailConfig
	Session  SessionConfig
	Demo     DemoConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

// EmailConfig holds the SMTP transport settings
type EmailConfig struct {
	Address  string
	Password string
	Host     string
	Port     int
}

type SessionConfig struct {
	Secret string
}

// DemoConfig controls the optional demo account seeded at startup
type DemoConfig struct {
	UserEmail string
	UserName  string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./contactpro.db"),
		},
		Email: EmailConfig{
			Address:  getEnv("EMAIL_ADDRESS", ""),
			Password: getEnv("EMAIL_PASSWORD", ""),
			Host:     getEnv("EMAIL_HOST", ""),
			Port:     getEnvAsInt("EMAIL_PORT", 587),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "default-secret-key"),
		},
		Demo: DemoConfig{
			UserEmail: getEnv("DEMO_USER_EMAIL", ""),
			UserName:  getEnv("DEMO_USER_NAME", "Demo User"),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
