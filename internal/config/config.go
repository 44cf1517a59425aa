package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Environment    string

	// Google Sheets integration (all three required for the backend to
	// consider itself configured)
	SheetsClientEmail string
	SheetsPrivateKey  string
	SheetsSpreadsheet string

	// Slack notification side channel
	SlackBotToken  string
	SlackChannelID string

	// Streaming assistant
	HuggingFaceAPIKey string

	// Podcast metadata fetch
	GoogleDriveAPIKey string

	// Optional leaderboard cache
	RedisURL string

	// Local fallback store
	DataFile string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Environment:       getEnv("ENVIRONMENT", "production"),
		SheetsClientEmail: getEnv("GOOGLE_SHEETS_CLIENT_EMAIL", ""),
		SheetsPrivateKey:  getEnv("GOOGLE_SHEETS_PRIVATE_KEY", ""),
		SheetsSpreadsheet: getEnv("GOOGLE_SHEETS_SHEET_ID", ""),
		SlackBotToken:     getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannelID:    getEnv("SLACK_CHANNEL_ID", ""),
		HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
		GoogleDriveAPIKey: getEnv("GOOGLE_DRIVE_API_KEY", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		DataFile:          getEnv("DATA_FILE", "data/activities.json"),
	}, nil
}

// HasSheets reports whether all Google Sheets credentials are present.
// This is a presence check only, connectivity is never probed here.
func (c *Config) HasSheets() bool {
	return c.SheetsClientEmail != "" && c.SheetsPrivateKey != "" && c.SheetsSpreadsheet != ""
}

// HasSlack reports whether the Slack side channel is configured
func (c *Config) HasSlack() bool {
	return c.SlackBotToken != "" && c.SlackChannelID != ""
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
