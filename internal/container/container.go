package container

import (
	"cg-backend/internal/config"
	"cg-backend/internal/service"
	"cg-backend/internal/service/assistant"
	"cg-backend/internal/service/notify"
	"cg-backend/internal/storage"
	"cg-backend/pkg/logger"
	"cg-backend/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client

	Activities *service.ActivityService
	FAQ        *service.FAQService
	Scripted   *assistant.Scripted
	Chat       *assistant.ChatService
	Podcast    *service.PodcastService
}

// New creates a new dependency injection container
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	// Redis is an optional cache, the service runs without it
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	sheets := storage.NewSheetsStore(cfg.SheetsClientEmail, cfg.SheetsPrivateKey, cfg.SheetsSpreadsheet, log)
	local := storage.NewLocalStore(cfg.DataFile, log)

	// a typed-nil notifier must not become a non-nil interface
	var notifier notify.Notifier
	if slackNotifier := notify.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannelID, log); slackNotifier != nil {
		notifier = slackNotifier
	}

	return &Container{
		Config:      cfg,
		Logger:      log,
		RedisClient: redisClient,
		Activities:  service.NewActivityService(sheets, local, notifier, redisClient, log),
		FAQ:         service.NewFAQService(),
		Scripted:    assistant.NewScripted(),
		Chat:        assistant.NewChatService(cfg.HuggingFaceAPIKey, log),
		Podcast:     service.NewPodcastService(cfg.GoogleDriveAPIKey, log),
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if the Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
