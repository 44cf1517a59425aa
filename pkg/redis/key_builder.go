package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyLeaderboard builds the cache key for an aggregated leaderboard.
// An empty quarter means the unscoped leaderboard.
func (kb *KeyBuilder) KeyLeaderboard(quarter string) string {
	if quarter == "" {
		quarter = "all"
	}
	return kb.BuildKey(fmt.Sprintf(KeyLeaderboard, quarter))
}

// KeyActivityList builds the cache key for a raw activity listing
func (kb *KeyBuilder) KeyActivityList(quarter string, limit int) string {
	if quarter == "" {
		quarter = "all"
	}
	return kb.BuildKey(fmt.Sprintf(KeyActivityList, quarter, limit))
}

// ActivityPattern matches every cached activity-derived key, for invalidation
func (kb *KeyBuilder) ActivityPattern() string {
	return kb.BuildKey("activities:*")
}
