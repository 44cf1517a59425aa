package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cg-backend/internal/domain"
)

func activity(name string, points int, ts string) domain.ActivityRecord {
	return domain.ActivityRecord{
		Name:        name,
		SlackHandle: "@" + name,
		Role:        domain.RoleOnSiteHelp,
		Points:      points,
		Timestamp:   ts,
	}
}

func TestAggregateGroupsByName(t *testing.T) {
	records := []domain.ActivityRecord{
		activity("Ana", 100, "2026-03-01T10:00:00Z"),
		activity("Ben", 50, "2026-02-20T10:00:00Z"),
		activity("Ana", 25, "2026-01-15T10:00:00Z"),
	}

	entries := Aggregate(records)

	require.Len(t, entries, 2)
	assert.Equal(t, "Ana", entries[0].Name)
	assert.Equal(t, 125, entries[0].Points)
	assert.Equal(t, 2, entries[0].Activities)
	assert.Equal(t, "Ben", entries[1].Name)
	assert.Equal(t, 50, entries[1].Points)
}

func TestAggregateLastActivityIsMostRecent(t *testing.T) {
	// input is newest first, so the first record seen per name wins
	records := []domain.ActivityRecord{
		activity("Ana", 25, "2026-03-01T10:00:00Z"),
		activity("Ana", 100, "2026-01-15T10:00:00Z"),
	}

	entries := Aggregate(records)

	require.Len(t, entries, 1)
	assert.Equal(t, "2026-03-01T10:00:00Z", entries[0].LastActivity)
}

func TestAggregateTruncatesToTopTen(t *testing.T) {
	var records []domain.ActivityRecord
	for i := 0; i < 15; i++ {
		records = append(records, activity(fmt.Sprintf("user-%02d", i), (i+1)*10, "2026-03-01T10:00:00Z"))
	}

	entries := Aggregate(records)

	require.Len(t, entries, 10)
	assert.Equal(t, "user-14", entries[0].Name)
	assert.Equal(t, 150, entries[0].Points)
	assert.Equal(t, "user-05", entries[9].Name)
}

func TestAggregateStableTieBreak(t *testing.T) {
	records := []domain.ActivityRecord{
		activity("First", 50, "2026-03-01T10:00:00Z"),
		activity("Second", 50, "2026-02-01T10:00:00Z"),
	}

	// equal points keep input order
	for i := 0; i < 20; i++ {
		entries := Aggregate(records)
		require.Len(t, entries, 2)
		assert.Equal(t, "First", entries[0].Name)
		assert.Equal(t, "Second", entries[1].Name)
	}
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	records := []domain.ActivityRecord{
		activity("Ana", 25, "2026-03-01T10:00:00Z"),
		activity("Ben", 100, "2026-02-01T10:00:00Z"),
	}

	Aggregate(records)

	assert.Equal(t, "Ana", records[0].Name)
	assert.Equal(t, "Ben", records[1].Name)
}

func TestComputeStats(t *testing.T) {
	records := []domain.ActivityRecord{
		activity("Ana", 100, "2026-03-01T10:00:00Z"),
		activity("Ben", 50, "2026-02-20T10:00:00Z"),
		activity("Ana", 25, "2026-01-15T10:00:00Z"),
	}

	stats := ComputeStats(records)

	assert.Equal(t, 3, stats.TotalActivities)
	assert.Equal(t, 175, stats.TotalPoints)
	assert.Equal(t, 2, stats.UniqueUsers)
}
