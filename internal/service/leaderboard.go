package service

import (
	"sort"

	"cg-backend/internal/domain"
)

// maxLeaderboardSize caps the leaderboard to the top earners
const maxLeaderboardSize = 10

// Aggregate derives the ranked leaderboard from a record set. It is a
// pure function: the same input ordering always yields the same list.
//
// Records are grouped by display name exactly as stored, so two people
// submitting under the same string are merged. That matches the stored
// data model, which has no stable user id.
func Aggregate(records []domain.ActivityRecord) []domain.LeaderboardEntry {
	index := make(map[string]int, len(records))
	entries := make([]domain.LeaderboardEntry, 0, len(records))

	for _, rec := range records {
		i, seen := index[rec.Name]
		if !seen {
			i = len(entries)
			index[rec.Name] = i
			entries = append(entries, domain.LeaderboardEntry{
				Name:        rec.Name,
				SlackHandle: rec.SlackHandle,
				// records arrive newest first, so the first one seen
				// for a name is its most recent activity
				LastActivity: rec.Timestamp,
			})
		}
		entries[i].Points += rec.Points
		entries[i].Activities++
	}

	// stable sort keeps input order as the tie-break for equal points
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	if len(entries) > maxLeaderboardSize {
		entries = entries[:maxLeaderboardSize]
	}
	return entries
}

// ComputeStats summarizes the record set
func ComputeStats(records []domain.ActivityRecord) domain.ActivityStats {
	stats := domain.ActivityStats{TotalActivities: len(records)}
	names := make(map[string]bool, len(records))
	for _, rec := range records {
		stats.TotalPoints += rec.Points
		names[rec.Name] = true
	}
	stats.UniqueUsers = len(names)
	return stats
}
