package domain

// Participation roles. Points are derived from the role at submission
// time and never supplied by the caller.
const (
	RoleProjectManager  = "project-manager"
	RoleCommitteeMember = "committee-member"
	RoleOnSiteHelp      = "on-site-help"
)

var rolePoints = map[string]int{
	RoleProjectManager:  100,
	RoleCommitteeMember: 50,
	RoleOnSiteHelp:      25,
}

var roleLabels = map[string]string{
	RoleProjectManager:  "Project Manager",
	RoleCommitteeMember: "Committee Member",
	RoleOnSiteHelp:      "On-site Help",
}

// PointsForRole returns the point value for a role, 0 for unknown roles
func PointsForRole(role string) int {
	return rolePoints[role]
}

// IsValidRole reports whether role is one of the closed set
func IsValidRole(role string) bool {
	_, ok := rolePoints[role]
	return ok
}

// ValidRoles returns the closed role set in its canonical order
func ValidRoles() []string {
	return []string{RoleProjectManager, RoleCommitteeMember, RoleOnSiteHelp}
}

// RoleLabel returns the human-readable label for a role
func RoleLabel(role string) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return role
}

// ActivityInput is the untyped boundary shape of a submission before
// validation. Points and timestamps are never accepted from callers.
type ActivityInput struct {
	Name          string `json:"name"`
	SlackHandle   string `json:"slackHandle"`
	Role          string `json:"role"`
	EventName     string `json:"eventName"`
	EventDate     string `json:"eventDate"`
	Notes         string `json:"notes,omitempty"`
	NotifyManager bool   `json:"notifyManager,omitempty"`
}

// ActivityRecord is a committed, immutable activity. ID and Timestamp
// are assigned by the storage backend at write time.
type ActivityRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SlackHandle string `json:"slackHandle"`
	Role        string `json:"role"`
	EventName   string `json:"eventName"`
	EventDate   string `json:"eventDate"`
	Points      int    `json:"points"`
	Notes       string `json:"notes,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// LeaderboardEntry is derived from the current record set, never persisted
type LeaderboardEntry struct {
	Name         string `json:"name"`
	SlackHandle  string `json:"slackHandle"`
	Points       int    `json:"points"`
	Activities   int    `json:"activities"`
	LastActivity string `json:"lastActivity"`
}

// ActivityStats summarizes the current record set
type ActivityStats struct {
	TotalActivities int `json:"totalActivities"`
	TotalPoints     int `json:"totalPoints"`
	UniqueUsers     int `json:"uniqueUsers"`
}

// Storage source identifiers reported to clients
const (
	SourceGoogleSheets = "google_sheets"
	SourceLocalStorage = "local_storage"
)
