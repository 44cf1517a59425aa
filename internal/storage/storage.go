package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"cg-backend/internal/domain"
)

// ErrUnavailable wraps every transport, credential or parsing failure
// of a backend so the fallback policy can react uniformly.
var ErrUnavailable = errors.New("storage backend unavailable")

// Store is the contract shared by the spreadsheet and local variants.
// Append assigns the record id and creation timestamp; records are
// never updated or individually deleted once committed.
type Store interface {
	// Name identifies the backend in API responses
	Name() string
	// IsConfigured is a cheap presence check, it never probes connectivity
	IsConfigured() bool
	// Append commits a record and returns it with id and timestamp assigned
	Append(ctx context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, error)
	// List returns up to limit records, most recent first. The quarter
	// scopes the read on partitioned backends and is ignored otherwise.
	List(ctx context.Context, limit int, quarter string) ([]domain.ActivityRecord, error)
	// Clear removes every record in the given quarter, or all records
	// when the backend has no partitioning or quarter is empty.
	Clear(ctx context.Context, quarter string) error
	// ListPartitions returns the known quarter partitions, empty for
	// unpartitioned backends.
	ListPartitions(ctx context.Context) ([]string, error)
}

var quarterPattern = regexp.MustCompile(`^Q[1-4]-\d{4}$`)

// QuarterKey computes the partition key for an event date, e.g.
// "Q1-2026". Unparseable dates fall back to the reference time.
func QuarterKey(eventDate string, now time.Time) string {
	t := now
	for _, layout := range []string{"2006-01-02", time.RFC3339, "01/02/2006"} {
		if parsed, err := time.Parse(layout, eventDate); err == nil {
			t = parsed
			break
		}
	}
	quarter := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d-%d", quarter, t.Year())
}

// IsQuarterKey reports whether s looks like a quarter partition name
func IsQuarterKey(s string) bool {
	return quarterPattern.MatchString(s)
}
