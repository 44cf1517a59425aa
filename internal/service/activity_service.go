package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"cg-backend/internal/domain"
	"cg-backend/internal/service/notify"
	"cg-backend/internal/storage"
	apperrors "cg-backend/pkg/errors"
	"cg-backend/pkg/logger"
	"cg-backend/pkg/redis"
)

// DefaultListLimit bounds reads when the caller does not ask for a limit
const DefaultListLimit = 100

// statsScanLimit caps how many records the stats and leaderboard
// aggregations read in one pass
const statsScanLimit = 1000

const notifyTimeout = 10 * time.Second

// SubmitResult reports a committed submission back to the caller
type SubmitResult struct {
	Record  domain.ActivityRecord
	Storage string
}

// ListResult carries a page of records plus where they came from
type ListResult struct {
	Records  []domain.ActivityRecord
	Source   string
	Quarters []string
}

// ActivityService owns the write path, the fallback policy between the
// spreadsheet and local backends, and the derived read models.
type ActivityService struct {
	sheets   storage.Store
	local    storage.Store
	notifier notify.Notifier
	cache    *redis.Client
	log      *logger.Logger
	now      func() time.Time
}

// NewActivityService wires the storage backends. notifier and cache may
// be nil when the integrations are not configured.
func NewActivityService(sheets, local storage.Store, notifier notify.Notifier, cache *redis.Client, log *logger.Logger) *ActivityService {
	return &ActivityService{
		sheets:   sheets,
		local:    local,
		notifier: notifier,
		cache:    cache,
		log:      log,
		now:      time.Now,
	}
}

// validate enforces the submission contract. Nothing is persisted when
// it fails.
func (s *ActivityService) validate(input domain.ActivityInput) error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"slackHandle", input.SlackHandle},
		{"role", input.Role},
		{"eventName", input.EventName},
		{"eventDate", input.EventDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("Missing required fields", map[string]interface{}{
			"required": missing,
		})
	}

	if !domain.IsValidRole(input.Role) {
		return apperrors.NewValidationError("Invalid role", map[string]interface{}{
			"validRoles": domain.ValidRoles(),
		})
	}

	if !strings.HasPrefix(input.SlackHandle, "@") {
		return apperrors.NewValidationError("Invalid Slack handle", map[string]interface{}{
			"field":  "slackHandle",
			"reason": "must start with @",
		})
	}
	return nil
}

// Submit validates and persists a new activity. The spreadsheet backend
// is tried first when configured; on failure the record lands in local
// storage and the result names the backend that actually committed.
func (s *ActivityService) Submit(ctx context.Context, input domain.ActivityInput) (SubmitResult, error) {
	if err := s.validate(input); err != nil {
		return SubmitResult{}, err
	}

	rec := domain.ActivityRecord{
		Name:        strings.TrimSpace(input.Name),
		SlackHandle: strings.TrimSpace(input.SlackHandle),
		Role:        input.Role,
		EventName:   strings.TrimSpace(input.EventName),
		EventDate:   input.EventDate,
		Points:      domain.PointsForRole(input.Role),
		Notes:       strings.TrimSpace(input.Notes),
	}

	committed, target, err := s.write(ctx, rec)
	if err != nil {
		return SubmitResult{}, err
	}

	s.invalidateCache(ctx)

	if s.notifier != nil {
		// fire and forget, a Slack outage must not fail the submission
		go s.notify(committed)
	}

	return SubmitResult{Record: committed, Storage: target}, nil
}

func (s *ActivityService) write(ctx context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, string, error) {
	if s.sheets.IsConfigured() {
		committed, err := s.sheets.Append(ctx, rec)
		if err == nil {
			return committed, domain.SourceGoogleSheets, nil
		}
		s.log.WithError(err).Warn("sheets append failed, falling back to local storage")
	}

	committed, err := s.local.Append(ctx, rec)
	if err != nil {
		// local storage is the last line, its failure is fatal
		return domain.ActivityRecord{}, "", apperrors.NewInternalError("Failed to store activity", err)
	}
	return committed, domain.SourceLocalStorage, nil
}

func (s *ActivityService) notify(rec domain.ActivityRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyActivity(ctx, rec); err != nil {
		s.log.WithError(err).Warn("slack notification failed")
	}
}

// ListActivities returns up to limit records, most recent first, from
// the first reachable backend. Results are briefly cached to absorb
// leaderboard-page refresh bursts.
func (s *ActivityService) ListActivities(ctx context.Context, limit int, quarter string) (ListResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.KeyBuilder.KeyActivityList(quarter, limit)
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached ListResult
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.log.WithError(err).Warn("activity list cache read failed")
		}
	}

	result, err := s.listUncached(ctx, limit, quarter)
	if err != nil {
		return ListResult{}, err
	}

	if s.cache != nil {
		if payload, jerr := json.Marshal(result); jerr == nil {
			if serr := s.cache.Set(ctx, cacheKey, payload, redis.TTLActivityList); serr != nil {
				s.log.WithError(serr).Warn("activity list cache write failed")
			}
		}
	}
	return result, nil
}

func (s *ActivityService) listUncached(ctx context.Context, limit int, quarter string) (ListResult, error) {
	if s.sheets.IsConfigured() {
		records, err := s.sheets.List(ctx, limit, quarter)
		if err == nil {
			quarters, qerr := s.sheets.ListPartitions(ctx)
			if qerr != nil {
				s.log.WithError(qerr).Warn("listing sheet partitions failed")
			}
			return ListResult{Records: records, Source: domain.SourceGoogleSheets, Quarters: quarters}, nil
		}
		s.log.WithError(err).Warn("sheets read failed, falling back to local storage")
	}

	records, err := s.local.List(ctx, limit, quarter)
	if err != nil {
		return ListResult{}, apperrors.NewInternalError("Failed to read activities", err)
	}
	return ListResult{Records: records, Source: domain.SourceLocalStorage}, nil
}

// cachedLeaderboard is the shape stored in Redis
type cachedLeaderboard struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
	Source  string                    `json:"source"`
}

// Leaderboard aggregates the top earners, optionally through the cache
func (s *ActivityService) Leaderboard(ctx context.Context, quarter string) ([]domain.LeaderboardEntry, string, error) {
	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.KeyBuilder.KeyLeaderboard(quarter)
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached cachedLeaderboard
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return cached.Entries, cached.Source, nil
			}
		} else if err != redis.Nil {
			s.log.WithError(err).Warn("leaderboard cache read failed")
		}
	}

	result, err := s.ListActivities(ctx, statsScanLimit, quarter)
	if err != nil {
		return nil, "", err
	}
	entries := Aggregate(result.Records)

	if s.cache != nil {
		payload, jerr := json.Marshal(cachedLeaderboard{Entries: entries, Source: result.Source})
		if jerr == nil {
			if serr := s.cache.Set(ctx, cacheKey, payload, redis.TTLLeaderboard); serr != nil {
				s.log.WithError(serr).Warn("leaderboard cache write failed")
			}
		}
	}
	return entries, result.Source, nil
}

// Stats summarizes the record set for the admin surface
func (s *ActivityService) Stats(ctx context.Context) (domain.ActivityStats, string, error) {
	result, err := s.ListActivities(ctx, statsScanLimit, "")
	if err != nil {
		return domain.ActivityStats{}, "", err
	}
	return ComputeStats(result.Records), result.Source, nil
}

// ClearData wipes the given quarter, or everything when quarter is
// empty. Local storage must succeed; the spreadsheet side is cleared
// best-effort so an offline integration cannot block a reset.
func (s *ActivityService) ClearData(ctx context.Context, quarter string) error {
	if quarter != "" && !storage.IsQuarterKey(quarter) {
		return apperrors.NewValidationError("Invalid quarter", map[string]interface{}{
			"expected": "Q1-2026 format",
		})
	}

	if s.sheets.IsConfigured() {
		if err := s.sheets.Clear(ctx, quarter); err != nil {
			s.log.WithError(err).Warn("clearing sheet data failed")
		}
	}

	if err := s.local.Clear(ctx, quarter); err != nil {
		return apperrors.NewInternalError("Failed to clear activities", err)
	}

	s.invalidateCache(ctx)
	return nil
}

// ExportCSV renders up to limit records as a CSV document
func (s *ActivityService) ExportCSV(ctx context.Context, limit int, quarter string) (string, string, error) {
	result, err := s.ListActivities(ctx, limit, quarter)
	if err != nil {
		return "", "", err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"Timestamp", "Name", "Slack Handle", "Role", "Event Name", "Event Date", "Points", "Notes"}); err != nil {
		return "", "", apperrors.NewInternalError("Failed to render CSV", err)
	}
	for _, rec := range result.Records {
		if err := w.Write([]string{
			rec.Timestamp,
			rec.Name,
			rec.SlackHandle,
			rec.Role,
			rec.EventName,
			rec.EventDate,
			strconv.Itoa(rec.Points),
			rec.Notes,
		}); err != nil {
			return "", "", apperrors.NewInternalError("Failed to render CSV", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", "", apperrors.NewInternalError("Failed to render CSV", err)
	}
	return sb.String(), result.Source, nil
}

func (s *ActivityService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, s.cache.KeyBuilder.ActivityPattern()); err != nil {
		s.log.WithError(err).Warn("cache invalidation failed")
	}
}
