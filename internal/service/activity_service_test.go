package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cg-backend/internal/domain"
	"cg-backend/internal/storage"
	apperrors "cg-backend/pkg/errors"
	"cg-backend/pkg/logger"
)

// fakeStore is an in-memory Store with scriptable failures
type fakeStore struct {
	mu         sync.Mutex
	name       string
	configured bool
	failAppend bool
	failList   bool
	failClear  bool
	records    []domain.ActivityRecord
	partitions []string
	cleared    []string
}

func (f *fakeStore) Name() string       { return f.name }
func (f *fakeStore) IsConfigured() bool { return f.configured }

func (f *fakeStore) Append(_ context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend {
		return domain.ActivityRecord{}, fmt.Errorf("append: %w: boom", storage.ErrUnavailable)
	}
	rec.ID = fmt.Sprintf("rec-%d", len(f.records)+1)
	rec.Timestamp = "2026-08-31T12:00:00Z"
	f.records = append([]domain.ActivityRecord{rec}, f.records...)
	return rec, nil
}

func (f *fakeStore) List(_ context.Context, limit int, _ string) ([]domain.ActivityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, fmt.Errorf("list: %w: boom", storage.ErrUnavailable)
	}
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return append([]domain.ActivityRecord(nil), f.records[:limit]...), nil
}

func (f *fakeStore) Clear(_ context.Context, quarter string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failClear {
		return fmt.Errorf("clear: %w: boom", storage.ErrUnavailable)
	}
	f.cleared = append(f.cleared, quarter)
	f.records = nil
	return nil
}

func (f *fakeStore) ListPartitions(_ context.Context) ([]string, error) {
	return f.partitions, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func newTestService(t *testing.T, sheets, local *fakeStore) *ActivityService {
	t.Helper()
	log, err := logger.New("error", "test")
	require.NoError(t, err)
	return NewActivityService(sheets, local, nil, nil, log)
}

func validInput() domain.ActivityInput {
	return domain.ActivityInput{
		Name:        "Ana Lee",
		SlackHandle: "@ana.lee",
		Role:        domain.RoleProjectManager,
		EventName:   "Hackathon",
		EventDate:   "2026-03-14",
	}
}

func TestSubmitAssignsPointsFromRole(t *testing.T) {
	tests := []struct {
		role   string
		points int
	}{
		{domain.RoleProjectManager, 100},
		{domain.RoleCommitteeMember, 50},
		{domain.RoleOnSiteHelp, 25},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
			svc := newTestService(t, &fakeStore{name: domain.SourceGoogleSheets}, local)

			input := validInput()
			input.Role = tt.role
			result, err := svc.Submit(context.Background(), input)

			require.NoError(t, err)
			assert.Equal(t, tt.points, result.Record.Points)
			assert.NotEmpty(t, result.Record.ID)
			assert.NotEmpty(t, result.Record.Timestamp)
		})
	}
}

func TestSubmitMissingFieldsPersistsNothing(t *testing.T) {
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, &fakeStore{name: domain.SourceGoogleSheets}, local)

	input := validInput()
	input.Name = ""
	input.EventDate = "  "
	_, err := svc.Submit(context.Background(), input)

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, []string{"name", "eventDate"}, appErr.Details["required"])
	assert.Zero(t, local.count())
}

func TestSubmitRejectsUnknownRole(t *testing.T) {
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, &fakeStore{name: domain.SourceGoogleSheets}, local)

	input := validInput()
	input.Role = "chief-vibes-officer"
	_, err := svc.Submit(context.Background(), input)

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ValidRoles(), appErr.Details["validRoles"])
	assert.Zero(t, local.count())
}

func TestSubmitRejectsHandleWithoutAt(t *testing.T) {
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, &fakeStore{name: domain.SourceGoogleSheets}, local)

	input := validInput()
	input.SlackHandle = "ana.lee"
	_, err := svc.Submit(context.Background(), input)

	require.Error(t, err)
	assert.Zero(t, local.count())
}

func TestSubmitPrefersSheetsWhenConfigured(t *testing.T) {
	sheets := &fakeStore{name: domain.SourceGoogleSheets, configured: true}
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, sheets, local)

	result, err := svc.Submit(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, domain.SourceGoogleSheets, result.Storage)
	assert.Equal(t, 1, sheets.count())
	assert.Zero(t, local.count())
}

func TestSubmitFallsBackWhenSheetsFails(t *testing.T) {
	sheets := &fakeStore{name: domain.SourceGoogleSheets, configured: true, failAppend: true}
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, sheets, local)

	result, err := svc.Submit(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalStorage, result.Storage)
	assert.Equal(t, 1, local.count())
}

func TestSubmitSkipsUnconfiguredSheets(t *testing.T) {
	sheets := &fakeStore{name: domain.SourceGoogleSheets, configured: false}
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, sheets, local)

	result, err := svc.Submit(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalStorage, result.Storage)
}

func TestSubmitFailsWhenLocalFails(t *testing.T) {
	sheets := &fakeStore{name: domain.SourceGoogleSheets, configured: true, failAppend: true}
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true, failAppend: true}
	svc := newTestService(t, sheets, local)

	_, err := svc.Submit(context.Background(), validInput())

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	assert.True(t, errors.Is(err, storage.ErrUnavailable))
}

type recordingNotifier struct {
	received chan domain.ActivityRecord
	fail     bool
}

func (n *recordingNotifier) NotifyActivity(_ context.Context, rec domain.ActivityRecord) error {
	n.received <- rec
	if n.fail {
		return errors.New("slack down")
	}
	return nil
}

func TestSubmitNotifiesAfterCommit(t *testing.T) {
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	notifier := &recordingNotifier{received: make(chan domain.ActivityRecord, 1)}
	log, err := logger.New("error", "test")
	require.NoError(t, err)
	svc := NewActivityService(&fakeStore{name: domain.SourceGoogleSheets}, local, notifier, nil, log)

	result, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	rec := <-notifier.received
	assert.Equal(t, result.Record.ID, rec.ID)
}

func TestSubmitSucceedsWhenNotifierFails(t *testing.T) {
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	notifier := &recordingNotifier{received: make(chan domain.ActivityRecord, 1), fail: true}
	log, err := logger.New("error", "test")
	require.NoError(t, err)
	svc := NewActivityService(&fakeStore{name: domain.SourceGoogleSheets}, local, notifier, nil, log)

	_, err = svc.Submit(context.Background(), validInput())

	require.NoError(t, err)
	<-notifier.received
	assert.Equal(t, 1, local.count())
}

func TestListActivitiesReportsActualSource(t *testing.T) {
	sheets := &fakeStore{
		name:       domain.SourceGoogleSheets,
		configured: true,
		failList:   true,
	}
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, sheets, local)

	_, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	result, err := svc.ListActivities(context.Background(), 10, "")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalStorage, result.Source)
	assert.Len(t, result.Records, 1)
}

func TestListActivitiesIncludesQuarters(t *testing.T) {
	sheets := &fakeStore{
		name:       domain.SourceGoogleSheets,
		configured: true,
		partitions: []string{"Q1-2026", "Q2-2026"},
	}
	svc := newTestService(t, sheets, &fakeStore{name: domain.SourceLocalStorage, configured: true})

	result, err := svc.ListActivities(context.Background(), 10, "")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceGoogleSheets, result.Source)
	assert.Equal(t, []string{"Q1-2026", "Q2-2026"}, result.Quarters)
}

func TestLeaderboardAggregates(t *testing.T) {
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, &fakeStore{name: domain.SourceGoogleSheets}, local)

	for i := 0; i < 3; i++ {
		input := validInput()
		if i == 2 {
			input.Name = "Ben Ray"
			input.Role = domain.RoleOnSiteHelp
		}
		_, err := svc.Submit(context.Background(), input)
		require.NoError(t, err)
	}

	entries, source, err := svc.Leaderboard(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalStorage, source)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ana Lee", entries[0].Name)
	assert.Equal(t, 200, entries[0].Points)
	assert.Equal(t, 2, entries[0].Activities)
}

func TestClearDataClearsBothBackends(t *testing.T) {
	sheets := &fakeStore{name: domain.SourceGoogleSheets, configured: true}
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, sheets, local)

	require.NoError(t, svc.ClearData(context.Background(), "Q1-2026"))

	assert.Equal(t, []string{"Q1-2026"}, sheets.cleared)
	assert.Equal(t, []string{"Q1-2026"}, local.cleared)
}

func TestClearDataSheetsFailureIsNotFatal(t *testing.T) {
	sheets := &fakeStore{name: domain.SourceGoogleSheets, configured: true, failClear: true}
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, sheets, local)

	require.NoError(t, svc.ClearData(context.Background(), ""))
	assert.Equal(t, []string{""}, local.cleared)
}

func TestClearDataRejectsMalformedQuarter(t *testing.T) {
	svc := newTestService(t,
		&fakeStore{name: domain.SourceGoogleSheets},
		&fakeStore{name: domain.SourceLocalStorage, configured: true})

	err := svc.ClearData(context.Background(), "Q5-2026")

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestStats(t *testing.T) {
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, &fakeStore{name: domain.SourceGoogleSheets}, local)

	for i := 0; i < 2; i++ {
		_, err := svc.Submit(context.Background(), validInput())
		require.NoError(t, err)
	}

	stats, source, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalStorage, source)
	assert.Equal(t, 2, stats.TotalActivities)
	assert.Equal(t, 200, stats.TotalPoints)
	assert.Equal(t, 1, stats.UniqueUsers)
}

func TestExportCSV(t *testing.T) {
	local := &fakeStore{name: domain.SourceLocalStorage, configured: true}
	svc := newTestService(t, &fakeStore{name: domain.SourceGoogleSheets}, local)

	_, err := svc.Submit(context.Background(), validInput())
	require.NoError(t, err)

	doc, source, err := svc.ExportCSV(context.Background(), 10, "")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalStorage, source)
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Timestamp,Name,Slack Handle,Role,Event Name,Event Date,Points,Notes", lines[0])
	assert.Contains(t, lines[1], "Ana Lee")
	assert.Contains(t, lines[1], "100")
}
