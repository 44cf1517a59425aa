package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"cg-backend/internal/domain"
	"cg-backend/pkg/logger"
)

// Column layout of every quarter tab, A through I.
var sheetHeader = []interface{}{
	"ID", "Timestamp", "Name", "Slack Handle", "Role", "Event Name", "Event Date", "Points", "Notes",
}

const sheetColumns = "A:I"

// SheetsStore persists activities to a Google spreadsheet, one tab per
// calendar quarter (Q1-2026, Q2-2026, ...). Tabs are created lazily on
// first write and seeded with a header row.
type SheetsStore struct {
	clientEmail   string
	privateKey    string
	spreadsheetID string
	log           *logger.Logger

	mu  sync.Mutex
	srv *sheetsv4.Service
	now func() time.Time
}

// NewSheetsStore creates the spreadsheet backend. Whether it is usable
// is decided by credential presence alone; the API client is built
// lazily on first use.
func NewSheetsStore(clientEmail, privateKey, spreadsheetID string, log *logger.Logger) *SheetsStore {
	return &SheetsStore{
		clientEmail:   clientEmail,
		privateKey:    privateKey,
		spreadsheetID: spreadsheetID,
		log:           log,
		now:           time.Now,
	}
}

// Name identifies the backend in API responses
func (s *SheetsStore) Name() string { return domain.SourceGoogleSheets }

// IsConfigured reports whether all three credential fields are present
func (s *SheetsStore) IsConfigured() bool {
	return s.clientEmail != "" && s.privateKey != "" && s.spreadsheetID != ""
}

// service lazily builds the Sheets API client from the service-account
// credentials. Private keys arriving via env vars carry literal \n
// sequences that must be unescaped.
func (s *SheetsStore) service(ctx context.Context) (*sheetsv4.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return s.srv, nil
	}
	if !s.IsConfigured() {
		return nil, fmt.Errorf("google sheets not configured: %w", ErrUnavailable)
	}

	conf := &jwt.Config{
		Email:      s.clientEmail,
		PrivateKey: []byte(strings.ReplaceAll(s.privateKey, `\n`, "\n")),
		Scopes:     []string{sheetsv4.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	srv, err := sheetsv4.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, unavailable("create sheets client", err)
	}
	s.srv = srv
	return srv, nil
}

// Append commits a record to the quarter tab derived from its event
// date, creating and seeding the tab if needed.
func (s *SheetsStore) Append(ctx context.Context, rec domain.ActivityRecord) (domain.ActivityRecord, error) {
	srv, err := s.service(ctx)
	if err != nil {
		return domain.ActivityRecord{}, err
	}

	quarter := QuarterKey(rec.EventDate, s.now())
	if err := s.ensureTab(ctx, srv, quarter); err != nil {
		return domain.ActivityRecord{}, err
	}

	rec.ID = uuid.NewString()
	rec.Timestamp = s.now().UTC().Format(time.RFC3339)

	row := []interface{}{
		rec.ID, rec.Timestamp, rec.Name, rec.SlackHandle, rec.Role,
		rec.EventName, rec.EventDate, rec.Points, rec.Notes,
	}
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err = srv.Spreadsheets.Values.Append(s.spreadsheetID, quarter+"!"+sheetColumns, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return domain.ActivityRecord{}, unavailable("append row", err)
	}

	s.log.WithFields(map[string]interface{}{
		"id":      rec.ID,
		"quarter": quarter,
	}).Debug("Activity written to Google Sheets")

	return rec, nil
}

// List returns up to limit records from a quarter tab, newest first.
// An empty quarter reads the current one. A tab that was never created
// simply yields no records.
func (s *SheetsStore) List(ctx context.Context, limit int, quarter string) ([]domain.ActivityRecord, error) {
	srv, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	if quarter == "" {
		quarter = QuarterKey("", s.now())
	}

	resp, err := srv.Spreadsheets.Values.Get(s.spreadsheetID, quarter+"!A2:I").Context(ctx).Do()
	if err != nil {
		if isMissingTab(err) {
			return []domain.ActivityRecord{}, nil
		}
		return nil, unavailable("read rows", err)
	}

	records := make([]domain.ActivityRecord, 0, len(resp.Values))
	// rows are stored oldest first, reverse for newest-first
	for i := len(resp.Values) - 1; i >= 0; i-- {
		records = append(records, recordFromRow(resp.Values[i]))
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records, nil
}

// Clear wipes the given quarter tab, or every quarter tab when no
// quarter is given. The header row is kept.
func (s *SheetsStore) Clear(ctx context.Context, quarter string) error {
	srv, err := s.service(ctx)
	if err != nil {
		return err
	}

	quarters := []string{quarter}
	if quarter == "" {
		if quarters, err = s.ListPartitions(ctx); err != nil {
			return err
		}
	}

	for _, q := range quarters {
		_, err := srv.Spreadsheets.Values.Clear(s.spreadsheetID, q+"!A2:I", &sheetsv4.ClearValuesRequest{}).
			Context(ctx).
			Do()
		if err != nil && !isMissingTab(err) {
			return unavailable("clear rows", err)
		}
	}
	return nil
}

// ListPartitions returns the quarter tabs present in the spreadsheet,
// ignoring any tab whose name is not a quarter key.
func (s *SheetsStore) ListPartitions(ctx context.Context) ([]string, error) {
	srv, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := srv.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, unavailable("list tabs", err)
	}

	quarters := []string{}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && IsQuarterKey(sheet.Properties.Title) {
			quarters = append(quarters, sheet.Properties.Title)
		}
	}
	return quarters, nil
}

// ensureTab creates the quarter tab if absent and seeds the header row
// when the tab is empty.
func (s *SheetsStore) ensureTab(ctx context.Context, srv *sheetsv4.Service, title string) error {
	meta, err := srv.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return unavailable("inspect spreadsheet", err)
	}

	exists := false
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			exists = true
			break
		}
	}

	if !exists {
		req := &sheetsv4.BatchUpdateSpreadsheetRequest{
			Requests: []*sheetsv4.Request{{
				AddSheet: &sheetsv4.AddSheetRequest{
					Properties: &sheetsv4.SheetProperties{Title: title},
				},
			}},
		}
		if _, err := srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
			return unavailable("create tab", err)
		}
		s.log.WithField("quarter", title).Info("Created spreadsheet tab for new quarter")
	}

	head, err := srv.Spreadsheets.Values.Get(s.spreadsheetID, title+"!A1:I1").Context(ctx).Do()
	if err != nil {
		return unavailable("read header", err)
	}
	if len(head.Values) == 0 {
		vr := &sheetsv4.ValueRange{Values: [][]interface{}{sheetHeader}}
		_, err := srv.Spreadsheets.Values.Update(s.spreadsheetID, title+"!A1:I1", vr).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return unavailable("seed header", err)
		}
	}
	return nil
}

func recordFromRow(row []interface{}) domain.ActivityRecord {
	points, _ := strconv.Atoi(cell(row, 7))
	return domain.ActivityRecord{
		ID:          cell(row, 0),
		Timestamp:   cell(row, 1),
		Name:        cell(row, 2),
		SlackHandle: cell(row, 3),
		Role:        cell(row, 4),
		EventName:   cell(row, 5),
		EventDate:   cell(row, 6),
		Points:      points,
		Notes:       cell(row, 8),
	}
}

func cell(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}

// isMissingTab detects the 400 the Values API returns when a range
// names a tab that does not exist yet.
func isMissingTab(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 400 {
		return strings.Contains(gerr.Message, "Unable to parse range")
	}
	return false
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
