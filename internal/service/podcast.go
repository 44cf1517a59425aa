package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "cg-backend/pkg/errors"
	"cg-backend/pkg/logger"
)

// podcastFileID is the Google Drive id of the published episode
const podcastFileID = "1-Eog4zwEEl6oXPJ8Btuo_mg3JvK6z6L7"

const driveFilesURL = "https://www.googleapis.com/drive/v3/files"

// PodcastMetadata mirrors the Drive file fields we expose
type PodcastMetadata struct {
	Name        string `json:"name"`
	Size        string `json:"size,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	CreatedTime string `json:"createdTime,omitempty"`
}

// PodcastInfo is the episode description served to clients
type PodcastInfo struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	AudioURL    string          `json:"audioUrl"`
	Metadata    PodcastMetadata `json:"metadata"`
}

// PodcastService fetches episode metadata from the Google Drive API
type PodcastService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

// NewPodcastService creates the service. apiKey may be empty, in which
// case metadata falls back to the static defaults.
func NewPodcastService(apiKey string, log *logger.Logger) *PodcastService {
	return &PodcastService{
		apiKey:  apiKey,
		baseURL: driveFilesURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Episode returns the podcast description with live Drive metadata when
// the API key is configured and Drive is reachable.
func (s *PodcastService) Episode(ctx context.Context) (PodcastInfo, error) {
	info := PodcastInfo{
		Title:       "Ohana Connect - The Culture Guides",
		Description: "An inspiring conversation on how we shape the future of work at Salesforce through our Ohana culture.",
		AudioURL:    fmt.Sprintf("https://drive.google.com/uc?export=download&id=%s", podcastFileID),
		Metadata:    PodcastMetadata{Name: "Ohana Connect Episode"},
	}

	if s.apiKey == "" {
		return info, nil
	}

	meta, err := s.fetchMetadata(ctx)
	if err != nil {
		return PodcastInfo{}, apperrors.NewInternalError("Failed to fetch podcast data", err)
	}
	if meta.Name != "" {
		info.Metadata.Name = meta.Name
	}
	info.Metadata.Size = meta.Size
	info.Metadata.MimeType = meta.MimeType
	info.Metadata.CreatedTime = meta.CreatedTime
	return info, nil
}

func (s *PodcastService) fetchMetadata(ctx context.Context) (PodcastMetadata, error) {
	q := url.Values{}
	q.Set("key", s.apiKey)
	q.Set("fields", "name,size,mimeType,createdTime")
	endpoint := fmt.Sprintf("%s/%s?%s", s.baseURL, podcastFileID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PodcastMetadata{}, fmt.Errorf("build drive request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return PodcastMetadata{}, fmt.Errorf("drive request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PodcastMetadata{}, fmt.Errorf("drive metadata: unexpected status %d", resp.StatusCode)
	}

	var meta PodcastMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return PodcastMetadata{}, fmt.Errorf("decode drive metadata: %w", err)
	}
	return meta, nil
}
