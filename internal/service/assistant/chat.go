package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cg-backend/internal/domain"
	"cg-backend/internal/service/faq"
	"cg-backend/pkg/logger"
)

const (
	defaultChatBaseURL = "https://router.huggingface.co/v1"
	defaultChatModel   = "Qwen/Qwen2.5-7B-Instruct"

	// MaxStreamDuration bounds one streamed completion end to end
	MaxStreamDuration = 30 * time.Second
)

// ChatService proxies conversations to an OpenAI-compatible chat
// completions endpoint and streams the reply token by token.
type ChatService struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
	log     *logger.Logger
	now     func() time.Time
}

// NewChatService creates the streaming assistant proxy
func NewChatService(apiKey string, log *logger.Logger) *ChatService {
	return &ChatService{
		baseURL: defaultChatBaseURL,
		model:   defaultChatModel,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: MaxStreamDuration},
		log:     log,
		now:     time.Now,
	}
}

// IsConfigured reports whether the provider API key is present
func (s *ChatService) IsConfigured() bool {
	return s.apiKey != ""
}

// Stream sends the conversation to the model and invokes flush for
// every content chunk as it arrives. The Culture Guides system prompt
// is prepended so the model answers from the same tables the scripted
// responder uses.
func (s *ChatService) Stream(ctx context.Context, messages []domain.ChatMessage, flush func(string)) error {
	if !s.IsConfigured() {
		return fmt.Errorf("chat provider API key not configured")
	}

	today := s.now().Format("Monday, January 2, 2006")
	payload := map[string]interface{}{
		"model":  s.model,
		"stream": true,
		"messages": append(
			[]map[string]string{{"role": "system", "content": faq.SystemPrompt(today)}},
			chatMessages(messages)...,
		),
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("chat provider call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chat provider status %d: %s", resp.StatusCode, data)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := line[len("data: "):]
		if data == "[DONE]" {
			break
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			s.log.WithError(err).Debug("Skipping malformed stream chunk")
			continue
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			flush(chunk.Choices[0].Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read chat stream: %w", err)
	}
	return nil
}

func chatMessages(messages []domain.ChatMessage) []map[string]string {
	out := make([]map[string]string, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role == "" {
			role = "user"
		}
		out = append(out, map[string]string{"role": role, "content": m.Content})
	}
	return out
}
