package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cg-backend/internal/domain"
	"cg-backend/internal/service/faq"
)

// maxSessions bounds the in-memory conversation table. Sessions are
// small, so a blunt reset when the table fills is acceptable.
const maxSessions = 1000

// FAQService keys FAQ conversations by session id so the multi-turn
// hub and region lookups survive across requests.
type FAQService struct {
	engine *faq.Engine

	mu       sync.Mutex
	sessions map[string]*faq.Conversation
	now      func() time.Time
}

// NewFAQService creates the service over the built-in knowledge tables
func NewFAQService() *FAQService {
	return &FAQService{
		engine:   faq.NewEngine(),
		sessions: make(map[string]*faq.Conversation),
		now:      time.Now,
	}
}

// Respond answers one user turn. An empty session id starts a fresh
// conversation; an empty message returns the greeting.
func (s *FAQService) Respond(sessionID, message string) domain.FAQResponse {
	s.mu.Lock()
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	conv, ok := s.sessions[sessionID]
	if !ok {
		if len(s.sessions) >= maxSessions {
			s.sessions = make(map[string]*faq.Conversation)
		}
		conv = faq.NewConversation()
		s.sessions[sessionID] = conv
	}

	var resp faq.Response
	if strings.TrimSpace(message) == "" {
		resp = s.engine.Greeting()
	} else {
		resp = s.engine.Respond(message, conv)
	}
	s.mu.Unlock()

	return domain.FAQResponse{
		Success:            true,
		Response:           resp.Answer,
		SuggestedQuestions: resp.Suggestions,
		SessionID:          sessionID,
		Timestamp:          s.now().UTC().Format(time.RFC3339),
	}
}
