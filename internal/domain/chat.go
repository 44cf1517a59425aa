package domain

// ChatMessage is one turn of an assistant conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest accepts either a full message list or a single message
type ChatRequest struct {
	Messages []ChatMessage `json:"messages,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// FAQRequest is one user turn against the scripted FAQ responder
type FAQRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// FAQResponse carries the answer plus follow-up suggestions for the session
type FAQResponse struct {
	Success            bool     `json:"success"`
	Response           string   `json:"response"`
	SuggestedQuestions []string `json:"suggestedQuestions"`
	SessionID          string   `json:"sessionId"`
	Timestamp          string   `json:"timestamp"`
}
