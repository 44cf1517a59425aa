package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Greeting(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()

	resp := e.Respond("hi", conv)

	assert.Equal(t, "Hello! I'm the Culture Guide Assistant. I'm ready to answer your questions about event planning, rewards points, sustainability, and hub leads.", resp.Answer)
	assert.Equal(t, []string{
		"What is the Culture Guides Program?",
		"Who is the Culture Guides Program Owner?",
		"Who is my hub lead?",
		"Who is my regional lead?",
	}, resp.Suggestions)
	assert.Equal(t, StateIdle, conv.State)
}

func TestEngine_HubLookupFlow(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()

	resp := e.Respond("who is my hub lead", conv)
	assert.Equal(t, "Happy to help! What city or hub are you in?", resp.Answer)
	assert.Equal(t, StateAwaitingHub, conv.State)

	resp = e.Respond("chicago", conv)
	assert.Equal(t, "The hub lead(s) for Chicago is @Lauren Prince.", resp.Answer)
	assert.Equal(t, StateIdle, conv.State)
}

func TestEngine_HubLookupUnknownCity(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()

	e.Respond("who is my hub lead", conv)
	resp := e.Respond("springfield", conv)

	assert.Contains(t, resp.Answer, "Springfield")
	assert.Contains(t, resp.Answer, "Region Lead")
	assert.Equal(t, StateIdle, conv.State)
}

func TestEngine_RegionLookupFlow(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()

	resp := e.Respond("who is my regional lead", conv)
	assert.Equal(t, "Of course! Which region are you in (AMER, EMEA, LATAM, APAC)?", resp.Answer)
	assert.Equal(t, StateAwaitingReg, conv.State)

	resp = e.Respond("emea", conv)
	assert.Equal(t, "The Region Lead for EMEA is @Steph Doel.", resp.Answer)
	assert.Equal(t, StateIdle, conv.State)
}

func TestEngine_RegionLookupUnknownRegion(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()

	e.Respond("who is my regional lead", conv)
	resp := e.Respond("narnia", conv)

	assert.Contains(t, resp.Answer, "AMER, EMEA, LATAM")
	assert.Equal(t, StateIdle, conv.State)
}

func TestEngine_DirectLookups(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "program owner",
			input: "who is the program owner",
			want:  "The Culture Guide Program Owner is @Steph Doel (who is also the EMEA Lead).",
		},
		{
			name:  "region beats hub in priority",
			input: "who is the lead for the amer region",
			want:  "The Region Lead for AMER is @Lauren Prince.",
		},
		{
			name:  "single hub lead uses is",
			input: "who is the hub lead for tokyo",
			want:  "The hub lead(s) for Tokyo is @Midori Tokioka.",
		},
		{
			name:  "multiple hub leads use are",
			input: "who is the lead for nyc",
			want:  "The hub lead(s) for Nyc are @Clara Kobashigawa & @Noa Golden.",
		},
		{
			name:  "lead needed sentinel escalates",
			input: "who is the hub lead for stockholm",
			want:  "A lead is currently needed for Stockholm. If you're interested, you should reach out to your Region Lead.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			conv := NewConversation()
			resp := e.Respond(tt.input, conv)
			assert.Equal(t, tt.want, resp.Answer)
			assert.Equal(t, StateIdle, conv.State)
		})
	}
}

func TestEngine_KnowledgeBaseFirstMatchWins(t *testing.T) {
	e := NewEngine()

	resp := e.Respond("how do i get points", NewConversation())
	assert.Contains(t, resp.Answer, "100 for project managing")

	resp = e.Respond("tell me about sustainability", NewConversation())
	assert.Contains(t, resp.Answer, "Salesforce Event Sustainability Playbook")
}

func TestEngine_Fallback(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()

	resp := e.Respond("what is the airspeed of an unladen swallow", conv)

	assert.Equal(t, fallbackAnswer, resp.Answer)
	assert.Empty(t, resp.Suggestions)
	assert.Equal(t, StateIdle, conv.State)
}

func TestEngine_SuggestionsFilterAskedQuestions(t *testing.T) {
	e := NewEngine()
	conv := NewConversation()

	first := e.Respond("hi", conv)
	require.Contains(t, first.Suggestions, "Who is my hub lead?")

	// asking a suggested question removes it from later suggestion lists
	e.Respond("Who is my hub lead?", conv)
	e.Respond("chicago", conv)

	again := e.Respond("hello there", conv)
	assert.NotContains(t, again.Suggestions, "Who is my hub lead?")
	assert.Contains(t, again.Suggestions, "Who is my regional lead?")
	assert.LessOrEqual(t, len(again.Suggestions), 4)
}

func TestEngine_ThanksHasNoSuggestions(t *testing.T) {
	e := NewEngine()

	resp := e.Respond("thank you", NewConversation())

	assert.Equal(t, "You're welcome! I'm here if you have any more questions. Happy to help!", resp.Answer)
	assert.Empty(t, resp.Suggestions)
}

func TestEngine_Deterministic(t *testing.T) {
	e := NewEngine()

	a := e.Respond("who is the lead for denver", NewConversation())
	b := e.Respond("who is the lead for denver", NewConversation())

	assert.Equal(t, a, b)
}
