// Package faq implements the scripted Culture Guides responder: a
// keyword matcher over a fixed knowledge base plus a small state
// machine for multi-turn hub and region lead lookups. It performs no
// I/O; a response is a pure function of the input and conversation.
package faq

import (
	"fmt"
	"strings"
	"unicode"
)

// State is the multi-turn lookup state of a conversation
type State string

const (
	StateIdle        State = "idle"
	StateAwaitingHub State = "awaiting_hub_name"
	StateAwaitingReg State = "awaiting_region_name"
)

// maxSuggestions caps the follow-up questions offered per response
const maxSuggestions = 4

const fallbackAnswer = "I'm sorry, I can only answer questions about the Culture Guide program. Try asking about event planning, rewards points, or who the lead is for a specific hub."

// triggerPhrases mark an input as a lead lookup rather than a general question
var triggerPhrases = []string{
	"lead for", "who is the lead", "hub lead", "contact for",
	"program owner", "global lead", "regional lead",
}

// Conversation tracks one user session: the pending lookup state and
// which suggested questions were already asked.
type Conversation struct {
	State State
	asked map[string]bool
}

// NewConversation starts an idle conversation
func NewConversation() *Conversation {
	return &Conversation{State: StateIdle, asked: make(map[string]bool)}
}

// Response is one bot turn
type Response struct {
	Answer      string
	Suggestions []string
}

// Engine resolves user input against the knowledge tables
type Engine struct {
	hubs    []Lead
	regions []Lead
	kb      []Entry
}

// NewEngine creates an engine over the built-in knowledge tables
func NewEngine() *Engine {
	return &Engine{hubs: HubLeads, regions: RegionLeads, kb: KnowledgeBase}
}

// Greeting returns the canned opening message
func (e *Engine) Greeting() Response {
	first := e.kb[0]
	return Response{Answer: first.Answer, Suggestions: first.Suggestions}
}

// Respond consumes one user turn, advances the conversation state and
// returns the answer with de-duplicated follow-up suggestions.
func (e *Engine) Respond(input string, conv *Conversation) Response {
	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)
	conv.asked[lower] = true

	var resp Response
	switch conv.State {
	case StateAwaitingHub:
		// whatever the user typed is the hub name
		resp = e.resolveHub(input)
		conv.State = StateIdle
	case StateAwaitingReg:
		resp = e.resolveRegion(input)
		conv.State = StateIdle
	default:
		var next State
		resp, next = e.respondIdle(lower)
		conv.State = next
	}

	resp.Suggestions = conv.filterSuggestions(resp.Suggestions)
	return resp
}

// respondIdle handles input with no lookup pending. Lead-lookup intent
// takes priority over the general knowledge base: program owner first,
// then explicit region names, then explicit hub names.
func (e *Engine) respondIdle(lower string) (Response, State) {
	if containsAny(lower, triggerPhrases) {
		if strings.Contains(lower, "my hub") {
			return Response{Answer: "Happy to help! What city or hub are you in?"}, StateAwaitingHub
		}
		if strings.Contains(lower, "my region") || strings.Contains(lower, "regional lead") {
			return Response{Answer: "Of course! Which region are you in (AMER, EMEA, LATAM, APAC)?"}, StateAwaitingReg
		}
		if strings.Contains(lower, "global") || strings.Contains(lower, "owner") || strings.Contains(lower, "charge of the program") {
			return Response{
				Answer: "The Culture Guide Program Owner is @Steph Doel (who is also the EMEA Lead).",
				Suggestions: []string{
					"Who is the lead for my region?",
					"How are hub leads different?",
					"What are the marquee events?",
				},
			}, StateIdle
		}
		for _, region := range e.regions {
			if strings.Contains(lower, region.Key) {
				return regionAnswer(region), StateIdle
			}
		}
		for _, hub := range e.hubs {
			if strings.Contains(lower, hub.Key) {
				return hubAnswer(hub), StateIdle
			}
		}
	}

	for _, entry := range e.kb {
		if containsAny(lower, entry.Keywords) {
			return Response{Answer: entry.Answer, Suggestions: entry.Suggestions}, StateIdle
		}
	}

	return Response{Answer: fallbackAnswer}, StateIdle
}

// resolveHub answers a hub name given in response to the clarifying
// question. Unknown cities get an explicit not-found answer, never a
// different city's lead.
func (e *Engine) resolveHub(input string) Response {
	lower := strings.ToLower(strings.TrimSpace(input))
	for _, hub := range e.hubs {
		if strings.Contains(lower, hub.Key) {
			return hubAnswer(hub)
		}
	}
	return Response{
		Answer:      fmt.Sprintf("I don't have a hub lead listed for %s. Your Region Lead is the best contact to help you connect with a nearby hub.", capitalize(input)),
		Suggestions: []string{"Who is my regional lead?"},
	}
}

// resolveRegion answers a region name given in response to the
// clarifying question.
func (e *Engine) resolveRegion(input string) Response {
	lower := strings.ToLower(strings.TrimSpace(input))
	for _, region := range e.regions {
		if strings.Contains(lower, region.Key) {
			return regionAnswer(region)
		}
	}
	return Response{
		Answer:      "I don't recognize that region. The Culture Guides regions are AMER, EMEA, LATAM, and APAC.",
		Suggestions: []string{"Who is the lead for the AMER region?"},
	}
}

func hubAnswer(hub Lead) Response {
	suggestions := []string{
		"How do I get rewards points?",
		"What are the sustainability rules?",
	}

	if hub.Name == leadNeeded || strings.Contains(hub.Name, "("+leadNeeded+")") {
		return Response{
			Answer:      fmt.Sprintf("A lead is currently needed for %s. If you're interested, you should reach out to your Region Lead.", capitalize(hub.Key)),
			Suggestions: suggestions,
		}
	}

	// multiple leads take a plural verb
	verb := "is"
	if strings.ContainsAny(hub.Name, "&,") {
		verb = "are"
	}
	return Response{
		Answer:      fmt.Sprintf("The hub lead(s) for %s %s %s.", capitalize(hub.Key), verb, hub.Name),
		Suggestions: suggestions,
	}
}

func regionAnswer(region Lead) Response {
	return Response{
		Answer: fmt.Sprintf("The Region Lead for %s is %s.", strings.ToUpper(region.Key), region.Name),
		Suggestions: []string{
			"Who is the lead for a specific city?",
			"What are the rewards for guides?",
			"How do I plan an event?",
		},
	}
}

// filterSuggestions drops questions this session already asked
// (case-insensitive) and caps what remains.
func (c *Conversation) filterSuggestions(suggestions []string) []string {
	kept := make([]string, 0, len(suggestions))
	for _, q := range suggestions {
		if !c.asked[strings.ToLower(q)] {
			kept = append(kept, q)
		}
	}
	if len(kept) > maxSuggestions {
		kept = kept[:maxSuggestions]
	}
	return kept
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
