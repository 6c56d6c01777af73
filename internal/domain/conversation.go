package domain

import "time"

type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

type MessageID uint64

type Message struct {
	ID     MessageID
	Text   string
	Author Author
	SentAt time.Time
}

// ReplyUnit is one element of an assistant reply batch. Units without text are not shown.
type ReplyUnit struct {
	RecipientID string `json:"recipient_id,omitempty"`
	Text        string `json:"text,omitempty"`
}

type AssistantRequest struct {
	Sender     string
	Message    string
	Credential string
}

const (
	AssistantGreeting = "Hello! I'm your driving license assistant. How can I help you today?"
	AssistantApology  = "Sorry, I'm experiencing some technical difficulties. Please try again or contact support if the issue persists."
)

// AssistantEcho is the reply used when the assistant returns nothing to show.
func AssistantEcho(query string) string {
	return "I understand you're asking about: '" + query + "'. I can help with license status, renewals, address updates, vehicle modifications, and general license information. What specific assistance do you need?"
}

type Suggestion struct {
	Label string
	Text  string
}

var AssistantSuggestions = []Suggestion{
	{Label: "Check Status", Text: "Check my license status"},
	{Label: "My license hasn't arrived Yet", Text: "I have not received my license"},
	{Label: "Renew License", Text: "Renew my license"},
	{Label: "Update Address", Text: "Update my address"},
}
