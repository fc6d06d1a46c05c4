package internal

import "time"

// Actor values for conversation messages.
const (
	ActorUser      = "user"
	ActorAssistant = "assistant"
)

// Mode selects how the backend interprets a query.
type Mode string

const (
	ModeSystem  Mode = "system"  // query operational/system data
	ModeGeneral Mode = "general" // free-form questions
)

// ViewType selects the rendering strategy applied to every dataset in the
// session. It is session-scoped: switching it affects all expanded datasets
// at once.
type ViewType string

const (
	ViewCards  ViewType = "cards"
	ViewTable  ViewType = "table"
	ViewCharts ViewType = "charts"
)

// ParseViewType validates a view type string, defaulting to cards.
func ParseViewType(s string) ViewType {
	switch ViewType(s) {
	case ViewTable:
		return ViewTable
	case ViewCharts:
		return ViewCharts
	default:
		return ViewCards
	}
}

// Message is one entry of the conversation log. Messages are immutable once
// appended; the log only ever grows until Clear.
type Message struct {
	ID        int       `json:"id"`
	Actor     string    `json:"actor"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Success   *bool     `json:"success,omitempty"` // unset for user messages
	Analysis  string    `json:"analysis,omitempty"`
	Error     string    `json:"error,omitempty"`
	Payload   *Payload  `json:"payload,omitempty"`
}

// Datasets returns the qualifying datasets of the message payload, if any.
func (m *Message) Datasets() []Dataset {
	if m.Payload == nil {
		return nil
	}
	return m.Payload.Datasets()
}

// QueryResult is the resolved outcome of one backend query. A failed query
// still produces a result, with Success=false and Error set.
type QueryResult struct {
	Success  bool           `json:"success"`
	Response string         `json:"response,omitempty"`
	Analysis string         `json:"analysis,omitempty"`
	Data     *Payload       `json:"data,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Capabilities is the session-start introduction from the backend, rendered
// verbatim.
type Capabilities struct {
	Intro        string   `json:"intro"`
	Capabilities []string `json:"capabilities"`
	Examples     []string `json:"examples"`
}
