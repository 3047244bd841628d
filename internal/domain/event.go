package domain

// EventKind distinguishes slash commands from inline keyboard selections
type EventKind string

// Event kinds
const (
	EventCommand        EventKind = "COMMAND"
	EventOptionSelected EventKind = "OPTION_SELECTED"
)

// Category identifies which dialogue an option selection belongs to.
// Callback payloads are decoded into a category once at the transport
// boundary; dialogue code never parses identifier strings.
type Category string

// Selection categories
const (
	CategoryHorizon Category = "HORIZON"
	CategoryGoal    Category = "GOAL"
	CategoryAnswer  Category = "ANSWER"
)

// Event is an inbound user event delivered by the transport.
type Event struct {
	ChatID int64
	Kind   EventKind

	// Command fields (Kind == EventCommand)
	Command string
	Name    string // sender's first name, used on registration

	// Selection fields (Kind == EventOptionSelected)
	Category   Category
	Ordinal    int    // 1..3
	CallbackID string // opaque id to acknowledge the selection
}

// Choice is a labeled option attached to an outbound message. Data is the
// opaque identifier echoed back when the user selects it.
type Choice struct {
	Label string
	Data  string
}
