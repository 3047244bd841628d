package domain

import "context"

// MarketDataService defines the interface for live market index lookups
type MarketDataService interface {
	// GetIndexValue fetches the current value of an index by code.
	// ok is false on any fetch failure (timeout, bad status, malformed
	// payload); callers substitute default returns.
	GetIndexValue(ctx context.Context, code string) (value float64, ok bool)
}

// Messenger defines the outbound messaging interface consumed by dialogues
type Messenger interface {
	// SendMessage sends a text message, optionally with inline choices
	SendMessage(ctx context.Context, chatID int64, text string, choices ...Choice) error

	// EditLastMessage rewrites the most recent keyboard message in the chat
	EditLastMessage(ctx context.Context, chatID int64, text string, choices ...Choice) error

	// AnswerCallback acknowledges an option selection, optionally with a
	// short notification text
	AnswerCallback(ctx context.Context, callbackID, text string) error
}
