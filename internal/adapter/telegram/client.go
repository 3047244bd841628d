package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"finchbot/internal/domain"
)

const apiBaseURL = "https://api.telegram.org"

// Client implements the Messenger interface over the Telegram Bot API.
// No bot framework is used; the API surface this bot needs is small.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	// lastMsg tracks the most recent keyboard message per chat so that
	// EditLastMessage can rewrite it in place.
	mu      sync.Mutex
	lastMsg map[int64]int
}

// NewClient creates a new Telegram Bot API client
func NewClient(token string, log zerolog.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: apiBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log:     log.With().Str("component", "telegram").Logger(),
		lastMsg: make(map[int64]int),
	}
}

type inlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type sendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type editMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	MessageID   int                   `json:"message_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *inlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type answerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
}

type botCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

type setMyCommandsRequest struct {
	Commands []botCommand `json:"commands"`
}

type sendMessageResult struct {
	MessageID int `json:"message_id"`
}

// keyboard builds a vertical inline keyboard, one choice per row.
func keyboard(choices []domain.Choice) *inlineKeyboardMarkup {
	if len(choices) == 0 {
		return nil
	}

	rows := make([][]inlineKeyboardButton, 0, len(choices))
	for _, choice := range choices {
		rows = append(rows, []inlineKeyboardButton{{
			Text:         choice.Label,
			CallbackData: choice.Data,
		}})
	}
	return &inlineKeyboardMarkup{InlineKeyboard: rows}
}

// SendMessage sends a text message, optionally with inline choices
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, choices ...domain.Choice) error {
	payload := sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard(choices),
	}

	var result sendMessageResult
	if err := c.call(ctx, "sendMessage", payload, &result); err != nil {
		return err
	}

	if len(choices) > 0 {
		c.mu.Lock()
		c.lastMsg[chatID] = result.MessageID
		c.mu.Unlock()
	}

	return nil
}

// EditLastMessage rewrites the most recent keyboard message in the chat.
// If no such message is known (e.g. after a restart) it sends a new message
// instead.
func (c *Client) EditLastMessage(ctx context.Context, chatID int64, text string, choices ...domain.Choice) error {
	c.mu.Lock()
	messageID, ok := c.lastMsg[chatID]
	c.mu.Unlock()

	if !ok {
		return c.SendMessage(ctx, chatID, text, choices...)
	}

	payload := editMessageRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: keyboard(choices),
	}

	return c.call(ctx, "editMessageText", payload, nil)
}

// AnswerCallback acknowledges an option selection
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	payload := answerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
	}

	return c.call(ctx, "answerCallbackQuery", payload, nil)
}

// SetMyCommands registers the bot command menu
func (c *Client) SetMyCommands(ctx context.Context) error {
	payload := setMyCommandsRequest{
		Commands: []botCommand{
			{Command: "start", Description: "🚀 Get started with the bot"},
			{Command: "risk_profile", Description: "📊 Determine your risk profile"},
			{Command: "portfolio", Description: "💼 Build your investment portfolio"},
		},
	}

	return c.call(ctx, "setMyCommands", payload, nil)
}

// call posts a Bot API method and decodes the result envelope.
func (c *Client) call(ctx context.Context, method string, payload, result interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error on %s (status %d): %s", method, resp.StatusCode, string(body))
	}

	if result == nil {
		return nil
	}

	var envelope struct {
		OK     bool            `json:"ok"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram API returned ok=false on %s", method)
	}

	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}

	return nil
}
