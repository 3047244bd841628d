package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finchbot/internal/domain"
)

// pollTimeout is the Bot API long-poll wait, in seconds.
const pollTimeout = 30

type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int    `json:"message_id"`
		Text      string `json:"text"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From struct {
			FirstName string `json:"first_name"`
		} `json:"from"`
	} `json:"message"`
	CallbackQuery *struct {
		ID      string `json:"id"`
		Data    string `json:"data"`
		Message *struct {
			MessageID int `json:"message_id"`
			Chat      struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"callback_query"`
}

type getUpdatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

// Poll runs the getUpdates long-poll loop until ctx is cancelled, invoking
// handler for each decoded event. Updates that decode to no event (unknown
// commands, foreign callback payloads) are dropped at this boundary.
func (c *Client) Poll(ctx context.Context, handler func(context.Context, domain.Event)) {
	// Long polls need a client timeout above the poll wait.
	pollClient := &http.Client{Timeout: (pollTimeout + 10) * time.Second}

	var offset int64
	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("Polling stopped")
			return
		default:
		}

		updates, err := c.getUpdates(ctx, pollClient, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Error().Err(err).Msg("getUpdates failed, backing off")
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}

			event, ok := c.decodeUpdate(u)
			if !ok {
				continue
			}

			go handler(ctx, event)
		}
	}
}

func (c *Client) getUpdates(ctx context.Context, client *http.Client, offset int64) ([]update, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates?timeout=%d&offset=%d", c.baseURL, c.token, pollTimeout, offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create getUpdates request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call getUpdates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("telegram API error on getUpdates (status %d): %s", resp.StatusCode, string(body))
	}

	var payload getUpdatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode getUpdates response: %w", err)
	}
	if !payload.OK {
		return nil, fmt.Errorf("telegram API returned ok=false on getUpdates")
	}

	return payload.Result, nil
}

// decodeUpdate turns a raw update into a tagged domain event. Compound
// callback identifiers (horizon_N, goal_N, bare N) are parsed here, once;
// dialogue code only ever sees the category and ordinal.
func (c *Client) decodeUpdate(u update) (domain.Event, bool) {
	if u.Message != nil && strings.HasPrefix(u.Message.Text, "/") {
		command := strings.TrimPrefix(strings.Fields(u.Message.Text)[0], "/")
		// Strip the @botname suffix used in group chats.
		if i := strings.Index(command, "@"); i >= 0 {
			command = command[:i]
		}

		return domain.Event{
			ChatID:  u.Message.Chat.ID,
			Kind:    domain.EventCommand,
			Command: command,
			Name:    u.Message.From.FirstName,
		}, true
	}

	if u.CallbackQuery != nil && u.CallbackQuery.Message != nil {
		chatID := u.CallbackQuery.Message.Chat.ID

		// The callback's message is the keyboard message to edit next.
		c.mu.Lock()
		c.lastMsg[chatID] = u.CallbackQuery.Message.MessageID
		c.mu.Unlock()

		category, ordinal, ok := parseCallbackData(u.CallbackQuery.Data)
		if !ok {
			return domain.Event{}, false
		}

		return domain.Event{
			ChatID:     chatID,
			Kind:       domain.EventOptionSelected,
			Category:   category,
			Ordinal:    ordinal,
			CallbackID: u.CallbackQuery.ID,
		}, true
	}

	return domain.Event{}, false
}

// parseCallbackData decodes a callback payload into its category and ordinal.
func parseCallbackData(data string) (domain.Category, int, bool) {
	switch {
	case strings.HasPrefix(data, "horizon_"):
		ordinal, err := strconv.Atoi(strings.TrimPrefix(data, "horizon_"))
		if err != nil {
			return "", 0, false
		}
		return domain.CategoryHorizon, ordinal, true

	case strings.HasPrefix(data, "goal_"):
		ordinal, err := strconv.Atoi(strings.TrimPrefix(data, "goal_"))
		if err != nil {
			return "", 0, false
		}
		return domain.CategoryGoal, ordinal, true

	default:
		ordinal, err := strconv.Atoi(data)
		if err != nil {
			return "", 0, false
		}
		return domain.CategoryAnswer, ordinal, true
	}
}
