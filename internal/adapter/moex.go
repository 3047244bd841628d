package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"finchbot/internal/domain"
)

// fetchTimeout bounds a single index lookup. There are no retries; a slow or
// failed fetch degrades to the caller's default return values.
const fetchTimeout = 10 * time.Second

// MOEXClient implements MarketDataService against the MOEX ISS API
type MOEXClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewMOEXClient creates a new MOEX index value client
func NewMOEXClient(baseURL string, log zerolog.Logger) domain.MarketDataService {
	return &MOEXClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		log: log.With().Str("component", "moex_client").Logger(),
	}
}

// indexValuesResponse mirrors the ISS values payload. Values arrive as
// strings or numbers depending on the index, so json.Number covers both.
type indexValuesResponse struct {
	Values []struct {
		Value json.Number `json:"value"`
	} `json:"values"`
}

// GetIndexValue fetches the current value of an index by code. Any failure
// (transport, status, payload shape) reports the value as unavailable rather
// than returning an error; the caller falls back to defaults.
func (c *MOEXClient) GetIndexValue(ctx context.Context, code string) (float64, bool) {
	url := fmt.Sprintf("%s/iss/engines/stock/markets/index/indices/%s/values.json", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Debug().Err(err).Str("index", code).Msg("Failed to create index request")
		return 0, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("index", code).Msg("Index fetch failed")
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug().Int("status", resp.StatusCode).Str("index", code).Msg("Index fetch returned non-OK status")
		return 0, false
	}

	var payload indexValuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Debug().Err(err).Str("index", code).Msg("Failed to decode index response")
		return 0, false
	}

	if len(payload.Values) == 0 {
		c.log.Debug().Str("index", code).Msg("Index response contains no values")
		return 0, false
	}

	value, err := payload.Values[0].Value.Float64()
	if err != nil {
		c.log.Debug().Err(err).Str("index", code).Msg("Index value is not numeric")
		return 0, false
	}

	return value, true
}
