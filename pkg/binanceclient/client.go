/**
 * @description
 * This package provides a client for the Binance P2P advert search API, used
 * to fetch a near-real-time USDT/VES quote. It is a one-shot, best-effort
 * fetch: the caller treats any failure as "quote unavailable".
 */
package binanceclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseURL is Binance's public P2P advert search endpoint.
const DefaultBaseURL = "https://p2p.binance.com/bapi/c2c/v2/friendly/c2c/adv/search"

// ErrNoAdverts is returned when the search succeeds but carries no adverts.
var ErrNoAdverts = errors.New("binance p2p search returned no adverts")

// Client is a client for the Binance P2P API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new Binance P2P client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// searchRequest is the advert search payload. The first SELL advert's price
// is the quote the dashboard displays.
type searchRequest struct {
	Asset     string `json:"asset"`
	Fiat      string `json:"fiat"`
	TradeType string `json:"tradeType"`
	Page      int    `json:"page"`
	Rows      int    `json:"rows"`
}

// searchResponse is the subset of the advert search response we consume.
// Binance returns the advert price as a decimal string.
type searchResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		Adv struct {
			Price string `json:"price"`
		} `json:"adv"`
	} `json:"data"`
}

// FetchP2PPrice fetches the current USDT/VES sell price from Binance P2P.
func (c *Client) FetchP2PPrice(ctx context.Context) (float64, error) {
	payload := searchRequest{
		Asset:     "USDT",
		Fiat:      "VES",
		TradeType: "SELL",
		Page:      1,
		Rows:      1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call binance p2p: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("binance p2p returned status %d", resp.StatusCode)
	}

	var search searchResponse
	if err := json.Unmarshal(raw, &search); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	if !search.Success || len(search.Data) == 0 {
		return 0, ErrNoAdverts
	}

	price, err := strconv.ParseFloat(search.Data[0].Adv.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse advert price %q: %w", search.Data[0].Adv.Price, err)
	}
	return price, nil
}
