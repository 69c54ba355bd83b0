package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"
)

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetTradingSymbols returns the lower-cased spot pairs quoted in quoteAsset
// that are currently trading, sorted by name.
func (c *RESTClient) GetTradingSymbols(ctx context.Context, quoteAsset string) ([]string, error) {
	endpoint := c.baseURL + "/api/v3/exchangeInfo"

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Msg != "" {
			return nil, fmt.Errorf("binance error %d: %s", apiErr.Code, apiErr.Msg)
		}
		return nil, fmt.Errorf("binance error: %s: %s", resp.Status, body)
	}

	var info ExchangeInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	seen := map[string]bool{}
	var symbols []string
	for _, s := range info.Symbols {
		if s.Status != "TRADING" || s.QuoteAsset != quoteAsset {
			continue
		}
		sym := NormalizeSymbol(s.Symbol)
		if !seen[sym] {
			symbols = append(symbols, sym)
			seen[sym] = true
		}
	}
	sort.Strings(symbols)

	return symbols, nil
}
