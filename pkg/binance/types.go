package binance

// ExchangeInfoResponse is the subset of GET /api/v3/exchangeInfo we read.
type ExchangeInfoResponse struct {
	Timezone   string `json:"timezone"`
	ServerTime int64  `json:"serverTime"` // ms since epoch
	Symbols    []struct {
		Symbol     string `json:"symbol"`     // e.g. "ETHUSDT"
		Status     string `json:"status"`     // "TRADING", "BREAK", ...
		BaseAsset  string `json:"baseAsset"`  // e.g. "ETH"
		QuoteAsset string `json:"quoteAsset"` // e.g. "USDT"
	} `json:"symbols"`
}

// APIError is the error body returned with non-2xx responses.
type APIError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
