package bybit

import "encoding/json"

// envelope is the common Bybit v5 response wrapper.
type envelope struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
}

// klineResult holds kline rows as Bybit returns them: newest first, each row
// [startTime, open, high, low, close, volume, turnover] as strings.
type klineResult struct {
	Category string     `json:"category"`
	Symbol   string     `json:"symbol"`
	List     [][]string `json:"list"`
}

type tickersResult struct {
	Category string        `json:"category"`
	List     []tickerEntry `json:"list"`
}

type tickerEntry struct {
	Symbol      string `json:"symbol"`
	LastPrice   string `json:"lastPrice"`
	FundingRate string `json:"fundingRate"`
	Turnover24h string `json:"turnover24h"`
	Volume24h   string `json:"volume24h"`
}
