package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Screener/internal/model"
	httpclient "github.com/Alias1177/Screener/internal/platform/http"
)

const defaultBaseURL = "https://api.bybit.com"

// Client is the Bybit v5 market-data client for linear perpetuals.
type Client struct {
	baseURL    string
	category   string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Bybit client
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Bybit market-data client.
func NewClient(options ClientOptions) *Client {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:  baseURL,
		category: "linear",
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "bybit_client").Logger(),
	}
}

// GetInstruments fetches all USDT linear perpetual tickers with their current
// funding rate, sorted by symbol and deduplicated.
func (c *Client) GetInstruments(ctx context.Context) ([]model.Instrument, error) {
	query := url.Values{}
	query.Set("category", c.category)

	var result tickersResult
	if err := c.get(ctx, "/v5/market/tickers", query, &result); err != nil {
		return nil, fmt.Errorf("fetching tickers: %w", err)
	}

	seen := make(map[string]bool, len(result.List))
	var instruments []model.Instrument
	for _, entry := range result.List {
		if !strings.HasSuffix(entry.Symbol, "USDT") || seen[entry.Symbol] {
			continue
		}
		seen[entry.Symbol] = true

		rate, err := strconv.ParseFloat(entry.FundingRate, 64)
		if err != nil {
			c.logger.Warn().Str("symbol", entry.Symbol).Str("funding_rate", entry.FundingRate).Msg("Unparseable funding rate")
			rate = 0
		}
		instruments = append(instruments, model.Instrument{
			Symbol:      entry.Symbol,
			FundingRate: rate,
		})
	}

	sort.Slice(instruments, func(i, j int) bool {
		return instruments[i].Symbol < instruments[j].Symbol
	})

	c.logger.Debug().Int("count", len(instruments)).Msg("Fetched instruments")
	return instruments, nil
}

// GetKlines fetches candles for one symbol between startMs and endMs at the
// given interval ("1", "15", "D", ...), oldest first.
func (c *Client) GetKlines(ctx context.Context, symbol, interval string, startMs, endMs int64) ([]model.Candle, error) {
	query := url.Values{}
	query.Set("category", c.category)
	query.Set("symbol", symbol)
	query.Set("interval", interval)
	query.Set("start", strconv.FormatInt(startMs, 10))
	query.Set("end", strconv.FormatInt(endMs, 10))
	query.Set("limit", "1000")

	var result klineResult
	if err := c.get(ctx, "/v5/market/kline", query, &result); err != nil {
		return nil, fmt.Errorf("fetching klines for %s: %w", symbol, err)
	}

	candles := make([]model.Candle, 0, len(result.List))
	// Bybit returns rows newest first; walk backwards for oldest-first order.
	for i := len(result.List) - 1; i >= 0; i-- {
		candle, err := c.parseKlineRow(symbol, result.List[i])
		if err != nil {
			c.logger.Warn().Err(err).Str("symbol", symbol).Msg("Skipping unparseable kline row")
			continue
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

// GetDailyVolumeHistory fetches roughly 800 days of daily volumes for one
// symbol, oldest first.
func (c *Client) GetDailyVolumeHistory(ctx context.Context, symbol string) ([]model.DailyVolume, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -800)

	candles, err := c.GetKlines(ctx, symbol, "D", start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, err
	}

	volumes := make([]model.DailyVolume, len(candles))
	for i, candle := range candles {
		volumes[i] = model.DailyVolume{
			Timestamp: candle.StartTime,
			Volume:    candle.Volume,
		}
	}
	return volumes, nil
}

func (c *Client) parseKlineRow(symbol string, row []string) (model.Candle, error) {
	if len(row) < 7 {
		return model.Candle{}, fmt.Errorf("kline row has %d fields, want 7", len(row))
	}

	startMs, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return model.Candle{}, fmt.Errorf("parsing start time: %w", err)
	}

	values := make([]float64, 6)
	for i := 1; i < 7; i++ {
		values[i-1], err = strconv.ParseFloat(row[i], 64)
		if err != nil {
			return model.Candle{}, fmt.Errorf("parsing kline field %d: %w", i, err)
		}
	}

	candle := model.Candle{
		StartTime: time.UnixMilli(startMs).UTC(),
		Open:      values[0],
		High:      values[1],
		Low:       values[2],
		Close:     values[3],
		Volume:    values[4],
		Turnover:  values[5],
	}

	if candle.High < candle.Open || candle.High < candle.Close ||
		candle.Low > candle.Open || candle.Low > candle.Close {
		c.logger.Warn().
			Str("symbol", symbol).
			Time("start", candle.StartTime).
			Float64("open", candle.Open).
			Float64("high", candle.High).
			Float64("low", candle.Low).
			Float64("close", candle.Close).
			Msg("Candle bounds inverted, continuing with envelope bounds")
	}

	return candle, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	requestURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return fmt.Errorf("parsing JSON: %w", err)
	}

	if env.RetCode != 0 {
		c.logger.Error().Int("ret_code", env.RetCode).Str("ret_msg", env.RetMsg).Msg("Bybit API error")
		return fmt.Errorf("bybit API error %d: %s", env.RetCode, env.RetMsg)
	}

	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("parsing result: %w", err)
	}
	return nil
}
