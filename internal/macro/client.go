package macro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/config"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/httputil"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// ErrUnavailable means the upstream data service failed its health probe.
// Callers treat this as fatal for the whole run.
var ErrUnavailable = errors.New("macro service unavailable")

// Client talks to the upstream macro data service.
// SSOT: the upstream HTTP contract is encoded only in this package.
type Client struct {
	baseURL string
	http    *httputil.Client
	logger  *logger.Logger
	limiter *rate.Limiter
}

// NewClient creates a macro service client. An in-process limiter caps
// the request rate so a fan-out of fetchers cannot burst the upstream.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.Macro.BaseURL,
		http:    httpClient,
		logger:  log.WithField("component", "macro_client"),
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
}

// Health probes the upstream /health endpoint. Any transport error or
// non-200 status resolves to ErrUnavailable.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.http.Get(ctx, c.baseURL+"/health")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: health returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: decode health response: %v", ErrUnavailable, err)
	}

	return &status, nil
}

// FredSeries fetches observations of one FRED series over a date window.
// An unknown series (404) returns an empty slice, not an error.
func (c *Client) FredSeries(ctx context.Context, seriesID, startDate, endDate string) ([]SeriesPoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := seriesRequest{SeriesID: seriesID, StartDate: startDate, EndDate: endDate}
	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/fred/series", req)
	if err != nil {
		return nil, fmt.Errorf("fred series %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.WithField("series_id", seriesID).Warn("FRED series not found")
		return []SeriesPoint{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fred series %s: status %d", seriesID, resp.StatusCode)
	}

	var body seriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("fred series %s: decode: %w", seriesID, err)
	}

	return body.Data, nil
}

// Quote fetches daily bars for a quoted symbol.
func (c *Client) Quote(ctx context.Context, symbol, period, interval string) ([]Bar, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := quoteRequest{Symbol: symbol, Period: period, Interval: interval}
	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/yfinance/quote", req)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote %s: status %d", symbol, resp.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("quote %s: decode: %w", symbol, err)
	}

	return body.Data, nil
}

// Snapshot fetches the consolidated crypto batch for a symbol in one call.
func (c *Client) Snapshot(ctx context.Context, symbol string) (*CryptoSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/crypto/all", snapshotRequest{Symbol: symbol})
	if err != nil {
		return nil, fmt.Errorf("crypto snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crypto snapshot: status %d", resp.StatusCode)
	}

	var snap CryptoSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("crypto snapshot: decode: %w", err)
	}

	return &snap, nil
}
