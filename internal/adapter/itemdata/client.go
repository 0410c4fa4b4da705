package itemdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

// ErrItemUnknown indicates the game-data service has no entry for the item.
var ErrItemUnknown = errors.New("item unknown")

// TooManyRequestsError represents rate limiting signal from the game-data service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// ItemDetail is the enrichment payload attached to order lines: splash art,
// rarity and lore text live in the external game-data service, not in the
// local catalog.
type ItemDetail struct {
	ProductID   int64
	Title       string
	SplashURL   string
	Rarity      string
	Description string
}

// Client exposes operations to query the game-data service.
type Client interface {
	Fetch(ctx context.Context, productID int64) (*ItemDetail, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors JSON payload from the game-data service.
type response struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	SplashURL   string `json:"splashUrl"`
	Rarity      string `json:"rarity"`
	Description string `json:"description"`
}

// NewHTTPClient creates HTTP game-data client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse game-data url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("game-data url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch queries the game-data service for one item.
func (c *HTTPClient) Fetch(ctx context.Context, productID int64) (*ItemDetail, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/items/", strconv.FormatInt(productID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &ItemDetail{
			ProductID:   data.ID,
			Title:       data.Title,
			SplashURL:   data.SplashURL,
			Rarity:      data.Rarity,
			Description: data.Description,
		}, nil
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrItemUnknown
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("game-data request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("game-data error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
