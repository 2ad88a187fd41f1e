package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/config"
	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

// Client talks to the upstream storefront REST API that owns the raw
// order records. Outbound calls go through a circuit breaker; the
// breaker only sees transport failures, HTTP statuses are classified by
// the caller-facing methods.
type Client struct {
	httpClient *http.Client
	cfg        config.StorefrontConfig
	cb         *gobreaker.CircuitBreaker
	log        logger.Logger
}

func NewClient(cfg config.StorefrontConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	st := gobreaker.Settings{
		Name:        "StorefrontAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				logger.String("name", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	}

	return &Client{
		cfg: cfg,
		cb:  gobreaker.NewCircuitBreaker(st),
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// FetchOrder fetches a single raw order record.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (map[string]interface{}, error) {
	return c.fetchOne(ctx, fmt.Sprintf("/orders/%s", url.PathEscape(orderID)))
}

// FetchStoreOrder fetches a raw order through the store-scoped route.
func (c *Client) FetchStoreOrder(ctx context.Context, storeID, orderID string) (map[string]interface{}, error) {
	return c.fetchOne(ctx, fmt.Sprintf("/%s/orders/%s", url.PathEscape(storeID), url.PathEscape(orderID)))
}

// fetchOne performs a single GET with no retry. Non-2xx becomes a
// FetchError carrying the status, transport failures wrap ErrNetwork,
// and an unparsable body degrades to an empty record: malformed data is
// absorbed by the normalizer's defaulting, never surfaced as an error.
func (c *Client) fetchOne(ctx context.Context, path string) (map[string]interface{}, error) {
	resp, err := c.get(ctx, c.cfg.BaseURL+path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.FetchError{Status: resp.StatusCode}
	}

	var body interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warn("order body not decodable, using empty record", logger.Error(err))
		return map[string]interface{}{}, nil
	}
	if m, ok := body.(map[string]interface{}); ok {
		return m, nil
	}
	c.log.Warn("order body is not a JSON object, using empty record")
	return map[string]interface{}{}, nil
}

type ordersResponse struct {
	Data       []json.RawMessage `json:"data"`
	TotalPages int               `json:"total_pages"`
}

// FetchRecentOrders pages through orders updated inside [start, end],
// sleeping between pages so the sync job stays under the API rate limit.
func (c *Client) FetchRecentOrders(
	ctx context.Context,
	start *time.Time,
	end *time.Time,
) ([]json.RawMessage, error) {
	if c.cfg.APIKey == "" || c.cfg.StoreID == "" {
		return nil, fmt.Errorf("storefront api_key or store_id is empty")
	}

	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid storefront base url: %w", err)
	}

	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	sleep := time.Duration(c.cfg.SleepMS) * time.Millisecond
	if sleep <= 0 {
		sleep = time.Second
	}

	allOrders := make([]json.RawMessage, 0)
	page := 1
	totalPages := 1

	for page <= totalPages {
		u := *base
		u.Path = fmt.Sprintf("%s/%s/orders", base.Path, c.cfg.StoreID)

		q := u.Query()
		q.Set("api_key", c.cfg.APIKey)
		q.Set("page_size", fmt.Sprintf("%d", pageSize))
		q.Set("page_number", fmt.Sprintf("%d", page))
		q.Set("option_sort", "updated_at_desc")
		if start != nil && end != nil {
			q.Set("startDateTime", fmt.Sprintf("%d", start.Unix()))
			q.Set("endDateTime", fmt.Sprintf("%d", end.Unix()))
		}
		u.RawQuery = q.Encode()

		resp, err := c.get(ctx, u.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, &domain.FetchError{Status: resp.StatusCode}
		}

		var body ordersResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode orders page: %w", err)
		}

		if len(body.Data) == 0 {
			break
		}
		allOrders = append(allOrders, body.Data...)

		if body.TotalPages > 0 {
			totalPages = body.TotalPages
		}
		page++

		select {
		case <-ctx.Done():
			return allOrders, ctx.Err()
		case <-time.After(sleep):
		}
	}

	return allOrders, nil
}

// get runs one breaker-wrapped GET. Breaker rejections surface as plain
// errors and end up classified as network failures.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	return res.(*http.Response), nil
}
