package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Interest windows accepted by the provider. The refresh cycle uses the
// quarter window for category and regional series and the month window for
// seasonal keywords.
const (
	WindowQuarter = "3m"
	WindowMonth   = "1m"
)

// InterestPoint is one sample of search interest for a keyword, on the
// provider's 0-100 scale.
type InterestPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// Client fetches keyword interest series from an interest-data provider over
// HTTP. The geography is fixed per client.
type Client struct {
	baseURL string
	geo     string
	http    *http.Client
}

func NewClient(baseURL, geo string) *Client {
	if geo == "" {
		geo = "IN"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		geo:     geo,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// InterestOverTime returns the interest series for a keyword within a window.
// Any transport or decode failure is returned to the caller; the refresh
// cycle treats all such errors as "no data for this item".
func (c *Client) InterestOverTime(ctx context.Context, keyword, window string) ([]InterestPoint, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("window", window)
	q.Set("geo", c.geo)
	path := "/v1/interest-over-time?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	blob, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("GET %s failed status=%d body=%s", path, resp.StatusCode, string(blob))
	}

	var payload struct {
		Series []InterestPoint `json:"series"`
	}
	if err := json.Unmarshal(blob, &payload); err != nil {
		return nil, fmt.Errorf("decode interest series for %q: %w", keyword, err)
	}
	return payload.Series, nil
}
