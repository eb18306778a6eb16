// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Client queries the homework_statuses endpoint of the Practicum API.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewClient creates a client. A zero timeout leaves the transport default in place.
func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch requests statuses changed since fromDate (unix seconds) and returns the decoded JSON body.
// It does not retry; the caller's poll interval is the retry policy.
func (c *Client) Fetch(ctx context.Context, fromDate int64) (any, error) {
	req, err := c.newRequest(ctx, fromDate)
	if err != nil {
		return nil, err
	}

	logCtx := c.logger.WithField("from_date", fromDate)
	logCtx.Debug("Requesting homework statuses")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, homework.ConnectivityError("fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		logCtx.WithField("status_code", resp.StatusCode).Warn("Practicum API returned unexpected status")
		return nil, homework.APIResponseError("fetch", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, homework.SchemaError("fetch", "response body is not valid JSON", err)
	}
	return payload, nil
}

func (c *Client) newRequest(ctx context.Context, fromDate int64) (*http.Request, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid practicum endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build practicum request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
