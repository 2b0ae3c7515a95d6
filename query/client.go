package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/c360/firewatch/errors"
	"github.com/c360/firewatch/normalize"
	"github.com/c360/firewatch/pkg/timestamp"
	"github.com/c360/firewatch/record"
)

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// DefaultRange is the trailing window used when a range query omits bounds.
const DefaultRange = 24 * time.Hour

// Service endpoints.
const (
	pathRecent              = "api/fire-drone/recent/"
	pathRange               = "api/fire-drone/range/"
	pathRecentNotifications = "api/notifications/recent/"
	pathChat                = "api/fire-warden/chat/"
)

// Client talks to the remote history service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, clientTimeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig,
			"query", "NewClient", "base URL is required")
	}
	if clientTimeout <= 0 {
		clientTimeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		http:    &http.Client{Timeout: clientTimeout},
	}, nil
}

// Recent fetches the full recent telemetry history, normalized.
func (c *Client) Recent(ctx context.Context) (record.History, error) {
	var h record.History
	if err := c.getJSON(ctx, pathRecent, nil, &h); err != nil {
		return record.History{}, err
	}
	return normalize.History(h), nil
}

// RecentNotifications fetches the current notification set, normalized.
// The service wraps the list in a {"notifications": [...]} envelope.
func (c *Client) RecentNotifications(ctx context.Context) ([]record.Notification, error) {
	var out struct {
		Notifications []record.Notification `json:"notifications"`
	}
	if err := c.getJSON(ctx, pathRecentNotifications, nil, &out); err != nil {
		return nil, err
	}
	return normalize.Notifications(out.Notifications), nil
}

// Entity values accepted by RangeQuery.
const (
	EntityFires  = "fires"
	EntityDrones = "drones"
)

// RangeQuery selects a historical slice. Zero Start/End default to the
// trailing 24 hours. Entity selects one record kind (EntityFires or
// EntityDrones); empty selects both. Page is 1-based; PageSize 0 disables
// pagination.
type RangeQuery struct {
	Start    int64
	End      int64
	Entity   string
	Page     int
	PageSize int
}

// Totals reports the per-kind match counts before pagination.
type Totals struct {
	Fires  int `json:"fires"`
	Drones int `json:"drones"`
}

// RangeResult is one page of a range query.
type RangeResult struct {
	Fires    []record.Fire  `json:"fires"`
	Drones   []record.Drone `json:"drones"`
	Totals   Totals         `json:"totals"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// Range fetches telemetry within a time range, normalized.
func (c *Client) Range(ctx context.Context, q RangeQuery) (RangeResult, error) {
	if q.End == 0 {
		q.End = timestamp.Now()
	}
	if q.Start == 0 {
		q.Start = timestamp.Sub(q.End, DefaultRange)
	}
	if q.Start > q.End {
		return RangeResult{}, errors.WrapInvalid(
			fmt.Errorf("start %d after end %d", q.Start, q.End),
			"query", "Range", "validate range bounds")
	}

	params := url.Values{}
	params.Set("start", strconv.FormatInt(q.Start, 10))
	params.Set("end", strconv.FormatInt(q.End, 10))
	if q.Entity != "" {
		params.Set("entity", q.Entity)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}

	var result RangeResult
	if err := c.getJSON(ctx, pathRange, params, &result); err != nil {
		return RangeResult{}, err
	}
	result.Fires = normalize.Records(result.Fires)
	result.Drones = normalize.Records(result.Drones)
	return result, nil
}

// ChatImpact quantifies a tactical plan's projected outcome.
type ChatImpact struct {
	Containment        string `json:"containment"`
	ETA                string `json:"eta"`
	SuccessProbability string `json:"successProbability"`
}

// ChatPlan is a structured tactical plan response.
type ChatPlan struct {
	Title   string     `json:"title"`
	Actions []string   `json:"actions"`
	Impact  ChatImpact `json:"impact"`
}

// ChatResponse is the fire warden's reply: plain text or a tactical plan.
type ChatResponse struct {
	Type    string    `json:"type"` // "text" or "plan"
	Content string    `json:"content"`
	Plan    *ChatPlan `json:"plan,omitempty"`
}

// Chat sends a message to the fire warden assistant.
func (c *Client) Chat(ctx context.Context, message string) (ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return ChatResponse{}, errors.WrapInvalid(
			fmt.Errorf("empty message"),
			"query", "Chat", "validate message")
	}

	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return ChatResponse{}, errors.WrapInvalid(err, "query", "Chat", "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+pathChat, bytes.NewReader(body))
	if err != nil {
		return ChatResponse{}, errors.WrapInvalid(err, "query", "Chat", "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	var out ChatResponse
	if err := c.do(req, &out); err != nil {
		return ChatResponse{}, err
	}
	return out, nil
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.WrapInvalid(err, "query", "getJSON", "build request")
	}
	return c.do(req, out)
}

// do executes a request, classifying failures. Non-2xx responses are errors,
// distinct from empty data.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapTransient(err, "query", "do", "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for diagnostics.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		statusErr := fmt.Errorf("%w: %s: %s", errors.ErrBadStatus, resp.Status,
			strings.TrimSpace(string(snippet)))
		if resp.StatusCode >= 500 {
			return errors.WrapTransient(statusErr, "query", "do", "server error")
		}
		return errors.WrapInvalid(statusErr, "query", "do", "request rejected")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrDecodingFailed, err),
			"query", "do", "decode response")
	}
	return nil
}
