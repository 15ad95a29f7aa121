package poller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"marketplace-dispatch/internal/apperr"
)

// PartnerHeader identifies the calling partner on the notifications endpoint.
const PartnerHeader = "X-Partner-ID"

// Notification is one entry of GET /api/delivery-notifications. NotificationData
// holds the raw JSON payload.
type Notification struct {
	ID               int64     `json:"id"`
	DeliveryID       int64     `json:"delivery_id"`
	OrderID          int64     `json:"order_id"`
	PartnerID        *int64    `json:"delivery_partner_id"`
	Status           string    `json:"status"`
	NotificationData string    `json:"notification_data"`
	CreatedAt        time.Time `json:"created_at"`
	CustomerName     string    `json:"customer_name"`
	TotalAmount      string    `json:"total_amount"`
	ShippingAddress  string    `json:"shipping_address"`
	StoreName        string    `json:"store_name"`
}

// APIError is a non-2xx answer from the dispatch API. It unwraps to the matching
// apperr sentinel so callers can tell a lost claim from a transport failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dispatch api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return apperr.ErrInvalid
	case http.StatusForbidden:
		return apperr.ErrForbidden
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusConflict:
		return apperr.ErrConflict
	default:
		return nil
	}
}

// Client talks to the partner-facing endpoints of the dispatch API.
type Client struct {
	baseURL   string
	partnerID int64
	http      *http.Client
}

// NewClient creates a Client. A nil httpClient gets a 10s timeout default.
func NewClient(baseURL string, partnerID int64, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		partnerID: partnerID,
		http:      httpClient,
	}
}

// PartnerID returns the partner the client acts for.
func (c *Client) PartnerID() int64 { return c.partnerID }

// Pending lists the deliveries currently offered to the partner.
func (c *Client) Pending(ctx context.Context) ([]Notification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/delivery-notifications", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(PartnerHeader, strconv.FormatInt(c.partnerID, 10))

	var out []Notification
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Accept claims the live delivery of orderID.
func (c *Client) Accept(ctx context.Context, orderID int64) error {
	return c.decide(ctx, orderID, "accept")
}

// Reject hides the delivery of orderID from this partner.
func (c *Client) Reject(ctx context.Context, orderID int64) error {
	return c.decide(ctx, orderID, "reject")
}

type decisionRequest struct {
	DeliveryPartnerID int64 `json:"deliveryPartnerId"`
}

func (c *Client) decide(ctx context.Context, orderID int64, verb string) error {
	body, err := json.Marshal(decisionRequest{DeliveryPartnerID: c.partnerID})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/delivery-notifications/%d/%s", c.baseURL, orderID, verb)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(PartnerHeader, strconv.FormatInt(c.partnerID, 10))
	return c.do(req, nil)
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(raw, &eb); err != nil || eb.Error == "" {
			eb.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Error}
	}
	if dst == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
