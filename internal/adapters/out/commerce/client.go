// Package commerce implements the outbound contracts to the e-commerce
// platform: payment orders, marketplace threads, account lookups, and
// notification mail. One HTTP client backs all four because the platform
// exposes them under a single API surface.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/ports"
	"trackorder/internal/pkg/errs"
)

var (
	_ ports.PaymentGateway    = (*Client)(nil)
	_ ports.Messenger         = (*Client)(nil)
	_ ports.ProducerDirectory = (*Client)(nil)
	_ ports.Mailer            = (*Client)(nil)
)

// Client talks to the platform API. All requests carry the service API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a platform API client.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseUrl")
	}
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type balanceOrderRequest struct {
	OriginalOrderID int64 `json:"original_order_id"`
	CustomerID      int64 `json:"customer_id"`
	AmountCents     int64 `json:"amount_cents"`
}

type balanceOrderResponse struct {
	OrderID    int64  `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

// CreateBalanceOrder creates the follow-up platform order for the remaining
// balance and returns its identifier and checkout link.
func (c *Client) CreateBalanceOrder(
	ctx context.Context,
	originalOrder kernel.OrderID,
	customer kernel.UserID,
	amount kernel.Money,
) (ports.BalanceOrder, error) {
	req := balanceOrderRequest{
		OriginalOrderID: originalOrder.Int64(),
		CustomerID:      customer.Int64(),
		AmountCents:     amount.Cents(),
	}

	var resp balanceOrderResponse
	if err := c.post(ctx, "/wp-json/marketplace/v1/orders/balance", req, &resp); err != nil {
		return ports.BalanceOrder{}, fmt.Errorf("create balance order: %w", err)
	}

	orderID, err := kernel.NewOrderID(resp.OrderID)
	if err != nil {
		return ports.BalanceOrder{}, fmt.Errorf("create balance order: %w", err)
	}

	return ports.BalanceOrder{ID: orderID, PaymentURL: resp.PaymentURL}, nil
}

// CompleteOrder marks a platform payment order as complete.
func (c *Client) CompleteOrder(ctx context.Context, id kernel.OrderID) error {
	path := fmt.Sprintf("/wp-json/marketplace/v1/orders/%d/complete", id.Int64())
	if err := c.post(ctx, path, struct{}{}, nil); err != nil {
		return fmt.Errorf("complete order %s: %w", id, err)
	}
	return nil
}

type createThreadRequest struct {
	OrderID    int64  `json:"order_id"`
	ProducerID int64  `json:"producer_id"`
	CustomerID int64  `json:"customer_id"`
	Subject    string `json:"subject"`
}

type createThreadResponse struct {
	ThreadID int64 `json:"thread_id"`
}

// CreateThread opens a marketplace conversation between the two parties.
func (c *Client) CreateThread(
	ctx context.Context,
	orderID kernel.OrderID,
	producer, customer kernel.UserID,
	subject string,
) (int64, error) {
	req := createThreadRequest{
		OrderID:    orderID.Int64(),
		ProducerID: producer.Int64(),
		CustomerID: customer.Int64(),
		Subject:    subject,
	}

	var resp createThreadResponse
	if err := c.post(ctx, "/wp-json/marketplace/v1/threads", req, &resp); err != nil {
		return 0, fmt.Errorf("create thread: %w", err)
	}
	return resp.ThreadID, nil
}

type postMessageRequest struct {
	// AuthorID zero means the platform posts the message as the system user.
	AuthorID int64  `json:"author_id,omitempty"`
	Body     string `json:"body"`
}

// PostMessage appends a message to a thread. A zero-value author posts as the
// system.
func (c *Client) PostMessage(ctx context.Context, threadID int64, author kernel.UserID, body string) error {
	path := fmt.Sprintf("/wp-json/marketplace/v1/threads/%d/messages", threadID)
	req := postMessageRequest{AuthorID: author.Int64(), Body: body}
	if err := c.post(ctx, path, req, nil); err != nil {
		return fmt.Errorf("post message to thread %d: %w", threadID, err)
	}
	return nil
}

type userResponse struct {
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	IsProducer bool   `json:"is_producer"`
}

// IsProducer reports whether the user holds a producer (vendor) account.
func (c *Client) IsProducer(ctx context.Context, id kernel.UserID) (bool, error) {
	user, err := c.getUser(ctx, id)
	if err != nil {
		return false, err
	}
	return user.IsProducer, nil
}

// UserEmail resolves a user's notification address.
func (c *Client) UserEmail(ctx context.Context, id kernel.UserID) (string, error) {
	user, err := c.getUser(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

func (c *Client) getUser(ctx context.Context, id kernel.UserID) (userResponse, error) {
	var resp userResponse
	path := fmt.Sprintf("/wp-json/marketplace/v1/users/%d", id.Int64())
	if err := c.get(ctx, path, &resp); err != nil {
		return userResponse{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return resp, nil
}

type sendMailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send delivers a notification email through the platform.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	req := sendMailRequest{To: to, Subject: subject, Body: body}
	if err := c.post(ctx, "/wp-json/marketplace/v1/mail", req, nil); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return errs.NewObjectNotFoundError("resource", path)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("platform api: %s %s returned %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
