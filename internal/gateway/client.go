package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bookit/internal/domain/bookings"
	"bookit/internal/domain/experiences"
	"bookit/internal/domain/promos"
)

const DefaultBaseURL = "http://localhost:8080/api"

// Client talks to the booking API. It performs no retries and sets no timeout
// of its own; callers bound requests with their context.
type Client struct {
	baseURL string
	http    *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) ListExperiences(ctx context.Context) ([]experiences.Experience, error) {
	var out []experiences.Experience
	if err := c.do(ctx, http.MethodGet, "/experiences", nil, &out, ErrValidation); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetExperience(ctx context.Context, id string) (*experiences.Experience, error) {
	var out experiences.Experience
	if err := c.do(ctx, http.MethodGet, "/experiences/"+url.PathEscape(id), nil, &out, ErrValidation); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidatePromo(ctx context.Context, code string, subtotal int64) (*promos.ValidateResult, error) {
	req := promos.ValidateRequest{Code: code, Subtotal: subtotal}
	var out promos.ValidateResult
	if err := c.do(ctx, http.MethodPost, "/promo/validate", req, &out, ErrInvalidPromo); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req bookings.CreateRequest) (*bookings.Booking, error) {
	var out bookings.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &out, ErrValidation); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBooking(ctx context.Context, id string) (*bookings.Booking, error) {
	var out bookings.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(id), nil, &out, ErrValidation); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends in as JSON and decodes the response's data into out. A 400 is
// reported as badRequest, which lets an endpoint say what a rejected
// request means.
func (c *Client) do(ctx context.Context, method, path string, in, out any, badRequest error) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &APIError{
			Kind:    kindFor(resp.StatusCode, badRequest),
			Status:  resp.StatusCode,
			Message: eb.Message,
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return fmt.Errorf("%w: response has no data", ErrNetwork)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrNetwork, err)
	}
	return nil
}
