package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single submission so a hung provider surfaces as a
// NetworkOrUnknown failure instead of a form stuck in pending.
const DefaultTimeout = 10 * time.Second

// ServiceNotConfigured is the error text the endpoint returns when its mail
// credentials are missing.
const ServiceNotConfigured = "Email service not configured"

const (
	MessageSuccess      = "Message sent successfully! I'll get back to you soon."
	MessageSendFailed   = "Failed to send message. Please try again."
	MessageNetworkError = "An error occurred. Please try again later."
)

type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultFailure ResultKind = "failure"
)

type Reason string

const (
	ReasonServiceUnavailable Reason = "ServiceUnavailable"
	ReasonInvalidPayload     Reason = "InvalidPayload"
	ReasonNetworkOrUnknown   Reason = "NetworkOrUnknown"
)

// Result is the terminal outcome of one submission. Message is what the
// status banner shows; ServerError keeps the endpoint's own error text.
type Result struct {
	Kind        ResultKind
	Reason      Reason
	Message     string
	ServerError string
	StatusCode  int
}

func (r Result) OK() bool {
	return r.Kind == ResultSuccess
}

// ClearFields reports whether the form should be reset.
func (r Result) ClearFields() bool {
	return r.OK()
}

func success(status int) Result {
	return Result{Kind: ResultSuccess, Message: MessageSuccess, StatusCode: status}
}

func failure(reason Reason, message string) Result {
	return Result{Kind: ResultFailure, Reason: reason, Message: message}
}

// Submitter delivers a validated Input. Implementations report every failure
// through the Result and never panic.
type Submitter interface {
	Submit(ctx context.Context, in Input) Result
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout overrides DefaultTimeout. Zero disables the bound.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// Client posts submissions to the contact endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type endpointResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Submit issues exactly one POST; there is no retry.
func (c *Client) Submit(ctx context.Context, in Input) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(in)
	if err != nil {
		return failure(ReasonNetworkOrUnknown, MessageNetworkError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return failure(ReasonNetworkOrUnknown, MessageNetworkError)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(ReasonNetworkOrUnknown, MessageNetworkError)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(ReasonNetworkOrUnknown, MessageNetworkError)
	}

	return classify(resp.StatusCode, raw)
}

func classify(status int, raw []byte) Result {
	var payload endpointResponse
	decodeErr := json.Unmarshal(raw, &payload)

	// a 2xx that is not the endpoint's JSON (a proxy page, say) never
	// confirmed delivery, so the form keeps its fields
	if status >= 200 && status < 300 && decodeErr == nil {
		return success(status)
	}

	var res Result
	switch {
	case decodeErr != nil:
		res = failure(ReasonNetworkOrUnknown, MessageNetworkError)
	case status == http.StatusInternalServerError && payload.Error == ServiceNotConfigured:
		res = failure(ReasonServiceUnavailable, MessageSendFailed)
	case status == http.StatusBadRequest:
		msg := payload.Error
		if msg == "" {
			msg = MessageSendFailed
		}
		res = failure(ReasonInvalidPayload, msg)
	default:
		res = failure(ReasonNetworkOrUnknown, MessageNetworkError)
	}
	res.ServerError = payload.Error
	res.StatusCode = status
	return res
}
