package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rep-lookup/internal/representative"

	"github.com/charmbracelet/log"
)

const (
	DefaultBaseURL = "https://represent.opennorth.ca"
	userAgent      = "rep-lookup/1.0"
	maxBodyBytes   = 2 << 20
)

// Client consulta o diretório de representantes. O mesmo cliente serve para
// falar direto com o upstream ou com o /api/lookup do nosso gateway; muda só o
// formato da URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	endpoint   func(base, code string) string
	logger     *log.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient aponta para o upstream: GET {base}/postcodes/{code}/
func NewClient(baseURL string, opts ...Option) *Client {
	return newClient(baseURL, upstreamEndpoint, opts...)
}

// NewGatewayClient aponta para o gateway: GET {base}/api/lookup?code={code}
func NewGatewayClient(baseURL string, opts ...Option) *Client {
	return newClient(baseURL, gatewayEndpoint, opts...)
}

func newClient(baseURL string, endpoint func(string, string) string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		endpoint:   endpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

func upstreamEndpoint(base, code string) string {
	return base + "/postcodes/" + url.PathEscape(code) + "/"
}

func gatewayEndpoint(base, code string) string {
	return base + "/api/lookup?" + url.Values{"code": {code}}.Encode()
}

// Fetch devolve o JSON cru de uma resposta 200. O código já deve estar
// normalizado.
func (c *Client) Fetch(ctx context.Context, code string) ([]byte, error) {
	endpoint := c.endpoint(c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("directory request failed", "url", endpoint, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("GET", "url", endpoint, "status", resp.StatusCode, "took", time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	if len(body) > maxBodyBytes {
		c.logger.Error("directory response too large", "url", endpoint, "limit", maxBodyBytes)
		return nil, fmt.Errorf("%w: response too large", ErrUnavailable)
	}

	if err := statusError(resp, body); err != nil {
		return nil, err
	}
	return body, nil
}

// Lookup busca e decodifica só a sequência de representantes.
func (c *Client) Lookup(ctx context.Context, code string) (*representative.Response, error) {
	body, err := c.Fetch(ctx, code)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// Decode interpreta o payload do diretório.
func Decode(body []byte) (*representative.Response, error) {
	var out representative.Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return &out, nil
}

func statusError(resp *http.Response, body []byte) error {
	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNoResults
	case code == http.StatusBadRequest:
		return ErrInvalidCode
	case code == http.StatusTooManyRequests:
		return &RateLimitError{
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
			Message:    errorMessage(body),
		}
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	}
}

func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// errorMessage extrai {"error": "..."} quando o corpo tem esse formato.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error
}
