// Package httpclient es el cliente JSON compartido por los adapters salientes.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultAgent   = "pet-care-planner"
	DefaultBackoff = 200 * time.Millisecond

	maxBodyBytes = 1 << 20
)

type Options struct {
	BaseURL   string // opcional; con él Request.Path puede ser relativo
	Timeout   time.Duration
	UserAgent string

	// Retries: reintentos extra ante error de red o 502/503/504.
	// Solo para llamadas idempotentes (verificar un token lo es).
	Retries int
	Backoff time.Duration // se duplica en cada intento

	Transport http.RoundTripper // opcional (tests)
}

type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	retries   int
	backoff   time.Duration
}

func New(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	agent := strings.TrimSpace(opts.UserAgent)
	if agent == "" {
		agent = DefaultAgent
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}

	c := &Client{
		http:      &http.Client{Timeout: timeout, Transport: opts.Transport},
		userAgent: agent,
		retries:   max(0, opts.Retries),
		backoff:   backoff,
	}

	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		u, err := url.ParseRequestURI(base)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid base url %q", base)
		}
		c.baseURL = strings.TrimRight(base, "/")
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// Request describe una llamada JSON. In nil = sin body; Out nil = se descarta.
type Request struct {
	Method  string
	Path    string // absoluto o relativo a BaseURL
	Headers map[string]string
	In      any
	Out     any
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("http error: %s %s status=%d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg += " body=" + e.Body
	}
	return msg
}

// StatusOf devuelve el status de un HTTPError o 0 si err es otra cosa.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Do ejecuta req con reintentos según Options.Retries.
func (c *Client) Do(ctx context.Context, req Request) error {
	if c == nil || c.http == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(req.Path)
	if err != nil {
		return err
	}

	var payload []byte
	if req.In != nil {
		if payload, err = json.Marshal(req.In); err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
	}

	wait := c.backoff
	for attempt := 0; ; attempt++ {
		err = c.once(ctx, req, fullURL, payload)
		if err == nil || attempt >= c.retries || !retryable(err) {
			return err
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return errors.Join(err, ctx.Err())
		case <-t.C:
		}
		wait *= 2
	}
}

func (c *Client) once(ctx context.Context, req Request, fullURL string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		if strings.TrimSpace(k) != "" {
			hr.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			Method:     req.Method,
			URL:        fullURL,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if req.Out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, req.Out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// retryable: fallas de red y gateways caídos. Un 4xx o un JSON roto no mejoran
// reintentando.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch StatusOf(err) {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	case 0:
		return strings.HasPrefix(err.Error(), "httpclient: do request")
	default:
		return false
	}
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}
	if c.baseURL == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.baseURL + pathOrURL, nil
}
