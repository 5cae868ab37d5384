package odin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-planner/internal/platform/httpclient"
	"pet-care-planner/internal/ports/auth"
)

var (
	ErrOdinNotConfigured = errors.New("odin client not configured")
	ErrOdinUnauthorized  = errors.New("odin unauthorized")
	ErrOdinUpstream      = errors.New("odin upstream error")
)

const verifyPath = "/v1/tokens/verify"

// Config del cliente Odin (auth.odin_base_url / auth.odin_api_key).
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: nombre del header donde se manda la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
	Retries int // ante 502/503/504 o error de red

	// Transport opcional (tests).
	Transport http.RoundTripper
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   timeout,
		Retries:   cfg.Retries,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.BaseURL() != "" && c.apiKey != ""
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// VerifyToken llama a Odin para verificar un token y traer claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrOdinUnauthorized
	}

	var out verifyResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   verifyPath,
		Headers: map[string]string{
			c.apiKeyHeader: c.apiKey,
			// Algunos IAM esperan el token en Authorization, aunque también vaya en body.
			"Authorization": "Bearer " + token,
		},
		In:  verifyRequest{Token: token},
		Out: &out,
	})
	switch status := httpclient.StatusOf(err); {
	case err == nil:
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return auth.Claims{}, ErrOdinUnauthorized
	default:
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrOdinUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrOdinUpstream)
	}

	return auth.Claims{
		UserID: out.UserID,
		Email:  strings.TrimSpace(out.Email),
		Name:   strings.TrimSpace(out.Name),
	}, nil
}
