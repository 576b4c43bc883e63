// Package upstream talks to the DummyJSON demo API that stands in for a
// fight-data backend.
package upstream

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

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/and161185/fightnight/internal/config"
	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/model"
)

// Client is a throttled DummyJSON client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New builds a client from the upstream section of the config.
func New(cfg config.Upstream, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    lim,
		log:        log.Named("upstream"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type productsResponse struct {
	Products []model.CatalogItem `json:"products"`
	Total    int                 `json:"total"`
}

// Products fetches the first limit catalog items.
func (c *Client) Products(ctx context.Context, limit int) ([]model.CatalogItem, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	resp, err := c.do(ctx, http.MethodGet, "/products?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: products status %d: %s", errs.ErrUpstream, resp.StatusCode, bytes.TrimSpace(body))
	}

	var out productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", errs.ErrUpstream, err)
	}
	c.log.Debug("products fetched", zap.Int("limit", limit), zap.Int("count", len(out.Products)))
	return out.Products, nil
}

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ExpiresInMins int    `json:"expiresInMins"`
}

// Login exchanges credentials for a profile and token. Any non-2xx answer
// is reported as errs.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string, expiresInMins int) (model.LoginResponse, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password, ExpiresInMins: expiresInMins})
	if err != nil {
		return model.LoginResponse{}, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", body)
	if err != nil {
		return model.LoginResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e)
		c.log.Info("login rejected", zap.String("username", username), zap.Int("status", resp.StatusCode), zap.String("message", e.Message))
		return model.LoginResponse{}, fmt.Errorf("%w: status %d", errs.ErrUnauthorized, resp.StatusCode)
	}

	var out model.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.LoginResponse{}, fmt.Errorf("%w: decode login: %v", errs.ErrUpstream, err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", errs.ErrUpstream, err)
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", errs.ErrUpstream, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %v", errs.ErrUpstream, method, path, err)
	}
	c.log.Debug("request", zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.Duration("took", time.Since(start)))
	return resp, nil
}
