package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultHostTemplate = "https://%s.api.riotgames.com"
	defaultTimeout      = 15 * time.Second
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 2 * time.Second
	defaultMaxDelay     = 30 * time.Second
	defaultRetryAfter   = 2 * time.Second

	maxBodySize = 10 * 1024 * 1024
	tokenHeader = "X-Riot-Token"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type Client interface {
	AccountByRiotID(ctx context.Context, routing, riotID string) (*AccountDTO, error)
	MatchIDs(ctx context.Context, routing, puuid string, q MatchIDsQuery) ([]string, error)
	Match(ctx context.Context, routing, matchID string) (*MatchDTO, error)
}

// Opts configures an HTTPClient. Zero values fall back to the defaults the
// Riot API tolerates for a single development key.
type Opts struct {
	APIKey       string
	HostTemplate string
	Timeout      time.Duration
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	HTTPClient   *http.Client
	Logger       Logger
}

type HTTPClient struct {
	apiKey       string
	hostTemplate string
	maxAttempts  int
	baseDelay    time.Duration
	maxDelay     time.Duration
	client       *http.Client
	log          Logger
}

func NewHTTPClient(o Opts) *HTTPClient {
	if o.HostTemplate == "" {
		o.HostTemplate = defaultHostTemplate
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = defaultBaseDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = defaultMaxDelay
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}

	client := o.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	} else if client.Timeout == 0 {
		client.Timeout = o.Timeout
	}

	return &HTTPClient{
		apiKey:       o.APIKey,
		hostTemplate: o.HostTemplate,
		maxAttempts:  o.MaxAttempts,
		baseDelay:    o.BaseDelay,
		maxDelay:     o.MaxDelay,
		client:       client,
		log:          o.Logger,
	}
}

// BaseURL returns the API host for a routing value such as "EUROPE".
func (c *HTTPClient) BaseURL(routing string) string {
	if !strings.Contains(c.hostTemplate, "%s") {
		return strings.TrimRight(c.hostTemplate, "/")
	}
	return fmt.Sprintf(c.hostTemplate, strings.ToLower(routing))
}

// Fetch performs a GET against rawURL and decodes the JSON body into out.
// Rate limits and transient failures are retried up to the attempt cap; the
// last failure is returned once the cap is reached.
func (c *HTTPClient) Fetch(ctx context.Context, rawURL string, params url.Values, out any) error {
	target := rawURL
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	path := pathOf(rawURL)

	var last error
	attempt := 0
	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		attempt++
		body, err := c.get(ctx, target, path)
		if err == nil {
			return body, nil
		}
		last = err

		var uerr *UpstreamError
		if !errors.As(err, &uerr) || !uerr.Retryable() {
			return nil, backoff.Permanent(err)
		}
		if uerr.Kind == KindRateLimited {
			c.log.Warn("riot rate limited on %s, waiting %s (attempt %d/%d)", path, uerr.RetryAfter, attempt, c.maxAttempts)
			return nil, backoff.RetryAfter(int(uerr.RetryAfter / time.Second))
		}
		c.log.Warn("riot call %s failed, retrying (attempt %d/%d): %v", path, attempt, c.maxAttempts, err)
		return nil, err
	},
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.maxAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("riot call %s cancelled: %w", path, ctxErr)
		}
		if last != nil {
			return last
		}
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.baseDelay
	b.MaxInterval = c.maxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	return b
}

func (c *HTTPClient) get(ctx context.Context, target, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set(tokenHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Kind: KindNetworkError, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		uerr := &UpstreamError{
			Kind:   classifyStatus(resp.StatusCode),
			Status: resp.StatusCode,
			Path:   path,
		}
		if uerr.Kind == KindRateLimited {
			uerr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		}
		return nil, uerr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &UpstreamError{Kind: KindNetworkError, Path: path, Err: err}
	}
	return body, nil
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}
