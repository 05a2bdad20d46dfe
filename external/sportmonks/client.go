package sportmonks

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sportsbet-api/internal/domain/rawdata"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/riskibarqy/sportsbet-api/internal/platform/resilience"
	"github.com/riskibarqy/sportsbet-api/internal/usecase"
	"golang.org/x/sync/singleflight"
)

const (
	providerName          = "sportmonks"
	defaultFootballURL    = "https://api.sportmonks.com/v3/football"
	defaultCricketURL     = "https://cricket.sportmonks.com/api/v2.0"
	maxResponseBodyBytes  = 8 << 20
	defaultRequestTimeout = 20 * time.Second
)

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errSportMonksTransient = crerr.New("sportmonks transient failure")

// RequestObserver is notified once per upstream request.
type RequestObserver interface {
	ObserveProviderRequest(provider, endpoint, outcome string, elapsed time.Duration)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	FootballURL    string
	CricketURL     string
	FootballToken  string
	CricketToken   string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Observer       RequestObserver
	Archiver       rawdata.Archiver
}

type Client struct {
	httpClient    *http.Client
	football      api
	cricket       api
	maxRetries    int
	retryBackoff  time.Duration
	flightTimeout time.Duration
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	flight        singleflight.Group
	observer      RequestObserver
	archiver      rawdata.Archiver
	now           func() time.Time
}

// api is one Sportmonks product: its base URL and the token it is billed against.
type api struct {
	name    string
	baseURL string
	token   string
}

func (a api) configured() bool {
	return a.token != ""
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("sportmonks")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultRequestTimeout
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = time.Second
	}

	archiver := cfg.Archiver
	if archiver == nil {
		archiver = rawdata.NopArchiver{}
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("sportmonks circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:    httpClient,
		football:      api{name: "football", baseURL: normalizeBaseURL(cfg.FootballURL, defaultFootballURL), token: strings.TrimSpace(cfg.FootballToken)},
		cricket:       api{name: "cricket", baseURL: normalizeBaseURL(cfg.CricketURL, defaultCricketURL), token: strings.TrimSpace(cfg.CricketToken)},
		maxRetries:    max(cfg.MaxRetries, 0),
		retryBackoff:  retryBackoff,
		flightTimeout: flightTimeout(httpClient.Timeout, max(cfg.MaxRetries, 0), retryBackoff),
		logger:        logger,
		breaker:       breaker,
		observer:      cfg.Observer,
		archiver:      archiver,
		now:           time.Now,
	}
}

// flightTimeout bounds one shared request including its retries and backoff sleeps.
func flightTimeout(requestTimeout time.Duration, maxRetries int, backoff time.Duration) time.Duration {
	attempts := time.Duration(maxRetries + 1)
	return attempts*requestTimeout + attempts*attempts*backoff
}

// BreakerState is reported on /healthz.
func (c *Client) BreakerState() resilience.CircuitState {
	return c.breaker.State()
}

// doJSON issues one GET against target and decodes the body into out. endpoint is the
// low-cardinality label used for metrics and the archive.
func (c *Client) doJSON(ctx context.Context, target api, endpoint, path string, query url.Values, out any) ([]byte, error) {
	values := url.Values{}
	for key, items := range query {
		values[key] = append([]string(nil), items...)
	}
	values.Set("api_token", target.token)

	fullURL := target.baseURL + path + "?" + values.Encode()

	started := c.now()
	// The shared request outlives any single caller; each caller stops waiting on its own ctx.
	shared := c.flight.DoChan(fullURL, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightTimeout)
		defer cancel()

		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(flightCtx, fullURL)
			return reqErr
		}, isSportMonksCircuitFailure)
		return raw, execErr
	})

	var (
		result any
		err    error
	)
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case res := <-shared:
		result, err = res.Val, res.Err
	}
	c.observe(endpoint, err, c.now().Sub(started))
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "sportmonks circuit breaker rejected request", "endpoint", endpoint, "state", string(c.breaker.State()))
			return nil, fmt.Errorf("%w: sport data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	raw, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", result)
	}

	if err := sonic.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode provider payload endpoint=%s: %w", endpoint, err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %s", errSportMonksTransient, sanitizeSensitiveText(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errSportMonksTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				providerErr := usecase.NewProviderError(providerName, resp.StatusCode, providerMessage(raw))
				if !isRetryableStatus(resp.StatusCode) {
					c.logger.WarnContext(ctx, "sportmonks request rejected",
						"url", redactAPIURL(fullURL),
						"status", resp.StatusCode,
						"body", abbreviateBody(raw),
					)
					return nil, providerErr
				}
				lastErr = fmt.Errorf("%w: %w", errSportMonksTransient, providerErr)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = usecase.NewProviderError(providerName, http.StatusBadGateway, "")
	}
	c.logger.WarnContext(ctx, "sportmonks request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) observe(endpoint string, err error, elapsed time.Duration) {
	if c.observer == nil {
		return
	}
	outcome := "success"
	switch {
	case err == nil:
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		outcome = "circuit_open"
	case isSportMonksCircuitFailure(err):
		outcome = "transient_error"
	default:
		outcome = "error"
	}
	c.observer.ObserveProviderRequest(providerName, endpoint, outcome, elapsed)
}

func (c *Client) archive(ctx context.Context, endpoint string, page int, raw []byte) {
	c.archiver.Archive(ctx, rawdata.NewPayload(rawdata.SourceSportmonks, endpoint, page, raw, c.now()))
}

// providerMessage extracts the `message` field Sportmonks puts on error bodies.
func providerMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}

func sanitizeSensitiveText(value string) string {
	return apiTokenParamRegex.ReplaceAllString(strings.TrimSpace(value), "api_token=REDACTED")
}

func isSportMonksCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errSportMonksTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitizeSensitiveText(rawURL)
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func normalizeBaseURL(raw, fallback string) string {
	value := strings.TrimRight(strings.TrimSpace(raw), "/")
	if value == "" {
		return fallback
	}
	return value
}
