package oddsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/sportsbet-api/internal/domain/odds"
	"github.com/riskibarqy/sportsbet-api/internal/domain/rawdata"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/riskibarqy/sportsbet-api/internal/platform/resilience"
	"github.com/riskibarqy/sportsbet-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	providerName    = "the odds api"
	defaultBaseURL  = "https://api.the-odds-api.com/v4"
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 8 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apiKey=[^&\s"']+`)
var errOddsAPITransient = crerr.New("the odds api transient failure")

// RequestObserver is notified once per upstream request.
type RequestObserver interface {
	ObserveProviderRequest(provider, endpoint, outcome string, elapsed time.Duration)
}

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Observer       RequestObserver
	Archiver       rawdata.Archiver
}

type Client struct {
	http     *fasthttp.Client
	baseURL  string
	apiKey   string
	timeout  time.Duration
	logger   *logging.Logger
	breaker  *resilience.CircuitBreaker
	observer RequestObserver
	archiver rawdata.Archiver
	now      func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("oddsapi")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	archiver := cfg.Archiver
	if archiver == nil {
		archiver = rawdata.NopArchiver{}
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("the odds api circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		http: &fasthttp.Client{
			Name:                "sportsbet-api",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
			MaxResponseBodySize: maxResponseSize,
		},
		baseURL:  baseURL,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		timeout:  timeout,
		logger:   logger,
		breaker:  breaker,
		observer: cfg.Observer,
		archiver: archiver,
		now:      time.Now,
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// BreakerState is reported on /healthz.
func (c *Client) BreakerState() resilience.CircuitState {
	return c.breaker.State()
}

// FetchOdds returns upcoming and live events with bookmaker prices for one sport.
func (c *Client) FetchOdds(ctx context.Context, query odds.Query) ([]odds.Event, odds.Quota, error) {
	query = query.WithDefaults()
	if query.SportKey == "" {
		return nil, odds.Quota{}, fmt.Errorf("%w: sportKey is required", usecase.ErrInvalidInput)
	}

	values := url.Values{}
	values.Set("regions", query.Regions)
	values.Set("markets", query.Markets)
	values.Set("oddsFormat", query.OddsFormat)
	values.Set("dateFormat", "iso")

	var events []odds.Event
	quota, err := c.doJSON(ctx, "sports/odds", "/sports/"+url.PathEscape(query.SportKey)+"/odds", values, &events)
	if err != nil {
		return nil, quota, fmt.Errorf("fetch odds sport=%s: %w", query.SportKey, err)
	}
	if events == nil {
		events = []odds.Event{}
	}
	return events, quota, nil
}

// FetchSports lists in-season sports. Listing sports does not count against the quota.
func (c *Client) FetchSports(ctx context.Context) ([]odds.Sport, odds.Quota, error) {
	var sports []odds.Sport
	quota, err := c.doJSON(ctx, "sports", "/sports", url.Values{}, &sports)
	if err != nil {
		return nil, quota, fmt.Errorf("fetch sports: %w", err)
	}
	if sports == nil {
		sports = []odds.Sport{}
	}
	return sports, quota, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, query url.Values, out any) (odds.Quota, error) {
	if !c.Configured() {
		return odds.Quota{}, fmt.Errorf("%w: The Odds API key is not configured", usecase.ErrNotConfigured)
	}

	query.Set("apiKey", c.apiKey)
	fullURL := buildURL(c.baseURL, path, query)

	var (
		raw   []byte
		quota odds.Quota
	)
	started := c.now()
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, quota, reqErr = c.execute(ctx, fullURL)
		return reqErr
	}, isOddsAPICircuitFailure)
	c.observe(endpoint, err, c.now().Sub(started))

	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "the odds api circuit breaker rejected request", "endpoint", endpoint)
			return quota, fmt.Errorf("%w: odds provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return quota, err
	}

	c.logQuota(ctx, endpoint, quota)
	c.archiver.Archive(ctx, rawdata.NewPayload(rawdata.SourceOddsAPI, endpoint, 1, raw, c.now()))

	if err := sonic.Unmarshal(raw, out); err != nil {
		return quota, fmt.Errorf("decode odds payload endpoint=%s: %w", endpoint, err)
	}
	return quota, nil
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, odds.Quota, error) {
	if err := ctx.Err(); err != nil {
		return nil, odds.Quota{}, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := c.now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, odds.Quota{}, fmt.Errorf("%w: send request: %s", errOddsAPITransient, sanitizeSensitiveText(err.Error()))
	}

	quota := parseQuota(&resp.Header)
	body := append([]byte(nil), resp.Body()...)
	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return body, quota, nil
	}

	providerErr := usecase.NewProviderError(providerName, status, providerMessage(body))
	c.logger.WarnContext(ctx, "the odds api request failed",
		"url", redactAPIURL(fullURL),
		"status", status,
		"body", abbreviateBody(body),
	)
	if status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError {
		return nil, quota, fmt.Errorf("%w: %w", errOddsAPITransient, providerErr)
	}
	return nil, quota, providerErr
}

func (c *Client) logQuota(ctx context.Context, endpoint string, quota odds.Quota) {
	if quota.Remaining == nil {
		return
	}
	args := []any{"endpoint", endpoint, "requests_remaining", *quota.Remaining}
	if quota.Used != nil {
		args = append(args, "requests_used", *quota.Used)
	}
	if *quota.Remaining < 50 {
		c.logger.WarnContext(ctx, "the odds api quota running low", args...)
		return
	}
	c.logger.DebugContext(ctx, "the odds api quota", args...)
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
	case isOddsAPICircuitFailure(err):
		outcome = "transient_error"
	default:
		outcome = "error"
	}
	c.observer.ObserveProviderRequest("the-odds-api", endpoint, outcome, elapsed)
}

func parseQuota(header *fasthttp.ResponseHeader) odds.Quota {
	return odds.Quota{
		Remaining: headerInt(header, "x-requests-remaining"),
		Used:      headerInt(header, "x-requests-used"),
		Last:      headerInt(header, "x-requests-last"),
	}
}

func headerInt(header *fasthttp.ResponseHeader, key string) *int {
	raw := strings.TrimSpace(string(header.Peek(key)))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	out := int(value)
	return &out
}

// buildURL joins base, path and the encoded query into one pooled buffer.
func buildURL(baseURL, path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(baseURL)
	_, _ = buf.WriteString(path)
	if encoded := query.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}
	return buf.String()
}

func providerMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}

func isOddsAPICircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errOddsAPITransient)
}

func sanitizeSensitiveText(value string) string {
	return apiKeyParamRegex.ReplaceAllString(strings.TrimSpace(value), "apiKey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitizeSensitiveText(rawURL)
	}
	query := parsed.Query()
	if query.Has("apiKey") {
		query.Set("apiKey", "REDACTED")
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
