package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marmita-storefront/internal/logger"
	"marmita-storefront/internal/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func init() {
	// numeric columns go over the wire as exact JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	restPrefix    = "/rest/v1"
	authPrefix    = "/auth/v1"
	storagePrefix = "/storage/v1"

	defaultTimeout = 15 * time.Second
	defaultRate    = rate.Limit(10)
	defaultBurst   = 20
)

// Auth selects which bearer token a request carries.
type Auth int

const (
	// Anon sends the project's anonymous key; enough for catalog reads and order creation.
	Anon Auth = iota
	// User sends the signed-in session token.
	User
)

// TokenSource yields the current session access token, or "" when signed out.
type TokenSource interface {
	Token() string
}

type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Tokens     TokenSource
	RateLimit  rate.Limit
	Burst      int
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	calls      metrics.Calls
}

func New(opts Options) *Client {
	if opts.APIKey == "" {
		logger.L().Warn("backend API key is empty")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   defaultTimeout,
			Transport: logger.Transport(nil),
		}
	}

	limit, burst := opts.RateLimit, opts.Burst
	if limit <= 0 {
		limit = defaultRate
	}
	if burst <= 0 {
		burst = defaultBurst
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		tokens:     opts.Tokens,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// ----------------- REST -----------------

// Select decodes the rows matched by q into out (a pointer to a slice).
func (c *Client) Select(ctx context.Context, table string, q *Query, auth Auth, out any) error {
	return c.rest(ctx, http.MethodGet, table, q, auth, nil, nil, out)
}

// Insert posts body (a row or a slice of rows) and decodes the representation into out.
func (c *Client) Insert(ctx context.Context, table string, body any, auth Auth, out any) error {
	return c.rest(ctx, http.MethodPost, table, nil, auth, nil, body, out)
}

// Upsert inserts body merging duplicates on the given conflict columns.
func (c *Client) Upsert(ctx context.Context, table, onConflict string, body any, auth Auth, out any) error {
	q := NewQuery()
	if onConflict != "" {
		q.OnConflict(onConflict)
	}
	prefer := http.Header{"Prefer": {"return=representation,resolution=merge-duplicates"}}
	return c.rest(ctx, http.MethodPost, table, q, auth, prefer, body, out)
}

// Update patches the rows matched by q.
func (c *Client) Update(ctx context.Context, table string, q *Query, body any, auth Auth, out any) error {
	return c.rest(ctx, http.MethodPatch, table, q, auth, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, table string, q *Query, auth Auth) error {
	return c.rest(ctx, http.MethodDelete, table, q, auth, nil, nil, nil)
}

func (c *Client) rest(
	ctx context.Context,
	method, table string,
	q *Query,
	auth Auth,
	extra http.Header,
	body, out any,
) error {
	bearer, err := c.bearer(auth)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + restPrefix + "/" + table
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	headers := http.Header{}
	headers.Set("Accept-Profile", "public")
	headers.Set("Content-Profile", "public")
	headers.Set("Prefer", "return=representation")
	for k, v := range extra {
		headers[k] = v
	}

	return c.doJSON(ctx, method, endpoint, bearer, headers, body, out)
}

// ----------------- Auth -----------------

// AuthCall hits /auth/v1/<path>. An empty bearer sends the anonymous key.
func (c *Client) AuthCall(ctx context.Context, method, path string, query url.Values, bearer string, body, out any) error {
	if bearer == "" {
		bearer = c.apiKey
	}
	endpoint := c.baseURL + authPrefix + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.doJSON(ctx, method, endpoint, bearer, http.Header{}, body, out)
}

// ----------------- Storage -----------------

// Upload stores data under bucket/object, overwriting any existing object.
func (c *Client) Upload(ctx context.Context, bucket, object, mime string, data []byte) error {
	bearer, err := c.bearer(User)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + storagePrefix + "/object/" + bucket + "/" + object

	headers := http.Header{}
	headers.Set("x-upsert", "true")
	headers.Set("Content-Type", mime)

	_, err = c.do(ctx, http.MethodPost, endpoint, bearer, headers, bytes.NewReader(data))
	return err
}

// PublicURL is where a public bucket serves object.
func (c *Client) PublicURL(bucket, object string) string {
	return c.baseURL + storagePrefix + "/object/public/" + bucket + "/" + object
}

// Stats reports the calls made so far, including failed ones.
func (c *Client) Stats() metrics.CallStats {
	return c.calls.Snapshot()
}

// ----------------- Transport -----------------

func (c *Client) bearer(auth Auth) (string, error) {
	if auth == Anon {
		return c.apiKey, nil
	}
	if c.tokens == nil {
		return "", ErrNoSession
	}
	token := c.tokens.Token()
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, bearer string, headers http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
		headers.Set("Content-Type", "application/json")
	}
	headers.Set("Accept", "application/json")

	respBody, err := c.do(ctx, method, endpoint, bearer, headers, reader)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		logger.FromCtx(ctx).Error("failed decoding backend response",
			zap.String("layer", "supabase"),
			zap.String("endpoint", redact(endpoint)),
			zap.Error(err),
		)
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, bearer string, headers http.Header, body io.Reader) (respBody []byte, err error) {
	timer := metrics.StartTimer()
	defer func() { c.calls.Observe(timer.Duration(), err) }()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "supabase"),
		zap.String("method", method),
		zap.String("endpoint", redact(endpoint)),
	)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	for k, v := range headers {
		req.Header[k] = v
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("backend request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		log.Error("backend returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}

	return respBody, nil
}

// redact drops the query string so filter values (phones, ids) stay out of logs.
func redact(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// REST is the table-level surface repositories depend on.
type REST interface {
	Select(ctx context.Context, table string, q *Query, auth Auth, out any) error
	Insert(ctx context.Context, table string, body any, auth Auth, out any) error
	Upsert(ctx context.Context, table, onConflict string, body any, auth Auth, out any) error
	Update(ctx context.Context, table string, q *Query, body any, auth Auth, out any) error
	Delete(ctx context.Context, table string, q *Query, auth Auth) error
}

var _ REST = (*Client)(nil)
