package registry

import (
	"bytes"
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

	"github.com/hashicorp/go-hclog"

	"github.com/aerostackdev/cli/internal/branding"
)

const (
	functionsPath = "/community/functions"
	loginPath     = "/auth/login"

	defaultTimeout = 30 * time.Second
)

// Client talks to one registry base URL, e.g. https://api.aerostack.dev/api.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l hclog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  branding.UserAgent(""),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns one page of functions matching opts.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListPage, error) {
	q := url.Values{}
	setQuery(q, "category", opts.Category)
	setQuery(q, "search", opts.Search)
	setQuery(q, "sort", opts.Sort)
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}

	var raw json.RawMessage
	if err := c.do(ctx, "listing functions", http.MethodGet, functionsPath, q, nil, &raw); err != nil {
		return nil, err
	}

	page := &ListPage{}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Functions); err != nil {
			return nil, fmt.Errorf("parsing function list: %w", err)
		}
	} else if err := json.Unmarshal(raw, page); err != nil {
		return nil, fmt.Errorf("parsing function list: %w", err)
	}
	if page.Page == 0 {
		page.Page = max(opts.Page, 1)
	}
	if page.Limit == 0 {
		page.Limit = opts.Limit
	}
	return page, nil
}

// Get fetches a function by author and slug.
func (c *Client) Get(ctx context.Context, author, slug string) (*Function, error) {
	p := functionsPath + "/" + url.PathEscape(author) + "/" + url.PathEscape(slug)
	return c.getFunction(ctx, "fetching "+author+"/"+slug, p)
}

// Install fetches the most relevant function for a bare slug.
func (c *Client) Install(ctx context.Context, slug string) (*Function, error) {
	p := functionsPath + "/install/" + url.PathEscape(slug)
	return c.getFunction(ctx, "fetching "+slug, p)
}

func (c *Client) getFunction(ctx context.Context, op, path string) (*Function, error) {
	var raw json.RawMessage
	if err := c.do(ctx, op, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	fn := &Function{}
	if err := unwrap(raw, "function", fn); err != nil {
		return nil, fmt.Errorf("%s: parsing response: %w", op, err)
	}
	return fn, nil
}

// Create uploads a new draft function.
func (c *Client) Create(ctx context.Context, in FunctionInput) (*Created, error) {
	var raw json.RawMessage
	if err := c.do(ctx, "creating function", http.MethodPost, functionsPath, nil, in, &raw); err != nil {
		return nil, err
	}
	out := &Created{}
	if err := unwrap(raw, "function", out); err != nil {
		return nil, fmt.Errorf("creating function: parsing response: %w", err)
	}
	if out.ID == "" {
		return nil, errors.New("creating function: response did not include an id")
	}
	return out, nil
}

// Update patches an existing function.
func (c *Client) Update(ctx context.Context, id string, in FunctionInput) error {
	p := functionsPath + "/" + url.PathEscape(id)
	return c.do(ctx, "updating function", http.MethodPatch, p, nil, in, nil)
}

// Publish makes a draft public and returns its hub path.
func (c *Client) Publish(ctx context.Context, id string) (*Published, error) {
	p := functionsPath + "/" + url.PathEscape(id) + "/publish"
	out := &Published{}
	if err := c.do(ctx, "publishing function", http.MethodPost, p, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "logging in", http.MethodPost, loginPath, nil, body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("logging in: response did not include a token")
	}
	return out.Token, nil
}

// do performs one request. Non-2xx responses become *APIError; transport
// failures are wrapped with op.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("registry request", "method", method, "url", u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: reading response: %w", op, err)
	}
	c.logger.Debug("registry response", "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: parsing response: %w", op, err)
	}
	return nil
}

// unwrap decodes raw into v, accepting both {"<key>": {...}} and a flat
// object.
func unwrap(raw json.RawMessage, key string, v any) error {
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return err
	}
	if inner, ok := wrapped[key]; ok && len(inner) > 0 && inner[0] == '{' {
		return json.Unmarshal(inner, v)
	}
	return json.Unmarshal(raw, v)
}

func setQuery(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
