// Package graphio is the Go client SDK for the GraphIO ontology service.
//
// A Client owns one HTTP session to the service and exposes three
// namespaces: Ontology (typed queries and edit batching), KnowledgeGraph
// (graph traversal endpoints) and MetaType (meta-type data listing).
//
//	client, err := graphio.New()
//	if err != nil { ... }
//	defer client.Close()
//
//	Employee := client.Ontology.GetObjectType(ctx, "Employee")
//	rows, err := Employee.
//		Where(Employee.Field("age").Gt(30)).
//		Select("name", "age").
//		Execute(ctx)
package graphio

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/graphio/graphio-go/config"
	"github.com/graphio/graphio-go/errors"
	"github.com/graphio/graphio-go/internal/httpclient"
	"github.com/graphio/graphio-go/ontology"
)

// Client is the GraphIO ontology service client. It implements
// ontology.Transport over HTTP.
//
// The client is safe for concurrent use. Lifecycle is explicit: construct
// with New, release with Close; there is no finalizer.
type Client struct {
	baseURL string
	apiBase string
	http    *httpclient.Client
	limiter *rate.Limiter
	log     *zap.SugaredLogger
	closed  atomic.Bool

	// Ontology resolves object types and builds queries and edit sessions
	Ontology *ontology.Namespace
	// KnowledgeGraph exposes the graph traversal endpoints
	KnowledgeGraph *KnowledgeGraph
	// MetaType exposes meta-type data listing
	MetaType *MetaType
}

type clientOptions struct {
	baseURL              string
	connectTimeout       time.Duration
	readTimeout          time.Duration
	maxRequestsPerMinute int
	httpClient           *http.Client
	logger               *zap.SugaredLogger
}

// Option customizes a Client
type Option func(*clientOptions)

// WithBaseURL overrides the service base URL
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) { o.baseURL = baseURL }
}

// WithTimeouts overrides the connect/read timeout pair
func WithTimeouts(connect, read time.Duration) Option {
	return func(o *clientOptions) {
		o.connectTimeout = connect
		o.readTimeout = read
	}
}

// WithRateLimit caps outgoing requests per minute; 0 disables the limiter
func WithRateLimit(requestsPerMinute int) Option {
	return func(o *clientOptions) { o.maxRequestsPerMinute = requestsPerMinute }
}

// WithHTTPClient substitutes the underlying HTTP client, for tests
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = client }
}

// WithLogger attaches a logger; a no-op logger is used otherwise
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *clientOptions) { o.logger = log }
}

// New creates a client. Settings not supplied as options come from
// configuration (GRAPHIO_* / ONTOLOGY_SERVICE environment, config file,
// defaults).
func New(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig creates a client from an explicit configuration
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	o := clientOptions{
		baseURL:              cfg.Service.BaseURL,
		connectTimeout:       time.Duration(cfg.Service.ConnectTimeoutSeconds) * time.Second,
		readTimeout:          time.Duration(cfg.Service.ReadTimeoutSeconds) * time.Second,
		maxRequestsPerMinute: cfg.Service.MaxRequestsPerMinute,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.baseURL == "" {
		return nil, errors.NewInvalidRequestError("service base URL is empty")
	}
	if o.logger == nil {
		o.logger = zap.NewNop().Sugar()
	}

	var hc *httpclient.Client
	if o.httpClient != nil {
		hc = httpclient.Wrap(o.httpClient, o.connectTimeout, o.readTimeout)
	} else {
		hc = httpclient.New(o.connectTimeout, o.readTimeout)
	}

	var limiter *rate.Limiter
	if o.maxRequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(o.maxRequestsPerMinute)), 1)
	}

	c := &Client{
		baseURL: strings.TrimRight(o.baseURL, "/"),
		http:    hc,
		limiter: limiter,
		log:     o.logger.Named("graphio"),
	}
	c.apiBase = c.baseURL + "/graphio/v1"
	c.Ontology = ontology.NewNamespace(c, o.logger)
	c.KnowledgeGraph = &KnowledgeGraph{client: c}
	c.MetaType = &MetaType{Data: &DataAPI{client: c}}

	return c, nil
}

// Close releases the HTTP session. Idempotent; operations after Close fail
// with ErrClientClosed.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// BaseURL returns the configured service base URL
func (c *Client) BaseURL() string { return c.baseURL }

// ----------------------------------------------------------------------------
// Response envelope
// ----------------------------------------------------------------------------

// envelope is the common response wrapper the service emits
type envelope struct {
	Status *bool           `json:"status,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  *apiError       `json:"error,omitempty"`
}

type apiError struct {
	Code         string `json:"code"`
	Description  string `json:"description"`
	ErrorMessage string `json:"errorMessage"`
}

// checkEnvelope converts an error-flagged response body into a descriptive
// error naming the failed operation
func checkEnvelope(env envelope, operation string) error {
	if (env.Status != nil && !*env.Status) || env.Error != nil {
		if env.Error != nil {
			code := env.Error.Code
			if code == "" {
				code = "UNKNOWN"
			}
			return errors.Newf("%s failed: [%s] %s - %s", operation, code, env.Error.Description, env.Error.ErrorMessage)
		}
		return errors.Newf("%s failed", operation)
	}
	return nil
}

// ----------------------------------------------------------------------------
// Request plumbing
// ----------------------------------------------------------------------------

func (c *Client) do(ctx context.Context, method, rawURL string, body any, operation string) (json.RawMessage, error) {
	if c.closed.Load() {
		return nil, errors.Wrapf(errors.ErrClientClosed, "%s", operation)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrapf(err, "%s: rate limiter", operation)
		}
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: encode request", operation)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: build request", operation)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if httpclient.IsTimeout(err) {
			return nil, errors.Wrapf(errors.ErrTimeout, "%s (%s): %v", operation, c.http.FormatTimeouts(), err)
		}
		return nil, errors.Wrapf(err, "%s", operation)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read response", operation)
	}

	if resp.StatusCode >= 400 {
		return nil, errors.Newf("%s failed: HTTP %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return raw, nil
}

// getData performs a GET and unwraps the response envelope's data field
func (c *Client) getData(ctx context.Context, path string, params url.Values, operation string) (json.RawMessage, error) {
	rawURL := c.apiBase + path
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	raw, err := c.do(ctx, http.MethodGet, rawURL, nil, operation)
	if err != nil {
		return nil, err
	}
	return unwrapEnvelope(raw, operation)
}

// postData performs a JSON POST and unwraps the response envelope's data field
func (c *Client) postData(ctx context.Context, path string, body any, operation string) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, c.apiBase+path, body, operation)
	if err != nil {
		return nil, err
	}
	return unwrapEnvelope(raw, operation)
}

func unwrapEnvelope(raw json.RawMessage, operation string) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.Wrapf(err, "%s: decode response", operation)
	}
	if err := checkEnvelope(env, operation); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ----------------------------------------------------------------------------
// ontology.Transport implementation
// ----------------------------------------------------------------------------

// FetchObjectTypes looks up object types by name
func (c *Client) FetchObjectTypes(ctx context.Context, name string) ([]ontology.TypeInfo, error) {
	params := url.Values{}
	if name != "" {
		params.Set("name", name)
	}

	data, err := c.getData(ctx, "/object-type", params, "fetch object types")
	if err != nil {
		return nil, err
	}

	var types []ontology.TypeInfo
	if len(data) > 0 {
		if err := json.Unmarshal(data, &types); err != nil {
			return nil, errors.Wrap(err, "fetch object types: decode data")
		}
	}
	return types, nil
}

// FetchObjectTypeByID fetches one object type.
// Endpoints annotated with CommonResponse upstream return the payload bare
// rather than wrapped; a body carrying a top-level id is the payload itself.
func (c *Client) FetchObjectTypeByID(ctx context.Context, id string) (ontology.TypeInfo, error) {
	const operation = "fetch object type"

	raw, err := c.do(ctx, http.MethodGet, c.apiBase+"/object-type/"+url.PathEscape(id), nil, operation)
	if err != nil {
		return ontology.TypeInfo{}, err
	}

	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.ID != "" {
		var info ontology.TypeInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return ontology.TypeInfo{}, errors.Wrapf(err, "%s: decode response", operation)
		}
		return info, nil
	}

	data, err := unwrapEnvelope(raw, operation)
	if err != nil {
		return ontology.TypeInfo{}, err
	}

	var info ontology.TypeInfo
	if len(data) > 0 {
		if err := json.Unmarshal(data, &info); err != nil {
			return ontology.TypeInfo{}, errors.Wrapf(err, "%s: decode data", operation)
		}
	}
	return info, nil
}

// FetchObjectTypeProperties fetches the declared property list of a type
func (c *Client) FetchObjectTypeProperties(ctx context.Context, id string) ([]ontology.PropertyInfo, error) {
	data, err := c.getData(ctx, "/object-type-property/"+url.PathEscape(id), nil, "fetch object type properties")
	if err != nil {
		return nil, err
	}

	var properties []ontology.PropertyInfo
	if len(data) > 0 {
		if err := json.Unmarshal(data, &properties); err != nil {
			return nil, errors.Wrap(err, "fetch object type properties: decode data")
		}
	}
	return properties, nil
}

// ExecuteSelect runs one select call and returns the rows unmodified
func (c *Client) ExecuteSelect(ctx context.Context, req ontology.SelectRequest) ([]ontology.Row, error) {
	data, err := c.postData(ctx, "/ontology-workflow/objects/select", req, "select")
	if err != nil {
		return nil, err
	}

	var rows []ontology.Row
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, errors.Wrap(err, "select: decode data")
		}
	}
	return rows, nil
}

// SubmitCreate submits one batched create call
func (c *Client) SubmitCreate(ctx context.Context, messages []ontology.ObjectMessage) (map[string]any, error) {
	return c.submit(ctx, "/ontology-workflow/objects/insert", ontology.EventInsert, messages, "create objects")
}

// SubmitUpdate submits one batched update call
func (c *Client) SubmitUpdate(ctx context.Context, messages []ontology.ObjectMessage) (map[string]any, error) {
	return c.submit(ctx, "/ontology-workflow/objects/update", ontology.EventUpdate, messages, "update objects")
}

// SubmitDelete submits one batched delete call
func (c *Client) SubmitDelete(ctx context.Context, messages []ontology.ObjectMessage) (map[string]any, error) {
	return c.submit(ctx, "/ontology-workflow/objects/delete", ontology.EventDelete, messages, "delete objects")
}

func (c *Client) submit(ctx context.Context, path, eventType string, messages []ontology.ObjectMessage, operation string) (map[string]any, error) {
	data, err := c.postData(ctx, path, ontology.NewMutationEnvelope(eventType, messages), operation)
	if err != nil {
		return nil, err
	}

	result := map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, errors.Wrapf(err, "%s: decode data", operation)
		}
	}
	return result, nil
}
