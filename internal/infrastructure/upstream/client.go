package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/loyalty-admin/internal/domain/entity"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const maxBodySize = 10 << 20

// Config holds the settings of a Client
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
	MaxPages int
	Debug    bool
	// Transport overrides http.DefaultTransport, mostly for tests
	Transport http.RoundTripper
}

// Client calls the loyalty API, probing the candidate paths of a resource in order
type Client struct {
	baseURL  string
	timeout  time.Duration
	pageSize int
	maxPages int
	debug    bool
	base     http.RoundTripper
	tracer   trace.Tracer
}

// NewClient creates a new upstream client
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 50
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  cfg.Timeout,
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
		debug:    cfg.Debug,
		base:     cfg.Transport,
		tracer:   observability.Tracer("loyalty-admin/upstream"),
	}
}

// PageSize returns the number of records requested per upstream page
func (c *Client) PageSize() int {
	return c.pageSize
}

type tokenSourceKey struct{}

// WithToken returns a context whose upstream calls carry the bearer token.
// An empty token leaves the calls anonymous.
func WithToken(ctx context.Context, token string) context.Context {
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx
	}
	return WithTokenSource(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
}

// WithTokenSource returns a context whose upstream calls are authorized by ts
func WithTokenSource(ctx context.Context, ts oauth2.TokenSource) context.Context {
	if ts == nil {
		return ctx
	}
	return context.WithValue(ctx, tokenSourceKey{}, ts)
}

func (c *Client) httpClient(ctx context.Context) *http.Client {
	transport := c.base
	if ts, ok := ctx.Value(tokenSourceKey{}).(oauth2.TokenSource); ok {
		transport = &oauth2.Transport{Source: ts, Base: c.base}
	}
	return &http.Client{Timeout: c.timeout, Transport: transport}
}

// attempt is the outcome of one call to one candidate endpoint
type attempt struct {
	endpoint string
	status   int
	body     []byte
	err      error
}

func (c *Client) do(ctx context.Context, res Resource, method, path string, query url.Values, payload []byte) attempt {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	a := attempt{endpoint: path}

	ctx, span := c.tracer.Start(ctx, "upstream "+method+" "+res.Name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("upstream.resource", res.Name),
			attribute.String("http.method", method),
			attribute.String("http.url", endpoint),
		),
	)
	defer span.End()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		a.err = err
		return a
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient(ctx).Do(req)
	observability.UpstreamLatency.WithLabelValues(res.Name, method).Observe(time.Since(start).Seconds())
	if err != nil {
		a.err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return a
	}
	defer resp.Body.Close()

	a.status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	a.body, a.err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if a.err != nil {
		span.RecordError(a.err)
	}
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return a
}

func (c *Client) logf(format string, args ...any) {
	if c.debug {
		log.Printf("[upstream] "+format, args...)
	}
}

func (c *Client) record(res Resource, outcome string) {
	observability.UpstreamAttempts.WithLabelValues(res.Name, outcome).Inc()
}

func (c *Client) skip(res Resource, failure *Error) {
	observability.UpstreamFallthroughs.WithLabelValues(res.Name).Inc()
	c.logf("%s: %s failed (%s), trying next endpoint", res.Name, failure.Endpoint, failure.Kind)
}

func (c *Client) exhausted(res Resource, last *Error, attempts int) *Error {
	observability.UpstreamExhausted.WithLabelValues(res.Name).Inc()
	log.Printf("[upstream] %s: all %d endpoints failed, last: %v", res.Name, attempts, last)
	return &Error{Kind: KindExhausted, Resource: res.Name, Attempts: attempts, Err: last}
}

// readFailure classifies a failed read attempt, nil when the attempt succeeded
func readFailure(res Resource, a attempt) *Error {
	if a.err != nil {
		return &Error{Kind: KindTransport, Resource: res.Name, Endpoint: a.endpoint, Err: a.err}
	}
	if a.status < 200 || a.status > 299 {
		return &Error{Kind: KindStatus, Resource: res.Name, Endpoint: a.endpoint, Status: a.status, Message: MessageFromBody(a.body)}
	}
	return nil
}

// decodeFailure turns an envelope error into an upstream error of the attempt
func decodeFailure(res Resource, a attempt, err error) *Error {
	var rejected *Error
	if errors.As(err, &rejected) {
		rejected.Resource = res.Name
		rejected.Endpoint = a.endpoint
		rejected.Status = a.status
		return rejected
	}
	return &Error{Kind: KindMalformed, Resource: res.Name, Endpoint: a.endpoint, Status: a.status, Err: err}
}

// firstListPage tries paths in order and returns the first page that decodes,
// together with the index of the path that served it
func firstListPage[T any](ctx context.Context, c *Client, res Resource, paths []string, query url.Values) ([]T, *Meta, int, error) {
	if len(paths) == 0 {
		return nil, nil, -1, &Error{Kind: KindExhausted, Resource: res.Name, Err: errors.New("no candidate endpoints")}
	}

	var last *Error
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, -1, err
		}

		a := c.do(ctx, res, http.MethodGet, path, query, nil)
		if err := ctx.Err(); err != nil {
			return nil, nil, -1, err
		}

		failure := readFailure(res, a)
		if failure == nil {
			items, meta, err := DecodeList[T](a.body, res.Key)
			if err == nil {
				c.record(res, "ok")
				return items, meta, i, nil
			}
			failure = decodeFailure(res, a, err)
		}

		c.record(res, string(failure.Kind))
		last = failure
		if i < len(paths)-1 {
			c.skip(res, failure)
		}
	}
	return nil, nil, -1, c.exhausted(res, last, len(paths))
}

// FetchList fetches one list page from the first candidate endpoint that answers
// with a recognisable envelope. Every failure falls through to the next candidate.
func FetchList[T any](ctx context.Context, c *Client, res Resource, query url.Values) ([]T, *Meta, error) {
	items, meta, _, err := firstListPage[T](ctx, c, res, res.Paths, query)
	return items, meta, err
}

// Identified is a record with an identifier
type Identified interface {
	GetID() entity.ID
}

// FetchAll fetches every record of a resource with limit/offset paging. Once the
// first page has picked an endpoint, the remaining pages are read from it.
// Paging stops at a short page, at the reported total, or when a page adds
// nothing new.
func FetchAll[T Identified](ctx context.Context, c *Client, res Resource, query url.Values) ([]T, *Meta, error) {
	paths := res.Paths
	var (
		all   []T
		first *Meta
		seen  = make(map[entity.ID]struct{})
	)

	offset := 0
	for page := 0; page < c.maxPages; page++ {
		q := cloneQuery(query)
		q.Set("limit", strconv.Itoa(c.pageSize))
		q.Set("offset", strconv.Itoa(offset))

		items, meta, idx, err := firstListPage[T](ctx, c, res, paths, q)
		if err != nil {
			return nil, nil, err
		}
		if page == 0 {
			first = meta
			paths = paths[idx : idx+1]
		}

		added := 0
		for _, item := range items {
			id := item.GetID()
			if !id.IsZero() {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
			}
			all = append(all, item)
			added++
		}

		if len(items) < c.pageSize || added == 0 {
			break
		}
		if total := first.Pagination.TotalItems(); total > 0 && int64(len(all)) >= total {
			break
		}
		offset += len(items)
	}

	if all == nil {
		all = []T{}
	}
	return all, first, nil
}

// FetchOne fetches a single record. A 404 from a candidate endpoint is definitive:
// it is returned as KindNotFound without trying the others.
func FetchOne[T any](ctx context.Context, c *Client, res Resource, id string) (T, error) {
	var zero T
	if len(res.Paths) == 0 {
		return zero, &Error{Kind: KindExhausted, Resource: res.Name, Err: errors.New("no candidate endpoints")}
	}

	var last *Error
	for i, path := range res.Paths {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		a := c.do(ctx, res, http.MethodGet, path+"/"+url.PathEscape(id), nil, nil)
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		if a.err == nil && a.status == http.StatusNotFound {
			c.record(res, string(KindNotFound))
			return zero, &Error{Kind: KindNotFound, Resource: res.Name, Endpoint: a.endpoint, Status: a.status, Message: MessageFromBody(a.body)}
		}

		failure := readFailure(res, a)
		if failure == nil {
			record, _, err := DecodeOne[T](a.body, res.Singular)
			if err == nil {
				c.record(res, "ok")
				return record, nil
			}
			failure = decodeFailure(res, a, err)
		}

		c.record(res, string(failure.Kind))
		last = failure
		if i < len(res.Paths)-1 {
			c.skip(res, failure)
		}
	}
	return zero, c.exhausted(res, last, len(res.Paths))
}

// Reply is the answer of the endpoint that accepted a mutation
type Reply struct {
	Endpoint string
	Status   int
	Message  string
	Body     []byte
}

// Send performs a mutation. suffix is appended to the candidate path, e.g. "/42"
// or "/bulk-update-sequence". The next candidate is tried only when the route
// does not exist (404/405) or the connection could not be established; any other
// answer is final, so a mutation is never replayed against a second endpoint.
func Send(ctx context.Context, c *Client, method string, res Resource, suffix string, body any) (*Reply, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", res.Name, err)
		}
	}
	if len(res.Paths) == 0 {
		return nil, &Error{Kind: KindExhausted, Resource: res.Name, Err: errors.New("no candidate endpoints")}
	}

	var last *Error
	for i, path := range res.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a := c.do(ctx, res, method, path+suffix, nil, payload)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var failure *Error
		switch {
		case a.err != nil && notConnected(a.err):
			failure = &Error{Kind: KindTransport, Resource: res.Name, Endpoint: a.endpoint, Err: a.err}
		case a.err != nil:
			c.record(res, string(KindTransport))
			return nil, &Error{Kind: KindTransport, Resource: res.Name, Endpoint: a.endpoint, Err: a.err}
		case a.status == http.StatusNotFound || a.status == http.StatusMethodNotAllowed:
			failure = &Error{Kind: KindStatus, Resource: res.Name, Endpoint: a.endpoint, Status: a.status, Message: MessageFromBody(a.body)}
		case a.status < 200 || a.status > 299:
			c.record(res, string(KindRejected))
			return nil, &Error{Kind: KindRejected, Resource: res.Name, Endpoint: a.endpoint, Status: a.status, Message: MessageFromBody(a.body)}
		default:
			return c.accept(res, a)
		}

		c.record(res, string(failure.Kind))
		last = failure
		if i < len(res.Paths)-1 {
			c.skip(res, failure)
		}
	}
	return nil, c.exhausted(res, last, len(res.Paths))
}

// accept checks the envelope of a 2xx mutation answer for success:false
func (c *Client) accept(res Resource, a attempt) (*Reply, error) {
	reply := &Reply{Endpoint: a.endpoint, Status: a.status, Body: a.body}
	trimmed := bytes.TrimSpace(a.body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		c.record(res, "ok")
		return reply, nil
	}

	_, meta, err := decodeObject(trimmed)
	if err != nil {
		var rejected *Error
		if errors.As(err, &rejected) {
			c.record(res, string(KindRejected))
			return nil, decodeFailure(res, a, err)
		}
		c.record(res, "ok")
		return reply, nil
	}
	reply.Message = meta.Message
	c.record(res, "ok")
	return reply, nil
}

// DecodeReply reads the record echoed back by a mutation, if any
func DecodeReply[T any](reply *Reply, res Resource) (T, bool) {
	record, _, err := DecodeOne[T](reply.Body, res.Singular)
	if err != nil {
		var zero T
		return zero, false
	}
	return record, true
}

// notConnected reports whether the request never reached the server
func notConnected(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q)+2)
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
