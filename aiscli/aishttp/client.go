// Package aishttp implements the 'aiscli.Client' interface by talking to the REST API exposed by the gateways of a
// cluster.
package aishttp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/soitun/aistore/aiscli"
	"github.com/soitun/aistore/aiserr"
	"github.com/soitun/aistore/aisval"
	"github.com/soitun/aistore/aprov"
	"github.com/soitun/aistore/endpoint"
	"github.com/soitun/aistore/envvar"
	"github.com/soitun/aistore/httptools"
	"github.com/soitun/aistore/log"
	"github.com/soitun/aistore/netutil"
)

// ClientOptions encapsulates the options for creating a new cluster client.
type ClientOptions struct {
	// Endpoint lists the gateways of the cluster e.g. 'http://localhost:8080' or 'ais://gw1:8080,gw2:8080'.
	Endpoint string

	// Provider supplies the AuthN token/user agent, defaults to a static provider populated from the environment.
	Provider aprov.Provider

	// Logger receives the logs of the client, may be <nil>.
	Logger log.Logger

	// TLSConfig is used for HTTPS endpoints.
	TLSConfig *tls.Config

	// ReqResLogLevel is the level at which the dispatching and receiving of requests/responses is logged.
	ReqResLogLevel log.Level

	// RequestRetries is the number of times a request is attempted, overridden by 'AIS_CLIENT_NUM_RETRIES'.
	RequestRetries int

	// RequestTimeout bounds requests which read the whole response, overridden by 'AIS_CLIENT_REQUEST_TIMEOUT'.
	RequestTimeout time.Duration

	// ClientTimeout is the timeout of the HTTP client, zero means no timeout. Overridden by 'AIS_CLIENT_TIMEOUT'.
	ClientTimeout time.Duration

	// HTTPTimeouts are the connection level timeouts.
	HTTPTimeouts netutil.HTTPTimeouts

	// Metrics, when non-nil, records every request attempt.
	Metrics *httptools.Metrics
}

// Client implements the 'aiscli.Client' interface using the REST API of the cluster.
//
// NOTE: Requests are spread across the gateways, a failed attempt is retried using the next gateway.
type Client struct {
	client *httptools.Client
	logger log.WrappedLogger
	hosts  []string
	next   atomic.Uint64
}

var _ aiscli.Client = (*Client)(nil)

// NewClient returns a client for the cluster with the given endpoint, hostnames are resolved immediately.
func NewClient(ctx context.Context, options ClientOptions) (*Client, error) {
	logger := log.NewWrappedLogger(options.Logger).WithPrefix("(AIS)")

	resolved, err := endpoint.ParseAndResolve(ctx, options.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve endpoint: %w", aiserr.HandleError(err))
	}

	if clientTimeout, ok := envvar.GetDuration(EnvClientTimeout); ok {
		logger.Infof("Set HTTP client timeout to: %s", clientTimeout)
		options.ClientTimeout = clientTimeout
	}

	if requestTimeout, ok := envvar.GetDuration(EnvRequestTimeout); ok {
		logger.Infof("Set request timeout to: %s", requestTimeout)
		options.RequestTimeout = requestTimeout
	}

	if requestRetries, ok := envvar.GetInt(EnvNumRetries); ok && requestRetries > 0 {
		logger.Infof("Set number of retries for requests to: %d", requestRetries)
		options.RequestRetries = requestRetries
	}

	provider := options.Provider
	if provider == nil {
		provider = aprov.NewStaticFromEnv(DefaultUserAgent)
	}

	client := httptools.NewClient(
		httptools.NewHTTPClient(options.ClientTimeout, netutil.NewHTTPTransport(options.TLSConfig, options.HTTPTimeouts)),
		provider,
		options.Logger,
		httptools.ClientOptions{
			RequestRetries: options.RequestRetries,
			RequestTimeout: options.RequestTimeout,
			ReqResLogLevel: options.ReqResLogLevel,
			Metrics:        options.Metrics,
		},
	)

	hosts := resolved.Hosts()

	logger.Debugf("Created client for gateways %v", hosts)

	return &Client{client: client, logger: logger, hosts: hosts}, nil
}

// Hosts returns the base URL of each gateway used by the client.
func (c *Client) Hosts() []string {
	return c.hosts
}

func (c *Client) CreateBucket(ctx context.Context, bck aisval.Bck) error {
	request, err := c.newActionRequest(http.MethodPost, bucketEndpoint(bck), bck, aisval.ActCreateBck, nil)
	if err != nil {
		return err
	}

	_, err = c.execute(ctx, request)

	// Creation is treated as idempotent, the bucket existing is the desired outcome.
	if httptools.IsUnexpectedStatusCode(err, http.StatusConflict) {
		c.logger.Debugf("Bucket '%s' already exists", bck)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", aiserr.FromResponse(err, bck, ""))
	}

	return nil
}

func (c *Client) DestroyBucket(ctx context.Context, bck aisval.Bck) error {
	request, err := c.newActionRequest(http.MethodDelete, bucketEndpoint(bck), bck, aisval.ActDestroyBck, nil)
	if err != nil {
		return err
	}

	_, err = c.execute(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to destroy bucket: %w", aiserr.FromResponse(err, bck, ""))
	}

	return nil
}

func (c *Client) HeadBucket(ctx context.Context, bck aisval.Bck) (aisval.BucketProps, error) {
	response, err := c.execute(ctx, &httptools.Request{
		Method:             http.MethodHead,
		Endpoint:           bucketEndpoint(bck),
		QueryParameters:    bck.Query(),
		ExpectedStatusCode: http.StatusOK,
	})
	if err != nil {
		return aisval.BucketProps{}, fmt.Errorf("failed to head bucket: %w", aiserr.FromResponse(err, bck, ""))
	}

	props := aisval.BucketProps{Provider: aisval.Provider(bck.Provider.String())}

	encoded := response.Header.Get(aisval.HeaderBucketProps)
	if encoded == "" {
		return props, nil
	}

	err = jsoniter.UnmarshalFromString(encoded, &props)
	if err != nil {
		return aisval.BucketProps{}, fmt.Errorf("failed to unmarshal bucket properties: %w", err)
	}

	return props, nil
}

func (c *Client) ListBuckets(ctx context.Context, provider aisval.Provider) ([]aisval.Bck, error) {
	body, err := jsoniter.Marshal(aisval.ActionMsg{Action: aisval.ActList})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action: %w", err)
	}

	request := &httptools.Request{
		Method:             http.MethodGet,
		Endpoint:           httptools.Endpoint(aisval.URLPathBuckets + "/"),
		ContentType:        httptools.ContentTypeJSON,
		Body:               body,
		ExpectedStatusCode: http.StatusOK,
	}

	if provider != "" {
		request.QueryParameters = aisval.Bck{Provider: provider}.Query()
	}

	response, err := c.execute(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", aiserr.FromResponse(err, aisval.Bck{Provider: provider}, ""))
	}

	bcks := make([]aisval.Bck, 0)

	err = jsoniter.Unmarshal(response.Body, &bcks)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal buckets: %w", err)
	}

	return bcks, nil
}

func (c *Client) PutObject(ctx context.Context, bck aisval.Bck, name string, body io.ReadSeeker) error {
	request := &httptools.Request{
		Method:             http.MethodPut,
		Endpoint:           objectEndpoint(bck, name),
		ContentType:        httptools.ContentTypeOctetStream,
		QueryParameters:    bck.Query(),
		Reader:             body,
		ExpectedStatusCode: http.StatusOK,
		Timeout:            -1,
	}

	// Uploads are unbounded in size, so aren't subject to the request timeout used by 'ExecuteWithRetries'.
	resp, err := c.client.Do(ctx, request, c.customizer(request)) //nolint:bodyclose
	if err != nil {
		return fmt.Errorf("failed to put object: %w", aiserr.FromResponse(err, bck, name))
	}

	c.client.CleanupResp(resp)

	return nil
}

func (c *Client) HeadObject(ctx context.Context, bck aisval.Bck, name string) (aisval.ObjectProps, error) {
	response, err := c.execute(ctx, &httptools.Request{
		Method:             http.MethodHead,
		Endpoint:           objectEndpoint(bck, name),
		QueryParameters:    bck.Query(),
		ExpectedStatusCode: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to head object: %w", aiserr.FromResponse(err, bck, name))
	}

	return aisval.NewObjectProps(response.Header), nil
}

func (c *Client) GetObject(
	ctx context.Context,
	bck aisval.Bck,
	name string,
	opts aiscli.GetObjectOptions,
) (*aiscli.ObjectStream, error) {
	if err := opts.ByteRange.Valid(); err != nil {
		return nil, err
	}

	request := &httptools.Request{
		Method:             http.MethodGet,
		Endpoint:           objectEndpoint(bck, name),
		QueryParameters:    bck.Query(),
		ExpectedStatusCode: http.StatusOK,
		Timeout:            -1,
	}

	if opts.ByteRange != nil {
		request.Header = http.Header{aisval.HeaderRange: {opts.ByteRange.ToRangeHeader()}}
		request.ExpectedStatusCode = http.StatusPartialContent
	}

	resp, err := c.client.Do(ctx, request, c.customizer(request)) //nolint:bodyclose
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", aiserr.FromResponse(err, bck, name))
	}

	if resp.ContentLength >= 0 {
		resp.Header.Set(aisval.HeaderContentLength, strconv.FormatInt(resp.ContentLength, 10))
	}

	return aiscli.NewObjectStream(resp.Body, aisval.NewObjectProps(resp.Header), opts), nil
}

func (c *Client) DeleteObject(ctx context.Context, bck aisval.Bck, name string) error {
	_, err := c.execute(ctx, &httptools.Request{
		Method:             http.MethodDelete,
		Endpoint:           objectEndpoint(bck, name),
		QueryParameters:    bck.Query(),
		ExpectedStatusCode: http.StatusOK,
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", aiserr.FromResponse(err, bck, name))
	}

	return nil
}

func (c *Client) ListObjects(
	ctx context.Context,
	bck aisval.Bck,
	opts aiscli.ListObjectsOptions,
) (*aisval.LsoResult, error) {
	request, err := c.newActionRequest(http.MethodPost, bucketEndpoint(bck), bck, aisval.ActList, opts.Msg())
	if err != nil {
		return nil, err
	}

	// Listing doesn't modify the bucket, it's sent as a 'POST' only because it carries a body.
	request.Idempotent = true

	response, err := c.execute(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", aiserr.FromResponse(err, bck, ""))
	}

	var result *aisval.LsoResult

	err = jsoniter.Unmarshal(response.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
	}

	if result == nil {
		return nil, errors.New("failed to list objects: got an empty listing")
	}

	return result, nil
}

func (c *Client) ListAllObjects(
	ctx context.Context,
	bck aisval.Bck,
	opts aiscli.ListObjectsOptions,
) ([]*aisval.LsoEntry, error) {
	return aiscli.ListAll(ctx, c, bck, opts)
}

func (c *Client) ListObjectsIter(
	ctx context.Context,
	bck aisval.Bck,
	opts aiscli.ListObjectsOptions,
) *aiscli.ObjectIterator {
	return aiscli.NewObjectIterator(ctx, c, bck, opts)
}

// newActionRequest returns a request which asks the cluster to perform the given action on the bucket.
func (c *Client) newActionRequest(
	method string,
	path httptools.Endpoint,
	bck aisval.Bck,
	action string,
	value any,
) (*httptools.Request, error) {
	body, err := jsoniter.Marshal(aisval.ActionMsg{Action: action, Name: bck.Name, Value: value})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action: %w", err)
	}

	return &httptools.Request{
		Method:             httptools.Method(method),
		Endpoint:           path,
		ContentType:        httptools.ContentTypeJSON,
		QueryParameters:    bck.Query(),
		Body:               body,
		ExpectedStatusCode: http.StatusOK,
	}, nil
}

// execute the given request reading the whole response, using the next gateway.
func (c *Client) execute(ctx context.Context, request *httptools.Request) (*httptools.Response, error) {
	return c.client.ExecuteWithRetries(ctx, request, c.customizer(request))
}

// customizer returns a retry customizer which starts at the next gateway, rotating through the others on retries.
func (c *Client) customizer(request *httptools.Request) httptools.RetryCustomizer {
	offset := int(c.next.Add(1) % uint64(len(c.hosts)))

	request.Host = c.hosts[offset]

	return &httptools.RoundRobinCustomizer{
		DefaultRetryCustomizer: httptools.DefaultRetryCustomizer{Request: *request},
		Hosts:                  c.hosts,
		Offset:                 offset,
	}
}

// bucketEndpoint returns the endpoint for the given bucket.
func bucketEndpoint(bck aisval.Bck) httptools.Endpoint {
	return httptools.Endpoint(aisval.URLPathBuckets + "/%s").Format(bck.Name)
}

// objectEndpoint returns the endpoint for the given object.
func objectEndpoint(bck aisval.Bck, name string) httptools.Endpoint {
	return httptools.Endpoint(aisval.URLPathObjects + "/%s/%s").Format(bck.Name, name)
}
