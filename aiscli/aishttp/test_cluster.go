package aishttp

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soitun/aistore/aiscli"
	"github.com/soitun/aistore/aiserr"
	"github.com/soitun/aistore/aisval"
	"github.com/soitun/aistore/httptools"
	"github.com/soitun/aistore/testutil"
)

// TestClusterOptions encapsulates the options which can be passed when creating a new test cluster.
type TestClusterOptions struct {
	// Redirect makes the gateway redirect object requests to a "target", as a real cluster does.
	Redirect bool

	// TLS serves HTTPS using a self-signed certificate, see 'Certificate'.
	TLS bool

	// Handlers take precedence over the default handlers, keyed by method and path.
	Handlers httptools.TestHandlers
}

// TestCluster is a mock cluster gateway used for unit testing the REST client. State is kept in memory by an
// 'aiscli.TestClient', the cluster only implements the wire protocol.
type TestCluster struct {
	t        *testing.T
	server   *httptest.Server
	options  TestClusterOptions
	requests atomic.Int64

	// Client holds the state of the cluster, it may be used to seed/inspect buckets/objects.
	Client *aiscli.TestClient
}

// NewTestCluster creates a new test cluster which is closed once the test completes.
func NewTestCluster(t *testing.T, options TestClusterOptions) *TestCluster {
	cluster := &TestCluster{t: t, options: options, Client: aiscli.NewTestClient(t)}

	if options.TLS {
		cluster.server = httptest.NewTLSServer(http.HandlerFunc(cluster.Handler))
	} else {
		cluster.server = httptest.NewServer(http.HandlerFunc(cluster.Handler))
	}

	t.Cleanup(cluster.server.Close)

	return cluster
}

// URL returns the base URL of the gateway e.g. 'http://127.0.0.1:1234'.
func (t *TestCluster) URL() string {
	return t.server.URL
}

// Certificate returns the certificate used by the gateway, <nil> unless the cluster is using TLS.
func (t *TestCluster) Certificate() *x509.Certificate {
	return t.server.Certificate()
}

// Requests returns the number of requests handled by the cluster, including redirected ones.
func (t *TestCluster) Requests() int64 {
	return t.requests.Load()
}

// Handler dispatches the given request to a custom handler if one exists, falling back to the bucket/object API.
func (t *TestCluster) Handler(writer http.ResponseWriter, request *http.Request) {
	t.requests.Add(1)

	if handler, ok := t.options.Handlers.Lookup(request); ok {
		handler(writer, request)
		return
	}

	if rest, ok := strings.CutPrefix(request.URL.Path, aisval.URLPathBuckets+"/"); ok {
		t.Buckets(writer, request, rest)
		return
	}

	if rest, ok := strings.CutPrefix(request.URL.Path, aisval.URLPathObjects+"/"); ok {
		t.Objects(writer, request, rest)
		return
	}

	t.t.Fatalf("Endpoint '%s' does not have a handler", request.URL.Path)
}

// Buckets implements the '/v1/buckets' endpoints.
func (t *TestCluster) Buckets(writer http.ResponseWriter, request *http.Request, name string) {
	provider, err := aisval.ParseProvider(request.URL.Query().Get(aisval.QparamProvider))
	if err != nil {
		t.writeError(writer, request, aiserr.NewServiceError(http.StatusBadRequest, request.Method, request.URL.Path,
			[]byte(err.Error())))

		return
	}

	if name == "" {
		t.listBuckets(writer, request, provider)
		return
	}

	bck := aisval.Bck{Name: name, Provider: provider}

	if request.Method == http.MethodHead {
		props, err := t.Client.HeadBucket(request.Context(), bck)
		if err != nil {
			t.writeError(writer, request, err)
			return
		}

		writer.Header().Set(aisval.HeaderBucketProps, string(testutil.MarshalJSON(t.t, props)))
		writer.WriteHeader(http.StatusOK)

		return
	}

	var msg struct {
		Action string         `json:"action"`
		Value  *aisval.LsoMsg `json:"value"`
	}

	testutil.DecodeJSON(t.t, request.Body, &msg)

	switch {
	case request.Method == http.MethodPost && msg.Action == aisval.ActCreateBck:
		_, err = t.Client.HeadBucket(request.Context(), bck)
		if err == nil {
			err = aiserr.NewServiceError(http.StatusConflict, request.Method, request.URL.Path,
				[]byte(fmt.Sprintf("bucket %q already exists", bck.String())))
		} else if aiserr.IsBucketNotFound(err) {
			err = t.Client.CreateBucket(request.Context(), bck)
		}
	case request.Method == http.MethodDelete && msg.Action == aisval.ActDestroyBck:
		err = t.Client.DestroyBucket(request.Context(), bck)
	case request.Method == http.MethodPost && msg.Action == aisval.ActList:
		t.listObjects(writer, request, bck, msg.Value)
		return
	default:
		t.t.Fatalf("Unexpected '%s' request with action '%s'", request.Method, msg.Action)
	}

	if err != nil {
		t.writeError(writer, request, err)
		return
	}

	writer.WriteHeader(http.StatusOK)
}

// listBuckets responds with the buckets of the given provider.
func (t *TestCluster) listBuckets(writer http.ResponseWriter, request *http.Request, provider aisval.Provider) {
	if request.URL.Query().Get(aisval.QparamProvider) == "" {
		provider = ""
	}

	bcks, err := t.Client.ListBuckets(request.Context(), provider)
	require.NoError(t.t, err)

	testutil.EncodeJSON(t.t, writer, bcks)
}

// listObjects responds with a single page of the listing described by the given message.
func (t *TestCluster) listObjects(
	writer http.ResponseWriter,
	request *http.Request,
	bck aisval.Bck,
	msg *aisval.LsoMsg,
) {
	if msg == nil {
		msg = &aisval.LsoMsg{}
	}

	opts := aiscli.ListObjectsOptions{
		PageSize:          msg.PageSize,
		Prefix:            msg.Prefix,
		ContinuationToken: msg.ContinuationToken,
		UUID:              msg.UUID,
	}

	if msg.Props != "" {
		opts.Props = strings.Split(msg.Props, ",")
	}

	result, err := t.Client.ListObjects(request.Context(), bck, opts)
	if err != nil {
		t.writeError(writer, request, err)
		return
	}

	testutil.EncodeJSON(t.t, writer, result)
}

// Objects implements the '/v1/objects' endpoints.
func (t *TestCluster) Objects(writer http.ResponseWriter, request *http.Request, rest string) {
	if t.redirect(writer, request) {
		return
	}

	provider, err := aisval.ParseProvider(request.URL.Query().Get(aisval.QparamProvider))
	require.NoError(t.t, err)

	name, object, _ := strings.Cut(rest, "/")
	bck := aisval.Bck{Name: name, Provider: provider}

	switch request.Method {
	case http.MethodPut:
		data, err := io.ReadAll(request.Body)
		require.NoError(t.t, err)

		err = t.Client.PutObject(request.Context(), bck, object, bytes.NewReader(data))
		if err != nil {
			t.writeError(writer, request, err)
			return
		}

		writer.WriteHeader(http.StatusOK)
	case http.MethodHead:
		props, err := t.Client.HeadObject(request.Context(), bck, object)
		if err != nil {
			t.writeError(writer, request, err)
			return
		}

		writeProps(writer, props)
		writer.WriteHeader(http.StatusOK)
	case http.MethodGet:
		t.getObject(writer, request, bck, object)
	case http.MethodDelete:
		err = t.Client.DeleteObject(request.Context(), bck, object)
		if err != nil {
			t.writeError(writer, request, err)
			return
		}

		writer.WriteHeader(http.StatusOK)
	default:
		t.t.Fatalf("Unexpected '%s' request for object '%s'", request.Method, bck.Cname(object))
	}
}

// getObject streams the requested object (or byte range) to the client.
func (t *TestCluster) getObject(writer http.ResponseWriter, request *http.Request, bck aisval.Bck, object string) {
	byteRange, err := parseRange(request.Header.Get(aisval.HeaderRange))
	require.NoError(t.t, err)

	stream, err := t.Client.GetObject(request.Context(), bck, object, aiscli.GetObjectOptions{ByteRange: byteRange})
	if err != nil {
		t.writeError(writer, request, err)
		return
	}

	data, err := stream.ReadAll()
	require.NoError(t.t, err)

	writeProps(writer, stream.Props)

	if byteRange != nil {
		writer.WriteHeader(http.StatusPartialContent)
	} else {
		writer.WriteHeader(http.StatusOK)
	}

	_, err = writer.Write(data)
	require.NoError(t.t, err)
}

// redirect sends object requests received by the "gateway" to the same URL, marked as handled by a "target".
func (t *TestCluster) redirect(writer http.ResponseWriter, request *http.Request) bool {
	const param = "target"

	query := request.URL.Query()
	if !t.options.Redirect || query.Has(param) {
		return false
	}

	query.Set(param, "1")

	location := *request.URL
	location.RawQuery = query.Encode()

	http.Redirect(writer, request, location.String(), http.StatusTemporaryRedirect)

	return true
}

// writeError responds with the error payload for the given error, as the cluster would.
func (t *TestCluster) writeError(writer http.ResponseWriter, request *http.Request, err error) {
	status := aiserr.StatusCode(err)
	if status == 0 {
		status = http.StatusInternalServerError
	}

	message := err.Error()

	var serviceErr *aiserr.ServiceError
	if errors.As(err, &serviceErr) {
		message = serviceErr.Message
	}

	writer.Header().Set("Content-Type", string(httptools.ContentTypeJSON))
	writer.WriteHeader(status)

	if request.Method == http.MethodHead {
		return
	}

	testutil.EncodeJSON(t.t, writer, aisval.Error{
		Status:  status,
		Message: message,
		Method:  request.Method,
		URLPath: request.URL.Path,
	})
}

// writeProps sets the object properties as response headers.
func writeProps(writer http.ResponseWriter, props aisval.ObjectProps) {
	for key, value := range props {
		if value != "" {
			writer.Header().Set(key, value)
		}
	}
}

// parseRange parses a 'Range' header in the 'bytes=start-end' format, returning <nil> for an empty header.
func parseRange(header string) (*aisval.ByteRange, error) {
	if header == "" {
		return nil, nil
	}

	start, end, ok := strings.Cut(strings.TrimPrefix(header, "bytes="), "-")
	if !ok {
		return nil, fmt.Errorf("invalid range header '%s'", header)
	}

	byteRange := &aisval.ByteRange{}

	var err error

	byteRange.Start, err = strconv.ParseInt(start, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid range start: %w", err)
	}

	if end == "" {
		return byteRange, nil
	}

	byteRange.End, err = strconv.ParseInt(end, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid range end: %w", err)
	}

	return byteRange, nil
}
