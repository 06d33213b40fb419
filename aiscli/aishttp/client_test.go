package aishttp

import (
	"bytes"
	"context"
	"encoding/pem"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/soitun/aistore/aiscli"
	"github.com/soitun/aistore/aiserr"
	"github.com/soitun/aistore/aisval"
	"github.com/soitun/aistore/aprov"
	"github.com/soitun/aistore/endpoint"
	"github.com/soitun/aistore/httptools"
	"github.com/soitun/aistore/testutil"
	"github.com/soitun/aistore/tlsutil"
)

func newTestClient(t *testing.T, cluster *TestCluster) *Client {
	client, err := NewClient(context.Background(), ClientOptions{
		Endpoint: cluster.URL(),
		Provider: &aprov.Static{Token: "token", UserAgent: "test"},
	})
	require.NoError(t, err)

	return client
}

// newTestBucket creates a bucket in a new cluster, returning a client for the cluster.
func newTestBucket(t *testing.T, options TestClusterOptions) (*Client, aisval.Bck) {
	client := newTestClient(t, NewTestCluster(t, options))
	bck := aisval.NewBck("bucket")

	require.NoError(t, client.CreateBucket(context.Background(), bck))

	return client, bck
}

func putObjects(t *testing.T, client aiscli.Client, bck aisval.Bck, names ...string) {
	for _, name := range names {
		require.NoError(t, client.PutObject(context.Background(), bck, name, strings.NewReader(name)))
	}
}

func objectNames(prefix string, n int) []string {
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, fmt.Sprintf("%sobj-%03d", prefix, i))
	}

	return names
}

func TestNewClient(t *testing.T) {
	cluster := NewTestCluster(t, TestClusterOptions{})

	client := newTestClient(t, cluster)
	require.Equal(t, []string{cluster.URL()}, client.Hosts())
	require.Equal(t, httptools.DefaultRequestRetries, client.client.RequestRetries())
}

func TestNewClientEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvNumRetries, "5")

	client := newTestClient(t, NewTestCluster(t, TestClusterOptions{}))
	require.Equal(t, 5, client.client.RequestRetries())
}

func TestNewClientInvalidEndpoint(t *testing.T) {
	_, err := NewClient(context.Background(), ClientOptions{Endpoint: "ftp://localhost"})
	require.ErrorIs(t, err, endpoint.ErrBadScheme)
}

func TestNewClientTLS(t *testing.T) {
	cluster := NewTestCluster(t, TestClusterOptions{TLS: true})

	tlsConfig, err := tlsutil.NewTLSConfig(tlsutil.TLSConfigOptions{
		RootCAs: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cluster.Certificate().Raw}),
	})
	require.NoError(t, err)

	client, err := NewClient(context.Background(), ClientOptions{Endpoint: cluster.URL(), TLSConfig: tlsConfig})
	require.NoError(t, err)
	require.Equal(t, []string{cluster.URL()}, client.Hosts())

	bck := aisval.NewBck("bucket")

	require.NoError(t, client.CreateBucket(context.Background(), bck))
	require.NoError(t, client.PutObject(context.Background(), bck, "object", strings.NewReader("data")))
}

func TestCreateDestroyBucket(t *testing.T) {
	cluster := NewTestCluster(t, TestClusterOptions{})
	client := newTestClient(t, cluster)
	bck := aisval.NewBck("bucket")

	require.NoError(t, client.CreateBucket(context.Background(), bck))
	require.NoError(t, client.CreateBucket(context.Background(), bck))

	props, err := client.HeadBucket(context.Background(), bck)
	require.NoError(t, err)
	require.Equal(t, aisval.ProviderAIS, props.Provider)
	require.Equal(t, aisval.DefaultChecksumType, props.Checksum.Type)

	bcks, err := client.ListBuckets(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, []aisval.Bck{bck}, bcks)

	require.NoError(t, client.DestroyBucket(context.Background(), bck))
	require.Empty(t, cluster.Client.Buckets)

	err = client.DestroyBucket(context.Background(), bck)
	require.True(t, aiserr.IsBucketNotFound(err))

	_, err = client.HeadBucket(context.Background(), bck)
	require.True(t, aiserr.IsBucketNotFound(err))
}

func TestCreateBucketFailure(t *testing.T) {
	handlers := make(httptools.TestHandlers)
	handlers.Add(http.MethodPost, "/v1/buckets/bucket", httptools.NewTestHandler(t, http.StatusBadRequest,
		testutil.MarshalJSON(t, aisval.Error{Status: http.StatusBadRequest, Message: "invalid bucket name"})))

	client := newTestClient(t, NewTestCluster(t, TestClusterOptions{Handlers: handlers}))

	err := client.CreateBucket(context.Background(), aisval.NewBck("bucket"))

	var serviceErr *aiserr.ServiceError

	require.ErrorAs(t, err, &serviceErr)
	require.Equal(t, http.StatusBadRequest, serviceErr.Status)
	require.Equal(t, "invalid bucket name", serviceErr.Message)
}

func TestPutGetObject(t *testing.T) {
	data := testutil.RandomBytes(t, 64)

	for _, redirect := range []bool{false, true} {
		t.Run(fmt.Sprintf("Redirect=%t", redirect), func(t *testing.T) {
			client, bck := newTestBucket(t, TestClusterOptions{Redirect: redirect})

			require.NoError(t, client.PutObject(context.Background(), bck, "dir/object", bytes.NewReader(data)))

			for size := 1; size <= len(data)+10; size++ {
				opts := aiscli.GetObjectOptions{ChunkSize: size, ValidateChecksum: true}

				stream, err := client.GetObject(context.Background(), bck, "dir/object", opts)
				require.NoError(t, err)
				require.Equal(t, int64(len(data)), stream.ContentLength)
				require.NotEmpty(t, stream.ETag)

				actual, err := stream.ReadAll()
				require.NoError(t, err)
				require.Equal(t, data, actual)

				stream, err = client.GetObject(context.Background(), bck, "dir/object", opts)
				require.NoError(t, err)

				var chunks []byte

				for {
					chunk, err := stream.Next()
					if err == iterator.Done {
						break
					}

					require.NoError(t, err)
					require.LessOrEqual(t, len(chunk), size)

					chunks = append(chunks, chunk...)
				}

				require.Equal(t, data, chunks)
			}
		})
	}
}

func TestHeadObject(t *testing.T) {
	client, bck := newTestBucket(t, TestClusterOptions{})

	putObjects(t, client, bck, "test string")

	props, err := client.HeadObject(context.Background(), bck, "test string")
	require.NoError(t, err)
	require.Equal(t, "1", props.Version())
	require.Equal(t, strconv.Itoa(len("test string")), props.Get(aisval.HeaderContentLength))
	require.Equal(t, int64(len("test string")), props.Size())

	putObjects(t, client, bck, "test string")

	props, err = client.HeadObject(context.Background(), bck, "test string")
	require.NoError(t, err)
	require.Equal(t, "2", props.Version())
}

func TestGetObjectByteRange(t *testing.T) {
	client, bck := newTestBucket(t, TestClusterOptions{Redirect: true})

	putObjects(t, client, bck, "test string")

	stream, err := client.GetObject(context.Background(), bck, "test string", aiscli.GetObjectOptions{
		ValidateChecksum: true,
		ByteRange:        &aisval.ByteRange{Start: 5, End: 10},
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), stream.ContentLength)

	data, err := stream.ReadAll()
	require.NoError(t, err)
	require.Equal(t, []byte("string"), data)

	_, err = client.GetObject(context.Background(), bck, "test string", aiscli.GetObjectOptions{
		ByteRange: &aisval.ByteRange{Start: 10, End: 5},
	})
	require.ErrorAs(t, err, new(*aisval.InvalidByteRangeError))
}

func TestListObjectsPageSize(t *testing.T) {
	type test struct {
		name     string
		pageSize uint
		expected int
	}

	tests := []*test{
		{
			name:     "Default",
			expected: 110,
		},
		{
			name:     "Capped",
			pageSize: 7,
			expected: 7,
		},
		{
			name:     "LargerThanBucket",
			pageSize: 220,
			expected: 110,
		},
	}

	client, bck := newTestBucket(t, TestClusterOptions{})

	putObjects(t, client, bck, objectNames("", 110)...)

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := client.ListObjects(context.Background(), bck, aiscli.ListObjectsOptions{PageSize: test.pageSize})
			require.NoError(t, err)
			require.Len(t, result.Entries, test.expected)
			require.Equal(t, "obj-000", result.Entries[0].Name)
			require.Equal(t, int64(len("obj-000")), result.Entries[0].Size)
		})
	}
}

func TestListAllObjects(t *testing.T) {
	client, bck := newTestBucket(t, TestClusterOptions{})

	names := objectNames("", 110)
	putObjects(t, client, bck, names...)

	entries, err := client.ListAllObjects(context.Background(), bck, aiscli.ListObjectsOptions{PageSize: 17})
	require.NoError(t, err)
	require.Len(t, entries, len(names))

	for i, entry := range entries {
		require.Equal(t, names[i], entry.Name)
	}
}

func TestListObjectsIter(t *testing.T) {
	client, bck := newTestBucket(t, TestClusterOptions{})

	putObjects(t, client, bck, objectNames("", 80)...)
	putObjects(t, client, bck, objectNames("prefix/", 30)...)

	it := client.ListObjectsIter(context.Background(), bck, aiscli.ListObjectsOptions{PageSize: 15, Prefix: "prefix/"})

	var names []string

	for {
		entry, err := it.Next()
		if err == iterator.Done {
			break
		}

		require.NoError(t, err)

		names = append(names, entry.Name)
	}

	require.Equal(t, objectNames("prefix/", 30), names)

	it = client.ListObjectsIter(context.Background(), bck, aiscli.ListObjectsOptions{PageSize: 15, Prefix: "missing/"})

	_, err := it.Next()
	require.Equal(t, iterator.Done, err)
}

func TestDeleteObject(t *testing.T) {
	client, bck := newTestBucket(t, TestClusterOptions{Redirect: true})

	names := objectNames("", 10)
	putObjects(t, client, bck, names...)

	for _, name := range names[:7] {
		require.NoError(t, client.DeleteObject(context.Background(), bck, name))
	}

	entries, err := client.ListAllObjects(context.Background(), bck, aiscli.ListObjectsOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	err = client.DeleteObject(context.Background(), bck, names[0])
	require.True(t, aiserr.IsObjectNotFound(err))
}

func TestEmptyBucket(t *testing.T) {
	client, bck := newTestBucket(t, TestClusterOptions{})

	result, err := client.ListObjects(context.Background(), bck, aiscli.ListObjectsOptions{})
	require.NoError(t, err)
	require.Empty(t, result.Entries)
	require.Empty(t, result.ContinuationToken)

	entries, err := client.ListAllObjects(context.Background(), bck, aiscli.ListObjectsOptions{PageSize: 5})
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = client.ListObjectsIter(context.Background(), bck, aiscli.ListObjectsOptions{}).Next()
	require.Equal(t, iterator.Done, err)
}

func TestNotFound(t *testing.T) {
	client, bck := newTestBucket(t, TestClusterOptions{})

	_, err := client.ListObjects(context.Background(), aisval.NewBck("INVALID_BCK_NAME"), aiscli.ListObjectsOptions{})
	require.True(t, aiserr.IsBucketNotFound(err))

	remote := aisval.Bck{Name: "INVALID_BCK_NAME", Provider: aisval.ProviderAmazon}

	_, err = client.ListObjects(context.Background(), remote, aiscli.ListObjectsOptions{})
	require.False(t, aiserr.IsNotFound(err))
	require.True(t, aiserr.IsServiceError(err))
	require.Equal(t, http.StatusBadRequest, aiserr.StatusCode(err))

	_, err = client.HeadObject(context.Background(), bck, "missing")
	require.True(t, aiserr.IsObjectNotFound(err))

	// HEAD responses have no payload to tell a missing bucket apart from a missing object.
	_, err = client.HeadObject(context.Background(), aisval.NewBck("missing"), "missing")
	require.True(t, aiserr.IsNotFound(err))
	require.True(t, aiserr.IsObjectNotFound(err))

	_, err = client.GetObject(context.Background(), bck, "missing", aiscli.GetObjectOptions{})
	require.True(t, aiserr.IsObjectNotFound(err))

	_, err = client.GetObject(context.Background(), aisval.NewBck("missing"), "missing", aiscli.GetObjectOptions{})
	require.True(t, aiserr.IsBucketNotFound(err))

	err = client.PutObject(context.Background(), aisval.NewBck("missing"), "object", strings.NewReader("data"))
	require.True(t, aiserr.IsBucketNotFound(err))
}

func TestRetryOnServiceUnavailable(t *testing.T) {
	handlers := make(httptools.TestHandlers)
	handlers.Add(http.MethodHead, "/v1/objects/bucket/object",
		httptools.NewTestHandlerWithRetries(t, 2, http.StatusServiceUnavailable, http.StatusOK, "", nil))

	cluster := NewTestCluster(t, TestClusterOptions{Handlers: handlers})

	_, err := newTestClient(t, cluster).HeadObject(context.Background(), aisval.NewBck("bucket"), "object")
	require.NoError(t, err)
	require.Equal(t, int64(3), cluster.Requests())
}

func TestRetryOnNextGateway(t *testing.T) {
	cluster := NewTestCluster(t, TestClusterOptions{})

	client, err := NewClient(context.Background(), ClientOptions{
		Endpoint: "http://127.0.0.1:1," + strings.TrimPrefix(cluster.URL(), "http://"),
	})
	require.NoError(t, err)
	require.Len(t, client.Hosts(), 2)

	bck := aisval.NewBck("bucket")
	require.NoError(t, cluster.Client.CreateBucket(context.Background(), bck))

	for i := 0; i < 4; i++ {
		_, err = client.HeadBucket(context.Background(), bck)
		require.NoError(t, err)
	}
}

func TestClientMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	metrics, err := httptools.NewMetrics(registry, "ais")
	require.NoError(t, err)

	client, err := NewClient(context.Background(), ClientOptions{
		Endpoint: NewTestCluster(t, TestClusterOptions{}).URL(),
		Metrics:  metrics,
	})
	require.NoError(t, err)

	require.NoError(t, client.CreateBucket(context.Background(), aisval.NewBck("bucket")))

	count, err := promtest.GatherAndCount(registry, "ais_client_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	families, err := registry.Gather()
	require.NoError(t, err)

	var requests *dto.MetricFamily

	for _, family := range families {
		if family.GetName() == "ais_client_requests_total" {
			requests = family
		}
	}

	require.NotNil(t, requests)
	require.Equal(t, dto.MetricType_COUNTER, requests.GetType())
	require.Len(t, requests.GetMetric(), 1)

	labels := make(map[string]string)
	for _, label := range requests.GetMetric()[0].GetLabel() {
		labels[label.GetName()] = label.GetValue()
	}

	require.Equal(t, map[string]string{"method": http.MethodPost, "code": "200"}, labels)
	require.Equal(t, float64(1), requests.GetMetric()[0].GetCounter().GetValue())
}
