package aiscli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/soitun/aistore/aisval"
	"github.com/soitun/aistore/ratelimit"
	"github.com/soitun/aistore/testutil"
)

func TestRateLimitedClientPutObject(t *testing.T) {
	var (
		ctrl   = gomock.NewController(t)
		client = NewMockClient(ctrl)
		bck    = aisval.NewBck("bucket")
		data   = []byte("test string")
	)

	client.EXPECT().
		PutObject(gomock.Any(), bck, "object", gomock.AssignableToTypeOf(&ratelimit.ReadSeeker{})).
		DoAndReturn(func(_ context.Context, _ aisval.Bck, _ string, body io.ReadSeeker) error {
			require.Equal(t, data, testutil.ReadAll(t, body))
			return nil
		})

	rl := NewRateLimitedClient(client, rate.NewLimiter(rate.Inf, 4))
	require.NoError(t, rl.PutObject(context.Background(), bck, "object", bytes.NewReader(data)))
}

func TestRateLimitedClientGetObject(t *testing.T) {
	var (
		inner = NewTestClient(t)
		bck   = aisval.NewBck("bucket")
		data  = testutil.RandomBytes(t, 64)
	)

	require.NoError(t, inner.CreateBucket(context.Background(), bck))
	require.NoError(t, inner.PutObject(context.Background(), bck, "object", bytes.NewReader(data)))

	rl := NewRateLimitedClient(inner, rate.NewLimiter(rate.Inf, 8))

	stream, err := rl.GetObject(context.Background(), bck, "object", GetObjectOptions{ValidateChecksum: true})
	require.NoError(t, err)
	require.IsType(t, &ratelimit.ReadCloser{}, stream.body)

	actual, err := stream.ReadAll()
	require.NoError(t, err)
	require.Equal(t, data, actual)
}

func TestRateLimitedClientPassthrough(t *testing.T) {
	var (
		ctrl   = gomock.NewController(t)
		client = NewMockClient(ctrl)
		bck    = aisval.NewBck("bucket")
		opts   = ListObjectsOptions{PageSize: 10}
	)

	client.EXPECT().CreateBucket(gomock.Any(), bck).Return(nil)
	client.EXPECT().DeleteObject(gomock.Any(), bck, "object").Return(nil)
	client.EXPECT().ListObjects(gomock.Any(), bck, opts).Return(&aisval.LsoResult{}, nil)

	rl := NewRateLimitedClient(client, rate.NewLimiter(rate.Inf, 1))

	require.NoError(t, rl.CreateBucket(context.Background(), bck))
	require.NoError(t, rl.DeleteObject(context.Background(), bck, "object"))

	_, err := rl.ListObjects(context.Background(), bck, opts)
	require.NoError(t, err)
}
