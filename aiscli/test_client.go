package aiscli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"

	"github.com/soitun/aistore/aiserr"
	"github.com/soitun/aistore/aisval"
	"github.com/soitun/aistore/testutil"
)

// TestObject is an object stored in memory by the 'TestClient'.
type TestObject struct {
	Body     []byte
	Version  int
	Checksum aisval.Checksum
	Atime    time.Time
}

// TestBucket is a bucket stored in memory by the 'TestClient'.
type TestBucket struct {
	Props   aisval.BucketProps
	Objects map[string]*TestObject
}

// TestClient implementation of the 'Client' interface which stores state in memory, and can be used to avoid having to
// manually mock a client during unit testing.
type TestClient struct {
	t    *testing.T
	lock sync.RWMutex

	// Buckets is the in memory state maintained by the client. Internally, access is guarded by a mutex, however, it's
	// not safe/recommended to access this attribute whilst a test is running; it should only be used to inspect state
	// (to perform assertions) once testing is complete.
	Buckets map[aisval.Bck]*TestBucket
}

var _ Client = (*TestClient)(nil)

// NewTestClient returns a new test client, which has no buckets/objects.
func NewTestClient(t *testing.T) *TestClient {
	return &TestClient{t: t, Buckets: make(map[aisval.Bck]*TestBucket)}
}

func (t *TestClient) CreateBucket(_ context.Context, bck aisval.Bck) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	bck = normalize(bck)

	if _, ok := t.Buckets[bck]; ok {
		return nil
	}

	if err := bck.Validate(); err != nil {
		return aiserr.NewServiceError(http.StatusBadRequest, http.MethodPost, bck.String(), []byte(err.Error()))
	}

	t.Buckets[bck] = &TestBucket{
		Props: aisval.BucketProps{
			Provider: bck.Provider,
			BID:      uint64(len(t.Buckets) + 1),
			Created:  time.Now().UnixNano(),
			Checksum: aisval.ChecksumConf{Type: aisval.DefaultChecksumType},
			Versioning: aisval.VersioningConf{
				Enabled: true,
			},
		},
		Objects: make(map[string]*TestObject),
	}

	return nil
}

func (t *TestClient) DestroyBucket(_ context.Context, bck aisval.Bck) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	bck = normalize(bck)

	if _, err := t.getBucketRLocked(bck, http.MethodDelete); err != nil {
		return err
	}

	delete(t.Buckets, bck)

	return nil
}

func (t *TestClient) HeadBucket(_ context.Context, bck aisval.Bck) (aisval.BucketProps, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	bucket, err := t.getBucketRLocked(normalize(bck), http.MethodHead)
	if err != nil {
		return aisval.BucketProps{}, err
	}

	return bucket.Props, nil
}

func (t *TestClient) ListBuckets(_ context.Context, provider aisval.Provider) ([]aisval.Bck, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	bcks := make([]aisval.Bck, 0, len(t.Buckets))

	for _, bck := range maps.Keys(t.Buckets) {
		if provider == "" || bck.Provider == provider {
			bcks = append(bcks, bck)
		}
	}

	sort.Slice(bcks, func(i, j int) bool { return bcks[i].String() < bcks[j].String() })

	return bcks, nil
}

func (t *TestClient) PutObject(_ context.Context, bck aisval.Bck, name string, body io.ReadSeeker) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	bucket, err := t.getBucketRLocked(normalize(bck), http.MethodPut)
	if err != nil {
		return err
	}

	data := testutil.ReadAll(t.t, body)

	checksum, err := aisval.ComputeChecksum(bucket.Props.Checksum.Type, data)
	require.NoError(t.t, err)

	object := &TestObject{Body: data, Version: 1, Checksum: checksum, Atime: time.Now()}
	if existing, ok := bucket.Objects[name]; ok {
		object.Version = existing.Version + 1
	}

	bucket.Objects[name] = object

	return nil
}

func (t *TestClient) HeadObject(_ context.Context, bck aisval.Bck, name string) (aisval.ObjectProps, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	object, err := t.getObjectRLocked(normalize(bck), name, http.MethodHead)
	if err != nil {
		return nil, err
	}

	return object.props(int64(len(object.Body))), nil
}

func (t *TestClient) GetObject(
	_ context.Context,
	bck aisval.Bck,
	name string,
	opts GetObjectOptions,
) (*ObjectStream, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	object, err := t.getObjectRLocked(normalize(bck), name, http.MethodGet)
	if err != nil {
		return nil, err
	}

	if err := opts.ByteRange.Valid(); err != nil {
		return nil, err
	}

	body := object.Body

	if opts.ByteRange != nil {
		length := int64(len(body))

		stop := length
		if opts.ByteRange.End != 0 {
			stop = min(opts.ByteRange.End+1, length)
		}

		start := min(opts.ByteRange.Start, stop)

		body = body[start:stop]
	}

	return NewObjectStream(io.NopCloser(bytes.NewReader(body)), object.props(int64(len(body))), opts), nil
}

func (t *TestClient) DeleteObject(_ context.Context, bck aisval.Bck, name string) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	bck = normalize(bck)

	if _, err := t.getObjectRLocked(bck, name, http.MethodDelete); err != nil {
		return err
	}

	delete(t.Buckets[bck].Objects, name)

	return nil
}

func (t *TestClient) ListObjects(
	_ context.Context,
	bck aisval.Bck,
	opts ListObjectsOptions,
) (*aisval.LsoResult, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	bucket, err := t.getBucketRLocked(normalize(bck), http.MethodPost)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(bucket.Objects))

	for name := range bucket.Objects {
		if strings.HasPrefix(name, opts.Prefix) && name > opts.ContinuationToken {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	result := &aisval.LsoResult{UUID: opts.UUID, Entries: make([]*aisval.LsoEntry, 0)}
	if result.UUID == "" {
		result.UUID = uuid.NewString()
	}

	if opts.PageSize != 0 && uint(len(names)) > opts.PageSize {
		names = names[:opts.PageSize]
		result.ContinuationToken = names[len(names)-1]
	}

	msg := opts.Msg()

	for _, name := range names {
		result.Entries = append(result.Entries, bucket.Objects[name].entry(name, msg))
	}

	return result, nil
}

func (t *TestClient) ListAllObjects(
	ctx context.Context,
	bck aisval.Bck,
	opts ListObjectsOptions,
) ([]*aisval.LsoEntry, error) {
	return ListAll(ctx, t, bck, opts)
}

func (t *TestClient) ListObjectsIter(ctx context.Context, bck aisval.Bck, opts ListObjectsOptions) *ObjectIterator {
	return NewObjectIterator(ctx, t, bck, opts)
}

func (t *TestClient) getBucketRLocked(bck aisval.Bck, method string) (*TestBucket, error) {
	bucket, ok := t.Buckets[bck]
	if ok {
		return bucket, nil
	}

	path := aisval.URLPathBuckets + "/" + bck.Name

	if bck.Provider.IsRemote() {
		if err := bck.Validate(); err != nil {
			return nil, aiserr.NewServiceError(http.StatusBadRequest, method, path, []byte(err.Error()))
		}
	}

	serviceErr := aiserr.NewServiceError(http.StatusNotFound, method, path,
		[]byte(fmt.Sprintf("bucket %q does not exist", bck.String())))

	return nil, aiserr.NewNotFoundError(aiserr.BucketKind, bck.String(), "", serviceErr)
}

func (t *TestClient) getObjectRLocked(bck aisval.Bck, name, method string) (*TestObject, error) {
	bucket, err := t.getBucketRLocked(bck, method)
	if err != nil {
		return nil, err
	}

	object, ok := bucket.Objects[name]
	if ok {
		return object, nil
	}

	serviceErr := aiserr.NewServiceError(http.StatusNotFound, method, aisval.URLPathObjects+"/"+bck.Name+"/"+name,
		[]byte(fmt.Sprintf("%s does not exist", bck.Cname(name))))

	return nil, aiserr.NewNotFoundError(aiserr.ObjectKind, bck.String(), name, serviceErr)
}

// props returns the properties of the object as the cluster would return them in the headers of a response.
func (o *TestObject) props(length int64) aisval.ObjectProps {
	header := http.Header{}
	header.Set(aisval.HeaderVersion, strconv.Itoa(o.Version))
	header.Set(aisval.HeaderContentLength, strconv.FormatInt(length, 10))
	header.Set(aisval.HeaderObjSize, strconv.Itoa(len(o.Body)))
	header.Set(aisval.HeaderChecksumType, o.Checksum.Type)
	header.Set(aisval.HeaderChecksumValue, o.Checksum.Value)
	header.Set(aisval.HeaderAtime, strconv.FormatInt(o.Atime.UnixNano(), 10))

	return aisval.NewObjectProps(header)
}

// entry returns the listing entry for the object, populating only the requested properties.
func (o *TestObject) entry(name string, msg *aisval.LsoMsg) *aisval.LsoEntry {
	entry := &aisval.LsoEntry{Name: name}

	if msg.WantProp(aisval.GetPropsSize) {
		entry.Size = int64(len(o.Body))
	}

	if msg.WantProp(aisval.GetPropsChecksum) {
		entry.Checksum = o.Checksum.Value
	}

	if msg.WantProp(aisval.GetPropsVersion) {
		entry.Version = strconv.Itoa(o.Version)
	}

	if msg.WantProp(aisval.GetPropsAtime) {
		entry.Atime = o.Atime.Format(time.RFC822)
	}

	if msg.WantProp(aisval.GetPropsCopies) {
		entry.Copies = 1
	}

	return entry
}

// normalize ensures buckets using the zero value provider are stored as native buckets.
func normalize(bck aisval.Bck) aisval.Bck {
	bck.Provider = aisval.Provider(bck.Provider.String())
	return bck
}
