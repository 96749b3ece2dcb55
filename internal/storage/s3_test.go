package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Type   string
}

// fakeS3 answers the handful of path-style S3 calls the storage makes.
type fakeS3 struct {
	mu           sync.Mutex
	requests     []recordedRequest
	bucketExists bool
	createStatus int
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   string(body),
		Type:   r.Header.Get("Content-Type"),
	})

	isBucket := strings.Count(strings.Trim(r.URL.Path, "/"), "/") == 0
	switch {
	case r.Method == http.MethodHead && isBucket:
		if f.bucketExists {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut && isBucket:
		if f.createStatus != 0 {
			w.WriteHeader(f.createStatus)
			return
		}
		f.bucketExists = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, r := range f.requests {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

func newFakeStorage(t *testing.T, fake *fakeS3) (*S3Storage, error) {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return NewS3Storage(context.Background(), S3Config{
		Region:    "us-east-1",
		Bucket:    "goal-events",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  srv.URL,
	})
}

func TestNewS3StorageCreatesMissingBucket(t *testing.T) {
	fake := &fakeS3{}
	s, err := newFakeStorage(t, fake)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, []string{"HEAD /goal-events", "PUT /goal-events"}, fake.calls())
}

func TestNewS3StorageKeepsExistingBucket(t *testing.T) {
	fake := &fakeS3{bucketExists: true}
	_, err := newFakeStorage(t, fake)
	require.NoError(t, err)

	assert.Equal(t, []string{"HEAD /goal-events"}, fake.calls())
}

func TestNewS3StorageBucketCreateFails(t *testing.T) {
	fake := &fakeS3{createStatus: http.StatusForbidden}
	_, err := newFakeStorage(t, fake)
	assert.ErrorContains(t, err, `bucket "goal-events" does not exist and could not be created`)
}

func TestS3StorageSave(t *testing.T) {
	fake := &fakeS3{bucketExists: true}
	s, err := newFakeStorage(t, fake)
	require.NoError(t, err)

	err = s.Save(context.Background(), "goal.created/1.json", "application/json", strings.NewReader(`{"goalId":1}`))
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	last := fake.requests[len(fake.requests)-1]
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, "/goal-events/goal.created/1.json", last.Path)
	assert.Equal(t, "application/json", last.Type)
	assert.Contains(t, last.Body, `{"goalId":1}`)
}
