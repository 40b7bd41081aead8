package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/client/client"
	"github.com/dmitrijs2005/modelcatalog/internal/logging"
	"github.com/dmitrijs2005/modelcatalog/internal/server/auth"
	"github.com/dmitrijs2005/modelcatalog/internal/server/catalog"
	"github.com/dmitrijs2005/modelcatalog/internal/server/httpapi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testSecret = "store-test-secret"

// testEnv is a Store talking to a seeded in-memory catalog API.
type testEnv struct {
	store *Store
	stats *httpapi.Stats
	svc   *catalog.Service
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	svc := catalog.NewService(catalog.NewMemoryRepository())
	require.NoError(t, catalog.Seed(context.Background(), svc))

	srv := httpapi.NewServer("127.0.0.1:0", logging.Nop(), svc, testSecret, httpapi.WithAccessLog(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tok, err := auth.GenerateToken("tester", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	c := client.NewHTTPClient(ts.URL, client.WithTokenSource(client.StaticToken(tok)))
	opts = append([]Option{WithRegisterer(prometheus.NewRegistry())}, opts...)
	return &testEnv{store: New(c, opts...), stats: srv.Stats(), svc: svc}
}

func (e *testEnv) count(method, route string) int {
	return e.stats.Count(method, route)
}

// fakeClient answers requests with the given functions and records every
// request as "METHOD path".
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	get  func(ctx context.Context, path string, out any) error
	post func(ctx context.Context, path string, body, out any) error
	put  func(ctx context.Context, path string, body, out any) error
	del  func(ctx context.Context, path string, out any) error
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Get(ctx context.Context, path string, out any) error {
	f.record(http.MethodGet + " " + path)
	if f.get == nil {
		return client.ErrNotFound
	}
	return f.get(ctx, path, out)
}

func (f *fakeClient) Post(ctx context.Context, path string, body, out any) error {
	f.record(http.MethodPost + " " + path)
	if f.post == nil {
		return client.ErrUnavailable
	}
	return f.post(ctx, path, body, out)
}

func (f *fakeClient) Put(ctx context.Context, path string, body, out any) error {
	f.record(http.MethodPut + " " + path)
	if f.put == nil {
		return client.ErrUnavailable
	}
	return f.put(ctx, path, body, out)
}

func (f *fakeClient) Delete(ctx context.Context, path string, out any) error {
	f.record(http.MethodDelete + " " + path)
	if f.del == nil {
		return client.ErrUnavailable
	}
	return f.del(ctx, path, out)
}

// fill decodes v into out the way the HTTP client would.
func fill(out, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// blockUntilCanceled waits for ctx and reports the canceled outcome.
func blockUntilCanceled(ctx context.Context, _ string, _ any) error {
	<-ctx.Done()
	return client.ErrCanceled
}

func newFakeStore(f *fakeClient, opts ...Option) *Store {
	opts = append([]Option{WithRegisterer(prometheus.NewRegistry())}, opts...)
	return New(f, opts...)
}
