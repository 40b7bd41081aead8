package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/client/client"
	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/client/store"
	"github.com/dmitrijs2005/modelcatalog/internal/logging"
	"github.com/dmitrijs2005/modelcatalog/internal/server/auth"
	"github.com/dmitrijs2005/modelcatalog/internal/server/catalog"
	"github.com/dmitrijs2005/modelcatalog/internal/server/httpapi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "services-test-secret"

func newTestService(t *testing.T) (CatalogService, *httpapi.Stats) {
	t.Helper()

	svc := catalog.NewService(catalog.NewMemoryRepository())
	require.NoError(t, catalog.Seed(context.Background(), svc))

	srv := httpapi.NewServer("127.0.0.1:0", logging.Nop(), svc, testSecret, httpapi.WithAccessLog(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tok, err := auth.GenerateToken("tester", []byte(testSecret), time.Hour)
	require.NoError(t, err)

	c := client.NewHTTPClient(ts.URL,
		client.WithTokenSource(client.StaticToken(tok)),
		client.WithRegisterer(prometheus.NewRegistry()))
	s := store.New(c, store.WithRegisterer(prometheus.NewRegistry()))
	return NewCatalogService(s), srv.Stats()
}

func TestSearchAndShow(t *testing.T) {
	ctx := context.Background()
	svc, stats := newTestService(t)

	found, err := svc.Search(ctx, models.KindModel, models.Filters{"brain_region": {"hippocampus"}}, false)
	require.NoError(t, err)
	require.Len(t, found, 1)

	m, err := svc.Show(ctx, models.KindModel, "ca1-pyr", false)
	require.NoError(t, err)
	assert.Equal(t, found[0].ID, m.ID)
	assert.True(t, m.LoadedVersions)
	require.Len(t, m.Instances, 1)

	_, err = svc.Show(ctx, models.KindModel, m.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count(http.MethodGet, "/models/{id}"))

	_, err = svc.Show(ctx, models.KindModel, m.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count(http.MethodGet, "/models/{id}"))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, stats := newTestService(t)

	_, err := svc.Register(ctx, models.KindModel, &models.Resource{Alias: "x"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register(ctx, models.KindModel, &models.Resource{Name: "Dup", Alias: "ca1-pyr"})
	assert.ErrorIs(t, err, ErrAliasTaken)
	assert.Zero(t, stats.Count(http.MethodPost, "/models/"))

	created, err := svc.Register(ctx, models.KindModel, &models.Resource{Name: "Granule cell", Alias: "dg-granule", ProjectID: "demo-lab"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.LoadedVersions)
	assert.True(t, created.LoadedResults)

	// the alias of a model says nothing about tests
	_, err = svc.Register(ctx, models.KindTest, &models.Resource{Name: "Same alias", Alias: "dg-granule"})
	require.NoError(t, err)
}

func TestEdit_ChecksChangedAliasOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	other, err := svc.Register(ctx, models.KindModel, &models.Resource{Name: "Other", Alias: "other"})
	require.NoError(t, err)

	m, err := svc.Show(ctx, models.KindModel, "ca1-pyr", false)
	require.NoError(t, err)

	m.Description = "updated"
	updated, err := svc.Edit(ctx, models.KindModel, m)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)

	m.Alias = other.Alias
	_, err = svc.Edit(ctx, models.KindModel, m)
	assert.ErrorIs(t, err, ErrAliasTaken)

	_, err = svc.Edit(ctx, models.KindModel, &models.Resource{Name: "no id"})
	assert.ErrorIs(t, err, store.ErrInvalidArgument)
}

func TestAddVersion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.AddVersion(ctx, models.KindModel, "ca1-pyr", &models.Instance{Version: "1.0"})
	assert.ErrorIs(t, err, ErrVersionTaken)

	_, err = svc.AddVersion(ctx, models.KindModel, "ca1-pyr", &models.Instance{})
	assert.ErrorIs(t, err, store.ErrInvalidArgument)

	inst, err := svc.AddVersion(ctx, models.KindModel, "ca1-pyr", &models.Instance{Version: "2.0", CodeFormat: "text/x-python"})
	require.NoError(t, err)
	assert.NotEmpty(t, inst.ID)

	m, err := svc.Show(ctx, models.KindModel, "ca1-pyr", false)
	require.NoError(t, err)
	assert.Len(t, m.Instances, 2)

	inst.Description = "second release"
	edited, err := svc.EditVersion(ctx, models.KindModel, "ca1-pyr", inst)
	require.NoError(t, err)
	assert.Equal(t, "second release", edited.Description)

	_, err = svc.AddVersion(ctx, models.KindModel, "missing-alias", &models.Instance{Version: "1.0"})
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestResults_ResolveAlias(t *testing.T) {
	ctx := context.Background()
	svc, stats := newTestService(t)

	results, err := svc.Results(ctx, models.KindTest, "ca1-somatic-features", false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.87, results[0].Score, 1e-9)
	assert.Equal(t, 1, stats.Count(http.MethodGet, "/tests/{id}"))

	full, err := svc.Result(ctx, results[0].ID, false)
	require.NoError(t, err)
	assert.Equal(t, results[0].ID, full.ID)

	m, err := svc.Show(ctx, models.KindModel, "ca1-pyr", false)
	require.NoError(t, err)
	ext, err := svc.InstanceResults(ctx, models.KindModel, []string{m.Instances[0].ID})
	require.NoError(t, err)
	require.Len(t, ext, 1)
	assert.Equal(t, results[0].ID, ext[0].ID)

	_, err = svc.Results(ctx, models.KindModel, "nope", false)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestComments_ByAliasOfEitherKind(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	list, err := svc.Comments(ctx, "ca1-pyr", false)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Comment(ctx, "ca1-pyr", "")
	assert.ErrorIs(t, err, store.ErrInvalidArgument)

	c, err := svc.Comment(ctx, "ca1-somatic-features", "needs more data")
	require.NoError(t, err)

	edited, err := svc.EditComment(ctx, "ca1-somatic-features", c.ID, "needs more recordings", true)
	require.NoError(t, err)
	assert.Equal(t, "needs more recordings", edited.Content)

	require.NoError(t, svc.DeleteComment(ctx, "ca1-somatic-features", c.ID))
	left, err := svc.Comments(ctx, "ca1-somatic-features", false)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = svc.Comments(ctx, "unknown-subject", false)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

// downClient fails every request with err and records the paths it saw.
type downClient struct {
	err   error
	paths []string
}

func (d *downClient) Get(_ context.Context, path string, _ any) error {
	d.paths = append(d.paths, path)
	return d.err
}

func (d *downClient) Post(_ context.Context, path string, _, _ any) error {
	d.paths = append(d.paths, path)
	return d.err
}

func (d *downClient) Put(_ context.Context, path string, _, _ any) error {
	d.paths = append(d.paths, path)
	return d.err
}

func (d *downClient) Delete(_ context.Context, path string, _ any) error {
	d.paths = append(d.paths, path)
	return d.err
}

func TestComments_OnlyNotFoundTriesNextKind(t *testing.T) {
	for _, failure := range []error{client.ErrUnavailable, client.ErrUnauthorized} {
		t.Run(failure.Error(), func(t *testing.T) {
			down := &downClient{err: failure}
			svc := NewCatalogService(store.New(down, store.WithRegisterer(prometheus.NewRegistry())))

			_, err := svc.Comments(context.Background(), "ca1-pyr", false)
			assert.ErrorIs(t, err, failure)
			assert.Equal(t, []string{"/models/ca1-pyr"}, down.paths)
		})
	}

	down := &downClient{err: client.ErrNotFound}
	svc := NewCatalogService(store.New(down, store.WithRegisterer(prometheus.NewRegistry())))
	_, err := svc.Comments(context.Background(), "ca1-pyr", false)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, []string{"/models/ca1-pyr", "/tests/ca1-pyr"}, down.paths)
}

func TestVocabularyProjectsAndStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	vocab, err := svc.Vocabulary(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo-lab"}, vocab["project_id"])
	assert.Equal(t, vocab["content_type"], vocab["code_format"])

	projects, err := svc.Projects(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo-lab"}, projects)

	_, err = svc.Search(ctx, models.KindTest, nil, false)
	require.NoError(t, err)
	st := svc.Stats()
	assert.True(t, st.VocabLoaded)
	assert.True(t, st.ProjectsLoaded)
	assert.Equal(t, 1, st.Queries)
	assert.Equal(t, 1, st.Tests)
}
