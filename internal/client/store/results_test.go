package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/modelcatalog/internal/client/client"
	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResultsByResource_CachedOnLoadedResource(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	model, err := env.store.GetResource(ctx, models.KindModel, "ca1-pyr")
	require.NoError(t, err)

	first, err := env.store.GetResultsByResource(ctx, models.KindModel, model.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "ca1-somatic-features", first[0].TestAlias)

	again, err := env.store.GetResultsByResource(ctx, models.KindModel, "ca1-pyr")
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, env.count(http.MethodGet, "/results-summary/"))

	loaded, err := env.store.GetResource(ctx, models.KindModel, model.ID)
	require.NoError(t, err)
	assert.True(t, loaded.LoadedResults)
	assert.Equal(t, []string{first[0].ID}, loaded.ResultIDs)

	_, err = env.store.GetResultsByResource(ctx, models.KindModel, model.ID, ForceRefresh())
	require.NoError(t, err)
	assert.Equal(t, 2, env.count(http.MethodGet, "/results-summary/"))
}

func TestGetResultsByResource_UncachedResourceAlwaysFetches(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	list, err := env.store.QueryResources(ctx, models.KindTest, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	testID := list[0].ID

	_, err = env.store.GetResultsByResource(ctx, models.KindTest, testID)
	require.NoError(t, err)
	loaded, err := env.store.GetResultsByResource(ctx, models.KindTest, testID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 1, env.count(http.MethodGet, "/results-summary/"))

	unknown, err := env.store.GetResultsByResource(ctx, models.KindModel, "not-in-cache")
	require.NoError(t, err)
	assert.Empty(t, unknown)
	_, err = env.store.GetResultsByResource(ctx, models.KindModel, "not-in-cache")
	require.NoError(t, err)
	assert.Equal(t, 3, env.count(http.MethodGet, "/results-summary/"))
}

func TestGetResultsByResource_DanglingReference(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	model, err := env.store.GetResource(ctx, models.KindModel, "ca1-pyr")
	require.NoError(t, err)
	results, err := env.store.GetResultsByResource(ctx, models.KindModel, model.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)

	env.store.mu.Lock()
	delete(env.store.summaryResults, results[0].ID)
	env.store.mu.Unlock()

	_, err = env.store.GetResultsByResource(ctx, models.KindModel, model.ID)
	var dangling *DanglingReferenceError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, results[0].ID, dangling.ResultID)
	assert.Equal(t, model.ID, dangling.ResourceID)
}

func TestGetResultsByInstances_AlwaysFetchesAndMerges(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	model, err := env.store.GetResource(ctx, models.KindModel, "ca1-pyr")
	require.NoError(t, err)
	ids := []string{model.Instances[0].ID, "unknown-instance"}

	first, err := env.store.GetResultsByInstances(ctx, models.KindModel, ids)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotNil(t, first[0].ModelInstance)

	_, err = env.store.GetResultsByInstances(ctx, models.KindModel, ids)
	require.NoError(t, err)
	assert.Equal(t, 2, env.count(http.MethodGet, "/results-extended/"))

	one, err := env.store.GetResult(ctx, first[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, one.ID)
	assert.Equal(t, 0, env.count(http.MethodGet, "/results-extended/{id}"))
	assert.Equal(t, 1, env.store.Stats().ExtendedResults)

	none, err := env.store.GetResultsByInstances(ctx, models.KindModel, nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
	assert.Equal(t, 2, env.count(http.MethodGet, "/results-extended/"))
}

func TestGetResult_CacheFirst(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	model, err := env.store.GetResource(ctx, models.KindModel, "ca1-pyr")
	require.NoError(t, err)
	summaries, err := env.store.GetResultsByResource(ctx, models.KindModel, model.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	res, err := env.store.GetResult(ctx, summaries[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.87, res.Score, 1e-9)
	require.NotNil(t, res.Test)
	assert.Equal(t, "ca1-somatic-features", res.Test.Alias)

	res.Score = 0
	cached, err := env.store.GetResult(ctx, summaries[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.87, cached.Score, 1e-9)
	assert.Equal(t, 1, env.count(http.MethodGet, "/results-extended/{id}"))

	_, err = env.store.GetResult(ctx, summaries[0].ID, ForceRefresh())
	require.NoError(t, err)
	assert.Equal(t, 2, env.count(http.MethodGet, "/results-extended/{id}"))

	_, err = env.store.GetResult(ctx, "missing")
	assert.ErrorIs(t, err, client.ErrNotFound)
	_, err = env.store.GetResult(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
