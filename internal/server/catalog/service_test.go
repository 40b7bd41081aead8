package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMemoryRepository())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc
}

func createModel(t *testing.T, svc *Service, alias, species string) *models.Resource {
	t.Helper()
	r, err := svc.CreateResource(context.Background(), models.KindModel, &models.Resource{
		Alias:     alias,
		Name:      "model " + alias,
		Species:   species,
		Instances: []models.Instance{{Version: "1.0"}},
	})
	require.NoError(t, err)
	return r
}

func TestService_CreateAndGetByIDOrAlias(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created := createModel(t, svc, "m1", "mouse")
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Instances, 1)
	assert.NotEmpty(t, created.Instances[0].ID)

	byID, err := svc.GetResource(ctx, models.KindModel, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byAlias, err := svc.GetResource(ctx, models.KindModel, "m1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byAlias.ID)

	_, err = svc.GetResource(ctx, models.KindModel, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = svc.GetResource(ctx, models.KindTest, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestService_CreateRejectsDuplicateAliasAndMissingName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	createModel(t, svc, "dup", "mouse")

	_, err := svc.CreateResource(ctx, models.KindModel, &models.Resource{Alias: "dup", Name: "x"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = svc.CreateResource(ctx, models.KindModel, &models.Resource{Alias: "other"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestService_ListResourcesFiltersSizeAndSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a := createModel(t, svc, "a", "mouse")
	b := createModel(t, svc, "b", "rat")
	c := createModel(t, svc, "c", "mouse")

	all, err := svc.ListResources(ctx, models.KindModel, nil, 0, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Len(t, all[0].Instances, 1)

	mice, err := svc.ListResources(ctx, models.KindModel, models.Filters{"species": {"mouse"}}, 0, true)
	require.NoError(t, err)
	require.Len(t, mice, 2)
	assert.Nil(t, mice[0].Instances)

	either, err := svc.ListResources(ctx, models.KindModel, models.Filters{"species": {"mouse", "rat"}}, 2, true)
	require.NoError(t, err)
	assert.Len(t, either, 2)

	none, err := svc.ListResources(ctx, models.KindModel, models.Filters{"species": {"mouse"}, "alias": {"b"}}, 0, true)
	require.NoError(t, err)
	assert.Empty(t, none)

	private, err := svc.ListResources(ctx, models.KindModel, models.Filters{"private": {"true"}}, 0, true)
	require.NoError(t, err)
	assert.Empty(t, private)
}

func TestService_UpdateResourceKeepsIdentityAndInstances(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	created := createModel(t, svc, "m1", "mouse")
	createModel(t, svc, "taken", "mouse")

	updated, err := svc.UpdateResource(ctx, models.KindModel, "m1", &models.Resource{ID: "ignored", Alias: "m1-renamed", Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.DateCreated, updated.DateCreated)
	assert.Equal(t, created.Instances, updated.Instances)

	_, err = svc.UpdateResource(ctx, models.KindModel, created.ID, &models.Resource{Alias: "taken", Name: "x"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := svc.GetResource(ctx, models.KindModel, "m1-renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
}

func TestService_Instances(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	created := createModel(t, svc, "m1", "mouse")

	inst, err := svc.CreateInstance(ctx, models.KindModel, "m1", models.Instance{Version: "2.0"})
	require.NoError(t, err)
	assert.NotEmpty(t, inst.ID)

	_, err = svc.CreateInstance(ctx, models.KindModel, created.ID, models.Instance{Version: "2.0"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	byVersion, err := svc.ListInstances(ctx, models.KindModel, created.ID, "2.0")
	require.NoError(t, err)
	require.Len(t, byVersion, 1)
	assert.Equal(t, inst.ID, byVersion[0].ID)

	updated, err := svc.UpdateInstance(ctx, models.KindModel, created.ID, inst.ID, models.Instance{Version: "2.0", Description: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, inst.ID, updated.ID)
	assert.Equal(t, inst.Timestamp, updated.Timestamp)

	found, err := svc.FindInstance(ctx, models.KindModel, inst.ID)
	require.NoError(t, err)
	assert.Equal(t, "fixed", found.Description)

	_, err = svc.UpdateInstance(ctx, models.KindModel, created.ID, "nope", models.Instance{Version: "3"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	all, err := svc.ListInstances(ctx, models.KindModel, created.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Results(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	model := createModel(t, svc, "m1", "mouse")
	test, err := svc.CreateResource(ctx, models.KindTest, &models.Resource{
		Alias: "t1", Name: "test", Instances: []models.Instance{{Version: "1"}},
	})
	require.NoError(t, err)

	res, err := svc.AddResult(ctx, &models.ExtendedResult{
		ModelInstanceID: model.Instances[0].ID,
		TestInstanceID:  test.Instances[0].ID,
		Score:           0.5,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Model)
	assert.Equal(t, model.ID, res.Model.ID)
	assert.Equal(t, "1", res.TestInstance.Version)

	_, err = svc.AddResult(ctx, &models.ExtendedResult{ModelInstanceID: "x", TestInstanceID: test.Instances[0].ID})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	summaries, err := svc.SummaryResults(ctx, models.KindModel, "m1", 10)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, res.ID, summaries[0].ID)
	assert.Equal(t, "t1", summaries[0].TestAlias)
	assert.Equal(t, "1.0", summaries[0].ModelVersion)

	byTest, err := svc.SummaryResults(ctx, models.KindTest, test.ID, 10)
	require.NoError(t, err)
	assert.Len(t, byTest, 1)

	unknown, err := svc.SummaryResults(ctx, models.KindModel, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	extended, err := svc.ExtendedResults(ctx, models.KindTest, []string{test.Instances[0].ID, "other"}, 10)
	require.NoError(t, err)
	require.Len(t, extended, 1)
	assert.Equal(t, res.ID, extended[0].ID)

	one, err := svc.Result(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, one.Score)

	_, err = svc.Result(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestService_Comments(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.CreateComment(ctx, "u", "subject", "first")
	require.NoError(t, err)
	second, err := svc.CreateComment(ctx, "u", "subject", "second")
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, "u", "other", "elsewhere")
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, "u", "subject", "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	list, err := svc.Comments(ctx, "subject", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	limited, err := svc.Comments(ctx, "subject", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	status := models.CommentStatusSubmitted
	updated, err := svc.UpdateComment(ctx, first.ID, models.CommentUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "first", updated.Content)
	assert.Equal(t, models.CommentStatusSubmitted, updated.Status)

	require.NoError(t, svc.DeleteComment(ctx, first.ID))
	assert.ErrorIs(t, svc.DeleteComment(ctx, first.ID), common.ErrorNotFound)

	list, err = svc.Comments(ctx, "subject", 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSeed_PopulatesCatalog(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	require.NoError(t, Seed(ctx, svc))

	vocab, err := svc.Vocabulary(ctx)
	require.NoError(t, err)
	assert.Contains(t, vocab["species"], "Rattus norvegicus")

	editable, err := svc.Projects(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []models.Project{{ProjectID: "demo-lab"}}, editable)

	all, err := svc.Projects(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	results, err := svc.SummaryResults(ctx, models.KindModel, "ca1-pyr", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
