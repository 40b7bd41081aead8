package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.Addr = "127.0.0.1:0"
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_GeneratesSecretAndSeeds(t *testing.T) {
	c := testConfig()

	app, err := NewApp(c)
	require.NoError(t, err)

	assert.Len(t, c.SecretKey, 2*secretSize)
	found, err := app.catalog.ListResources(context.Background(), models.KindModel, nil, 10, true)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestNewApp_KeepsConfiguredSecretAndSkipsSeed(t *testing.T) {
	c := testConfig()
	c.SecretKey = "fixed"
	c.Seed = false

	app, err := NewApp(c)
	require.NoError(t, err)

	assert.Equal(t, "fixed", c.SecretKey)
	found, err := app.catalog.ListResources(context.Background(), models.KindModel, nil, 10, true)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSeedIfEmpty_DoesNotDuplicate(t *testing.T) {
	app, err := NewApp(testConfig())
	require.NoError(t, err)

	require.NoError(t, seedIfEmpty(context.Background(), app.catalog))
	found, err := app.catalog.ListResources(context.Background(), models.KindModel, nil, 10, true)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestNewApp_RejectsBadLogSettings(t *testing.T) {
	c := testConfig()
	c.LogFormat = "xml"
	_, err := NewApp(c)
	assert.Error(t, err)
}

func TestRun_StopsWhenContextCanceled(t *testing.T) {
	app, err := NewApp(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
