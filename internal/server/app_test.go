package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.DatabaseDSN = "file:app_test?mode=memory&cache=shared"
	c.LogLevel = "error"
	return c
}

func TestNewApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewApp_BadOrigin(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "file:app_test_bad_origin?mode=memory&cache=shared"
	c.AllowedOrigins = []string{"localhost:3000"}

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}
