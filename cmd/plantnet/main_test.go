package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/config"
)

func TestRouteListPrintsAPI(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"route:list"})
	require.NoError(t, rootCmd.Execute())

	table := out.String()
	for _, path := range []string{"/jwt", "/plants/{id}", "/customer-orders/{email}", "/orders/{id}/status", "/metrics"} {
		assert.Contains(t, table, path)
	}
}

func TestServeHasInMemoryFlag(t *testing.T) {
	f := serveCmd.Flags().Lookup("in-memory")
	require.NotNil(t, f)
	assert.Equal(t, "false", f.DefValue)
}

// withConfig sets keys for one test and restores the previous values.
func withConfig(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		prev := config.Get(k, "")
		config.Set(k, v)
		t.Cleanup(func() { config.Set(k, prev) })
	}
}

func TestProductionBootRefusesDefaultJWTSecret(t *testing.T) {
	withConfig(t, map[string]string{"APP_ENV": "production", "JWT_SECRET": ""})

	rt, err := boot(context.Background(), true)
	require.Error(t, err)
	assert.Nil(t, rt)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestCheckSecrets(t *testing.T) {
	withConfig(t, map[string]string{"APP_ENV": "production", "JWT_SECRET": "a-real-secret"})
	assert.NoError(t, checkSecrets())

	config.Set("JWT_SECRET", "change-me-in-production")
	assert.Error(t, checkSecrets())

	config.Set("APP_ENV", "local")
	assert.NoError(t, checkSecrets(), "the default is tolerated outside production")
}
