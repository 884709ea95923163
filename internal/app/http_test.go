package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevish-is-building/Startup-co/internal/auth"
	"github.com/kevish-is-building/Startup-co/internal/auth/provider"
	"github.com/kevish-is-building/Startup-co/internal/config"
)

func TestOAuthProviders_UnconfiguredGoogleLeftOut(t *testing.T) {
	providers, err := oauthProviders(context.Background(), config.Config{})
	require.NoError(t, err)
	assert.Empty(t, providers)

	partial := config.Config{GoogleClientID: "id-only"}
	providers, err = oauthProviders(context.Background(), partial)
	require.NoError(t, err)
	assert.Empty(t, providers)
}

// The registry must answer "not configured" for google when credentials
// are absent; nothing nil-valued may hide behind the provider interface
// where a consent or callback request would dereference it.
func TestOAuthProviders_RegistryRejectsUnconfiguredGoogle(t *testing.T) {
	providers, err := oauthProviders(context.Background(), config.Config{})
	require.NoError(t, err)

	registry := provider.NewRegistry(providers...)
	_, err = registry.Get("google")
	require.ErrorIs(t, err, auth.ErrProviderNotConfigured)
}
