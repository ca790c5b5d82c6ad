package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/entity"
)

func TestManagerRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	m := NewManager(store)
	m.Hydrate()
	assert.False(t, m.Authenticated())
	assert.Empty(t, m.Token())

	require.NoError(t, m.SetCredential(&entity.Token{AccessToken: "tok-1", IsAdmin: true}))
	assert.True(t, m.Authenticated())
	assert.True(t, m.IsAdmin())

	// A fresh manager over the same store picks up the credential.
	reloaded := NewManager(store)
	reloaded.Hydrate()
	assert.Equal(t, "tok-1", reloaded.Token())
	assert.True(t, reloaded.IsAdmin())
}

func TestLogoutClearsDurableState(t *testing.T) {
	store := NewFileStore(t.TempDir())
	m := NewManager(store)
	require.NoError(t, m.SetCredential(&entity.Token{AccessToken: "tok-1"}))

	m.Logout()
	assert.False(t, m.Authenticated())

	reloaded := NewManager(store)
	reloaded.Hydrate()
	assert.False(t, reloaded.Authenticated())
}

func TestHydrateDiscardsCorruptCredential(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CredentialFile), []byte("%%%"), 0o600))

	m := NewManager(NewFileStore(dir))
	m.Hydrate()

	assert.False(t, m.Authenticated(), "corrupt credential falls back to unauthenticated")
}

func TestCurrentUserLogsOutOnRejectedCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer srv.Close()

	m := NewManager(NewFileStore(t.TempDir()))
	require.NoError(t, m.SetCredential(&entity.Token{AccessToken: "stale"}))

	client := api.NewClient(srv.URL, m.Token)
	_, err := m.CurrentUser(context.Background(), client)
	require.Error(t, err)

	assert.False(t, m.Authenticated(), "rejected credential triggers local logout")
}

func TestCurrentUserKeepsCredentialOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	m := NewManager(NewFileStore(t.TempDir()))
	require.NoError(t, m.SetCredential(&entity.Token{AccessToken: "tok"}))

	client := api.NewClient(srv.URL, m.Token)
	_, err := m.CurrentUser(context.Background(), client)
	require.Error(t, err)

	assert.True(t, m.Authenticated(), "transport failures do not invalidate the credential")
}
