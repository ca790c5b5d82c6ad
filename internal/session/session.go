// Package session owns the bearer credential for the active profile: durable
// storage, hydration at startup, and the route guard that gates protected
// surfaces on the credential's claims.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/entity"
)

// CredentialFile is the fixed storage key for the persisted credential.
const CredentialFile = "credentials.json"

// Credential is the persisted bearer token plus the admin flag the server
// reported at login. The flag is display state; the guard re-reads the token
// claims and the server re-checks on every call.
type Credential struct {
	AccessToken string `json:"access_token"`
	IsAdmin     bool   `json:"is_admin"`
}

// Store persists the credential. Exactly one credential is active per
// profile.
type Store interface {
	Load() (*Credential, error)
	Save(cred *Credential) error
	Clear() error
}

// FileStore keeps the credential as a JSON file under a state directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the persisted credential. A missing file means logged out.
func (s *FileStore) Load() (*Credential, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, CredentialFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("failed to parse credential: %w", err)
	}
	if cred.AccessToken == "" {
		return nil, nil
	}
	return &cred, nil
}

// Save writes the credential, replacing any previous one.
func (s *FileStore) Save(cred *Credential) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, CredentialFile), data, 0o600); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}
	return nil
}

// Clear removes the persisted credential.
func (s *FileStore) Clear() error {
	err := os.Remove(filepath.Join(s.dir, CredentialFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential: %w", err)
	}
	return nil
}

// Manager holds the active credential and keeps it in sync with the store.
// Like the cart it is single-owner state and carries no locking.
type Manager struct {
	store Store
	cred  *Credential
}

// NewManager creates a Manager over store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Hydrate loads the persisted credential. A corrupt credential is logged and
// discarded; the session simply starts unauthenticated.
func (m *Manager) Hydrate() {
	cred, err := m.store.Load()
	if err != nil {
		slog.Warn("Discarding unreadable credential", "err", err)
		m.cred = nil
		return
	}
	m.cred = cred
}

// Token returns the current bearer token, or "" when logged out. It
// satisfies api.TokenFunc.
func (m *Manager) Token() string {
	if m.cred == nil {
		return ""
	}
	return m.cred.AccessToken
}

// Authenticated reports whether a credential is held.
func (m *Manager) Authenticated() bool {
	return m.cred != nil
}

// IsAdmin reports the admin flag from the login response. Advisory only.
func (m *Manager) IsAdmin() bool {
	return m.cred != nil && m.cred.IsAdmin
}

// SetCredential stores the token from a successful login.
func (m *Manager) SetCredential(token *entity.Token) error {
	cred := &Credential{AccessToken: token.AccessToken, IsAdmin: token.IsAdmin}
	if err := m.store.Save(cred); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	m.cred = cred
	return nil
}

// Logout drops the credential from memory and durable storage.
func (m *Manager) Logout() {
	m.cred = nil
	if err := m.store.Clear(); err != nil {
		slog.Warn("Failed to clear persisted credential", "err", err)
	}
}

// CurrentUser fetches the profile for the held credential. A rejected
// credential triggers an automatic local logout rather than a retry: the
// token is presumed invalid.
func (m *Manager) CurrentUser(ctx context.Context, client *api.Client) (*entity.User, error) {
	user, err := client.Me(ctx)
	if err != nil {
		var authErr *api.AuthorizationError
		if errors.As(err, &authErr) {
			slog.Info("Credential rejected by server, logging out")
			m.Logout()
		}
		return nil, err
	}
	return user, nil
}
