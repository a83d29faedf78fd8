// Package session implements a mock authentication layer. Credentials live
// in an in-memory table seeded with a demo account; only the active profile
// and its preferences are persisted. This is a faithful stand-in for a real
// auth system, not security.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tally/internal/log"
	"tally/internal/storage"
)

// Key is the storage key the active session is persisted under.
const Key = "tally.session"

// Demo account credentials.
const (
	DemoEmail    = "demo@tally.local"
	DemoPassword = "demo123"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// NotificationPrefs toggles the notification channels.
type NotificationPrefs struct {
	Email        bool `json:"email"`
	Push         bool `json:"push"`
	BudgetAlerts bool `json:"budgetAlerts"`
}

// Preferences holds per-user display and notification settings.
type Preferences struct {
	Currency      string            `json:"currency"`
	Language      string            `json:"language"`
	Theme         string            `json:"theme"`
	Notifications NotificationPrefs `json:"notifications"`
}

// User is the profile of an authenticated account.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	CreatedAt   time.Time   `json:"createdAt"`
	Preferences Preferences `json:"preferences"`
}

func defaultPreferences() Preferences {
	return Preferences{
		Currency: "USD",
		Language: "en",
		Theme:    "light",
		Notifications: NotificationPrefs{
			Email:        true,
			Push:         false,
			BudgetAlerts: true,
		},
	}
}

type account struct {
	password string
	user     User
}

// Manager owns the credential table and the persisted active session.
// It is not safe for concurrent use; the CLI drives it from one goroutine.
type Manager struct {
	kv        storage.KeyValue
	logger    *log.Logger
	now       func() time.Time
	accounts  map[string]account
	current   *User
	purgeKeys []string
}

// NewManager builds a Manager over kv and restores any persisted session.
// purgeKeys lists additional storage keys Logout wipes alongside the
// session itself (the ledger state, so logout resets the demo workspace).
func NewManager(ctx context.Context, kv storage.KeyValue, logger *log.Logger, purgeKeys ...string) *Manager {
	if logger == nil {
		logger = log.New(log.Config{})
	}

	m := &Manager{
		kv:        kv,
		logger:    logger.WithComponent(log.ComponentSession),
		now:       time.Now,
		accounts:  make(map[string]account),
		purgeKeys: purgeKeys,
	}

	m.accounts[DemoEmail] = account{
		password: DemoPassword,
		user: User{
			ID:          "user-demo",
			Email:       DemoEmail,
			Name:        "Demo User",
			CreatedAt:   m.now().UTC(),
			Preferences: defaultPreferences(),
		},
	}

	m.restore(ctx)
	return m
}

// restore loads the persisted session. A corrupt or unreadable blob is
// logged and treated as absent.
func (m *Manager) restore(ctx context.Context) {
	raw, ok, err := m.kv.Load(ctx, Key)
	if err != nil {
		m.logger.WarnContext(ctx, "Failed to load session, starting logged out",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		return
	}
	if !ok {
		return
	}

	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		m.logger.WarnContext(ctx, "Discarding corrupt session",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		return
	}

	// Keep the credential table and the restored profile in sync so a
	// profile edit made in a previous run survives the restart.
	if acct, found := m.accounts[user.Email]; found {
		acct.user = user
		m.accounts[user.Email] = acct
	}

	m.current = &user
	m.logger.DebugContext(ctx, "Restored session", log.FieldEmail, user.Email)
}

// Current returns the active user, or nil when logged out.
func (m *Manager) Current() *User {
	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}

// Login authenticates against the credential table and persists the session.
func (m *Manager) Login(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)

	acct, ok := m.accounts[email]
	if !ok || acct.password != password {
		m.logger.WarnContext(ctx, "Login rejected",
			log.FieldOperation, log.OpLogin, log.FieldEmail, email)
		return nil, ErrInvalidCredentials
	}

	user := acct.user
	m.current = &user
	if err := m.persist(ctx); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.logger.InfoContext(ctx, "Logged in",
		log.FieldOperation, log.OpLogin, log.FieldEmail, email)

	u := user
	return &u, nil
}

// Signup registers a new account and logs it in.
func (m *Manager) Signup(ctx context.Context, email, password, name string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address: %q", email)
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	if _, exists := m.accounts[email]; exists {
		return nil, ErrDuplicateEmail
	}

	user := User{
		ID:          uuid.NewString(),
		Email:       email,
		Name:        name,
		CreatedAt:   m.now().UTC(),
		Preferences: defaultPreferences(),
	}
	m.accounts[email] = account{password: password, user: user}

	m.current = &user
	if err := m.persist(ctx); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.logger.InfoContext(ctx, "Account created",
		log.FieldOperation, log.OpLogin, log.FieldEmail, email)

	u := user
	return &u, nil
}

// Logout clears the persisted session and every purge key.
func (m *Manager) Logout(ctx context.Context) error {
	m.current = nil

	if err := m.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	for _, key := range m.purgeKeys {
		if err := m.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}

	m.logger.InfoContext(ctx, "Logged out", log.FieldOperation, log.OpLogout)
	return nil
}

// UpdateProfile changes the active user's display name.
func (m *Manager) UpdateProfile(ctx context.Context, name string) (*User, error) {
	if m.current == nil {
		return nil, ErrNotLoggedIn
	}

	m.current.Name = name
	m.syncAccount()
	if err := m.persist(ctx); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	u := *m.current
	return &u, nil
}

// UpdatePreferences replaces the active user's preferences.
func (m *Manager) UpdatePreferences(ctx context.Context, prefs Preferences) (*User, error) {
	if m.current == nil {
		return nil, ErrNotLoggedIn
	}

	m.current.Preferences = prefs
	m.syncAccount()
	if err := m.persist(ctx); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	u := *m.current
	return &u, nil
}

func (m *Manager) syncAccount() {
	if acct, ok := m.accounts[m.current.Email]; ok {
		acct.user = *m.current
		m.accounts[m.current.Email] = acct
	}
}

func (m *Manager) persist(ctx context.Context) error {
	raw, err := json.Marshal(m.current)
	if err != nil {
		return err
	}
	return m.kv.Save(ctx, Key, raw)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
