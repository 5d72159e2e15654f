// Package auth orchestrates login state: it owns the session store, notifies
// subscribers of profile changes, and keeps the cart store pointed at the
// right identity namespace.
package auth

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/teletela/storefront/internal/api"
	"github.com/teletela/storefront/internal/cart"
	"github.com/teletela/storefront/internal/model"
	"github.com/teletela/storefront/internal/session"
)

// Manager is the auth singleton, constructed once at boot.
type Manager struct {
	mu   sync.Mutex
	api  *api.Client
	sess *session.Store
	cart *cart.Store
	log  *zap.Logger
	subs []chan *model.Profile
}

// New wires the manager. Call Restore afterwards to rehydrate a prior login.
func New(apiClient *api.Client, sess *session.Store, cartStore *cart.Store, log *zap.Logger) *Manager {
	return &Manager{api: apiClient, sess: sess, cart: cartStore, log: log}
}

// Restore rehydrates boot state: when a non-expired session exists the cart is
// re-identified to the stored profile, mirroring a page reload in the browser.
func (m *Manager) Restore() {
	if m.sess.IsExpired() {
		return
	}
	if p := m.sess.Profile(); p != nil {
		m.cart.Identify(p.ID)
		m.notify(p)
	}
}

// Login authenticates, persists token and profile, switches the cart to the
// user's namespace and notifies subscribers.
func (m *Manager) Login(ctx context.Context, username, password string) (*model.Profile, error) {
	profile, token, err := m.api.Login(ctx, model.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if err := m.sess.SetToken(token); err != nil {
		return nil, fmt.Errorf("auth: store token: %w", err)
	}
	if err := m.sess.SetProfile(profile); err != nil {
		return nil, fmt.Errorf("auth: store profile: %w", err)
	}
	m.cart.Identify(profile.ID)
	m.notify(profile)
	m.log.Info("logged in", zap.String("username", profile.Username), zap.String("role", string(profile.Role)))
	return profile, nil
}

// Logout clears the session, resets the cart to the anonymous namespace and
// notifies subscribers with a nil profile. Also the forced path for 401/403.
func (m *Manager) Logout() {
	m.sess.Clear()
	m.cart.Reset()
	m.notify(nil)
	m.log.Info("logged out")
}

// Current returns the stored profile, or nil when logged out.
func (m *Manager) Current() *model.Profile {
	if m.sess.IsExpired() {
		return nil
	}
	return m.sess.Profile()
}

// Subscribe returns a channel receiving the profile after every auth change
// (nil on logout); cancel with the returned func.
func (m *Manager) Subscribe() (<-chan *model.Profile, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *model.Profile, 1)
	m.subs = append(m.subs, ch)
	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, c := range m.subs {
			if c == ch {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				close(c)
				return
			}
		}
	}
	return ch, cancel
}

func (m *Manager) notify(p *model.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- p:
		default:
		}
	}
}
