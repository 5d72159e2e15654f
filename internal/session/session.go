// Package session holds the client's authentication state: the bearer token
// and the last-known profile, persisted through the storage layer.
//
// Decoding failures are never fatal: a missing or malformed token degrades to
// "unauthenticated" (IsExpired true, HasRole false, Claims nil).
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/teletela/storefront/internal/model"
	"github.com/teletela/storefront/internal/storage"
)

// Storage keys, kept byte-compatible with the browser client.
const (
	tokenKey   = "jwt_token"
	profileKey = "usuario_logado"
)

// Store is the session-scoped token/profile store.
type Store struct {
	kv  *storage.Store
	log *zap.Logger
}

// New returns a session store over kv.
func New(kv *storage.Store, log *zap.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// SetToken persists the bearer token.
func (s *Store) SetToken(token string) error {
	return s.kv.Set(tokenKey, token)
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *Store) Token() string {
	var tok string
	if ok, err := s.kv.Get(tokenKey, &tok); !ok {
		if err != nil {
			s.log.Warn("session: unreadable token, treating as logged out", zap.Error(err))
		}
		return ""
	}
	return tok
}

// SetProfile persists the logged-in profile.
func (s *Store) SetProfile(p *model.Profile) error {
	return s.kv.Set(profileKey, p)
}

// Profile returns the stored profile, or nil when none is stored.
func (s *Store) Profile() *model.Profile {
	var p model.Profile
	if ok, err := s.kv.Get(profileKey, &p); !ok {
		if err != nil {
			s.log.Warn("session: unreadable profile", zap.Error(err))
		}
		return nil
	}
	return &p
}

// Clear removes token and profile.
func (s *Store) Clear() {
	_ = s.kv.Remove(tokenKey)
	_ = s.kv.Remove(profileKey)
}

// Claims decodes the stored token without signature verification (the client
// holds no key; the backend re-verifies every call) and normalizes the result.
// Any shape mismatch returns nil.
func (s *Store) Claims() *model.TokenClaims {
	tok := s.Token()
	if tok == "" {
		return nil
	}
	raw := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tok, raw); err != nil {
		s.log.Warn("session: token decode failed", zap.Error(err))
		return nil
	}

	claims := &model.TokenClaims{}
	if sub, err := raw.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := raw.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	claims.Roles = extractRoles(raw)
	return claims
}

// extractRoles reads the role list claim. The backend has shipped it under
// more than one name; all are normalized here, failing closed on odd shapes.
func extractRoles(raw jwt.MapClaims) []model.Role {
	for _, name := range []string{"roles", "role", "authorities", "perfil"} {
		v, ok := raw[name]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			return []model.Role{model.Role(val)}
		case []any:
			roles := make([]model.Role, 0, len(val))
			for _, r := range val {
				str, ok := r.(string)
				if !ok {
					return nil
				}
				roles = append(roles, model.Role(str))
			}
			return roles
		default:
			return nil
		}
	}
	return nil
}

// IsExpired reports whether the session should be treated as unauthenticated:
// no token, undecodable token, or an expiry at or before now.
func (s *Store) IsExpired() bool {
	claims := s.Claims()
	if claims == nil {
		return true
	}
	if claims.ExpiresAt.IsZero() {
		return true
	}
	return !claims.ExpiresAt.After(time.Now())
}

// HasRole reports whether the token's role claim contains role. False on any
// decode failure.
func (s *Store) HasRole(role model.Role) bool {
	return s.Claims().HasRole(role)
}
