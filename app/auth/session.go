package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"quillpad/app/apperrors"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

// hkdfInfo binds the derived keys to this use; changing it invalidates all
// outstanding sessions.
const hkdfInfo = "quillpad session cookie keys"

// SessionManager issues and reads the signed, encrypted session cookie that
// proves a previously verified identity.
type SessionManager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessionManager derives the cookie hash and block keys from secret via
// HKDF-SHA256. secure controls the cookie's Secure attribute and should be
// true in production.
func NewSessionManager(secret, cookieName string, ttl time.Duration, secure bool) (*SessionManager, error) {
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}

	hashKey, blockKey, err := deriveKeys(secret)
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(ttl.Seconds()))

	return &SessionManager{
		codec:      codec,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}, nil
}

func deriveKeys(secret string) (hashKey, blockKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	hashKey = make([]byte, 32)
	blockKey = make([]byte, 32)
	if _, err := io.ReadFull(r, hashKey); err != nil {
		return nil, nil, fmt.Errorf("derive hash key: %w", err)
	}
	if _, err := io.ReadFull(r, blockKey); err != nil {
		return nil, nil, fmt.Errorf("derive block key: %w", err)
	}
	return hashKey, blockKey, nil
}

// Issue sets the session cookie for identity on the response.
func (m *SessionManager) Issue(w http.ResponseWriter, identity Identity) error {
	value, err := m.codec.Encode(m.cookieName, identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie unconditionally.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the identity proven by the request's session cookie. A
// missing, tampered or expired cookie yields ErrUnauthorized.
func (m *SessionManager) Read(r *http.Request) (Identity, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return Identity{}, apperrors.ErrUnauthorized
	}

	var identity Identity
	if err := m.codec.Decode(m.cookieName, cookie.Value, &identity); err != nil {
		return Identity{}, apperrors.ErrUnauthorized
	}
	if identity.Subject == "" && identity.Email == "" {
		return Identity{}, apperrors.ErrUnauthorized
	}
	return identity, nil
}
