// internal/auth/service.go
//
// Mock authentication service. It simulates a full login/signup flow without
// any remote backend: the "session" is a signed token persisted in the local
// profile store, and credentials are only shape-checked.
package auth

import (
	"regexp"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sareestage-backend/internal/entitlement"
	"sareestage-backend/internal/store"
	apperrors "sareestage-backend/pkg/errors"
)

// User is the opaque authenticated identity handed to the rest of the system.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

type sessionClaims struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	jwt.RegisteredClaims
}

// Service manages the mock session and notifies observers when the active
// identity changes.
type Service interface {
	LoginWithEmail(email, password string) (*User, error)
	SignupWithEmail(email, password string) (*User, error)
	LoginWithGoogle() (*User, error)
	Logout() error
	// CurrentUser returns the logged-in user, or nil when logged out.
	CurrentUser() *User
	// ResolveIdentity returns the identity the entitlement bookkeeping should
	// charge: the signed-in user's UID when a session exists, otherwise the
	// durable guest identity for this profile.
	ResolveIdentity() (string, error)
	// OnIdentityChanged registers a callback fired after every login, signup
	// and logout. The argument is nil when the session ended.
	OnIdentityChanged(fn func(*User))
}

type service struct {
	kv           store.Store
	secret       []byte
	entitlements entitlement.Service

	mu        sync.Mutex
	observers []func(*User)
	now       func() time.Time
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

func NewService(kv store.Store, secret []byte, entitlements entitlement.Service) Service {
	return &service{
		kv:           kv,
		secret:       secret,
		entitlements: entitlements,
		now:          time.Now,
	}
}

func (s *service) LoginWithEmail(email, password string) (*User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	// A real backend would verify credentials here; the mock just mints a
	// session for the given email.
	user := &User{UID: s.mockUID("mock-uid"), Email: email}
	if err := s.openSession(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) SignupWithEmail(email, password string) (*User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	user := &User{UID: s.mockUID("mock-uid"), Email: email}

	// New signups start with an empty balance on the free tier.
	if err := s.entitlements.InitializeUser(user.UID); err != nil {
		return nil, err
	}

	if err := s.openSession(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) LoginWithGoogle() (*User, error) {
	// Simulates a successful OAuth popup flow.
	user := &User{
		UID:         s.mockUID("mock-google-uid"),
		Email:       "user@google.com",
		DisplayName: "Google User",
	}

	if err := s.entitlements.InitializeUser(user.UID); err != nil {
		return nil, err
	}

	if err := s.openSession(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Logout() error {
	if err := s.kv.Delete(store.MockUserKey); err != nil {
		return err
	}
	s.notify(nil)
	return nil
}

func (s *service) CurrentUser() *User {
	raw, ok, err := s.kv.Get(store.MockUserKey)
	if err != nil || !ok || raw == "" {
		return nil
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	// An unreadable or tampered session blob means logged out, not an error.
	if err != nil || token == nil || !token.Valid {
		return nil
	}

	return &User{UID: claims.UID, Email: claims.Email, DisplayName: claims.DisplayName}
}

func (s *service) ResolveIdentity() (string, error) {
	if user := s.CurrentUser(); user != nil {
		return user.UID, nil
	}
	return s.entitlements.ResolveGuestID()
}

func (s *service) OnIdentityChanged(fn func(*User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *service) openSession(user *User) error {
	claims := sessionClaims{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
			Subject:  user.UID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return apperrors.NewPersistenceError("failed to sign session token: " + err.Error())
	}

	if err := s.kv.Set(store.MockUserKey, signed); err != nil {
		return err
	}

	s.notify(user)
	return nil
}

func (s *service) notify(user *User) {
	s.mu.Lock()
	observers := make([]func(*User), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(user)
	}
}

func (s *service) mockUID(prefix string) string {
	return prefix + "-" + s.now().Format("20060102150405.000")
}

func validateCredentials(email, password string) error {
	if !emailPattern.MatchString(email) || len(password) < 6 {
		return apperrors.NewValidationError("Invalid email or password. Password must be at least 6 characters.")
	}
	return nil
}
