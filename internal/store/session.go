package store

import (
	"context"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/golang-jwt/jwt/v4"
	jsoniter "github.com/json-iterator/go"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
)

// TopicSessionChanged carries the new identity (nil on logout) to
// subscribers, synchronously, so dependents observe a consistent state
// before the triggering operation returns.
const TopicSessionChanged = "session.changed"

const sessionBucket = "sessions"

// fixed key names inside a session's bucket
const (
	keyToken = "token"
	keyUser  = "user"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SessionStore holds the authenticated identity and credential for one
// browser session. Lifecycle: create, Hydrate, mutate, Close (via the
// registry). Identity and credential are set and cleared together,
// never one without the other.
type SessionStore struct {
	mu    sync.RWMutex
	api   *backend.Client
	db    *bolt.DB
	bus   EventBus.Bus
	scope string

	user  *domain.User
	token string
	ready bool
}

// NewSessionStore wires the store as the client's token source. scope
// keys the durable bucket, one per browser session.
func NewSessionStore(api *backend.Client, db *bolt.DB, bus EventBus.Bus, scope string) *SessionStore {
	s := &SessionStore{api: api, db: db, bus: bus, scope: scope}
	api.SetTokenSource(s.Token)
	return s
}

// Hydrate restores identity and credential from durable storage. It is
// synchronous and must run before dependents observe the store; Ready
// gates consumers until it has. Malformed or expired stored state
// yields an unauthenticated session, never an error.
func (s *SessionStore) Hydrate() {
	var token string
	var user domain.User
	found := false

	if s.db != nil {
		_ = s.db.View(func(tx *bolt.Tx) error {
			root := tx.Bucket([]byte(sessionBucket))
			if root == nil {
				return nil
			}
			b := root.Bucket([]byte(s.scope))
			if b == nil {
				return nil
			}
			rawToken := b.Get([]byte(keyToken))
			rawUser := b.Get([]byte(keyUser))
			if rawToken == nil || rawUser == nil {
				return nil
			}
			if err := json.Unmarshal(rawUser, &user); err != nil {
				zap.L().Warn("discarding malformed stored identity", zap.Error(err))
				return nil
			}
			token = string(rawToken)
			found = user.ID != ""
			return nil
		})
	}

	if found && tokenExpired(token) {
		zap.L().Info("stored credential expired, starting unauthenticated",
			zap.String("email", user.Email))
		found = false
		s.clearPersisted()
	}

	s.mu.Lock()
	if found {
		s.user = &user
		s.token = token
	}
	s.ready = true
	s.mu.Unlock()

	s.bus.Publish(TopicSessionChanged, s.Identity())
}

// tokenExpired peeks at the JWT exp claim without verifying the
// signature; the backend remains the authority on token validity. A
// token without an exp claim is treated as unexpired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if _, ok := claims["exp"]; !ok {
		return false
	}
	return !claims.VerifyExpiresAt(time.Now().Unix(), true)
}

// Login exchanges credentials for a session. On success identity and
// credential are swapped in atomically and persisted; on failure prior
// state is untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	// identity and credential are only ever set together
	if token == "" || user.ID == "" {
		return &backend.Error{Kind: backend.KindUnknown,
			Message: "backend returned an incomplete login response"}
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	s.persist(token, user)
	s.bus.Publish(TopicSessionChanged, s.Identity())
	return nil
}

// Register requests account creation; it never establishes a session.
// Success means the backend dispatched an OTP. Re-submitting the same
// payload re-sends the OTP.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) error {
	return s.api.Register(ctx, name, email, password)
}

// VerifyOtp finalizes account verification. Verification and login are
// decoupled: the user logs in afterward.
func (s *SessionStore) VerifyOtp(ctx context.Context, email, otp string) error {
	return s.api.VerifyOtp(ctx, email, otp)
}

// Logout clears identity, credential and durable storage synchronously.
// No network call; idempotent.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	s.clearPersisted()
	s.bus.Publish(TopicSessionChanged, (*domain.User)(nil))
}

// Identity returns a copy of the authenticated user, or nil.
func (s *SessionStore) Identity() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetIdentity replaces the held identity after a profile update. The
// credential is unchanged; an empty session stays empty.
func (s *SessionStore) SetIdentity(user domain.User) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	s.user = &user
	token := s.token
	s.mu.Unlock()
	s.persist(token, user)
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Ready reports whether hydration has completed.
func (s *SessionStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *SessionStore) persist(token string, user domain.User) {
	if s.db == nil {
		return
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return err
		}
		b, err := root.CreateBucketIfNotExists([]byte(s.scope))
		if err != nil {
			return err
		}
		rawUser, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(keyToken), []byte(token)); err != nil {
			return err
		}
		return b.Put([]byte(keyUser), rawUser)
	})
	if err != nil {
		// a broken local store must not cost the user their session
		zap.L().Warn("session persist failed", zap.Error(err))
	}
}

func (s *SessionStore) clearPersisted() {
	if s.db == nil {
		return
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(sessionBucket))
		if root == nil {
			return nil
		}
		if root.Bucket([]byte(s.scope)) == nil {
			return nil
		}
		return root.DeleteBucket([]byte(s.scope))
	})
	if err != nil {
		zap.L().Warn("session clear failed", zap.Error(err))
	}
}
